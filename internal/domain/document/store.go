package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rpggio/pmdash/internal/blob"
	"github.com/rpggio/pmdash/internal/store"
	"github.com/rpggio/pmdash/internal/wire"
)

const storeName = "documents"

// Store owns the session's document catalog. File contents live in the
// optional blob store; metadata lives in memory only.
type Store struct {
	blobs      blob.Store
	logger     *slog.Logger
	observer   store.Observer
	busy       store.Busy
	now        func() time.Time
	delay      time.Duration
	linkExpiry time.Duration

	docs *store.Collection[Document]
}

// NewStore creates a document store. A nil blobs records metadata only.
func NewStore(blobs blob.Store, logger *slog.Logger, opts ...Option) *Store {
	s := &Store{
		blobs:      blobs,
		logger:     store.Logger(logger),
		now:        time.Now,
		delay:      DefaultDelay,
		linkExpiry: DefaultLinkExpiry,
		docs:       store.NewCollection(func(d Document) string { return d.ID }, nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FetchDocuments loads the catalog, optionally limited to one project.
func (s *Store) FetchDocuments(ctx context.Context, projectID string) store.Result[[]Document] {
	defer s.busy.Begin()()
	op := store.Start(storeName, "fetch", projectID)
	return store.Finish(ctx, s.logger, s.observer, op, s.fetch(ctx, projectID))
}

func (s *Store) fetch(ctx context.Context, projectID string) store.Result[[]Document] {
	const msg = "failed to fetch documents"
	if err := store.Pause(ctx, s.delay); err != nil {
		return store.Fail[[]Document](err, msg)
	}
	docs := Seed()
	if projectID != "" {
		docs = slices.DeleteFunc(docs, func(d Document) bool { return d.ProjectID != projectID })
	}
	s.docs.Replace(docs)
	return store.OK(s.docs.All(), store.SourceLocal)
}

// UploadDocument records a new document and stores its content when both
// content and a blob store are present.
func (s *Store) UploadDocument(ctx context.Context, up Upload) store.Result[Document] {
	defer s.busy.Begin()()
	op := store.Start(storeName, "upload", up.Name)
	return store.Finish(ctx, s.logger, s.observer, op, s.upload(ctx, up))
}

func (s *Store) upload(ctx context.Context, up Upload) store.Result[Document] {
	const msg = "failed to upload document"
	if strings.TrimSpace(up.Name) == "" {
		return store.Fail[Document](ErrNameRequired, msg)
	}
	if err := store.Pause(ctx, 2*s.delay); err != nil {
		return store.Fail[Document](err, msg)
	}

	d := Document{
		ID:          uuid.NewString(),
		Name:        up.Name,
		Category:    up.Category,
		ProjectID:   up.ProjectID,
		ProjectName: up.ProjectName,
		Size:        up.Size,
		Type:        up.Type,
		UploadedBy:  up.UploadedBy,
		UploadedAt:  wire.Timestamp(s.now()),
		URL:         PlaceholderURL,
		Description: up.Description,
	}
	if !d.Category.Valid() {
		d.Category = CategoryOther
	}

	if s.blobs != nil && up.Content != nil {
		key := Key(d.ID, d.Name)
		info, err := s.blobs.Put(ctx, key, bytes.NewReader(up.Content), blob.PutOptions{
			ContentType: d.Type,
			Metadata:    map[string]string{"document-id": d.ID, "project-id": d.ProjectID},
		})
		if err != nil {
			return store.Fail[Document](fmt.Errorf("storing document content: %w", err), msg)
		}
		d.URL = blob.Location(key)
		d.Size = info.Size
	}

	if err := store.Relevant(ctx); err != nil {
		return store.Fail[Document](err, msg)
	}
	s.docs.Append(d)
	return store.OK(d, store.SourceLocal)
}

// Key is the blob key of a document's content.
func Key(id, name string) string {
	return "documents/" + id + "/" + path.Base(name)
}

// DeleteDocument removes a document and, best-effort, its stored content.
func (s *Store) DeleteDocument(ctx context.Context, id string) store.Result[struct{}] {
	defer s.busy.Begin()()
	op := store.Start(storeName, "delete", id)
	return store.Finish(ctx, s.logger, s.observer, op, s.delete(ctx, id))
}

func (s *Store) delete(ctx context.Context, id string) store.Result[struct{}] {
	const msg = "failed to delete document"
	d, ok := s.docs.Find(id)
	if !ok {
		return store.Fail[struct{}](ErrDocumentNotFound, msg)
	}
	if err := store.Pause(ctx, s.delay); err != nil {
		return store.Fail[struct{}](err, msg)
	}
	if !s.docs.Remove(id) {
		return store.Fail[struct{}](ErrDocumentNotFound, msg)
	}
	if key, stored := strings.CutPrefix(d.URL, blob.Scheme); stored && s.blobs != nil {
		if _, err := s.blobs.Delete(ctx, key); err != nil {
			s.logger.Warn("removing document content", "id", id, "key", key, "error", err)
		}
	}
	return store.OK(struct{}{}, store.SourceLocal)
}

// DownloadDocument resolves where a document's content can be fetched.
func (s *Store) DownloadDocument(ctx context.Context, id string) store.Result[Link] {
	defer s.busy.Begin()()
	op := store.Start(storeName, "download", id)
	return store.Finish(ctx, s.logger, s.observer, op, s.download(ctx, id))
}

func (s *Store) download(ctx context.Context, id string) store.Result[Link] {
	const msg = "failed to download document"
	d, ok := s.docs.Find(id)
	if !ok {
		return store.Fail[Link](ErrDocumentNotFound, msg)
	}
	link := Link{Document: d, URL: d.URL}
	key, stored := strings.CutPrefix(d.URL, blob.Scheme)
	if !stored || s.blobs == nil {
		return store.OK(link, store.SourceLocal)
	}
	url, err := s.blobs.PresignURL(ctx, key, s.linkExpiry)
	switch {
	case err == nil:
		link.URL = url
		return store.OK(link, store.SourceRemote)
	case errors.Is(err, blob.ErrUnsupported):
		return store.OK(link, store.SourceLocal)
	default:
		return store.Fail[Link](fmt.Errorf("presigning %s: %w", key, err), msg)
	}
}

// Documents returns the catalog in insertion order.
func (s *Store) Documents() []Document { return s.docs.All() }

// Loading reports whether an action is in flight.
func (s *Store) Loading() bool { return s.busy.Active() }

// ByCategory buckets every document under its category.
func (s *Store) ByCategory() map[Category][]Document {
	return store.GroupBy(s.docs.All(), Categories, func(d Document) Category { return d.Category })
}

// ForProject returns the documents of one project.
func (s *Store) ForProject(projectID string) []Document {
	return s.docs.Filter(func(d Document) bool { return d.ProjectID == projectID })
}

// TotalSize sums the size of every document.
func (s *Store) TotalSize() int64 {
	var total int64
	for _, d := range s.docs.All() {
		total += d.Size
	}
	return total
}
