package activity

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/rpggio/pmdash/internal/store"
)

// DefaultLimit caps GetRecentActivity when the caller gives no limit.
const DefaultLimit = 50

// Service handles activity log operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new activity service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{repo: repo, logger: logger}
}

// LogActivity logs an activity entry with the current timestamp if missing.
func (s *Service) LogActivity(ctx context.Context, entry *ActivityEntry) error {
	if entry == nil || entry.Store == "" || entry.Action == "" {
		return ErrInvalidInput
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if entry.Outcome == "" {
		entry.Outcome = OutcomeSuccess
	}
	if err := s.repo.Log(ctx, entry); err != nil {
		return fmt.Errorf("logging activity: %w", err)
	}
	return nil
}

// GetRecentActivity lists activity entries newest first.
func (s *Service) GetRecentActivity(ctx context.Context, opts ListActivityOptions) ([]ActivityEntry, error) {
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	return s.repo.List(ctx, opts)
}

// Observe records a completed store action. Logging failures are not
// propagated to the action that triggered them.
func (s *Service) Observe(ctx context.Context, ev store.Event) {
	entry := &ActivityEntry{
		Store:      ev.Store,
		Action:     ev.Action,
		EntityID:   ev.EntityID,
		Outcome:    OutcomeSuccess,
		Source:     string(ev.Source),
		DurationMS: ev.Duration.Milliseconds(),
	}
	if !ev.Success {
		entry.Outcome = OutcomeFailure
		if ev.Err != nil {
			entry.Error = ev.Err.Error()
		}
	}
	if err := s.LogActivity(ctx, entry); err != nil {
		s.logger.Warn("activity log write failed", "store", ev.Store, "action", ev.Action, "error", err)
	}
}
