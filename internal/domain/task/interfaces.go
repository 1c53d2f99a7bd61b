package task

import (
	"context"
	"net/url"
)

// Remote is the tasks resource of the remote API.
type Remote interface {
	List(ctx context.Context, query url.Values) ([]Record, error)
	Create(ctx context.Context, payload map[string]any) (Record, error)
	Update(ctx context.Context, id string, payload map[string]any) (Record, error)
	UpdateStatus(ctx context.Context, id, status string) (Record, error)
	Delete(ctx context.Context, id string) error
}
