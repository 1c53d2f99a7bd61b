package project

import (
	"context"
	"net/url"
)

// Remote is the projects resource of the remote API.
type Remote interface {
	List(ctx context.Context, query url.Values) ([]Record, error)
	Get(ctx context.Context, id string) (Record, error)
	Create(ctx context.Context, payload map[string]any) (Record, error)
	Update(ctx context.Context, id string, payload map[string]any) (Record, error)
	Delete(ctx context.Context, id string) error
}
