package auth

import "context"

// Remote is the authentication endpoint of the remote API.
type Remote interface {
	Login(ctx context.Context, email, password string) (Session, error)
	Register(ctx context.Context, payload map[string]any) (Session, error)
}
