package store

import (
	"context"
	"errors"
	"time"

	"github.com/rpggio/pmdash/internal/repository"
)

// Loader produces a value from one data source.
type Loader[T any] func(ctx context.Context) (T, error)

// WithFallback attempts primary and substitutes fallback when primary fails
// with an eligible error. A nil primary goes straight to fallback. When both
// fail the returned error joins the two causes.
func WithFallback[T any](ctx context.Context, primary, fallback Loader[T], eligible func(error) bool) (T, Source, error) {
	var zero T
	if primary == nil {
		if fallback == nil {
			return zero, "", repository.ErrUnavailable
		}
		v, err := fallback(ctx)
		if err != nil {
			return zero, SourceFallback, err
		}
		return v, SourceFallback, nil
	}

	v, err := primary(ctx)
	if err == nil {
		return v, SourceRemote, nil
	}
	if fallback == nil || eligible == nil || !eligible(err) {
		return zero, SourceRemote, err
	}

	fv, ferr := fallback(ctx)
	if ferr != nil {
		return zero, SourceFallback, errors.Join(err, ferr)
	}
	return fv, SourceFallback, nil
}

// AnyFailure treats every primary failure as eligible for fallback.
func AnyFailure(error) bool { return true }

// Unreachable treats only transport failures and a missing remote as eligible.
// Timeouts and remote rejections are ordinary failures.
func Unreachable(err error) bool {
	return errors.Is(err, repository.ErrUnavailable)
}

// Pause waits d or until ctx is done. Fallback sources use it to keep the
// latency profile of the remote they stand in for.
func Pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
