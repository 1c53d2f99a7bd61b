package store

import (
	"context"
	"sync/atomic"
)

// Busy is a store-local loading flag. Overlapping actions keep it set until
// the last one finishes.
type Busy struct {
	n atomic.Int32
}

// Begin marks an action as running and returns the function that clears it.
// Use as: defer s.busy.Begin()()
func (b *Busy) Begin() func() {
	b.n.Add(1)
	return func() { b.n.Add(-1) }
}

// Active reports whether any action is running.
func (b *Busy) Active() bool {
	return b.n.Load() > 0
}

// Relevant reports whether a result computed for ctx may still be applied to
// shared state. A caller that went away no longer owns the outcome.
func Relevant(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return nil
}
