package store

import (
	"context"
	"log/slog"
	"time"
)

// Event describes one completed store action.
type Event struct {
	Store    string
	Action   string
	EntityID string
	Success  bool
	Source   Source
	Err      error
	Duration time.Duration
}

// Observer receives completed store actions.
type Observer interface {
	Observe(ctx context.Context, ev Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, ev Event)

func (f ObserverFunc) Observe(ctx context.Context, ev Event) { f(ctx, ev) }

type multiObserver []Observer

func (m multiObserver) Observe(ctx context.Context, ev Event) {
	for _, o := range m {
		o.Observe(ctx, ev)
	}
}

// Observers fans out to every non-nil observer.
func Observers(obs ...Observer) Observer {
	out := make(multiObserver, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			out = append(out, o)
		}
	}
	return out
}

// Op is an in-flight store action.
type Op struct {
	Store    string
	Action   string
	EntityID string
	started  time.Time
}

// Start begins timing an action.
func Start(storeName, action, entityID string) Op {
	return Op{Store: storeName, Action: action, EntityID: entityID, started: time.Now()}
}

// Finish logs res, reports it to obs and returns it unchanged.
func Finish[T any](ctx context.Context, l *slog.Logger, obs Observer, op Op, res Result[T]) Result[T] {
	if l != nil {
		LogOutcome(l, op, res)
	}
	if obs == nil {
		return res
	}
	// Observers run after the caller may have gone away.
	obs.Observe(context.WithoutCancel(ctx), Event{
		Store:    op.Store,
		Action:   op.Action,
		EntityID: op.EntityID,
		Success:  res.Success,
		Source:   res.Source,
		Err:      res.Err,
		Duration: time.Since(op.started),
	})
	return res
}
