package store

import (
	"io"
	"log/slog"
)

// Logger returns l, or a logger that discards everything when l is nil.
func Logger(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return l
}

// LogOutcome logs a failed action at warn and a fallback substitution at info.
func LogOutcome[T any](l *slog.Logger, op Op, res Result[T]) {
	switch {
	case !res.Success:
		l.Warn("store action failed", "store", op.Store, "action", op.Action, "id", op.EntityID, "error", res.Err)
	case res.Source == SourceFallback:
		l.Info("store action served from fallback", "store", op.Store, "action", op.Action, "id", op.EntityID, "source", string(res.Source))
	}
}
