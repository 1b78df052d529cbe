package context

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jsamuelsen/quotevault/internal/platform/logging"
)

// Action is a write staged for Commit. Undo may be nil for writes that need
// no compensation.
type Action struct {
	Name string
	Do   func(ctx context.Context) error
	Undo func(ctx context.Context) error
}

// Stage appends actions to the commit list.
func (r *Request) Stage(actions ...Action) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.committed {
		return ErrAlreadyCommitted
	}

	r.staged = append(r.staged, actions...)

	return nil
}

// Commit runs the staged actions in order. On the first failure the actions
// that already ran are undone newest first, and the error joins the failure
// with any undo errors.
func (r *Request) Commit(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.committed {
		return ErrAlreadyCommitted
	}

	logger := logging.FromContext(ctx)

	for i, a := range r.staged {
		err := a.Do(ctx)
		if err == nil {
			continue
		}

		logger.WarnContext(ctx, "staged write failed, undoing",
			slog.String("action", a.Name),
			slog.Int("done", i),
			slog.Any("error", err),
		)

		errs := []error{fmt.Errorf("%s: %w", a.Name, err)}

		for j := i - 1; j >= 0; j-- {
			done := r.staged[j]
			if done.Undo == nil {
				continue
			}

			if uerr := done.Undo(ctx); uerr != nil {
				logger.ErrorContext(ctx, "undo failed", slog.String("action", done.Name), slog.Any("error", uerr))
				errs = append(errs, fmt.Errorf("%w: %s: %w", ErrRollbackFailed, done.Name, uerr))
			}
		}

		return errors.Join(errs...)
	}

	r.committed = true

	return nil
}
