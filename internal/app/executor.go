package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jsamuelsen/quotevault/internal/platform/logging"
)

// Writes that span the database and object storage run as a fixed sequence
// of steps: validate, perform, verify, archive, respond. Profile updates
// upload the avatar in perform, check its public URL in verify and only
// write the profile row in archive, so a failed upload never leaves a
// dangling avatar URL behind.

// ExecutionStep names one step of an Operation.
type ExecutionStep string

const (
	StepValidate ExecutionStep = "validate"
	StepPerform  ExecutionStep = "perform"
	StepVerify   ExecutionStep = "verify"
	StepArchive  ExecutionStep = "archive"
	StepRespond  ExecutionStep = "respond"
)

// ExecutionError records which step of an operation failed.
type ExecutionError struct {
	Operation string
	Step      ExecutionStep
	Cause     error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Operation, e.Step, e.Cause)
}

func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

// Operation is a multi-store write. I is the input, P what Perform
// produced, V the verified state and O the caller's result. Nil steps are
// skipped and pass along zero values.
type Operation[I, P, V, O any] struct {
	Name     string
	Validate func(ctx context.Context, in I) error
	Perform  func(ctx context.Context, in I) (P, error)
	Verify   func(ctx context.Context, in I, performed P) (V, error)
	Archive  func(ctx context.Context, in I, verified V) error
	Respond  func(ctx context.Context, in I, verified V) (O, error)
}

// Executor runs operations and logs their progress.
type Executor struct {
	logger *slog.Logger
}

// NewExecutor returns an Executor logging to logger, or to slog.Default
// when logger is nil.
func NewExecutor(logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}

	return &Executor{logger: logger}
}

// Execute runs op on in. The first failing step stops the run and is
// reported as an *ExecutionError wrapping the step's error.
func Execute[I, P, V, O any](ctx context.Context, exec *Executor, op Operation[I, P, V, O], in I) (O, error) {
	var (
		out       O
		performed P
		verified  V
	)

	logger := logging.FromContextOr(ctx, exec.logger).With(slog.String("operation", op.Name))
	start := time.Now()

	steps := []struct {
		step ExecutionStep
		run  func() error
	}{
		{StepValidate, func() error {
			if op.Validate == nil {
				return nil
			}
			return op.Validate(ctx, in)
		}},
		{StepPerform, func() (err error) {
			if op.Perform != nil {
				performed, err = op.Perform(ctx, in)
			}
			return err
		}},
		{StepVerify, func() (err error) {
			if op.Verify != nil {
				verified, err = op.Verify(ctx, in, performed)
			}
			return err
		}},
		{StepArchive, func() error {
			if op.Archive == nil {
				return nil
			}
			return op.Archive(ctx, in, verified)
		}},
		{StepRespond, func() (err error) {
			if op.Respond != nil {
				out, err = op.Respond(ctx, in, verified)
			}
			return err
		}},
	}

	for _, s := range steps {
		if err := s.run(); err != nil {
			level := slog.LevelError
			if s.step == StepValidate {
				level = slog.LevelWarn
			}

			logger.Log(ctx, level, "operation step failed", slog.String("step", string(s.step)), slog.Any("error", err))

			var zero O

			return zero, &ExecutionError{Operation: op.Name, Step: s.step, Cause: err}
		}

		logger.DebugContext(ctx, "operation step done", slog.String("step", string(s.step)))
	}

	logger.InfoContext(ctx, "operation completed", slog.Duration("duration", time.Since(start)))

	return out, nil
}

// IsExecutionError reports whether err came out of Execute.
func IsExecutionError(err error) bool {
	_, ok := GetExecutionStep(err)
	return ok
}

// GetExecutionStep returns the step an Execute error failed in.
func GetExecutionStep(err error) (ExecutionStep, bool) {
	var execErr *ExecutionError
	if errors.As(err, &execErr) {
		return execErr.Step, true
	}

	return "", false
}
