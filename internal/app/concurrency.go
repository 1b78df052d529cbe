package app

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// into adapts a typed load to errgroup, storing its result in dst.
func into[T any](ctx context.Context, dst *T, fn func(context.Context) (T, error)) func() error {
	return func() error {
		v, err := fn(ctx)
		if err != nil {
			return err
		}

		*dst = v

		return nil
	}
}

// Parallel2 runs two loads concurrently. The first error cancels the other
// and is returned wrapped; the results are then zero.
//
//	quotes, ids, err := Parallel2(ctx,
//	    func(ctx context.Context) ([]domain.Quote, error) { return quotes.Sample(ctx, 100) },
//	    func(ctx context.Context) ([]string, error) { return favorites.QuoteIDs(ctx, userID) },
//	)
func Parallel2[A, B any](
	ctx context.Context,
	fa func(context.Context) (A, error),
	fb func(context.Context) (B, error),
) (A, B, error) {
	var (
		a A
		b B
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(into(gctx, &a, fa))
	g.Go(into(gctx, &b, fb))

	if err := g.Wait(); err != nil {
		var (
			za A
			zb B
		)

		return za, zb, fmt.Errorf("parallel load: %w", err)
	}

	return a, b, nil
}

// Parallel3 is Parallel2 for three loads.
func Parallel3[A, B, C any](
	ctx context.Context,
	fa func(context.Context) (A, error),
	fb func(context.Context) (B, error),
	fc func(context.Context) (C, error),
) (A, B, C, error) {
	var (
		a A
		b B
		c C
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(into(gctx, &a, fa))
	g.Go(into(gctx, &b, fb))
	g.Go(into(gctx, &c, fc))

	if err := g.Wait(); err != nil {
		var (
			za A
			zb B
			zc C
		)

		return za, zb, zc, fmt.Errorf("parallel load: %w", err)
	}

	return a, b, c, nil
}

// FanOut runs fn over items with at most workers in flight. After the
// first error no further item starts; that error is returned once running
// calls finish. Fewer than one worker counts as one.
//
//	err := FanOut(ctx, 4, due, func(ctx context.Context, s notify.Schedule) error {
//	    return publish(ctx, s)
//	})
func FanOut[T any](ctx context.Context, workers int, items []T, fn func(context.Context, T) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))

	for _, item := range items {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			return fn(gctx, item)
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("fan out: %w", err)
	}

	return nil
}
