package context

import (
	"context"
	"fmt"
	"sync"
)

// Request is the state of one service call: a memo of fetched values and a
// list of staged writes.
type Request struct {
	ctx context.Context

	mu        sync.Mutex
	memo      map[string]any
	staged    []Action
	committed bool
}

// New returns an empty Request bound to ctx.
func New(ctx context.Context) *Request {
	return &Request{ctx: ctx, memo: map[string]any{}}
}

// Fetch returns the value memoized under key, calling fetch on the first
// use. Errors are not memoized.
func Fetch[T any](r *Request, key string, fetch func(ctx context.Context) (T, error)) (T, error) {
	r.mu.Lock()
	v, ok := r.memo[key]
	r.mu.Unlock()

	if ok {
		t, isT := v.(T)
		if !isT {
			var zero T
			return zero, fmt.Errorf("memo %q holds %T", key, v)
		}

		return t, nil
	}

	t, err := fetch(r.ctx)
	if err != nil {
		return t, err
	}

	r.mu.Lock()
	r.memo[key] = t
	r.mu.Unlock()

	return t, nil
}
