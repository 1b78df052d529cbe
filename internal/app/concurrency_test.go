package app

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParallel2(t *testing.T) {
	a, b, err := Parallel2(context.Background(),
		func(context.Context) (int, error) { return 1, nil },
		func(context.Context) (string, error) { return "two", nil },
	)

	require.NoError(t, err)
	assert.Equal(t, 1, a)
	assert.Equal(t, "two", b)
}

func TestParallel2_ErrorZeroesResults(t *testing.T) {
	boom := errors.New("boom")

	a, b, err := Parallel2(context.Background(),
		func(context.Context) (int, error) { return 1, nil },
		func(context.Context) (string, error) { return "", boom },
	)

	require.ErrorIs(t, err, boom)
	assert.Zero(t, a)
	assert.Empty(t, b)
}

func TestParallel3_CancelsSiblings(t *testing.T) {
	boom := errors.New("boom")

	_, _, _, err := Parallel3(context.Background(),
		func(ctx context.Context) (int, error) {
			<-ctx.Done()
			return 0, ctx.Err()
		},
		func(context.Context) (int, error) { return 0, boom },
		func(ctx context.Context) (int, error) {
			<-ctx.Done()
			return 0, ctx.Err()
		},
	)

	require.ErrorIs(t, err, boom)
}

func TestFanOut_ProcessesEveryItem(t *testing.T) {
	var (
		mu   sync.Mutex
		seen []int
	)

	err := FanOut(context.Background(), 3, []int{1, 2, 3, 4, 5}, func(_ context.Context, n int) error {
		mu.Lock()
		defer mu.Unlock()

		seen = append(seen, n)

		return nil
	})

	require.NoError(t, err)
	assert.ElementsMatch(t, []int{1, 2, 3, 4, 5}, seen)
}

func TestFanOut_StopsOnError(t *testing.T) {
	boom := errors.New("boom")
	var calls atomic.Int32

	items := make([]int, 100)

	err := FanOut(context.Background(), 1, items, func(context.Context, int) error {
		calls.Add(1)
		return boom
	})

	require.ErrorIs(t, err, boom)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFanOut_ZeroWorkersStillRuns(t *testing.T) {
	var calls atomic.Int32

	err := FanOut(context.Background(), 0, []string{"a", "b"}, func(context.Context, string) error {
		calls.Add(1)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}
