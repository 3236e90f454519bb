package workpool

import (
	"context"
	"errors"
	"runtime"
	"sort"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkers(t *testing.T) {
	assert.Equal(t, runtime.NumCPU(), Workers(0))
	assert.Equal(t, runtime.NumCPU(), Workers(-3))
	assert.Equal(t, 4, Workers(4))
}

func TestMap_PreservesOrder(t *testing.T) {
	items := make([]int, 200)
	for i := range items {
		items[i] = i
	}

	got, err := Map(context.Background(), items, 8, func(_ context.Context, n int) (int, error) {
		// Finish out of order on purpose.
		time.Sleep(time.Duration(n%5) * time.Millisecond)
		return n * n, nil
	})
	require.NoError(t, err)
	require.Len(t, got, len(items))
	for i, v := range got {
		assert.Equal(t, i*i, v)
	}
}

func TestMap_Empty(t *testing.T) {
	got, err := Map(context.Background(), []string{}, 4, func(_ context.Context, s string) (string, error) {
		t.Fatal("fn must not be called")
		return s, nil
	})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMap_BoundedConcurrency(t *testing.T) {
	var running, peak int32
	items := make([]int, 50)

	_, err := Map(context.Background(), items, 3, func(_ context.Context, _ int) (int, error) {
		n := atomic.AddInt32(&running, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(time.Millisecond)
		atomic.AddInt32(&running, -1)
		return 0, nil
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(3))
}

func TestMap_ErrorStopsRun(t *testing.T) {
	boom := errors.New("boom")
	var calls int32
	items := make([]int, 1000)
	for i := range items {
		items[i] = i
	}

	got, err := Map(context.Background(), items, 2, func(_ context.Context, n int) (int, error) {
		atomic.AddInt32(&calls, 1)
		if n == 3 {
			return 0, boom
		}
		return n, nil
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "item 3")
	assert.Nil(t, got)
	assert.Less(t, atomic.LoadInt32(&calls), int32(len(items)))
}

func TestMap_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Map(ctx, []int{1, 2, 3}, 2, func(_ context.Context, n int) (int, error) {
		return n, nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCollect_CompletionOrder(t *testing.T) {
	items := []int{30, 1, 15}

	got, err := Collect(context.Background(), items, len(items), func(_ context.Context, n int) (int, error) {
		time.Sleep(time.Duration(n) * time.Millisecond)
		return n, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 15, 30}, got)
}

func TestCollect_Skip(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6}

	got, err := Collect(context.Background(), items, 3, func(_ context.Context, n int) (int, error) {
		if n%2 == 0 {
			return 0, ErrSkip
		}
		return n, nil
	})
	require.NoError(t, err)
	sort.Ints(got)
	assert.Equal(t, []int{1, 3, 5}, got)
}

func TestCollect_Error(t *testing.T) {
	boom := errors.New("provider down")
	_, err := Collect(context.Background(), []string{"a", "b"}, 1, func(_ context.Context, s string) (string, error) {
		if s == "b" {
			return "", boom
		}
		return s, nil
	})
	assert.ErrorIs(t, err, boom)
}
