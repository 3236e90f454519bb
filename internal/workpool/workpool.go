// Package workpool runs a function over a slice on a fixed number of
// goroutines. Map keeps input order, Collect keeps completion order.
package workpool

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ErrSkip may be returned by a Collect function to drop an item without
// failing the whole run.
var ErrSkip = errors.New("workpool: skip item")

// Workers returns n, or the number of CPUs when n is not positive.
func Workers(n int) int {
	if n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// Map applies fn to every item and returns the results indexed by input
// position. The first error cancels the remaining work and is returned.
func Map[T, R any](ctx context.Context, items []T, workers int, fn func(context.Context, T) (R, error)) ([]R, error) {
	results := make([]R, len(items))
	if len(items) == 0 {
		return results, nil
	}

	g, ctx := errgroup.WithContext(ctx)

	work := make(chan int)
	g.Go(func() error {
		defer close(work)
		for i := range items {
			select {
			case work <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for range min(Workers(workers), len(items)) {
		g.Go(func() error {
			for i := range work {
				if err := ctx.Err(); err != nil {
					return err
				}
				r, err := fn(ctx, items[i])
				if err != nil {
					return fmt.Errorf("item %d: %w", i, err)
				}
				results[i] = r
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Collect applies fn to every item and returns the results in the order
// they finished. Items whose fn returns ErrSkip are left out.
func Collect[T, R any](ctx context.Context, items []T, workers int, fn func(context.Context, T) (R, error)) ([]R, error) {
	var mu sync.Mutex
	results := make([]R, 0, len(items))

	_, err := Map(ctx, items, workers, func(ctx context.Context, item T) (struct{}, error) {
		r, err := fn(ctx, item)
		if errors.Is(err, ErrSkip) {
			return struct{}{}, nil
		}
		if err != nil {
			return struct{}{}, err
		}

		mu.Lock()
		results = append(results, r)
		mu.Unlock()
		return struct{}{}, nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}
