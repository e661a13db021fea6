package agents

import (
	"context"
	"fmt"
	"sync"
)

// defaultConcurrency bounds in-flight provider calls per agent
const defaultConcurrency = 5

type queryResult[T any] struct {
	query string
	value T
	err   error
}

// fanOut runs fn for every query with at most limit calls in flight.
// Results keep the order of queries regardless of completion order.
func fanOut[T any](ctx context.Context, queries []string, limit int, fn func(ctx context.Context, query string) (T, error)) []queryResult[T] {
	if limit <= 0 {
		limit = defaultConcurrency
	}

	results := make([]queryResult[T], len(queries))
	semaphore := make(chan struct{}, limit)
	var wg sync.WaitGroup

	for i, q := range queries {
		wg.Add(1)
		go func(i int, q string) {
			defer wg.Done()

			select {
			case semaphore <- struct{}{}:
			case <-ctx.Done():
				results[i] = queryResult[T]{query: q, err: ctx.Err()}
				return
			}
			defer func() { <-semaphore }()

			value, err := fn(ctx, q)
			results[i] = queryResult[T]{query: q, value: value, err: err}
		}(i, q)
	}

	wg.Wait()
	return results
}

// failureSummary describes failed calls, or returns "" when all succeeded
func failureSummary[T any](what string, results []queryResult[T]) string {
	failed := 0
	var first error
	for _, r := range results {
		if r.err != nil {
			failed++
			if first == nil {
				first = r.err
			}
		}
	}
	if failed == 0 {
		return ""
	}
	return fmt.Sprintf("%d of %d %s calls failed: %v", failed, len(results), what, first)
}

func succeeded[T any](results []queryResult[T]) int {
	n := 0
	for _, r := range results {
		if r.err == nil {
			n++
		}
	}
	return n
}
