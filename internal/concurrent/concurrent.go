// Try to get some speed up on large trees by blaming files in parallel
package concurrent

import (
	"context"
	"iter"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// A tally operation over independent items that we can divide among workers.
//
// Tally runs once per item. A failed item is reported to Failed and
// contributes nothing; it does not stop the other workers. Merge folds each
// successful result into the running total and must be commutative, since
// results arrive in whatever order workers finish. Merge, Failed and Done are
// called while holding a lock, so they need no synchronization of their own.
type Whoperation[In any, T any] struct {
	Items   iter.Seq[In]
	Workers int // <= 0 means one per available CPU
	Tally   func(ctx context.Context, item In) (T, error)
	Merge   func(total T, result T) T
	Failed  func(item In, err error) // Optional
	Done    func(item In)            // Optional, called after every item
}

func getNWorkers(nCPU int, requested int) int {
	if requested > 0 {
		return requested
	}

	return max(1, nCPU)
}

// Runs the operation and returns the merged result.
//
// The only error returned is the context's, if it was cancelled before all
// items were processed. The partial result is still returned in that case.
func Fold[In any, T any](
	ctx context.Context,
	whop Whoperation[In, T],
) (T, error) {
	nWorkers := getNWorkers(runtime.GOMAXPROCS(0), whop.Workers)
	logger().Debug("decided to use n workers", "value", nWorkers)

	var (
		mu     sync.Mutex
		result T
	)

	sem := semaphore.NewWeighted(int64(nWorkers))
	g, gctx := errgroup.WithContext(ctx)

	for item := range whop.Items {
		if err := sem.Acquire(gctx, 1); err != nil {
			break // Cancelled
		}

		g.Go(func() error {
			defer sem.Release(1)

			t, err := whop.Tally(gctx, item)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				if whop.Failed != nil {
					whop.Failed(item, err)
				}
			} else {
				result = whop.Merge(result, t)
			}

			if whop.Done != nil {
				whop.Done(item)
			}

			return nil
		})
	}

	// Workers never return errors, failures are isolated per item
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return result, err
	}

	return result, nil
}
