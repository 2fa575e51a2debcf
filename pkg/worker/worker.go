// Package worker provides a bounded fan-out pool for independent per-entity work.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/KrishalDhungana/NBABrain/pkg/logger"
	"github.com/KrishalDhungana/NBABrain/pkg/metrics"
)

// Pool runs tasks on a fixed number of goroutines. A Pool holds no state
// between calls and may be shared.
type Pool struct {
	size   int
	name   string
	logger logger.Logger
}

// NewPool creates a pool with size workers; size < 1 uses runtime.NumCPU().
func NewPool(size int, opts ...Option) *Pool {
	if size < 1 {
		size = runtime.NumCPU()
	}
	p := &Pool{
		size:   size,
		name:   "worker-pool",
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.Named(p.name)
	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int { return p.size }

// Map applies fn to every item and returns the results in input order.
// The first error cancels the remaining work and is returned.
func Map[T, R any](ctx context.Context, p *Pool, items []T, fn func(context.Context, T) (R, error)) ([]R, error) {
	out := make([]R, len(items))
	if len(items) == 0 {
		return out, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workers := min(p.size, len(items))
	jobs := make(chan int)

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)

	metrics.UpdateWorkerActiveCount(workers)
	defer metrics.UpdateWorkerActiveCount(0)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				start := time.Now()
				r, err := fn(ctx, items[i])
				metrics.RecordWorkerTask(float64(time.Since(start).Microseconds()) / 1000)
				if err != nil {
					metrics.RecordWorkerError()
					errOnce.Do(func() {
						firstErr = fmt.Errorf("task %d: %w", i, err)
						cancel()
					})
					continue
				}
				out[i] = r
			}
		}()
	}

feed:
	for i := range items {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		p.logger.Warn(ctx, "fan-out aborted", logger.Error(firstErr))
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("fan-out canceled: %w", err)
	}
	return out, nil
}
