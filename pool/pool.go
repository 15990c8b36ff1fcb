// Package pool provides a fixed-size worker pool: a bounded set of
// permits handed out to tasks that each run on their own goroutine.
package pool

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// New creates a pool admitting at most size concurrent tasks.
// Panics when size is not positive.
func New(size int) *Pool {
	if size <= 0 {
		panic("pool: non-positive size")
	}
	return &Pool{
		size: int64(size),
		sem:  semaphore.NewWeighted(int64(size)),
	}
}

// Pool bounds how many tasks run at once. The size is fixed at
// construction.
type Pool struct {
	size int64
	sem  *semaphore.Weighted
}

// Size returns the task limit the pool was built with.
func (p *Pool) Size() int {
	return int(p.size)
}

// Go runs task on its own goroutine once a permit is free, blocking
// until one is or ctx finishes. The permit is released when the task
// returns, even on panic.
func (p *Pool) Go(ctx context.Context, task func()) error {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	go func() {
		defer p.sem.Release(1)
		task()
	}()
	return nil
}

// TryGo is like [Pool.Go] but reports false instead of blocking when
// every permit is taken.
func (p *Pool) TryGo(task func()) bool {
	if !p.sem.TryAcquire(1) {
		return false
	}
	go func() {
		defer p.sem.Release(1)
		task()
	}()
	return true
}

// Wait blocks until every admitted task has finished or ctx does.
func (p *Pool) Wait(ctx context.Context) error {
	if err := p.sem.Acquire(ctx, p.size); err != nil {
		return err
	}
	p.sem.Release(p.size)
	return nil
}
