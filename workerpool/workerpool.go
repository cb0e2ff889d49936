// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides the fork-join primitive the clause kernel
// fans out over (the automata updater runs sequentially): a persistent
// pool of goroutines, created once per estimator at first fit and
// reused across every subsequent epoch, that splits a clause range into
// disjoint contiguous slices and runs a full barrier before returning.
//
// Per spec §5, clauses are data-parallel and each worker writes only to
// its own disjoint slice of clause_output, so a static per-worker slice
// (rather than atomic work-stealing) is sufficient — per-clause work is
// uniform.
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a persistent worker pool reused across every epoch of a fit
// call, avoiding per-sample goroutine spawn overhead.
type Pool struct {
	numWorkers int
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomic.Bool
}

type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

// New creates a pool with the given number of workers. numWorkers <= 0
// resolves to GOMAXPROCS, matching the n_jobs=-1 auto-detection the
// params package performs before constructing a pool.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		workC:      make(chan workItem, numWorkers*2),
	}

	for range numWorkers {
		go p.worker()
	}

	return p
}

func (p *Pool) worker() {
	for item := range p.workC {
		item.fn()
		item.barrier.Done()
	}
}

// NumWorkers returns the worker count the pool was created with.
func (p *Pool) NumWorkers() int { return p.numWorkers }

// Close shuts the pool down. Safe to call more than once.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// ParallelFor runs fn once per disjoint contiguous clause range covering
// [0, n), then blocks until every worker has returned — the full barrier
// spec §5 requires between clause evaluation, vote aggregation, feedback
// allocation, and automata update.
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}

	if p.closed.Load() {
		fn(0, n)
		return
	}

	workers := min(p.numWorkers, n)
	if workers == 1 {
		fn(0, n)
		return
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)

	for i := range workers {
		start := i * chunkSize
		end := min(start+chunkSize, n)
		if start >= n {
			wg.Done()
			continue
		}

		p.workC <- workItem{
			fn: func() {
				fn(start, end)
			},
			barrier: &wg,
		}
	}

	wg.Wait()
}
