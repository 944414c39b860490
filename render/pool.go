// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package render

import (
	"context"

	"github.com/js-arias/phyview/edge"
	"golang.org/x/sync/errgroup"
)

// DefaultThreads is the default number of working threads.
const DefaultThreads = 8

// A Pool runs a task over contiguous parts of a sequence
// using a fixed number of goroutines.
type Pool struct {
	threads int
}

// NewPool returns a pool with the indicated number of threads.
// If threads is less than one,
// DefaultThreads is used.
func NewPool(threads int) *Pool {
	if threads < 1 {
		threads = DefaultThreads
	}
	return &Pool{threads: threads}
}

// Threads returns the number of threads of the pool.
func (p *Pool) Threads() int {
	if p == nil {
		return DefaultThreads
	}
	return p.threads
}

// Map runs fn for each part of a sequence of n elements
// split in as many parts as threads in the pool.
// fn receives the starting and ending indices of the part,
// and results are returned in the order of the parts.
// Tasks only read shared data,
// each task owns its result.
func Map[T any](ctx context.Context, p *Pool, n int, fn func(start, end int) T) ([]T, error) {
	bounds := edge.Chunk(n, p.Threads())
	out := make([]T, len(bounds)-1)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.Threads())
	for i := range out {
		i := i // per-iteration copy; the module targets go 1.21 loop semantics
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = fn(bounds[i], bounds[i+1])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
