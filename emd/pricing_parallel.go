// Package emd - OMP-style parallel pricing.
//
// PriceParallel is the bounded-worker-pool sibling of Engine.Price: instead
// of scanning one block per call and advancing a cursor, it splits the
// entire real-arc range into numThreads disjoint contiguous ranges and
// scans all of them concurrently, then reduces to a single global best,
// using golang.org/x/sync/errgroup to manage the worker pool.
package emd

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// workerBest is one worker's local best candidate over its arc range.
type workerBest struct {
	arc   int
	rc    float64
	found bool
}

// scanRange finds the best eligible (reduced cost < -tol) real arc in
// [lo, hi), ties broken toward the lowest arc id. It only reads
// e.tree.state/e.tree.potential and e.cost - no shared mutable state is
// touched during the pass, so concurrent calls across disjoint ranges
// never race.
func (e *Engine) scanRange(lo, hi int) workerBest {
	var best workerBest
	for a := lo; a < hi; a++ {
		if e.tree.state[a] != Lower {
			continue
		}
		r := e.reducedCost(a)
		if r < -e.tol && (!best.found || r < best.rc) {
			best = workerBest{arc: a, rc: r, found: true}
		}
	}

	return best
}

// PriceParallel scans every real arc in one pass, split into numThreads
// disjoint contiguous ranges run concurrently, and reduces the per-worker
// bests to a single global best (ties broken toward the lowest arc id).
// optimal is true when no worker found an eligible arc.
//
// Complexity: O(numRealArcs / numThreads) wall-clock, O(numRealArcs) work.
func (e *Engine) PriceParallel(ctx context.Context, numThreads int) (arc int, rc float64, optimal bool) {
	n := e.d.NumRealArcs()
	if n == 0 {
		return -1, 0, true
	}
	if numThreads < 1 {
		numThreads = 1
	}
	if numThreads > n {
		numThreads = n
	}

	chunk := (n + numThreads - 1) / numThreads
	results := make([]workerBest, numThreads)

	g, _ := errgroup.WithContext(ctx)
	for w := 0; w < numThreads; w++ {
		w := w
		lo := w * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			continue
		}
		g.Go(func() error {
			results[w] = e.scanRange(lo, hi)

			return nil
		})
	}
	_ = g.Wait() // every worker is pure data scanning; none can return an error

	var best workerBest
	for _, r := range results {
		if !r.found {
			continue
		}
		if !best.found || r.rc < best.rc || (r.rc == best.rc && r.arc < best.arc) {
			best = r
		}
	}
	if !best.found {
		return -1, 0, true
	}

	return best.arc, best.rc, false
}
