// Package emd - the driver.
//
// Solve and SolveParallel validate the call, reduce away zero-weight
// supply/demand nodes, build the initial all-artificial basis, run the
// pivot loop to termination, and write the result back into the caller's
// dense n1*n2 layout. Both entry points share this one internal core and
// differ only in how the next entering arc is priced.
package emd

import (
	"context"
	"fmt"
	"io"
	"math"
)

// reduceProblem scans supply and demand once each, in index order,
// building the retained-index mappings ir/jr and the combined, signed
// per-node supply array the basis tree is built from.
func reduceProblem(supply, demand []float64) (ir, jr []int, nodeSupply []float64) {
	ir = make([]int, 0, len(supply))
	for i, v := range supply {
		if v > 0 {
			ir = append(ir, i)
		}
	}
	jr = make([]int, 0, len(demand))
	for j, v := range demand {
		if v > 0 {
			jr = append(jr, j)
		}
	}

	nodeSupply = make([]float64, len(ir)+len(jr))
	for i, orig := range ir {
		nodeSupply[i] = supply[orig]
	}
	for j, orig := range jr {
		nodeSupply[len(ir)+j] = -demand[orig] // negated to mark sinks
	}

	return ir, jr, nodeSupply
}

// resolveTolerance and resolveBlockSize implement the zero-means-auto
// sizing documented on Options.
func resolveTolerance(tol float64, bigM float64) float64 {
	if tol > 0 {
		return tol
	}

	return bigM * 1e-9
}

func resolveBlockSize(blockSize, numRealArcs int) int {
	if blockSize > 0 {
		return blockSize
	}
	b := int(math.Ceil(math.Sqrt(float64(numRealArcs))))
	if b < MinBlockSize {
		b = MinBlockSize
	}

	return b
}

// priceFunc abstracts the one difference between Solve's and
// SolveParallel's pivot loops: how the next entering arc is priced.
type priceFunc func(*Engine) (arc int, rc float64, optimal bool)

// solveCore runs validation, reduction, the pivot loop and write-back
// shared by Solve and SolveParallel.
//
// Complexity: O(n1*n2) to validate and write back, plus O(iterations *
// (blockSize + moved-subtree size)) for the pivot loop itself.
func solveCore(
	n1, n2 int,
	supply, demand, dist []float64,
	flow, alpha, beta []float64,
	opts Options,
	price priceFunc,
) (cost float64, status Status, err error) {
	if err := validateShapes(n1, n2, supply, demand, dist, flow, alpha, beta); err != nil {
		return 0, Optimal, err
	}
	if hasNegative(supply) || hasNegative(demand) {
		return 0, Infeasible, nil
	}

	maxAbs, err := maxAbsFinite(dist)
	if err != nil {
		return 0, Optimal, err
	}

	ir, jr, nodeSupply := reduceProblem(supply, demand)
	nR, mR := len(ir), len(jr)
	if nR == 0 || mR == 0 {
		// Every supply weight or every demand weight was zero: nothing to
		// transport, nothing to write.
		return 0, Optimal, nil
	}

	bigM := float64(1+n1+n2) * (maxAbs + 1)

	d := NewDigraph(nR, mR)
	cv := NewCostView(d, dist, n2, ir, jr, bigM)
	tree := NewTree(d, nodeSupply, bigM)

	tol := resolveTolerance(opts.Tolerance, bigM)
	blockSize := resolveBlockSize(opts.BlockSize, d.NumRealArcs())
	engine := NewEngine(d, cv, tree, tol, blockSize)

	status = Optimal
	iter := 0
	for {
		if opts.MaxIter > 0 && iter >= opts.MaxIter {
			status = MaxIterReached
			break
		}

		arc, rc, optimal := price(engine)
		if optimal {
			status = Optimal
			break
		}

		plan, unbounded := engine.ratioTest(arc, rc)
		if unbounded {
			status = Unbounded
			break
		}

		engine.applyPivot(plan)
		iter++

		if opts.Verbose && opts.Trace != nil {
			writeTrace(opts.Trace, iter, plan)
		}
	}

	if status == Unbounded {
		return 0, status, nil
	}

	// At optimality, any residual flow on an artificial arc means the
	// retained supply and demand totals could not be matched exactly:
	// infeasible. A run stopped by MaxIter is reported as MaxIterReached.
	if status == Optimal {
		for v := 0; v < d.NumArtificialArcs(); v++ {
			if tree.flow[d.ArtificialArcID(v)] > tol {
				return 0, Infeasible, nil
			}
		}
	}

	// Write back over every real arc (not just basis ones): the cost and
	// flow of every (i, j) pair is written unconditionally, zero flow
	// included, and alpha/beta are written once per retained row/column.
	for i := 0; i < nR; i++ {
		alpha[ir[i]] = -tree.potential[i]
		for j := 0; j < mR; j++ {
			arc := d.RealArcID(i, j)
			f := tree.flow[arc]
			flow[ir[i]*n2+jr[j]] = f
			cost += f * cv.Cost(arc)
		}
	}
	for j := 0; j < mR; j++ {
		beta[jr[j]] = tree.potential[nR+j]
	}

	return cost, status, nil
}

// writeTrace writes one human-readable line describing a pivot to
// opts.Trace. Errors from Trace.Write are intentionally ignored: tracing
// is diagnostic, never load-bearing.
func writeTrace(trace io.Writer, iter int, plan pivotPlan) {
	_, _ = fmt.Fprintf(trace, "pivot %d: enter=%d leave=%d delta=%g\n",
		iter, plan.enteringArc, plan.leaveArc, plan.delta)
}

// Solve computes the minimum-cost flow between supply (length n1) and
// demand (length n2) under the dense, row-major cost matrix dist (length
// n1*n2), using single-threaded block-search pricing.
//
// On OPTIMAL or MAX_ITER_REACHED, flow (length n1*n2), alpha (length n1)
// and beta (length n2) are filled in for every retained (non-zero-weight)
// index; entries for zero-weight rows/columns are left untouched (the
// caller must pre-zero them). On INFEASIBLE or UNBOUNDED,
// none of flow/alpha/beta are written and cost is 0.
//
// err is non-nil only for malformed calls (dimension mismatch, empty
// problem, non-finite cost entry) - never for a property of the LP
// instance itself, which is reported through status.
func Solve(
	n1, n2 int,
	supply, demand, dist []float64,
	flow, alpha, beta []float64,
	opts Options,
) (cost float64, status Status, err error) {
	return solveCore(n1, n2, supply, demand, dist, flow, alpha, beta, opts,
		func(e *Engine) (int, float64, bool) { return e.Price() })
}

// SolveParallel is Solve's block-search-parallel sibling: pricing for
// each pivot is split across opts.NumThreads workers scanning disjoint
// contiguous arc ranges. Pivoting itself stays single-threaded - only
// pricing is parallelized.
//
// Returns ErrInvalidThreadCount if opts.NumThreads <= 0.
func SolveParallel(
	n1, n2 int,
	supply, demand, dist []float64,
	flow, alpha, beta []float64,
	opts Options,
) (cost float64, status Status, err error) {
	if opts.NumThreads <= 0 {
		return 0, Optimal, ErrInvalidThreadCount
	}

	ctx := context.Background()
	numThreads := opts.NumThreads

	return solveCore(n1, n2, supply, demand, dist, flow, alpha, beta, opts,
		func(e *Engine) (int, float64, bool) { return e.PriceParallel(ctx, numThreads) })
}
