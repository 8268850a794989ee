// Package emd - the pivot engine.
//
// Engine bundles the digraph, cost view and basis tree with the
// block-search pricing cursor and drives one pivot at a time: price an
// entering arc, ratio-test the cycle it closes, apply the flow update and
// basis exchange.
package emd

import "math"

// Engine drives pricing and pivoting over a fixed Digraph/CostView/Tree.
type Engine struct {
	d    *Digraph
	cost *CostView
	tree *Tree

	tol       float64
	blockSize int
	cursor    int // next block-search scan start, a multiple of blockSize
}

// NewEngine builds a pivot engine. tol and blockSize are used as given:
// NewEngine does no auto-sizing (solveCore resolves them with
// resolveTolerance/resolveBlockSize first), so blockSize must be positive.
func NewEngine(d *Digraph, cost *CostView, tree *Tree, tol float64, blockSize int) *Engine {
	return &Engine{d: d, cost: cost, tree: tree, tol: tol, blockSize: blockSize}
}

// reducedCost computes c̄(arc) = cost(arc) - pi(target) + pi(source).
func (e *Engine) reducedCost(arc int) float64 {
	src, tgt := e.d.Endpoints(arc)

	return e.cost.Cost(arc) - e.tree.potential[tgt] + e.tree.potential[src]
}

// priceBlock scans one block of real arcs starting at the engine's
// cursor, returns the best eligible candidate in that block (ties broken
// toward the lowest arc id by scanning ascending and only replacing on a
// strictly smaller reduced cost), and advances the cursor past it.
//
// Complexity: O(blockSize).
func (e *Engine) priceBlock() (arc int, rc float64, found bool) {
	n := e.d.NumRealArcs()
	start := e.cursor
	end := start + e.blockSize
	if end > n {
		end = n
	}

	arc = -1
	for a := start; a < end; a++ {
		if e.tree.state[a] != Lower {
			continue
		}
		r := e.reducedCost(a)
		if r < -e.tol && (!found || r < rc) {
			arc, rc, found = a, r, true
		}
	}

	e.cursor = end
	if e.cursor >= n {
		e.cursor = 0
	}

	return arc, rc, found
}

// Price runs block-search pricing: scan blocks starting
// at the cursor, one full revolution at most, returning as soon as a
// block yields an eligible arc. optimal is true only after a complete
// revolution found nothing.
//
// Complexity: O(numRealArcs) worst case (one full revolution), O(blockSize)
// in the common case where the very next block has a candidate.
func (e *Engine) Price() (arc int, rc float64, optimal bool) {
	n := e.d.NumRealArcs()
	if n == 0 {
		return -1, 0, true
	}

	numBlocks := (n + e.blockSize - 1) / e.blockSize
	for i := 0; i < numBlocks; i++ {
		a, r, found := e.priceBlock()
		if found {
			return a, r, false
		}
	}

	return -1, 0, true
}

// pivotPlan is the result of a ratio test: everything applyPivot needs to
// carry out the flow update and basis exchange without recomputing the
// cycle.
type pivotPlan struct {
	enteringArc int
	enteringRC  float64
	leaveArc    int
	leaveNode   int
	insideNode  int // entering arc's endpoint inside the detached subtree
	outsideNode int // entering arc's endpoint outside the detached subtree
	join        int
	delta       float64
	uSide       []CycleArc
	vSide       []CycleArc
}

// ratioTest finds the leaving arc for enteringArc: the backward arc on
// the pivot cycle with minimum current flow.
// Ties are broken deterministically: prefer the candidate closest to the
// join on the u-side; if the u-side has none, prefer the one closest to
// the join on the v-side.
//
// Complexity: O(depth(u)+depth(v)).
func (e *Engine) ratioTest(enteringArc int, enteringRC float64) (plan pivotPlan, unbounded bool) {
	join, uSide, vSide := e.tree.EnumerateCycle(enteringArc)
	u, v := e.d.Endpoints(enteringArc)

	delta := math.Inf(1)
	any := false
	for _, ca := range uSide {
		if !ca.Forward {
			any = true
			if f := e.tree.flow[ca.Arc]; f < delta {
				delta = f
			}
		}
	}
	for _, ca := range vSide {
		if !ca.Forward {
			any = true
			if f := e.tree.flow[ca.Arc]; f < delta {
				delta = f
			}
		}
	}
	if !any {
		return pivotPlan{}, true
	}

	base := pivotPlan{
		enteringArc: enteringArc,
		enteringRC:  enteringRC,
		join:        join,
		delta:       delta,
		uSide:       uSide,
		vSide:       vSide,
	}

	for i := len(uSide) - 1; i >= 0; i-- {
		ca := uSide[i]
		if !ca.Forward && e.tree.flow[ca.Arc] <= delta+e.tol {
			base.leaveArc, base.leaveNode = ca.Arc, ca.Node
			base.insideNode, base.outsideNode = u, v

			return base, false
		}
	}
	for i := len(vSide) - 1; i >= 0; i-- {
		ca := vSide[i]
		if !ca.Forward && e.tree.flow[ca.Arc] <= delta+e.tol {
			base.leaveArc, base.leaveNode = ca.Arc, ca.Node
			base.insideNode, base.outsideNode = v, u

			return base, false
		}
	}

	// Unreachable: any==true guarantees at least one backward arc exists
	// on one of the two sides.
	return pivotPlan{}, true
}

// applyPivot carries out the flow update and basis exchange described by
// plan.
//
// Complexity: O(|moved subtree|).
func (e *Engine) applyPivot(plan pivotPlan) {
	d := plan.delta
	e.tree.flow[plan.enteringArc] += d
	for _, ca := range plan.uSide {
		if ca.Forward {
			e.tree.flow[ca.Arc] += d
		} else {
			e.tree.flow[ca.Arc] -= d
		}
	}
	for _, ca := range plan.vSide {
		if ca.Forward {
			e.tree.flow[ca.Arc] += d
		} else {
			e.tree.flow[ca.Arc] -= d
		}
	}

	e.tree.state[plan.leaveArc] = Lower
	e.tree.flow[plan.leaveArc] = 0
	e.tree.state[plan.enteringArc] = Basis

	moved := e.tree.UpdateTree(plan.enteringArc, plan.leaveNode, plan.insideNode, plan.outsideNode)

	// Potentials of every node in the moved subtree shift by ±c̄(entering),
	// sign set by which endpoint of the entering arc is the subtree's new
	// local root.
	delta := plan.enteringRC
	if plan.insideNode == e.d.Source(plan.enteringArc) {
		delta = -delta
	}
	e.tree.UpdatePotentials(moved, delta)
}
