// Package emd - the cost view.
//
// CostView gives the pivot engine random access to an arc's cost without
// it ever needing to know whether the arc is real or artificial: real
// arcs read through the caller's dense distance matrix via the retained
// index mappings, artificial arcs read from a small internal buffer.
// Artificial ids are laid out contiguously after real ids (digraph.go),
// so the dispatch is a single integer comparison, never a type switch,
// keeping the hot inner pivot loop branch-predictable.
package emd

// CostView maps an arc id to its cost.
//
// ir/jr are the retained-index mappings built by reduceProblem; they are
// held by reference (never copied) so a real-arc lookup costs one
// multiply-add plus two slice reads.
type CostView struct {
	d    *Digraph
	dist []float64 // caller's n1*n2 row-major distance matrix (borrowed, read-only)
	n2   int       // stride of dist (original, unreduced demand count)
	ir   []int     // ir[i] = original supply index of retained supply i
	jr   []int     // jr[j] = original demand index of retained demand j

	artificial []float64 // cost of artificial arc id (NumRealArcs()+v); grown, never shrunk
}

// NewCostView builds a cost view over dist (row-major, stride n2) through
// the retained index mappings ir, jr, seeding every artificial arc's cost
// at bigM.
//
// Complexity: O(nR+mR) for the artificial buffer; O(1) otherwise.
func NewCostView(d *Digraph, dist []float64, n2 int, ir, jr []int, bigM float64) *CostView {
	artificial := make([]float64, d.NumArtificialArcs())
	for i := range artificial {
		artificial[i] = bigM
	}

	return &CostView{d: d, dist: dist, n2: n2, ir: ir, jr: jr, artificial: artificial}
}

// Cost returns the cost of arc. No bounds checking is performed - arc ids
// are expected to already be valid by construction in the pivot's inner
// loops.
//
// Complexity: O(1).
func (c *CostView) Cost(arc int) float64 {
	if c.d.IsReal(arc) {
		i := c.d.SupplyIndex(arc)
		j := c.d.DemandIndex(arc)

		return c.dist[c.ir[i]*c.n2+c.jr[j]]
	}

	return c.artificial[arc-c.d.NumRealArcs()]
}

// SetArtificialCost overrides the cost of the artificial arc owned by
// non-root node v. The driver does not call it: solveCore computes big-M
// before NewCostView and seeds every artificial arc with it there.
//
// Complexity: O(1).
func (c *CostView) SetArtificialCost(v int, cost float64) {
	c.artificial[v] = cost
}

// GrowArtificial extends the artificial-cost buffer so it can address up
// to newSize entries, padding new slots with bigM. Existing entries are
// preserved; GrowArtificial never truncates backing storage.
//
// Complexity: O(newSize) when it grows, O(1) otherwise. The driver does
// not call it; NewCostView already sizes the buffer to nR+mR.
func (c *CostView) GrowArtificial(newSize int, bigM float64) {
	if newSize <= len(c.artificial) {
		return
	}
	grown := make([]float64, newSize)
	copy(grown, c.artificial)
	for i := len(c.artificial); i < newSize; i++ {
		grown[i] = bigM
	}
	c.artificial = grown
}
