// Package emd - the bipartite digraph model.
//
// Nodes and arcs are addressed by consecutive integers; every accessor
// here is a pure function of those ids and the two retained counts. No
// node or arc carries an allocated identity beyond its int id.
package emd

// Digraph addresses the nR+mR+1 nodes and nR*mR+(nR+mR) arcs of the
// retained transportation problem:
//
//	nodes:    supplies [0, nR), demands [nR, nR+mR), root = nR+mR
//	real arcs:       [0, nR*mR), id = i*mR + j for supply i, demand j
//	artificial arcs: [nR*mR, nR*mR+nR+mR), one per non-root node
type Digraph struct {
	nR int // retained supply count
	mR int // retained demand count
}

// NewDigraph builds the bipartite digraph for nR retained supplies and mR
// retained demands. Both must be strictly positive.
//
// Complexity: O(1).
func NewDigraph(nR, mR int) *Digraph {
	return &Digraph{nR: nR, mR: mR}
}

// NumSupply returns the retained supply node count.
func (d *Digraph) NumSupply() int { return d.nR }

// NumDemand returns the retained demand node count.
func (d *Digraph) NumDemand() int { return d.mR }

// NumNodes returns nR + mR + 1 (including the root).
func (d *Digraph) NumNodes() int { return d.nR + d.mR + 1 }

// Root returns the id of the auxiliary root node.
func (d *Digraph) Root() int { return d.nR + d.mR }

// NumRealArcs returns nR*mR.
func (d *Digraph) NumRealArcs() int { return d.nR * d.mR }

// NumArtificialArcs returns nR+mR (one per non-root node).
func (d *Digraph) NumArtificialArcs() int { return d.nR + d.mR }

// NumArcs returns the total arc count (real + artificial).
func (d *Digraph) NumArcs() int { return d.NumRealArcs() + d.NumArtificialArcs() }

// IsReal reports whether arc is a real (supply->demand) arc.
func (d *Digraph) IsReal(arc int) bool { return arc < d.NumRealArcs() }

// IsSupply reports whether node is a retained supply node.
func (d *Digraph) IsSupply(node int) bool { return node >= 0 && node < d.nR }

// IsDemand reports whether node is a retained demand node.
func (d *Digraph) IsDemand(node int) bool { return node >= d.nR && node < d.nR+d.mR }

// IsRoot reports whether node is the auxiliary root.
func (d *Digraph) IsRoot(node int) bool { return node == d.Root() }

// RealArcID returns the arc id for the real arc between retained supply i
// and retained demand j. Inverse of SupplyIndex/DemandIndex on a real arc.
//
// Complexity: O(1).
func (d *Digraph) RealArcID(i, j int) int { return i*d.mR + j }

// SupplyIndex returns the retained supply index i for a real arc id.
func (d *Digraph) SupplyIndex(arc int) int { return arc / d.mR }

// DemandIndex returns the retained demand index j for a real arc id.
func (d *Digraph) DemandIndex(arc int) int { return arc % d.mR }

// ArtificialArcID returns the artificial-arc id for non-root node v
// (v in [0, nR+mR)).
func (d *Digraph) ArtificialArcID(v int) int { return d.NumRealArcs() + v }

// ArtificialNode returns the non-root node id owning artificial arc id.
func (d *Digraph) ArtificialNode(arc int) int { return arc - d.NumRealArcs() }

// Source returns the tail node id of arc, given real arcs are always
// oriented supply->demand and artificial arcs are oriented node->root
// (the orientation used at BASIS construction time; the pivot engine may
// subsequently store the arc the other way around in the tree via
// pred_arc bookkeeping, but Source/Target describe the arc's fixed,
// physical endpoints - i.e. which end the cost/flow sign convention is
// defined against - not its current role in the tree).
//
// Complexity: O(1).
func (d *Digraph) Source(arc int) int {
	if d.IsReal(arc) {
		return d.SupplyIndex(arc)
	}
	v := d.ArtificialNode(arc)
	if v < d.nR {
		return v // supply-side artificial: v -> root
	}
	return d.Root() // demand-side artificial: root -> v
}

// Target returns the head node id of arc (see Source for orientation notes).
func (d *Digraph) Target(arc int) int {
	if d.IsReal(arc) {
		return d.nR + d.DemandIndex(arc)
	}
	v := d.ArtificialNode(arc)
	if v < d.nR {
		return d.Root()
	}
	return v
}

// Endpoints returns (Source(arc), Target(arc)) in one call to avoid a
// second id-classification in hot loops.
func (d *Digraph) Endpoints(arc int) (src, tgt int) {
	return d.Source(arc), d.Target(arc)
}
