// Package emd - the spanning-tree basis state.
//
// Tree encodes the current basis as a rooted tree over the digraph's
// nR+mR+1 nodes using the classic network-simplex thread/depth/last-succ
// representation: a pre-order thread lets the pivot engine enumerate or
// relocate a subtree in O(|subtree|) instead of rebuilding parent
// pointers for the whole tree on every pivot.
package emd

// ArcState classifies a non-basis arc's bound, or marks it as basis.
// Upper is never reached by this solver (real arcs are uncapacitated);
// it is kept so a future capacitated extension has a slot to fill in
// without renumbering.
type ArcState int8

const (
	Lower ArcState = iota
	Basis
	Upper
)

// CycleArc is one tree arc on the path from an entering arc's endpoint up
// to the join node, tagged with the orientation it takes around the
// pivot cycle.
type CycleArc struct {
	Arc     int  // tree arc id (pred_arc of Node)
	Node    int  // the child endpoint of this tree arc
	Forward bool // true: flow increases by delta; false: flow decreases by delta
}

// Tree is the basis spanning tree over a Digraph's nR+mR+1 nodes.
type Tree struct {
	d *Digraph

	parent     []int
	predArc    []int
	depth      []int
	thread     []int
	revThread  []int
	lastSucc   []int
	potential  []float64
	flow       []float64
	state      []ArcState
}

// NewTree builds the initial all-artificial basis: every
// non-root node hangs directly off the root via its artificial arc, flow
// on that arc equal to the node's absolute signed supply, and potentials
// set to ±bigM so dual feasibility holds for every artificial arc.
//
// nodeSupply must have length d.NumSupply()+d.NumDemand(): positive
// entries for retained supply nodes, negative entries for retained
// demand nodes.
//
// Complexity: O(nR+mR).
func NewTree(d *Digraph, nodeSupply []float64, bigM float64) *Tree {
	n := d.NumNodes()
	root := d.Root()

	t := &Tree{
		d:         d,
		parent:    make([]int, n),
		predArc:   make([]int, n),
		depth:     make([]int, n),
		thread:    make([]int, n),
		revThread: make([]int, n),
		lastSucc:  make([]int, n),
		potential: make([]float64, n),
		flow:      make([]float64, d.NumArcs()),
		state:     make([]ArcState, d.NumArcs()),
	}

	t.parent[root] = -1
	t.predArc[root] = -1
	t.depth[root] = 0

	numNonRoot := n - 1
	for v := 0; v < numNonRoot; v++ {
		arc := d.ArtificialArcID(v)
		t.parent[v] = root
		t.predArc[v] = arc
		t.depth[v] = 1
		t.state[arc] = Basis

		supply := nodeSupply[v]
		if supply >= 0 {
			t.flow[arc] = supply
			t.potential[v] = -bigM // arc v->root, cost bigM: pi(root)-pi(v)=bigM
		} else {
			t.flow[arc] = -supply
			t.potential[v] = bigM // arc root->v, cost bigM: pi(v)-pi(root)=bigM
		}

		if v < numNonRoot-1 {
			t.thread[v] = v + 1
		} else {
			t.thread[v] = root
		}
		t.lastSucc[v] = v
	}

	if numNonRoot > 0 {
		t.thread[root] = 0
		t.revThread[0] = root
		for v := 1; v < numNonRoot; v++ {
			t.revThread[v] = v - 1
		}
		t.revThread[root] = numNonRoot - 1
		t.lastSucc[root] = numNonRoot - 1
	} else {
		t.thread[root] = root
		t.revThread[root] = root
		t.lastSucc[root] = root
	}

	// Real arcs start non-basic at LOWER with zero flow - the zero value
	// of ArcState and float64 already gives us this, nothing to set.

	return t
}

// Potential returns the current dual potential of node v.
func (t *Tree) Potential(v int) float64 { return t.potential[v] }

// Flow returns the current flow on arc.
func (t *Tree) Flow(arc int) float64 { return t.flow[arc] }

// State returns the current basis state of arc.
func (t *Tree) State(arc int) ArcState { return t.state[arc] }

// Depth returns the tree depth of node v (root is depth 0).
func (t *Tree) Depth(v int) int { return t.depth[v] }

// Parent returns the tree parent of node v, or -1 for the root.
func (t *Tree) Parent(v int) int { return t.parent[v] }

// PredArc returns the tree arc connecting node v to its parent, or -1
// for the root.
func (t *Tree) PredArc(v int) int { return t.predArc[v] }

// FindJoin returns the lowest common ancestor of u and v in the basis
// tree, by equalizing depth and then walking both chains up in lockstep.
//
// Complexity: O(depth(u)+depth(v)).
func (t *Tree) FindJoin(u, v int) int {
	pu, pv := u, v
	for t.depth[pu] > t.depth[pv] {
		pu = t.parent[pu]
	}
	for t.depth[pv] > t.depth[pu] {
		pv = t.parent[pv]
	}
	for pu != pv {
		pu = t.parent[pu]
		pv = t.parent[pv]
	}

	return pu
}

// ascend walks from x up to (excluding) join, recording each tree arc.
func (t *Tree) ascend(x, join int) []CycleArc {
	var path []CycleArc
	for n := x; n != join; n = t.parent[n] {
		path = append(path, CycleArc{Arc: t.predArc[n], Node: n})
	}

	return path
}

// EnumerateCycle returns the join node and the two ascending arc chains
// (from Source(enteringArc) and from Target(enteringArc) up to the join)
// that, together with enteringArc itself, form the pivot cycle. Forward
// is set per: on the u-side (Source's chain), an arc is
// Forward when it is directed parent->child; on the v-side (Target's
// chain), an arc is Forward when it is directed child->parent. This
// mirrors the cycle traversal u ->(entering)-> v ->(tree, up)-> join
// ->(tree, down)-> u.
//
// Complexity: O(depth(u)+depth(v)).
func (t *Tree) EnumerateCycle(enteringArc int) (join int, uSide, vSide []CycleArc) {
	u, v := t.d.Endpoints(enteringArc)
	join = t.FindJoin(u, v)

	uSide = t.ascend(u, join)
	for i := range uSide {
		uSide[i].Forward = t.d.Source(uSide[i].Arc) == t.parent[uSide[i].Node]
	}

	vSide = t.ascend(v, join)
	for i := range vSide {
		vSide[i].Forward = t.d.Source(vSide[i].Arc) == vSide[i].Node
	}

	return join, uSide, vSide
}

// Subtree returns every node in v's subtree in pre-order (v itself, then
// thread(v), ..., up to and including lastSucc(v)).
//
// Complexity: O(|subtree(v)|).
func (t *Tree) Subtree(v int) []int {
	out := make([]int, 0, 8)
	for x := v; ; x = t.thread[x] {
		out = append(out, x)
		if x == t.lastSucc[v] {
			break
		}
	}

	return out
}

// UpdatePotentials adds delta to the potential of every node in nodes.
//
// Complexity: O(len(nodes)).
func (t *Tree) UpdatePotentials(nodes []int, delta float64) {
	for _, v := range nodes {
		t.potential[v] += delta
	}
}

// UpdateTree performs the basis exchange's tree surgery: the subtree rooted at leaveNode is detached (its old
// connecting arc is the leaving arc), re-rooted at insideNode - the
// entering arc's endpoint that lies inside that subtree - and spliced
// back in as outsideNode's child via enteringArc. It returns every node
// the subtree contains, so the caller can shift their potentials in one
// further pass (UpdatePotentials).
//
// Complexity: O(|subtree(leaveNode)|) - proportional to the moved
// subtree, not to the whole tree.
func (t *Tree) UpdateTree(enteringArc, leaveNode, insideNode, outsideNode int) []int {
	t2 := t.Subtree(leaveNode)

	// 1. Unsplice t2 from the global thread ring.
	before := t.revThread[leaveNode]
	oldLast := t.lastSucc[leaveNode]
	after := t.thread[oldLast]
	t.thread[before] = after
	t.revThread[after] = before

	// Old ancestors whose subtree ended with t2 now end at before.
	for a := t.parent[leaveNode]; a != -1 && t.lastSucc[a] == oldLast; a = t.parent[a] {
		t.lastSucc[a] = before
	}

	// 2. Reverse the spine from insideNode (w) up to leaveNode (x), read
	//    via the still-intact old parent pointers before we overwrite them.
	var spine []int
	for n := insideNode; ; n = t.parent[n] {
		spine = append(spine, n)
		if n == leaveNode {
			break
		}
	}

	oldPredArc := make([]int, len(spine))
	for i, n := range spine {
		oldPredArc[i] = t.predArc[n]
	}

	t.parent[spine[0]] = outsideNode
	t.predArc[spine[0]] = enteringArc
	t.depth[spine[0]] = t.depth[outsideNode] + 1
	for i := 1; i < len(spine); i++ {
		t.parent[spine[i]] = spine[i-1]
		t.predArc[spine[i]] = oldPredArc[i-1]
		t.depth[spine[i]] = t.depth[spine[i-1]] + 1
	}

	// 3. Recompute depth for the remaining (non-spine) t2 nodes, in the
	//    old pre-order so every parent is finalized before its children.
	onSpine := make(map[int]bool, len(spine))
	for _, n := range spine {
		onSpine[n] = true
	}
	for _, n := range t2 {
		if !onSpine[n] {
			t.depth[n] = t.depth[t.parent[n]] + 1
		}
	}

	// 4. Rebuild thread/last_succ for t2 via a fresh pre-order DFS from
	//    insideNode, using the freshly-assigned parent pointers.
	children := make(map[int][]int, len(t2))
	for _, n := range t2 {
		if n != insideNode {
			children[t.parent[n]] = append(children[t.parent[n]], n)
		}
	}
	var build func(v int) int
	build = func(v int) int {
		prev, last := v, v
		for _, c := range children[v] {
			t.thread[prev] = c
			t.revThread[c] = prev
			last = build(c)
			prev = last
		}
		t.lastSucc[v] = last

		return last
	}
	newLast := build(insideNode)

	// 5. Splice the rebuilt block back in as outsideNode's new first child.
	oldSucc := t.thread[outsideNode]
	t.thread[outsideNode] = insideNode
	t.revThread[insideNode] = outsideNode
	t.thread[newLast] = oldSucc
	t.revThread[oldSucc] = newLast

	// 6. Extend last_succ for every ancestor whose subtree previously
	//    ended exactly at outsideNode.
	for a := outsideNode; a != -1; a = t.parent[a] {
		if t.lastSucc[a] != outsideNode {
			break
		}
		t.lastSucc[a] = newLast
	}

	return t2
}
