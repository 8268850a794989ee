// Package emd implements the network-simplex core of an Earth Mover's
// Distance / Optimal Transport solver: a pivot-based minimum-cost flow
// solver specialized for the uncapacitated transportation problem on a
// complete bipartite graph.
//
// Given non-negative supply and demand weight vectors and a dense,
// row-major cost matrix between their indices, Solve (and its
// block-search-parallel sibling SolveParallel) compute a minimum-cost
// flow that transports all supply to meet all demand, together with the
// dual potentials of the resulting optimal basis.
//
// # Algorithm
//
// The solver is a primal network simplex over a star-shaped digraph: the
// nR retained supply nodes and mR retained demand nodes, plus one
// auxiliary root absorbing a big-M artificial basis. The five components,
// in dependency order (the pivot engine's parallel pricing variant has a
// file of its own):
//
//   - digraph.go   - identity-based addressing of nodes and arcs (real and artificial).
//   - costview.go  - random access to arc costs, real arcs through the caller's
//     dense matrix, artificial arcs through an internal growable buffer.
//   - tree.go      - the basis tree: parent/pred-arc/depth/thread/last-succ/
//     potential per node, flow/state per arc, and the primitives
//     (FindJoin, EnumerateCycle, Subtree, UpdateTree, UpdatePotentials)
//     the pivot engine needs to keep it current in O(|moved subtree|).
//   - pivot.go     - pricing (block search), ratio test, flow update, basis
//     exchange, potential update.
//   - pricing_parallel.go - the OMP-style parallel pricing variant, scanning
//     disjoint contiguous blocks across a bounded worker pool.
//   - solve.go     - the driver: sparse reduction of zero-weight nodes, initial
//     basis construction, the pivot loop, and result write-back.
//
// # Scope
//
// This is not a general min-cost flow solver (topology is fixed to a
// complete bipartite graph with a root), not a capacitated solver (real
// arcs carry infinite capacity), and not an approximation scheme. Input
// normalization, shape validation beyond what Solve itself needs, and
// any surrounding orchestration are the caller's responsibility.
package emd
