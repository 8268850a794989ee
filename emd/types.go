// Package emd - sentinel errors, status codes, and solver options.
//
// Errors surface either as a Go error (input-shape problems detected before
// any tree is built) or as a Status returned alongside a nil error - a
// stable integer outcome code, mirrored here as a typed enum so callers
// get both a readable String() and the numeric value.
package emd

import (
	"errors"
	"fmt"
	"io"
)

// Sentinel errors for malformed calls. These are distinct from Status:
// a Status is a property of the LP instance (infeasible, unbounded, ...);
// these errors are raw programmer mistakes (nil slices, mismatched
// dimensions) that never even reach the pivot loop.
var (
	// ErrDimensionMismatch indicates n1/n2 disagree with the lengths of the
	// supply/demand/dist/flow/alpha/beta slices.
	ErrDimensionMismatch = errors.New("emd: dimension mismatch")

	// ErrEmptyProblem indicates n1 or n2 is non-positive.
	ErrEmptyProblem = errors.New("emd: empty problem (n1 or n2 <= 0)")

	// ErrNonFiniteCost indicates a NaN or ±Inf entry in the distance matrix.
	ErrNonFiniteCost = errors.New("emd: non-finite distance matrix entry")

	// ErrInvalidThreadCount indicates SolveParallel was called with numThreads <= 0.
	ErrInvalidThreadCount = errors.New("emd: numThreads must be > 0")
)

// Status is the stable, caller-facing outcome of a solve.
type Status int

const (
	// Optimal: a full pricing revolution found no arc with reduced cost < -epsilon.
	Optimal Status = iota

	// MaxIterReached: the iteration cap was hit; the returned flow is the
	// real-arc flow of the current basis, possibly suboptimal. Supply still
	// carried by artificial arcs at that point is not part of it, so the
	// row/column sums can fall short of the weights.
	MaxIterReached

	// Infeasible: a negative weight was supplied, or a residual artificial
	// arc carries positive flow once pricing finds no entering arc.
	Infeasible

	// Unbounded: the ratio test found no bounding (backward) arc on the cycle.
	Unbounded
)

// String implements fmt.Stringer for diagnostics and test failure messages.
func (s Status) String() string {
	switch s {
	case Optimal:
		return "OPTIMAL"
	case MaxIterReached:
		return "MAX_ITER_REACHED"
	case Infeasible:
		return "INFEASIBLE"
	case Unbounded:
		return "UNBOUNDED"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Options configures a solve. The zero value differs from DefaultOptions()
// only in NumThreads (0, which SolveParallel rejects); use DefaultOptions()
// and override selectively.
type Options struct {
	// MaxIter bounds the number of pivots performed. Zero means unlimited.
	MaxIter int

	// NumThreads is consulted only by SolveParallel; it selects how many
	// workers scan disjoint pricing blocks per pricing pass. Solve ignores
	// this field entirely (its pricing is always single-threaded).
	NumThreads int

	// Tolerance is the absolute reduced-cost epsilon below which an arc is
	// considered a negative-reduced-cost candidate. Zero selects a value
	// scaled from the problem's cost magnitude at solve time.
	Tolerance float64

	// BlockSize overrides the block-search pricing block size. Zero selects
	// ceil(sqrt(numRealArcs)), floored at MinBlockSize.
	BlockSize int

	// Verbose, if true, causes Solve/SolveParallel to write one line per
	// pivot (entering arc, leaving arc, delta) to Options.Trace. This is a
	// caller-visible toggle, not a logging dependency.
	Verbose bool

	// Trace receives verbose pivot diagnostics when Verbose is true. A nil
	// Trace with Verbose set silently disables tracing rather than panicking.
	Trace io.Writer
}

// MinBlockSize is the floor applied to the computed block-search block size.
const MinBlockSize = 10

// DefaultOptions returns production-safe defaults: unlimited iterations,
// a single pricing thread, auto-scaled tolerance, auto-sized blocks, and
// tracing disabled.
func DefaultOptions() Options {
	return Options{
		MaxIter:    0,
		NumThreads: 1,
		Tolerance:  0,
		BlockSize:  0,
		Verbose:    false,
		Trace:      nil,
	}
}
