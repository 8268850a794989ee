// Package emd - input validation, staged in two passes: cheap shape
// checks first, content scans second, so a malformed call never reaches
// tree construction.
package emd

import "math"

// validateShapes checks every slice length against n1/n2 before anything
// else runs. Returns a sentinel error (ErrEmptyProblem/ErrDimensionMismatch),
// never a Status - these are programmer mistakes, not properties of the
// transportation instance.
func validateShapes(n1, n2 int, supply, demand, dist, flow, alpha, beta []float64) error {
	if n1 <= 0 || n2 <= 0 {
		return ErrEmptyProblem
	}
	if len(supply) != n1 || len(demand) != n2 {
		return ErrDimensionMismatch
	}
	if len(dist) != n1*n2 || len(flow) != n1*n2 {
		return ErrDimensionMismatch
	}
	if len(alpha) != n1 || len(beta) != n2 {
		return ErrDimensionMismatch
	}

	return nil
}

// maxAbsFinite returns the largest absolute value in dist, and
// ErrNonFiniteCost if any entry is NaN or ±Inf. Used to calibrate the
// big-M penalty before any tree is built.
func maxAbsFinite(dist []float64) (float64, error) {
	max := 0.0
	for _, v := range dist {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, ErrNonFiniteCost
		}
		a := v
		if a < 0 {
			a = -a
		}
		if a > max {
			max = a
		}
	}

	return max, nil
}

// hasNegative reports whether any entry of w is strictly negative. A
// negative supply or demand weight makes the instance INFEASIBLE; this
// is detected in the driver's preprocessing scan, before any tree is
// built. It is a Status, not a Go error, and is checked by the caller
// separately from validateShapes.
func hasNegative(w []float64) bool {
	for _, v := range w {
		if v < 0 {
			return true
		}
	}

	return false
}
