package emd_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/otcore/emdsimplex/emd"
)

func TestSolve_SingleSupplySingleDemand(t *testing.T) {
	flow := make([]float64, 1)
	alpha := make([]float64, 1)
	beta := make([]float64, 1)

	cost, status, err := emd.Solve(1, 1, []float64{5}, []float64{5}, []float64{3}, flow, alpha, beta, emd.DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, emd.Optimal, status)
	require.InDelta(t, 15.0, cost, 1e-6)
	require.InDelta(t, 5.0, flow[0], 1e-6)
	// Complementary slackness for the (only) basis arc: alpha[0]+beta[0] == dist[0][0].
	require.InDelta(t, 3.0, alpha[0]+beta[0], 1e-6)
}

func TestSolve_DiagonalAssignment_TwoByTwo(t *testing.T) {
	supply := []float64{5, 5}
	demand := []float64{5, 5}
	dist := []float64{
		0, 2,
		2, 0,
	}
	flow := make([]float64, 4)
	alpha := make([]float64, 2)
	beta := make([]float64, 2)

	cost, status, err := emd.Solve(2, 2, supply, demand, dist, flow, alpha, beta, emd.DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, emd.Optimal, status)
	require.InDelta(t, 0.0, cost, 1e-6)
	require.InDelta(t, 5.0, flow[0*2+0], 1e-6)
	require.InDelta(t, 5.0, flow[1*2+1], 1e-6)
	require.InDelta(t, 0.0, flow[0*2+1], 1e-6)
	require.InDelta(t, 0.0, flow[1*2+0], 1e-6)

	for i := 0; i < 2; i++ {
		require.InDelta(t, dist[i*2+i], alpha[i]+beta[i], 1e-6, "complementary slackness on the basis cells")
	}
}

func TestSolve_UnbalancedTotals_IsInfeasible(t *testing.T) {
	flow := []float64{-1}
	alpha := []float64{-1}
	beta := []float64{-1}

	cost, status, err := emd.Solve(1, 1, []float64{5}, []float64{3}, []float64{0}, flow, alpha, beta, emd.DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, emd.Infeasible, status)
	require.Equal(t, 0.0, cost)
	// The driver must not touch the caller's buffers once it has decided INFEASIBLE.
	require.Equal(t, -1.0, flow[0])
	require.Equal(t, -1.0, alpha[0])
	require.Equal(t, -1.0, beta[0])
}

func TestSolve_MaxIterReached_StopsBeforeOptimal(t *testing.T) {
	supply := []float64{5, 5}
	demand := []float64{5, 5}
	dist := []float64{
		0, 2,
		2, 0,
	}
	flow := make([]float64, 4)
	alpha := make([]float64, 2)
	beta := make([]float64, 2)

	opts := emd.DefaultOptions()
	opts.MaxIter = 1

	_, status, err := emd.Solve(2, 2, supply, demand, dist, flow, alpha, beta, opts)
	require.NoError(t, err)
	require.Equal(t, emd.MaxIterReached, status)
}

func TestSolve_ZeroWeightRowsAndColumnsAreSkipped(t *testing.T) {
	// Supply index 1 and demand index 1 carry zero weight and must be
	// excluded from the reduced problem entirely; only (0,0) is solved.
	supply := []float64{5, 0}
	demand := []float64{5, 0}
	dist := []float64{
		1, 9,
		9, 9,
	}
	flow := make([]float64, 4)
	alpha := make([]float64, 2)
	beta := make([]float64, 2)

	cost, status, err := emd.Solve(2, 2, supply, demand, dist, flow, alpha, beta, emd.DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, emd.Optimal, status)
	require.InDelta(t, 5.0, cost, 1e-6)
	require.InDelta(t, 5.0, flow[0], 1e-6)
}

func TestSolveParallel_AgreesWithSolve(t *testing.T) {
	supply := []float64{5, 5}
	demand := []float64{5, 5}
	dist := []float64{
		0, 2,
		2, 0,
	}

	flowS := make([]float64, 4)
	alphaS := make([]float64, 2)
	betaS := make([]float64, 2)
	costS, statusS, errS := emd.Solve(2, 2, supply, demand, dist, flowS, alphaS, betaS, emd.DefaultOptions())
	require.NoError(t, errS)

	flowP := make([]float64, 4)
	alphaP := make([]float64, 2)
	betaP := make([]float64, 2)
	opts := emd.DefaultOptions()
	opts.NumThreads = 4
	costP, statusP, errP := emd.SolveParallel(2, 2, supply, demand, dist, flowP, alphaP, betaP, opts)
	require.NoError(t, errP)

	require.Equal(t, statusS, statusP)
	require.InDelta(t, costS, costP, 1e-6)
	for i := range flowS {
		require.InDelta(t, flowS[i], flowP[i], 1e-6)
	}
}

// TestSolve_PermutationInvariance checks that permuting supply rows and
// demand columns (carrying the distance matrix along) leaves total_cost
// unchanged and permutes the flow matrix the same way.
func TestSolve_PermutationInvariance(t *testing.T) {
	supply := []float64{3, 5, 2}
	demand := []float64{4, 1, 5}
	dist := []float64{
		4, 1, 3,
		2, 6, 5,
		8, 3, 1,
	}

	flow := make([]float64, 9)
	alpha := make([]float64, 3)
	beta := make([]float64, 3)
	cost, status, err := emd.Solve(3, 3, supply, demand, dist, flow, alpha, beta, emd.DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, emd.Optimal, status)

	// Row permutation: supply index 0<->2. Column permutation: demand index 1<->2.
	rowPerm := []int{2, 1, 0}
	colPerm := []int{0, 2, 1}

	permSupply := make([]float64, 3)
	permDemand := make([]float64, 3)
	permDist := make([]float64, 9)
	for pi, oi := range rowPerm {
		permSupply[pi] = supply[oi]
	}
	for pj, oj := range colPerm {
		permDemand[pj] = demand[oj]
	}
	for pi, oi := range rowPerm {
		for pj, oj := range colPerm {
			permDist[pi*3+pj] = dist[oi*3+oj]
		}
	}

	permFlow := make([]float64, 9)
	permAlpha := make([]float64, 3)
	permBeta := make([]float64, 3)
	permCost, permStatus, permErr := emd.Solve(3, 3, permSupply, permDemand, permDist, permFlow, permAlpha, permBeta, emd.DefaultOptions())
	require.NoError(t, permErr)
	require.Equal(t, emd.Optimal, permStatus)

	require.InDelta(t, cost, permCost, 1e-6)
	for pi, oi := range rowPerm {
		for pj, oj := range colPerm {
			require.InDelta(t, flow[oi*3+oj], permFlow[pi*3+pj], 1e-6)
		}
	}
}

// TestSolve_ScaleInvariance checks that scaling weights by k, and
// separately scaling distances by k, both scale total_cost by k while
// leaving the flow matrix's shape unchanged.
func TestSolve_ScaleInvariance(t *testing.T) {
	supply := []float64{3, 5, 2}
	demand := []float64{4, 1, 5}
	dist := []float64{
		4, 1, 3,
		2, 6, 5,
		8, 3, 1,
	}
	const k = 2.5

	flow := make([]float64, 9)
	alpha := make([]float64, 3)
	beta := make([]float64, 3)
	cost, status, err := emd.Solve(3, 3, supply, demand, dist, flow, alpha, beta, emd.DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, emd.Optimal, status)

	scaledSupply := make([]float64, 3)
	scaledDemand := make([]float64, 3)
	for i, v := range supply {
		scaledSupply[i] = v * k
	}
	for j, v := range demand {
		scaledDemand[j] = v * k
	}

	weightFlow := make([]float64, 9)
	weightAlpha := make([]float64, 3)
	weightBeta := make([]float64, 3)
	weightCost, weightStatus, weightErr := emd.Solve(3, 3, scaledSupply, scaledDemand, dist, weightFlow, weightAlpha, weightBeta, emd.DefaultOptions())
	require.NoError(t, weightErr)
	require.Equal(t, emd.Optimal, weightStatus)
	require.InDelta(t, cost*k, weightCost, 1e-6)
	for i := range flow {
		require.InDelta(t, flow[i]*k, weightFlow[i], 1e-6)
	}

	scaledDist := make([]float64, 9)
	for i, v := range dist {
		scaledDist[i] = v * k
	}

	distFlow := make([]float64, 9)
	distAlpha := make([]float64, 3)
	distBeta := make([]float64, 3)
	distCost, distStatus, distErr := emd.Solve(3, 3, supply, demand, scaledDist, distFlow, distAlpha, distBeta, emd.DefaultOptions())
	require.NoError(t, distErr)
	require.Equal(t, emd.Optimal, distStatus)
	require.InDelta(t, cost*k, distCost, 1e-6)
	for i := range flow {
		require.InDelta(t, flow[i], distFlow[i], 1e-6)
	}
}
