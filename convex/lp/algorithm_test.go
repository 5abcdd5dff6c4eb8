package lp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSolveScenario1MaxPrimal(t *testing.T) {
	sol, tab, std, tr, err := Solve(context.Background(), DefaultConfig(), scenario1(), AlgorithmPrimal)
	require.NoError(t, err)
	require.Equal(t, Optimal, sol.Status)
	require.InDelta(t, 36, sol.Z, 1e-6)
	require.InDelta(t, 2, sol.X["X1"], 1e-6)
	require.InDelta(t, 6, sol.X["X2"], 1e-6)
	require.True(t, CheckBasisIdentity(tab, EPS))
	require.True(t, CheckObjectiveConsistency(std, tab, EPS))
	require.NotEmpty(t, tr.Entries)
}

func TestSolveScenario1Revised(t *testing.T) {
	sol, _, _, _, err := Solve(context.Background(), DefaultConfig(), scenario1(), AlgorithmRevised)
	require.NoError(t, err)
	require.Equal(t, Optimal, sol.Status)
	require.InDelta(t, 36, sol.Z, 1e-6)
}

func TestSolveScenario4Unbounded(t *testing.T) {
	m := &Model{
		Sense:     Max,
		Objective: []float64{1, 1},
		Constraints: []Constraint{
			{Coeffs: []float64{1, -1}, Rel: LE, RHS: 1},
			{Coeffs: []float64{-1, 1}, Rel: LE, RHS: 1},
		},
		Signs: []Sign{NonNegative, NonNegative},
	}
	sol, _, _, _, err := Solve(context.Background(), DefaultConfig(), m, AlgorithmPrimal)
	require.ErrorIs(t, err, ErrUnbounded)
	require.Equal(t, Unbounded, sol.Status)
}

func TestSolveScenario3UnsupportedForm(t *testing.T) {
	m := &Model{
		Sense:     Min,
		Objective: []float64{4, 1},
		Constraints: []Constraint{
			{Coeffs: []float64{3, 1}, Rel: EQ, RHS: 3},
			{Coeffs: []float64{4, 3}, Rel: GE, RHS: 6},
			{Coeffs: []float64{1, 2}, Rel: LE, RHS: 4},
		},
		Signs: []Sign{NonNegative, NonNegative},
	}
	_, _, _, _, err := Solve(context.Background(), DefaultConfig(), m, AlgorithmPrimal)
	require.ErrorIs(t, err, ErrUnsupportedForm)
}

func TestDualSimplexRestoresFeasibility(t *testing.T) {
	// min 2x1 + 3x2 s.t. x1+x2>=1, encoded in standard maximize-sense as
	// -x1-x2<=-1 directly on the tableau -- the shape BranchAndBound's
	// ">=" branch row and CuttingPlane's Gomory row both produce, bypassing
	// Standardize's Model-level RHS check (§3.2 only guards Model input).
	m := &Model{
		Sense:     Min,
		Objective: []float64{2, 3},
		Signs:     []Sign{NonNegative, NonNegative},
	}
	std, err := Standardize(m)
	require.NoError(t, err)
	std.A = [][]float64{{-1, -1}}
	std.B = []float64{-1}
	tab := std.BuildTableau()

	var tr Trace
	status, err := DualSimplex(context.Background(), DefaultConfig(), tab, &tr)
	require.NoError(t, err)
	require.Equal(t, Optimal, status)
	status, err = PrimalSimplex(context.Background(), DefaultConfig(), tab, &tr)
	require.NoError(t, err)
	require.Equal(t, Optimal, status)
	require.InDelta(t, -2, tab.Z(), 1e-6) // maximize(-2x1-3x2) = -2 at x1=1,x2=0
	require.NotEmpty(t, tr.Entries)
}

func TestTwoPhaseNoOpWhenAlreadyFeasible(t *testing.T) {
	std, err := Standardize(scenario1())
	require.NoError(t, err)
	tab := std.BuildTableau()
	var tr Trace
	status, err := TwoPhase(context.Background(), DefaultConfig(), tab, &tr)
	require.NoError(t, err)
	require.Equal(t, Optimal, status)
	require.Empty(t, tr.Entries)
}
