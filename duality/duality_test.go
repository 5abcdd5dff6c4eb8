package duality

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/thinkeridea/lpteach/convex/lp"
)

// scenario1 is the §8.1 instance: max 3x1+5x2 / x1<=4, 2x2<=12, 3x1+2x2<=18.
func scenario1() *lp.Model {
	return &lp.Model{
		Sense:     lp.Max,
		Objective: []float64{3, 5},
		Constraints: []lp.Constraint{
			{Coeffs: []float64{1, 0}, Rel: lp.LE, RHS: 4},
			{Coeffs: []float64{0, 2}, Rel: lp.LE, RHS: 12},
			{Coeffs: []float64{3, 2}, Rel: lp.LE, RHS: 18},
		},
		Signs:  []lp.Sign{lp.NonNegative, lp.NonNegative},
		Labels: []string{"X1", "X2"},
	}
}

func TestSolveReportsStrongDuality(t *testing.T) {
	rep, tr, err := Solve(context.Background(), lp.DefaultConfig(), scenario1())
	require.NoError(t, err)
	require.NotEmpty(t, tr.Entries)
	require.InDelta(t, 36, rep.PrimalZ, 1e-6)
	require.InDelta(t, 36, rep.DualZ, 1e-6)
	require.True(t, rep.Strong)
	require.InDelta(t, 0, rep.Gap, 1e-6)
	require.Len(t, rep.DualX, 3)
}

func TestSolveMinSenseStillStrong(t *testing.T) {
	model := &lp.Model{
		Sense:     lp.Min,
		Objective: []float64{-3, -5},
		Constraints: []lp.Constraint{
			{Coeffs: []float64{1, 0}, Rel: lp.LE, RHS: 4},
			{Coeffs: []float64{0, 2}, Rel: lp.LE, RHS: 12},
			{Coeffs: []float64{3, 2}, Rel: lp.LE, RHS: 18},
		},
		Signs:  []lp.Sign{lp.NonNegative, lp.NonNegative},
		Labels: []string{"X1", "X2"},
	}
	rep, _, err := Solve(context.Background(), lp.DefaultConfig(), model)
	require.NoError(t, err)
	require.InDelta(t, -36, rep.PrimalZ, 1e-6)
	require.True(t, rep.Strong)
}

func TestSolvePropagatesUnsupportedForm(t *testing.T) {
	model := &lp.Model{
		Sense:     lp.Max,
		Objective: []float64{1},
		Constraints: []lp.Constraint{
			{Coeffs: []float64{1}, Rel: lp.GE, RHS: 1},
		},
		Signs: []lp.Sign{lp.NonNegative},
	}
	_, _, err := Solve(context.Background(), lp.DefaultConfig(), model)
	require.ErrorIs(t, err, lp.ErrUnsupportedForm)
}
