package cutplane

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/thinkeridea/lpteach/convex/lp"
)

// scenario5Model is the end-to-end instance from §8.5: max 5x1+4x2,
// 6x1+4x2<=24, x1+2x2<=6, both int. The LP relaxation optimum (3, 1.5) is
// fractional on X2, forcing at least one cut.
func scenario5Model() *lp.Model {
	return &lp.Model{
		Sense:     lp.Max,
		Objective: []float64{5, 4},
		Constraints: []lp.Constraint{
			{Coeffs: []float64{6, 4}, Rel: lp.LE, RHS: 24},
			{Coeffs: []float64{1, 2}, Rel: lp.LE, RHS: 6},
		},
		Signs:  []lp.Sign{lp.Integer, lp.Integer},
		Labels: []string{"X1", "X2"},
	}
}

func TestSolveScenario5ReachesNamedOptimum(t *testing.T) {
	sol, tr, err := Solve(context.Background(), lp.DefaultConfig(), scenario5Model())
	require.NoError(t, err)
	require.Equal(t, lp.Optimal, sol.Status)
	require.NotEmpty(t, tr.Entries)

	x1, x2 := sol.X["X1"], sol.X["X2"]
	require.InDelta(t, math.Round(x1), x1, 1e-6)
	require.InDelta(t, math.Round(x2), x2, 1e-6)
	require.LessOrEqual(t, 6*x1+4*x2, 24.0+1e-6)
	require.LessOrEqual(t, x1+2*x2, 6.0+1e-6)
	require.Contains(t, []float64{20, 21}, math.Round(sol.Z))
}

func TestFrac(t *testing.T) {
	require.InDelta(t, 0.4, frac(3.4, lp.FracClampTol), 1e-9)
	require.Equal(t, 0.0, frac(3.0, lp.FracClampTol))
	require.Equal(t, 0.0, frac(3.0+1e-13, lp.FracClampTol))
	require.Equal(t, 0.0, frac(3.0-1e-13, lp.FracClampTol))
}

func TestAllIntegral(t *testing.T) {
	model := &lp.Model{
		Objective: []float64{1, 1},
		Signs:     []lp.Sign{lp.Integer, lp.NonNegative},
	}
	require.True(t, allIntegral(model, []float64{3, 2.7}, lp.FracEPS))
	require.False(t, allIntegral(model, []float64{3.2, 2.7}, lp.FracEPS))
}

func TestGrowTableauDimensions(t *testing.T) {
	std, err := lp.Standardize(&lp.Model{
		Sense:     lp.Max,
		Objective: []float64{1, 1},
		Constraints: []lp.Constraint{
			{Coeffs: []float64{1, 1}, Rel: lp.LE, RHS: 5},
		},
		Signs: []lp.Sign{lp.Integer, lp.Integer},
	})
	require.NoError(t, err)
	tab := std.BuildTableau()

	grown := growTableau(tab, 0, 0, lp.FracClampTol)
	require.Equal(t, tab.Rows()+1, grown.Rows())
	require.Equal(t, tab.Cols()+1, grown.Cols())
	require.Equal(t, "SC1", grown.ColName(grown.Cols()-1))
}
