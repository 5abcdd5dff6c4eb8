package editor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/thinkeridea/lpteach/convex/lp"
)

// scenario1 is the §8.1 instance: max 3x1+5x2 / x1<=4, 2x2<=12, 3x1+2x2<=18,
// with optimum X1=2, X2=6, Z=36 and final basis {S1, X2, X1}.
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

func newSession(t *testing.T) *Session {
	t.Helper()
	cfg := lp.DefaultConfig()
	s, err := NewSession(context.Background(), cfg, scenario1())
	require.NoError(t, err)
	require.InDelta(t, 36, s.Tab.Z(), 1e-6)
	return s
}

func TestApplyObjectiveCoefficientZeroDeltaIsIdempotent(t *testing.T) {
	s := newSession(t)
	result, err := s.ApplyObjectiveCoefficient(context.Background(), "X1", 3)
	require.NoError(t, err)
	require.True(t, result.InRange)
	require.False(t, result.Reoptimize)
	require.InDelta(t, 36, result.Solution.Z, 1e-6)

	var tr lp.Trace
	status, err := lp.PrimalSimplex(context.Background(), lp.DefaultConfig(), s.Tab, &tr)
	require.NoError(t, err)
	require.Equal(t, lp.Optimal, status)
	require.Empty(t, tr.Entries)
}

func TestApplyObjectiveCoefficientSmallInRangeEditStaysOptimal(t *testing.T) {
	s := newSession(t)
	result, err := s.ApplyObjectiveCoefficient(context.Background(), "X2", 5.1)
	require.NoError(t, err)
	require.True(t, result.InRange)
	require.InDelta(t, 5.1, s.Model.Objective[1], 1e-9)

	var tr lp.Trace
	status, err := lp.PrimalSimplex(context.Background(), lp.DefaultConfig(), s.Tab, &tr)
	require.NoError(t, err)
	require.Equal(t, lp.Optimal, status)
	require.Empty(t, tr.Entries)
}

func TestApplyObjectiveCoefficientLargeEditReoptimizes(t *testing.T) {
	s := newSession(t)
	result, err := s.ApplyObjectiveCoefficient(context.Background(), "X2", -50)
	require.NoError(t, err)
	require.True(t, result.Reoptimize)
	require.Equal(t, lp.Optimal, result.Solution.Status)
}

func TestApplyRHSInRangeIncreaseStaysOptimal(t *testing.T) {
	s := newSession(t)
	result, err := s.ApplyRHS(context.Background(), "S1", 5)
	require.NoError(t, err)
	require.True(t, result.InRange)
	require.False(t, result.Reoptimize)
	require.InDelta(t, 5, s.Model.Constraints[0].RHS, 1e-9)

	var tr lp.Trace
	status, err := lp.PrimalSimplex(context.Background(), lp.DefaultConfig(), s.Tab, &tr)
	require.NoError(t, err)
	require.Equal(t, lp.Optimal, status)
	require.Empty(t, tr.Entries)
}

func TestApplyRHSNegativeReoptimizes(t *testing.T) {
	s := newSession(t)
	result, err := s.ApplyRHS(context.Background(), "S1", -1)
	require.ErrorIs(t, err, lp.ErrInfeasible) // x1 <= -1 with x1 >= 0 has no feasible point
	require.True(t, result.Reoptimize)
}

func TestApplyConstraintCoefficientAlwaysReoptimizes(t *testing.T) {
	s := newSession(t)
	result, err := s.ApplyConstraintCoefficient(context.Background(), "S3", "X1", 2)
	require.NoError(t, err)
	require.True(t, result.Reoptimize)
	require.InDelta(t, 2, s.Model.Constraints[2].Coeffs[0], 1e-9)
}

func TestAddConstraintReoptimizes(t *testing.T) {
	s := newSession(t)
	result, err := s.AddConstraint(context.Background(), []float64{1, 1}, lp.LE, 5)
	require.NoError(t, err)
	require.True(t, result.Reoptimize)
	require.Equal(t, lp.Optimal, result.Solution.Status)
	require.LessOrEqual(t, result.Solution.X["X1"]+result.Solution.X["X2"], 5.0+1e-6)
}

func TestAddVariableReoptimizes(t *testing.T) {
	s := newSession(t)
	result, err := s.AddVariable(context.Background(), 1, []float64{1, 1, 1}, lp.NonNegative, "X3")
	require.NoError(t, err)
	require.True(t, result.Reoptimize)
	require.Equal(t, lp.Optimal, result.Solution.Status)
	require.Contains(t, result.Solution.X, "X3")
}

func TestUnknownColumnErrors(t *testing.T) {
	s := newSession(t)
	_, err := s.ApplyObjectiveCoefficient(context.Background(), "NoSuchVar", 1)
	require.Error(t, err)
}

func TestUnknownRowErrors(t *testing.T) {
	s := newSession(t)
	_, err := s.ApplyRHS(context.Background(), "NoSuchRow", 1)
	require.Error(t, err)
}
