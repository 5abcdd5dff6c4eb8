package lp

import "testing"

import "github.com/stretchr/testify/require"

func TestModelValidate(t *testing.T) {
	m := &Model{
		Sense:     Max,
		Objective: []float64{3, 5},
		Constraints: []Constraint{
			{Coeffs: []float64{1, 0}, Rel: LE, RHS: 4},
		},
		Signs:  []Sign{NonNegative, NonNegative},
		Labels: []string{"X1", "X2"},
	}
	require.NoError(t, m.Validate())

	bad := m.Clone()
	bad.Signs = bad.Signs[:1]
	require.Error(t, bad.Validate())
}

func TestModelLabelDefaults(t *testing.T) {
	m := &Model{Objective: []float64{1, 2, 3}, Signs: []Sign{NonNegative, NonNegative, NonNegative}}
	require.Equal(t, "X1", m.Label(0))
	require.Equal(t, "X3", m.Label(2))
}

func TestModelClone(t *testing.T) {
	m := &Model{
		Sense:     Max,
		Objective: []float64{1, 2},
		Constraints: []Constraint{
			{Coeffs: []float64{1, 1}, Rel: LE, RHS: 5},
		},
		Signs: []Sign{NonNegative, NonNegative},
	}
	cp := m.Clone()
	cp.Objective[0] = 99
	cp.Constraints[0].Coeffs[0] = 99
	require.Equal(t, 1.0, m.Objective[0])
	require.Equal(t, 1.0, m.Constraints[0].Coeffs[0])
}
