package lp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPivotPreservesBasisIdentity(t *testing.T) {
	std, err := Standardize(scenario1())
	require.NoError(t, err)
	tab := std.BuildTableau()

	require.NoError(t, Pivot(tab, DefaultConfig(), 0, 0))
	tab.SetBasis(0, 0)
	require.True(t, CheckBasisIdentity(tab, EPS))

	require.NoError(t, Pivot(tab, DefaultConfig(), 2, 1))
	tab.SetBasis(2, 1)
	require.True(t, CheckBasisIdentity(tab, EPS))
}

func TestPivotClampsNearZeroElement(t *testing.T) {
	tab := NewTableau(1, 2)
	tab.Set(0, 0, 1e-15)
	tab.Set(0, 1, 1)
	tab.Set(0, 2, 5)
	err := Pivot(tab, DefaultConfig(), 0, 0)
	require.NoError(t, err)
	require.InDelta(t, 1, tab.At(0, 0), 1e-6)
}

func TestPivotDegenerateZero(t *testing.T) {
	tab := NewTableau(1, 2)
	err := Pivot(tab, DefaultConfig(), 0, 0)
	require.ErrorIs(t, err, ErrNumericallyDegenerate)
}
