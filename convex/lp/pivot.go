package lp

import "math"

// Pivot performs the Gauss-Jordan elimination described in §4.2: given
// |T[r,c]| >= cfg.EPS (clamped to +-EPS otherwise), it scales row r so that
// T[r,c] = 1, then eliminates column c from every other row. This is the
// only mutation primitive every simplex variant (C5-C8) uses; it preserves
// the identity-basis invariant by construction.
//
// Pivot returns ErrNumericallyDegenerate if the pivot element is exactly
// zero even after clamping (a caller error: r,c must be chosen so that
// T[r,c] != 0).
func Pivot(t *Tableau, cfg SolverConfig, r, c int) error {
	pivot := t.data.At(r, c)
	if math.Abs(pivot) < cfg.EPS {
		if pivot == 0 {
			return ErrNumericallyDegenerate
		}
		// Clamp the pivot element away from zero, preserving its sign, per
		// §4.2: "otherwise clamped to +-EPS".
		if pivot > 0 {
			pivot = cfg.EPS
		} else {
			pivot = -cfg.EPS
		}
	}

	rows, cols := t.m+1, t.n+1

	// Scale the pivot row so T[r,c] = 1.
	for j := 0; j < cols; j++ {
		t.data.Set(r, j, t.data.At(r, j)/pivot)
	}
	t.data.Set(r, c, 1)

	// Eliminate column c from every other row.
	for i := 0; i < rows; i++ {
		if i == r {
			continue
		}
		factor := t.data.At(i, c)
		if factor == 0 {
			continue
		}
		for j := 0; j < cols; j++ {
			t.data.Set(i, j, t.data.At(i, j)-factor*t.data.At(r, j))
		}
		t.data.Set(i, c, 0)
	}

	return nil
}
