package lp

import "math"

// Clone deep-copies a StandardModel, so that BranchAndBound and
// CuttingPlane can append rows to a child/cut model without aliasing the
// parent's A/B slices (§5: "copy-on-write at row granularity").
func (s *StandardModel) Clone() *StandardModel {
	cp := &StandardModel{
		C:         append([]float64(nil), s.C...),
		Cols:      append([]StdCol(nil), s.Cols...),
		OrigSense: s.OrigSense,
		OrigN:     s.OrigN,
	}
	cp.A = make([][]float64, len(s.A))
	for i, row := range s.A {
		cp.A[i] = append([]float64(nil), row...)
	}
	cp.B = append([]float64(nil), s.B...)
	return cp
}

// AppendRow returns a clone of s with one additional constraint row
// (coeffs over the structural columns, relation implicitly <=, given rhs).
func (s *StandardModel) AppendRow(coeffs []float64, rhs float64) *StandardModel {
	cp := s.Clone()
	cp.A = append(cp.A, append([]float64(nil), coeffs...))
	cp.B = append(cp.B, rhs)
	return cp
}

// HasDuplicateRow reports whether the last row of s (the most recently
// appended one) duplicates, component-wise within eps, any earlier row --
// the guard BranchAndBound uses to reject a child whose new branch row
// re-derives an existing constraint (§4.7).
func (s *StandardModel) HasDuplicateRow(eps float64) bool {
	if len(s.A) < 2 {
		return false
	}
	last := len(s.A) - 1
	for i := 0; i < last; i++ {
		if rowsEqual(s.A[i], s.B[i], s.A[last], s.B[last], eps) {
			return true
		}
	}
	return false
}

func rowsEqual(a []float64, aRHS float64, b []float64, bRHS float64, eps float64) bool {
	if len(a) != len(b) {
		return false
	}
	if math.Abs(aRHS-bRHS) > eps {
		return false
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}

// XPrimeFromTableau reads the current basic solution out of t (RHS values
// placed at their basis column, zero elsewhere for non-basic structural
// columns), the same reconstruction Solve uses internally. Drivers that
// build on top of the core (bnb, cutplane, editor, duality) use this to
// get the standard-space solution without reaching into Tableau internals.
func XPrimeFromTableau(std *StandardModel, t *Tableau) []float64 {
	xPrime := make([]float64, std.NPrime())
	for i := 0; i < t.Rows(); i++ {
		col := t.Basis(i)
		if col < len(xPrime) {
			xPrime[col] = t.RHS(i)
		}
	}
	return xPrime
}
