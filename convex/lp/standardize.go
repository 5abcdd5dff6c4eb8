package lp

import "fmt"

// Part identifies how a standard-form column relates back to its original
// variable, per the back-map in §3.2.
type Part int

const (
	// Plus is a direct copy of a >=0/int/bin original variable.
	Plus Part = iota
	// Minus is the negative half of an urs variable's x+ - x- split.
	Minus
	// Flipped is the y = -x substitution for a <=0 original variable.
	Flipped
)

func (p Part) sign() float64 {
	if p == Plus {
		return 1
	}
	return -1
}

// StdCol describes one column of a StandardModel and how it maps back to
// the original Model's variable OrigIndex.
type StdCol struct {
	Name      string
	OrigIndex int
	Part      Part
	IsInteger bool
	IsBinary  bool
}

// StandardModel is the canonical <=-only, b>=0, maximize-sense form
// produced by Standardize (C2): A[m',n'], b[m'], c[n'], plus the ordered
// column list needed to map a standard-space solution back to the
// original Model (§3.2).
type StandardModel struct {
	A    [][]float64
	B    []float64
	C    []float64
	Cols []StdCol

	OrigSense Sense
	OrigN     int
}

// M returns the number of standard-form constraint rows.
func (s *StandardModel) M() int { return len(s.B) }

// NPrime returns the number of standard-form structural columns.
func (s *StandardModel) NPrime() int { return len(s.C) }

// Standardize transforms a Model into a StandardModel, or returns
// ErrUnsupportedForm per §4.1 when the model is not representable: a
// constraint relation other than <=, a negative RHS, or (by construction,
// since Sign is a single mutually-exclusive enum rather than a bitset) any
// state the original always-false bin+urs/bin+<=0 conjunction was meant to
// guard against can no longer arise -- see DESIGN.md.
func Standardize(m *Model) (*StandardModel, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	n := m.N()
	std := &StandardModel{OrigSense: m.Sense, OrigN: n}

	// senseSign flips the objective into maximize-sense: "objective always
	// treated as maximization (negated on min)" (§3.2).
	senseSign := 1.0
	if m.Sense == Min {
		senseSign = -1
	}

	// Build the column list per variable, in original-variable order.
	for j := 0; j < n; j++ {
		switch m.Signs[j] {
		case NonNegative, Integer, Binary:
			std.Cols = append(std.Cols, StdCol{
				Name:      m.Label(j),
				OrigIndex: j,
				Part:      Plus,
				IsInteger: m.Signs[j] != NonNegative,
				IsBinary:  m.Signs[j] == Binary,
			})
		case NonPositive:
			std.Cols = append(std.Cols, StdCol{
				Name:      m.Label(j) + "~",
				OrigIndex: j,
				Part:      Flipped,
			})
		case Unrestricted:
			std.Cols = append(std.Cols, StdCol{
				Name:      m.Label(j) + "+",
				OrigIndex: j,
				Part:      Plus,
			})
			std.Cols = append(std.Cols, StdCol{
				Name:      m.Label(j) + "-",
				OrigIndex: j,
				Part:      Minus,
			})
		default:
			return nil, fmt.Errorf("%w: unknown sign restriction %v on variable %d", ErrUnsupportedForm, m.Signs[j], j)
		}
	}

	nPrime := len(std.Cols)
	std.C = make([]float64, nPrime)
	for k, col := range std.Cols {
		std.C[k] = senseSign * col.Part.sign() * m.Objective[col.OrigIndex]
	}

	// Original constraints: <= only, b >= 0.
	for _, c := range m.Constraints {
		if c.Rel != LE {
			return nil, fmt.Errorf("%w: constraint relation %v is not supported, only <=", ErrUnsupportedForm, c.Rel)
		}
		if c.RHS < 0 {
			return nil, fmt.Errorf("%w: negative RHS %v is not supported", ErrUnsupportedForm, c.RHS)
		}
		row := make([]float64, nPrime)
		for k, col := range std.Cols {
			row[k] = col.Part.sign() * c.Coeffs[col.OrigIndex]
		}
		std.A = append(std.A, row)
		std.B = append(std.B, c.RHS)
	}

	// Binary upper-bound rows: e_k . x <= 1 (§3.2 invariant).
	for k, col := range std.Cols {
		if col.IsBinary {
			row := make([]float64, nPrime)
			row[k] = 1
			std.A = append(std.A, row)
			std.B = append(std.B, 1)
		}
	}

	return std, nil
}

// BackMap reconstructs the original-variable assignment from a standard-
// space solution vector xPrime (length NPrime()), per the back-map formula
// in §3.2: x_j = sum over k with OrigIndex=j of sign(part_k) * xPrime[k].
func (s *StandardModel) BackMap(xPrime []float64) []float64 {
	x := make([]float64, s.OrigN)
	for k, col := range s.Cols {
		x[col.OrigIndex] += col.Part.sign() * xPrime[k]
	}
	return x
}

// BuildTableau lays out the (m+1) x (n'+m+1) simplex tableau for this
// standard model: structural columns first, then one slack column per
// constraint row (all rows are <=, so the initial slack basis is always
// feasible when b >= 0), then RHS. The objective row holds -c_j in
// structural columns so that T[objRow,RHS] is the current Z (§3.3).
func (s *StandardModel) BuildTableau() *Tableau {
	m := s.M()
	nPrime := s.NPrime()
	t := NewTableau(m, nPrime+m)

	for k, col := range s.Cols {
		t.SetColName(k, col.Name)
	}
	for i := 0; i < m; i++ {
		slackCol := nPrime + i
		t.SetColName(slackCol, fmt.Sprintf("S%d", i+1))
	}

	for i := 0; i < m; i++ {
		for j := 0; j < nPrime; j++ {
			t.Set(i, j, s.A[i][j])
		}
		t.Set(i, nPrime+i, 1)
		t.Set(i, t.RHSCol(), s.B[i])
		t.SetBasis(i, nPrime+i)
	}
	for j := 0; j < nPrime; j++ {
		t.Set(t.ObjRow(), j, -s.C[j])
	}
	t.Set(t.ObjRow(), t.RHSCol(), 0)

	return t
}
