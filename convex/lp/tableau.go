package lp

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Tableau is the dense (m+1) x (n'+m+1) matrix described in §3.3: rows
// 0..m-1 are constraints, row m is the objective row; columns 0..n'-1 are
// structural variables, n'..n'+m-1 are slacks, and the last column is the
// RHS. The objective row holds -c_j in structural columns, so that the RHS
// of the objective row is the current Z.
//
// The buffer is backed by gonum's mat.Dense, matching the reference LP
// solver's own use of a dense matrix for basic-feasible-solution
// bookkeeping.
type Tableau struct {
	data     *mat.Dense
	basis    []int
	colNames []string
	m        int // number of constraint rows
	n        int // number of columns excluding RHS (n' + m)
}

// NewTableau allocates a zeroed tableau of m constraint rows and n non-RHS
// columns (n = n' structural + m slack).
func NewTableau(m, n int) *Tableau {
	return &Tableau{
		data:     mat.NewDense(m+1, n+1, nil),
		basis:    make([]int, m),
		colNames: make([]string, n),
		m:        m,
		n:        n,
	}
}

// Rows is the number of constraint rows (m), excluding the objective row.
func (t *Tableau) Rows() int { return t.m }

// Cols is the number of non-RHS columns (n' + m).
func (t *Tableau) Cols() int { return t.n }

// ObjRow is the row index of the objective row.
func (t *Tableau) ObjRow() int { return t.m }

// RHSCol is the column index of the RHS column.
func (t *Tableau) RHSCol() int { return t.n }

// At returns T[i,j].
func (t *Tableau) At(i, j int) float64 { return t.data.At(i, j) }

// Set writes T[i,j] = v.
func (t *Tableau) Set(i, j int, v float64) { t.data.Set(i, j, v) }

// Row returns a copy of row i (length n+1, including RHS).
func (t *Tableau) Row(i int) []float64 {
	row := make([]float64, t.n+1)
	mat.Row(row, i, t.data)
	return row
}

// Col returns a copy of column j (length m+1, including the objective row).
func (t *Tableau) Col(j int) []float64 {
	col := make([]float64, t.m+1)
	mat.Col(col, j, t.data)
	return col
}

// RHS returns T[i, RHSCol].
func (t *Tableau) RHS(i int) float64 { return t.data.At(i, t.n) }

// Z returns the current objective value, T[ObjRow, RHSCol].
func (t *Tableau) Z() float64 { return t.data.At(t.m, t.n) }

// Basis returns the column index occupying constraint row i.
func (t *Tableau) Basis(i int) int { return t.basis[i] }

// SetBasis records that column col now occupies constraint row i.
func (t *Tableau) SetBasis(i, col int) { t.basis[i] = col }

// BasisVector returns a copy of the whole basis vector.
func (t *Tableau) BasisVector() []int {
	return append([]int(nil), t.basis...)
}

// ColName returns the display label of column j.
func (t *Tableau) ColName(j int) string { return t.colNames[j] }

// SetColName sets the display label of column j.
func (t *Tableau) SetColName(j int, name string) { t.colNames[j] = name }

// Clone deep-copies the tableau, so that Branch-and-Bound child nodes never
// alias the parent's buffer (§5: "copy-on-write at row granularity").
func (t *Tableau) Clone() *Tableau {
	cp := &Tableau{
		data:     mat.DenseCopyOf(t.data),
		basis:    append([]int(nil), t.basis...),
		colNames: append([]string(nil), t.colNames...),
		m:        t.m,
		n:        t.n,
	}
	return cp
}

// String renders the tableau for trace/debug output: one header line of
// column names, then one line per row (constraints, then the objective
// row), basis column first.
func (t *Tableau) String() string {
	s := fmt.Sprintf("%-8s", "")
	for j := 0; j < t.n; j++ {
		s += fmt.Sprintf("%-10s", t.colNames[j])
	}
	s += fmt.Sprintf("%-10s\n", "RHS")
	for i := 0; i <= t.m; i++ {
		name := "Z"
		if i < t.m {
			name = t.colNames[t.basis[i]]
		}
		s += fmt.Sprintf("%-8s", name)
		for j := 0; j <= t.n; j++ {
			s += fmt.Sprintf("%-10.4g", t.data.At(i, j))
		}
		s += "\n"
	}
	return s
}
