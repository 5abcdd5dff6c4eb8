// Package sensitivity implements the post-optimality ranging analysis (C11):
// basic-variable classification, objective-coefficient ranging, a
// simplified RHS shadow-price report, and constraint-coefficient reporting,
// all read directly off an already-optimal Tableau.
package sensitivity

import (
	"fmt"
	"math"

	"github.com/thinkeridea/lpteach/convex/lp"
)

// BasicVariable is one row's occupying column, as identified by
// GetBasicVariables.
type BasicVariable struct {
	Row   int
	Col   int
	Name  string
	Value float64
}

// GetBasicVariables identifies, for each constraint row, the column acting
// as its basis vector by scanning for a column that is 1 in that row and 0
// in every other constraint row, within tol (§4.9). It re-derives this from
// the tableau contents rather than trusting the tableau's own stored basis
// vector, so it doubles as a basis-identity check independent of Pivot's
// bookkeeping.
func GetBasicVariables(tab *lp.Tableau, tol float64) []BasicVariable {
	vars := make([]BasicVariable, 0, tab.Rows())
	for i := 0; i < tab.Rows(); i++ {
		col, ok := unitColumnForRow(tab, i, tol)
		if !ok {
			continue
		}
		vars = append(vars, BasicVariable{Row: i, Col: col, Name: tab.ColName(col), Value: tab.RHS(i)})
	}
	return vars
}

func unitColumnForRow(tab *lp.Tableau, row int, tol float64) (int, bool) {
	for j := 0; j < tab.Cols(); j++ {
		if isUnitColumnAtRow(tab, j, row, tol) {
			return j, true
		}
	}
	return -1, false
}

func isUnitColumnAtRow(tab *lp.Tableau, col, row int, tol float64) bool {
	for k := 0; k < tab.Rows(); k++ {
		want := 0.0
		if k == row {
			want = 1
		}
		if math.Abs(tab.At(k, col)-want) > tol {
			return false
		}
	}
	return true
}

// RangeReport is the ranging result for one coefficient coordinate (§4.9).
type RangeReport struct {
	RowName       string
	ColName       string
	CurrentValue  float64
	AllowDecrease float64
	AllowIncrease float64
	ShadowPrice   float64
	Simplified    bool
	Note          string
}

func columnIndex(tab *lp.Tableau, name string) (int, bool) {
	for j := 0; j < tab.Cols(); j++ {
		if tab.ColName(j) == name {
			return j, true
		}
	}
	return -1, false
}

// ObjectiveRange computes the allowable objective-coefficient range for
// variable colName at the optimal tableau tab (§4.9), dispatching on
// whether the column is currently basic or non-basic.
func ObjectiveRange(tab *lp.Tableau, colName string, eps float64) (RangeReport, error) {
	col, ok := columnIndex(tab, colName)
	if !ok {
		return RangeReport{}, fmt.Errorf("sensitivity: unknown column %q", colName)
	}
	for _, bv := range GetBasicVariables(tab, eps) {
		if bv.Col == col {
			return basicObjectiveRange(tab, bv.Row, col), nil
		}
	}
	return nonBasicObjectiveRange(tab, col), nil
}

// nonBasicObjectiveRange implements §4.9's non-basic rule: allowable
// decrease = reducedCost_j if positive else +Inf; allowable increase =
// -reducedCost_j if negative else +Inf.
func nonBasicObjectiveRange(tab *lp.Tableau, col int) RangeReport {
	reduced := tab.At(tab.ObjRow(), col)
	allowDecrease := math.Inf(1)
	if reduced > 0 {
		allowDecrease = reduced
	}
	allowIncrease := math.Inf(1)
	if reduced < 0 {
		allowIncrease = -reduced
	}
	return RangeReport{
		ColName:       tab.ColName(col),
		AllowDecrease: allowDecrease,
		AllowIncrease: allowIncrease,
	}
}

// basicObjectiveRange implements §4.9's basic-variable rule: per-column
// ratios rho_k = -T[obj,k]/T[row,k] for every other column k with a nonzero
// row entry. Both bounds are reported as non-negative magnitudes -- "how
// far the coefficient may move before optimality breaks" -- matching the
// non-basic formula's own convention: allowable decrease is the magnitude
// of the largest negative rho (the one closest to zero), allowable
// increase is the smallest positive rho.
func basicObjectiveRange(tab *lp.Tableau, row, col int) RangeReport {
	allowDecrease := math.Inf(1)
	allowIncrease := math.Inf(1)
	for k := 0; k < tab.Cols(); k++ {
		if k == col {
			continue
		}
		denom := tab.At(row, k)
		if denom == 0 {
			continue
		}
		rho := -tab.At(tab.ObjRow(), k) / denom
		switch {
		case rho < 0:
			if -rho < allowDecrease {
				allowDecrease = -rho
			}
		case rho > 0:
			if rho < allowIncrease {
				allowIncrease = rho
			}
		}
	}
	return RangeReport{
		ColName:       tab.ColName(col),
		RowName:       tab.ColName(tab.Basis(row)),
		AllowDecrease: allowDecrease,
		AllowIncrease: allowIncrease,
	}
}

// RHSRange reports the shadow price of constraint row and a simplified
// allowable-decrease figure equal to the row's current RHS value (§4.9's
// "simplified closed form"). slackCol is the column index of that row's own
// slack variable, whose objective-row reduced cost equals the row's shadow
// price at optimum. The result is flagged Simplified per the open question
// in §9.
func RHSRange(tab *lp.Tableau, row, slackCol int) RangeReport {
	return RangeReport{
		RowName:       tab.ColName(tab.Basis(row)),
		CurrentValue:  tab.RHS(row),
		ShadowPrice:   tab.At(tab.ObjRow(), slackCol),
		AllowDecrease: tab.RHS(row),
		AllowIncrease: math.Inf(1),
		Simplified:    true,
		Note:          "simplified",
	}
}

// ConstraintCoefficientRange reports the current value of a constraint
// coefficient and notes that a full range requires re-solving after
// perturbation (§4.9) -- no ranging is attempted for this coordinate.
func ConstraintCoefficientRange(tab *lp.Tableau, row, col int) RangeReport {
	return RangeReport{
		RowName:      tab.ColName(tab.Basis(row)),
		ColName:      tab.ColName(col),
		CurrentValue: tab.At(row, col),
		Note:         "full range requires re-solving after perturbation",
	}
}
