// Package editor implements the post-optimality edit driver (C12): given a
// coefficient, RHS, or constraint-coefficient edit on an already-optimal
// tableau, classify it in-range or out-of-range via the sensitivity
// package, mutate the tableau cell in place when in-range, or
// re-standardize and re-solve otherwise. Every applied edit appends one
// record to an append-only sensitivity log (§4.10, §6.3).
package editor

import (
	"context"
	"fmt"

	"github.com/thinkeridea/lpteach/convex/lp"
	"github.com/thinkeridea/lpteach/sensitivity"
)

// Session holds the live Model/StandardModel/Tableau an Editor mutates
// across a sequence of edits, mirroring the single-tableau-per-driver
// ownership rule in §5 ("each driver owns its tableau exclusively").
type Session struct {
	cfg   lp.SolverConfig
	Model *lp.Model
	Std   *lp.StandardModel
	Tab   *lp.Tableau
	Trace lp.Trace
}

// NewSession standardizes and solves model to optimality, the precondition
// every edit in §4.10 is defined against.
func NewSession(ctx context.Context, cfg lp.SolverConfig, model *lp.Model) (*Session, error) {
	std, err := lp.Standardize(model)
	if err != nil {
		return nil, err
	}
	tab := std.BuildTableau()
	status, err := lp.SolveRelaxation(ctx, cfg, tab, new(lp.Trace))
	if status != lp.Optimal {
		if err == nil {
			err = fmt.Errorf("editor: initial solve did not reach optimality (%s)", status)
		}
		return nil, err
	}
	return &Session{cfg: cfg, Model: model.Clone(), Std: std, Tab: tab}, nil
}

// Result is the outcome of one applied edit.
type Result struct {
	Range      sensitivity.RangeReport
	InRange    bool
	Solution   lp.Solution
	Reoptimize bool
}

func (s *Session) log(kind, rowName, colName string, oldValue, newValue float64, r Result) {
	note := "in-range, tableau cell mutated in place"
	if r.Reoptimize {
		note = fmt.Sprintf("re-optimized, new Z=%.6g status=%s", r.Solution.Z, r.Solution.Status)
	}
	record := fmt.Sprintf("edit=%s row=%s col=%s old=%.6g new=%.6g allowDecrease=%.6g allowIncrease=%.6g note=%s",
		kind, rowName, colName, oldValue, newValue, r.Range.AllowDecrease, r.Range.AllowIncrease, note)
	s.Trace.Append(record)
	if err := appendSensitivityLog(s.cfg, record); err != nil {
		s.cfg.Log.Warn().Err(err).Msg("sensitivity log not written")
	}
}

// structuralColumn finds the standard column whose Name is colName (for a
// non-negative/int/bin variable, its single Plus-part column under its own
// label) -- the column an ObjectiveCoefficient/ConstraintCoefficient
// edit by label actually addresses. Urs/NonPositive variables split or
// flip into differently-signed columns; editor only targets the
// conventional non-negative/int/bin case (§9 scope note).
func (s *Session) structuralColumn(colName string) (int, lp.StdCol, error) {
	for k, col := range s.Std.Cols {
		if col.Name == colName {
			return k, col, nil
		}
	}
	return -1, lp.StdCol{}, fmt.Errorf("editor: unknown variable column %q", colName)
}

// rowFromSlackName resolves a constraint row by its own dedicated slack
// column's name (e.g. "S2"), the one stable per-row identifier BuildTableau
// assigns regardless of the current basis permutation.
func (s *Session) rowFromSlackName(rowName string) (int, int, error) {
	for j := s.Std.NPrime(); j < s.Tab.Cols(); j++ {
		if s.Tab.ColName(j) == rowName {
			return j - s.Std.NPrime(), j, nil
		}
	}
	return -1, -1, fmt.Errorf("editor: unknown constraint row %q", rowName)
}

// ApplyObjectiveCoefficient edits variable colName's objective coefficient
// to newValue (§4.10 steps 1-4). If newValue falls inside the allowable
// range from sensitivity.ObjectiveRange, the tableau's objective row is
// updated by the standard rank-1 sensitivity formula and the solution
// stays optimal with zero further pivots; otherwise the model is
// re-standardized and re-solved.
func (s *Session) ApplyObjectiveCoefficient(ctx context.Context, colName string, newValue float64) (Result, error) {
	col, stdCol, err := s.structuralColumn(colName)
	if err != nil {
		return Result{}, err
	}

	rng, err := sensitivity.ObjectiveRange(s.Tab, colName, s.cfg.BasisClassifyTol)
	if err != nil {
		return Result{}, err
	}

	oldValue := s.Model.Objective[stdCol.OrigIndex]
	delta := newValue - oldValue
	deltaStd := s.senseSign() * stdCol.Part.sign() * delta
	inRange := deltaStd >= -rng.AllowDecrease-s.cfg.EPS && deltaStd <= rng.AllowIncrease+s.cfg.EPS

	s.Model.Objective[stdCol.OrigIndex] = newValue

	var result Result
	if inRange {
		s.mutateObjectiveCoefficient(col, stdCol, delta)
		result = Result{Range: rng, InRange: true, Solution: s.currentSolution(), Reoptimize: false}
	} else {
		std2 := s.Std.Clone()
		std2.C[col] = s.senseSign() * stdCol.Part.sign() * newValue
		result, err = s.reoptimizeStd(ctx, std2, rng)
		if err != nil {
			return result, err
		}
	}
	s.log("objective", "", colName, oldValue, newValue, result)
	return result, nil
}

func (s *Session) senseSign() float64 {
	if s.Model.Sense == lp.Min {
		return -1
	}
	return 1
}

// mutateObjectiveCoefficient applies the standard ranging-theory update for
// changing x_j's objective coefficient by delta (original-model units) in
// place (§4.10 step 3): a non-basic column absorbs delta directly into its
// own reduced cost; a basic column (basic in row r) propagates delta across
// the whole objective row via T[r, *], since every other column's reduced
// cost depends on y_B, which shifts when a basic variable's own cost does.
func (s *Session) mutateObjectiveCoefficient(col int, stdCol lp.StdCol, delta float64) {
	deltaStd := s.senseSign() * stdCol.Part.sign() * delta
	objRow := s.Tab.ObjRow()

	for _, bv := range sensitivity.GetBasicVariables(s.Tab, s.cfg.BasisClassifyTol) {
		if bv.Col == col {
			for k := 0; k <= s.Tab.Cols(); k++ {
				if k == s.Tab.Cols() {
					s.Tab.Set(objRow, s.Tab.RHSCol(), s.Tab.Z()+deltaStd*s.Tab.RHS(bv.Row))
					continue
				}
				if k == col {
					// The basic column's own reduced cost stays exactly
					// zero: its z_k shift and its own cost shift cancel.
					continue
				}
				s.Tab.Set(objRow, k, s.Tab.At(objRow, k)+deltaStd*s.Tab.At(bv.Row, k))
			}
			return
		}
	}
	s.Tab.Set(objRow, col, s.Tab.At(objRow, col)-deltaStd)
}

// ApplyRHS edits the RHS of the constraint whose own slack column is named
// rowName (§4.10). Any newValue >= 0 is treated as in-range, independent of
// the AllowDecrease figure sensitivity.RHSRange reports (which is the row's
// current tableau RHS): the basic solution shifts by the standard
// rank-1 update x_B += delta * T[:, slackCol], mutating only the RHS
// column in place.
func (s *Session) ApplyRHS(ctx context.Context, rowName string, newValue float64) (Result, error) {
	row, slackCol, err := s.rowFromSlackName(rowName)
	if err != nil {
		return Result{}, err
	}

	rng := sensitivity.RHSRange(s.Tab, row, slackCol)
	oldValue := s.Std.B[row]
	delta := newValue - oldValue
	inRange := newValue >= -s.cfg.EPS

	if row < len(s.Model.Constraints) {
		s.Model.Constraints[row].RHS = newValue
	}

	var result Result
	if inRange {
		for i := 0; i < s.Tab.Rows(); i++ {
			s.Tab.Set(i, s.Tab.RHSCol(), s.Tab.At(i, s.Tab.RHSCol())+delta*s.Tab.At(i, slackCol))
		}
		s.Tab.Set(s.Tab.ObjRow(), s.Tab.RHSCol(), s.Tab.Z()+delta*s.Tab.At(s.Tab.ObjRow(), slackCol))
		s.Std.B[row] = newValue
		result = Result{Range: rng, InRange: true, Solution: s.currentSolution(), Reoptimize: false}
	} else {
		// newValue may be negative: an out-of-range RHS edit is exactly the
		// case §4.10 step 4 names dual simplex for, so the fresh tableau is
		// built straight off a mutated StandardModel rather than routed
		// through Standardize, which would reject the negative RHS outright.
		std2 := s.Std.Clone()
		std2.B[row] = newValue
		result, err = s.reoptimizeStd(ctx, std2, rng)
		if err != nil {
			return result, err
		}
	}
	s.log("rhs", rowName, "", oldValue, newValue, result)
	return result, nil
}

// ApplyConstraintCoefficient edits the coefficient of variable colName in
// the constraint whose slack column is rowName. §4.10's "or on unparsable
// range" always applies here: sensitivity.ConstraintCoefficientRange
// reports no allowable range for this coordinate, so every constraint-
// coefficient edit re-standardizes and re-solves.
func (s *Session) ApplyConstraintCoefficient(ctx context.Context, rowName, colName string, newValue float64) (Result, error) {
	row, _, err := s.rowFromSlackName(rowName)
	if err != nil {
		return Result{}, err
	}
	col, stdCol, err := s.structuralColumn(colName)
	if err != nil {
		return Result{}, err
	}

	rng := sensitivity.ConstraintCoefficientRange(s.Tab, row, col)
	var oldValue float64
	if row < len(s.Model.Constraints) {
		oldValue = s.Model.Constraints[row].Coeffs[stdCol.OrigIndex]
		s.Model.Constraints[row].Coeffs[stdCol.OrigIndex] = newValue
	}

	std2 := s.Std.Clone()
	std2.A[row][col] = stdCol.Part.sign() * newValue
	result, err := s.reoptimizeStd(ctx, std2, rng)
	if err != nil {
		return result, err
	}
	s.log("constraint-coefficient", rowName, colName, oldValue, newValue, result)
	return result, nil
}

// stdRowFromOriginal converts a constraint row given in original-variable
// space into the standard-space row AppendRow expects, applying each
// column's own Part sign (§3.2's back-map, run forward).
func (s *Session) stdRowFromOriginal(coeffs []float64) []float64 {
	row := make([]float64, s.Std.NPrime())
	for k, col := range s.Std.Cols {
		row[k] = col.Part.sign() * coeffs[col.OrigIndex]
	}
	return row
}

// AddConstraint appends a new constraint to the model and re-solves (§4.10:
// "Adding a constraint: append ... re-solve"). GE rows are negated into the
// <=-only standard form; EQ is out of scope (§9) since it cannot be
// expressed as a single AppendRow without splitting into two rows.
func (s *Session) AddConstraint(ctx context.Context, coeffs []float64, rel lp.Relation, rhs float64) (Result, error) {
	if rel == lp.EQ {
		return Result{}, fmt.Errorf("editor: adding an equality constraint is not supported")
	}

	s.Model.Constraints = append(s.Model.Constraints, lp.Constraint{
		Coeffs: append([]float64(nil), coeffs...),
		Rel:    rel,
		RHS:    rhs,
	})

	row := s.stdRowFromOriginal(coeffs)
	stdRHS := rhs
	if rel == lp.GE {
		for k := range row {
			row[k] = -row[k]
		}
		stdRHS = -rhs
	}
	std2 := s.Std.AppendRow(row, stdRHS)

	result, err := s.reoptimizeStd(ctx, std2, sensitivity.RangeReport{})
	if err != nil {
		return result, err
	}
	s.log("add-constraint", "", "", 0, rhs, result)
	return result, nil
}

// AddVariable appends a new original variable (one objective coefficient,
// one column of constraint coefficients, one sign restriction) and
// re-solves (§4.10).
func (s *Session) AddVariable(ctx context.Context, objCoeff float64, constraintCoeffs []float64, sign lp.Sign, label string) (Result, error) {
	if len(constraintCoeffs) != len(s.Model.Constraints) {
		return Result{}, fmt.Errorf("editor: new variable needs %d constraint coefficients, got %d", len(s.Model.Constraints), len(constraintCoeffs))
	}
	s.Model.Objective = append(s.Model.Objective, objCoeff)
	s.Model.Signs = append(s.Model.Signs, sign)
	if s.Model.Labels != nil {
		s.Model.Labels = append(s.Model.Labels, label)
	}
	for i := range s.Model.Constraints {
		s.Model.Constraints[i].Coeffs = append(s.Model.Constraints[i].Coeffs, constraintCoeffs[i])
	}

	// A new variable needs a new standard-form column (possibly split or
	// flipped per its Sign, §3.2), which only Standardize derives, so it is
	// re-run on the whole edited s.Model: a negative RHS or a GE row that
	// earlier edits left in s.Model.Constraints makes it fail with
	// lp.ErrUnsupportedForm.
	std, err := lp.Standardize(s.Model)
	if err != nil {
		return Result{}, err
	}
	result, err := s.reoptimizeStd(ctx, std, sensitivity.RangeReport{})
	if err != nil {
		return result, err
	}
	s.log("add-variable", "", label, 0, objCoeff, result)
	return result, nil
}

// reoptimizeStd re-solves an already-mutated StandardModel with primal
// simplex, falling back through dual simplex when its RHS came out negative
// (§4.10 step 4). Building the tableau directly off std, rather than
// re-deriving it via Standardize(s.Model), is what lets an out-of-range RHS
// edit carry a negative B[row] into the solve instead of being rejected.
func (s *Session) reoptimizeStd(ctx context.Context, std *lp.StandardModel, rng sensitivity.RangeReport) (Result, error) {
	tab := std.BuildTableau()
	status, err := lp.SolveRelaxation(ctx, s.cfg, tab, &s.Trace)

	s.Std = std
	s.Tab = tab

	sol := lp.Solution{Status: status}
	if status == lp.Optimal {
		sol = s.currentSolution()
	}
	return Result{Solution: sol, InRange: false, Reoptimize: true, Range: rng}, err
}

func (s *Session) currentSolution() lp.Solution {
	x := s.Std.BackMap(lp.XPrimeFromTableau(s.Std, s.Tab))
	z := 0.0
	xs := make(map[string]float64, len(x))
	for j, v := range x {
		z += s.Model.Objective[j] * v
		xs[s.Model.Label(j)] = v
	}
	return lp.Solution{Z: z, X: xs, Status: lp.Optimal}
}
