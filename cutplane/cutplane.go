// Package cutplane implements the Gomory fractional cutting-plane driver
// (C10): it wraps the lp package's primal/dual simplex drivers with a loop
// that derives a new valid inequality from a fractional basic integer row
// whenever the current relaxation optimum is not yet integer-feasible.
package cutplane

import (
	"context"
	"fmt"
	"math"

	"github.com/thinkeridea/lpteach/convex/lp"
)

// frac returns x - floor(x), clamped to 0 when within tol of either 0 or 1
// (§4.8: "clamped to [0,1) within 1e-12").
func frac(x, tol float64) float64 {
	f := x - math.Floor(x)
	if f < tol || f > 1-tol {
		return 0
	}
	return f
}

// findCutRow picks the basic-integer std-column whose row's RHS fractional
// part is closest to 0.5 (§4.8 step 3), returning ok=false when no int/bin
// column is currently basic with a genuinely fractional RHS.
func findCutRow(std *lp.StandardModel, tab *lp.Tableau, fracClampTol float64) (row int, ok bool) {
	row = -1
	bestDist := math.Inf(1)
	for i := 0; i < tab.Rows(); i++ {
		col := tab.Basis(i)
		if col >= std.NPrime() {
			continue
		}
		sc := std.Cols[col]
		if !sc.IsInteger && !sc.IsBinary {
			continue
		}
		f := frac(tab.RHS(i), fracClampTol)
		if f == 0 {
			continue
		}
		dist := math.Abs(f - 0.5)
		if row == -1 || dist < bestDist {
			row, bestDist = i, dist
		}
	}
	return row, row != -1
}

// growTableau allocates a fresh tableau one row and one column larger than
// tab, copies its contents across unchanged, and inserts the Gomory cut row
// derived from tab's row rowIdx as the new last constraint row with a fresh
// slack column SC<cutIndex+1> (§9: "allocate a fresh buffer per cut rather
// than in-place reshape").
func growTableau(tab *lp.Tableau, rowIdx, cutIndex int, fracClampTol float64) *lp.Tableau {
	mOld, nOld := tab.Rows(), tab.Cols()
	newTab := lp.NewTableau(mOld+1, nOld+1)

	for j := 0; j < nOld; j++ {
		newTab.SetColName(j, tab.ColName(j))
	}
	newTab.SetColName(nOld, fmt.Sprintf("SC%d", cutIndex+1))

	for i := 0; i < mOld; i++ {
		for j := 0; j < nOld; j++ {
			newTab.Set(i, j, tab.At(i, j))
		}
		newTab.Set(i, nOld, 0)
		newTab.Set(i, newTab.RHSCol(), tab.RHS(i))
		newTab.SetBasis(i, tab.Basis(i))
	}

	cutRow := mOld
	for j := 0; j < nOld; j++ {
		newTab.Set(cutRow, j, -frac(tab.At(rowIdx, j), fracClampTol))
	}
	newTab.Set(cutRow, nOld, 1)
	newTab.Set(cutRow, newTab.RHSCol(), -frac(tab.RHS(rowIdx), fracClampTol))
	newTab.SetBasis(cutRow, nOld)

	for j := 0; j < nOld; j++ {
		newTab.Set(newTab.ObjRow(), j, tab.At(tab.ObjRow(), j))
	}
	newTab.Set(newTab.ObjRow(), nOld, 0)
	newTab.Set(newTab.ObjRow(), newTab.RHSCol(), tab.Z())

	return newTab
}

func allIntegral(model *lp.Model, x []float64, fracEPS float64) bool {
	for k := 0; k < model.N(); k++ {
		s := model.Signs[k]
		if s != lp.Integer && s != lp.Binary {
			continue
		}
		val := x[k]
		f := val - math.Floor(val)
		if math.Min(f, 1-f) > fracEPS {
			return false
		}
	}
	return true
}

func toSolution(model *lp.Model, x []float64, status lp.Status) lp.Solution {
	z := 0.0
	xs := make(map[string]float64, len(x))
	for j, v := range x {
		z += model.Objective[j] * v
		xs[model.Label(j)] = v
	}
	return lp.Solution{Z: z, X: xs, Status: status}
}

func writeReport(cfg lp.SolverConfig, sol lp.Solution, tr *lp.Trace, note string) {
	if _, err := lp.WriteResultFile(cfg, cfg.ReportDir, "CuttingPlane", sol, tr, note); err != nil {
		cfg.Log.Warn().Err(err).Msg("cutting-plane result file not written")
	}
}

// Solve runs the Gomory fractional cutting-plane driver to optimality (or a
// terminal bound) on model, per C10/§4.8: solve the relaxation, and while
// any int/bin original is fractional, derive a cut from the basic-integer
// row closest to a 0.5 fractional RHS, dual-reoptimize, then primal
// re-optimize, up to cfg.CutLimit rounds.
func Solve(ctx context.Context, cfg lp.SolverConfig, model *lp.Model) (lp.Solution, lp.Trace, error) {
	var tr lp.Trace

	std, err := lp.Standardize(model)
	if err != nil {
		return lp.Solution{Status: lp.IterationLimit}, tr, err
	}

	tab := std.BuildTableau()
	status, err := lp.SolveRelaxation(ctx, cfg, tab, &tr)
	if status != lp.Optimal {
		return lp.Solution{Status: status}, tr, err
	}

	for cut := 0; cut < cfg.CutLimit; cut++ {
		if cerr := ctx.Err(); cerr != nil {
			return lp.Solution{Status: lp.IterationLimit}, tr, cerr
		}

		x := std.BackMap(lp.XPrimeFromTableau(std, tab))
		if allIntegral(model, x, cfg.FracEPS) {
			sol := toSolution(model, x, lp.Optimal)
			cfg.Log.Info().Int("cuts", cut).Float64("z", sol.Z).Msg("cutting-plane finished")
			tr.Append("all integer/binary originals integral after %d cut(s), Z=%.6g", cut, sol.Z)
			writeReport(cfg, sol, &tr, "")
			return sol, tr, nil
		}

		rowIdx, ok := findCutRow(std, tab, cfg.FracClampTol)
		if !ok {
			cfg.Log.Warn().Msg("no suitable cut row")
			tr.Append("no suitable cut row: fractional variables remain but no int/bin column is basic with a fractional RHS")
			sol := toSolution(model, x, lp.Infeasible)
			writeReport(cfg, sol, &tr, "no suitable cut row")
			return sol, tr, ErrNoCutRow
		}

		basicName := std.Cols[tab.Basis(rowIdx)].Name
		cfg.Log.Debug().Int("cut", cut+1).Str("row", basicName).Msg("adding gomory cut")
		tr.Append("cut %d: derived from row basic in %s, RHS fractional part %.6g", cut+1, basicName, frac(tab.RHS(rowIdx), cfg.FracClampTol))

		newTab := growTableau(tab, rowIdx, cut, cfg.FracClampTol)

		status, err = lp.DualSimplex(ctx, cfg, newTab, &tr)
		if status != lp.Optimal {
			sol := lp.Solution{Status: status}
			writeReport(cfg, sol, &tr, "dual simplex failed to restore feasibility after cut")
			return sol, tr, err
		}
		status, err = lp.PrimalSimplex(ctx, cfg, newTab, &tr)
		if status != lp.Optimal {
			sol := lp.Solution{Status: status}
			writeReport(cfg, sol, &tr, "primal re-optimization failed after cut")
			return sol, tr, err
		}

		tab = newTab
	}

	cfg.Log.Warn().Int("cuts", cfg.CutLimit).Msg("gomory cut limit reached")
	tr.Append("cut limit %d reached", cfg.CutLimit)
	sol := lp.Solution{Status: lp.CutLimit}
	writeReport(cfg, sol, &tr, "cut limit reached")
	return sol, tr, ErrCutLimit
}
