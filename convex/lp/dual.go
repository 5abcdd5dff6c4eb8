package lp

import (
	"context"
	"math"
)

// DualSimplex runs dual-simplex iterations on t (§4.4): the leaving row is
// the most-negative RHS; the entering column minimizes the ratio of
// objective-row entry to (negative) pivot-row entry among columns with a
// negative entry in that row. It mutates t in place and returns the
// terminal status, appending one trace entry per pivot.
//
// Optimal here means primal feasibility has been reached ("Optimal/Feasible"
// in §4.4): every RHS is >= 0, whether or not pivots were made. The
// objective row may still hold negative entries afterwards, which is why
// Solve, SolveRelaxation and the cutting-plane driver run PrimalSimplex next.
func DualSimplex(ctx context.Context, cfg SolverConfig, t *Tableau, tr *Trace) (Status, error) {
	obj := t.ObjRow()

	for iter := 0; iter < cfg.DualIterationCap; iter++ {
		if err := ctx.Err(); err != nil {
			return IterationLimit, err
		}

		leave := -1
		worst := -cfg.EPS
		for i := 0; i < t.Rows(); i++ {
			rhs := t.RHS(i)
			if rhs < worst {
				worst = rhs
				leave = i
			}
		}
		if leave == -1 {
			cfg.Log.Debug().Int("iterations", iter).Msg("dual simplex feasible")
			return Optimal, nil
		}

		enter := -1
		bestRatio := math.Inf(1)
		for j := 0; j < t.Cols(); j++ {
			a := t.At(leave, j)
			if a >= -cfg.EPS {
				continue
			}
			ratio := t.At(obj, j) / a
			if enter == -1 || ratio < bestRatio-cfg.EPS {
				enter = j
				bestRatio = ratio
			}
		}
		if enter == -1 {
			tr.Append("infeasible: row %d (%s) has no negative entry to pivot on", leave, t.ColName(t.Basis(leave)))
			cfg.Log.Debug().Int("row", leave).Msg("dual simplex infeasible")
			return Infeasible, ErrInfeasible
		}

		if err := Pivot(t, cfg, leave, enter); err != nil {
			return IterationLimit, err
		}
		t.SetBasis(leave, enter)
		tr.Append("dual pivot: leave row %d, enter %s -> Z=%.6g", leave, t.ColName(enter), t.Z())
		cfg.Log.Debug().Int("row", leave).Str("enter", t.ColName(enter)).Float64("z", t.Z()).Msg("dual pivot")
	}

	cfg.Log.Warn().Int("cap", cfg.DualIterationCap).Msg("dual simplex iteration limit reached")
	return IterationLimit, ErrIterationLimit
}
