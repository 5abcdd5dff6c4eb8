package lp

import (
	"context"
	"math"
)

// PrimalSimplex runs Dantzig-rule primal iterations on t (§4.3): the
// entering column is the most-negative reduced cost in the objective row;
// the leaving row is chosen by the minimum-ratio test, ties broken by
// smaller row index. It mutates t in place and returns the terminal
// status, appending one trace entry per pivot.
//
// cfg.PrimalIterationCap bounds the number of pivots; exceeding it yields
// IterationLimit (never a silent stop, per §7).
func PrimalSimplex(ctx context.Context, cfg SolverConfig, t *Tableau, tr *Trace) (Status, error) {
	obj := t.ObjRow()
	rhsCol := t.RHSCol()

	for iter := 0; iter < cfg.PrimalIterationCap; iter++ {
		if err := ctx.Err(); err != nil {
			return IterationLimit, err
		}

		enter := -1
		best := -cfg.EPS
		for j := 0; j < t.Cols(); j++ {
			v := t.At(obj, j)
			if v < best {
				best = v
				enter = j
			}
		}
		if enter == -1 {
			cfg.Log.Debug().Int("iterations", iter).Msg("primal simplex optimal")
			return Optimal, nil
		}

		leave := -1
		bestRatio := math.Inf(1)
		for i := 0; i < t.Rows(); i++ {
			a := t.At(i, enter)
			if a <= cfg.EPS {
				continue
			}
			ratio := t.RHS(i) / a
			if leave == -1 || ratio < bestRatio-cfg.EPS {
				leave = i
				bestRatio = ratio
			}
		}
		if leave == -1 {
			cfg.Log.Debug().Str("col", t.ColName(enter)).Msg("primal simplex unbounded")
			tr.Append("unbounded: column %s has no positive ratio-test entry", t.ColName(enter))
			return Unbounded, ErrUnbounded
		}

		leaveName := t.ColName(t.Basis(leave))
		if err := Pivot(t, cfg, leave, enter); err != nil {
			return IterationLimit, err
		}
		t.SetBasis(leave, enter)
		tr.Append("primal pivot: enter %s, leave %s, row %d -> Z=%.6g", t.ColName(enter), leaveName, leave, t.Z())
		cfg.Log.Debug().Str("enter", t.ColName(enter)).Int("row", leave).Float64("z", t.Z()).Msg("primal pivot")
	}

	cfg.Log.Warn().Int("cap", cfg.PrimalIterationCap).Msg("primal simplex iteration limit reached")
	return IterationLimit, ErrIterationLimit
}
