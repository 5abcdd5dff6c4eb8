package lp

import (
	"context"
	"math"
)

// TwoPhase runs the Phase-I repair heuristic of §4.5: if t already has no
// negative RHS it is a no-op (the caller should proceed straight to
// PrimalSimplex). Otherwise it repeatedly picks the most-negative-RHS row
// and a column minimizing |objRow[c] / row[c]| among negative entries of
// that row, pivots, and repeats until every RHS is >= 0 or no admissible
// column exists (Infeasible).
//
// TwoPhase does not itself optimize the objective; it only restores primal
// feasibility so PrimalSimplex can run. Callers typically call TwoPhase
// then PrimalSimplex in sequence (this is exactly what Solve does for
// AlgorithmTwoPhase).
func TwoPhase(ctx context.Context, cfg SolverConfig, t *Tableau, tr *Trace) (Status, error) {
	obj := t.ObjRow()

	needsRepair := false
	for i := 0; i < t.Rows(); i++ {
		if t.RHS(i) < -cfg.EPS {
			needsRepair = true
			break
		}
	}
	if !needsRepair {
		return Optimal, nil
	}

	for iter := 0; iter < cfg.PhaseOneIterationCap; iter++ {
		if err := ctx.Err(); err != nil {
			return IterationLimit, err
		}

		r := -1
		worst := -cfg.EPS
		for i := 0; i < t.Rows(); i++ {
			rhs := t.RHS(i)
			if rhs < worst {
				worst = rhs
				r = i
			}
		}
		if r == -1 {
			cfg.Log.Debug().Int("iterations", iter).Msg("phase I feasible")
			return Optimal, nil
		}

		c := -1
		bestRatio := math.Inf(1)
		for j := 0; j < t.Cols(); j++ {
			a := t.At(r, j)
			if a >= -cfg.EPS {
				continue
			}
			ratio := math.Abs(t.At(obj, j) / a)
			if c == -1 || ratio < bestRatio-cfg.EPS {
				c = j
				bestRatio = ratio
			}
		}
		if c == -1 {
			tr.Append("infeasible: phase I row %d has no negative entry to repair", r)
			cfg.Log.Debug().Int("row", r).Msg("phase I infeasible")
			return Infeasible, ErrInfeasible
		}

		if err := Pivot(t, cfg, r, c); err != nil {
			return IterationLimit, err
		}
		t.SetBasis(r, c)
		tr.Append("phase I pivot: row %d, enter %s", r, t.ColName(c))
		cfg.Log.Debug().Int("row", r).Str("enter", t.ColName(c)).Msg("phase I pivot")
	}

	cfg.Log.Warn().Int("cap", cfg.PhaseOneIterationCap).Msg("phase I iteration limit reached")
	return IterationLimit, ErrIterationLimit
}
