package lp

import "context"

// hasNegativeRHS reports whether any constraint row's RHS is still
// negative, the condition that makes a tableau primal-infeasible.
func hasNegativeRHS(t *Tableau, eps float64) bool {
	for i := 0; i < t.Rows(); i++ {
		if t.RHS(i) < -eps {
			return true
		}
	}
	return false
}

// SolveRelaxation runs the primal simplex on t, falling back to a dual
// simplex feasibility repair followed by a second primal pass when the
// first primal pass either hit its iteration cap or left the tableau
// primal-infeasible (possible when t was built from a StandardModel with a
// freshly appended row whose RHS is negative, as BranchAndBound's ">="
// branch and CuttingPlane's Gomory cut both produce). This is the
// "primal->dual->primal fallback on failure" sequence named in §4.7 and
// reused verbatim by the Gomory dual-reoptimization loop in §4.8.
func SolveRelaxation(ctx context.Context, cfg SolverConfig, t *Tableau, tr *Trace) (Status, error) {
	status, err := PrimalSimplex(ctx, cfg, t, tr)
	switch status {
	case Unbounded:
		return status, err
	case Optimal:
		if !hasNegativeRHS(t, cfg.EPS) {
			return status, err
		}
	}

	status, err = DualSimplex(ctx, cfg, t, tr)
	if status != Optimal {
		return status, err
	}
	return PrimalSimplex(ctx, cfg, t, tr)
}
