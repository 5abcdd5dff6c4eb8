package lp

import "context"

// Algorithm is the closed tagged variant of LP drivers this package
// exposes directly (§9 design notes). Branch-and-Bound and the Gomory
// cutting-plane driver live in their own packages (bnb, cutplane) since
// they compose these, but share the same solve(model) -> (solution,trace)
// shape.
type Algorithm int

const (
	AlgorithmPrimal Algorithm = iota
	AlgorithmDual
	AlgorithmRevised
	AlgorithmTwoPhase
)

func (a Algorithm) String() string {
	switch a {
	case AlgorithmDual:
		return "dual"
	case AlgorithmRevised:
		return "revised"
	case AlgorithmTwoPhase:
		return "two-phase"
	default:
		return "primal"
	}
}

// Solve standardizes model and runs the requested Algorithm against the
// resulting tableau, returning the original-variable Solution and the
// accumulated Trace. Of the driver packages, duality solves its primal
// through it; bnb, cutplane and editor call Standardize and SolveRelaxation
// directly, and sensitivity only reads an already-solved Tableau.
func Solve(ctx context.Context, cfg SolverConfig, model *Model, alg Algorithm) (Solution, *Tableau, *StandardModel, Trace, error) {
	var tr Trace

	std, err := Standardize(model)
	if err != nil {
		return Solution{Status: IterationLimit}, nil, nil, tr, err
	}

	t := std.BuildTableau()

	var status Status
	switch alg {
	case AlgorithmDual:
		status, err = DualSimplex(ctx, cfg, t, &tr)
		if status == Optimal {
			status, err = PrimalSimplex(ctx, cfg, t, &tr)
		}
	case AlgorithmTwoPhase:
		status, err = TwoPhase(ctx, cfg, t, &tr)
		if status == Optimal {
			status, err = PrimalSimplex(ctx, cfg, t, &tr)
		}
	case AlgorithmRevised:
		var rr RevisedResult
		status, rr, err = RevisedSimplex(ctx, cfg, std, &tr)
		if status == Optimal {
			sol := solutionFromStandard(model, std, rr.XPrime)
			return sol, t, std, tr, nil
		}
	default:
		// A freshly standardized model always has b >= 0, so plain
		// PrimalSimplex suffices here; SolveRelaxation's dual fallback is
		// defensive (it only triggers in practice for BranchAndBound/
		// CuttingPlane tableaus that append a negative-RHS row directly).
		status, err = SolveRelaxation(ctx, cfg, t, &tr)
	}

	sol := Solution{Status: status}
	if status == Optimal {
		sol = solutionFromTableau(model, std, t)
	}
	return sol, t, std, tr, err
}

func solutionFromTableau(model *Model, std *StandardModel, t *Tableau) Solution {
	return solutionFromStandard(model, std, XPrimeFromTableau(std, t))
}

func solutionFromStandard(model *Model, std *StandardModel, xPrime []float64) Solution {
	x := std.BackMap(xPrime)
	z := 0.0
	for j, v := range x {
		z += model.Objective[j] * v
	}
	xs := make(map[string]float64, len(x))
	for j, v := range x {
		xs[model.Label(j)] = v
	}
	return Solution{Z: z, X: xs, Status: Optimal}
}
