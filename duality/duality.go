// Package duality implements the dual-model construction and strong/weak
// duality verdict of C13: transpose the standardized primal's A, swap its
// B and C, solve the mirror problem with the same primal/dual simplex
// drivers the core already exposes, and compare optimal values.
package duality

import (
	"context"
	"fmt"
	"math"

	"github.com/thinkeridea/lpteach/convex/lp"
)

// Report is the outcome of Solve: both optimal values, the dual variable
// assignment, and the strong-vs-weak duality verdict (§4.11, §8's
// "Strong duality" testable property).
type Report struct {
	PrimalZ float64
	DualZ   float64
	Gap     float64
	Strong  bool
	DualX   map[string]float64
}

// buildDual constructs the <=-only, max-sense mirror of std's true dual
// (min b'^T y s.t. A'^T y >= c', y>=0): negating both sides of the >=
// relation turns it into max(-b'^T y) s.t. -A'^T y <= -c', y>=0, which
// BuildTableau can lay out exactly like any other StandardModel. Its slack
// basis is dual-feasible from the start (every objective-row entry equals
// std's own RHS, which Standardize always keeps >= 0), so
// lp.SolveRelaxation's primal-then-dual-simplex fallback is precisely the
// sequence that repairs it regardless of whether any RHS came out negative.
func buildDual(std *lp.StandardModel) *lp.StandardModel {
	m := std.M()
	nPrime := std.NPrime()

	dual := &lp.StandardModel{OrigSense: lp.Max, OrigN: m}
	dual.Cols = make([]lp.StdCol, m)
	dual.C = make([]float64, m)
	for i := 0; i < m; i++ {
		dual.Cols[i] = lp.StdCol{Name: fmt.Sprintf("Y%d", i+1), OrigIndex: i, Part: lp.Plus}
		dual.C[i] = -std.B[i]
	}

	dual.A = make([][]float64, nPrime)
	dual.B = make([]float64, nPrime)
	for j := 0; j < nPrime; j++ {
		row := make([]float64, m)
		for i := 0; i < m; i++ {
			row[i] = -std.A[i][j]
		}
		dual.A[j] = row
		dual.B[j] = -std.C[j]
	}
	return dual
}

// Solve builds and solves the dual of model (§4.11), returning both
// optimal values and a strong/weak verdict judged against
// cfg.StrongDualityTol. The primal is solved through lp.Solve with
// AlgorithmPrimal; the dual's own standard form is
// assembled directly rather than round-tripped through a Model, since its
// ">=" relation and its RHS (the negated primal objective coefficients,
// which may be any sign) are not representable by Standardize.
func Solve(ctx context.Context, cfg lp.SolverConfig, model *lp.Model) (Report, lp.Trace, error) {
	var tr lp.Trace

	primalSol, primalTab, std, primalTrace, err := lp.Solve(ctx, cfg, model, lp.AlgorithmPrimal)
	tr.Entries = append(tr.Entries, primalTrace.Entries...)
	if primalSol.Status != lp.Optimal {
		tr.Append("primal did not reach optimality (%s); dual not attempted", primalSol.Status)
		return Report{}, tr, err
	}
	_ = primalTab

	dualStd := buildDual(std)
	dualTab := dualStd.BuildTableau()
	status, derr := lp.SolveRelaxation(ctx, cfg, dualTab, &tr)
	if status != lp.Optimal {
		tr.Append("dual did not reach optimality (%s)", status)
		return Report{}, tr, derr
	}

	senseSign := 1.0
	if model.Sense == lp.Min {
		senseSign = -1
	}
	dualZ := -senseSign * dualTab.Z()
	gap := math.Abs(primalSol.Z - dualZ)
	strong := gap < cfg.StrongDualityTol

	dualX := dualStd.BackMap(lp.XPrimeFromTableau(dualStd, dualTab))
	xs := make(map[string]float64, len(dualX))
	for i, v := range dualX {
		xs[dualStd.Cols[i].Name] = v
	}

	verdict := "weak"
	if strong {
		verdict = "strong"
	}
	tr.Append("%s duality: primal Z=%.6g, dual Z=%.6g, gap=%.6g", verdict, primalSol.Z, dualZ, gap)
	cfg.Log.Info().Float64("primalZ", primalSol.Z).Float64("dualZ", dualZ).Float64("gap", gap).Bool("strong", strong).Msg("duality verdict")

	return Report{
		PrimalZ: primalSol.Z,
		DualZ:   dualZ,
		Gap:     gap,
		Strong:  strong,
		DualX:   xs,
	}, tr, nil
}
