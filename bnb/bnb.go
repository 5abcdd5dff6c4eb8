// Package bnb implements the Branch-and-Bound driver (C9): best-first
// search over integrality branches of a standardized LP relaxation, wrapping
// the lp package's simplex drivers rather than reimplementing any pivot
// logic of its own.
package bnb

import (
	"container/heap"
	"context"
	"fmt"
	"math"

	"github.com/thinkeridea/lpteach/convex/lp"
)

// fractional reports the original-variable index with the largest
// integrality violation relative to 0.5 (§4.7: "pick j* minimizing
// |frac(x_j) - 0.5|"), among variables whose Sign is Integer or Binary and
// whose value is not integral within fracEPS. found is false when every
// int/bin variable is already integral.
func fractional(model *lp.Model, x []float64, fracEPS float64) (j int, v float64, found bool) {
	best := math.Inf(1)
	for k := 0; k < model.N(); k++ {
		s := model.Signs[k]
		if s != lp.Integer && s != lp.Binary {
			continue
		}
		val := x[k]
		f := val - math.Floor(val)
		dist := math.Min(f, 1-f)
		if dist <= fracEPS {
			continue
		}
		score := math.Abs(f - 0.5)
		if !found || score < best {
			found = true
			best = score
			j = k
			v = val
		}
	}
	return
}

// structuralColumn returns the standard-space column carrying original
// variable j's value. Integer and binary variables always standardize to a
// single Plus column (§4.1: the int/bin case is folded into the >=0 rule),
// so there is exactly one match.
func structuralColumn(std *lp.StandardModel, origIndex int) int {
	for k, col := range std.Cols {
		if col.OrigIndex == origIndex && col.Part == lp.Plus {
			return k
		}
	}
	return -1
}

// branchRow builds the new standard-space row for one side of a branch on
// original variable j (std column k): coeff +1, rhs floor(v) for "<=", or
// coeff -1, rhs -ceil(v) for the ">=" encoding the tableau's <=-only form
// requires (§4.7).
func branchRow(nPrime, k int, ge bool, v float64) ([]float64, float64) {
	row := make([]float64, nPrime)
	if ge {
		row[k] = -1
		return row, -math.Ceil(v)
	}
	row[k] = 1
	return row, math.Floor(v)
}

func origZ(model *lp.Model, x []float64) float64 {
	z := 0.0
	for j, v := range x {
		z += model.Objective[j] * v
	}
	return z
}

func toSolution(model *lp.Model, x []float64, status lp.Status) lp.Solution {
	xs := make(map[string]float64, len(x))
	for j, v := range x {
		xs[model.Label(j)] = v
	}
	return lp.Solution{Z: origZ(model, x), X: xs, Status: status}
}

// solveNode builds std's tableau and solves its LP relaxation, returning the
// node ready to be pushed onto the search heap, or the terminal status if
// the relaxation itself is not Optimal (infeasible/unbounded branch, pruned
// silently by the caller).
func solveNode(ctx context.Context, cfg lp.SolverConfig, model *lp.Model, std *lp.StandardModel, label, header string, parent *Node, tr *lp.Trace) (*Node, lp.Status) {
	tab := std.BuildTableau()
	status, _ := lp.SolveRelaxation(ctx, cfg, tab, tr)
	if status != lp.Optimal {
		tr.Append("node %s relaxation closed: %s", label, status)
		return nil, status
	}
	x := std.BackMap(lp.XPrimeFromTableau(std, tab))
	return &Node{
		Std:          std,
		Tableau:      tab,
		Label:        label,
		BranchHeader: header,
		LPBound:      tab.Z(),
		OrigSolution: x,
		Parent:       parent,
	}, status
}

// Solve runs Branch-and-Bound to optimality (or a terminal bound) on model,
// per C9/§4.7: the root is the model's LP relaxation; nodes expand by
// picking the most-fractional int/bin variable and branching <=floor/
// >=ceil; search is best-first by relaxation bound, pruned against the
// current incumbent, capped at cfg.NodeLimit.
func Solve(ctx context.Context, cfg lp.SolverConfig, model *lp.Model) (lp.Solution, lp.Trace, error) {
	var tr lp.Trace

	rootStd, err := lp.Standardize(model)
	if err != nil {
		return lp.Solution{Status: lp.IterationLimit}, tr, err
	}

	root, status := solveNode(ctx, cfg, model, rootStd, "p1", "", nil, &tr)
	if root == nil {
		rootErr := error(lp.ErrInfeasible)
		switch status {
		case lp.Unbounded:
			rootErr = lp.ErrUnbounded
		case lp.IterationLimit:
			rootErr = lp.ErrIterationLimit
		}
		return lp.Solution{Status: status}, tr, rootErr
	}

	pq := &nodeHeap{root}
	heap.Init(pq)

	hasIncumbent := false
	var incumbentBound float64
	var incumbentX []float64

	expanded := 0
	for pq.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return lp.Solution{Status: lp.IterationLimit}, tr, err
		}
		if expanded >= cfg.NodeLimit {
			cfg.Log.Warn().Int("nodes", expanded).Msg("branch-and-bound node limit reached")
			tr.Append("node limit %d reached with %d nodes still queued", cfg.NodeLimit, pq.Len())
			sol := lp.Solution{Status: lp.NodeLimit}
			if hasIncumbent {
				sol = toSolution(model, incumbentX, lp.NodeLimit)
			}
			writeReport(cfg, sol, &tr, "node limit reached")
			return sol, tr, ErrNodeLimit
		}

		n := heap.Pop(pq).(*Node)
		expanded++

		if hasIncumbent && n.LPBound <= incumbentBound+1e-9 {
			cfg.Log.Info().Str("node", n.Label).Float64("bound", n.LPBound).Msg("pruned by bound")
			tr.Append("node %s pruned: bound %.6g <= incumbent %.6g", n.Label, n.LPBound, incumbentBound)
			continue
		}

		j, v, isFrac := fractional(model, n.OrigSolution, cfg.FracEPS)
		if !isFrac {
			if !hasIncumbent || n.LPBound > incumbentBound+1e-9 {
				hasIncumbent = true
				incumbentBound = n.LPBound
				incumbentX = n.OrigSolution
				cfg.Log.Info().Str("node", n.Label).Float64("z", origZ(model, n.OrigSolution)).Msg("new incumbent")
				tr.Append("node %s is integer-feasible, new incumbent Z=%.6g", n.Label, origZ(model, n.OrigSolution))
			}
			continue
		}

		k := structuralColumn(n.Std, j)
		cfg.Log.Debug().Str("node", n.Label).Float64("bound", n.LPBound).Int("var", j).Float64("value", v).Msg("expanding node")
		tr.Append("node %s expands on %s=%.6g (bound %.6g)", n.Label, model.Label(j), v, n.LPBound)

		leftCoeffs, leftRHS := branchRow(n.Std.NPrime(), k, false, v)
		leftStd := n.Std.AppendRow(leftCoeffs, leftRHS)
		if !leftStd.HasDuplicateRow(cfg.EPS) {
			header := model.Label(j) + " <= " + floatStr(leftRHS)
			if child, st := solveNode(ctx, cfg, model, leftStd, n.Label+".1", header, n, &tr); st == lp.Optimal {
				heap.Push(pq, child)
			}
		}

		rightCoeffs, rightRHS := branchRow(n.Std.NPrime(), k, true, v)
		rightStd := n.Std.AppendRow(rightCoeffs, rightRHS)
		if !rightStd.HasDuplicateRow(cfg.EPS) {
			header := model.Label(j) + " >= " + floatStr(math.Ceil(v))
			if child, st := solveNode(ctx, cfg, model, rightStd, n.Label+".2", header, n, &tr); st == lp.Optimal {
				heap.Push(pq, child)
			}
		}
	}

	if !hasIncumbent {
		tr.Append("search exhausted with no integer-feasible node")
		sol := lp.Solution{Status: lp.Infeasible}
		writeReport(cfg, sol, &tr, "no integer-feasible solution found")
		return sol, tr, lp.ErrInfeasible
	}

	cfg.Log.Info().Float64("z", incumbentBound).Msg("branch-and-bound finished")
	tr.Append("final incumbent Z=%.6g", origZ(model, incumbentX))
	sol := toSolution(model, incumbentX, lp.Optimal)
	writeReport(cfg, sol, &tr, "")
	return sol, tr, nil
}

func writeReport(cfg lp.SolverConfig, sol lp.Solution, tr *lp.Trace, note string) {
	if _, err := lp.WriteResultFile(cfg, cfg.ReportDir, "BranchAndBound", sol, tr, note); err != nil {
		cfg.Log.Warn().Err(err).Msg("branch-and-bound result file not written")
	}
}

func floatStr(v float64) string {
	return fmt.Sprintf("%.6g", v)
}
