package lp

import (
	"context"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// RevisedResult is the outcome of a RevisedSimplex run: the standard-space
// solution xPrime (length n'+m, slacks included) and the final basis
// (column indices, one per constraint row).
type RevisedResult struct {
	XPrime []float64
	Basis  []int
}

// RevisedSimplex solves the Phase-II problem for std by maintaining an
// explicit basis-inverse form rather than a full tableau (§4.6): each
// iteration computes x_B = B^-1 b, y = c_B B^-1 and reduced costs
// r_j = c_j - y.A_j via gonum's mat.VecDense.SolveVec (never by forming B^-1
// explicitly), mirroring the reference LP solver's own linear-solve-based
// bookkeeping.
//
// The augmented system is A' = [A | I_m], c' = [c | 0] -- the same
// structural+slack layout BuildTableau uses -- so the trivial slack basis
// is always a valid starting identity basis for a freshly standardized
// model. If no identity basis can be found among A' columns, RevisedSimplex
// returns ErrNeedsPhaseOne without iterating; the caller is expected to run
// TwoPhase on a tableau first. Because A' always carries the slack block
// I_m, that search succeeds for every StandardModel.
func RevisedSimplex(ctx context.Context, cfg SolverConfig, std *StandardModel, tr *Trace) (Status, RevisedResult, error) {
	m := std.M()
	nPrime := std.NPrime()
	total := nPrime + m

	aExt := make([][]float64, m)
	cExt := make([]float64, total)
	copy(cExt, std.C)
	for i := 0; i < m; i++ {
		row := make([]float64, total)
		copy(row, std.A[i])
		row[nPrime+i] = 1
		aExt[i] = row
	}

	basisIdxs, err := findIdentityBasis(aExt, m, total, cfg.EPS)
	if err != nil {
		return IterationLimit, RevisedResult{}, err
	}

	ab := mat.NewDense(m, m, nil)
	fillBasisMatrix(ab, aExt, basisIdxs)

	bVec := mat.NewVecDense(m, std.B)
	cB := make([]float64, m)
	for i, idx := range basisIdxs {
		cB[i] = cExt[idx]
	}

	for iter := 0; iter < cfg.RevisedIterationCap; iter++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return IterationLimit, RevisedResult{}, ctxErr
		}

		var xB mat.VecDense
		if err := xB.SolveVec(ab, bVec); err != nil {
			return IterationLimit, RevisedResult{}, ErrSingularBasis
		}

		var y mat.VecDense
		if err := y.SolveVec(ab.T(), mat.NewVecDense(m, cB)); err != nil {
			return IterationLimit, RevisedResult{}, ErrSingularBasis
		}

		inBasis := make(map[int]bool, m)
		for _, idx := range basisIdxs {
			inBasis[idx] = true
		}

		yData := y.RawVector().Data
		enter := -1
		bestReduced := cfg.EPS
		for j := 0; j < total; j++ {
			if inBasis[j] {
				continue
			}
			reduced := cExt[j] - floats.Dot(yData, columnOf(aExt, j, m))
			if reduced > bestReduced {
				bestReduced = reduced
				enter = j
			}
		}
		if enter == -1 {
			x := make([]float64, total)
			for i, idx := range basisIdxs {
				x[idx] = xB.AtVec(i)
			}
			tr.Append("revised simplex optimal after %d iterations", iter)
			cfg.Log.Debug().Int("iterations", iter).Msg("revised simplex optimal")
			return Optimal, RevisedResult{XPrime: x, Basis: append([]int(nil), basisIdxs...)}, nil
		}

		var d mat.VecDense
		if err := d.SolveVec(ab, mat.NewVecDense(m, columnOf(aExt, enter, m))); err != nil {
			return IterationLimit, RevisedResult{}, ErrSingularBasis
		}

		leave := -1
		bestRatio := math.Inf(1)
		for i := 0; i < m; i++ {
			di := d.AtVec(i)
			if di <= cfg.EPS {
				continue
			}
			ratio := xB.AtVec(i) / di
			if leave == -1 || ratio < bestRatio-cfg.EPS {
				leave = i
				bestRatio = ratio
			}
		}
		if leave == -1 {
			tr.Append("revised simplex unbounded: no positive ratio-test entry for entering column %d", enter)
			cfg.Log.Debug().Int("enter", enter).Msg("revised simplex unbounded")
			return Unbounded, RevisedResult{}, ErrUnbounded
		}

		basisIdxs[leave] = enter
		cB[leave] = cExt[enter]
		setColumn(ab, leave, columnOf(aExt, enter, m))
		tr.Append("revised pivot: row %d enters column %d", leave, enter)
		cfg.Log.Debug().Int("row", leave).Int("enter", enter).Msg("revised pivot")
	}

	cfg.Log.Warn().Int("cap", cfg.RevisedIterationCap).Msg("revised simplex iteration limit reached")
	return IterationLimit, RevisedResult{}, ErrIterationLimit
}

func columnOf(a [][]float64, j, m int) []float64 {
	col := make([]float64, m)
	for i := 0; i < m; i++ {
		col[i] = a[i][j]
	}
	return col
}

func fillBasisMatrix(ab *mat.Dense, a [][]float64, basisIdxs []int) {
	for bi, idx := range basisIdxs {
		setColumn(ab, bi, columnOf(a, idx, len(basisIdxs)))
	}
}

func setColumn(ab *mat.Dense, col int, v []float64) {
	for i, val := range v {
		ab.Set(i, col, val)
	}
}

// findIdentityBasis locates, for each row i, a column that is 1 at row i and
// 0 elsewhere (a unit vector), per §4.6. It returns ErrNeedsPhaseOne if no
// such assignment covers every row.
func findIdentityBasis(a [][]float64, m, total int, eps float64) ([]int, error) {
	basis := make([]int, m)
	used := make(map[int]bool, m)
	for i := 0; i < m; i++ {
		found := -1
		for j := 0; j < total; j++ {
			if used[j] {
				continue
			}
			if isUnitColumn(a, j, i, m, eps) {
				found = j
				break
			}
		}
		if found == -1 {
			return nil, ErrNeedsPhaseOne
		}
		basis[i] = found
		used[found] = true
	}
	return basis, nil
}

func isUnitColumn(a [][]float64, j, row, m int, eps float64) bool {
	for i := 0; i < m; i++ {
		v := a[i][j]
		if i == row {
			if math.Abs(v-1) > eps {
				return false
			}
		} else if math.Abs(v) > eps {
			return false
		}
	}
	return true
}
