package lp

import "errors"

// Sentinel errors for the solver core's error taxonomy. Every driver returns
// one of these (or a sibling sentinel from the bnb/cutplane packages)
// alongside a terminal Solution.Status, so callers can errors.Is against a
// specific failure mode instead of string-matching the status.
var (
	// ErrUnsupportedForm is returned by Standardize when the model contains a
	// constraint relation other than <=, a negative RHS, or a Sign value
	// outside the defined enum. The bin+urs and bin+<=0 combinations cannot
	// be expressed at all, since each variable carries exactly one Sign.
	ErrUnsupportedForm = errors.New("lp: model is not representable in standard form")

	// ErrInfeasible is returned when the dual simplex or the phase-I repair
	// loop confirms no feasible point exists.
	ErrInfeasible = errors.New("lp: problem is infeasible")

	// ErrUnbounded is returned when the primal simplex cannot find a leaving
	// row for an improving entering column.
	ErrUnbounded = errors.New("lp: problem is unbounded")

	// ErrNumericallyDegenerate is returned when a pivot element remains below
	// tolerance after the single clamp-and-retry recovery.
	ErrNumericallyDegenerate = errors.New("lp: pivot element numerically degenerate")

	// ErrIterationLimit is returned by the primal, dual, two-phase and
	// revised drivers when their respective iteration cap is exhausted
	// without reaching optimality.
	ErrIterationLimit = errors.New("lp: iteration limit reached")

	// ErrNeedsPhaseOne is returned by RevisedSimplex when no identity basis
	// can be located in A and the caller must run TwoPhase first.
	ErrNeedsPhaseOne = errors.New("lp: no identity basis found, run phase I first")

	// ErrSingularBasis is returned by RevisedSimplex when the current basis
	// matrix is singular and B^-1 cannot be formed.
	ErrSingularBasis = errors.New("lp: basis matrix is singular")
)
