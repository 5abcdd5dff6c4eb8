package lp

import "github.com/rs/zerolog"

// Process-wide numerical tolerances and iteration caps. These are the only
// numerical tuning knobs in the solver core; every driver reads them from a
// SolverConfig value rather than from a package-level mutable singleton.
const (
	// EPS is the matrix tolerance: pivot elements, basis-identity checks and
	// ratio-test admissibility are all judged against EPS.
	EPS = 1e-9

	// FracEPS is the integrality tolerance used by Branch-and-Bound and the
	// Gomory cutting-plane driver to decide whether a value is integral.
	FracEPS = 1e-6

	// BasisClassifyTol is the tolerance GetBasicVariables uses when scanning
	// a column for a lone 1 with zeros elsewhere.
	BasisClassifyTol = 1e-10

	// FracClampTol is the tolerance the Gomory cut generator uses to clamp a
	// fractional part into [0,1).
	FracClampTol = 1e-12

	// StrongDualityTol is the tolerance Duality uses to decide strong vs.
	// weak duality.
	StrongDualityTol = 1e-6

	// PrimalIterationCap bounds PrimalSimplex iterations.
	PrimalIterationCap = 2000
	// DualIterationCap bounds DualSimplex iterations.
	DualIterationCap = 2000
	// PhaseOneIterationCap bounds the TwoPhase repair loop.
	PhaseOneIterationCap = 1000
	// RevisedIterationCap bounds RevisedSimplex iterations.
	RevisedIterationCap = 500
	// CutLimit bounds the number of Gomory cuts the cutting-plane driver
	// will generate before giving up.
	CutLimit = 50
	// NodeLimit bounds the number of Branch-and-Bound nodes explored.
	NodeLimit = 2000
)

// SolverConfig is a plain value object carrying every tunable the solver
// core and its drivers need. It is always constructed explicitly by the
// caller (never read from environment or file) and passed by value into
// each driver entry point, per the "no mutable singletons" design note.
type SolverConfig struct {
	EPS               float64
	FracEPS           float64
	BasisClassifyTol  float64
	FracClampTol      float64
	StrongDualityTol  float64
	PrimalIterationCap int
	DualIterationCap    int
	PhaseOneIterationCap int
	RevisedIterationCap  int
	CutLimit             int
	NodeLimit            int

	// ReportDir, if non-empty, is the directory a driver writes its
	// "<Driver>_Result_<timestamp>.txt" report file into. Empty disables
	// the write entirely; a write failure is logged and recorded as a trace
	// line but never aborts an in-memory solve.
	ReportDir string

	// Log is the structured logger every driver emits pivot/branch/cut
	// events to. The zero value of zerolog.Logger is a valid, silent
	// logger, so a caller that does not set this gets no output.
	Log zerolog.Logger
}

// DefaultConfig returns the SolverConfig matching the constants above, with
// a disabled logger and no report directory.
func DefaultConfig() SolverConfig {
	return SolverConfig{
		EPS:                  EPS,
		FracEPS:              FracEPS,
		BasisClassifyTol:     BasisClassifyTol,
		FracClampTol:         FracClampTol,
		StrongDualityTol:     StrongDualityTol,
		PrimalIterationCap:   PrimalIterationCap,
		DualIterationCap:     DualIterationCap,
		PhaseOneIterationCap: PhaseOneIterationCap,
		RevisedIterationCap:  RevisedIterationCap,
		CutLimit:             CutLimit,
		NodeLimit:            NodeLimit,
		Log:                  zerolog.Nop(),
	}
}
