package lp

import "fmt"

// Sense is the optimization direction of a Model's objective.
type Sense int

const (
	Max Sense = iota
	Min
)

func (s Sense) String() string {
	if s == Min {
		return "min"
	}
	return "max"
}

// Relation is the comparison operator of a constraint row.
type Relation int

const (
	LE Relation = iota // <=
	GE                 // >=
	EQ                 // =
)

func (r Relation) String() string {
	switch r {
	case GE:
		return ">="
	case EQ:
		return "="
	default:
		return "<="
	}
}

// Sign is the sign restriction on an original variable.
type Sign int

const (
	NonNegative Sign = iota // >= 0
	NonPositive              // <= 0
	Unrestricted             // urs
	Integer                  // int
	Binary                   // bin
)

func (s Sign) String() string {
	switch s {
	case NonPositive:
		return "<=0"
	case Unrestricted:
		return "urs"
	case Integer:
		return "int"
	case Binary:
		return "bin"
	default:
		return ">=0"
	}
}

// Constraint is one row of a Model: n coefficients, a relation, and an RHS.
type Constraint struct {
	Coeffs []float64
	Rel    Relation
	RHS    float64
}

// Model is the immutable LP/MIP description consumed by the core (C1). It
// carries no behavior beyond validation: the sense, objective, constraints,
// sign restrictions and variable labels are exactly what the external
// parser (out of scope here) is contracted to produce.
type Model struct {
	Sense       Sense
	Objective   []float64
	Constraints []Constraint
	Signs       []Sign
	Labels      []string
}

// N returns the number of original variables.
func (m *Model) N() int {
	return len(m.Objective)
}

// Validate checks the structural invariants from §3.1: every coefficient
// row has length n, and |Signs| == n. It does not check standard-form
// eligibility (relation kind, RHS sign) -- that is Standardize's job.
func (m *Model) Validate() error {
	n := m.N()
	if len(m.Signs) != n {
		return fmt.Errorf("lp: model has %d objective coefficients but %d sign restrictions", n, len(m.Signs))
	}
	if m.Labels != nil && len(m.Labels) != n {
		return fmt.Errorf("lp: model has %d objective coefficients but %d labels", n, len(m.Labels))
	}
	for i, c := range m.Constraints {
		if len(c.Coeffs) != n {
			return fmt.Errorf("lp: constraint %d has %d coefficients, want %d", i, len(c.Coeffs), n)
		}
	}
	return nil
}

// Label returns the display label of original variable j, defaulting to
// X<j+1> when the model did not supply explicit labels.
func (m *Model) Label(j int) string {
	if j < len(m.Labels) && m.Labels[j] != "" {
		return m.Labels[j]
	}
	return fmt.Sprintf("X%d", j+1)
}

// Clone returns a deep copy of the Model so that edits (C12) never alias the
// caller's slices.
func (m *Model) Clone() *Model {
	cp := &Model{
		Sense:     m.Sense,
		Objective: append([]float64(nil), m.Objective...),
		Signs:     append([]Sign(nil), m.Signs...),
		Labels:    append([]string(nil), m.Labels...),
	}
	cp.Constraints = make([]Constraint, len(m.Constraints))
	for i, c := range m.Constraints {
		cp.Constraints[i] = Constraint{
			Coeffs: append([]float64(nil), c.Coeffs...),
			Rel:    c.Rel,
			RHS:    c.RHS,
		}
	}
	return cp
}
