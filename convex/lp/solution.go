package lp

import "fmt"

// Status is the terminal verdict of a driver run.
type Status int

const (
	Optimal Status = iota
	Infeasible
	Unbounded
	IterationLimit
	NodeLimit
	CutLimit
)

func (s Status) String() string {
	switch s {
	case Infeasible:
		return "Infeasible"
	case Unbounded:
		return "Unbounded"
	case IterationLimit:
		return "IterationLimit"
	case NodeLimit:
		return "NodeLimit"
	case CutLimit:
		return "CutLimit"
	default:
		return "Optimal"
	}
}

// Solution is the output of every driver: the optimum (if any), the
// original-variable assignment keyed by label, and the terminal status.
type Solution struct {
	Z      float64
	X      map[string]float64
	Status Status
}

// TraceEntry is one human-readable step: a pivot, a cut, a node expansion,
// a prune reason, or a basis/dual-simplex transition (§6.2).
type TraceEntry struct {
	Step int
	Note string
}

// Trace is the ordered step log a driver accumulates over a run.
type Trace struct {
	Entries []TraceEntry
}

// Append records one trace entry, formatting note the way fmt.Sprintf does.
func (t *Trace) Append(format string, args ...interface{}) {
	t.Entries = append(t.Entries, TraceEntry{
		Step: len(t.Entries) + 1,
		Note: fmt.Sprintf(format, args...),
	})
}

// String renders the trace as one line per entry, "step: note".
func (t *Trace) String() string {
	s := ""
	for _, e := range t.Entries {
		s += fmt.Sprintf("%d: %s\n", e.Step, e.Note)
	}
	return s
}
