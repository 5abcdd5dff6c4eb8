package cutplane

import "errors"

// ErrCutLimit is returned when Solve exhausts SolverConfig.CutLimit Gomory
// cuts without reaching an integer-feasible tableau.
var ErrCutLimit = errors.New("cutplane: cut limit reached")

// ErrNoCutRow is returned when fractional int/bin variables remain but no
// basic row is eligible to generate a Gomory cut from (the integer variable
// is non-basic, or every candidate row is already integral — §4.8's
// "reject/stop if no suitable basic row exists").
var ErrNoCutRow = errors.New("cutplane: no suitable cut row")
