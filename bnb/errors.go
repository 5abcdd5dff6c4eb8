package bnb

import "errors"

// ErrNodeLimit is returned when Solve exhausts SolverConfig.NodeLimit nodes
// without proving optimality or exhausting the search tree.
var ErrNodeLimit = errors.New("bnb: node limit reached")
