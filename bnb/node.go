package bnb

import "github.com/thinkeridea/lpteach/convex/lp"

// Node is one Branch-and-Bound subproblem (C9, §3.4): the standardized model
// and tableau for this branch, the path that produced it, its LP-relaxation
// bound, and the back-mapped original-variable solution that bound came
// from. Nodes are immutable once their bound is computed and are discarded
// on pop or prune -- no back-pointer is needed once a node has been
// expanded, so Parent exists only for trace/debug narration.
type Node struct {
	Std          *lp.StandardModel
	Tableau      *lp.Tableau
	Label        string
	BranchHeader string
	LPBound      float64
	OrigSolution []float64
	Parent       *Node
}

// nodeHeap is a container/heap max-heap keyed by LPBound, giving the
// best-first-by-bound search order §4.7 requires (the node promising the
// highest relaxation value is explored first, for a maximization-sense
// internal tableau).
type nodeHeap []*Node

func (h nodeHeap) Len() int { return len(h) }

func (h nodeHeap) Less(i, j int) bool { return h[i].LPBound > h[j].LPBound }

func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *nodeHeap) Push(x interface{}) {
	*h = append(*h, x.(*Node))
}

func (h *nodeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}
