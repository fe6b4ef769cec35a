// Adapted from gitrdm/gokanlogic's SolveOptimal (pkg/minikanren/optimize.go):
// same depth-first branch-and-bound shape (explicit stack of frames, an
// incumbent tracked across the search, admissible-bound pruning, and
// cooperative ctx.Done() cancellation returning the best incumbent found so
// far) narrowed to binary variables and single-threaded per spec.md §5 —
// the teacher's optimize_parallel.go / parallel_search.go counterparts are
// deliberately not carried forward (see DESIGN.md).
package fd

import (
	"context"
)

// Status summarizes how a Solve call terminated, matching spec.md §4.4's
// failure-semantics taxonomy.
type Status int

const (
	// StatusOptimal means search completed and proved optimality.
	StatusOptimal Status = iota
	// StatusFeasible means a budget/node limit was hit with an incumbent in hand.
	StatusFeasible
	// StatusInfeasible means the model admits no feasible assignment.
	StatusInfeasible
	// StatusTimeoutNoIncumbent means the budget elapsed before any feasible
	// assignment was found.
	StatusTimeoutNoIncumbent
)

// Result is the outcome of a Solve call.
type Result struct {
	Status    Status
	Solution  []int // value per variable, in model order; nil unless an incumbent exists
	Objective int
}

// frame is one stack entry of the branch-and-bound DFS: a state together
// with the variable chosen to branch on next and the (ordered) values still
// to try.
type frame struct {
	state  *State
	varID  VarID
	values [2]int
	next   int
}

// valueOrder returns the two branch values in the order most likely to find
// a good incumbent early for a minimizing linear objective: try the value
// that contributes less to the objective first.
func valueOrder(coeff int) [2]int {
	if coeff > 0 {
		return [2]int{0, 1}
	}
	return [2]int{1, 0}
}

// Solve runs branch-and-bound minimization of the model's objective until
// proof of optimality, ctx cancellation, or (if node/time limited by the
// caller's ctx) an incumbent-bearing timeout.
func (s *Solver) Solve(ctx context.Context) Result {
	root, err := s.Propagate(nil)
	if err != nil {
		return Result{Status: StatusInfeasible}
	}

	var best []int
	haveIncumbent := false
	bestVal := 0

	branchFor := func(st *State) (VarID, [2]int, bool) {
		id, ok := s.FirstUnbound(st)
		if !ok {
			return 0, [2]int{}, false
		}
		return id, valueOrder(s.model.objective[id]), true
	}

	id, order, ok := branchFor(root)
	if !ok {
		// Fully bound by propagation alone.
		sol := s.ExtractSolution(root)
		return Result{Status: StatusOptimal, Solution: sol, Objective: s.model.ObjectiveValue(s, root)}
	}

	stack := []*frame{{state: root, varID: id, values: order, next: 0}}

	for len(stack) > 0 {
		select {
		case <-ctx.Done():
			if haveIncumbent {
				return Result{Status: StatusFeasible, Solution: best, Objective: bestVal}
			}
			return Result{Status: StatusTimeoutNoIncumbent}
		default:
		}

		top := stack[len(stack)-1]
		if top.next >= len(top.values) {
			stack = stack[:len(stack)-1]
			continue
		}
		value := top.values[top.next]
		top.next++

		child := s.SetDomain(top.state, top.varID, Fix(value))
		propagated, err := s.Propagate(child)
		if err != nil {
			continue
		}

		if haveIncumbent {
			if bound := s.model.ObjectiveLowerBound(s, propagated); bound >= bestVal {
				continue
			}
		}

		nid, norder, ok := branchFor(propagated)
		if !ok {
			val := s.model.ObjectiveValue(s, propagated)
			if !haveIncumbent || val < bestVal {
				bestVal = val
				best = s.ExtractSolution(propagated)
				haveIncumbent = true
			}
			continue
		}

		stack = append(stack, &frame{state: propagated, varID: nid, values: norder, next: 0})
	}

	if !haveIncumbent {
		return Result{Status: StatusInfeasible}
	}
	return Result{Status: StatusOptimal, Solution: best, Objective: bestVal}
}
