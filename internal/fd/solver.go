// This file adapts gitrdm/gokanlogic's Solver/SolverState architecture
// (pkg/minikanren/solver.go): state is a persistent, copy-on-write chain of
// single-domain modifications layered over an immutable Model, so
// backtracking is just discarding a state node and states pooled for reuse.
// Narrowed here to binary domains and to single-threaded solving, per
// spec.md §5 ("single-threaded within a day").
package fd

import "sync"

// State is one node in a persistent chain of domain modifications rooted at
// the model's initial domains. A nil *State means "use the model's initial
// domain for every variable".
type State struct {
	parent *State
	varID  VarID
	domain Domain
}

// Solver runs propagation and branch-and-bound search over a fixed Model.
// A Solver is not safe for concurrent use; distinct day-solves each get
// their own Solver sharing nothing but the (read-only) Model inputs.
type Solver struct {
	model     *Model
	statePool *sync.Pool
}

// NewSolver creates a solver bound to model.
func NewSolver(model *Model) *Solver {
	return &Solver{
		model: model,
		statePool: &sync.Pool{
			New: func() interface{} { return &State{} },
		},
	}
}

// Model returns the solver's underlying model.
func (s *Solver) Model() *Model { return s.model }

// GetDomain returns the current domain of v in state, walking the
// copy-on-write chain back to the model's initial domain if unmodified.
func (s *Solver) GetDomain(state *State, v VarID) Domain {
	for st := state; st != nil; st = st.parent {
		if st.varID == v {
			return st.domain
		}
	}
	return s.model.vars[v].initial
}

// SetDomain returns a new state with v's domain narrowed to d. Callers must
// only ever narrow (never widen) a domain.
func (s *Solver) SetDomain(state *State, v VarID, d Domain) *State {
	child := s.statePool.Get().(*State)
	child.parent = state
	child.varID = v
	child.domain = d
	return child
}

// Release returns every node introduced since (but not including) base back
// to the pool. Safe to call with base == nil to release the whole chain.
func (s *Solver) Release(state, base *State) {
	for st := state; st != nil && st != base; {
		next := st.parent
		st.parent = nil
		s.statePool.Put(st)
		st = next
	}
}

// Propagate runs every constraint to a fixed point starting from state
// (nil means "root", i.e. the model's initial domains). Returns the
// propagated state, or an error if any constraint finds no remaining
// support.
func (s *Solver) Propagate(state *State) (*State, error) {
	changed := true
	for changed {
		changed = false
		for _, c := range s.model.constraints {
			next, err := c.Propagate(s, state)
			if err != nil {
				return nil, err
			}
			if next != state {
				state = next
				changed = true
			}
		}
	}
	return state, nil
}

// IsComplete reports whether every variable is bound in state.
func (s *Solver) IsComplete(state *State) bool {
	for _, v := range s.model.vars {
		if !s.GetDomain(state, v.ID()).IsSingleton() {
			return false
		}
	}
	return true
}

// ExtractSolution returns the committed value of every variable, in model
// order. Behavior is undefined unless IsComplete(state).
func (s *Solver) ExtractSolution(state *State) []int {
	out := make([]int, len(s.model.vars))
	for i, v := range s.model.vars {
		out[i] = s.GetDomain(state, v.ID()).SingletonValue()
	}
	return out
}

// FirstUnbound returns the id of the first (in model order) variable that
// is not yet a singleton in state, or (-1, false) if none remain.
func (s *Solver) FirstUnbound(state *State) (VarID, bool) {
	for _, v := range s.model.vars {
		if !s.GetDomain(state, v.ID()).IsSingleton() {
			return v.ID(), true
		}
	}
	return -1, false
}
