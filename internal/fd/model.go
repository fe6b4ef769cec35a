package fd

import "fmt"

// Constraint propagates domain reductions implied by already-committed
// variable values. Propagate returns the solver state after applying any
// forced reductions, or an error if no assignment of the constraint's
// variables can satisfy it given state.
type Constraint interface {
	// Vars returns the variable ids this constraint reads/writes.
	Vars() []VarID
	// Propagate tightens domains in state, returning the new state (which
	// may be state itself if nothing changed) or an error on inconsistency.
	Propagate(s *Solver, state *State) (*State, error)
	// String describes the constraint for diagnostics.
	String() string
}

// Model is the immutable problem definition: variables with their initial
// domains plus the constraints over them. A Model is built once by the
// Model Assembler and handed to a Solver; it is read-only for the lifetime
// of a solve.
type Model struct {
	vars        []*Var
	constraints []Constraint
	// objective maps a variable id to its linear objective coefficient.
	// The objective value of a solution is the sum of coeff*value over
	// every bound variable, plus objectiveConst.
	objective      map[VarID]int
	objectiveConst int
}

// NewModel creates an empty model.
func NewModel() *Model {
	return &Model{objective: make(map[VarID]int)}
}

// AddVar registers a new binary variable and returns it.
func (m *Model) AddVar(name string) *Var {
	v := NewVar(VarID(len(m.vars)), name)
	m.vars = append(m.vars, v)
	return v
}

// AddConstraint registers a constraint over already-added variables.
func (m *Model) AddConstraint(c Constraint) {
	m.constraints = append(m.constraints, c)
}

// SetObjectiveCoeff adds (accumulating) coeff to v's objective contribution.
func (m *Model) SetObjectiveCoeff(v *Var, coeff int) {
	m.objective[v.ID()] += coeff
}

// AddObjectiveConst adds a constant term to the objective (e.g. a fixed
// carbon-reduction offset).
func (m *Model) AddObjectiveConst(c int) { m.objectiveConst += c }

// Vars returns every variable in model order (the deterministic order they
// were added in, which the Model Assembler controls per spec §5 ordering
// guarantees).
func (m *Model) Vars() []*Var { return m.vars }

// Constraints returns every constraint in the order they were added.
func (m *Model) Constraints() []Constraint { return m.constraints }

// Validate checks the model is well-formed: every constraint's variables
// must exist in the model.
func (m *Model) Validate() error {
	n := len(m.vars)
	for _, c := range m.constraints {
		for _, id := range c.Vars() {
			if int(id) < 0 || int(id) >= n {
				return fmt.Errorf("fd: constraint %s references unknown var %d", c, id)
			}
		}
	}
	return nil
}

// ObjectiveLowerBound returns a cheap admissible lower bound on the
// objective value reachable from state, assuming minimize: every unbound
// variable contributes min(0, coeff) and every bound variable contributes
// coeff*value.
func (m *Model) ObjectiveLowerBound(s *Solver, state *State) int {
	bound := m.objectiveConst
	for _, v := range m.vars {
		coeff := m.objective[v.ID()]
		d := s.GetDomain(state, v.ID())
		switch {
		case d.IsSingleton():
			bound += coeff * d.SingletonValue()
		case coeff < 0:
			bound += coeff // value 1 minimizes a negative coefficient
		default:
			// coeff >= 0: value 0 minimizes, contributes 0
		}
	}
	return bound
}

// ObjectiveValue computes the exact objective for a fully bound state.
func (m *Model) ObjectiveValue(s *Solver, state *State) int {
	total := m.objectiveConst
	for _, v := range m.vars {
		d := s.GetDomain(state, v.ID())
		total += m.objective[v.ID()] * d.SingletonValue()
	}
	return total
}
