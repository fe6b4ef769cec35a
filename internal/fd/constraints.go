// Linear constraints over binary variables, adapted from the shape of
// gitrdm/gokanlogic's LinearSum propagator (pkg/minikanren/fd.go,
// rational_linear_sum.go) but narrowed to sum(coeff_i * x_i) {<=,>=,==} rhs
// with x_i in {0,1}: exactly the form every flow-conservation and
// assignment constraint in spec.md §4.3 takes.
package fd

import (
	"fmt"
	"strings"
)

// Op is a linear constraint's comparison operator.
type Op int

const (
	// LE is sum(...) <= rhs.
	LE Op = iota
	// GE is sum(...) >= rhs.
	GE
	// EQ is sum(...) == rhs.
	EQ
)

func (o Op) String() string {
	switch o {
	case LE:
		return "<="
	case GE:
		return ">="
	default:
		return "=="
	}
}

// Term is one coeff*x_i summand of a Linear constraint.
type Term struct {
	Var   VarID
	Coeff int
}

// Linear is a bound-consistency propagator for sum(coeff_i * x_i) op rhs
// over binary variables. It forces a variable to 0 or 1 whenever only one
// of its two values keeps the remaining sum reachable, and reports
// inconsistency when neither does.
type Linear struct {
	terms []Term
	op    Op
	rhs   int
	label string
}

// NewLinear builds a Linear constraint. label is used only for diagnostics
// (String()).
func NewLinear(terms []Term, op Op, rhs int, label string) *Linear {
	cp := make([]Term, len(terms))
	copy(cp, terms)
	return &Linear{terms: cp, op: op, rhs: rhs, label: label}
}

// Vars implements Constraint.
func (c *Linear) Vars() []VarID {
	ids := make([]VarID, len(c.terms))
	for i, t := range c.terms {
		ids[i] = t.Var
	}
	return ids
}

func (c *Linear) String() string {
	parts := make([]string, len(c.terms))
	for i, t := range c.terms {
		parts[i] = fmt.Sprintf("%+d*x%d", t.Coeff, t.Var)
	}
	return fmt.Sprintf("%s[%s %s %d]", c.label, strings.Join(parts, " "), c.op, c.rhs)
}

// reachable reports whether some value in [lo, hi] satisfies op against rhs.
func reachable(op Op, lo, hi, rhs int) bool {
	switch op {
	case LE:
		return lo <= rhs
	case GE:
		return hi >= rhs
	default: // EQ
		return lo <= rhs && rhs <= hi
	}
}

// Propagate implements Constraint.
func (c *Linear) Propagate(s *Solver, state *State) (*State, error) {
	type free struct {
		id    VarID
		coeff int
	}
	forced := 0
	var frees []free
	for _, t := range c.terms {
		d := s.GetDomain(state, t.Var)
		if d.Count() == 0 {
			return nil, ErrInconsistent(fmt.Sprintf("%s: empty domain for x%d", c.label, t.Var))
		}
		if d.IsSingleton() {
			forced += t.Coeff * d.SingletonValue()
			continue
		}
		frees = append(frees, free{t.Var, t.Coeff})
	}

	minPossible, maxPossible := forced, forced
	for _, f := range frees {
		if f.coeff > 0 {
			maxPossible += f.coeff
		} else {
			minPossible += f.coeff
		}
	}
	if !reachable(c.op, minPossible, maxPossible, c.rhs) {
		return nil, ErrInconsistent(fmt.Sprintf("%s: unsatisfiable (range [%d,%d])", c.label, minPossible, maxPossible))
	}

	for _, f := range frees {
		minContrib, maxContrib := 0, 0
		if f.coeff < 0 {
			minContrib = f.coeff
		} else {
			maxContrib = f.coeff
		}
		otherMin := minPossible - minContrib
		otherMax := maxPossible - maxContrib

		can0 := reachable(c.op, otherMin, otherMax, c.rhs)
		can1 := reachable(c.op, otherMin+f.coeff, otherMax+f.coeff, c.rhs)

		switch {
		case !can0 && !can1:
			return nil, ErrInconsistent(fmt.Sprintf("%s: no support for x%d", c.label, f.id))
		case !can0:
			state = s.SetDomain(state, f.id, Fix(1))
			return state, nil
		case !can1:
			state = s.SetDomain(state, f.id, Fix(0))
			return state, nil
		}
	}
	return state, nil
}

// AtMostOne is sugar for Linear{vars summed <= 1}.
func AtMostOne(vars []VarID, label string) *Linear {
	terms := make([]Term, len(vars))
	for i, v := range vars {
		terms[i] = Term{v, 1}
	}
	return NewLinear(terms, LE, 1, label)
}

// AtLeastOne is sugar for Linear{vars summed >= 1}.
func AtLeastOne(vars []VarID, label string) *Linear {
	terms := make([]Term, len(vars))
	for i, v := range vars {
		terms[i] = Term{v, 1}
	}
	return NewLinear(terms, GE, 1, label)
}
