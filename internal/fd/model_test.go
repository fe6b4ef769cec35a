package fd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelValidateRejectsUnknownVar(t *testing.T) {
	m := NewModel()
	m.AddVar("x")
	m.AddConstraint(NewLinear([]Term{{VarID(99), 1}}, LE, 1, "bad"))

	assert.Error(t, m.Validate())
}

func TestModelValidateAcceptsWellFormedModel(t *testing.T) {
	m := NewModel()
	x := m.AddVar("x")
	y := m.AddVar("y")
	m.AddConstraint(NewLinear([]Term{{x.ID(), 1}, {y.ID(), 1}}, LE, 1, "ok"))

	require.NoError(t, m.Validate())
}

func TestObjectiveLowerBoundAndValue(t *testing.T) {
	m := NewModel()
	x := m.AddVar("x")
	y := m.AddVar("y")
	m.SetObjectiveCoeff(x, 5)
	m.SetObjectiveCoeff(y, -3)
	m.AddObjectiveConst(10)

	s := NewSolver(m)

	// Unbound: x contributes 0 (coeff>=0 minimized at 0), y contributes -3
	// (coeff<0 minimized at 1), plus the constant.
	assert.Equal(t, 7, m.ObjectiveLowerBound(s, nil))

	state := s.SetDomain(nil, x.ID(), Fix(1))
	state = s.SetDomain(state, y.ID(), Fix(1))
	assert.Equal(t, 12, m.ObjectiveValue(s, state)) // 10 + 5*1 - 3*1
}
