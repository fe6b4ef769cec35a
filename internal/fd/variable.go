package fd

// VarID uniquely identifies a binary decision variable within a Model.
type VarID int

// Var is a binary decision variable with an initial domain and an optional
// name for diagnostics (e.g. the triple it was materialized from).
type Var struct {
	id      VarID
	name    string
	initial Domain
}

// NewVar creates an unbound (domain {0,1}) variable.
func NewVar(id VarID, name string) *Var {
	return &Var{id: id, name: name, initial: Both}
}

// ID returns the variable's identity within its model.
func (v *Var) ID() VarID { return v.id }

// Name returns the variable's diagnostic label.
func (v *Var) Name() string { return v.name }

func (v *Var) String() string { return v.name }
