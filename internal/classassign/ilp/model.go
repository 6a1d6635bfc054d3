// Package ilp is the binary-integer-program abstraction consumed by the
// class-assignment core (spec.md §4.6, §6): a model of binary variables,
// linear "at most" constraints, and a linear maximization objective,
// solved by an external LP/ILP solver whose contract this package fixes.
package ilp

// Model is a 0/1 integer program: every variable is binary, every
// constraint is of the form Σ coeff·var ≤ bound, and the objective is
// maximized.
type Model struct {
	VarNames    []string
	Objective   []float64
	Constraints []Constraint
}

// Constraint is one linear "at most" row, keyed by variable index.
type Constraint struct {
	Label  string
	Coeffs map[int]float64
	Bound  float64
}

// NewModel returns an empty model ready for AddVariable calls.
func NewModel() *Model {
	return &Model{}
}

// AddVariable registers a new binary variable and returns its index.
func (m *Model) AddVariable(name string) int {
	m.VarNames = append(m.VarNames, name)
	m.Objective = append(m.Objective, 0)
	return len(m.VarNames) - 1
}

// AddConstraintLE adds Σ coeffs[i]·x_i ≤ bound.
func (m *Model) AddConstraintLE(label string, coeffs map[int]float64, bound float64) {
	m.Constraints = append(m.Constraints, Constraint{Label: label, Coeffs: coeffs, Bound: bound})
}

// SetObjectiveCoeff sets the objective coefficient of varIdx.
func (m *Model) SetObjectiveCoeff(varIdx int, coeff float64) {
	m.Objective[varIdx] += coeff
}

// NumVars returns the number of variables in the model.
func (m *Model) NumVars() int {
	return len(m.VarNames)
}
