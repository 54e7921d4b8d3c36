// Package mpmodel defines the in-memory snapshot of a linear or mixed-integer
// optimization model. The snapshot is the single input of the exporters in
// core/export; model construction and solving live outside this repository.
package mpmodel

import "math"

// Model is the top-level container for one optimization model snapshot.
type Model struct {
	// Name is the model name emitted in format headers.
	Name string `json:"name,omitempty"`

	// Maximize selects the objective direction. False means minimize.
	Maximize bool `json:"maximize,omitempty"`

	// Offset is the constant term of the objective.
	Offset float64 `json:"offset,omitempty"`

	// Variables holds the decision variables. Slice position is the
	// variable's identity: constraint terms refer to it by index.
	Variables []Variable `json:"variables"`

	// Constraints holds the linear constraints in emission order.
	Constraints []Constraint `json:"constraints,omitempty"`
}

// Variable is a single decision variable.
type Variable struct {
	// Name is the variable name. Empty means unnamed; exporters derive one
	// from the variable's index.
	Name string `json:"name,omitempty"`

	// Lower is the domain lower bound. Use NegInf for no bound.
	Lower float64 `json:"lower"`

	// Upper is the domain upper bound. Use Inf for no bound.
	Upper float64 `json:"upper"`

	// Integer restricts the variable to integral values.
	Integer bool `json:"integer,omitempty"`

	// Objective is this variable's coefficient in the objective function.
	Objective float64 `json:"objective,omitempty"`
}

// Constraint is a linear constraint Lower <= sum(terms) <= Upper.
type Constraint struct {
	// Name is the constraint name. Empty means unnamed; exporters derive
	// one from the constraint's index.
	Name string `json:"name,omitempty"`

	// Lower is the constraint lower bound. Use NegInf for no bound.
	Lower float64 `json:"lower"`

	// Upper is the constraint upper bound. Use Inf for no bound.
	Upper float64 `json:"upper"`

	// Terms is the sparse left-hand side. Order is preserved by the
	// exporters; duplicate variable indices are kept as distinct terms.
	Terms []Term `json:"terms,omitempty"`
}

// Term is one coefficient of a constraint's left-hand side.
type Term struct {
	// Var is the index of the variable in Model.Variables.
	Var int `json:"var"`

	// Coef is the coefficient.
	Coef float64 `json:"coef"`
}

// Inf returns positive infinity, the conventional "no upper bound" value.
func Inf() float64 {
	return math.Inf(1)
}

// NegInf returns negative infinity, the conventional "no lower bound" value.
func NegInf() float64 {
	return math.Inf(-1)
}

// IsBoolean reports whether the variable is effectively binary: integral with
// a domain of exactly {0, 1} after rounding the bounds inward.
func (v *Variable) IsBoolean() bool {
	return v.Integer && math.Ceil(v.Lower) == 0 && math.Floor(v.Upper) == 1
}

// NumVariables returns the number of variables in the model.
func (m *Model) NumVariables() int {
	return len(m.Variables)
}

// NumConstraints returns the number of constraints in the model.
func (m *Model) NumConstraints() int {
	return len(m.Constraints)
}

// AddVariable appends a continuous variable and returns its index.
func (m *Model) AddVariable(name string, lower, upper float64) int {
	m.Variables = append(m.Variables, Variable{Name: name, Lower: lower, Upper: upper})
	return len(m.Variables) - 1
}

// AddIntegerVariable appends an integer variable and returns its index.
func (m *Model) AddIntegerVariable(name string, lower, upper float64) int {
	m.Variables = append(m.Variables, Variable{Name: name, Lower: lower, Upper: upper, Integer: true})
	return len(m.Variables) - 1
}

// AddBinaryVariable appends a {0, 1} integer variable and returns its index.
func (m *Model) AddBinaryVariable(name string) int {
	return m.AddIntegerVariable(name, 0, 1)
}

// AddConstraint appends a constraint lower <= terms <= upper and returns its index.
func (m *Model) AddConstraint(name string, lower, upper float64, terms ...Term) int {
	m.Constraints = append(m.Constraints, Constraint{Name: name, Lower: lower, Upper: upper, Terms: terms})
	return len(m.Constraints) - 1
}

// AddEqRow appends an equality constraint terms == rhs.
func (m *Model) AddEqRow(name string, rhs float64, terms ...Term) int {
	return m.AddConstraint(name, rhs, rhs, terms...)
}

// AddLeRow appends an upper-bounded constraint terms <= rhs.
func (m *Model) AddLeRow(name string, rhs float64, terms ...Term) int {
	return m.AddConstraint(name, NegInf(), rhs, terms...)
}

// AddGeRow appends a lower-bounded constraint terms >= rhs.
func (m *Model) AddGeRow(name string, rhs float64, terms ...Term) int {
	return m.AddConstraint(name, rhs, Inf(), terms...)
}
