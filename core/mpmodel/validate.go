package mpmodel

import (
	"errors"
	"fmt"
	"math"
)

// validateVariableFn is injectable for testing error type handling.
var validateVariableFn = ValidateVariable

// validateConstraintFn is injectable for testing error type handling.
var validateConstraintFn = ValidateConstraint

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// newValidationError creates a new ValidationError.
func newValidationError(path, message string) error {
	return &ValidationError{Path: path, Message: message}
}

// ValidateModel validates a Model and returns all validation errors.
func ValidateModel(m *Model) []error {
	var errs []error

	// Validate variables
	for i := range m.Variables {
		vPath := fmt.Sprintf("model.variables[%d]", i)
		vErrs := validateVariableFn(&m.Variables[i])
		for _, err := range vErrs {
			var ve *ValidationError
			if errors.As(err, &ve) {
				errs = append(errs, newValidationError(
					fmt.Sprintf("%s.%s", vPath, ve.Path), ve.Message))
			} else {
				errs = append(errs, newValidationError(vPath, err.Error()))
			}
		}
	}

	// Validate constraints
	for i := range m.Constraints {
		cPath := fmt.Sprintf("model.constraints[%d]", i)
		cErrs := validateConstraintFn(&m.Constraints[i])
		for _, err := range cErrs {
			var ve *ValidationError
			if errors.As(err, &ve) {
				errs = append(errs, newValidationError(
					fmt.Sprintf("%s.%s", cPath, ve.Path), ve.Message))
			} else {
				errs = append(errs, newValidationError(cPath, err.Error()))
			}
		}

		// Term indices can only be range-checked with the model in hand.
		for j, t := range m.Constraints[i].Terms {
			if t.Var >= len(m.Variables) {
				errs = append(errs, newValidationError(
					fmt.Sprintf("%s.terms[%d]", cPath, j),
					fmt.Sprintf("variable index %d out of range, model has %d variables",
						t.Var, len(m.Variables))))
			}
		}
	}

	return errs
}

// ValidateVariable validates a Variable and returns all validation errors.
func ValidateVariable(v *Variable) []error {
	var errs []error

	if math.IsNaN(v.Lower) {
		errs = append(errs, newValidationError("variable.lower", "Lower must not be NaN"))
	}

	if math.IsNaN(v.Upper) {
		errs = append(errs, newValidationError("variable.upper", "Upper must not be NaN"))
	}

	if !math.IsNaN(v.Lower) && !math.IsNaN(v.Upper) && v.Lower > v.Upper {
		errs = append(errs, newValidationError("variable",
			fmt.Sprintf("Lower %g cannot exceed Upper %g", v.Lower, v.Upper)))
	}

	if math.IsNaN(v.Objective) || math.IsInf(v.Objective, 0) {
		errs = append(errs, newValidationError("variable.objective",
			"Objective must be finite"))
	}

	return errs
}

// ValidateConstraint validates a Constraint and returns all validation errors.
func ValidateConstraint(c *Constraint) []error {
	var errs []error

	if math.IsNaN(c.Lower) {
		errs = append(errs, newValidationError("constraint.lower", "Lower must not be NaN"))
	}

	if math.IsNaN(c.Upper) {
		errs = append(errs, newValidationError("constraint.upper", "Upper must not be NaN"))
	}

	if !math.IsNaN(c.Lower) && !math.IsNaN(c.Upper) && c.Lower > c.Upper {
		errs = append(errs, newValidationError("constraint",
			fmt.Sprintf("Lower %g cannot exceed Upper %g", c.Lower, c.Upper)))
	}

	for j, t := range c.Terms {
		tPath := fmt.Sprintf("terms[%d]", j)
		if t.Var < 0 {
			errs = append(errs, newValidationError(tPath, "Var cannot be negative"))
		}
		if math.IsNaN(t.Coef) || math.IsInf(t.Coef, 0) {
			errs = append(errs, newValidationError(tPath, "Coef must be finite"))
		}
	}

	return errs
}

// Validate validates the entire model and returns all validation errors.
// This is a convenience function that calls ValidateModel.
func Validate(m *Model) []error {
	return ValidateModel(m)
}

// IsValid returns true if the model has no validation errors.
func IsValid(m *Model) bool {
	return len(Validate(m)) == 0
}
