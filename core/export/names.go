package export

import (
	"fmt"
	"strings"

	"github.com/FocuswithJustin/mpexport/core/errors"
	"github.com/FocuswithJustin/mpexport/core/mpmodel"
)

// Naming rules shared by the LP and MPS formats.
const (
	maxNameLength       = 255
	forbiddenNameChars  = " +-*/<>=:\\"
	forbiddenFirstChars = "$.0123456789"
)

// ValidateName reports why name cannot appear in LP or MPS output, or nil if
// it can. Both formats share one rule set so a model exports to either or
// to neither.
func ValidateName(name string) error {
	if name == "" {
		return errors.NewValidation("name", "must not be empty")
	}
	if len(name) > maxNameLength {
		return errors.NewValidation("name",
			fmt.Sprintf("length %d exceeds %d characters", len(name), maxNameLength))
	}
	if i := strings.IndexAny(name, forbiddenNameChars); i >= 0 {
		return errors.NewValidation("name",
			fmt.Sprintf("contains forbidden character %q", name[i]))
	}
	if strings.IndexByte(forbiddenFirstChars, name[0]) >= 0 {
		return errors.NewValidation("name",
			fmt.Sprintf("first character %q must not be one of %q", name[0], forbiddenFirstChars))
	}
	return nil
}

// CheckNameValidity reports whether name is usable in LP and MPS output.
// Usable by model-authoring tools independent of any Exporter.
func CheckNameValidity(name string) bool {
	return ValidateName(name) == nil
}

// CheckModelNames sweeps every stored entity name in the model and returns
// one error per invalid name. Unnamed entities pass: their display names are
// derived and always valid.
func CheckModelNames(m *mpmodel.Model) []error {
	var errs []error
	for i := range m.Variables {
		name := m.Variables[i].Name
		if name == "" {
			continue
		}
		if err := ValidateName(name); err != nil {
			errs = append(errs, errors.NewName(errors.KindVariable, i, name, err.Error()))
		}
	}
	for i := range m.Constraints {
		name := m.Constraints[i].Name
		if name == "" {
			continue
		}
		if err := ValidateName(name); err != nil {
			errs = append(errs, errors.NewName(errors.KindConstraint, i, name, err.Error()))
		}
	}
	return errs
}

// nameTable resolves the display name of every entity for one export call.
// With obfuscation, or for unnamed entities, the display name is the entity
// kind letter followed by the zero-padded index; the padding width covers
// the largest index in the model.
type nameTable struct {
	m          *mpmodel.Model
	obfuscate  bool
	varFormat  string
	consFormat string
}

func newNameTable(m *mpmodel.Model, obfuscate bool, stats mpmodel.Stats) *nameTable {
	return &nameTable{
		m:          m,
		obfuscate:  obfuscate,
		varFormat:  fmt.Sprintf("V%%0%dd", stats.VariableDigits),
		consFormat: fmt.Sprintf("C%%0%dd", stats.ConstraintDigits),
	}
}

func (t *nameTable) variable(i int) string {
	if t.obfuscate || t.m.Variables[i].Name == "" {
		return fmt.Sprintf(t.varFormat, i)
	}
	return t.m.Variables[i].Name
}

func (t *nameTable) constraint(i int) string {
	if t.obfuscate || t.m.Constraints[i].Name == "" {
		return fmt.Sprintf(t.consFormat, i)
	}
	return t.m.Constraints[i].Name
}
