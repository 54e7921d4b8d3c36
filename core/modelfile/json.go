package modelfile

import (
	"encoding/json"

	"github.com/FocuswithJustin/mpexport/core/errors"
	"github.com/FocuswithJustin/mpexport/core/mpmodel"
)

// ReadJSON parses a JSON model snapshot. Bound fields accept quoted
// "inf"/"-inf" spellings and default to an unbounded domain when absent.
func ReadJSON(data []byte) (*mpmodel.Model, error) {
	var m mpmodel.Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.NewParse(formatJSON, "", err.Error())
	}
	return &m, nil
}

// WriteJSON renders m as an indented JSON snapshot.
func WriteJSON(m *mpmodel.Model) ([]byte, error) {
	out, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}
