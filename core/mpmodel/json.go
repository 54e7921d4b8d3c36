package mpmodel

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Plain JSON numbers cannot carry infinite bounds, so variables and
// constraints marshal non-finite bounds as quoted strings ("+Inf", "-Inf")
// and accept either form on the way in. A bound absent from the input
// defaults to an unbounded side.

type variableJSON struct {
	Name      string          `json:"name,omitempty"`
	Lower     json.RawMessage `json:"lower,omitempty"`
	Upper     json.RawMessage `json:"upper,omitempty"`
	Integer   bool            `json:"integer,omitempty"`
	Objective float64         `json:"objective,omitempty"`
}

type constraintJSON struct {
	Name  string          `json:"name,omitempty"`
	Lower json.RawMessage `json:"lower,omitempty"`
	Upper json.RawMessage `json:"upper,omitempty"`
	Terms []Term          `json:"terms,omitempty"`
}

func boundValue(f float64) json.RawMessage {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return json.RawMessage(strconv.Quote(strconv.FormatFloat(f, 'g', -1, 64)))
	}
	return json.RawMessage(strconv.AppendFloat(nil, f, 'g', -1, 64))
}

func parseBound(raw json.RawMessage, unbounded float64) (float64, error) {
	if len(raw) == 0 {
		return unbounded, nil
	}
	s := string(raw)
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	return strconv.ParseFloat(s, 64)
}

// MarshalJSON implements json.Marshaler.
func (v Variable) MarshalJSON() ([]byte, error) {
	return json.Marshal(variableJSON{
		Name:      v.Name,
		Lower:     boundValue(v.Lower),
		Upper:     boundValue(v.Upper),
		Integer:   v.Integer,
		Objective: v.Objective,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Variable) UnmarshalJSON(data []byte) error {
	var raw variableJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	lower, err := parseBound(raw.Lower, math.Inf(-1))
	if err != nil {
		return fmt.Errorf("variable %q: invalid lower bound %s: %w", raw.Name, raw.Lower, err)
	}
	upper, err := parseBound(raw.Upper, math.Inf(1))
	if err != nil {
		return fmt.Errorf("variable %q: invalid upper bound %s: %w", raw.Name, raw.Upper, err)
	}
	*v = Variable{
		Name:      raw.Name,
		Lower:     lower,
		Upper:     upper,
		Integer:   raw.Integer,
		Objective: raw.Objective,
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (c Constraint) MarshalJSON() ([]byte, error) {
	return json.Marshal(constraintJSON{
		Name:  c.Name,
		Lower: boundValue(c.Lower),
		Upper: boundValue(c.Upper),
		Terms: c.Terms,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Constraint) UnmarshalJSON(data []byte) error {
	var raw constraintJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	lower, err := parseBound(raw.Lower, math.Inf(-1))
	if err != nil {
		return fmt.Errorf("constraint %q: invalid lower bound %s: %w", raw.Name, raw.Lower, err)
	}
	upper, err := parseBound(raw.Upper, math.Inf(1))
	if err != nil {
		return fmt.Errorf("constraint %q: invalid upper bound %s: %w", raw.Name, raw.Upper, err)
	}
	*c = Constraint{
		Name:  raw.Name,
		Lower: lower,
		Upper: upper,
		Terms: raw.Terms,
	}
	return nil
}
