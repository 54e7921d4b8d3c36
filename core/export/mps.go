package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/FocuswithJustin/mpexport/core/errors"
	"github.com/FocuswithJustin/mpexport/core/mpmodel"
)

// mpsNameFieldSize is the widest name the fixed MPS format can carry.
const mpsNameFieldSize = 8

// intMarkerFormat renders the pseudo-rows bracketing the integer columns.
const intMarkerFormat = "  %-10s%-36s%-10s\n"

// canUseFixedFormat reports whether every display name fits the fixed
// format's name fields.
func canUseFixedFormat(m *mpmodel.Model, names *nameTable) bool {
	for i := range m.Variables {
		if len(names.variable(i)) > mpsNameFieldSize {
			return false
		}
	}
	for i := range m.Constraints {
		if len(names.constraint(i)) > mpsNameFieldSize {
			return false
		}
	}
	return true
}

// columnEntry is one non-zero coefficient seen from the variable side.
type columnEntry struct {
	constraint int
	coef       float64
}

// mpsWriter holds the state of one MPS export call. The column counter
// implements the two-pairs-per-line packing and is reset at the start of
// every section that packs terms.
type mpsWriter struct {
	model  *mpmodel.Model
	opts   Options
	names  *nameTable
	stats  mpmodel.Stats
	fixed  bool
	out    strings.Builder
	column int
}

func (w *mpsWriter) write() (string, error) {
	appendComments(&w.out, "*", w.model, w.stats, w.fixed, w.opts.ShowUnusedVariables)
	fmt.Fprintf(&w.out, "%-14s%s\n", "NAME", w.model.Name)
	if err := w.writeRows(); err != nil {
		return "", err
	}
	transpose, err := w.transpose()
	if err != nil {
		return "", err
	}
	w.writeColumns(transpose)
	w.writeRHS()
	w.writeRanges()
	w.writeBounds()
	w.out.WriteString("ENDATA\n")
	return w.out.String(), nil
}

func (w *mpsWriter) writeRows() error {
	var section strings.Builder
	w.lineHeaderWithNewLine(&section, "N", "COST")
	for ci := range w.model.Constraints {
		c := &w.model.Constraints[ci]
		name := w.names.constraint(ci)
		switch {
		case c.Lower == c.Upper:
			w.lineHeaderWithNewLine(&section, "E", name)
		case math.IsInf(c.Lower, -1):
			if math.IsInf(c.Upper, 1) {
				return errors.NewRow(ci, name)
			}
			w.lineHeaderWithNewLine(&section, "L", name)
		default:
			w.lineHeaderWithNewLine(&section, "G", name)
		}
	}
	w.out.WriteString("ROWS\n")
	w.out.WriteString(section.String())
	return nil
}

// transpose regroups the coefficients by variable, since COLUMNS needs each
// variable's entries to be contiguous.
func (w *mpsWriter) transpose() ([][]columnEntry, error) {
	cols := make([][]columnEntry, len(w.model.Variables))
	for ci := range w.model.Constraints {
		for ti, t := range w.model.Constraints[ci].Terms {
			if t.Var < 0 || t.Var >= len(w.model.Variables) {
				return nil, errors.NewIndex(ci, ti, t.Var, len(w.model.Variables))
			}
			if t.Coef != 0 {
				cols[t.Var] = append(cols[t.Var], columnEntry{constraint: ci, coef: t.Coef})
			}
		}
	}
	return cols, nil
}

func (w *mpsWriter) writeColumns(transpose [][]columnEntry) {
	var section strings.Builder
	var integer strings.Builder
	w.appendColumns(&integer, transpose, true)
	if integer.Len() > 0 {
		fmt.Fprintf(&section, intMarkerFormat, "INTSTART", "'MARKER'", "'INTORG'")
		section.WriteString(integer.String())
		fmt.Fprintf(&section, intMarkerFormat, "INTEND", "'MARKER'", "'INTEND'")
	}
	w.appendColumns(&section, transpose, false)
	if section.Len() > 0 {
		w.out.WriteString("COLUMNS\n")
		w.out.WriteString(section.String())
	}
}

// appendColumns writes the column entries of every variable matching the
// requested integrality. Each variable starts on a fresh line and lists its
// objective coefficient under the COST pseudo-row before its constraint
// coefficients.
func (w *mpsWriter) appendColumns(out *strings.Builder, transpose [][]columnEntry, integer bool) {
	w.column = 0
	for vi := range w.model.Variables {
		v := &w.model.Variables[vi]
		if v.Integer != integer {
			continue
		}
		name := w.names.variable(vi)
		w.column = 0
		if v.Objective != 0 {
			w.termWithContext(out, name, "COST", v.Objective)
		}
		for _, entry := range transpose[vi] {
			w.termWithContext(out, name, w.names.constraint(entry.constraint), entry.coef)
		}
		w.newLineIfTwoColumns(out)
	}
}

func (w *mpsWriter) writeRHS() {
	w.column = 0
	var section strings.Builder
	for ci := range w.model.Constraints {
		c := &w.model.Constraints[ci]
		name := w.names.constraint(ci)
		if !math.IsInf(c.Lower, -1) {
			w.termWithContext(&section, "RHS", name, c.Lower)
		} else if !math.IsInf(c.Upper, 1) {
			w.termWithContext(&section, "RHS", name, c.Upper)
		}
	}
	w.newLineIfTwoColumns(&section)
	if section.Len() > 0 {
		w.out.WriteString("RHS\n")
		w.out.WriteString(section.String())
	}
}

func (w *mpsWriter) writeRanges() {
	w.column = 0
	var section strings.Builder
	for ci := range w.model.Constraints {
		c := &w.model.Constraints[ci]
		r := math.Abs(c.Upper - c.Lower)
		if r != 0 && !math.IsInf(r, 1) && !math.IsNaN(r) {
			w.termWithContext(&section, "RANGE", w.names.constraint(ci), r)
		}
	}
	w.newLineIfTwoColumns(&section)
	if section.Len() > 0 {
		w.out.WriteString("RANGES\n")
		w.out.WriteString(section.String())
	}
}

func (w *mpsWriter) writeBounds() {
	w.column = 0
	var section strings.Builder
	for vi := range w.model.Variables {
		v := &w.model.Variables[vi]
		name := w.names.variable(vi)
		if v.Integer {
			if v.IsBoolean() {
				w.lineHeader(&section, "BV", "BOUND")
				fmt.Fprintf(&section, "  %s\n", name)
			} else {
				if v.Lower != 0 {
					w.bound(&section, "LI", name, v.Lower)
				}
				if !math.IsInf(v.Upper, 1) {
					w.bound(&section, "UI", name, v.Upper)
				}
			}
			continue
		}
		switch {
		case math.IsInf(v.Lower, -1) && math.IsInf(v.Upper, 1):
			w.lineHeader(&section, "FR", "BOUND")
			fmt.Fprintf(&section, "  %s\n", name)
		case v.Lower == v.Upper:
			w.bound(&section, "FX", name, v.Lower)
		default:
			if v.Lower != 0 {
				w.bound(&section, "LO", name, v.Lower)
			} else if math.IsInf(v.Upper, 1) {
				w.lineHeader(&section, "PL", "BOUND")
				fmt.Fprintf(&section, "  %s\n", name)
			}
			if !math.IsInf(v.Upper, 1) {
				w.bound(&section, "UP", name, v.Upper)
			}
		}
	}
	if section.Len() > 0 {
		w.out.WriteString("BOUNDS\n")
		w.out.WriteString(section.String())
	}
}

// lineHeader writes a row-type id and a name in the widths of the active
// format variant.
func (w *mpsWriter) lineHeader(out *strings.Builder, id, name string) {
	if w.fixed {
		fmt.Fprintf(out, " %-2s %-8s", id, name)
	} else {
		fmt.Fprintf(out, " %-2s  %-16s", id, name)
	}
}

func (w *mpsWriter) lineHeaderWithNewLine(out *strings.Builder, id, name string) {
	w.lineHeader(out, id, name)
	out.WriteByte('\n')
}

// pair writes one name/value pair. Fixed format squeezes the value into
// twelve characters by lowering the precision as far as needed.
func (w *mpsWriter) pair(out *strings.Builder, name string, value float64) {
	if w.fixed {
		fmt.Fprintf(out, "  %-8s  %12s ", name, fitFixedValue(value))
	} else {
		fmt.Fprintf(out, "  %-16s  %21.16G ", name, value)
	}
}

// termWithContext writes a pair, opening a new line with the section's head
// name when the previous line is complete.
func (w *mpsWriter) termWithContext(out *strings.Builder, headName, name string, value float64) {
	if w.column == 0 {
		w.lineHeader(out, "", headName)
	}
	w.pair(out, name, value)
	w.newLineIfTwoColumns(out)
}

// newLineIfTwoColumns advances the column counter and terminates the line
// once it holds two pairs.
func (w *mpsWriter) newLineIfTwoColumns(out *strings.Builder) {
	w.column++
	if w.column == 2 {
		out.WriteByte('\n')
		w.column = 0
	}
}

// bound writes one bound line carrying a value.
func (w *mpsWriter) bound(out *strings.Builder, boundType, name string, value float64) {
	w.lineHeader(out, boundType, "BOUND")
	w.pair(out, name, value)
	out.WriteByte('\n')
}
