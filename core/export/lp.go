package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/FocuswithJustin/mpexport/core/errors"
	"github.com/FocuswithJustin/mpexport/core/mpmodel"
)

// lpFormattingBudget reserves room on a constraint line for the name prefix
// and the relational suffix before any term is placed. Overestimated.
const lpFormattingBudget = 10

// lpWriter holds the state of one LP export call.
type lpWriter struct {
	model *mpmodel.Model
	opts  Options
	names *nameTable
	stats mpmodel.Stats
	out   strings.Builder
	show  []bool
}

func (w *lpWriter) write() (string, error) {
	w.show = make([]bool, len(w.model.Variables))
	if w.opts.ShowUnusedVariables {
		for i := range w.show {
			w.show[i] = true
		}
	}

	appendComments(&w.out, "\\", w.model, w.stats, false, w.opts.ShowUnusedVariables)
	w.writeObjective()
	if err := w.writeConstraints(); err != nil {
		return "", err
	}
	w.writeBounds()
	w.writeIntegerSections()
	w.out.WriteString("End\n")
	return w.out.String(), nil
}

// lpTerm renders one signed coefficient with its variable name.
func lpTerm(coef float64, name string) string {
	return fmt.Sprintf("%+.16G %s ", coef, name)
}

func (w *lpWriter) writeObjective() {
	if w.model.Maximize {
		w.out.WriteString("Maximize\n")
	} else {
		w.out.WriteString("Minimize\n")
	}
	line := newLineBreaker(w.opts.MaxLineLength)
	line.append(" Obj: ")
	if w.model.Offset != 0 {
		line.append(fmt.Sprintf("%+.16G Constant ", w.model.Offset))
	}
	for i := range w.model.Variables {
		coef := w.model.Variables[i].Objective
		if coef != 0 {
			line.append(lpTerm(coef, w.names.variable(i)))
			w.show[i] = true
		}
	}
	w.out.WriteString(line.output())
	w.out.WriteString("\nSubject to\n")
}

func (w *lpWriter) writeConstraints() error {
	for ci := range w.model.Constraints {
		c := &w.model.Constraints[ci]
		name := w.names.constraint(ci)
		line := newLineBreaker(w.opts.MaxLineLength)
		line.consume(lpFormattingBudget + len(name))
		for ti, t := range c.Terms {
			if t.Var < 0 || t.Var >= len(w.model.Variables) {
				return errors.NewIndex(ci, ti, t.Var, len(w.model.Variables))
			}
			if t.Coef != 0 {
				line.append(lpTerm(t.Coef, w.names.variable(t.Var)))
				w.show[t.Var] = true
			}
		}

		lb, ub := c.Lower, c.Upper
		if lb == ub {
			line.append(fmt.Sprintf(" = %.16G\n", ub))
			w.out.WriteString(" " + name + ": " + line.output())
			continue
		}
		// A constraint unbounded on both sides has no LP rendering and is
		// dropped here; the MPS exporter rejects it instead.
		if !math.IsInf(ub, 1) {
			rhsName := name
			if !math.IsInf(lb, -1) {
				rhsName += "_rhs"
			}
			w.out.WriteString(" " + rhsName + ": " + line.output())
			w.writeRelation(line, fmt.Sprintf(" <= %.16G\n", ub))
		}
		if !math.IsInf(lb, -1) {
			lhsName := name
			if !math.IsInf(ub, 1) {
				lhsName += "_lhs"
			}
			w.out.WriteString(" " + lhsName + ": " + line.output())
			w.writeRelation(line, fmt.Sprintf(" >= %.16G\n", lb))
		}
	}
	return nil
}

// writeRelation appends a relational suffix directly to the output, wrapping
// by hand when it would not fit. The suffix must stay out of the breaker
// because the same term text can back two clauses of a ranged constraint.
func (w *lpWriter) writeRelation(line *lineBreaker, relation string) {
	if !line.willFit(relation) {
		w.out.WriteString("\n ")
	}
	w.out.WriteString(relation)
}

func (w *lpWriter) writeBounds() {
	w.out.WriteString("Bounds\n")
	if w.model.Offset != 0 {
		w.out.WriteString(" 1 <= Constant <= 1\n")
	}
	for i := range w.model.Variables {
		if !w.show[i] {
			continue
		}
		v := &w.model.Variables[i]
		name := w.names.variable(i)
		if v.Integer && isIntegral(v.Lower) && isIntegral(v.Upper) {
			fmt.Fprintf(&w.out, " %.0f <= %s <= %.0f\n", v.Lower, name, v.Upper)
			continue
		}
		if !math.IsInf(v.Lower, -1) {
			fmt.Fprintf(&w.out, " %.16G <= ", v.Lower)
		}
		w.out.WriteString(name)
		if !math.IsInf(v.Upper, 1) {
			fmt.Fprintf(&w.out, " <= %.16G", v.Upper)
		}
		w.out.WriteByte('\n')
	}
}

func (w *lpWriter) writeIntegerSections() {
	var binaries, generals []string
	for i := range w.model.Variables {
		if !w.show[i] {
			continue
		}
		v := &w.model.Variables[i]
		switch {
		case v.IsBoolean():
			binaries = append(binaries, w.names.variable(i))
		case v.Integer:
			generals = append(generals, w.names.variable(i))
		}
	}
	if len(binaries) > 0 {
		w.out.WriteString("Binaries\n")
		for _, name := range binaries {
			fmt.Fprintf(&w.out, " %s\n", name)
		}
	}
	if len(generals) > 0 {
		w.out.WriteString("Generals\n")
		for _, name := range generals {
			fmt.Fprintf(&w.out, " %s\n", name)
		}
	}
}

// isIntegral reports whether f is a finite whole number. Infinite bounds take
// the general rendering path so no infinity is forced through a fixed-point
// verb.
func isIntegral(f float64) bool {
	return !math.IsInf(f, 0) && f == math.Round(f)
}
