package modelfile

import (
	"math"
	"strings"
	"testing"

	"github.com/FocuswithJustin/mpexport/core/errors"
	"github.com/FocuswithJustin/mpexport/core/mpmodel"
)

const dietDef = `# toy diet plan
model diet
maximize
offset 3

var take int bounds 0 1
var qty obj 1 int bounds 0 10
var amt obj 0.5 bounds 1.5 inf
var spare bounds -inf 4

row eq = 4 term take 1 term qty 1
row r range 1 8 term amt 1
row ge >= 2 term qty 1
row band >= 1 <= 6 term amt 2 term qty -1
`

func TestParseDefDocument(t *testing.T) {
	m, err := ParseDef([]byte(dietDef))
	if err != nil {
		t.Fatalf("ParseDef failed: %v", err)
	}

	if m.Name != "diet" || !m.Maximize || m.Offset != 3 {
		t.Errorf("header fields: got name=%q maximize=%v offset=%g", m.Name, m.Maximize, m.Offset)
	}
	if len(m.Variables) != 4 || len(m.Constraints) != 4 {
		t.Fatalf("entity counts: %d variables, %d constraints", len(m.Variables), len(m.Constraints))
	}

	take := m.Variables[0]
	if !take.Integer || take.Lower != 0 || take.Upper != 1 || take.Objective != 0 {
		t.Errorf("take = %+v, want integer in [0, 1] with no objective", take)
	}
	qty := m.Variables[1]
	if !qty.Integer || qty.Objective != 1 || qty.Upper != 10 {
		t.Errorf("qty = %+v, want integer in [0, 10] with objective 1", qty)
	}
	amt := m.Variables[2]
	if amt.Integer || amt.Objective != 0.5 || amt.Lower != 1.5 || !math.IsInf(amt.Upper, 1) {
		t.Errorf("amt = %+v, want continuous in [1.5, +Inf) with objective 0.5", amt)
	}
	spare := m.Variables[3]
	if !math.IsInf(spare.Lower, -1) || spare.Upper != 4 {
		t.Errorf("spare bounds = [%g, %g], want (-Inf, 4]", spare.Lower, spare.Upper)
	}

	eq := m.Constraints[0]
	if eq.Lower != 4 || eq.Upper != 4 {
		t.Errorf("eq bounds = [%g, %g], want [4, 4]", eq.Lower, eq.Upper)
	}
	if len(eq.Terms) != 2 || eq.Terms[0] != (mpmodel.Term{Var: 0, Coef: 1}) || eq.Terms[1] != (mpmodel.Term{Var: 1, Coef: 1}) {
		t.Errorf("eq terms = %+v", eq.Terms)
	}
	r := m.Constraints[1]
	if r.Lower != 1 || r.Upper != 8 {
		t.Errorf("r bounds = [%g, %g], want [1, 8]", r.Lower, r.Upper)
	}
	ge := m.Constraints[2]
	if ge.Lower != 2 || !math.IsInf(ge.Upper, 1) {
		t.Errorf("ge bounds = [%g, %g], want [2, +Inf)", ge.Lower, ge.Upper)
	}
	band := m.Constraints[3]
	if band.Lower != 1 || band.Upper != 6 {
		t.Errorf("band bounds = [%g, %g], want [1, 6]", band.Lower, band.Upper)
	}
	if len(band.Terms) != 2 || band.Terms[0].Coef != 2 || band.Terms[1].Coef != -1 {
		t.Errorf("band terms = %+v", band.Terms)
	}
}

func TestParseDefEmptyInput(t *testing.T) {
	m, err := ParseDef(nil)
	if err != nil {
		t.Fatalf("ParseDef failed: %v", err)
	}
	if m.Name != "" || len(m.Variables) != 0 || len(m.Constraints) != 0 {
		t.Errorf("empty input should give an empty model: %+v", m)
	}
}

func TestParseDefDuplicateVariable(t *testing.T) {
	_, err := ParseDef([]byte("var x\nvar x\n"))
	if err == nil {
		t.Fatal("ParseDef should reject a duplicate variable")
	}
	if !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
	if !strings.Contains(err.Error(), `duplicate variable "x"`) {
		t.Errorf("error = %v, want duplicate variable mention", err)
	}
}

func TestParseDefUnknownTermVariable(t *testing.T) {
	_, err := ParseDef([]byte("var x\nrow r <= 5 term y 1\n"))
	if err == nil {
		t.Fatal("ParseDef should reject a term naming an unknown variable")
	}
	var parseErr *errors.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("error %v is not a ParseError", err)
	}
	if !strings.Contains(parseErr.Message, `unknown variable "y"`) {
		t.Errorf("ParseError.Message = %q, want unknown variable mention", parseErr.Message)
	}
}

func TestParseDefSyntaxError(t *testing.T) {
	_, err := ParseDef([]byte("var 123\n"))
	if err == nil {
		t.Fatal("ParseDef should reject a numeric variable name")
	}
	if !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
}
