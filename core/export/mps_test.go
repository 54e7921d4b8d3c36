package export

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/FocuswithJustin/mpexport/core/errors"
	"github.com/FocuswithJustin/mpexport/core/mpmodel"
)

// section slices the text between a section keyword and the next one.
func section(t *testing.T, text, from, to string) string {
	t.Helper()
	start := strings.Index(text, from)
	if start < 0 {
		t.Fatalf("section %q not found in:\n%s", from, text)
	}
	rest := text[start+len(from):]
	end := strings.Index(rest, to)
	if end < 0 {
		t.Fatalf("section %q not terminated by %q in:\n%s", from, to, text)
	}
	return rest[:end]
}

func TestMPSRowTypes(t *testing.T) {
	m := &mpmodel.Model{Name: "rows"}
	x := m.AddVariable("x", 0, mpmodel.Inf())
	m.AddEqRow("eqrow", 4, mpmodel.Term{Var: x, Coef: 1})
	m.AddLeRow("lerow", 5, mpmodel.Term{Var: x, Coef: 1})
	m.AddGeRow("gerow", 2, mpmodel.Term{Var: x, Coef: 1})
	m.AddConstraint("rng", 1, 8, mpmodel.Term{Var: x, Coef: 1})

	res, err := WriteMPS(m, Options{}, false, false)
	if err != nil {
		t.Fatalf("WriteMPS() error = %v", err)
	}
	rows := section(t, res.Text, "ROWS\n", "COLUMNS\n")
	pos := -1
	for _, want := range []string{" N   COST", " E   eqrow", " L   lerow", " G   gerow", " G   rng"} {
		idx := strings.Index(rows, want)
		if idx < 0 {
			t.Fatalf("ROWS section missing %q:\n%s", want, rows)
		}
		if idx < pos {
			t.Errorf("ROWS entry %q out of order:\n%s", want, rows)
		}
		pos = idx
	}
}

func TestMPSDoublyUnboundedRow(t *testing.T) {
	m := &mpmodel.Model{}
	x := m.AddVariable("x", 0, 1)
	m.AddConstraint("open", mpmodel.NegInf(), mpmodel.Inf(), mpmodel.Term{Var: x, Coef: 1})

	res, err := WriteMPS(m, Options{}, false, false)
	if err == nil {
		t.Fatal("WriteMPS() with doubly unbounded constraint: error = nil, want error")
	}
	if res != nil {
		t.Error("WriteMPS() returned output alongside the error")
	}
	if !errors.Is(err, errors.ErrUnboundedRow) {
		t.Errorf("error = %v, want ErrUnboundedRow", err)
	}
	var rowErr *errors.RowError
	if !errors.As(err, &rowErr) {
		t.Fatalf("error type = %T, want *errors.RowError", err)
	}
	if rowErr.Constraint != 0 || rowErr.Name != "open" {
		t.Errorf("RowError = %+v, want constraint 0 name %q", rowErr, "open")
	}
}

func TestMPSIntegerMarkers(t *testing.T) {
	m := &mpmodel.Model{Name: "mix"}
	yint := m.AddIntegerVariable("yint", 0, 9)
	m.Variables[yint].Objective = 1
	xcont := m.AddVariable("xcont", 0, mpmodel.Inf())
	m.Variables[xcont].Objective = 1

	res, err := WriteMPS(m, Options{}, false, false)
	if err != nil {
		t.Fatalf("WriteMPS() error = %v", err)
	}
	text := res.Text
	start := strings.Index(text, "INTSTART")
	end := strings.Index(text, "INTEND")
	yidx := strings.Index(text, "yint")
	xidx := strings.Index(text, "xcont")
	if start < 0 || end < 0 {
		t.Fatalf("integer marker rows missing:\n%s", text)
	}
	if !(start < yidx && yidx < end && end < xidx) {
		t.Errorf("integer block ordering wrong (INTSTART %d, yint %d, INTEND %d, xcont %d):\n%s",
			start, yidx, end, xidx, text)
	}
	if !strings.Contains(text, "'MARKER'") || !strings.Contains(text, "'INTORG'") || !strings.Contains(text, "'INTEND'") {
		t.Errorf("marker pseudo-row fields missing:\n%s", text)
	}

	cont := &mpmodel.Model{}
	x := cont.AddVariable("x", 0, 1)
	cont.Variables[x].Objective = 1
	res, err = WriteMPS(cont, Options{}, false, false)
	if err != nil {
		t.Fatalf("WriteMPS() error = %v", err)
	}
	if strings.Contains(res.Text, "MARKER") {
		t.Errorf("marker rows present without integer variables:\n%s", res.Text)
	}
}

func TestMPSColumnPacking(t *testing.T) {
	m := &mpmodel.Model{Name: "pack"}
	x := m.AddVariable("x", 0, mpmodel.Inf())
	m.Variables[x].Objective = 1
	for i, rhs := range []float64{3, 4, 5} {
		m.AddLeRow(fmt.Sprintf("c%d", i), rhs, mpmodel.Term{Var: x, Coef: 2})
	}

	res, err := WriteMPS(m, Options{}, false, false)
	if err != nil {
		t.Fatalf("WriteMPS() error = %v", err)
	}
	columns := section(t, res.Text, "COLUMNS\n", "RHS\n")
	lines := strings.Split(strings.TrimRight(columns, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("COLUMNS for four pairs = %d lines, want 2:\n%s", len(lines), columns)
	}
	if !strings.Contains(lines[0], "COST") || !strings.Contains(lines[0], "c0") {
		t.Errorf("first line should pack COST and c0: %q", lines[0])
	}
	if !strings.Contains(lines[1], "c1") || !strings.Contains(lines[1], "c2") {
		t.Errorf("second line should pack c1 and c2: %q", lines[1])
	}
}

func TestMPSRHSAndRanges(t *testing.T) {
	m := &mpmodel.Model{Name: "rhs"}
	x := m.AddVariable("x", 0, mpmodel.Inf())
	m.AddConstraint("rng", 1, 8, mpmodel.Term{Var: x, Coef: 1})
	m.AddLeRow("le", 5, mpmodel.Term{Var: x, Coef: 1})

	res, err := WriteMPS(m, Options{}, false, false)
	if err != nil {
		t.Fatalf("WriteMPS() error = %v", err)
	}
	rhs := section(t, res.Text, "RHS\n", "RANGES\n")
	if !strings.Contains(rhs, "rng") || !strings.Contains(rhs, "le") {
		t.Fatalf("RHS section missing entries:\n%s", rhs)
	}
	if strings.Contains(rhs, "8 ") {
		t.Errorf("RHS for the ranged row should use the lower bound:\n%s", rhs)
	}
	ranges := section(t, res.Text, "RANGES\n", "BOUNDS\n")
	if !strings.Contains(ranges, "rng") || !strings.Contains(ranges, "7 ") {
		t.Errorf("RANGES should carry the bound gap of the ranged row:\n%s", ranges)
	}
	if strings.Contains(ranges, "le") {
		t.Errorf("RANGES should skip single-bound rows:\n%s", ranges)
	}
}

func TestMPSBoundTypes(t *testing.T) {
	m := &mpmodel.Model{Name: "bnd"}
	m.AddBinaryVariable("bin")
	m.AddIntegerVariable("ilo", 2, 10)
	m.AddIntegerVariable("iub", 0, 10)
	m.AddIntegerVariable("igen", 0, mpmodel.Inf())
	m.AddVariable("vfr", mpmodel.NegInf(), mpmodel.Inf())
	m.AddVariable("vfx", 3, 3)
	m.AddVariable("vpl", 0, mpmodel.Inf())
	m.AddVariable("vlo", 1.5, mpmodel.Inf())
	m.AddVariable("vup", 0, 7)
	m.AddVariable("vlu", 1, 7)

	res, err := WriteMPS(m, Options{}, false, false)
	if err != nil {
		t.Fatalf("WriteMPS() error = %v", err)
	}
	bounds := section(t, res.Text, "BOUNDS\n", "ENDATA\n")
	codes := map[string][]string{}
	for _, line := range strings.Split(strings.TrimRight(bounds, "\n"), "\n") {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			t.Fatalf("unexpected bounds line %q", line)
		}
		codes[fields[2]] = append(codes[fields[2]], fields[0])
	}
	want := map[string][]string{
		"bin": {"BV"},
		"ilo": {"LI", "UI"},
		"iub": {"UI"},
		"vfr": {"FR"},
		"vfx": {"FX"},
		"vpl": {"PL"},
		"vlo": {"LO"},
		"vup": {"UP"},
		"vlu": {"LO", "UP"},
	}
	for name, wantCodes := range want {
		if got := codes[name]; !slices.Equal(got, wantCodes) {
			t.Errorf("bound codes for %s = %v, want %v", name, got, wantCodes)
		}
	}
	if got := codes["igen"]; len(got) != 0 {
		t.Errorf("bound codes for igen = %v, want none", got)
	}
}

func TestMPSFixedLayout(t *testing.T) {
	res, err := WriteMPS(scenarioModel(), Options{}, true, false)
	if err != nil {
		t.Fatalf("WriteMPS() error = %v", err)
	}
	if !res.FixedFormat {
		t.Fatal("FixedFormat = false, want fixed layout for short names")
	}
	for _, want := range []string{
		"NAME          test\n",
		" N  COST    \n",
		" L  c1      \n",
		" PL BOUND     x\n",
		"ENDATA\n",
	} {
		if !strings.Contains(res.Text, want) {
			t.Errorf("fixed MPS missing %q:\n%s", want, res.Text)
		}
	}
}

func TestMPSFixedValueFitting(t *testing.T) {
	m := &mpmodel.Model{Name: "fit"}
	x := m.AddVariable("x", 0, mpmodel.Inf())
	m.AddLeRow("c", 5, mpmodel.Term{Var: x, Coef: 1.0 / 3.0})

	res, err := WriteMPS(m, Options{}, true, false)
	if err != nil {
		t.Fatalf("WriteMPS() error = %v", err)
	}
	if !strings.Contains(res.Text, "  0.3333333333 ") {
		t.Errorf("fixed format should squeeze the value into the field:\n%s", res.Text)
	}
	free, err := WriteMPS(m, Options{}, false, false)
	if err != nil {
		t.Fatalf("WriteMPS() error = %v", err)
	}
	if !strings.Contains(free.Text, "0.3333333333333333 ") {
		t.Errorf("free format should keep full precision:\n%s", free.Text)
	}
}

func TestMPSEmptyModel(t *testing.T) {
	res, err := WriteMPS(&mpmodel.Model{}, Options{}, false, false)
	if err != nil {
		t.Fatalf("WriteMPS() on empty model error = %v", err)
	}
	if !strings.Contains(res.Text, "NoName") {
		t.Errorf("comment header should report NoName:\n%s", res.Text)
	}
	if !strings.Contains(res.Text, "ROWS\n N   COST") {
		t.Errorf("empty model should still emit the objective row:\n%s", res.Text)
	}
	for _, absent := range []string{"COLUMNS", "RHS", "RANGES", "BOUNDS"} {
		if strings.Contains(res.Text, absent+"\n") {
			t.Errorf("empty model should omit the %s section:\n%s", absent, res.Text)
		}
	}
	if !strings.HasSuffix(res.Text, "ENDATA\n") {
		t.Errorf("missing ENDATA terminator:\n%s", res.Text)
	}
}
