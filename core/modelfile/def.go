package modelfile

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/FocuswithJustin/mpexport/core/errors"
	"github.com/FocuswithJustin/mpexport/core/mpmodel"
)

// The definition format is a small line-oriented DSL for writing models by
// hand. A document is a sequence of statements:
//
//	model diet
//	maximize
//	offset 3
//	var take int bounds 0 1
//	var qty obj 1 bounds 0 10
//	var amt bounds 1.5 inf
//	row eq = 4 term take 1 term qty 1
//	row r range 1 8 term amt 1
//
// Bounds accept inf and -inf. Comments run from # to end of line.
var defLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\r\n]*`},
	{Name: "Rel", Pattern: `<=|>=|=`},
	{Name: "Number", Pattern: `[-+]?(inf\b|\d+(\.\d*)?|\.\d+)([eE][-+]?\d+)?`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_.]*`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
	{Name: "Newline", Pattern: `[\r\n]+`},
})

var defParser = participle.MustBuild[defFile](
	participle.Lexer(defLexer),
	participle.Elide("Comment", "Whitespace", "Newline"),
)

type defFile struct {
	Statements []defStatement `@@*`
}

type defStatement struct {
	Model  *defModelStmt  `  @@`
	Dir    *defDirStmt    `| @@`
	Offset *defOffsetStmt `| @@`
	Var    *defVarStmt    `| @@`
	Row    *defRowStmt    `| @@`
}

type defModelStmt struct {
	Name string `"model" @Ident`
}

type defDirStmt struct {
	Maximize bool `( @"maximize" | "minimize" )`
}

type defOffsetStmt struct {
	Value float64 `"offset" @Number`
}

type defVarStmt struct {
	Name    string      `"var" @Ident`
	Clauses []varClause `@@*`
}

type varClause struct {
	Obj     *float64  `  "obj" @Number`
	Integer bool      `| @"int"`
	Bounds  *defRange `| "bounds" @@`
}

type defRowStmt struct {
	Name    string      `"row" @Ident`
	Clauses []rowClause `@@*`
}

type rowClause struct {
	Rel   *defRel   `  @@`
	Range *defRange `| "range" @@`
	Term  *defTerm  `| "term" @@`
}

type defRel struct {
	Op    string  `@Rel`
	Value float64 `@Number`
}

type defRange struct {
	Lo float64 `@Number`
	Hi float64 `@Number`
}

type defTerm struct {
	Var  string  `@Ident`
	Coef float64 `@Number`
}

// ParseDef parses a model definition document.
func ParseDef(data []byte) (*mpmodel.Model, error) {
	file, err := defParser.ParseBytes("", data)
	if err != nil {
		return nil, errors.NewParse(formatDef, "", err.Error())
	}
	return defToModel(file)
}

func defToModel(file *defFile) (*mpmodel.Model, error) {
	m := &mpmodel.Model{}
	index := map[string]int{}

	for _, s := range file.Statements {
		switch {
		case s.Model != nil:
			m.Name = s.Model.Name
		case s.Dir != nil:
			m.Maximize = s.Dir.Maximize
		case s.Offset != nil:
			m.Offset = s.Offset.Value
		case s.Var != nil:
			if _, dup := index[s.Var.Name]; dup {
				return nil, errors.NewParse(formatDef, "", fmt.Sprintf("duplicate variable %q", s.Var.Name))
			}
			v := mpmodel.Variable{
				Name:  s.Var.Name,
				Lower: mpmodel.NegInf(),
				Upper: mpmodel.Inf(),
			}
			for _, cl := range s.Var.Clauses {
				switch {
				case cl.Obj != nil:
					v.Objective = *cl.Obj
				case cl.Integer:
					v.Integer = true
				case cl.Bounds != nil:
					v.Lower = cl.Bounds.Lo
					v.Upper = cl.Bounds.Hi
				}
			}
			index[s.Var.Name] = len(m.Variables)
			m.Variables = append(m.Variables, v)
		case s.Row != nil:
			c := mpmodel.Constraint{
				Name:  s.Row.Name,
				Lower: mpmodel.NegInf(),
				Upper: mpmodel.Inf(),
			}
			for _, cl := range s.Row.Clauses {
				switch {
				case cl.Rel != nil:
					switch cl.Rel.Op {
					case "=":
						c.Lower = cl.Rel.Value
						c.Upper = cl.Rel.Value
					case "<=":
						c.Upper = cl.Rel.Value
					case ">=":
						c.Lower = cl.Rel.Value
					}
				case cl.Range != nil:
					c.Lower = cl.Range.Lo
					c.Upper = cl.Range.Hi
				case cl.Term != nil:
					vi, ok := index[cl.Term.Var]
					if !ok {
						return nil, errors.NewParse(formatDef, "", fmt.Sprintf("row %q references unknown variable %q", s.Row.Name, cl.Term.Var))
					}
					c.Terms = append(c.Terms, mpmodel.Term{Var: vi, Coef: cl.Term.Coef})
				}
			}
			m.Constraints = append(m.Constraints, c)
		}
	}
	return m, nil
}
