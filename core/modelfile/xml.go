package modelfile

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/FocuswithJustin/mpexport/core/errors"
	"github.com/FocuswithJustin/mpexport/core/mpmodel"
)

// xmlModel mirrors mpmodel.Model for encoding/xml output. Bounds travel as
// text attributes so infinities survive the round trip.
type xmlModel struct {
	XMLName     xml.Name        `xml:"model"`
	Name        string          `xml:"name,attr,omitempty"`
	Maximize    bool            `xml:"maximize,attr,omitempty"`
	Offset      float64         `xml:"offset,attr,omitempty"`
	Variables   []xmlVariable   `xml:"variable"`
	Constraints []xmlConstraint `xml:"constraint"`
}

type xmlVariable struct {
	Name      string  `xml:"name,attr,omitempty"`
	Lower     string  `xml:"lower,attr"`
	Upper     string  `xml:"upper,attr"`
	Integer   bool    `xml:"integer,attr,omitempty"`
	Objective float64 `xml:"objective,attr,omitempty"`
}

type xmlConstraint struct {
	Name  string    `xml:"name,attr,omitempty"`
	Lower string    `xml:"lower,attr"`
	Upper string    `xml:"upper,attr"`
	Terms []xmlTerm `xml:"term"`
}

type xmlTerm struct {
	Var  int     `xml:"var,attr"`
	Coef float64 `xml:"coef,attr"`
}

// ReadXML parses an XML model document. Absent bound attributes default to
// an unbounded domain, matching the JSON codec.
func ReadXML(data []byte) (*mpmodel.Model, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, errors.NewParse(formatXML, "", err.Error())
	}
	root, err := queryFirst(doc, "/model")
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, errors.NewParse(formatXML, "", "missing model element")
	}

	m := &mpmodel.Model{Name: root.SelectAttr("name")}
	if m.Maximize, err = boolAttr(root, "maximize"); err != nil {
		return nil, err
	}
	if m.Offset, err = floatAttr(root, "offset", 0); err != nil {
		return nil, err
	}

	varNodes, err := queryAll(root, "variable")
	if err != nil {
		return nil, err
	}
	for _, n := range varNodes {
		v := mpmodel.Variable{Name: n.SelectAttr("name")}
		if v.Lower, err = floatAttr(n, "lower", mpmodel.NegInf()); err != nil {
			return nil, err
		}
		if v.Upper, err = floatAttr(n, "upper", mpmodel.Inf()); err != nil {
			return nil, err
		}
		if v.Integer, err = boolAttr(n, "integer"); err != nil {
			return nil, err
		}
		if v.Objective, err = floatAttr(n, "objective", 0); err != nil {
			return nil, err
		}
		m.Variables = append(m.Variables, v)
	}

	consNodes, err := queryAll(root, "constraint")
	if err != nil {
		return nil, err
	}
	for _, n := range consNodes {
		c := mpmodel.Constraint{Name: n.SelectAttr("name")}
		if c.Lower, err = floatAttr(n, "lower", mpmodel.NegInf()); err != nil {
			return nil, err
		}
		if c.Upper, err = floatAttr(n, "upper", mpmodel.Inf()); err != nil {
			return nil, err
		}
		termNodes, err := queryAll(n, "term")
		if err != nil {
			return nil, err
		}
		for _, tn := range termNodes {
			idx, err := intAttr(tn, "var")
			if err != nil {
				return nil, err
			}
			coef, err := floatAttr(tn, "coef", 0)
			if err != nil {
				return nil, err
			}
			c.Terms = append(c.Terms, mpmodel.Term{Var: idx, Coef: coef})
		}
		m.Constraints = append(m.Constraints, c)
	}
	return m, nil
}

// WriteXML renders m as an indented XML document.
func WriteXML(m *mpmodel.Model) ([]byte, error) {
	doc := xmlModel{
		Name:     m.Name,
		Maximize: m.Maximize,
		Offset:   m.Offset,
	}
	for i := range m.Variables {
		v := &m.Variables[i]
		doc.Variables = append(doc.Variables, xmlVariable{
			Name:      v.Name,
			Lower:     formatBound(v.Lower),
			Upper:     formatBound(v.Upper),
			Integer:   v.Integer,
			Objective: v.Objective,
		})
	}
	for i := range m.Constraints {
		c := &m.Constraints[i]
		xc := xmlConstraint{
			Name:  c.Name,
			Lower: formatBound(c.Lower),
			Upper: formatBound(c.Upper),
		}
		for _, t := range c.Terms {
			xc.Terms = append(xc.Terms, xmlTerm{Var: t.Var, Coef: t.Coef})
		}
		doc.Constraints = append(doc.Constraints, xc)
	}
	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), append(out, '\n')...), nil
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// queryAll compiles expr before querying so a bad expression surfaces as a
// parse error instead of a panic deep inside the query engine.
func queryAll(n *xmlquery.Node, expr string) ([]*xmlquery.Node, error) {
	if _, err := xpath.Compile(expr); err != nil {
		return nil, errors.NewParse(formatXML, "", fmt.Sprintf("invalid xpath %q: %v", expr, err))
	}
	nodes, err := xmlquery.QueryAll(n, expr)
	if err != nil {
		return nil, errors.NewParse(formatXML, "", err.Error())
	}
	return nodes, nil
}

func queryFirst(n *xmlquery.Node, expr string) (*xmlquery.Node, error) {
	if _, err := xpath.Compile(expr); err != nil {
		return nil, errors.NewParse(formatXML, "", fmt.Sprintf("invalid xpath %q: %v", expr, err))
	}
	node, err := xmlquery.Query(n, expr)
	if err != nil {
		return nil, errors.NewParse(formatXML, "", err.Error())
	}
	return node, nil
}

func floatAttr(n *xmlquery.Node, name string, def float64) (float64, error) {
	s := n.SelectAttr(name)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.NewParse(formatXML, "", fmt.Sprintf("attribute %s: %v", name, err))
	}
	return v, nil
}

func boolAttr(n *xmlquery.Node, name string) (bool, error) {
	s := n.SelectAttr(name)
	if s == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, errors.NewParse(formatXML, "", fmt.Sprintf("attribute %s: %v", name, err))
	}
	return v, nil
}

func intAttr(n *xmlquery.Node, name string) (int, error) {
	s := n.SelectAttr(name)
	if s == "" {
		return 0, errors.NewParse(formatXML, "", fmt.Sprintf("attribute %s: missing", name))
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.NewParse(formatXML, "", fmt.Sprintf("attribute %s: %v", name, err))
	}
	return v, nil
}
