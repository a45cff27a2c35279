package ast

import "encoding/json"

// JSON marshaling renders the tree with an explicit "kind" discriminator
// on every value so the output survives the Value sum type. It is one
// way only; parsing always starts from dump text, never from JSON.

var litJSONNames = map[LitType]string{
	IntLit:          "int",
	FloatLit:        "float",
	BoolLit:         "bool",
	SingleQuotedLit: "single_quoted",
	DoubleQuotedLit: "double_quoted",
	CallLit:         "call",
	UnquotedLit:     "unquoted",
}

func (d *Document) MarshalJSON() ([]byte, error) {
	type warning struct {
		Line    int    `json:"line"`
		Col     int    `json:"col"`
		Literal string `json:"literal"`
		Message string `json:"message"`
	}

	warnings := make([]warning, 0, len(d.Warnings))
	for _, w := range d.Warnings {
		warnings = append(warnings, warning{w.Pos.Line, w.Pos.Col, w.Literal, w.Msg})
	}

	return json.Marshal(struct {
		Defs     []*Definition `json:"defs"`
		Warnings []warning     `json:"warnings,omitempty"`
	}{d.Defs, warnings})
}

func (d *Definition) MarshalJSON() ([]byte, error) {
	out := struct {
		Name  string `json:"name"`
		Index *int   `json:"index,omitempty"`
		Value Value  `json:"value"`
	}{Name: d.Name, Value: d.Value}

	if d.Indexed {
		out.Index = &d.Index
	}

	return json.Marshal(out)
}

func (b *Block) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind string        `json:"kind"`
		Defs []*Definition `json:"defs"`
	}{"block", b.Defs})
}

func (p *Path) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind   string `json:"kind"`
		Class  string `json:"class"`
		Target string `json:"target"`
	}{"path", p.Class, p.Target})
}

func (l *ConstList) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind  string   `json:"kind"`
		Items []*Const `json:"items"`
	}{"list", l.Items})
}

func (e *EmptyList) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind string `json:"kind"`
	}{"empty_list"})
}

func (c *Const) MarshalJSON() ([]byte, error) {
	out := struct {
		Kind     string `json:"kind"`
		Raw      string `json:"raw"`
		Value    any    `json:"value"`
		Overflow bool   `json:"overflow,omitempty"`
	}{Kind: litJSONNames[c.Kind], Raw: c.Raw, Overflow: c.Overflow}

	switch c.Kind {
	case IntLit:
		out.Value = c.Int
	case FloatLit:
		out.Value = c.Float
	case BoolLit:
		out.Value = c.Bool
	case CallLit:
		out.Value = struct {
			Callee string `json:"callee"`
			Arg    *Const `json:"arg"`
		}{c.Call.Callee, c.Call.Arg}
	default:
		out.Value = c.Str
	}

	return json.Marshal(out)
}
