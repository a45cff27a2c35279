package ast

// LitType identifies how a constant was written in the source and which
// typed field of Const carries its resolved value.
type LitType uint8

const (
	// IntLit is a decimal, hexadecimal or binary integer; see Const.Int.
	IntLit LitType = iota
	// FloatLit is a decimal or exponential float; see Const.Float.
	FloatLit
	// BoolLit is the word true or false; see Const.Bool.
	BoolLit
	// SingleQuotedLit is 'quoted' text; see Const.Str.
	SingleQuotedLit
	// DoubleQuotedLit is "quoted" text; see Const.Str.
	DoubleQuotedLit
	// CallLit is a call form such as BLEND_Masked (1); see Const.Call.
	CallLit
	// UnquotedLit is bare text that matched no other literal class; see Const.Str.
	UnquotedLit
)

var litNames = map[LitType]string{
	IntLit:          "int",
	FloatLit:        "float",
	BoolLit:         "bool",
	SingleQuotedLit: "single-quoted string",
	DoubleQuotedLit: "double-quoted string",
	CallLit:         "call",
	UnquotedLit:     "unquoted string",
}

func (t LitType) String() string {
	if name, ok := litNames[t]; ok {
		return name
	}

	return "unknown"
}

// Const is a resolved scalar constant. Raw always holds the exact source
// text so that callers matching against engine dump strings (for example
// "BLEND_Masked (1)") never depend on the resolved representation.
type Const struct {
	Kind LitType
	Raw  string

	// Exactly one of the following carries the resolved value,
	// selected by Kind.
	Int   int64
	Float float64
	Bool  bool
	Str   string
	Call  *Call

	// Overflow is set when an integer or float literal exceeded the
	// representable range and was clamped. The clamped value is stored
	// and a Warning is recorded on the document.
	Overflow bool
}

// Call is a call-form constant: an identifier applied to a single
// literal argument. UModel uses it when dumping enum values, as in
// `BlendMode = BLEND_Masked (1)`.
type Call struct {
	Callee string
	Arg    *Const
}

// Text returns the constant as a string the way a consumer comparing
// against engine output would expect it: the unquoted content for string
// kinds, and the raw source text for everything else.
func (c *Const) Text() string {
	switch c.Kind {
	case SingleQuotedLit, DoubleQuotedLit, UnquotedLit:
		return c.Str
	default:
		return c.Raw
	}
}
