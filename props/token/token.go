// Package token defines the lexical tokens of Unreal Engine textual
// property dumps as produced by UModel's -dump and export modes.
package token

import "fmt"

type Type int

const (
	ILLEGAL Type = iota
	EOF

	// Terminals carrying a payload.
	IDENT     // property or class name; the exact character set depends on the dialect
	INT       // decimal, hexadecimal (0x) or binary (0b) integer, optionally signed
	DOUBLE    // floating point literal, optionally signed, optionally exponential
	TRUE      // the word true
	FALSE     // the word false
	SQSTRING  // 'single quoted text'
	DQSTRING  // "double quoted text"
	RAWSTRING // unescaped bare text run (modern dumps only)

	// Punctuation.
	LBRACE   // {
	RBRACE   // }
	LBRACKET // [
	RBRACKET // ]
	LPAREN   // (
	RPAREN   // )
	EQUALS   // =
	COMMA    // ,
)

var typeNames = map[Type]string{
	ILLEGAL:   "ILLEGAL",
	EOF:       "end of input",
	IDENT:     "identifier",
	INT:       "integer",
	DOUBLE:    "float",
	TRUE:      "true",
	FALSE:     "false",
	SQSTRING:  "single-quoted string",
	DQSTRING:  "double-quoted string",
	RAWSTRING: "bare string",
	LBRACE:    "'{'",
	RBRACE:    "'}'",
	LBRACKET:  "'['",
	RBRACKET:  "']'",
	LPAREN:    "'('",
	RPAREN:    "')'",
	EQUALS:    "'='",
	COMMA:     "','",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}

	return fmt.Sprintf("token(%d)", int(t))
}

// Token is a single lexeme together with its position in the input.
// Offset and End are rune offsets so that the surrounding source text can
// be recovered with a slice of the decoded input; quoted strings carry
// their content in Literal while Offset/End still span the quotes.
type Token struct {
	Type    Type
	Literal string
	Offset  int // rune offset of the first character
	End     int // rune offset just past the last character
	Line    int // 1-based line number
	Col     int // 1-based rune column within the line
}
