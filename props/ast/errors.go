package ast

import "fmt"

// Pos is a location in the input. Offset counts runes from the start of
// the input; Line and Col are 1-based and intended for messages.
type Pos struct {
	Offset int
	Line   int
	Col    int
}

func (p Pos) String() string {
	return fmt.Sprintf("line %d, col %d", p.Line, p.Col)
}

// ErrorKind classifies parse failures.
type ErrorKind uint8

const (
	// LexicalError is input that could not be split into tokens, such as
	// a stray control character or an unterminated quoted string.
	LexicalError ErrorKind = iota

	// SyntaxError is a well-formed token stream that does not match the
	// grammar, such as a missing '=' or an unclosed block.
	SyntaxError

	// InternalError is a defect in the parser itself, reported when
	// disambiguation reaches a state the grammar says is unreachable.
	// It is never caused by user input.
	InternalError
)

func (k ErrorKind) String() string {
	switch k {
	case LexicalError:
		return "lexical error"
	case SyntaxError:
		return "syntax error"
	case InternalError:
		return "internal parser error"
	default:
		return "error"
	}
}

// ParseError is the single error type returned by parsing. Parsing stops
// at the first error; there is no partial recovery.
type ParseError struct {
	Kind ErrorKind
	Pos  Pos
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at %s: %s", e.Kind, e.Pos, e.Msg)
}

// Warning is a non-fatal problem found while resolving constants.
// The definition it occurred in is kept in the tree.
type Warning struct {
	Pos     Pos
	Literal string
	Msg     string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s: %s", w.Pos, w.Literal, w.Msg)
}
