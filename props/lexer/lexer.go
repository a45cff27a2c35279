package lexer

import (
	"fmt"
	"strings"

	"github.com/uetools/propscan/props/ast"
	"github.com/uetools/propscan/props/token"
)

type Lexer struct {
	input   []rune
	dialect Dialect
	pos     int  // position of the current character in the input
	readPos int  // position of the next character to be read
	char    rune // current character being processed
	line    int  // 1-based line of the current character
	col     int  // 1-based column of the current character
	failure *ast.ParseError
}

func New(input string, dialect Dialect) *Lexer {
	l := &Lexer{input: []rune(input), dialect: dialect, line: 1}
	l.readChar()
	return l
}

// Input returns the decoded input. Token offsets index into this slice,
// so callers can recover exact source text for any token range.
func (l *Lexer) Input() []rune {
	return l.input
}

func (l *Lexer) Dialect() Dialect {
	return l.dialect
}

// Tokenize runs the lexer over the whole input and returns the token
// stream, ending with an EOF token. The first lexical problem aborts
// with an *ast.ParseError carrying the offending position.
func (l *Lexer) Tokenize() ([]token.Token, error) {
	var toks []token.Token

	for {
		tok := l.NextToken()

		if tok.Type == token.ILLEGAL {
			if l.failure != nil {
				return nil, l.failure
			}
			return nil, &ast.ParseError{
				Kind: ast.LexicalError,
				Pos:  ast.Pos{Offset: tok.Offset, Line: tok.Line, Col: tok.Col},
				Msg:  fmt.Sprintf("unexpected character %q", tok.Literal),
			}
		}

		toks = append(toks, tok)

		if tok.Type == token.EOF {
			return toks, nil
		}
	}
}

// cursor is a resumable lexer state, used to rewind when a longer match
// turns out not to be a number after all.
type cursor struct {
	pos     int
	readPos int
	char    rune
	line    int
	col     int
}

func (l *Lexer) mark() cursor {
	return cursor{l.pos, l.readPos, l.char, l.line, l.col}
}

func (l *Lexer) reset(c cursor) {
	l.pos, l.readPos, l.char, l.line, l.col = c.pos, c.readPos, c.char, c.line, c.col
}

func (l *Lexer) readChar() {
	if l.char == '\n' {
		l.line++
		l.col = 0
	}

	if l.readPos >= len(l.input) {
		l.char = 0
	} else {
		l.char = l.input[l.readPos]
	}

	l.pos = l.readPos
	l.readPos++
	l.col++
}

func (l *Lexer) peekChar() rune {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) NextToken() token.Token {
	l.skipSpace()

	start := l.mark()

	switch l.char {
	case 0:
		return l.tokenAt(start, token.EOF, "")
	case '{':
		l.readChar()
		return l.tokenAt(start, token.LBRACE, "{")
	case '}':
		l.readChar()
		return l.tokenAt(start, token.RBRACE, "}")
	case '[':
		l.readChar()
		return l.tokenAt(start, token.LBRACKET, "[")
	case ']':
		l.readChar()
		return l.tokenAt(start, token.RBRACKET, "]")
	case '(':
		l.readChar()
		return l.tokenAt(start, token.LPAREN, "(")
	case ')':
		l.readChar()
		return l.tokenAt(start, token.RPAREN, ")")
	case '=':
		l.readChar()
		return l.tokenAt(start, token.EQUALS, "=")
	case ',':
		l.readChar()
		return l.tokenAt(start, token.COMMA, ",")
	case '\'', '"':
		return l.readString(start)
	}

	// Numbers take precedence over identifiers and bare strings, but a
	// numeric prefix glued to identifier characters is a longer word and
	// must be re-read as one (maximal munch: `0x1Fg` is not a number).
	if l.numberStart() {
		if tok, ok := l.readNumber(start); ok {
			return tok
		}
		l.reset(start)
	}

	if l.dialect.IsIdentRune(l.char, 0) {
		return l.readIdentifier(start)
	}

	if l.dialect.BareStrings {
		return l.readRawString(start)
	}

	lit := string(l.char)
	l.readChar()
	return l.tokenAt(start, token.ILLEGAL, lit)
}

func (l *Lexer) tokenAt(start cursor, t token.Type, lit string) token.Token {
	return token.Token{
		Type:    t,
		Literal: lit,
		Offset:  start.pos,
		End:     l.pos,
		Line:    start.line,
		Col:     start.col,
	}
}

func (l *Lexer) skipSpace() {
	for {
		for isSpace(l.char) {
			l.readChar()
		}

		if l.dialect.LineComments && l.char == '/' && l.peekChar() == '/' {
			for l.char != '\n' && l.char != 0 {
				l.readChar()
			}
			continue
		}

		return
	}
}

func (l *Lexer) readIdentifier(start cursor) token.Token {
	for l.char != 0 && l.dialect.IsIdentRune(l.char, l.pos-start.pos) {
		if l.dialect.LineComments && l.char == '/' && l.peekChar() == '/' {
			break
		}
		l.readChar()
	}

	lit := strings.TrimRight(string(l.input[start.pos:l.pos]), " ")

	// Keywords only match as whole tokens: `truex` and the legacy
	// identifier `true blue` stay identifiers.
	switch lit {
	case "true":
		return l.tokenAt(start, token.TRUE, lit)
	case "false":
		return l.tokenAt(start, token.FALSE, lit)
	}

	return l.tokenAt(start, token.IDENT, lit)
}

func (l *Lexer) readString(start cursor) token.Token {
	quote := l.char
	l.readChar()
	contentStart := l.pos

	for l.char != quote {
		if l.char == 0 {
			l.failure = &ast.ParseError{
				Kind: ast.LexicalError,
				Pos:  ast.Pos{Offset: start.pos, Line: start.line, Col: start.col},
				Msg:  "unterminated string literal",
			}
			return l.tokenAt(start, token.ILLEGAL, string(l.input[start.pos:l.pos]))
		}
		l.readChar()
	}

	lit := string(l.input[contentStart:l.pos])
	l.readChar() // closing quote

	typ := token.DQSTRING
	if quote == '\'' {
		typ = token.SQSTRING
	}

	return l.tokenAt(start, typ, lit)
}

// readRawString consumes the modern-dialect fallback terminal: a run of
// arbitrary text ending before the next comma, closing brace or line
// break. Leading whitespace was already skipped; trailing whitespace is
// trimmed from the literal but stays inside the token extent.
func (l *Lexer) readRawString(start cursor) token.Token {
	end := RawRunEnd(l.input, l.pos, l.dialect)
	for l.pos < end {
		l.readChar()
	}

	lit := strings.TrimRight(string(l.input[start.pos:l.pos]), " \t")
	return l.tokenAt(start, token.RAWSTRING, lit)
}

// RawRunEnd returns the rune offset just past a bare text run beginning
// at start. The run extends to the next comma, closing brace or line
// break, or to the start of a line comment when the dialect has them.
func RawRunEnd(src []rune, start int, d Dialect) int {
	i := start
	for i < len(src) {
		r := src[i]
		if r == ',' || r == '}' || r == '\n' {
			break
		}
		if d.LineComments && r == '/' && i+1 < len(src) && src[i+1] == '/' {
			break
		}
		i++
	}
	return i
}

func (l *Lexer) numberStart() bool {
	if isDigit(l.char) {
		return true
	}
	if (l.char == '+' || l.char == '-') && (isDigit(l.peekChar()) || l.peekChar() == '.') {
		return true
	}
	if l.char == '.' && isDigit(l.peekChar()) {
		return true
	}
	return false
}

// readNumber scans an integer or float literal. It reports ok=false when
// the text turns out not to be a well-formed number, or when the literal
// is immediately followed by an identifier rune and therefore is only a
// prefix of a longer word; the caller rewinds and re-reads.
func (l *Lexer) readNumber(start cursor) (token.Token, bool) {
	if l.char == '+' || l.char == '-' {
		l.readChar()
	}

	typ := token.INT

	switch {
	case l.char == '0' && (l.peekChar() == 'x' || l.peekChar() == 'X'):
		l.readChar()
		l.readChar()
		if l.consumeDigits(isHexDigit) == 0 {
			return token.Token{}, false
		}
	case l.char == '0' && (l.peekChar() == 'b' || l.peekChar() == 'B'):
		l.readChar()
		l.readChar()
		if l.consumeDigits(isBinDigit) == 0 {
			return token.Token{}, false
		}
	default:
		intDigits := l.consumeDigits(isDigit)
		fracDigits := 0

		if l.char == '.' {
			l.readChar()
			fracDigits = l.consumeDigits(isDigit)
			typ = token.DOUBLE
		}

		if intDigits == 0 && fracDigits == 0 {
			return token.Token{}, false
		}

		if l.char == 'e' || l.char == 'E' {
			save := l.mark()
			l.readChar()
			if l.char == '+' || l.char == '-' {
				l.readChar()
			}
			if l.consumeDigits(isDigit) == 0 {
				l.reset(save)
			} else {
				typ = token.DOUBLE
			}
		}
	}

	if l.identExtends() {
		return token.Token{}, false
	}

	return l.tokenAt(start, typ, string(l.input[start.pos:l.pos])), true
}

// identExtends reports whether identifier text continues right after the
// literal just scanned. Interior spaces in loose dialects only count when
// more identifier text follows them, so `X = 5` before a newline stays a
// number while `X = 5 kg` re-reads as the identifier `5 kg`.
func (l *Lexer) identExtends() bool {
	if l.char == 0 || !l.dialect.IsIdentRune(l.char, 1) {
		return false
	}
	if l.char != ' ' {
		return true
	}

	j := l.pos
	for j < len(l.input) && l.input[j] == ' ' {
		j++
	}
	if j >= len(l.input) || !l.dialect.IsIdentRune(l.input[j], 1) {
		return false
	}
	if l.dialect.LineComments && l.input[j] == '/' && j+1 < len(l.input) && l.input[j+1] == '/' {
		return false
	}
	return true
}

func (l *Lexer) consumeDigits(valid func(rune) bool) int {
	n := 0
	for valid(l.char) {
		l.readChar()
		n++
	}
	return n
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func isHexDigit(r rune) bool {
	return isDigit(r) || 'a' <= r && r <= 'f' || 'A' <= r && r <= 'F'
}

func isBinDigit(r rune) bool {
	return r == '0' || r == '1'
}
