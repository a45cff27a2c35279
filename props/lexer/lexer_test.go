package lexer

import (
	"testing"

	"github.com/uetools/propscan/props/ast"
	"github.com/uetools/propscan/props/token"
)

func TestNextTokenModern(t *testing.T) {
	input := `Parent = MaterialInstanceConstant'BaseMat.BaseMat'
TextureParameterValues[0] =
{
	ParameterInfo = { Name = Diffuse Map A, Index = 0x1F },
	ParameterValue = Texture2D'/Game/T_Rock_D.T_Rock_D', // primary
	Weight = -2.5e3
}
bEnabled = true,
Threshold = .5
BlendMode = BLEND_Masked (1)
Tags = {,,}
Mask = 0b101
Note = #warning text
`

	l := New(input, Modern())

	tests := []struct {
		expectedType    token.Type
		expectedLiteral string
	}{
		{token.IDENT, "Parent"},
		{token.EQUALS, "="},
		{token.IDENT, "MaterialInstanceConstant"},
		{token.SQSTRING, "BaseMat.BaseMat"},
		{token.IDENT, "TextureParameterValues"},
		{token.LBRACKET, "["},
		{token.INT, "0"},
		{token.RBRACKET, "]"},
		{token.EQUALS, "="},
		{token.LBRACE, "{"},
		{token.IDENT, "ParameterInfo"},
		{token.EQUALS, "="},
		{token.LBRACE, "{"},
		{token.IDENT, "Name"},
		{token.EQUALS, "="},
		{token.IDENT, "Diffuse"},
		{token.IDENT, "Map"},
		{token.IDENT, "A"},
		{token.COMMA, ","},
		{token.IDENT, "Index"},
		{token.EQUALS, "="},
		{token.INT, "0x1F"},
		{token.RBRACE, "}"},
		{token.COMMA, ","},
		{token.IDENT, "ParameterValue"},
		{token.EQUALS, "="},
		{token.IDENT, "Texture2D"},
		{token.SQSTRING, "/Game/T_Rock_D.T_Rock_D"},
		{token.COMMA, ","},
		{token.IDENT, "Weight"},
		{token.EQUALS, "="},
		{token.DOUBLE, "-2.5e3"},
		{token.RBRACE, "}"},
		{token.IDENT, "bEnabled"},
		{token.EQUALS, "="},
		{token.TRUE, "true"},
		{token.COMMA, ","},
		{token.IDENT, "Threshold"},
		{token.EQUALS, "="},
		{token.DOUBLE, ".5"},
		{token.IDENT, "BlendMode"},
		{token.EQUALS, "="},
		{token.IDENT, "BLEND_Masked"},
		{token.LPAREN, "("},
		{token.INT, "1"},
		{token.RPAREN, ")"},
		{token.IDENT, "Tags"},
		{token.EQUALS, "="},
		{token.LBRACE, "{"},
		{token.COMMA, ","},
		{token.COMMA, ","},
		{token.RBRACE, "}"},
		{token.IDENT, "Mask"},
		{token.EQUALS, "="},
		{token.INT, "0b101"},
		{token.IDENT, "Note"},
		{token.EQUALS, "="},
		{token.RAWSTRING, "#warning text"},
		{token.EOF, ""},
	}

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("#%d - expected type %v, got %v (literal %q)", i, tt.expectedType, tok.Type, tok.Literal)
		}

		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("#%d - expected literal %q, got %q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestNextTokenLegacy(t *testing.T) {
	input := `Diffuse Map A = Texture2D'T_D.T_D'
Specular-Level/2 = 0.5
Flags = 0x1F
Offset = -3
Comment Line = before // trailing note
BlendMode = BLEND_Masked (1)
Units = 5 kg
`

	l := New(input, Legacy())

	tests := []struct {
		expectedType    token.Type
		expectedLiteral string
	}{
		{token.IDENT, "Diffuse Map A"},
		{token.EQUALS, "="},
		{token.IDENT, "Texture2D"},
		{token.SQSTRING, "T_D.T_D"},
		{token.IDENT, "Specular-Level/2"},
		{token.EQUALS, "="},
		{token.DOUBLE, "0.5"},
		{token.IDENT, "Flags"},
		{token.EQUALS, "="},
		{token.INT, "0x1F"},
		{token.IDENT, "Offset"},
		{token.EQUALS, "="},
		{token.INT, "-3"},
		{token.IDENT, "Comment Line"},
		{token.EQUALS, "="},
		{token.IDENT, "before"},
		{token.IDENT, "BlendMode"},
		{token.EQUALS, "="},
		{token.IDENT, "BLEND_Masked"},
		{token.LPAREN, "("},
		{token.INT, "1"},
		{token.RPAREN, ")"},
		{token.IDENT, "Units"},
		{token.EQUALS, "="},
		{token.IDENT, "5 kg"},
		{token.EOF, ""},
	}

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("#%d - expected type %v, got %v (literal %q)", i, tt.expectedType, tok.Type, tok.Literal)
		}

		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("#%d - expected literal %q, got %q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestNumberForms(t *testing.T) {
	tests := []struct {
		input   string
		typ     token.Type
		literal string
	}{
		{"5", token.INT, "5"},
		{"-5", token.INT, "-5"},
		{"+5", token.INT, "+5"},
		{"2.5", token.DOUBLE, "2.5"},
		{".5", token.DOUBLE, ".5"},
		{"5.", token.DOUBLE, "5."},
		{"1e9", token.DOUBLE, "1e9"},
		{"1E+9", token.DOUBLE, "1E+9"},
		{"-2.5e-3", token.DOUBLE, "-2.5e-3"},
		{"0x1F", token.INT, "0x1F"},
		{"0XaB", token.INT, "0XaB"},
		{"0b101", token.INT, "0b101"},
		{"0B11", token.INT, "0B11"},
		{"123abc", token.RAWSTRING, "123abc"},
		{"0x", token.RAWSTRING, "0x"},
		{"0xZZ", token.RAWSTRING, "0xZZ"},
		{"12e", token.RAWSTRING, "12e"},
		{"true", token.TRUE, "true"},
		{"truex", token.IDENT, "truex"},
		{"falsehood", token.IDENT, "falsehood"},
	}

	for _, tt := range tests {
		l := New(tt.input, Modern())
		tok := l.NextToken()

		if tok.Type != tt.typ {
			t.Fatalf("NextToken(%q) type = %v, want %v", tt.input, tok.Type, tt.typ)
		}
		if tok.Literal != tt.literal {
			t.Fatalf("NextToken(%q) literal = %q, want %q", tt.input, tok.Literal, tt.literal)
		}

		if next := l.NextToken(); next.Type != token.EOF {
			t.Fatalf("NextToken(%q) left %v %q behind, want EOF", tt.input, next.Type, next.Literal)
		}
	}
}

// 12e has no exponent digits, so the e must re-read as part of a longer
// word in the legacy dialect where letters extend identifiers.
func TestNumberIdentMunchLegacy(t *testing.T) {
	l := New("12e", Legacy())

	tok := l.NextToken()
	if tok.Type != token.IDENT || tok.Literal != "12e" {
		t.Fatalf("NextToken = %v %q, want identifier \"12e\"", tok.Type, tok.Literal)
	}
}

func TestNumberIdentMunchLegacyMultiSpace(t *testing.T) {
	// Several spaces between the digits and the following word still
	// make one loose identifier, not a number and an identifier.
	l := New("5   kg", Legacy())

	tok := l.NextToken()
	if tok.Type != token.IDENT || tok.Literal != "5   kg" {
		t.Fatalf("NextToken = %v %q, want identifier \"5   kg\"", tok.Type, tok.Literal)
	}
}

func TestTokenPositions(t *testing.T) {
	input := "A = 1\nBee = 'x'\n"

	l := New(input, Modern())

	tests := []struct {
		typ         token.Type
		line, col   int
		offset, end int
	}{
		{token.IDENT, 1, 1, 0, 1},    // A
		{token.EQUALS, 1, 3, 2, 3},   // =
		{token.INT, 1, 5, 4, 5},      // 1
		{token.IDENT, 2, 1, 6, 9},    // Bee
		{token.EQUALS, 2, 5, 10, 11}, // =
		{token.SQSTRING, 2, 7, 12, 15},
		{token.EOF, 3, 1, 16, 16},
	}

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.typ {
			t.Fatalf("#%d - type = %v, want %v", i, tok.Type, tt.typ)
		}
		if tok.Line != tt.line || tok.Col != tt.col {
			t.Fatalf("#%d (%v) - position = line %d, col %d; want line %d, col %d",
				i, tok.Type, tok.Line, tok.Col, tt.line, tt.col)
		}
		if tok.Offset != tt.offset || tok.End != tt.end {
			t.Fatalf("#%d (%v) - extent = [%d,%d), want [%d,%d)",
				i, tok.Type, tok.Offset, tok.End, tt.offset, tt.end)
		}
	}
}

func TestTokenizeUnterminatedString(t *testing.T) {
	_, err := New("Path = Material'/Game/Oops", Modern()).Tokenize()
	if err == nil {
		t.Fatal("Tokenize accepted an unterminated string")
	}

	perr, ok := err.(*ast.ParseError)
	if !ok {
		t.Fatalf("Tokenize returned %T, want *ast.ParseError", err)
	}
	if perr.Kind != ast.LexicalError {
		t.Fatalf("error kind = %v, want lexical error", perr.Kind)
	}
	if perr.Pos.Line != 1 || perr.Pos.Col != 16 {
		t.Fatalf("error position = %v, want the opening quote at line 1, col 16", perr.Pos)
	}
}

func TestTokenizeIllegalCharLegacy(t *testing.T) {
	_, err := New("X = @", Legacy()).Tokenize()
	if err == nil {
		t.Fatal("Tokenize accepted a character outside the legacy alphabet")
	}

	perr, ok := err.(*ast.ParseError)
	if !ok {
		t.Fatalf("Tokenize returned %T, want *ast.ParseError", err)
	}
	if perr.Kind != ast.LexicalError {
		t.Fatalf("error kind = %v, want lexical error", perr.Kind)
	}
}

// The same character is fine in the modern dialect, where it opens a
// bare text run instead.
func TestBareRunModern(t *testing.T) {
	toks, err := New("X = @here, Y = 2", Modern()).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}

	want := []struct {
		typ     token.Type
		literal string
	}{
		{token.IDENT, "X"},
		{token.EQUALS, "="},
		{token.RAWSTRING, "@here"},
		{token.COMMA, ","},
		{token.IDENT, "Y"},
		{token.EQUALS, "="},
		{token.INT, "2"},
		{token.EOF, ""},
	}

	if len(toks) != len(want) {
		t.Fatalf("Tokenize returned %d tokens, want %d", len(toks), len(want))
	}
	for i, tt := range want {
		if toks[i].Type != tt.typ || toks[i].Literal != tt.literal {
			t.Fatalf("#%d - got %v %q, want %v %q", i, toks[i].Type, toks[i].Literal, tt.typ, tt.literal)
		}
	}
}
