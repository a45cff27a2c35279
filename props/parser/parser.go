// Package parser builds the definition tree of package ast from textual
// property dumps. The grammar is small but ambiguous at every opening
// brace, which may begin a nested block, a constant list or an empty
// list; the parser pre-lexes the whole input so it can look arbitrarily
// far ahead before committing to one reading.
package parser

import (
	"fmt"
	"strconv"

	"github.com/uetools/propscan/props/ast"
	"github.com/uetools/propscan/props/lexer"
	"github.com/uetools/propscan/props/token"
)

// DefaultMaxDepth bounds block nesting. Real dumps stay in single
// digits; the bound exists so hostile input cannot exhaust the stack.
const DefaultMaxDepth = 200

type Options struct {
	Dialect lexer.Dialect

	// MaxDepth overrides DefaultMaxDepth when positive.
	MaxDepth int
}

// Parse parses a property dump under the given dialect.
func Parse(input string, dialect lexer.Dialect) (*ast.Document, error) {
	return ParseWith(input, Options{Dialect: dialect})
}

// ParseWith parses a property dump with explicit options. The returned
// document is complete or the error is non-nil; there is no partial
// recovery past the first lexical or syntax problem.
func ParseWith(input string, opts Options) (*ast.Document, error) {
	if opts.Dialect.IsIdentRune == nil {
		opts.Dialect = lexer.Modern()
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}

	l := lexer.New(input, opts.Dialect)
	toks, err := l.Tokenize()
	if err != nil {
		return nil, err
	}

	p := &parser{src: l.Input(), toks: toks, opts: opts}

	doc, perr := p.parseDocument()
	if perr != nil {
		return nil, perr
	}
	return doc, nil
}

type parser struct {
	src   []rune
	toks  []token.Token
	pos   int
	opts  Options
	warns []ast.Warning
}

// at returns the token at index i, clamped to the trailing EOF token.
func (p *parser) at(i int) token.Token {
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

func (p *parser) cur() token.Token {
	return p.at(p.pos)
}

func (p *parser) peek(n int) token.Token {
	return p.at(p.pos + n)
}

func (p *parser) advance() {
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
}

func (p *parser) slice(start, end int) string {
	return string(p.src[start:end])
}

func tokenPos(tok token.Token) ast.Pos {
	return ast.Pos{Offset: tok.Offset, Line: tok.Line, Col: tok.Col}
}

func describe(tok token.Token) string {
	switch tok.Type {
	case token.IDENT, token.INT, token.DOUBLE, token.RAWSTRING:
		return fmt.Sprintf("%s %q", tok.Type, tok.Literal)
	default:
		return tok.Type.String()
	}
}

func (p *parser) syntaxErrorAt(tok token.Token, format string, args ...any) *ast.ParseError {
	return &ast.ParseError{Kind: ast.SyntaxError, Pos: tokenPos(tok), Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) internalErrorAt(tok token.Token, msg string) *ast.ParseError {
	return &ast.ParseError{Kind: ast.InternalError, Pos: tokenPos(tok), Msg: msg}
}

func (p *parser) parseDocument() (*ast.Document, *ast.ParseError) {
	doc := &ast.Document{}

	for p.cur().Type != token.EOF {
		def, err := p.parseDefinition(0)
		if err != nil {
			return nil, err
		}
		doc.Defs = append(doc.Defs, def)
	}

	doc.Warnings = p.warns
	return doc, nil
}

// parseDefinition parses `Name = value` with an optional array qualifier
// and an optional trailing comma.
func (p *parser) parseDefinition(depth int) (*ast.Definition, *ast.ParseError) {
	name := p.cur()
	if name.Type != token.IDENT {
		return nil, p.syntaxErrorAt(name, "expected a definition name, found %s", describe(name))
	}
	p.advance()

	def := &ast.Definition{Name: name.Literal}

	if p.cur().Type == token.LBRACKET {
		p.advance()

		idxTok := p.cur()
		if idxTok.Type != token.INT {
			return nil, p.syntaxErrorAt(idxTok, "expected an array index, found %s", describe(idxTok))
		}
		idx, err := p.parseArrayIndex(idxTok)
		if err != nil {
			return nil, err
		}
		p.advance()

		if closing := p.cur(); closing.Type != token.RBRACKET {
			return nil, p.syntaxErrorAt(closing, "expected ']', found %s", describe(closing))
		}
		p.advance()

		def.Index, def.Indexed = idx, true
	}

	if eq := p.cur(); eq.Type != token.EQUALS {
		return nil, p.syntaxErrorAt(eq, "expected '=' after %q, found %s", def.Name, describe(eq))
	}
	p.advance()

	val, err := p.parseValue(depth)
	if err != nil {
		return nil, err
	}
	def.Value = val

	if p.cur().Type == token.COMMA {
		p.advance()
	}

	return def, nil
}

// parseArrayIndex accepts only plain decimal indexes: hex, binary and
// signed forms lex as INT too but never appear between brackets.
func (p *parser) parseArrayIndex(tok token.Token) (int, *ast.ParseError) {
	lit := tok.Literal
	if len(lit) == 0 || lit[0] == '-' || lit[0] == '+' ||
		(len(lit) > 1 && lit[0] == '0' && (lit[1] == 'x' || lit[1] == 'X' || lit[1] == 'b' || lit[1] == 'B')) {
		return 0, p.syntaxErrorAt(tok, "array index must be a non-negative decimal integer, found %q", lit)
	}

	n, err := strconv.Atoi(lit)
	if err != nil {
		return 0, p.syntaxErrorAt(tok, "array index %q out of range", lit)
	}
	return n, nil
}

func (p *parser) parseValue(depth int) (ast.Value, *ast.ParseError) {
	tok := p.cur()

	switch tok.Type {
	case token.LBRACE:
		return p.parseBraced(depth)
	case token.IDENT:
		if p.peek(1).Type == token.SQSTRING {
			return p.parsePath()
		}
		return p.parseConst()
	case token.INT, token.DOUBLE, token.TRUE, token.FALSE,
		token.SQSTRING, token.DQSTRING, token.RAWSTRING:
		return p.parseConst()
	default:
		return nil, p.syntaxErrorAt(tok, "expected a value, found %s", describe(tok))
	}
}

func (p *parser) parsePath() (*ast.Path, *ast.ParseError) {
	class := p.cur()
	p.advance()
	target := p.cur()
	p.advance()

	return &ast.Path{Class: class.Literal, Target: target.Literal}, nil
}

type bracedForm uint8

const (
	bracedEmpty bracedForm = iota
	bracedBlock
	bracedConstList
	bracedBad
)

// classifyBraced looks past the opening brace to decide which of the
// three brace forms applies, without consuming anything. Commas before
// the first real token are transparent so `{,,}` classifies as empty.
func (p *parser) classifyBraced() (bracedForm, token.Token) {
	i := p.pos + 1
	for p.at(i).Type == token.COMMA {
		i++
	}

	tok := p.at(i)
	switch tok.Type {
	case token.RBRACE:
		return bracedEmpty, tok
	case token.IDENT:
		if next := p.at(i + 1); next.Type == token.EQUALS || next.Type == token.LBRACKET {
			return bracedBlock, tok
		}
		return bracedConstList, tok
	case token.INT, token.DOUBLE, token.TRUE, token.FALSE,
		token.SQSTRING, token.DQSTRING, token.RAWSTRING:
		return bracedConstList, tok
	default:
		return bracedBad, tok
	}
}

func (p *parser) parseBraced(depth int) (ast.Value, *ast.ParseError) {
	open := p.cur()

	if depth+1 > p.opts.MaxDepth {
		return nil, p.syntaxErrorAt(open, "block nesting exceeds %d levels", p.opts.MaxDepth)
	}

	form, first := p.classifyBraced()
	switch form {
	case bracedEmpty:
		return p.parseEmptyList()
	case bracedBlock:
		return p.parseBlock(open, depth+1)
	case bracedConstList:
		return p.parseConstList(open)
	case bracedBad:
		if first.Type == token.EOF {
			return nil, p.syntaxErrorAt(open, "unclosed '{'")
		}
		return nil, p.syntaxErrorAt(first, "expected a definition or constant after '{', found %s", describe(first))
	default:
		return nil, p.internalErrorAt(open, "brace form classification failed")
	}
}

func (p *parser) parseEmptyList() (*ast.EmptyList, *ast.ParseError) {
	p.advance() // {

	for p.cur().Type == token.COMMA {
		p.advance()
	}

	if p.cur().Type != token.RBRACE {
		return nil, p.internalErrorAt(p.cur(), "empty list classification out of sync")
	}
	p.advance()

	return &ast.EmptyList{}, nil
}

func (p *parser) parseBlock(open token.Token, depth int) (*ast.Block, *ast.ParseError) {
	p.advance() // {
	block := &ast.Block{}

	for {
		switch p.cur().Type {
		case token.RBRACE:
			p.advance()
			return block, nil
		case token.EOF:
			return nil, p.syntaxErrorAt(open, "unclosed '{'")
		}

		def, err := p.parseDefinition(depth)
		if err != nil {
			return nil, err
		}
		block.Defs = append(block.Defs, def)
	}
}

func (p *parser) parseConstList(open token.Token) (*ast.ConstList, *ast.ParseError) {
	p.advance() // {
	list := &ast.ConstList{}

	for {
		if p.cur().Type == token.EOF {
			return nil, p.syntaxErrorAt(open, "unclosed '{'")
		}

		c, err := p.parseConst()
		if err != nil {
			return nil, err
		}
		list.Items = append(list.Items, c)

		switch p.cur().Type {
		case token.RBRACE:
			p.advance()
			return list, nil
		case token.COMMA:
			p.advance()
			// Stacked commas are only tolerated before the closing brace.
			if p.cur().Type == token.COMMA || p.cur().Type == token.RBRACE {
				for p.cur().Type == token.COMMA {
					p.advance()
				}
				if closing := p.cur(); closing.Type != token.RBRACE {
					return nil, p.syntaxErrorAt(closing, "expected '}' after trailing commas, found %s", describe(closing))
				}
				p.advance()
				return list, nil
			}
		case token.EOF:
			return nil, p.syntaxErrorAt(open, "unclosed '{'")
		default:
			return nil, p.syntaxErrorAt(p.cur(), "expected ',' or '}' in list, found %s", describe(p.cur()))
		}
	}
}
