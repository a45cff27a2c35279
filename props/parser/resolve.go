package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/uetools/propscan/props/ast"
	"github.com/uetools/propscan/props/lexer"
	"github.com/uetools/propscan/props/token"
)

// parseConst resolves the constant at the cursor. Under dialects with
// bare strings the resolved literal may turn out to be only the head of
// a longer unescaped text run; in that case the run swallows it and the
// whole stretch of source becomes a single unquoted constant.
func (p *parser) parseConst() (*ast.Const, *ast.ParseError) {
	start := p.cur()

	c, warn, err := p.resolveConst(start)
	if err != nil {
		return nil, err
	}

	if p.opts.Dialect.BareStrings {
		if merged := p.extendBareRun(start); merged != nil {
			// The literal dissolved into plain text, so a clamping
			// warning for it would be misleading.
			return merged, nil
		}
	}

	if warn != nil {
		p.warns = append(p.warns, *warn)
	}
	return c, nil
}

// resolveConst turns the token(s) at the cursor into a constant and
// advances past them. warn is non-nil when a numeric literal had to be
// clamped into range.
func (p *parser) resolveConst(tok token.Token) (*ast.Const, *ast.Warning, *ast.ParseError) {
	switch tok.Type {
	case token.INT:
		c, warn := resolveInt(tok)
		p.advance()
		return c, warn, nil
	case token.DOUBLE:
		c, warn := resolveFloat(tok)
		p.advance()
		return c, warn, nil
	case token.TRUE, token.FALSE:
		p.advance()
		return &ast.Const{Kind: ast.BoolLit, Raw: tok.Literal, Bool: tok.Type == token.TRUE}, nil, nil
	case token.SQSTRING:
		p.advance()
		return &ast.Const{Kind: ast.SingleQuotedLit, Raw: p.slice(tok.Offset, tok.End), Str: tok.Literal}, nil, nil
	case token.DQSTRING:
		p.advance()
		return &ast.Const{Kind: ast.DoubleQuotedLit, Raw: p.slice(tok.Offset, tok.End), Str: tok.Literal}, nil, nil
	case token.RAWSTRING:
		p.advance()
		return &ast.Const{Kind: ast.UnquotedLit, Raw: p.slice(tok.Offset, tok.End), Str: tok.Literal}, nil, nil
	case token.IDENT:
		if p.peek(1).Type == token.LPAREN {
			c, warn, err := p.resolveCall(tok)
			if err == nil {
				return c, warn, nil
			}
			if !p.opts.Dialect.BareStrings {
				return nil, nil, err
			}
			// Modern dumps fall back to bare text; the caller widens
			// the run over the parenthesis.
		}
		p.advance()
		return &ast.Const{Kind: ast.UnquotedLit, Raw: tok.Literal, Str: tok.Literal}, nil, nil
	default:
		return nil, nil, p.syntaxErrorAt(tok, "expected a constant, found %s", describe(tok))
	}
}

// resolveCall matches the call form UModel uses for enum values, e.g.
// `BlendMode = BLEND_Masked (1)`. The shape is checked before anything
// is consumed so a failed match leaves the cursor untouched.
func (p *parser) resolveCall(callee token.Token) (*ast.Const, *ast.Warning, *ast.ParseError) {
	argTok := p.peek(2)
	switch argTok.Type {
	case token.INT, token.DOUBLE, token.TRUE, token.FALSE:
	default:
		return nil, nil, p.syntaxErrorAt(argTok, "expected a literal call argument, found %s", describe(argTok))
	}

	closing := p.peek(3)
	if closing.Type != token.RPAREN {
		return nil, nil, p.syntaxErrorAt(closing, "expected ')' after call argument, found %s", describe(closing))
	}

	var arg *ast.Const
	var warn *ast.Warning
	switch argTok.Type {
	case token.INT:
		arg, warn = resolveInt(argTok)
	case token.DOUBLE:
		arg, warn = resolveFloat(argTok)
	default:
		arg = &ast.Const{Kind: ast.BoolLit, Raw: argTok.Literal, Bool: argTok.Type == token.TRUE}
	}

	p.pos += 4

	return &ast.Const{
		Kind: ast.CallLit,
		Raw:  p.slice(callee.Offset, closing.End),
		Call: &ast.Call{Callee: callee.Literal, Arg: arg},
	}, warn, nil
}

// extendBareRun widens the constant that started at `start` into an
// unescaped text run when more tokens sit inside the same run. In the
// modern dialect `Diffuse Map A` lexes as three tokens with nothing
// separating them, so the whole stretch is one unquoted constant. The
// run never crosses a comma, closing brace or line break, and text that
// begins a new definition stays a definition.
func (p *parser) extendBareRun(start token.Token) *ast.Const {
	end := lexer.RawRunEnd(p.src, start.Offset, p.opts.Dialect)

	if p.cur().Offset >= end {
		return nil
	}
	if p.defStartsAt(p.pos) {
		return nil
	}

	for p.cur().Type != token.EOF && p.cur().Offset < end {
		p.advance()
	}

	raw := p.slice(start.Offset, end)
	return &ast.Const{Kind: ast.UnquotedLit, Raw: raw, Str: strings.TrimRight(raw, " \t")}
}

// defStartsAt reports whether the token at index i begins a definition:
// an identifier followed by '=' or by a bracketed index and '='.
func (p *parser) defStartsAt(i int) bool {
	if p.at(i).Type != token.IDENT {
		return false
	}

	switch p.at(i + 1).Type {
	case token.EQUALS:
		return true
	case token.LBRACKET:
		return p.at(i+2).Type == token.INT &&
			p.at(i+3).Type == token.RBRACKET &&
			p.at(i+4).Type == token.EQUALS
	default:
		return false
	}
}

func resolveInt(tok token.Token) (*ast.Const, *ast.Warning) {
	lit := tok.Literal

	neg := strings.HasPrefix(lit, "-")
	body := strings.TrimPrefix(strings.TrimPrefix(lit, "-"), "+")

	base := 10
	if len(body) > 2 {
		switch body[:2] {
		case "0x", "0X":
			base, body = 16, body[2:]
		case "0b", "0B":
			base, body = 2, body[2:]
		}
	}
	if neg {
		body = "-" + body
	}

	n, err := strconv.ParseInt(body, base, 64)
	if err == nil {
		return &ast.Const{Kind: ast.IntLit, Raw: lit, Int: n}, nil
	}

	// The lexer validated the digits, so the only failure left is range.
	// Dumps with garbage counters still parse; the value clamps and the
	// document records a warning.
	n = math.MaxInt64
	if neg {
		n = math.MinInt64
	}

	return &ast.Const{Kind: ast.IntLit, Raw: lit, Int: n, Overflow: true}, &ast.Warning{
		Pos:     tokenPos(tok),
		Literal: lit,
		Msg:     "integer literal out of range, clamped",
	}
}

func resolveFloat(tok token.Token) (*ast.Const, *ast.Warning) {
	lit := tok.Literal

	f, err := strconv.ParseFloat(lit, 64)
	if err == nil {
		return &ast.Const{Kind: ast.FloatLit, Raw: lit, Float: f}, nil
	}

	// Out of range: infinities clamp to the largest finite value,
	// underflows keep the rounded result.
	if math.IsInf(f, 1) {
		f = math.MaxFloat64
	} else if math.IsInf(f, -1) {
		f = -math.MaxFloat64
	}

	return &ast.Const{Kind: ast.FloatLit, Raw: lit, Float: f, Overflow: true}, &ast.Warning{
		Pos:     tokenPos(tok),
		Literal: lit,
		Msg:     "float literal out of range, clamped",
	}
}
