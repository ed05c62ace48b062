package parser

import (
	"tether/internal/ast"
	"tether/internal/diag"
	"tether/internal/token"
)

// thisParam описывает явный параметр this в начале списка.
type thisParam struct {
	present  bool
	typeVoid bool
}

// parseParams — '(' [this [: type],] param {, param} ')'.
func (p *Parser) parseParams() ([]ast.ParamID, thisParam, bool) {
	var this thisParam
	if _, ok := p.expect(token.LParen, diag.SynUnclosedParen, "expected '(' to open parameter list"); !ok {
		return nil, this, false
	}

	// `this` допустим только первым параметром. Лексер отдаёт его
	// keyword-токеном, не Ident.
	if p.at(token.KwThis) {
		p.advance()
		this.present = true
		if p.eat(token.Colon) {
			typ, ok := p.parseType()
			if !ok {
				return nil, this, false
			}
			this.typeVoid = p.typeIsVoid(typ)
		}
		if !p.eat(token.Comma) && !p.at(token.RParen) {
			p.err(diag.SynUnexpectedToken, "expected ',' or ')' after this parameter")
			return nil, this, false
		}
	}

	params, ok := p.parseParamListTail()
	if !ok {
		return nil, this, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close parameter list"); !ok {
		return nil, this, false
	}
	return params, this, true
}

// parseParamListTail — параметры до закрывающей скобки, скобку не ест.
func (p *Parser) parseParamListTail() ([]ast.ParamID, bool) {
	var params []ast.ParamID
	for !p.atOr(token.RParen, token.EOF) {
		param, ok := p.parseParam()
		if !ok {
			return nil, false
		}
		params = append(params, param)
		if !p.eat(token.Comma) {
			break
		}
	}
	return params, true
}

func (p *Parser) parseParam() (ast.ParamID, bool) {
	var param ast.Param
	start := p.lx.Peek().Span

	if p.eat(token.Ellipsis) {
		param.Rest = true
	}

	switch p.lx.Peek().Kind {
	case token.LBrace, token.LBracket:
		pat, ok := p.parsePattern()
		if !ok {
			return ast.NoParamID, false
		}
		param.Pat = pat
	case token.Ident:
		tok := p.advance()
		param.Name = p.arenas.StringsInterner.Intern(tok.Text)
		param.NameSpan = tok.Span
	default:
		p.err(diag.SynExpectIdentifier, "expected parameter name")
		return ast.NoParamID, false
	}

	p.eat(token.Question) // опциональный параметр
	if p.eat(token.Colon) {
		typ, ok := p.parseType()
		if !ok {
			return ast.NoParamID, false
		}
		param.Type = typ
	}
	if p.eat(token.Assign) {
		def, ok := p.parseAssignExpr()
		if !ok {
			return ast.NoParamID, false
		}
		param.Default = def
	}
	param.Span = start.Cover(p.lastSpan)
	return p.arenas.NewParam(param), true
}

func (p *Parser) typeIsVoid(id ast.TypeID) bool {
	t := p.arenas.Type(id)
	if t == nil {
		return false
	}
	return t.IsVoid(p.arenas.StringsInterner)
}
