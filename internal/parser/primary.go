package parser

import (
	"tether/internal/ast"
	"tether/internal/diag"
	"tether/internal/source"
	"tether/internal/token"
)

func (p *Parser) parsePrimary() (ast.ExprID, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Ident:
		if tok.Text == "async" {
			return p.parseAsyncPrefixed()
		}
		p.advance()
		return p.arenas.Exprs.NewIdent(tok.Span, p.arenas.StringsInterner.Intern(tok.Text)), true

	case token.NumberLit:
		p.advance()
		return p.arenas.Exprs.NewLit(tok.Span, ast.LitNumber, p.arenas.StringsInterner.Intern(tok.Text)), true
	case token.StringLit:
		p.advance()
		return p.arenas.Exprs.NewLit(tok.Span, ast.LitString, p.arenas.StringsInterner.Intern(tok.Text)), true
	case token.RegexLit:
		p.advance()
		return p.arenas.Exprs.NewLit(tok.Span, ast.LitRegex, p.arenas.StringsInterner.Intern(tok.Text)), true
	case token.KwTrue:
		p.advance()
		return p.arenas.Exprs.NewLit(tok.Span, ast.LitTrue, source.NoStringID), true
	case token.KwFalse:
		p.advance()
		return p.arenas.Exprs.NewLit(tok.Span, ast.LitFalse, source.NoStringID), true
	case token.KwNull:
		p.advance()
		return p.arenas.Exprs.NewLit(tok.Span, ast.LitNull, source.NoStringID), true

	case token.KwThis:
		p.advance()
		return p.arenas.Exprs.NewThis(tok.Span), true
	case token.KwSuper:
		p.advance()
		return p.arenas.Exprs.NewSuper(tok.Span), true

	case token.TemplateFull, token.TemplateHead:
		return p.parseTemplateLiteral()

	case token.LParen:
		return p.parseParenOrArrow(nil)
	case token.LBracket:
		return p.parseArrayLiteral()
	case token.LBrace:
		return p.parseObjectLiteral()

	case token.KwFunction:
		return p.parseFunctionExpr()
	case token.KwNew:
		return p.parseNewExpr()

	default:
		p.err(diag.SynExpectExpression, "expected expression, got \""+tok.Text+"\"")
		return ast.NoExprID, false
	}
}

// parseAsyncPrefixed — `async` контекстен: это может быть стрелка, функция
// или просто идентификатор (в т.ч. вызов async(...)).
func (p *Parser) parseAsyncPrefixed() (ast.ExprID, bool) {
	asyncTok := p.advance()
	switch p.lx.Peek().Kind {
	case token.LParen:
		return p.parseParenOrArrow(&asyncTok)
	case token.Ident:
		// async x => body
		name := p.advance()
		if _, ok := p.expect(token.Arrow, diag.SynUnexpectedToken, "expected '=>' after async arrow parameter"); !ok {
			return ast.NoExprID, false
		}
		param := p.arenas.NewParam(ast.Param{
			Name:     p.arenas.StringsInterner.Intern(name.Text),
			NameSpan: name.Span,
			Span:     name.Span,
		})
		return p.parseArrowBody(asyncTok.Span, []ast.ParamID{param}, true)
	case token.KwFunction:
		return p.parseFunctionExpr()
	default:
		return p.arenas.Exprs.NewIdent(asyncTok.Span, p.arenas.StringsInterner.Intern(asyncTok.Text)), true
	}
}

// parseParenOrArrow разбирает '(' ... ')' и решает постфактум, что это было:
// параметры стрелки (за ')' следует '=>'), скобочная группа или, при
// asyncTok != nil, вызов async(...). Скобки в дереве не материализуются.
func (p *Parser) parseParenOrArrow(asyncTok *token.Token) (ast.ExprID, bool) {
	open := p.advance() // (
	start := open.Span
	if asyncTok != nil {
		start = asyncTok.Span
	}

	if p.eat(token.RParen) {
		if _, ok := p.expect(token.Arrow, diag.SynUnexpectedToken, "expected '=>' after empty parameter list"); !ok {
			return ast.NoExprID, false
		}
		return p.parseArrowBody(start, nil, asyncTok != nil)
	}

	var elems []ast.ExprID
	for {
		if p.at(token.Ellipsis) {
			// rest-параметр возможен только у стрелки
			return p.finishArrowParams(start, elems, asyncTok != nil)
		}
		elem, ok := p.parseAssignExpr()
		if !ok {
			return ast.NoExprID, false
		}
		if p.at(token.Colon) {
			// аннотация типа возможна только у параметра стрелки
			elems = append(elems, elem)
			return p.finishAnnotatedArrowParams(start, elems, asyncTok != nil)
		}
		elems = append(elems, elem)
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'"); !ok {
		return ast.NoExprID, false
	}

	if p.eat(token.Arrow) {
		params, ok := p.exprsToParams(elems)
		if !ok {
			return ast.NoExprID, false
		}
		return p.parseArrowBody(start, params, asyncTok != nil)
	}

	if asyncTok != nil {
		// это был вызов async(...)
		callee := p.arenas.Exprs.NewIdent(asyncTok.Span, p.arenas.StringsInterner.Intern(asyncTok.Text))
		sp := asyncTok.Span.Cover(p.lastSpan)
		return p.arenas.Exprs.NewCall(sp, callee, elems, false), true
	}

	if len(elems) != 1 {
		p.err(diag.SynUnexpectedToken, "comma expression is not supported")
		return ast.NoExprID, false
	}
	// скобки прозрачны
	return elems[0], true
}

// finishAnnotatedArrowParams — мы встретили ':' внутри скобок: всё, что
// распарсили как выражения, переводится в параметры, остальное парсится
// сразу как параметры.
func (p *Parser) finishAnnotatedArrowParams(start source.Span, elems []ast.ExprID, async bool) (ast.ExprID, bool) {
	params, ok := p.exprsToParams(elems)
	if !ok {
		return ast.NoExprID, false
	}
	// ':' принадлежит последнему элементу
	last := p.arenas.Param(params[len(params)-1])
	p.advance() // :
	typ, okT := p.parseType()
	if !okT {
		return ast.NoExprID, false
	}
	last.Type = typ
	if p.eat(token.Assign) {
		def, ok := p.parseAssignExpr()
		if !ok {
			return ast.NoExprID, false
		}
		last.Default = def
	}
	if p.eat(token.Comma) && !p.at(token.RParen) {
		rest, ok := p.parseParamListTail()
		if !ok {
			return ast.NoExprID, false
		}
		params = append(params, rest...)
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after parameters"); !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.Arrow, diag.SynUnexpectedToken, "expected '=>' after parameter list"); !ok {
		return ast.NoExprID, false
	}
	return p.parseArrowBody(start, params, async)
}

// finishArrowParams — встретили '...' в скобках: это стрелка.
func (p *Parser) finishArrowParams(start source.Span, elems []ast.ExprID, async bool) (ast.ExprID, bool) {
	params, ok := p.exprsToParams(elems)
	if !ok {
		return ast.NoExprID, false
	}
	rest, ok := p.parseParamListTail()
	if !ok {
		return ast.NoExprID, false
	}
	params = append(params, rest...)
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after parameters"); !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.Arrow, diag.SynUnexpectedToken, "expected '=>' after parameter list"); !ok {
		return ast.NoExprID, false
	}
	return p.parseArrowBody(start, params, async)
}

func (p *Parser) parseArrowBody(start source.Span, params []ast.ParamID, async bool) (ast.ExprID, bool) {
	data := ast.ExprArrowData{Params: params, Async: async}
	if p.at(token.LBrace) {
		block, ok := p.parseBlock()
		if !ok {
			return ast.NoExprID, false
		}
		data.BodyBlock = block
	} else {
		body, ok := p.parseAssignExpr()
		if !ok {
			return ast.NoExprID, false
		}
		data.Body = body
	}
	return p.arenas.Exprs.NewArrow(start.Cover(p.lastSpan), data), true
}

func (p *Parser) parseTemplateLiteral() (ast.ExprID, bool) {
	head := p.advance()
	if head.Kind == token.TemplateFull {
		return p.arenas.Exprs.NewTemplate(head.Span, nil), true
	}

	var subs []ast.ExprID
	for {
		sub, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		subs = append(subs, sub)
		if !p.at(token.RBrace) {
			p.err(diag.SynExpectTemplatePart, "expected '}' to continue template literal")
			return ast.NoExprID, false
		}
		part := p.lx.ReScanTemplate()
		p.lastSpan = part.Span
		if part.Kind == token.TemplateTail {
			break
		}
		if part.Kind != token.TemplateMiddle {
			p.report(diag.SynExpectTemplatePart, diag.SevError, part.Span, "unterminated template literal")
			return ast.NoExprID, false
		}
	}
	return p.arenas.Exprs.NewTemplate(head.Span.Cover(p.lastSpan), subs), true
}

func (p *Parser) parseArrayLiteral() (ast.ExprID, bool) {
	open := p.advance() // [
	var elems []ast.ExprID
	for !p.atOr(token.RBracket, token.EOF) {
		if p.at(token.Comma) {
			// дырка в массиве
			p.advance()
			elems = append(elems, ast.NoExprID)
			continue
		}
		var elem ast.ExprID
		if p.at(token.Ellipsis) {
			tok := p.advance()
			operand, ok := p.parseAssignExpr()
			if !ok {
				return ast.NoExprID, false
			}
			elem = p.arenas.Exprs.NewSpread(tok.Span.Cover(p.arenas.Exprs.Span(operand)), operand)
		} else {
			e, ok := p.parseAssignExpr()
			if !ok {
				return ast.NoExprID, false
			}
			elem = e
		}
		elems = append(elems, elem)
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' to close array literal"); !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewArray(open.Span.Cover(p.lastSpan), elems), true
}

func (p *Parser) parseObjectLiteral() (ast.ExprID, bool) {
	open := p.advance() // {
	var props []ast.ObjectProp
	for !p.atOr(token.RBrace, token.EOF) {
		prop, ok := p.parseObjectProp()
		if !ok {
			return ast.NoExprID, false
		}
		props = append(props, prop)
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close object literal"); !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewObject(open.Span.Cover(p.lastSpan), props), true
}

func (p *Parser) parseObjectProp() (ast.ObjectProp, bool) {
	var prop ast.ObjectProp

	if p.at(token.Ellipsis) {
		tok := p.advance()
		operand, ok := p.parseAssignExpr()
		if !ok {
			return prop, false
		}
		prop.Kind = ast.PropSpread
		prop.KeySpan = tok.Span
		prop.Value = operand
		return prop, true
	}

	// вычисляемый ключ: значение важно, сам ключ — нет
	if p.eat(token.LBracket) {
		if _, ok := p.parseAssignExpr(); !ok {
			return prop, false
		}
		if _, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' after computed key"); !ok {
			return prop, false
		}
		if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after computed key"); !ok {
			return prop, false
		}
		value, ok := p.parseAssignExpr()
		if !ok {
			return prop, false
		}
		prop.Kind = ast.PropInit
		prop.Value = value
		return prop, true
	}

	keyTok := p.lx.Peek()
	switch {
	case keyTok.Kind == token.Ident || keyTok.IsKeyword():
		p.advance()
	case keyTok.Kind == token.StringLit || keyTok.Kind == token.NumberLit:
		p.advance()
	default:
		p.err(diag.SynUnexpectedToken, "expected property key, got \""+keyTok.Text+"\"")
		return prop, false
	}
	prop.Key = p.arenas.StringsInterner.Intern(keyTok.Text)
	prop.KeySpan = keyTok.Span

	switch p.lx.Peek().Kind {
	case token.Colon:
		p.advance()
		value, ok := p.parseAssignExpr()
		if !ok {
			return prop, false
		}
		prop.Kind = ast.PropInit
		prop.Value = value
	case token.LParen:
		// метод объектного литерала: значение — обычная функция
		params, this, ok := p.parseParams()
		if !ok {
			return prop, false
		}
		if p.eat(token.Colon) {
			if _, ok := p.parseType(); !ok {
				return prop, false
			}
		}
		body, ok := p.parseBlock()
		if !ok {
			return prop, false
		}
		prop.Kind = ast.PropMethod
		prop.Value = p.arenas.Exprs.NewFunction(keyTok.Span.Cover(p.lastSpan), ast.ExprFunctionData{
			Name:         prop.Key,
			Params:       params,
			Body:         body,
			HasThisParam: this.present,
			ThisTypeVoid: this.typeVoid,
		})
	case token.Assign:
		// cover grammar: `{ a = 1 }` осмыслен только как цель деструктуризации
		p.advance()
		def, ok := p.parseAssignExpr()
		if !ok {
			return prop, false
		}
		prop.Kind = ast.PropShorthand
		prop.Value = def
	default:
		prop.Kind = ast.PropShorthand
	}
	return prop, true
}

func (p *Parser) parseFunctionExpr() (ast.ExprID, bool) {
	kw := p.advance() // function
	var data ast.ExprFunctionData
	if p.at(token.Ident) {
		name := p.advance()
		data.Name = p.arenas.StringsInterner.Intern(name.Text)
	}
	params, this, ok := p.parseParams()
	if !ok {
		return ast.NoExprID, false
	}
	data.Params = params
	data.HasThisParam = this.present
	data.ThisTypeVoid = this.typeVoid
	if p.eat(token.Colon) {
		if _, ok := p.parseType(); !ok {
			return ast.NoExprID, false
		}
	}
	body, ok := p.parseBlock()
	if !ok {
		return ast.NoExprID, false
	}
	data.Body = body
	return p.arenas.Exprs.NewFunction(kw.Span.Cover(p.lastSpan), data), true
}

func (p *Parser) parseNewExpr() (ast.ExprID, bool) {
	kw := p.advance() // new
	callee, ok := p.parseCallChain(false)
	if !ok {
		return ast.NoExprID, false
	}
	// new Map<string, number>(): у конструктора '<' однозначно открывает
	// типовые аргументы
	p.skipTypeParams()
	var args []ast.ExprID
	if p.at(token.LParen) {
		a, ok := p.parseArgs()
		if !ok {
			return ast.NoExprID, false
		}
		args = a
	}
	return p.arenas.Exprs.NewNew(kw.Span.Cover(p.lastSpan), callee, args), true
}
