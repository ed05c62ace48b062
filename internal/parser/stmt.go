package parser

import (
	"tether/internal/ast"
	"tether/internal/diag"
	"tether/internal/source"
	"tether/internal/token"
)

// parseStmt выбирает по первому токену нужный распознаватель.
func (p *Parser) parseStmt() (ast.StmtID, bool) {
	switch p.lx.Peek().Kind {
	case token.KwConst, token.KwLet, token.KwVar:
		return p.parseVarDecl()
	case token.KwFunction:
		return p.parseFuncDecl()
	case token.KwClass:
		return p.parseClassDecl()
	case token.KwInterface:
		return p.parseInterfaceDecl()
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwDo:
		return p.parseDoWhile()
	case token.KwFor:
		return p.parseFor()
	case token.KwSwitch:
		return p.parseSwitch()
	case token.KwReturn:
		return p.parseReturn()
	case token.KwBreak:
		tok := p.advance()
		p.semi()
		return p.arenas.Stmts.NewBreak(tok.Span), true
	case token.KwContinue:
		tok := p.advance()
		p.semi()
		return p.arenas.Stmts.NewContinue(tok.Span), true
	case token.KwThrow:
		return p.parseThrow()
	case token.KwTry:
		return p.parseTry()
	case token.LBrace:
		return p.parseBlock()
	case token.Semicolon:
		tok := p.advance()
		return p.arenas.Stmts.NewEmpty(tok.Span), true
	case token.KwExport:
		// модификатор export прозрачен для анализа
		p.advance()
		return p.parseStmt()
	case token.Ident:
		// type alias: `type X = ...`
		if p.atIdent("type") {
			return p.parseTypeAlias()
		}
		return p.parseExprStmt()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseExprStmt() (ast.StmtID, bool) {
	start := p.lx.Peek().Span
	expr, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	p.semi()
	sp := start.Cover(p.arenas.Exprs.Span(expr))
	return p.arenas.Stmts.NewExprStmt(sp, expr), true
}

func (p *Parser) parseVarDecl() (ast.StmtID, bool) {
	kw := p.advance()
	var mode ast.DeclMode
	switch kw.Kind {
	case token.KwConst:
		mode = ast.DeclConst
	case token.KwLet:
		mode = ast.DeclLet
	default:
		mode = ast.DeclVar
	}

	var decls []ast.Declarator
	for {
		d, ok := p.parseDeclarator()
		if !ok {
			return ast.NoStmtID, false
		}
		decls = append(decls, d)
		if !p.eat(token.Comma) {
			break
		}
	}
	p.semi()
	return p.arenas.Stmts.NewVarDecl(kw.Span.Cover(p.lastSpan), mode, decls), true
}

func (p *Parser) parseDeclarator() (ast.Declarator, bool) {
	var d ast.Declarator
	switch p.lx.Peek().Kind {
	case token.LBrace, token.LBracket:
		pat, ok := p.parsePattern()
		if !ok {
			return d, false
		}
		d.Pat = pat
	default:
		name, sp, ok := p.parseIdent()
		if !ok {
			return d, false
		}
		d.Name, d.NameSpan = name, sp
	}
	if p.eat(token.Colon) {
		typ, ok := p.parseType()
		if !ok {
			return d, false
		}
		d.Type = typ
	}
	if p.eat(token.Assign) {
		init, ok := p.parseAssignExpr()
		if !ok {
			return d, false
		}
		d.Init = init
	}
	return d, true
}

func (p *Parser) parseFuncDecl() (ast.StmtID, bool) {
	kw := p.advance() // function
	name, nameSpan, ok := p.parseIdent()
	if !ok {
		return ast.NoStmtID, false
	}
	params, _, ok := p.parseParams()
	if !ok {
		return ast.NoStmtID, false
	}
	if p.eat(token.Colon) {
		if _, ok := p.parseType(); !ok {
			return ast.NoStmtID, false
		}
	}
	body, ok := p.parseBlock()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewFunc(kw.Span.Cover(p.lastSpan), ast.StmtFuncData{
		Name:     name,
		NameSpan: nameSpan,
		Params:   params,
		Body:     body,
	}), true
}

func (p *Parser) parseReturn() (ast.StmtID, bool) {
	kw := p.advance()
	var value ast.ExprID
	if !p.atOr(token.Semicolon, token.RBrace, token.EOF) {
		v, ok := p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		value = v
	}
	p.semi()
	return p.arenas.Stmts.NewReturn(kw.Span.Cover(p.lastSpan), value), true
}

func (p *Parser) parseIf() (ast.StmtID, bool) {
	kw := p.advance()
	if _, ok := p.expect(token.LParen, diag.SynUnclosedParen, "expected '(' after 'if'"); !ok {
		return ast.NoStmtID, false
	}
	cond, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after condition"); !ok {
		return ast.NoStmtID, false
	}
	then, ok := p.parseStmt()
	if !ok {
		return ast.NoStmtID, false
	}
	var els ast.StmtID
	if p.eat(token.KwElse) {
		e, ok := p.parseStmt()
		if !ok {
			return ast.NoStmtID, false
		}
		els = e
	}
	return p.arenas.Stmts.NewIf(kw.Span.Cover(p.lastSpan), cond, then, els), true
}

func (p *Parser) parseWhile() (ast.StmtID, bool) {
	kw := p.advance()
	if _, ok := p.expect(token.LParen, diag.SynUnclosedParen, "expected '(' after 'while'"); !ok {
		return ast.NoStmtID, false
	}
	cond, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after condition"); !ok {
		return ast.NoStmtID, false
	}
	body, ok := p.parseStmt()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewWhile(kw.Span.Cover(p.lastSpan), cond, body), true
}

func (p *Parser) parseDoWhile() (ast.StmtID, bool) {
	kw := p.advance()
	body, ok := p.parseStmt()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.KwWhile, diag.SynUnexpectedToken, "expected 'while' after do body"); !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.LParen, diag.SynUnclosedParen, "expected '(' after 'while'"); !ok {
		return ast.NoStmtID, false
	}
	cond, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after condition"); !ok {
		return ast.NoStmtID, false
	}
	p.semi()
	return p.arenas.Stmts.NewDoWhile(kw.Span.Cover(p.lastSpan), body, cond), true
}

// parseFor разбирает все три формы: классический for, for-in и for-of.
func (p *Parser) parseFor() (ast.StmtID, bool) {
	kw := p.advance()
	if _, ok := p.expect(token.LParen, diag.SynUnclosedParen, "expected '(' after 'for'"); !ok {
		return ast.NoStmtID, false
	}

	var initStmt ast.StmtID

	if p.atOr(token.KwConst, token.KwLet, token.KwVar) {
		kwDecl := p.advance()
		var mode ast.DeclMode
		switch kwDecl.Kind {
		case token.KwConst:
			mode = ast.DeclConst
		case token.KwLet:
			mode = ast.DeclLet
		default:
			mode = ast.DeclVar
		}
		d, ok := p.parseDeclarator()
		if !ok {
			return ast.NoStmtID, false
		}
		if p.at(token.KwIn) || p.atIdent("of") {
			decl := p.arenas.Stmts.NewVarDecl(kwDecl.Span.Cover(p.lastSpan), mode, []ast.Declarator{d})
			return p.parseForInOfTail(kw.Span, decl, ast.NoExprID)
		}
		decls := []ast.Declarator{d}
		for p.eat(token.Comma) {
			d, ok := p.parseDeclarator()
			if !ok {
				return ast.NoStmtID, false
			}
			decls = append(decls, d)
		}
		initStmt = p.arenas.Stmts.NewVarDecl(kwDecl.Span.Cover(p.lastSpan), mode, decls)
	} else if !p.at(token.Semicolon) {
		expr, ok := p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		if p.at(token.KwIn) || p.atIdent("of") {
			return p.parseForInOfTail(kw.Span, ast.NoStmtID, expr)
		}
		sp := p.arenas.Exprs.Span(expr)
		initStmt = p.arenas.Stmts.NewExprStmt(sp, expr)
	}

	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' in for header"); !ok {
		return ast.NoStmtID, false
	}
	var cond ast.ExprID
	if !p.at(token.Semicolon) {
		c, ok := p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		cond = c
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' in for header"); !ok {
		return ast.NoStmtID, false
	}
	var post ast.ExprID
	if !p.at(token.RParen) {
		pe, ok := p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		post = pe
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after for header"); !ok {
		return ast.NoStmtID, false
	}
	body, ok := p.parseStmt()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewFor(kw.Span.Cover(p.lastSpan), ast.StmtForData{
		Init: initStmt,
		Cond: cond,
		Post: post,
		Body: body,
	}), true
}

// parseForInOfTail — после заголовка до 'in'/'of': последовательность, ')' и тело.
func (p *Parser) parseForInOfTail(start source.Span, decl ast.StmtID, target ast.ExprID) (ast.StmtID, bool) {
	kind := ast.StmtForOf
	if p.at(token.KwIn) {
		kind = ast.StmtForIn
	}
	p.advance() // in | of

	seq, ok := p.parseAssignExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after for header"); !ok {
		return ast.NoStmtID, false
	}
	body, ok := p.parseStmt()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewForInOf(start.Cover(p.lastSpan), kind, ast.StmtForInOfData{
		Decl:   decl,
		Target: target,
		Seq:    seq,
		Body:   body,
	}), true
}

func (p *Parser) parseSwitch() (ast.StmtID, bool) {
	kw := p.advance()
	if _, ok := p.expect(token.LParen, diag.SynUnclosedParen, "expected '(' after 'switch'"); !ok {
		return ast.NoStmtID, false
	}
	disc, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after discriminant"); !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.LBrace, diag.SynUnclosedBrace, "expected '{' to open switch body"); !ok {
		return ast.NoStmtID, false
	}

	var cases []ast.SwitchCase
	for !p.atOr(token.RBrace, token.EOF) {
		var c ast.SwitchCase
		switch {
		case p.eat(token.KwCase):
			test, ok := p.parseExpr()
			if !ok {
				return ast.NoStmtID, false
			}
			c.Test = test
		case p.eat(token.KwDefault):
		default:
			p.err(diag.SynUnexpectedToken, "expected 'case' or 'default' in switch body")
			return ast.NoStmtID, false
		}
		if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after case label"); !ok {
			return ast.NoStmtID, false
		}
		for !p.atOr(token.KwCase, token.KwDefault, token.RBrace, token.EOF) {
			st, ok := p.parseStmt()
			if !ok {
				return ast.NoStmtID, false
			}
			c.Body = append(c.Body, st)
		}
		cases = append(cases, c)
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close switch body"); !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewSwitch(kw.Span.Cover(p.lastSpan), disc, cases), true
}

func (p *Parser) parseThrow() (ast.StmtID, bool) {
	kw := p.advance()
	value, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	p.semi()
	return p.arenas.Stmts.NewThrow(kw.Span.Cover(p.lastSpan), value), true
}

func (p *Parser) parseTry() (ast.StmtID, bool) {
	kw := p.advance()
	body, ok := p.parseBlock()
	if !ok {
		return ast.NoStmtID, false
	}
	var data ast.StmtTryData
	data.Body = body
	if p.eat(token.KwCatch) {
		if p.eat(token.LParen) {
			name, _, ok := p.parseIdent()
			if !ok {
				return ast.NoStmtID, false
			}
			data.CatchParam = name
			if p.eat(token.Colon) {
				if _, ok := p.parseType(); !ok {
					return ast.NoStmtID, false
				}
			}
			if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after catch binding"); !ok {
				return ast.NoStmtID, false
			}
		}
		cb, ok := p.parseBlock()
		if !ok {
			return ast.NoStmtID, false
		}
		data.CatchBody = cb
	}
	if p.eat(token.KwFinally) {
		fb, ok := p.parseBlock()
		if !ok {
			return ast.NoStmtID, false
		}
		data.Finally = fb
	}
	if !data.CatchBody.IsValid() && !data.Finally.IsValid() {
		p.err(diag.SynUnexpectedToken, "try statement requires catch or finally")
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewTry(kw.Span.Cover(p.lastSpan), data), true
}

func (p *Parser) parseBlock() (ast.StmtID, bool) {
	open, ok := p.expect(token.LBrace, diag.SynUnclosedBrace, "expected '{'")
	if !ok {
		return ast.NoStmtID, false
	}
	var stmts []ast.StmtID
	for !p.atOr(token.RBrace, token.EOF) {
		before := p.lx.Peek().Span
		st, ok := p.parseStmt()
		if !ok {
			p.resyncStmt()
			if p.lx.Peek().Span == before && !p.atOr(token.RBrace, token.EOF) {
				p.advance()
			}
			continue
		}
		stmts = append(stmts, st)
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close block"); !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewBlock(open.Span.Cover(p.lastSpan), stmts), true
}

// parseTypeAlias — `type X = T;`. Тело нужно только для полноты обхода.
func (p *Parser) parseTypeAlias() (ast.StmtID, bool) {
	kw := p.advance() // type
	name, _, ok := p.parseIdent()
	if !ok {
		return ast.NoStmtID, false
	}
	p.skipTypeParams()
	if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' in type alias"); !ok {
		return ast.NoStmtID, false
	}
	typ, ok := p.parseType()
	if !ok {
		return ast.NoStmtID, false
	}
	p.semi()
	return p.arenas.Stmts.NewTypeAlias(kw.Span.Cover(p.lastSpan), name, typ), true
}
