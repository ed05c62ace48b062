package parser

import (
	"tether/internal/ast"
	"tether/internal/diag"
	"tether/internal/token"
)

// parseExpr — выражение верхнего уровня. Оператор запятая не поддерживается,
// парсится одно assignment expression.
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	return p.parseAssignExpr()
}

func (p *Parser) parseAssignExpr() (ast.ExprID, bool) {
	left, ok := p.parseTernary()
	if !ok {
		return ast.NoExprID, false
	}

	// одиночный параметр без скобок: x => body
	if p.at(token.Arrow) {
		if data, isIdent := p.arenas.Exprs.Ident(left); isIdent {
			start := p.arenas.Exprs.Span(left)
			param := p.arenas.NewParam(ast.Param{Name: data.Name, NameSpan: start, Span: start})
			p.advance() // =>
			return p.parseArrowBody(start, []ast.ParamID{param}, false)
		}
	}

	tok := p.lx.Peek()
	if !tok.IsAssignOp() {
		return left, true
	}
	p.advance()

	op := ast.AssignCompound
	if tok.Kind == token.Assign {
		op = ast.AssignPlain
	}

	value, ok := p.parseAssignExpr() // правоассоциативно
	if !ok {
		return ast.NoExprID, false
	}
	sp := p.arenas.Exprs.Span(left).Cover(p.arenas.Exprs.Span(value))

	// деструктурирующее присваивание: ({a} = v) / ([a] = v)
	if op == ast.AssignPlain {
		if kind := p.arenas.Exprs.Kind(left); kind == ast.ExprObject || kind == ast.ExprArray {
			pat, ok := p.exprToPat(left)
			if !ok {
				return ast.NoExprID, false
			}
			return p.arenas.Exprs.NewAssignPat(sp, pat, value), true
		}
	}

	switch p.arenas.Exprs.Kind(left) {
	case ast.ExprIdent, ast.ExprMember, ast.ExprIndex, ast.ExprNonNull:
	default:
		p.report(diag.SynBadAssignTarget, diag.SevError, p.arenas.Exprs.Span(left), "invalid assignment target")
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewAssign(sp, op, left, value), true
}

func (p *Parser) parseTernary() (ast.ExprID, bool) {
	cond, ok := p.parseBinary(0)
	if !ok {
		return ast.NoExprID, false
	}
	if !p.eat(token.Question) {
		return cond, true
	}
	then, ok := p.parseAssignExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' in conditional expression"); !ok {
		return ast.NoExprID, false
	}
	els, ok := p.parseAssignExpr()
	if !ok {
		return ast.NoExprID, false
	}
	sp := p.arenas.Exprs.Span(cond).Cover(p.arenas.Exprs.Span(els))
	return p.arenas.Exprs.NewTernary(sp, cond, then, els), true
}

type binOpInfo struct {
	prec    int
	logical bool
	logOp   ast.LogicalOp
	binOp   ast.BinaryOp
}

var binOps = map[token.Kind]binOpInfo{
	token.OrOr:     {prec: 1, logical: true, logOp: ast.LogicalOr},
	token.Coalesce: {prec: 1, logical: true, logOp: ast.LogicalCoalesce},
	token.AndAnd:   {prec: 2, logical: true, logOp: ast.LogicalAnd},

	token.Pipe:  {prec: 3, binOp: ast.BinBitOr},
	token.Caret: {prec: 4, binOp: ast.BinBitXor},
	token.Amp:   {prec: 5, binOp: ast.BinBitAnd},

	token.EqEq:    {prec: 6, binOp: ast.BinEqEq},
	token.NotEq:   {prec: 6, binOp: ast.BinNotEq},
	token.EqEqEq:  {prec: 6, binOp: ast.BinEqEqEq},
	token.NotEqEq: {prec: 6, binOp: ast.BinNotEqEq},

	token.Lt:           {prec: 7, binOp: ast.BinLt},
	token.LtEq:         {prec: 7, binOp: ast.BinLtEq},
	token.Gt:           {prec: 7, binOp: ast.BinGt},
	token.GtEq:         {prec: 7, binOp: ast.BinGtEq},
	token.KwIn:         {prec: 7, binOp: ast.BinIn},
	token.KwInstanceof: {prec: 7, binOp: ast.BinInstanceof},

	token.Shl:  {prec: 8, binOp: ast.BinShl},
	token.Shr:  {prec: 8, binOp: ast.BinShr},
	token.UShr: {prec: 8, binOp: ast.BinUShr},

	token.Plus:  {prec: 9, binOp: ast.BinAdd},
	token.Minus: {prec: 9, binOp: ast.BinSub},

	token.Star:    {prec: 10, binOp: ast.BinMul},
	token.Slash:   {prec: 10, binOp: ast.BinDiv},
	token.Percent: {prec: 10, binOp: ast.BinMod},

	token.Pow: {prec: 11, binOp: ast.BinPow},
}

// parseBinary — precedence climbing. Контекстные `as`/`satisfies` сидят на
// уровне сравнений, как в исходной грамматике.
func (p *Parser) parseBinary(minPrec int) (ast.ExprID, bool) {
	left, ok := p.parseUnary()
	if !ok {
		return ast.NoExprID, false
	}
	for {
		// x as T / x satisfies T
		if minPrec <= 7 && (p.atIdent("as") || p.atIdent("satisfies")) {
			satisfies := p.atIdent("satisfies")
			p.advance()
			typ, ok := p.parseType()
			if !ok {
				return ast.NoExprID, false
			}
			sp := p.arenas.Exprs.Span(left).Cover(p.lastSpan)
			left = p.arenas.Exprs.NewCast(sp, left, typ, satisfies)
			continue
		}

		info, isOp := binOps[p.lx.Peek().Kind]
		if !isOp || info.prec < minPrec {
			return left, true
		}
		p.advance()
		right, ok := p.parseBinary(info.prec + 1)
		if !ok {
			return ast.NoExprID, false
		}
		sp := p.arenas.Exprs.Span(left).Cover(p.arenas.Exprs.Span(right))
		if info.logical {
			left = p.arenas.Exprs.NewLogical(sp, info.logOp, left, right)
		} else {
			left = p.arenas.Exprs.NewBinary(sp, info.binOp, left, right)
		}
	}
}

func (p *Parser) parseUnary() (ast.ExprID, bool) {
	tok := p.lx.Peek()
	var op ast.UnaryOp
	switch tok.Kind {
	case token.KwTypeof:
		op = ast.UnaryTypeof
	case token.Bang:
		op = ast.UnaryNot
	case token.KwVoid:
		op = ast.UnaryVoid
	case token.KwDelete:
		op = ast.UnaryDelete
	case token.Minus:
		op = ast.UnaryNeg
	case token.Plus:
		op = ast.UnaryPos
	case token.Tilde:
		op = ast.UnaryBitNot
	case token.PlusPlus, token.MinusMinus:
		p.advance()
		operand, ok := p.parseUnary()
		if !ok {
			return ast.NoExprID, false
		}
		upd := ast.UpdateInc
		if tok.Kind == token.MinusMinus {
			upd = ast.UpdateDec
		}
		sp := tok.Span.Cover(p.arenas.Exprs.Span(operand))
		return p.arenas.Exprs.NewUpdate(sp, upd, true, operand), true
	default:
		return p.parsePostfix()
	}
	p.advance()
	operand, ok := p.parseUnary()
	if !ok {
		return ast.NoExprID, false
	}
	sp := tok.Span.Cover(p.arenas.Exprs.Span(operand))
	return p.arenas.Exprs.NewUnary(sp, op, operand), true
}

// parsePostfix — цепочка доступа плюс постфиксные `!` и `++`/`--`.
func (p *Parser) parsePostfix() (ast.ExprID, bool) {
	expr, ok := p.parseCallChain(true)
	if !ok {
		return ast.NoExprID, false
	}
	if p.atOr(token.PlusPlus, token.MinusMinus) {
		tok := p.advance()
		op := ast.UpdateInc
		if tok.Kind == token.MinusMinus {
			op = ast.UpdateDec
		}
		sp := p.arenas.Exprs.Span(expr).Cover(tok.Span)
		return p.arenas.Exprs.NewUpdate(sp, op, false, expr), true
	}
	return expr, true
}

// parseCallChain разбирает member/index/call цепочку над primary.
// При allowCall=false вызовы не съедаются: так парсится callee у `new`.
func (p *Parser) parseCallChain(allowCall bool) (ast.ExprID, bool) {
	expr, ok := p.parsePrimary()
	if !ok {
		return ast.NoExprID, false
	}
	for {
		switch p.lx.Peek().Kind {
		case token.Dot:
			p.advance()
			prop, propSpan, ok := p.parsePropName()
			if !ok {
				return ast.NoExprID, false
			}
			sp := p.arenas.Exprs.Span(expr).Cover(propSpan)
			expr = p.arenas.Exprs.NewMember(sp, expr, prop, propSpan, false)

		case token.QuestionDot:
			p.advance()
			switch p.lx.Peek().Kind {
			case token.LParen:
				if !allowCall {
					return expr, true
				}
				args, ok := p.parseArgs()
				if !ok {
					return ast.NoExprID, false
				}
				sp := p.arenas.Exprs.Span(expr).Cover(p.lastSpan)
				expr = p.arenas.Exprs.NewCall(sp, expr, args, true)
			case token.LBracket:
				p.advance()
				index, ok := p.parseExpr()
				if !ok {
					return ast.NoExprID, false
				}
				if _, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']'"); !ok {
					return ast.NoExprID, false
				}
				sp := p.arenas.Exprs.Span(expr).Cover(p.lastSpan)
				expr = p.arenas.Exprs.NewIndex(sp, expr, index, true)
			default:
				prop, propSpan, ok := p.parsePropName()
				if !ok {
					return ast.NoExprID, false
				}
				sp := p.arenas.Exprs.Span(expr).Cover(propSpan)
				expr = p.arenas.Exprs.NewMember(sp, expr, prop, propSpan, true)
			}

		case token.LBracket:
			p.advance()
			index, ok := p.parseExpr()
			if !ok {
				return ast.NoExprID, false
			}
			if _, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']'"); !ok {
				return ast.NoExprID, false
			}
			sp := p.arenas.Exprs.Span(expr).Cover(p.lastSpan)
			expr = p.arenas.Exprs.NewIndex(sp, expr, index, false)

		case token.LParen:
			if !allowCall {
				return expr, true
			}
			args, ok := p.parseArgs()
			if !ok {
				return ast.NoExprID, false
			}
			sp := p.arenas.Exprs.Span(expr).Cover(p.lastSpan)
			expr = p.arenas.Exprs.NewCall(sp, expr, args, false)

		case token.TemplateFull, token.TemplateHead:
			quasi, ok := p.parseTemplateLiteral()
			if !ok {
				return ast.NoExprID, false
			}
			sp := p.arenas.Exprs.Span(expr).Cover(p.arenas.Exprs.Span(quasi))
			expr = p.arenas.Exprs.NewTagged(sp, expr, quasi)

		case token.Bang:
			tok := p.advance()
			sp := p.arenas.Exprs.Span(expr).Cover(tok.Span)
			expr = p.arenas.Exprs.NewNonNull(sp, expr)

		default:
			return expr, true
		}
	}
}

// parseArgs — список аргументов вызова, начиная с '('.
func (p *Parser) parseArgs() ([]ast.ExprID, bool) {
	if _, ok := p.expect(token.LParen, diag.SynUnclosedParen, "expected '('"); !ok {
		return nil, false
	}
	var args []ast.ExprID
	for !p.atOr(token.RParen, token.EOF) {
		var arg ast.ExprID
		if p.at(token.Ellipsis) {
			tok := p.advance()
			operand, ok := p.parseAssignExpr()
			if !ok {
				return nil, false
			}
			arg = p.arenas.Exprs.NewSpread(tok.Span.Cover(p.arenas.Exprs.Span(operand)), operand)
		} else {
			a, ok := p.parseAssignExpr()
			if !ok {
				return nil, false
			}
			arg = a
		}
		args = append(args, arg)
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close arguments"); !ok {
		return nil, false
	}
	return args, true
}
