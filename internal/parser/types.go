package parser

import (
	"tether/internal/ast"
	"tether/internal/diag"
	"tether/internal/token"
)

// parseType — аннотации типов. Анализу нужны только имя типа и форма
// функционального типа; всё остальное сворачивается в TypeSynOther с
// балансным пропуском токенов.
func (p *Parser) parseType() (ast.TypeID, bool) {
	start := p.lx.Peek().Span
	term, _, ok := p.parseTypeTerm()
	if !ok {
		return ast.NoTypeID, false
	}

	// union / intersection
	wrapped := false
	for p.atOr(token.Pipe, token.Amp) {
		p.advance()
		if _, _, ok := p.parseTypeTerm(); !ok {
			return ast.NoTypeID, false
		}
		wrapped = true
	}
	if wrapped {
		return p.arenas.NewType(ast.TypeSyn{Kind: ast.TypeSynOther, Span: start.Cover(p.lastSpan)}), true
	}
	return term, true
}

// parseTypeTerm возвращает один терм; simple=true если это голое имя.
func (p *Parser) parseTypeTerm() (ast.TypeID, bool, bool) {
	tok := p.lx.Peek()
	start := tok.Span
	switch tok.Kind {
	case token.Ident, token.KwVoid, token.KwNull, token.KwThis, token.KwTrue, token.KwFalse, token.KwTypeof:
		if tok.Kind == token.KwTypeof {
			// typeof X
			p.advance()
			if _, _, ok := p.parseIdent(); !ok {
				return ast.NoTypeID, false, false
			}
			return p.arenas.NewType(ast.TypeSyn{Kind: ast.TypeSynOther, Span: start.Cover(p.lastSpan)}), true, false
		}
		p.advance()
		name := p.arenas.StringsInterner.Intern(tok.Text)
		simple := true

		// qualified: A.B.C
		for p.eat(token.Dot) {
			if _, _, ok := p.parsePropName(); !ok {
				return ast.NoTypeID, false, false
			}
			simple = false
		}
		// generic args
		if p.at(token.Lt) {
			if !p.skipBalancedAngle() {
				return ast.NoTypeID, false, false
			}
			simple = false
		}
		// массивный суффикс T[] / T[][]
		for p.at(token.LBracket) {
			p.advance()
			if _, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' in array type"); !ok {
				return ast.NoTypeID, false, false
			}
			simple = false
		}
		if simple {
			return p.arenas.NewType(ast.TypeSyn{Kind: ast.TypeSynName, Span: start.Cover(p.lastSpan), Name: name}), true, true
		}
		return p.arenas.NewType(ast.TypeSyn{Kind: ast.TypeSynOther, Span: start.Cover(p.lastSpan)}), true, false

	case token.StringLit, token.NumberLit:
		p.advance()
		return p.arenas.NewType(ast.TypeSyn{Kind: ast.TypeSynOther, Span: start}), true, false

	case token.LBrace:
		if !p.skipBalanced(token.LBrace, token.RBrace) {
			return ast.NoTypeID, false, false
		}
		return p.arenas.NewType(ast.TypeSyn{Kind: ast.TypeSynOther, Span: start.Cover(p.lastSpan)}), true, false

	case token.LBracket:
		// кортежный тип
		if !p.skipBalanced(token.LBracket, token.RBracket) {
			return ast.NoTypeID, false, false
		}
		return p.arenas.NewType(ast.TypeSyn{Kind: ast.TypeSynOther, Span: start.Cover(p.lastSpan)}), true, false

	case token.LParen:
		// функциональный тип или группа
		if !p.skipBalanced(token.LParen, token.RParen) {
			return ast.NoTypeID, false, false
		}
		if p.eat(token.Arrow) {
			if _, ok := p.parseType(); !ok {
				return ast.NoTypeID, false, false
			}
			return p.arenas.NewType(ast.TypeSyn{Kind: ast.TypeSynFn, Span: start.Cover(p.lastSpan)}), true, false
		}
		return p.arenas.NewType(ast.TypeSyn{Kind: ast.TypeSynOther, Span: start.Cover(p.lastSpan)}), true, false

	case token.KwNew:
		// конструкторный тип: new (...) => T
		p.advance()
		if !p.skipBalanced(token.LParen, token.RParen) {
			return ast.NoTypeID, false, false
		}
		if p.eat(token.Arrow) {
			if _, ok := p.parseType(); !ok {
				return ast.NoTypeID, false, false
			}
		}
		return p.arenas.NewType(ast.TypeSyn{Kind: ast.TypeSynOther, Span: start.Cover(p.lastSpan)}), true, false

	default:
		p.err(diag.SynExpectType, "expected type, got \""+tok.Text+"\"")
		return ast.NoTypeID, false, false
	}
}

// skipTypeParams пропускает генерики `<T, U extends V>` после имени.
func (p *Parser) skipTypeParams() {
	if p.at(token.Lt) {
		p.skipBalancedAngle()
	}
}

// skipBalanced пропускает сбалансированную группу от open до close,
// учитывая вложенные скобки всех видов.
func (p *Parser) skipBalanced(open, close token.Kind) bool {
	if !p.at(open) {
		return false
	}
	depth := 0
	for !p.at(token.EOF) {
		switch p.lx.Peek().Kind {
		case token.LParen, token.LBrace, token.LBracket:
			depth++
		case token.RParen, token.RBrace, token.RBracket:
			depth--
		}
		p.advance()
		if depth == 0 {
			return true
		}
	}
	p.err(diag.SynUnclosedParen, "unterminated type annotation")
	return false
}

// skipBalancedAngle пропускает `<...>` в типовом контексте. Внутри типов
// `<` и `>` не бывают операторами сравнения, поэтому счётчик корректен.
func (p *Parser) skipBalancedAngle() bool {
	depth := 0
	for !p.at(token.EOF) {
		switch p.lx.Peek().Kind {
		case token.Lt:
			depth++
		case token.Gt:
			depth--
		case token.Shr:
			depth -= 2
		case token.UShr:
			depth -= 3
		case token.LParen:
			if !p.skipBalanced(token.LParen, token.RParen) {
				return false
			}
			continue
		case token.LBracket:
			if !p.skipBalanced(token.LBracket, token.RBracket) {
				return false
			}
			continue
		case token.LBrace:
			if !p.skipBalanced(token.LBrace, token.RBrace) {
				return false
			}
			continue
		}
		p.advance()
		if depth <= 0 {
			return true
		}
	}
	p.err(diag.SynUnexpectedToken, "unterminated type argument list")
	return false
}
