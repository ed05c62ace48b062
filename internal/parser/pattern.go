package parser

import (
	"tether/internal/ast"
	"tether/internal/diag"
	"tether/internal/token"
)

// parsePattern — деструктурирующий паттерн в позиции объявления.
func (p *Parser) parsePattern() (ast.PatID, bool) {
	switch p.lx.Peek().Kind {
	case token.LBrace:
		return p.parseObjectPattern()
	case token.LBracket:
		return p.parseArrayPattern()
	default:
		p.err(diag.SynBadDestructuring, "expected destructuring pattern")
		return ast.NoPatID, false
	}
}

func (p *Parser) parseObjectPattern() (ast.PatID, bool) {
	open := p.advance() // {
	pat := ast.Pat{Kind: ast.PatObject}
	for !p.atOr(token.RBrace, token.EOF) {
		var prop ast.PatProp

		if p.eat(token.Ellipsis) {
			name, sp, ok := p.parseIdent()
			if !ok {
				return ast.NoPatID, false
			}
			prop.Rest = true
			prop.Binding = name
			prop.KeySpan = sp
			pat.Props = append(pat.Props, prop)
			if !p.eat(token.Comma) {
				break
			}
			continue
		}

		keyTok := p.lx.Peek()
		if keyTok.Kind != token.Ident && !keyTok.IsKeyword() && keyTok.Kind != token.StringLit {
			p.err(diag.SynBadDestructuring, "expected property name in pattern")
			return ast.NoPatID, false
		}
		p.advance()
		prop.Key = p.arenas.StringsInterner.Intern(keyTok.Text)
		prop.KeySpan = keyTok.Span
		prop.Binding = prop.Key

		if p.eat(token.Colon) {
			// переименование или вложенный паттерн
			switch p.lx.Peek().Kind {
			case token.LBrace, token.LBracket:
				sub, ok := p.parsePattern()
				if !ok {
					return ast.NoPatID, false
				}
				prop.Binding = 0
				prop.SubPat = sub
			default:
				name, _, ok := p.parseIdent()
				if !ok {
					return ast.NoPatID, false
				}
				prop.Binding = name
			}
		}
		if p.eat(token.Assign) {
			def, ok := p.parseAssignExpr()
			if !ok {
				return ast.NoPatID, false
			}
			prop.Default = def
		}
		pat.Props = append(pat.Props, prop)
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close pattern"); !ok {
		return ast.NoPatID, false
	}
	pat.Span = open.Span.Cover(p.lastSpan)
	return p.arenas.NewPat(pat), true
}

func (p *Parser) parseArrayPattern() (ast.PatID, bool) {
	open := p.advance() // [
	pat := ast.Pat{Kind: ast.PatArray}
	for !p.atOr(token.RBracket, token.EOF) {
		var el ast.PatElem
		if p.at(token.Comma) {
			// дырка
			p.advance()
			pat.Elems = append(pat.Elems, el)
			continue
		}
		if p.eat(token.Ellipsis) {
			el.Rest = true
		}
		switch p.lx.Peek().Kind {
		case token.LBrace, token.LBracket:
			sub, ok := p.parsePattern()
			if !ok {
				return ast.NoPatID, false
			}
			el.SubPat = sub
		default:
			name, sp, ok := p.parseIdent()
			if !ok {
				return ast.NoPatID, false
			}
			el.Binding = name
			el.Span = sp
		}
		if p.eat(token.Assign) {
			def, ok := p.parseAssignExpr()
			if !ok {
				return ast.NoPatID, false
			}
			el.Default = def
		}
		pat.Elems = append(pat.Elems, el)
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' to close pattern"); !ok {
		return ast.NoPatID, false
	}
	pat.Span = open.Span.Cover(p.lastSpan)
	return p.arenas.NewPat(pat), true
}
