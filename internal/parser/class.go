package parser

import (
	"tether/internal/ast"
	"tether/internal/diag"
	"tether/internal/source"
	"tether/internal/token"
)

func (p *Parser) parseClassDecl() (ast.StmtID, bool) {
	kw := p.advance() // class
	name, nameSpan, ok := p.parseIdent()
	if !ok {
		return ast.NoStmtID, false
	}
	p.skipTypeParams()

	data := ast.StmtClassData{Name: name, NameSpan: nameSpan}
	if p.eat(token.KwExtends) {
		super, superSpan, ok := p.parseIdent()
		if !ok {
			return ast.NoStmtID, false
		}
		p.skipTypeParams()
		data.Extends = super
		data.ExtendsSpan = superSpan
	}
	if p.atIdent("implements") {
		p.advance()
		for {
			if _, _, ok := p.parseIdent(); !ok {
				return ast.NoStmtID, false
			}
			p.skipTypeParams()
			if !p.eat(token.Comma) {
				break
			}
		}
	}

	if _, ok := p.expect(token.LBrace, diag.SynUnclosedBrace, "expected '{' to open class body"); !ok {
		return ast.NoStmtID, false
	}
	for !p.atOr(token.RBrace, token.EOF) {
		if p.eat(token.Semicolon) {
			continue
		}
		member, ok := p.parseClassMember()
		if !ok {
			p.resyncMember()
			continue
		}
		data.Members = append(data.Members, member)
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close class body"); !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewClass(kw.Span.Cover(p.lastSpan), data), true
}

// resyncMember — прокрутка до следующего члена класса или конца тела.
func (p *Parser) resyncMember() {
	for !p.atOr(token.RBrace, token.EOF) {
		if p.at(token.Semicolon) {
			p.advance()
			return
		}
		if p.at(token.LBrace) {
			p.skipBalanced(token.LBrace, token.RBrace)
			return
		}
		p.advance()
	}
}

// memberModifiers — накопленные модификаторы перед именем члена.
type memberModifiers struct {
	static   bool
	readonly bool
	accessor bool // get или set
}

func (p *Parser) parseClassMember() (ast.MemberID, bool) {
	start := p.lx.Peek().Span
	var mods memberModifiers

	// модификаторы: static, readonly, видимость, async, abstract, override,
	// get/set. Все, кроме static/readonly/get/set, прозрачны для анализа.
loop:
	for {
		tok := p.lx.Peek()
		switch {
		case tok.Kind == token.KwStatic:
			p.advance()
			mods.static = true
		case tok.Kind == token.Ident && isMemberModifier(tok.Text):
			// модификатор или имя поля: решает следующий токен
			if !p.modifierFollows() {
				break loop
			}
			p.advance()
			switch tok.Text {
			case "readonly":
				mods.readonly = true
			case "get", "set":
				mods.accessor = true
				break loop
			}
		default:
			break loop
		}
	}

	name, nameSpan, ok := p.parseMemberName()
	if !ok {
		return ast.NoMemberID, false
	}
	p.eat(token.Question) // опциональный член

	if p.at(token.LParen) || p.at(token.Lt) {
		return p.parseMethodTail(start, name, nameSpan, mods, true)
	}
	return p.parseFieldTail(start, name, nameSpan, mods)
}

// modifierFollows сообщает, является ли идентификатор-модификатор именно
// модификатором: после него должно идти имя члена, а не '(' / '=' / ':'.
func (p *Parser) modifierFollows() bool {
	next := p.lx.Peek2()
	switch next.Kind {
	case token.Ident, token.KwStatic, token.StringLit, token.NumberLit, token.LBracket:
		return true
	default:
		return next.IsKeyword()
	}
}

func isMemberModifier(text string) bool {
	switch text {
	case "public", "private", "protected", "readonly", "abstract", "override", "async", "get", "set", "declare", "accessor":
		return true
	default:
		return false
	}
}

// parseMemberName — имя члена: идентификатор, зарезервированное слово,
// строка, число или вычисляемое имя.
func (p *Parser) parseMemberName() (source.StringID, source.Span, bool) {
	tok := p.lx.Peek()
	switch {
	case tok.Kind == token.Ident || tok.IsKeyword():
		p.advance()
		return p.arenas.StringsInterner.Intern(tok.Text), tok.Span, true
	case tok.Kind == token.StringLit || tok.Kind == token.NumberLit:
		p.advance()
		return p.arenas.StringsInterner.Intern(tok.Text), tok.Span, true
	case tok.Kind == token.LBracket:
		// вычисляемое имя: значение ключа статически неизвестно
		if !p.skipBalanced(token.LBracket, token.RBracket) {
			return source.NoStringID, tok.Span, false
		}
		return source.NoStringID, tok.Span.Cover(p.lastSpan), true
	default:
		p.report(diag.SynBadClassMember, diag.SevError, tok.Span, "expected member name, got \""+tok.Text+"\"")
		return source.NoStringID, tok.Span, false
	}
}

func (p *Parser) parseMethodTail(start source.Span, name source.StringID, nameSpan source.Span, mods memberModifiers, inClass bool) (ast.MemberID, bool) {
	p.skipTypeParams()
	params, this, ok := p.parseParams()
	if !ok {
		return ast.NoMemberID, false
	}
	var retType ast.TypeID
	if p.eat(token.Colon) {
		t, ok := p.parseType()
		if !ok {
			return ast.NoMemberID, false
		}
		retType = t
	}

	member := ast.Member{
		Name:         name,
		NameSpan:     nameSpan,
		Static:       mods.static,
		Readonly:     mods.readonly,
		HasThisParam: this.present,
		ThisTypeVoid: this.typeVoid,
		Params:       params,
		Type:         retType,
	}

	switch {
	case !inClass:
		member.Kind = ast.MemberMethodSig
		p.memberSep()
	case p.at(token.LBrace):
		body, ok := p.parseBlock()
		if !ok {
			return ast.NoMemberID, false
		}
		member.Body = body
		switch {
		case mods.accessor:
			member.Kind = ast.MemberAccessor
		case p.arenas.StringsInterner.MustLookup(name) == "constructor":
			member.Kind = ast.MemberCtor
		default:
			member.Kind = ast.MemberMethod
		}
	default:
		// перегрузка или абстрактный метод: тела нет
		member.Kind = ast.MemberMethod
		p.semi()
	}
	member.Span = start.Cover(p.lastSpan)
	return p.arenas.NewMember(member), true
}

func (p *Parser) parseFieldTail(start source.Span, name source.StringID, nameSpan source.Span, mods memberModifiers) (ast.MemberID, bool) {
	member := ast.Member{
		Kind:     ast.MemberField,
		Name:     name,
		NameSpan: nameSpan,
		Static:   mods.static,
		Readonly: mods.readonly,
	}
	if p.eat(token.Colon) {
		t, ok := p.parseType()
		if !ok {
			return ast.NoMemberID, false
		}
		member.Type = t
	}
	if p.eat(token.Assign) {
		init, ok := p.parseAssignExpr()
		if !ok {
			return ast.NoMemberID, false
		}
		member.Init = init
	}
	p.semi()
	member.Span = start.Cover(p.lastSpan)
	return p.arenas.NewMember(member), true
}

func (p *Parser) parseInterfaceDecl() (ast.StmtID, bool) {
	kw := p.advance() // interface
	name, nameSpan, ok := p.parseIdent()
	if !ok {
		return ast.NoStmtID, false
	}
	p.skipTypeParams()

	data := ast.StmtInterfaceData{Name: name, NameSpan: nameSpan}
	if p.eat(token.KwExtends) {
		for {
			super, _, ok := p.parseIdent()
			if !ok {
				return ast.NoStmtID, false
			}
			p.skipTypeParams()
			data.Extends = append(data.Extends, super)
			if !p.eat(token.Comma) {
				break
			}
		}
	}

	if _, ok := p.expect(token.LBrace, diag.SynUnclosedBrace, "expected '{' to open interface body"); !ok {
		return ast.NoStmtID, false
	}
	for !p.atOr(token.RBrace, token.EOF) {
		if p.eat(token.Semicolon) || p.eat(token.Comma) {
			continue
		}
		member, ok := p.parseInterfaceMember()
		if !ok {
			p.resyncMember()
			continue
		}
		data.Members = append(data.Members, member)
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close interface body"); !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewInterface(kw.Span.Cover(p.lastSpan), data), true
}

func (p *Parser) parseInterfaceMember() (ast.MemberID, bool) {
	start := p.lx.Peek().Span
	var mods memberModifiers
	if p.atIdent("readonly") && p.modifierFollows() {
		p.advance()
		mods.readonly = true
	}

	name, nameSpan, ok := p.parseMemberName()
	if !ok {
		return ast.NoMemberID, false
	}
	p.eat(token.Question)

	if p.at(token.LParen) || p.at(token.Lt) {
		return p.parseMethodTail(start, name, nameSpan, mods, false)
	}

	member := ast.Member{
		Kind:     ast.MemberPropSig,
		Name:     name,
		NameSpan: nameSpan,
		Readonly: mods.readonly,
	}
	if p.eat(token.Colon) {
		t, ok := p.parseType()
		if !ok {
			return ast.NoMemberID, false
		}
		member.Type = t
	}
	p.memberSep()
	member.Span = start.Cover(p.lastSpan)
	return p.arenas.NewMember(member), true
}

// memberSep — ';' или ',' после члена интерфейса, оба необязательны.
func (p *Parser) memberSep() {
	if !p.eat(token.Semicolon) {
		p.eat(token.Comma)
	}
}
