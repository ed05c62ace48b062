package parser

import (
	"tether/internal/ast"
	"tether/internal/diag"
)

// exprsToParams переводит содержимое скобок, распарсенное как выражения,
// в параметры стрелки (cover grammar).
func (p *Parser) exprsToParams(elems []ast.ExprID) ([]ast.ParamID, bool) {
	params := make([]ast.ParamID, 0, len(elems))
	for _, elem := range elems {
		param, ok := p.exprToParam(elem)
		if !ok {
			return nil, false
		}
		params = append(params, param)
	}
	return params, true
}

func (p *Parser) exprToParam(elem ast.ExprID) (ast.ParamID, bool) {
	sp := p.arenas.Exprs.Span(elem)
	switch p.arenas.Exprs.Kind(elem) {
	case ast.ExprIdent:
		data, _ := p.arenas.Exprs.Ident(elem)
		return p.arenas.NewParam(ast.Param{Name: data.Name, NameSpan: sp, Span: sp}), true

	case ast.ExprAssign:
		// параметр со значением по умолчанию: (x = 1) =>
		data, _ := p.arenas.Exprs.Assign(elem)
		if data.Op != ast.AssignPlain {
			break
		}
		if data.TargetPat.IsValid() {
			return p.arenas.NewParam(ast.Param{Pat: data.TargetPat, Default: data.Value, Span: sp}), true
		}
		if ident, ok := p.arenas.Exprs.Ident(data.Target); ok {
			return p.arenas.NewParam(ast.Param{
				Name:     ident.Name,
				NameSpan: p.arenas.Exprs.Span(data.Target),
				Default:  data.Value,
				Span:     sp,
			}), true
		}

	case ast.ExprObject, ast.ExprArray:
		pat, ok := p.exprToPat(elem)
		if !ok {
			return ast.NoParamID, false
		}
		return p.arenas.NewParam(ast.Param{Pat: pat, Span: sp}), true
	}
	p.report(diag.SynUnexpectedToken, diag.SevError, sp, "invalid arrow function parameter")
	return ast.NoParamID, false
}

// exprToPat переводит объектный/массивный литерал в паттерн деструктуризации.
// Используется для `({a} = v)` и для параметров стрелок.
func (p *Parser) exprToPat(elem ast.ExprID) (ast.PatID, bool) {
	sp := p.arenas.Exprs.Span(elem)
	switch p.arenas.Exprs.Kind(elem) {
	case ast.ExprObject:
		data, _ := p.arenas.Exprs.Object(elem)
		pat := ast.Pat{Kind: ast.PatObject, Span: sp}
		for _, prop := range data.Props {
			pp, ok := p.objectPropToPatProp(prop)
			if !ok {
				return ast.NoPatID, false
			}
			pat.Props = append(pat.Props, pp)
		}
		return p.arenas.NewPat(pat), true

	case ast.ExprArray:
		data, _ := p.arenas.Exprs.Array(elem)
		pat := ast.Pat{Kind: ast.PatArray, Span: sp}
		for _, el := range data.Elems {
			pe, ok := p.arrayElemToPatElem(el)
			if !ok {
				return ast.NoPatID, false
			}
			pat.Elems = append(pat.Elems, pe)
		}
		return p.arenas.NewPat(pat), true
	}
	p.report(diag.SynBadDestructuring, diag.SevError, sp, "invalid destructuring target")
	return ast.NoPatID, false
}

func (p *Parser) objectPropToPatProp(prop ast.ObjectProp) (ast.PatProp, bool) {
	out := ast.PatProp{Key: prop.Key, KeySpan: prop.KeySpan}
	switch prop.Kind {
	case ast.PropShorthand:
		out.Binding = prop.Key
		// `{ a = 1 }`: значение — умолчание
		out.Default = prop.Value
		return out, true
	case ast.PropSpread:
		out.Rest = true
		if ident, ok := p.arenas.Exprs.Ident(prop.Value); ok {
			out.Binding = ident.Name
			out.KeySpan = p.arenas.Exprs.Span(prop.Value)
			return out, true
		}
	case ast.PropInit:
		switch p.arenas.Exprs.Kind(prop.Value) {
		case ast.ExprIdent:
			ident, _ := p.arenas.Exprs.Ident(prop.Value)
			out.Binding = ident.Name
			return out, true
		case ast.ExprObject, ast.ExprArray:
			sub, ok := p.exprToPat(prop.Value)
			if !ok {
				return out, false
			}
			out.SubPat = sub
			return out, true
		case ast.ExprAssign:
			// `{ a: b = 1 }`
			data, _ := p.arenas.Exprs.Assign(prop.Value)
			if data.Op == ast.AssignPlain {
				if ident, ok := p.arenas.Exprs.Ident(data.Target); ok {
					out.Binding = ident.Name
					out.Default = data.Value
					return out, true
				}
			}
		}
	}
	p.report(diag.SynBadDestructuring, diag.SevError, prop.KeySpan, "invalid destructuring property")
	return out, false
}

func (p *Parser) arrayElemToPatElem(el ast.ExprID) (ast.PatElem, bool) {
	var out ast.PatElem
	if !el.IsValid() {
		// дырка
		return out, true
	}
	out.Span = p.arenas.Exprs.Span(el)
	switch p.arenas.Exprs.Kind(el) {
	case ast.ExprIdent:
		ident, _ := p.arenas.Exprs.Ident(el)
		out.Binding = ident.Name
		return out, true
	case ast.ExprObject, ast.ExprArray:
		sub, ok := p.exprToPat(el)
		if !ok {
			return out, false
		}
		out.SubPat = sub
		return out, true
	case ast.ExprAssign:
		data, _ := p.arenas.Exprs.Assign(el)
		if data.Op == ast.AssignPlain {
			if ident, ok := p.arenas.Exprs.Ident(data.Target); ok {
				out.Binding = ident.Name
				out.Default = data.Value
				return out, true
			}
		}
	case ast.ExprSpread:
		data, _ := p.arenas.Exprs.Spread(el)
		if ident, ok := p.arenas.Exprs.Ident(data.Operand); ok {
			out.Binding = ident.Name
			out.Rest = true
			return out, true
		}
	}
	p.report(diag.SynBadDestructuring, diag.SevError, out.Span, "invalid destructuring element")
	return out, false
}
