package sema

import (
	"tether/internal/ast"
	"tether/internal/source"
)

// Info — результат Resolve для одного файла. Только чтение после
// построения, поэтому безопасен для параллельных запросов.
type Info struct {
	arenas  *ast.Builder
	symbols []Symbol
	scopes  []Scope

	refs      map[ast.ExprID]SymbolID
	thisClass map[ast.ExprID]ast.StmtID
	castTypes map[ast.ExprID]TypeRef
	symTypes  map[SymbolID]TypeRef

	classByName map[source.StringID]ast.StmtID
	ifaceByName map[source.StringID]ast.StmtID
	aliasByName map[source.StringID]ast.TypeID
}

// Builder returns the AST arenas the info was computed against.
func (in *Info) Builder() *ast.Builder { return in.arenas }

// IsDeclared reports whether the identifier expression resolved to a
// declaration in this file. False means the name is an ambient global.
func (in *Info) IsDeclared(id ast.ExprID) bool {
	_, ok := in.refs[id]
	return ok
}

// Symbol returns the symbol an identifier expression resolved to.
func (in *Info) Symbol(id ast.ExprID) (Symbol, bool) {
	sym, ok := in.refs[id]
	if !ok {
		return Symbol{}, false
	}
	return in.symbols[sym], true
}

// TypeOf возвращает привязку типа для выражения. Глубокого вывода нет:
// неизвестное остаётся TypeUnknown.
func (in *Info) TypeOf(id ast.ExprID) TypeRef {
	if !id.IsValid() {
		return TypeRef{}
	}
	b := in.arenas
	switch b.Exprs.Kind(id) {
	case ast.ExprIdent:
		sym, ok := in.refs[id]
		if !ok {
			return TypeRef{}
		}
		switch in.symbols[sym].Kind {
		case SymbolClass:
			return TypeRef{Kind: TypeClassStatic, Decl: in.symbols[sym].Decl}
		case SymbolVar, SymbolParam:
			if ref, ok := in.symTypes[sym]; ok {
				return ref
			}
		}
		return TypeRef{}
	case ast.ExprThis:
		if cls, ok := in.thisClass[id]; ok {
			return TypeRef{Kind: TypeClassInstance, Decl: cls}
		}
		return TypeRef{}
	case ast.ExprSuper:
		// `super.m` смотрит на базовый класс объемлющего класса.
		cls, ok := in.thisClass[id]
		if !ok {
			return TypeRef{}
		}
		data, ok := b.Stmts.Class(cls)
		if !ok || !nameValid(data.Extends) {
			return TypeRef{}
		}
		if base, ok := in.classByName[data.Extends]; ok && base != cls {
			return TypeRef{Kind: TypeClassInstance, Decl: base}
		}
		return TypeRef{}
	case ast.ExprNew:
		data, _ := b.Exprs.New(id)
		if ref := in.TypeOf(data.Callee); ref.Kind == TypeClassStatic {
			return TypeRef{Kind: TypeClassInstance, Decl: ref.Decl}
		}
		return TypeRef{}
	case ast.ExprObject:
		return TypeRef{Kind: TypeObjectLit, Obj: id}
	case ast.ExprNonNull:
		data, _ := b.Exprs.NonNull(id)
		return in.TypeOf(data.Operand)
	case ast.ExprCast:
		if ref, ok := in.castTypes[id]; ok {
			return ref
		}
		data, _ := b.Exprs.Cast(id)
		return in.TypeOf(data.Operand)
	default:
		return TypeRef{}
	}
}

// MemberDecl — нейтральное описание найденного члена для классификации.
type MemberDecl struct {
	Kind   ast.MemberKind
	Static bool

	HasThisParam bool
	ThisTypeVoid bool

	// FieldFunc: поле или свойство, инициализированное обычной функцией
	// (не стрелкой).
	FieldFunc bool
}

// LookupMember ищет член с именем name у типа ref, следуя по цепочке
// extends. Возвращает false, если тип неизвестен или члена нет.
func (in *Info) LookupMember(ref TypeRef, name source.StringID) (MemberDecl, bool) {
	switch ref.Kind {
	case TypeClassInstance:
		return in.lookupClassMember(ref.Decl, name, false, 0)
	case TypeClassStatic:
		return in.lookupClassMember(ref.Decl, name, true, 0)
	case TypeInterface:
		return in.lookupInterfaceMember(ref.Decl, name, 0)
	case TypeObjectLit:
		return in.lookupObjectProp(ref.Obj, name)
	default:
		return MemberDecl{}, false
	}
}

func (in *Info) lookupClassMember(decl ast.StmtID, name source.StringID, static bool, depth int) (MemberDecl, bool) {
	if depth > 16 {
		return MemberDecl{}, false
	}
	data, ok := in.arenas.Stmts.Class(decl)
	if !ok {
		return MemberDecl{}, false
	}
	for _, mid := range data.Members {
		m := in.arenas.Member(mid)
		if m == nil || m.Name != name || m.Static != static {
			continue
		}
		return in.memberDeclOf(m), true
	}
	if nameValid(data.Extends) {
		if super, ok := in.classByName[data.Extends]; ok && super != decl {
			return in.lookupClassMember(super, name, static, depth+1)
		}
	}
	return MemberDecl{}, false
}

func (in *Info) lookupInterfaceMember(decl ast.StmtID, name source.StringID, depth int) (MemberDecl, bool) {
	if depth > 16 {
		return MemberDecl{}, false
	}
	data, ok := in.arenas.Stmts.Interface(decl)
	if !ok {
		return MemberDecl{}, false
	}
	for _, mid := range data.Members {
		m := in.arenas.Member(mid)
		if m == nil || m.Name != name {
			continue
		}
		return in.memberDeclOf(m), true
	}
	for _, super := range data.Extends {
		if sup, ok := in.ifaceByName[super]; ok && sup != decl {
			if md, found := in.lookupInterfaceMember(sup, name, depth+1); found {
				return md, true
			}
		}
	}
	return MemberDecl{}, false
}

func (in *Info) memberDeclOf(m *ast.Member) MemberDecl {
	md := MemberDecl{
		Kind:         m.Kind,
		Static:       m.Static,
		HasThisParam: m.HasThisParam,
		ThisTypeVoid: m.ThisTypeVoid,
	}
	if m.Kind == ast.MemberField && m.Init.IsValid() {
		if fn, ok := in.arenas.Exprs.Function(m.Init); ok {
			md.FieldFunc = true
			md.HasThisParam = fn.HasThisParam
			md.ThisTypeVoid = fn.ThisTypeVoid
		}
	}
	return md
}

func (in *Info) lookupObjectProp(obj ast.ExprID, name source.StringID) (MemberDecl, bool) {
	data, ok := in.arenas.Exprs.Object(obj)
	if !ok {
		return MemberDecl{}, false
	}
	for _, prop := range data.Props {
		if prop.Key != name {
			continue
		}
		switch prop.Kind {
		case ast.PropMethod:
			md := MemberDecl{Kind: ast.MemberMethod}
			if fn, ok := in.arenas.Exprs.Function(prop.Value); ok {
				md.HasThisParam = fn.HasThisParam
				md.ThisTypeVoid = fn.ThisTypeVoid
			}
			return md, true
		case ast.PropInit:
			md := MemberDecl{Kind: ast.MemberField}
			if fn, ok := in.arenas.Exprs.Function(prop.Value); ok {
				md.FieldFunc = true
				md.HasThisParam = fn.HasThisParam
				md.ThisTypeVoid = fn.ThisTypeVoid
			}
			return md, true
		default:
			return MemberDecl{Kind: ast.MemberField}, true
		}
	}
	return MemberDecl{}, false
}
