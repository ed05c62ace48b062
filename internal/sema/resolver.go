package sema

import (
	"tether/internal/ast"
	"tether/internal/source"
)

// Resolve строит таблицы символов и привязывает каждый идентификатор к его
// объявлению в файле. Межфайловых импортов нет: всё, что не объявлено в
// файле, считается ambient-глобалом.
func Resolve(arenas *ast.Builder, file ast.FileID) *Info {
	info := &Info{
		arenas:       arenas,
		symbols:      make([]Symbol, 1), // символ 0 не используется
		refs:         make(map[ast.ExprID]SymbolID),
		thisClass:    make(map[ast.ExprID]ast.StmtID),
		castTypes:    make(map[ast.ExprID]TypeRef),
		symTypes:     make(map[SymbolID]TypeRef),
		classByName:  make(map[source.StringID]ast.StmtID),
		ifaceByName:  make(map[source.StringID]ast.StmtID),
		aliasByName:  make(map[source.StringID]ast.TypeID),
	}
	r := &resolver{info: info, cur: -1}
	r.pushScope(ScopeFile)

	f := arenas.Files.Get(file)
	if f != nil {
		r.collect(f.Stmts)
		r.resolveStmts(f.Stmts)
	}
	return info
}

type resolver struct {
	info *Info
	cur  int // индекс текущего scope
	// класс, внутри которого мы находимся; стрелки его сохраняют,
	// обычные функции сбрасывают
	curClass ast.StmtID
}

func (r *resolver) pushScope(kind ScopeKind) {
	r.info.scopes = append(r.info.scopes, Scope{
		Kind:   kind,
		Parent: r.cur,
		Values: make(map[source.StringID]SymbolID),
		Types:  make(map[source.StringID]SymbolID),
	})
	r.cur = len(r.info.scopes) - 1
}

func (r *resolver) popScope() {
	r.cur = r.info.scopes[r.cur].Parent
}

func (r *resolver) newSymbol(sym Symbol) SymbolID {
	r.info.symbols = append(r.info.symbols, sym)
	return SymbolID(len(r.info.symbols) - 1)
}

func (r *resolver) declareValue(name source.StringID, sym Symbol) SymbolID {
	if !nameValid(name) {
		return NoSymbolID
	}
	id := r.newSymbol(sym)
	r.info.scopes[r.cur].Values[name] = id
	return id
}

func (r *resolver) declareType(name source.StringID, sym Symbol) SymbolID {
	if !nameValid(name) {
		return NoSymbolID
	}
	id := r.newSymbol(sym)
	r.info.scopes[r.cur].Types[name] = id
	return id
}

func nameValid(name source.StringID) bool { return name != source.NoStringID }

func (r *resolver) lookupValue(name source.StringID) SymbolID {
	for s := r.cur; s >= 0; s = r.info.scopes[s].Parent {
		if id, ok := r.info.scopes[s].Values[name]; ok {
			return id
		}
	}
	return NoSymbolID
}

func (r *resolver) lookupType(name source.StringID) SymbolID {
	for s := r.cur; s >= 0; s = r.info.scopes[s].Parent {
		if id, ok := r.info.scopes[s].Types[name]; ok {
			return id
		}
	}
	return NoSymbolID
}

// collect — предварительный проход по statements текущего scope: объявления
// видны до текста (hoisting в пределах блока).
func (r *resolver) collect(stmts []ast.StmtID) {
	b := r.info.arenas
	for _, id := range stmts {
		switch b.Stmts.Kind(id) {
		case ast.StmtVarDecl:
			data, _ := b.Stmts.VarDecl(id)
			for _, d := range data.Decls {
				if d.Pat.IsValid() {
					r.collectPatBindings(d.Pat)
					continue
				}
				r.declareValue(d.Name, Symbol{
					Name:  d.Name,
					Kind:  SymbolVar,
					Span:  d.NameSpan,
					Init:  d.Init,
					Annot: d.Type,
				})
			}
		case ast.StmtFunc:
			data, _ := b.Stmts.Func(id)
			r.declareValue(data.Name, Symbol{
				Name: data.Name,
				Kind: SymbolFunction,
				Span: data.NameSpan,
				Decl: id,
			})
		case ast.StmtClass:
			data, _ := b.Stmts.Class(id)
			r.declareValue(data.Name, Symbol{
				Name: data.Name,
				Kind: SymbolClass,
				Span: data.NameSpan,
				Decl: id,
			})
			r.declareType(data.Name, Symbol{
				Name: data.Name,
				Kind: SymbolClass,
				Span: data.NameSpan,
				Decl: id,
			})
			r.info.classByName[data.Name] = id
		case ast.StmtInterface:
			data, _ := b.Stmts.Interface(id)
			r.declareType(data.Name, Symbol{
				Name: data.Name,
				Kind: SymbolInterface,
				Span: data.NameSpan,
				Decl: id,
			})
			r.info.ifaceByName[data.Name] = id
		case ast.StmtTypeAlias:
			data, _ := b.Stmts.TypeAlias(id)
			r.declareType(data.Name, Symbol{
				Name: data.Name,
				Kind: SymbolTypeAlias,
			})
			r.info.aliasByName[data.Name] = data.Type
		}
	}
}

func (r *resolver) collectPatBindings(id ast.PatID) {
	p := r.info.arenas.Pat(id)
	if p == nil {
		return
	}
	for _, prop := range p.Props {
		if prop.SubPat.IsValid() {
			r.collectPatBindings(prop.SubPat)
			continue
		}
		r.declareValue(prop.Binding, Symbol{
			Name: prop.Binding,
			Kind: SymbolVar,
			Span: prop.KeySpan,
		})
	}
	for _, el := range p.Elems {
		if el.SubPat.IsValid() {
			r.collectPatBindings(el.SubPat)
			continue
		}
		r.declareValue(el.Binding, Symbol{
			Name: el.Binding,
			Kind: SymbolVar,
			Span: el.Span,
		})
	}
}

func (r *resolver) resolveStmts(stmts []ast.StmtID) {
	for _, id := range stmts {
		r.resolveStmt(id)
	}
}

// resolveBody — тело управляющей конструкции: блок получает свой scope,
// одиночный statement резолвится на месте.
func (r *resolver) resolveBody(id ast.StmtID) {
	if !id.IsValid() {
		return
	}
	if data, ok := r.info.arenas.Stmts.Block(id); ok {
		r.pushScope(ScopeBlock)
		r.collect(data.Stmts)
		r.resolveStmts(data.Stmts)
		r.popScope()
		return
	}
	r.resolveStmt(id)
}

func (r *resolver) resolveStmt(id ast.StmtID) {
	if !id.IsValid() {
		return
	}
	b := r.info.arenas
	switch b.Stmts.Kind(id) {
	case ast.StmtExpr:
		data, _ := b.Stmts.ExprStmt(id)
		r.resolveExpr(data.Expr)
	case ast.StmtVarDecl:
		data, _ := b.Stmts.VarDecl(id)
		for _, d := range data.Decls {
			r.resolveExpr(d.Init)
			r.resolvePatDefaults(d.Pat)
			if d.Pat.IsValid() {
				continue
			}
			// тип переменной вычисляется в точке объявления
			if sym := r.lookupValue(d.Name); sym.IsValid() {
				r.info.symTypes[sym] = r.typeRefForDeclarator(d)
			}
		}
	case ast.StmtFunc:
		data, _ := b.Stmts.Func(id)
		saved := r.curClass
		r.curClass = ast.NoStmtID
		r.resolveFunctionScope(data.Params, data.Body)
		r.curClass = saved
	case ast.StmtClass:
		r.resolveClass(id)
	case ast.StmtInterface:
		// сигнатуры не содержат выражений, кроме умолчаний параметров
		data, _ := b.Stmts.Interface(id)
		for _, mid := range data.Members {
			if m := b.Member(mid); m != nil {
				r.resolveParamDefaults(m.Params)
			}
		}
	case ast.StmtReturn:
		data, _ := b.Stmts.Return(id)
		r.resolveExpr(data.Value)
	case ast.StmtIf:
		data, _ := b.Stmts.If(id)
		r.resolveExpr(data.Cond)
		r.resolveBody(data.Then)
		r.resolveBody(data.Else)
	case ast.StmtWhile:
		data, _ := b.Stmts.While(id)
		r.resolveExpr(data.Cond)
		r.resolveBody(data.Body)
	case ast.StmtDoWhile:
		data, _ := b.Stmts.DoWhile(id)
		r.resolveBody(data.Body)
		r.resolveExpr(data.Cond)
	case ast.StmtFor:
		data, _ := b.Stmts.For(id)
		r.pushScope(ScopeBlock)
		if data.Init.IsValid() {
			r.collect([]ast.StmtID{data.Init})
			r.resolveStmt(data.Init)
		}
		r.resolveExpr(data.Cond)
		r.resolveExpr(data.Post)
		r.resolveBody(data.Body)
		r.popScope()
	case ast.StmtForIn, ast.StmtForOf:
		data, _ := b.Stmts.ForInOf(id)
		r.pushScope(ScopeBlock)
		if data.Decl.IsValid() {
			r.collect([]ast.StmtID{data.Decl})
			r.resolveStmt(data.Decl)
		}
		r.resolveExpr(data.Target)
		r.resolveExpr(data.Seq)
		r.resolveBody(data.Body)
		r.popScope()
	case ast.StmtSwitch:
		data, _ := b.Stmts.Switch(id)
		r.resolveExpr(data.Disc)
		r.pushScope(ScopeBlock)
		for _, c := range data.Cases {
			r.resolveExpr(c.Test)
			r.collect(c.Body)
		}
		for _, c := range data.Cases {
			r.resolveStmts(c.Body)
		}
		r.popScope()
	case ast.StmtBlock:
		r.resolveBody(id)
	case ast.StmtThrow:
		data, _ := b.Stmts.Throw(id)
		r.resolveExpr(data.Value)
	case ast.StmtTry:
		data, _ := b.Stmts.Try(id)
		r.resolveBody(data.Body)
		if data.CatchBody.IsValid() {
			r.pushScope(ScopeBlock)
			if nameValid(data.CatchParam) {
				r.declareValue(data.CatchParam, Symbol{Name: data.CatchParam, Kind: SymbolCatch})
			}
			r.resolveBody(data.CatchBody)
			r.popScope()
		}
		r.resolveBody(data.Finally)
	}
}

func (r *resolver) resolveClass(id ast.StmtID) {
	b := r.info.arenas
	data, _ := b.Stmts.Class(id)
	saved := r.curClass
	r.curClass = id
	for _, mid := range data.Members {
		m := b.Member(mid)
		if m == nil {
			continue
		}
		if m.Body.IsValid() || len(m.Params) > 0 {
			r.resolveFunctionScope(m.Params, m.Body)
		}
		r.resolveExpr(m.Init)
	}
	r.curClass = saved
}

// resolveFunctionScope — параметры и тело в одном function scope.
func (r *resolver) resolveFunctionScope(params []ast.ParamID, body ast.StmtID) {
	b := r.info.arenas
	r.pushScope(ScopeFunction)
	for _, pid := range params {
		param := b.Param(pid)
		if param == nil {
			continue
		}
		if param.Pat.IsValid() {
			r.collectPatBindings(param.Pat)
		} else {
			r.declareValue(param.Name, Symbol{Name: param.Name, Kind: SymbolParam, Span: param.NameSpan})
		}
	}
	r.resolveParamDefaults(params)
	if body.IsValid() {
		if data, ok := b.Stmts.Block(body); ok {
			r.collect(data.Stmts)
			r.resolveStmts(data.Stmts)
		} else {
			r.resolveStmt(body)
		}
	}
	r.popScope()
}

func (r *resolver) resolveParamDefaults(params []ast.ParamID) {
	for _, pid := range params {
		if param := r.info.arenas.Param(pid); param != nil {
			r.resolveExpr(param.Default)
			r.resolvePatDefaults(param.Pat)
		}
	}
}

func (r *resolver) resolvePatDefaults(id ast.PatID) {
	p := r.info.arenas.Pat(id)
	if p == nil {
		return
	}
	for _, prop := range p.Props {
		r.resolveExpr(prop.Default)
		r.resolvePatDefaults(prop.SubPat)
	}
	for _, el := range p.Elems {
		r.resolveExpr(el.Default)
		r.resolvePatDefaults(el.SubPat)
	}
}

// typeRefForDeclarator — тип переменной из аннотации либо из инициализатора.
func (r *resolver) typeRefForDeclarator(d ast.Declarator) TypeRef {
	if d.Type.IsValid() {
		if ref := r.typeRefForAnnotation(d.Type, 0); ref.IsKnown() {
			return ref
		}
	}
	return r.typeRefForInit(d.Init)
}

func (r *resolver) typeRefForAnnotation(id ast.TypeID, depth int) TypeRef {
	if depth > 8 {
		return TypeRef{}
	}
	t := r.info.arenas.Type(id)
	if t == nil || t.Kind != ast.TypeSynName {
		return TypeRef{}
	}
	if sym := r.lookupType(t.Name); sym.IsValid() {
		switch r.info.symbols[sym].Kind {
		case SymbolClass:
			return TypeRef{Kind: TypeClassInstance, Decl: r.info.symbols[sym].Decl}
		case SymbolInterface:
			return TypeRef{Kind: TypeInterface, Decl: r.info.symbols[sym].Decl}
		case SymbolTypeAlias:
			if target, ok := r.info.aliasByName[t.Name]; ok {
				return r.typeRefForAnnotation(target, depth+1)
			}
		}
	}
	return TypeRef{}
}

func (r *resolver) typeRefForInit(init ast.ExprID) TypeRef {
	if !init.IsValid() {
		return TypeRef{}
	}
	b := r.info.arenas
	switch b.Exprs.Kind(init) {
	case ast.ExprNew:
		data, _ := b.Exprs.New(init)
		if ident, ok := b.Exprs.Ident(data.Callee); ok {
			if sym := r.lookupValue(ident.Name); sym.IsValid() && r.info.symbols[sym].Kind == SymbolClass {
				return TypeRef{Kind: TypeClassInstance, Decl: r.info.symbols[sym].Decl}
			}
		}
	case ast.ExprObject:
		return TypeRef{Kind: TypeObjectLit, Obj: init}
	case ast.ExprIdent:
		data, _ := b.Exprs.Ident(init)
		if sym := r.lookupValue(data.Name); sym.IsValid() {
			if ref, ok := r.info.symTypes[sym]; ok {
				return ref
			}
			if r.info.symbols[sym].Kind == SymbolClass {
				return TypeRef{Kind: TypeClassStatic, Decl: r.info.symbols[sym].Decl}
			}
		}
	case ast.ExprThis:
		if r.curClass.IsValid() {
			return TypeRef{Kind: TypeClassInstance, Decl: r.curClass}
		}
	case ast.ExprNonNull:
		data, _ := b.Exprs.NonNull(init)
		return r.typeRefForInit(data.Operand)
	case ast.ExprCast:
		data, _ := b.Exprs.Cast(init)
		if ref := r.typeRefForAnnotation(data.Type, 0); ref.IsKnown() {
			return ref
		}
		return r.typeRefForInit(data.Operand)
	}
	return TypeRef{}
}

func (r *resolver) resolveExpr(id ast.ExprID) {
	if !id.IsValid() {
		return
	}
	b := r.info.arenas
	switch b.Exprs.Kind(id) {
	case ast.ExprIdent:
		data, _ := b.Exprs.Ident(id)
		if sym := r.lookupValue(data.Name); sym.IsValid() {
			r.info.refs[id] = sym
		}
	case ast.ExprThis, ast.ExprSuper:
		if r.curClass.IsValid() {
			r.info.thisClass[id] = r.curClass
		}
	case ast.ExprMember:
		data, _ := b.Exprs.Member(id)
		r.resolveExpr(data.Object)
	case ast.ExprIndex:
		data, _ := b.Exprs.Index(id)
		r.resolveExpr(data.Object)
		r.resolveExpr(data.Index)
	case ast.ExprCall:
		data, _ := b.Exprs.Call(id)
		r.resolveExpr(data.Callee)
		for _, arg := range data.Args {
			r.resolveExpr(arg)
		}
	case ast.ExprNew:
		data, _ := b.Exprs.New(id)
		r.resolveExpr(data.Callee)
		for _, arg := range data.Args {
			r.resolveExpr(arg)
		}
	case ast.ExprUnary:
		data, _ := b.Exprs.Unary(id)
		r.resolveExpr(data.Operand)
	case ast.ExprUpdate:
		data, _ := b.Exprs.Update(id)
		r.resolveExpr(data.Operand)
	case ast.ExprBinary:
		data, _ := b.Exprs.Binary(id)
		r.resolveExpr(data.Left)
		r.resolveExpr(data.Right)
	case ast.ExprLogical:
		data, _ := b.Exprs.Logical(id)
		r.resolveExpr(data.Left)
		r.resolveExpr(data.Right)
	case ast.ExprAssign:
		data, _ := b.Exprs.Assign(id)
		r.resolveExpr(data.Target)
		r.resolvePatDefaults(data.TargetPat)
		r.resolveExpr(data.Value)
	case ast.ExprTernary:
		data, _ := b.Exprs.Ternary(id)
		r.resolveExpr(data.Cond)
		r.resolveExpr(data.Then)
		r.resolveExpr(data.Else)
	case ast.ExprArrow:
		data, _ := b.Exprs.Arrow(id)
		// стрелка сохраняет this окружения
		body := data.BodyBlock
		if data.Body.IsValid() {
			r.resolveArrowExprBody(data.Params, data.Body)
		} else {
			r.resolveFunctionScope(data.Params, body)
		}
	case ast.ExprFunction:
		data, _ := b.Exprs.Function(id)
		saved := r.curClass
		r.curClass = ast.NoStmtID
		r.resolveFunctionScope(data.Params, data.Body)
		r.curClass = saved
	case ast.ExprObject:
		data, _ := b.Exprs.Object(id)
		for _, prop := range data.Props {
			r.resolveExpr(prop.Value)
		}
	case ast.ExprArray:
		data, _ := b.Exprs.Array(id)
		for _, el := range data.Elems {
			r.resolveExpr(el)
		}
	case ast.ExprTemplate:
		data, _ := b.Exprs.Template(id)
		for _, sub := range data.Subs {
			r.resolveExpr(sub)
		}
	case ast.ExprTagged:
		data, _ := b.Exprs.Tagged(id)
		r.resolveExpr(data.Tag)
		r.resolveExpr(data.Quasi)
	case ast.ExprNonNull:
		data, _ := b.Exprs.NonNull(id)
		r.resolveExpr(data.Operand)
	case ast.ExprCast:
		data, _ := b.Exprs.Cast(id)
		r.resolveExpr(data.Operand)
		if ref := r.typeRefForAnnotation(data.Type, 0); ref.IsKnown() {
			r.info.castTypes[id] = ref
		}
	case ast.ExprSpread:
		data, _ := b.Exprs.Spread(id)
		r.resolveExpr(data.Operand)
	}
}

func (r *resolver) resolveArrowExprBody(params []ast.ParamID, body ast.ExprID) {
	b := r.info.arenas
	r.pushScope(ScopeFunction)
	for _, pid := range params {
		param := b.Param(pid)
		if param == nil {
			continue
		}
		if param.Pat.IsValid() {
			r.collectPatBindings(param.Pat)
		} else {
			r.declareValue(param.Name, Symbol{Name: param.Name, Kind: SymbolParam, Span: param.NameSpan})
		}
	}
	r.resolveParamDefaults(params)
	r.resolveExpr(body)
	r.popScope()
}
