package unbound

import (
	"fmt"

	"tether/internal/ast"
	"tether/internal/diag"
	"tether/internal/sema"
	"tether/internal/source"
)

// Analyze проходит файл и репортит опасные отрывы методов от приёмника.
// На одну ссылку — максимум один диагноз.
func Analyze(arenas *ast.Builder, file ast.FileID, info *sema.Info, cfg Config, r diag.Reporter) {
	a := &analyzer{
		b:       arenas,
		info:    info,
		parents: ast.BuildParents(arenas, file),
		cfg:     cfg,
		r:       r,
	}
	f := arenas.Files.Get(file)
	if f == nil {
		return
	}
	for _, st := range f.Stmts {
		a.walkStmt(st)
	}
}

type analyzer struct {
	b       *ast.Builder
	info    *sema.Info
	parents *ast.Parents
	cfg     Config
	r       diag.Reporter
}

// checkMember — триггер №1: доступ к члену вне безопасного контекста.
func (a *analyzer) checkMember(id ast.ExprID) {
	data, ok := a.b.Exprs.Member(id)
	if !ok {
		return
	}
	if SafeContext(a.b, a.parents, id) {
		return
	}
	if ns, ambient := a.ambientBase(data.Object); ambient {
		prop := a.b.StringsInterner.MustLookup(data.Prop)
		if Exempt(ns + "." + prop) {
			return
		}
	}
	md, found := a.info.LookupMember(a.info.TypeOf(data.Object), data.Prop)
	a.reportIfDangerous(md, found, data.Prop, a.b.Exprs.Span(id), data.PropSpan)
}

// checkPat — триггер №2: деструктуризация объекта из выражения-источника.
// Каждое свойство оценивается независимо.
func (a *analyzer) checkPat(pid ast.PatID, src ast.ExprID) {
	p := a.b.Pat(pid)
	if p == nil || p.Kind != ast.PatObject || !src.IsValid() {
		return
	}
	ns, ambient := a.ambientBase(src)
	ref := a.info.TypeOf(src)
	for _, prop := range p.Props {
		if prop.Rest || prop.SubPat.IsValid() || prop.Key == source.NoStringID {
			continue
		}
		if ambient && Exempt(ns+"."+a.b.StringsInterner.MustLookup(prop.Key)) {
			continue
		}
		md, found := a.info.LookupMember(ref, prop.Key)
		a.reportIfDangerous(md, found, prop.Key, prop.KeySpan, prop.KeySpan)
	}
}

// ambientBase возвращает имя базы, если это голый идентификатор без
// локального объявления в файле. Только такие базы могут попасть под
// таблицу исключений: локальная тёзка глобального имени не исключается.
func (a *analyzer) ambientBase(base ast.ExprID) (string, bool) {
	if !base.IsValid() || a.b.Exprs.Kind(base) != ast.ExprIdent {
		return "", false
	}
	if a.info.IsDeclared(base) {
		return "", false
	}
	data, _ := a.b.Exprs.Ident(base)
	return a.b.StringsInterner.MustLookup(data.Name), true
}

func (a *analyzer) reportIfDangerous(md sema.MemberDecl, found bool, name source.StringID, primary, prop source.Span) {
	v := Classify(md, found, a.cfg)
	if !v.Dangerous {
		return
	}
	text := a.b.StringsInterner.MustLookup(name)
	msg := fmt.Sprintf("method %q is detached from its receiver; a later call will get the wrong `this`", text)
	if v.This == ThisMissing {
		notes := []diag.Note{{Span: prop, Msg: "declare `this: void` if the method does not use `this`"}}
		a.r.Report(diag.LintUnboundMethodNoThis, diag.SevWarning, primary, msg, notes)
		return
	}
	a.r.Report(diag.LintUnboundMethod, diag.SevWarning, primary, msg, nil)
}

func (a *analyzer) walkStmt(id ast.StmtID) {
	if !id.IsValid() {
		return
	}
	b := a.b
	switch b.Stmts.Kind(id) {
	case ast.StmtExpr:
		data, _ := b.Stmts.ExprStmt(id)
		a.walkExpr(data.Expr)
	case ast.StmtVarDecl:
		data, _ := b.Stmts.VarDecl(id)
		for _, d := range data.Decls {
			if d.Pat.IsValid() {
				a.checkPat(d.Pat, d.Init)
				a.walkPat(d.Pat)
			}
			a.walkExpr(d.Init)
		}
	case ast.StmtFunc:
		data, _ := b.Stmts.Func(id)
		a.walkParams(data.Params)
		a.walkStmt(data.Body)
	case ast.StmtClass:
		data, _ := b.Stmts.Class(id)
		for _, mid := range data.Members {
			m := b.Member(mid)
			if m == nil {
				continue
			}
			a.walkParams(m.Params)
			a.walkExpr(m.Init)
			a.walkStmt(m.Body)
		}
	case ast.StmtReturn:
		data, _ := b.Stmts.Return(id)
		a.walkExpr(data.Value)
	case ast.StmtIf:
		data, _ := b.Stmts.If(id)
		a.walkExpr(data.Cond)
		a.walkStmt(data.Then)
		a.walkStmt(data.Else)
	case ast.StmtWhile:
		data, _ := b.Stmts.While(id)
		a.walkExpr(data.Cond)
		a.walkStmt(data.Body)
	case ast.StmtDoWhile:
		data, _ := b.Stmts.DoWhile(id)
		a.walkStmt(data.Body)
		a.walkExpr(data.Cond)
	case ast.StmtFor:
		data, _ := b.Stmts.For(id)
		a.walkStmt(data.Init)
		a.walkExpr(data.Cond)
		a.walkExpr(data.Post)
		a.walkStmt(data.Body)
	case ast.StmtForIn, ast.StmtForOf:
		data, _ := b.Stmts.ForInOf(id)
		a.walkStmt(data.Decl)
		a.walkExpr(data.Target)
		a.walkExpr(data.Seq)
		a.walkStmt(data.Body)
	case ast.StmtSwitch:
		data, _ := b.Stmts.Switch(id)
		a.walkExpr(data.Disc)
		for _, c := range data.Cases {
			a.walkExpr(c.Test)
			for _, st := range c.Body {
				a.walkStmt(st)
			}
		}
	case ast.StmtBlock:
		data, _ := b.Stmts.Block(id)
		for _, st := range data.Stmts {
			a.walkStmt(st)
		}
	case ast.StmtThrow:
		data, _ := b.Stmts.Throw(id)
		a.walkExpr(data.Value)
	case ast.StmtTry:
		data, _ := b.Stmts.Try(id)
		a.walkStmt(data.Body)
		a.walkStmt(data.CatchBody)
		a.walkStmt(data.Finally)
	}
}

func (a *analyzer) walkExpr(id ast.ExprID) {
	if !id.IsValid() {
		return
	}
	b := a.b
	switch b.Exprs.Kind(id) {
	case ast.ExprMember:
		a.checkMember(id)
		data, _ := b.Exprs.Member(id)
		a.walkExpr(data.Object)
	case ast.ExprIndex:
		data, _ := b.Exprs.Index(id)
		a.walkExpr(data.Object)
		a.walkExpr(data.Index)
	case ast.ExprCall:
		data, _ := b.Exprs.Call(id)
		a.walkExpr(data.Callee)
		for _, arg := range data.Args {
			a.walkExpr(arg)
		}
	case ast.ExprNew:
		data, _ := b.Exprs.New(id)
		a.walkExpr(data.Callee)
		for _, arg := range data.Args {
			a.walkExpr(arg)
		}
	case ast.ExprUnary:
		data, _ := b.Exprs.Unary(id)
		a.walkExpr(data.Operand)
	case ast.ExprUpdate:
		data, _ := b.Exprs.Update(id)
		a.walkExpr(data.Operand)
	case ast.ExprBinary:
		data, _ := b.Exprs.Binary(id)
		a.walkExpr(data.Left)
		a.walkExpr(data.Right)
	case ast.ExprLogical:
		data, _ := b.Exprs.Logical(id)
		a.walkExpr(data.Left)
		a.walkExpr(data.Right)
	case ast.ExprAssign:
		data, _ := b.Exprs.Assign(id)
		if data.TargetPat.IsValid() {
			a.checkPat(data.TargetPat, data.Value)
			a.walkPat(data.TargetPat)
		}
		a.walkExpr(data.Target)
		a.walkExpr(data.Value)
	case ast.ExprTernary:
		data, _ := b.Exprs.Ternary(id)
		a.walkExpr(data.Cond)
		a.walkExpr(data.Then)
		a.walkExpr(data.Else)
	case ast.ExprArrow:
		data, _ := b.Exprs.Arrow(id)
		a.walkParams(data.Params)
		a.walkExpr(data.Body)
		a.walkStmt(data.BodyBlock)
	case ast.ExprFunction:
		data, _ := b.Exprs.Function(id)
		a.walkParams(data.Params)
		a.walkStmt(data.Body)
	case ast.ExprObject:
		data, _ := b.Exprs.Object(id)
		for _, prop := range data.Props {
			a.walkExpr(prop.Value)
		}
	case ast.ExprArray:
		data, _ := b.Exprs.Array(id)
		for _, el := range data.Elems {
			a.walkExpr(el)
		}
	case ast.ExprTemplate:
		data, _ := b.Exprs.Template(id)
		for _, sub := range data.Subs {
			a.walkExpr(sub)
		}
	case ast.ExprTagged:
		data, _ := b.Exprs.Tagged(id)
		a.walkExpr(data.Tag)
		a.walkExpr(data.Quasi)
	case ast.ExprNonNull:
		data, _ := b.Exprs.NonNull(id)
		a.walkExpr(data.Operand)
	case ast.ExprCast:
		data, _ := b.Exprs.Cast(id)
		a.walkExpr(data.Operand)
	case ast.ExprSpread:
		data, _ := b.Exprs.Spread(id)
		a.walkExpr(data.Operand)
	}
}

func (a *analyzer) walkParams(params []ast.ParamID) {
	for _, pid := range params {
		p := a.b.Param(pid)
		if p == nil {
			continue
		}
		a.walkExpr(p.Default)
		a.walkPat(p.Pat)
	}
}

func (a *analyzer) walkPat(id ast.PatID) {
	p := a.b.Pat(id)
	if p == nil {
		return
	}
	for _, prop := range p.Props {
		a.walkExpr(prop.Default)
		a.walkPat(prop.SubPat)
	}
	for _, el := range p.Elems {
		a.walkExpr(el.Default)
		a.walkPat(el.SubPat)
	}
}
