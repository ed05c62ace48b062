package ast

import (
	"testing"

	"tether/internal/source"
)

func TestArenaOneBased(t *testing.T) {
	a := NewArena[int](0)
	if got := a.Get(0); got != nil {
		t.Fatalf("Get(0) must be nil, got %v", got)
	}
	id := a.Allocate(42)
	if id != 1 {
		t.Fatalf("first allocation must be 1, got %d", id)
	}
	if got := a.Get(id); got == nil || *got != 42 {
		t.Fatalf("Get(%d) = %v", id, got)
	}
	if got := a.Get(2); got != nil {
		t.Fatalf("out of range Get must be nil, got %v", got)
	}
	if a.Len() != 1 {
		t.Fatalf("Len = %d", a.Len())
	}
}

func TestExprsKindMismatch(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	in := b.StringsInterner
	id := b.Exprs.NewIdent(source.Span{}, in.Intern("x"))
	if _, ok := b.Exprs.Member(id); ok {
		t.Fatalf("Member accessor must reject an ident expression")
	}
	if data, ok := b.Exprs.Ident(id); !ok || data.Name != in.Intern("x") {
		t.Fatalf("Ident accessor failed: %v %v", data, ok)
	}
}

// Строим вручную: if (obj.m) { obj.m(); }
func TestBuildParents(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	in := b.StringsInterner
	obj := in.Intern("obj")
	m := in.Intern("m")

	condObj := b.Exprs.NewIdent(source.Span{}, obj)
	condMember := b.Exprs.NewMember(source.Span{}, condObj, m, source.Span{}, false)

	callObj := b.Exprs.NewIdent(source.Span{}, obj)
	callMember := b.Exprs.NewMember(source.Span{}, callObj, m, source.Span{}, false)
	call := b.Exprs.NewCall(source.Span{}, callMember, nil, false)
	callStmt := b.Stmts.NewExprStmt(source.Span{}, call)
	body := b.Stmts.NewBlock(source.Span{}, []StmtID{callStmt})

	ifStmt := b.Stmts.NewIf(source.Span{}, condMember, body, NoStmtID)

	file := b.NewFile(source.Span{})
	b.PushStmt(file, ifStmt)

	parents := BuildParents(b, file)

	if got := parents.Get(condMember); got != StmtRef(ifStmt) {
		t.Fatalf("condition parent: got %+v, want if stmt", got)
	}
	if got := parents.Get(condObj); got != ExprRef(condMember) {
		t.Fatalf("condition object parent: got %+v", got)
	}
	if got := parents.Get(callMember); got != ExprRef(call) {
		t.Fatalf("callee parent: got %+v", got)
	}
	if got := parents.Get(call); got != StmtRef(callStmt) {
		t.Fatalf("call parent: got %+v", got)
	}
	if got := parents.Get(NoExprID); got.IsValid() {
		t.Fatalf("NoExprID must have no parent")
	}
}

func TestBuildParentsDestructuringDefaults(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	in := b.StringsInterner

	// const { m = fallback.pick } = obj;
	def := b.Exprs.NewMember(source.Span{},
		b.Exprs.NewIdent(source.Span{}, in.Intern("fallback")),
		in.Intern("pick"), source.Span{}, false)
	pat := b.NewPat(Pat{
		Kind: PatObject,
		Props: []PatProp{{
			Key:     in.Intern("m"),
			Binding: in.Intern("m"),
			Default: def,
		}},
	})
	init := b.Exprs.NewIdent(source.Span{}, in.Intern("obj"))
	decl := b.Stmts.NewVarDecl(source.Span{}, DeclConst, []Declarator{{Pat: pat, Init: init}})

	file := b.NewFile(source.Span{})
	b.PushStmt(file, decl)

	parents := BuildParents(b, file)
	if got := parents.Get(def); got != PatRef(pat) {
		t.Fatalf("default parent: got %+v, want pattern", got)
	}
	if got := parents.Get(init); got != StmtRef(decl) {
		t.Fatalf("init parent: got %+v, want decl stmt", got)
	}
}
