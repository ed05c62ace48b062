package parser

import (
	"testing"

	"tether/internal/ast"
	"tether/internal/diag"
	"tether/internal/lexer"
	"tether/internal/source"
)

type parsed struct {
	fs     *source.FileSet
	arenas *ast.Builder
	file   ast.FileID
	bag    *diag.Bag
}

func parse(t *testing.T, src string) parsed {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.ts", []byte(src)))
	bag := diag.NewBag(64)
	reporter := &diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	arenas := ast.NewBuilder(ast.Hints{}, nil)
	res := ParseFile(fs, lx, arenas, Options{Reporter: reporter})
	return parsed{fs: fs, arenas: arenas, file: res.File, bag: bag}
}

func parseClean(t *testing.T, src string) parsed {
	t.Helper()
	p := parse(t, src)
	if p.bag.HasErrors() {
		t.Fatalf("unexpected parse errors: %+v", p.bag.Items())
	}
	return p
}

func (p parsed) topStmts() []ast.StmtID {
	return p.arenas.Files.Get(p.file).Stmts
}

func (p parsed) lookup(id source.StringID) string {
	return p.arenas.StringsInterner.MustLookup(id)
}

func TestParseVarDecl(t *testing.T) {
	p := parseClean(t, "const fn = instance.bound;")
	stmts := p.topStmts()
	if len(stmts) != 1 {
		t.Fatalf("want 1 stmt, got %d", len(stmts))
	}
	data, ok := p.arenas.Stmts.VarDecl(stmts[0])
	if !ok || data.Mode != ast.DeclConst || len(data.Decls) != 1 {
		t.Fatalf("bad var decl: %+v", data)
	}
	d := data.Decls[0]
	if p.lookup(d.Name) != "fn" {
		t.Fatalf("decl name: %q", p.lookup(d.Name))
	}
	member, ok := p.arenas.Exprs.Member(d.Init)
	if !ok || p.lookup(member.Prop) != "bound" {
		t.Fatalf("init is not member access: %+v", member)
	}
	obj, ok := p.arenas.Exprs.Ident(member.Object)
	if !ok || p.lookup(obj.Name) != "instance" {
		t.Fatalf("member object: %+v", obj)
	}
}

func TestParseParensAreTransparent(t *testing.T) {
	p := parseClean(t, "(obj.method)();")
	stmts := p.topStmts()
	es, _ := p.arenas.Stmts.ExprStmt(stmts[0])
	call, ok := p.arenas.Exprs.Call(es.Expr)
	if !ok {
		t.Fatalf("expected call")
	}
	if p.arenas.Exprs.Kind(call.Callee) != ast.ExprMember {
		t.Fatalf("callee must be the member access itself, got %v", p.arenas.Exprs.Kind(call.Callee))
	}
}

func TestParseOptionalChainAndNonNull(t *testing.T) {
	p := parseClean(t, "a?.b!.c();")
	es, _ := p.arenas.Stmts.ExprStmt(p.topStmts()[0])
	call, ok := p.arenas.Exprs.Call(es.Expr)
	if !ok {
		t.Fatalf("expected call")
	}
	outer, ok := p.arenas.Exprs.Member(call.Callee)
	if !ok || p.lookup(outer.Prop) != "c" {
		t.Fatalf("outer member: %+v", outer)
	}
	nn, ok := p.arenas.Exprs.NonNull(outer.Object)
	if !ok {
		t.Fatalf("expected non-null assertion under .c")
	}
	inner, ok := p.arenas.Exprs.Member(nn.Operand)
	if !ok || !inner.Optional || p.lookup(inner.Prop) != "b" {
		t.Fatalf("inner optional member: %+v", inner)
	}
}

func TestParseClassMembers(t *testing.T) {
	p := parseClean(t, `
class Widget extends Base {
  count = 0;
  static origin = null;
  render(): void { return; }
  static create() { return new Widget(); }
  detached(this: void) { }
  annotated(this: Widget, x: number) { }
}`)
	cls, ok := p.arenas.Stmts.Class(p.topStmts()[0])
	if !ok {
		t.Fatalf("expected class")
	}
	if p.lookup(cls.Extends) != "Base" {
		t.Fatalf("extends: %q", p.lookup(cls.Extends))
	}
	if len(cls.Members) != 6 {
		t.Fatalf("want 6 members, got %d", len(cls.Members))
	}

	byName := map[string]*ast.Member{}
	for _, mid := range cls.Members {
		m := p.arenas.Member(mid)
		byName[p.lookup(m.Name)] = m
	}

	if m := byName["count"]; m.Kind != ast.MemberField || m.Static {
		t.Fatalf("count: %+v", m)
	}
	if m := byName["origin"]; m.Kind != ast.MemberField || !m.Static {
		t.Fatalf("origin: %+v", m)
	}
	if m := byName["render"]; m.Kind != ast.MemberMethod || m.Static || m.HasThisParam {
		t.Fatalf("render: %+v", m)
	}
	if m := byName["create"]; m.Kind != ast.MemberMethod || !m.Static {
		t.Fatalf("create: %+v", m)
	}
	if m := byName["detached"]; !m.HasThisParam || !m.ThisTypeVoid {
		t.Fatalf("detached: %+v", m)
	}
	if m := byName["annotated"]; !m.HasThisParam || m.ThisTypeVoid {
		t.Fatalf("annotated: %+v", m)
	}
}

func TestParseInterfaceMembers(t *testing.T) {
	p := parseClean(t, `
interface Store {
  size: number;
  load(key: string): string;
  reset(this: void): void;
}`)
	iface, ok := p.arenas.Stmts.Interface(p.topStmts()[0])
	if !ok || len(iface.Members) != 3 {
		t.Fatalf("interface: %+v", iface)
	}
	size := p.arenas.Member(iface.Members[0])
	if size.Kind != ast.MemberPropSig {
		t.Fatalf("size: %+v", size)
	}
	load := p.arenas.Member(iface.Members[1])
	if load.Kind != ast.MemberMethodSig || load.HasThisParam {
		t.Fatalf("load: %+v", load)
	}
	reset := p.arenas.Member(iface.Members[2])
	if reset.Kind != ast.MemberMethodSig || !reset.ThisTypeVoid {
		t.Fatalf("reset: %+v", reset)
	}
}

func TestParseDestructuringDecl(t *testing.T) {
	p := parseClean(t, "const { log, warn: notify } = console;")
	decl, _ := p.arenas.Stmts.VarDecl(p.topStmts()[0])
	pat := p.arenas.Pat(decl.Decls[0].Pat)
	if pat == nil || pat.Kind != ast.PatObject || len(pat.Props) != 2 {
		t.Fatalf("pattern: %+v", pat)
	}
	if p.lookup(pat.Props[0].Key) != "log" || p.lookup(pat.Props[0].Binding) != "log" {
		t.Fatalf("shorthand prop: %+v", pat.Props[0])
	}
	if p.lookup(pat.Props[1].Key) != "warn" || p.lookup(pat.Props[1].Binding) != "notify" {
		t.Fatalf("renamed prop: %+v", pat.Props[1])
	}
}

func TestParseDestructuringAssignment(t *testing.T) {
	p := parseClean(t, "({ method } = obj);")
	es, _ := p.arenas.Stmts.ExprStmt(p.topStmts()[0])
	assign, ok := p.arenas.Exprs.Assign(es.Expr)
	if !ok || !assign.TargetPat.IsValid() {
		t.Fatalf("expected pattern assignment: %+v", assign)
	}
	pat := p.arenas.Pat(assign.TargetPat)
	if len(pat.Props) != 1 || p.lookup(pat.Props[0].Key) != "method" {
		t.Fatalf("pattern: %+v", pat)
	}
}

func TestParseArrowForms(t *testing.T) {
	p := parseClean(t, `
const a = x => x;
const b = (x, y) => x;
const c = (x: number, y: string) => x;
const d = (...rest) => rest;
const e = async (x) => x;
`)
	for i, want := range []int{1, 2, 2, 1, 1} {
		decl, _ := p.arenas.Stmts.VarDecl(p.topStmts()[i])
		arrow, ok := p.arenas.Exprs.Arrow(decl.Decls[0].Init)
		if !ok {
			t.Fatalf("stmt %d: expected arrow", i)
		}
		if len(arrow.Params) != want {
			t.Fatalf("stmt %d: want %d params, got %d", i, want, len(arrow.Params))
		}
	}
	decl, _ := p.arenas.Stmts.VarDecl(p.topStmts()[4])
	arrow, _ := p.arenas.Exprs.Arrow(decl.Decls[0].Init)
	if !arrow.Async {
		t.Fatalf("expected async arrow")
	}
}

func TestParseTemplateWithSubstitutions(t *testing.T) {
	p := parseClean(t, "const s = `a${x}b${y.z}c`;")
	decl, _ := p.arenas.Stmts.VarDecl(p.topStmts()[0])
	tpl, ok := p.arenas.Exprs.Template(decl.Decls[0].Init)
	if !ok || len(tpl.Subs) != 2 {
		t.Fatalf("template: %+v", tpl)
	}
	if p.arenas.Exprs.Kind(tpl.Subs[1]) != ast.ExprMember {
		t.Fatalf("second substitution must be member access")
	}
}

func TestParseTaggedTemplate(t *testing.T) {
	p := parseClean(t, "tag`x${v}y`;")
	es, _ := p.arenas.Stmts.ExprStmt(p.topStmts()[0])
	tagged, ok := p.arenas.Exprs.Tagged(es.Expr)
	if !ok {
		t.Fatalf("expected tagged template")
	}
	if p.arenas.Exprs.Kind(tagged.Tag) != ast.ExprIdent {
		t.Fatalf("tag must be ident")
	}
}

func TestParseCastChain(t *testing.T) {
	p := parseClean(t, "const f = (obj.method as Fn) satisfies Fn;")
	decl, _ := p.arenas.Stmts.VarDecl(p.topStmts()[0])
	outer, ok := p.arenas.Exprs.Cast(decl.Decls[0].Init)
	if !ok || !outer.Satisfies {
		t.Fatalf("outer cast: %+v", outer)
	}
	inner, ok := p.arenas.Exprs.Cast(outer.Operand)
	if !ok || inner.Satisfies {
		t.Fatalf("inner cast: %+v", inner)
	}
	if p.arenas.Exprs.Kind(inner.Operand) != ast.ExprMember {
		t.Fatalf("cast operand must be member access")
	}
}

func TestParseControlFlow(t *testing.T) {
	p := parseClean(t, `
if (obj.method) { obj.method(); } else { }
while (x.ready) { break; }
do { continue; } while (y.done);
for (let i = 0; i < n; i++) { }
for (const k in obj) { }
for (const v of list) { }
switch (obj.kind) { case 1: break; default: break; }
try { risky(); } catch (e) { } finally { }
`)
	kinds := []ast.StmtKind{
		ast.StmtIf, ast.StmtWhile, ast.StmtDoWhile, ast.StmtFor,
		ast.StmtForIn, ast.StmtForOf, ast.StmtSwitch, ast.StmtTry,
	}
	stmts := p.topStmts()
	if len(stmts) != len(kinds) {
		t.Fatalf("want %d stmts, got %d", len(kinds), len(stmts))
	}
	for i, want := range kinds {
		if got := p.arenas.Stmts.Kind(stmts[i]); got != want {
			t.Fatalf("stmt %d: got %v, want %v", i, got, want)
		}
	}
}

func TestParseRecoversAfterError(t *testing.T) {
	p := parse(t, "const = 1;\nconst ok = obj.method;")
	if !p.bag.HasErrors() {
		t.Fatalf("expected a parse error")
	}
	var sawOK bool
	for _, st := range p.topStmts() {
		if decl, ok := p.arenas.Stmts.VarDecl(st); ok {
			for _, d := range decl.Decls {
				if d.Name != source.NoStringID && p.lookup(d.Name) == "ok" {
					sawOK = true
				}
			}
		}
	}
	if !sawOK {
		t.Fatalf("parser did not recover to the next declaration")
	}
}

func TestParseTypeAliasAndGenerics(t *testing.T) {
	p := parseClean(t, `
type Handler = (e: Event) => void;
const xs = new Map<string, number>();
`)
	alias, ok := p.arenas.Stmts.TypeAlias(p.topStmts()[0])
	if !ok {
		t.Fatalf("expected type alias")
	}
	typ := p.arenas.Type(alias.Type)
	if typ.Kind != ast.TypeSynFn {
		t.Fatalf("alias type: %+v", typ)
	}
}

func TestParseFunctionExprThisParam(t *testing.T) {
	p := parseClean(t, `
const f = function (this: void) { return 1; };
const g = function (this, x) { return x; };
`)
	declF, _ := p.arenas.Stmts.VarDecl(p.topStmts()[0])
	fn, ok := p.arenas.Exprs.Function(declF.Decls[0].Init)
	if !ok || !fn.HasThisParam || !fn.ThisTypeVoid || len(fn.Params) != 0 {
		t.Fatalf("f: %+v", fn)
	}
	declG, _ := p.arenas.Stmts.VarDecl(p.topStmts()[1])
	fn, ok = p.arenas.Exprs.Function(declG.Decls[0].Init)
	if !ok || !fn.HasThisParam || fn.ThisTypeVoid || len(fn.Params) != 1 {
		t.Fatalf("g: %+v", fn)
	}
}
