package sema

import (
	"testing"

	"tether/internal/ast"
	"tether/internal/diag"
	"tether/internal/lexer"
	"tether/internal/parser"
	"tether/internal/source"
)

type resolved struct {
	arenas *ast.Builder
	file   ast.FileID
	info   *Info
}

func resolve(t *testing.T, src string) resolved {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.ts", []byte(src)))
	bag := diag.NewBag(64)
	reporter := &diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	arenas := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseFile(fs, lx, arenas, parser.Options{Reporter: reporter})
	if bag.HasErrors() {
		t.Fatalf("parse errors: %+v", bag.Items())
	}
	return resolved{arenas: arenas, file: res.File, info: Resolve(arenas, res.File)}
}

// findIdent возвращает первый Ident-expr с данным текстом.
func (r resolved) findIdent(t *testing.T, name string) ast.ExprID {
	t.Helper()
	want := r.arenas.StringsInterner.Intern(name)
	for id := ast.ExprID(1); uint32(id) <= r.arenas.Exprs.Arena.Len(); id++ {
		if data, ok := r.arenas.Exprs.Ident(id); ok && data.Name == want {
			return id
		}
	}
	t.Fatalf("ident %q not found", name)
	return ast.NoExprID
}

func (r resolved) intern(s string) source.StringID {
	return r.arenas.StringsInterner.Intern(s)
}

func TestResolveAmbientVsDeclared(t *testing.T) {
	r := resolve(t, `
const local = {};
Object.keys(local);
`)
	if !r.info.IsDeclared(r.findIdent(t, "local")) {
		t.Fatalf("local must resolve to its declaration")
	}
	if r.info.IsDeclared(r.findIdent(t, "Object")) {
		t.Fatalf("Object must be ambient")
	}
}

func TestResolveShadowedGlobal(t *testing.T) {
	r := resolve(t, `
function wrap() {
  const Object = makeFake();
  Object.keys;
}
`)
	// оба употребления Object внутри wrap указывают на локальную константу
	want := r.intern("Object")
	for id := ast.ExprID(1); uint32(id) <= r.arenas.Exprs.Arena.Len(); id++ {
		if data, ok := r.arenas.Exprs.Ident(id); ok && data.Name == want {
			if !r.info.IsDeclared(id) {
				t.Fatalf("shadowed Object must resolve locally")
			}
		}
	}
}

func TestResolveBlockScopeDoesNotLeak(t *testing.T) {
	r := resolve(t, `
{
  const inner = 1;
}
inner;
`)
	// последний inner — вне блока
	want := r.intern("inner")
	var last ast.ExprID
	for id := ast.ExprID(1); uint32(id) <= r.arenas.Exprs.Arena.Len(); id++ {
		if data, ok := r.arenas.Exprs.Ident(id); ok && data.Name == want {
			last = id
		}
	}
	if r.info.IsDeclared(last) {
		t.Fatalf("block-scoped name must not leak")
	}
}

func TestTypeOfInstanceAndStatic(t *testing.T) {
	r := resolve(t, `
class Widget {
  render() {}
  static create() {}
}
const w = new Widget();
w.render;
Widget.create;
`)
	wRef := r.info.TypeOf(r.findIdent(t, "w"))
	if wRef.Kind != TypeClassInstance {
		t.Fatalf("w: %+v", wRef)
	}
	clsRef := r.info.TypeOf(r.findIdent(t, "Widget"))
	if clsRef.Kind != TypeClassStatic {
		t.Fatalf("Widget: %+v", clsRef)
	}

	if md, ok := r.info.LookupMember(wRef, r.intern("render")); !ok || md.Kind != ast.MemberMethod || md.Static {
		t.Fatalf("render: %+v %v", md, ok)
	}
	// статический член не виден с экземпляра
	if _, ok := r.info.LookupMember(wRef, r.intern("create")); ok {
		t.Fatalf("create must not be visible on the instance side")
	}
	if md, ok := r.info.LookupMember(clsRef, r.intern("create")); !ok || !md.Static {
		t.Fatalf("create: %+v %v", md, ok)
	}
}

func TestTypeOfAnnotatedInterface(t *testing.T) {
	r := resolve(t, `
interface Store {
  load(key: string): string;
}
declareStore();
const s: Store = build();
s.load;
`)
	ref := r.info.TypeOf(r.findIdent(t, "s"))
	if ref.Kind != TypeInterface {
		t.Fatalf("s: %+v", ref)
	}
	if md, ok := r.info.LookupMember(ref, r.intern("load")); !ok || md.Kind != ast.MemberMethodSig {
		t.Fatalf("load: %+v %v", md, ok)
	}
}

func TestLookupFollowsExtends(t *testing.T) {
	r := resolve(t, `
class Base { ping() {} }
class Derived extends Base { }
const d = new Derived();
d.ping;
`)
	ref := r.info.TypeOf(r.findIdent(t, "d"))
	if md, ok := r.info.LookupMember(ref, r.intern("ping")); !ok || md.Kind != ast.MemberMethod {
		t.Fatalf("ping via extends: %+v %v", md, ok)
	}
}

func TestLookupObjectLiteral(t *testing.T) {
	r := resolve(t, `
const svc = {
  run() {},
  handler: function () {},
  bound: () => {},
  value: 1,
};
svc.run;
`)
	ref := r.info.TypeOf(r.findIdent(t, "svc"))
	if ref.Kind != TypeObjectLit {
		t.Fatalf("svc: %+v", ref)
	}
	if md, _ := r.info.LookupMember(ref, r.intern("run")); md.Kind != ast.MemberMethod {
		t.Fatalf("run: %+v", md)
	}
	if md, _ := r.info.LookupMember(ref, r.intern("handler")); !md.FieldFunc {
		t.Fatalf("handler: %+v", md)
	}
	if md, _ := r.info.LookupMember(ref, r.intern("bound")); md.FieldFunc || md.Kind != ast.MemberField {
		t.Fatalf("bound: %+v", md)
	}
	if md, _ := r.info.LookupMember(ref, r.intern("value")); md.FieldFunc {
		t.Fatalf("value: %+v", md)
	}
}

func TestThisTypeVoidSurvivesLookup(t *testing.T) {
	r := resolve(t, `
class Svc {
  detached(this: void) {}
  attached(this: Svc) {}
  plain() {}
}
const s = new Svc();
`)
	ref := r.info.TypeOf(r.findIdent(t, "s"))
	md, _ := r.info.LookupMember(ref, r.intern("detached"))
	if !md.HasThisParam || !md.ThisTypeVoid {
		t.Fatalf("detached: %+v", md)
	}
	md, _ = r.info.LookupMember(ref, r.intern("attached"))
	if !md.HasThisParam || md.ThisTypeVoid {
		t.Fatalf("attached: %+v", md)
	}
	md, _ = r.info.LookupMember(ref, r.intern("plain"))
	if md.HasThisParam {
		t.Fatalf("plain: %+v", md)
	}
}

func TestTypeOfThisInsideMethod(t *testing.T) {
	r := resolve(t, `
class Timer {
  tick() {}
  start() {
    const self = this;
    self.tick;
  }
}
`)
	ref := r.info.TypeOf(r.findIdent(t, "self"))
	if ref.Kind != TypeClassInstance {
		t.Fatalf("self: %+v", ref)
	}
	if md, ok := r.info.LookupMember(ref, r.intern("tick")); !ok || md.Kind != ast.MemberMethod {
		t.Fatalf("tick: %+v %v", md, ok)
	}
}

func TestTypeOfSuperFollowsExtends(t *testing.T) {
	r := resolve(t, `
class Base { m() {} }
class Derived extends Base {
  constructor() { this.n = super.m; }
}
`)
	var superID ast.ExprID
	for id := ast.ExprID(1); uint32(id) <= r.arenas.Exprs.Arena.Len(); id++ {
		if r.arenas.Exprs.Kind(id) == ast.ExprSuper {
			superID = id
			break
		}
	}
	if !superID.IsValid() {
		t.Fatalf("super expression not found")
	}
	ref := r.info.TypeOf(superID)
	if ref.Kind != TypeClassInstance {
		t.Fatalf("super: %+v", ref)
	}
	base, ok := r.arenas.Stmts.Class(ref.Decl)
	if !ok || r.arenas.StringsInterner.MustLookup(base.Name) != "Base" {
		t.Fatalf("super must bind to Base, got %+v", base)
	}
	if md, found := r.info.LookupMember(ref, r.intern("m")); !found || md.Kind != ast.MemberMethod {
		t.Fatalf("m: %+v found=%v", md, found)
	}
}

func TestTypeOfSuperWithoutExtends(t *testing.T) {
	r := resolve(t, `
class Orphan {
  init() { this.x = super.x; }
}
`)
	for id := ast.ExprID(1); uint32(id) <= r.arenas.Exprs.Arena.Len(); id++ {
		if r.arenas.Exprs.Kind(id) == ast.ExprSuper {
			if ref := r.info.TypeOf(id); ref.Kind != TypeUnknown {
				t.Fatalf("super without extends must stay unknown: %+v", ref)
			}
		}
	}
}
