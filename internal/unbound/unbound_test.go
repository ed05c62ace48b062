package unbound

import (
	"testing"

	"tether/internal/ast"
	"tether/internal/diag"
	"tether/internal/lexer"
	"tether/internal/parser"
	"tether/internal/sema"
	"tether/internal/source"
)

func analyze(t *testing.T, src string, cfg Config) []diag.Diagnostic {
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
	info := sema.Resolve(arenas, res.File)
	Analyze(arenas, res.File, info, cfg, reporter)
	return bag.Items()
}

func codes(items []diag.Diagnostic) []diag.Code {
	out := make([]diag.Code, 0, len(items))
	for _, d := range items {
		out = append(out, d.Code)
	}
	return out
}

const widgetDecl = `
class Widget {
  render() {}
  update(this: Widget) {}
  detached(this: void) {}
  handler = function () {};
  bound = () => {};
  count = 0;
  static create() {}
}
const w = new Widget();
`

func TestAnalyzeMemberAccess(t *testing.T) {
	tests := []struct {
		name string
		src  string
		cfg  Config
		want []diag.Code
	}{
		{
			name: "extract method without this param",
			src:  widgetDecl + `const fn = w.render;`,
			want: []diag.Code{diag.LintUnboundMethodNoThis},
		},
		{
			name: "extract method with declared this",
			src:  widgetDecl + `const fn = w.update;`,
			want: []diag.Code{diag.LintUnboundMethod},
		},
		{
			name: "this void is always safe",
			src:  widgetDecl + `const fn = w.detached;`,
			want: nil,
		},
		{
			name: "function-valued field",
			src:  widgetDecl + `const fn = w.handler;`,
			want: []diag.Code{diag.LintUnboundMethod},
		},
		{
			name: "arrow-valued field",
			src:  widgetDecl + `const fn = w.bound;`,
			want: nil,
		},
		{
			name: "plain data field",
			src:  widgetDecl + `const n = w.count;`,
			want: nil,
		},
		{
			name: "static method",
			src:  widgetDecl + `const fn = Widget.create;`,
			want: []diag.Code{diag.LintUnboundMethodNoThis},
		},
		{
			name: "static method with ignoreStatic",
			src:  widgetDecl + `const fn = Widget.create;`,
			cfg:  Config{IgnoreStatic: true},
			want: nil,
		},
		{
			name: "interface method signature",
			src: `
interface Store { load(key: string): string; free(this: void): void; }
const s: Store = build();
const f = s.load;
const g = s.free;
`,
			want: []diag.Code{diag.LintUnboundMethodNoThis},
		},
		{
			name: "object literal method and fields",
			src: `
const svc = { run() {}, handler: function () {}, bound: () => {} };
const a = svc.run;
const b = svc.handler;
const c = svc.bound;
`,
			want: []diag.Code{diag.LintUnboundMethodNoThis, diag.LintUnboundMethod},
		},
		{
			name: "inherited method through extends",
			src: `
class Base { ping() {} }
class Derived extends Base {}
const d = new Derived();
const f = d.ping;
`,
			want: []diag.Code{diag.LintUnboundMethodNoThis},
		},
		{
			name: "unknown base reports nothing",
			src:  `const f = mystery.method;`,
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := codes(analyze(t, tt.src, tt.cfg))
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestAnalyzeSafeContexts(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"call callee", widgetDecl + `w.render();`},
		{"paren call callee", widgetDecl + `(w.render)();`},
		{"optional call", widgetDecl + `w.render?.();`},
		{"non-null then call", widgetDecl + `w.render!();`},
		{"if condition", widgetDecl + `if (w.render) { w.render(); }`},
		{"while condition", widgetDecl + `while (w.render) {}`},
		{"for condition", widgetDecl + `for (;w.render;) {}`},
		{"switch discriminant", widgetDecl + `switch (w.render) {}`},
		{"ternary test", widgetDecl + `const x = w.render ? 1 : 2;`},
		{"typeof", widgetDecl + `const x = typeof w.render;`},
		{"negation", widgetDecl + `const x = !w.render;`},
		{"void discard", widgetDecl + `void w.render;`},
		{"delete", widgetDecl + `delete w.handler;`},
		{"equality", widgetDecl + `const x = w.render === other;`},
		{"instanceof", widgetDecl + `const x = w.render instanceof Function;`},
		{"update operand", widgetDecl + `w.count++;`},
		{"member base", widgetDecl + `const x = w.render.name;`},
		{"index base", widgetDecl + `const x = w.render["name"];`},
		{"assignment target", widgetDecl + `w.handler = other;`},
		{"logical and left", widgetDecl + `const x = w.render && 1;`},
		{"tagged template tag", widgetDecl + "w.render`x`;"},
		{
			"super self-rebind",
			`
class Base { m() {} }
class Derived extends Base {
  constructor() { this.m = super.m; }
}
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := analyze(t, tt.src, Config{}); len(got) != 0 {
				t.Fatalf("unexpected diagnostics: %+v", got)
			}
		})
	}
}

func TestAnalyzeUnsafeContexts(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"var initializer", widgetDecl + `const fn = w.render;`},
		{"call argument", widgetDecl + `register(w.render);`},
		{"array element", widgetDecl + `const xs = [w.render];`},
		{"object value", widgetDecl + `const o = { cb: w.render };`},
		{"return value", widgetDecl + `function pick() { return w.render; }`},
		{"logical and right", widgetDecl + `const x = cond && w.render;`},
		{"logical or left stored", widgetDecl + `const x = w.render || fallback;`},
		{"ternary branch", widgetDecl + `const x = cond ? w.render : null;`},
		{"cast then stored", widgetDecl + `const x = w.render as Handler;`},
		{"addition operand", widgetDecl + `const x = w.render + "";`},
		{"compound assignment value", widgetDecl + `acc += w.render;`},
		{"super rebind different name", `
class Base { m() {} }
class Derived extends Base {
  constructor() { this.n = super.m; }
}
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := analyze(t, tt.src, Config{})
			if len(got) != 1 {
				t.Fatalf("want one diagnostic, got %+v", got)
			}
		})
	}
}

func TestAnalyzeDestructuring(t *testing.T) {
	src := `
class Svc {
  run() {}
  stop(this: void) {}
  bound = () => {};
}
const s = new Svc();
const { run, stop, bound } = s;
`
	got := analyze(t, src, Config{})
	if len(got) != 1 || got[0].Code != diag.LintUnboundMethodNoThis {
		t.Fatalf("got %+v", got)
	}
}

func TestAnalyzeDestructuringAssignment(t *testing.T) {
	src := `
class Svc { run() {} }
const s = new Svc();
({ run } = s);
`
	got := analyze(t, src, Config{})
	if len(got) != 1 || got[0].Code != diag.LintUnboundMethodNoThis {
		t.Fatalf("got %+v", got)
	}
}

func TestAnalyzeDestructuringRenamedKey(t *testing.T) {
	// переименование связывает то же свойство, ключ остаётся прежним
	src := `
class Svc { run() {} }
const s = new Svc();
const { run: go } = s;
`
	got := analyze(t, src, Config{})
	if len(got) != 1 {
		t.Fatalf("got %+v", got)
	}
}

func TestShadowedGlobalIsNotExempt(t *testing.T) {
	src := `
class Fake { keys() {} }
const Object = new Fake();
const k = Object.keys;
`
	got := analyze(t, src, Config{})
	if len(got) != 1 || got[0].Code != diag.LintUnboundMethodNoThis {
		t.Fatalf("shadowed namespace must still report: %+v", got)
	}
}

func TestAmbientGlobalReference(t *testing.T) {
	// неэкранированный глобал: вынос экзмптированного члена молчит,
	// вызов безопасен в любом случае
	for _, src := range []string{
		`const f = Object.getOwnPropertyNames;`,
		`Object.getOwnPropertyNames(x);`,
		`const { log, warn } = console;`,
	} {
		if got := analyze(t, src, Config{}); len(got) != 0 {
			t.Fatalf("%s: unexpected %+v", src, got)
		}
	}
}

func TestNoThisDiagnosticCarriesSuggestion(t *testing.T) {
	got := analyze(t, widgetDecl+`const fn = w.render;`, Config{})
	if len(got) != 1 {
		t.Fatalf("got %+v", got)
	}
	d := got[0]
	if d.Code != diag.LintUnboundMethodNoThis || d.Severity != diag.SevWarning {
		t.Fatalf("got %+v", d)
	}
	if len(d.Notes) != 1 {
		t.Fatalf("want a suggestion note, got %+v", d.Notes)
	}
}

func TestExemptTable(t *testing.T) {
	exempt := []string{
		"Object.keys",
		"Object.getOwnPropertyNames",
		"Math.max",
		"JSON.stringify",
		"console.log",
		"Number.parseInt",
		"Date.now",
		"Reflect.apply",
	}
	for _, q := range exempt {
		if !Exempt(q) {
			t.Errorf("%s must be exempt", q)
		}
	}
	denied := []string{
		"Promise.all",
		"Promise.resolve",
		"Reflect.get",
		"Reflect.set",
		"Object.unknown",
		"Widget.create",
	}
	for _, q := range denied {
		if Exempt(q) {
			t.Errorf("%s must not be exempt", q)
		}
	}
}

func TestClassifyAbsentDeclaration(t *testing.T) {
	if v := Classify(sema.MemberDecl{}, false, Config{}); v.Dangerous {
		t.Fatalf("absent declaration must be conservative: %+v", v)
	}
}

func TestClassifyStaticWithThisParam(t *testing.T) {
	// Объявленный this: T сильнее ignoreStatic: автор попросил приёмник.
	md := sema.MemberDecl{Kind: ast.MemberMethod, Static: true, HasThisParam: true}
	if v := Classify(md, true, Config{IgnoreStatic: true}); !v.Dangerous || v.This != ThisDeclared {
		t.Fatalf("static with this param: %+v", v)
	}
	md.ThisTypeVoid = true
	if v := Classify(md, true, Config{IgnoreStatic: true}); v.Dangerous {
		t.Fatalf("this: void must win: %+v", v)
	}
}
