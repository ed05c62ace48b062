package lexer

import (
	"testing"

	"tether/internal/diag"
	"tether/internal/source"
	"tether/internal/token"
)

func lexAll(t *testing.T, src string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.ts", []byte(src)))
	bag := diag.NewBag(16)
	lx := New(file, Options{Reporter: &diag.BagReporter{Bag: bag}})

	var out []token.Token
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			break
		}
		out = append(out, tok)
		if len(out) > 10_000 {
			t.Fatalf("lexer did not terminate")
		}
	}
	return out, bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func expectKinds(t *testing.T, src string, want ...token.Kind) {
	t.Helper()
	toks, bag := lexAll(t, src)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("token count: got %d (%v), want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v (all: %v)", i, got[i], want[i], got)
		}
	}
}

func TestLexMemberAccessAndCall(t *testing.T) {
	expectKinds(t, "obj.method();",
		token.Ident, token.Dot, token.Ident, token.LParen, token.RParen, token.Semicolon)
}

func TestLexOptionalChainAndNonNull(t *testing.T) {
	expectKinds(t, "a?.b!.c",
		token.Ident, token.QuestionDot, token.Ident, token.Bang, token.Dot, token.Ident)
}

func TestLexTernaryWithNumberAfterQuestion(t *testing.T) {
	// "?." перед цифрой — это тернарник, не optional chaining
	expectKinds(t, "a?.5:b",
		token.Ident, token.Question, token.NumberLit, token.Colon, token.Ident)
}

func TestLexKeywordsVsContextual(t *testing.T) {
	toks, _ := lexAll(t, "class static as satisfies of typeof")
	want := []token.Kind{token.KwClass, token.KwStatic, token.Ident, token.Ident, token.Ident, token.KwTypeof}
	got := kinds(toks)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexGreedyOperators(t *testing.T) {
	expectKinds(t, "a === b !== c >>> d >>>= e ??= f ?? g",
		token.Ident, token.EqEqEq, token.Ident, token.NotEqEq, token.Ident,
		token.UShr, token.Ident, token.UShrAssign, token.Ident,
		token.CoalesceAssign, token.Ident, token.Coalesce, token.Ident)
}

func TestLexNumbers(t *testing.T) {
	expectKinds(t, "0 1_000 0xFF 0b1010 0o777 1.5e-3 .5 10n",
		token.NumberLit, token.NumberLit, token.NumberLit, token.NumberLit,
		token.NumberLit, token.NumberLit, token.NumberLit, token.NumberLit)
}

func TestLexStringsAndComments(t *testing.T) {
	expectKinds(t, `'a' "b\"c" // line comment
/* block */ x`,
		token.StringLit, token.StringLit, token.Ident)
}

func TestLexUnterminatedString(t *testing.T) {
	_, bag := lexAll(t, "'oops\n")
	if bag.Len() != 1 || bag.Items()[0].Code != diag.LexUnterminatedString {
		t.Fatalf("expected LexUnterminatedString, got %+v", bag.Items())
	}
}

func TestLexTemplateFull(t *testing.T) {
	expectKinds(t, "`hello`", token.TemplateFull)
}

func TestLexTemplateWithSubstitution(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.ts", []byte("`a${x}b`")))
	lx := New(file, Options{})

	head := lx.Next()
	if head.Kind != token.TemplateHead {
		t.Fatalf("expected TemplateHead, got %v", head.Kind)
	}
	if ident := lx.Next(); ident.Kind != token.Ident || ident.Text != "x" {
		t.Fatalf("expected ident x, got %v %q", ident.Kind, ident.Text)
	}
	if lx.Peek().Kind != token.RBrace {
		t.Fatalf("expected buffered '}', got %v", lx.Peek().Kind)
	}
	tail := lx.ReScanTemplate()
	if tail.Kind != token.TemplateTail || tail.Text != "}b`" {
		t.Fatalf("expected TemplateTail, got %v %q", tail.Kind, tail.Text)
	}
	if lx.Next().Kind != token.EOF {
		t.Fatalf("expected EOF")
	}
}

func TestLexRegexVsDivision(t *testing.T) {
	toks, bag := lexAll(t, "const re = /ab+c/gi; const q = a / b;")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	var sawRegex bool
	var slashes int
	for _, tok := range toks {
		if tok.Kind == token.RegexLit {
			sawRegex = true
			if tok.Text != "/ab+c/gi" {
				t.Fatalf("unexpected regex text %q", tok.Text)
			}
		}
		if tok.Kind == token.Slash {
			slashes++
		}
	}
	if !sawRegex {
		t.Fatalf("expected a regex literal")
	}
	if slashes != 1 {
		t.Fatalf("expected exactly one division, got %d", slashes)
	}
}

func TestLexUnicodeIdentifier(t *testing.T) {
	toks, bag := lexAll(t, "const café = 1;")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	if toks[1].Kind != token.Ident || toks[1].Text != "café" {
		t.Fatalf("expected unicode ident, got %v %q", toks[1].Kind, toks[1].Text)
	}
}

func TestLexSpreadAndArrow(t *testing.T) {
	expectKinds(t, "(...args) => 0",
		token.LParen, token.Ellipsis, token.Ident, token.RParen, token.Arrow, token.NumberLit)
}
