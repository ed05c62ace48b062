package diag

import (
	"testing"

	"tether/internal/source"
)

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	if !b.Add(Diagnostic{Code: LintUnboundMethod}) {
		t.Fatalf("first add must succeed")
	}
	if !b.Add(Diagnostic{Code: LintUnboundMethod}) {
		t.Fatalf("second add must succeed")
	}
	if b.Add(Diagnostic{Code: LintUnboundMethod}) {
		t.Fatalf("third add must hit the limit")
	}
	if b.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", b.Len())
	}
}

func TestBagSortDeterministic(t *testing.T) {
	b := NewBag(8)
	b.Add(Diagnostic{Code: LintUnboundMethod, Severity: SevWarning, Primary: source.Span{File: 1, Start: 50, End: 55}})
	b.Add(Diagnostic{Code: SynUnexpectedToken, Severity: SevError, Primary: source.Span{File: 0, Start: 10, End: 12}})
	b.Add(Diagnostic{Code: LexUnknownChar, Severity: SevError, Primary: source.Span{File: 0, Start: 10, End: 12}})
	b.Sort()

	items := b.Items()
	if items[0].Primary.File != 0 || items[2].Primary.File != 1 {
		t.Fatalf("expected file order, got %+v", items)
	}
	// same span: code order (LEX1001 < SYN2001)
	if items[0].Code != LexUnknownChar || items[1].Code != SynUnexpectedToken {
		t.Fatalf("expected code tie-break, got %v then %v", items[0].Code, items[1].Code)
	}
}

func TestBagDedup(t *testing.T) {
	b := NewBag(8)
	sp := source.Span{File: 0, Start: 3, End: 9}
	b.Add(Diagnostic{Code: LintUnboundMethod, Primary: sp})
	b.Add(Diagnostic{Code: LintUnboundMethod, Primary: sp})
	b.Add(Diagnostic{Code: LintUnboundMethodNoThis, Primary: sp})
	b.Dedup()
	if b.Len() != 2 {
		t.Fatalf("expected 2 after dedup, got %d", b.Len())
	}
}

func TestBagMergeGrowsLimit(t *testing.T) {
	a := NewBag(1)
	a.Add(Diagnostic{Code: LintUnboundMethod})
	other := NewBag(2)
	other.Add(Diagnostic{Code: SynUnexpectedToken})
	other.Add(Diagnostic{Code: LexUnknownChar})

	a.Merge(other)
	if a.Len() != 3 {
		t.Fatalf("expected 3 after merge, got %d", a.Len())
	}
}

func TestHasErrorsAndWarnings(t *testing.T) {
	b := NewBag(4)
	b.Add(Diagnostic{Severity: SevWarning})
	if b.HasErrors() {
		t.Fatalf("warning-only bag must not report errors")
	}
	if !b.HasWarnings() {
		t.Fatalf("expected warnings")
	}
	b.Add(Diagnostic{Severity: SevError})
	if !b.HasErrors() {
		t.Fatalf("expected errors")
	}
}
