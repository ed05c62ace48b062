package source

import (
	"sync"
	"testing"
)

func TestInternerRoundTrip(t *testing.T) {
	in := NewInterner()

	id := in.Intern("filter")
	if id == NoStringID {
		t.Fatalf("expected non-zero ID")
	}
	if got := in.Intern("filter"); got != id {
		t.Fatalf("expected stable ID, got %d and %d", id, got)
	}
	if s := in.MustLookup(id); s != "filter" {
		t.Fatalf("expected %q, got %q", "filter", s)
	}
}

func TestInternerEmptyStringIsNoStringID(t *testing.T) {
	in := NewInterner()
	if id := in.Intern(""); id != NoStringID {
		t.Fatalf("empty string must map to NoStringID, got %d", id)
	}
	if in.Len() != 1 {
		t.Fatalf("fresh interner must hold exactly the empty string, len=%d", in.Len())
	}
}

func TestInternerNFCNormalization(t *testing.T) {
	in := NewInterner()

	composed := "caf\u00e9"         // é as one code point
	decomposed := "cafe\u0301"      // e + combining acute
	if composed == decomposed {
		t.Fatalf("test strings must differ byte-wise")
	}

	a := in.Intern(composed)
	b := in.Intern(decomposed)
	if a != b {
		t.Fatalf("canonically equivalent identifiers must share an ID: %d vs %d", a, b)
	}
	if got := in.MustLookup(a); got != composed {
		t.Fatalf("interner must store the NFC form, got %q", got)
	}
}

func TestInternerConcurrentIntern(t *testing.T) {
	in := NewInterner()
	words := []string{"a", "b", "c", "keys", "values", "entries"}

	var wg sync.WaitGroup
	ids := make([][]StringID, 8)
	for g := range ids {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			ids[g] = make([]StringID, len(words))
			for i, w := range words {
				ids[g][i] = in.Intern(w)
			}
		}(g)
	}
	wg.Wait()

	for g := 1; g < len(ids); g++ {
		for i := range words {
			if ids[g][i] != ids[0][i] {
				t.Fatalf("goroutine %d got different ID for %q", g, words[i])
			}
		}
	}
}

func TestInternerLookupInvalid(t *testing.T) {
	in := NewInterner()
	if _, ok := in.Lookup(StringID(42)); ok {
		t.Fatalf("lookup of unknown ID must fail")
	}
}
