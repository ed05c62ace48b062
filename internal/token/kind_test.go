package token

import "testing"

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		ident string
		kind  Kind
		ok    bool
	}{
		{"class", KwClass, true},
		{"typeof", KwTypeof, true},
		{"static", KwStatic, true},
		{"as", Invalid, false},        // contextual
		{"satisfies", Invalid, false}, // contextual
		{"of", Invalid, false},        // contextual
		{"Class", Invalid, false},     // case-sensitive
	}
	for _, tt := range tests {
		k, ok := LookupKeyword(tt.ident)
		if ok != tt.ok {
			t.Errorf("LookupKeyword(%q) ok = %v, want %v", tt.ident, ok, tt.ok)
			continue
		}
		if ok && k != tt.kind {
			t.Errorf("LookupKeyword(%q) = %v, want %v", tt.ident, k, tt.kind)
		}
	}
}

func TestIsAssignOp(t *testing.T) {
	if !(Token{Kind: Assign}).IsAssignOp() {
		t.Fatalf("= must be an assignment operator")
	}
	if !(Token{Kind: CoalesceAssign}).IsAssignOp() {
		t.Fatalf("??= must be an assignment operator")
	}
	if (Token{Kind: EqEq}).IsAssignOp() {
		t.Fatalf("== is not an assignment operator")
	}
}
