package source

import (
	"testing"
)

func TestFileSetAddVirtualAndResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.ts", []byte("const a = 1;\nconst b = 2;\n"))

	file := fs.Get(id)
	if file.Path != "test.ts" {
		t.Fatalf("unexpected path %q", file.Path)
	}
	if file.Flags&FileVirtual == 0 {
		t.Fatalf("expected FileVirtual flag")
	}

	// "const b" starts at byte 13, line 2 col 1.
	start, _ := fs.Resolve(Span{File: id, Start: 13, End: 18})
	if start.Line != 2 || start.Col != 1 {
		t.Fatalf("expected 2:1, got %d:%d", start.Line, start.Col)
	}
}

func TestFileSetGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("x.ts", []byte("one\ntwo\nthree"))
	f := fs.Get(id)

	tests := []struct {
		line uint32
		want string
	}{
		{1, "one"},
		{2, "two"},
		{3, "three"},
		{4, ""},
		{0, ""},
	}
	for _, tt := range tests {
		if got := f.GetLine(tt.line); got != tt.want {
			t.Errorf("GetLine(%d) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestFileSetNormalizesCRLFAndBOM(t *testing.T) {
	fs := NewFileSet()
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("let x = 1;\r\nlet y = 2;\r\n")...)

	// Add normalizes nothing; emulate Load's pipeline directly.
	content, hadBOM := removeBOM(raw)
	if !hadBOM {
		t.Fatalf("expected BOM to be detected")
	}
	content, hadCRLF := normalizeCRLF(content)
	if !hadCRLF {
		t.Fatalf("expected CRLF to be normalized")
	}
	id := fs.Add("crlf.ts", content, FileHadBOM|FileNormalizedCRLF)

	f := fs.Get(id)
	for _, b := range f.Content {
		if b == '\r' {
			t.Fatalf("content still contains \\r")
		}
	}
	if f.GetLine(2) != "let y = 2;" {
		t.Fatalf("unexpected second line %q", f.GetLine(2))
	}
}

func TestToLineColSingleLine(t *testing.T) {
	lc := toLineCol(nil, 7)
	if lc.Line != 1 || lc.Col != 8 {
		t.Fatalf("expected 1:8, got %d:%d", lc.Line, lc.Col)
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 10, End: 20}
	b := Span{File: 1, Start: 5, End: 15}
	c := a.Cover(b)
	if c.Start != 5 || c.End != 20 {
		t.Fatalf("unexpected cover %+v", c)
	}
	// другой файл — не расширяем
	d := a.Cover(Span{File: 2, Start: 0, End: 100})
	if d != a {
		t.Fatalf("cover across files must be a no-op")
	}
}
