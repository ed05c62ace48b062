package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"tether/internal/diag"
	"tether/internal/source"
)

func makeBag(fileID source.FileID, start, end uint32) *diag.Bag {
	bag := diag.NewBag(10)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     diag.LintUnboundMethod,
		Message:  "method \"render\" is detached from its receiver",
		Primary:  source.Span{File: fileID, Start: start, End: end},
	})
	return bag
}

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSetWithBase("/home/user/project")
	content := []byte("const fn = w.render;\n")
	fileID := fs.AddVirtual("/home/user/project/src/test.ts", content)
	bag := makeBag(fileID, 11, 19)

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/project/src/test.ts"},
		{"Relative path", PathModeRelative, "src/test.ts"},
		{"Basename only", PathModeBasename, "test.ts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode})
			output := buf.String()

			if !strings.Contains(output, tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, output)
			}
			if !strings.Contains(output, "WARNING") {
				t.Error("Expected WARNING in output")
			}
			if !strings.Contains(output, "LINT4001") {
				t.Error("Expected LINT4001 code in output")
			}
			if !strings.Contains(output, "detached from its receiver") {
				t.Error("Expected message in output")
			}
		})
	}
}

func TestPrettySnippetAndCaret(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("const a = 1;\nconst fn = w.render;\n")
	fileID := fs.AddVirtual("test.ts", content)
	// спан на "w.render" второй строки
	bag := makeBag(fileID, 24, 32)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	output := buf.String()

	if !strings.Contains(output, "test.ts:2:12:") {
		t.Fatalf("expected location 2:12, got:\n%s", output)
	}
	if !strings.Contains(output, "const fn = w.render;") {
		t.Fatalf("expected source line, got:\n%s", output)
	}
	if !strings.Contains(output, "^~~~~~~") {
		t.Fatalf("expected caret underline, got:\n%s", output)
	}
}

func TestPrettyContextLines(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("one();\ntwo();\nthree();\n")
	fileID := fs.AddVirtual("ctx.ts", content)
	bag := makeBag(fileID, 7, 10)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, Context: 1})
	output := buf.String()

	for _, want := range []string{"one();", "two();", "three();"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected context line %q, got:\n%s", want, output)
		}
	}
}

func TestPrettyNotes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("const fn = w.render;\n")
	fileID := fs.AddVirtual("test.ts", content)

	bag := diag.NewBag(4)
	d := diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     diag.LintUnboundMethodNoThis,
		Message:  "method \"render\" is detached from its receiver",
		Primary:  source.Span{File: fileID, Start: 11, End: 19},
	}
	d = d.WithNote(source.Span{File: fileID, Start: 13, End: 19}, "declare `this: void` if the method does not use `this`")
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowNotes: true})
	output := buf.String()

	if !strings.Contains(output, "note: test.ts:1:14") {
		t.Fatalf("expected note with location, got:\n%s", output)
	}
	if !strings.Contains(output, "declare `this: void`") {
		t.Fatalf("expected note text, got:\n%s", output)
	}
}
