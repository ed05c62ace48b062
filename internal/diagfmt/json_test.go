package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"tether/internal/diag"
	"tether/internal/source"
)

func TestJSONOutput(t *testing.T) {
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
	err := JSON(&buf, bag, fs, JSONOpts{
		IncludePositions: true,
		IncludeNotes:     true,
		PathMode:         PathModeBasename,
	})
	if err != nil {
		t.Fatal(err)
	}

	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("got %+v", out)
	}
	dj := out.Diagnostics[0]
	if dj.Code != "LINT4002" || dj.Severity != "WARNING" {
		t.Fatalf("got %+v", dj)
	}
	if dj.Location.File != "test.ts" || dj.Location.StartLine != 1 || dj.Location.StartCol != 12 {
		t.Fatalf("got location %+v", dj.Location)
	}
	if len(dj.Notes) != 1 || !strings.Contains(dj.Notes[0].Message, "this: void") {
		t.Fatalf("got notes %+v", dj.Notes)
	}
}

func TestJSONMaxTruncates(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.ts", []byte("abc\n"))

	bag := diag.NewBag(8)
	for i := uint32(0); i < 3; i++ {
		bag.Add(diag.Diagnostic{
			Severity: diag.SevWarning,
			Code:     diag.LintUnboundMethod,
			Message:  "m",
			Primary:  source.Span{File: fileID, Start: i, End: i + 1},
		})
	}

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 2})
	if out.Count != 2 || len(out.Diagnostics) != 2 {
		t.Fatalf("got %+v", out)
	}
}

func TestSarifOutput(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("src/test.ts", []byte("const fn = w.render;\n"))

	bag := diag.NewBag(4)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     diag.LintUnboundMethod,
		Message:  "method \"render\" is detached from its receiver",
		Primary:  source.Span{File: fileID, Start: 11, End: 19},
	})

	var buf bytes.Buffer
	err := Sarif(&buf, bag, fs, SarifRunMeta{
		ToolName:       "tether",
		ToolVersion:    "0.1.0",
		InvocationArgs: []string{"tether", "check", "src"},
	})
	if err != nil {
		t.Fatal(err)
	}

	var log map[string]any
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if log["version"] != "2.1.0" {
		t.Fatalf("got version %v", log["version"])
	}
	text := buf.String()
	for _, want := range []string{"LINT4001", "\"level\": \"warning\"", "tether check src", "startLine\": 1"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in output:\n%s", want, text)
		}
	}
}
