package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"tether/internal/diag"
	"tether/internal/unbound"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const badExtract = `
class Widget { render() {} }
const w = new Widget();
const fn = w.render;
`

func TestCheckDirReportsUnboundMethod(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.ts", badExtract)
	writeFile(t, dir, "b.ts", `
class Widget { render() {} }
const w = new Widget();
w.render();
`)

	_, results, err := CheckDir(context.Background(), dir, CheckOptions{MaxDiagnostics: 64})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("want 2 results, got %d", len(results))
	}
	// results отсортированы по пути
	if got := results[0].Bag.Len(); got != 1 {
		t.Fatalf("a.ts: want 1 diagnostic, got %d: %+v", got, results[0].Bag.Items())
	}
	if code := results[0].Bag.Items()[0].Code; code != diag.LintUnboundMethodNoThis {
		t.Fatalf("a.ts: got %v", code)
	}
	if got := results[1].Bag.Len(); got != 0 {
		t.Fatalf("b.ts: want clean, got %+v", results[1].Bag.Items())
	}
}

func TestCheckDirSkipsNodeModulesAndHidden(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ok.ts", `const x = 1;`)
	writeFile(t, dir, filepath.Join("node_modules", "dep", "index.ts"), badExtract)
	writeFile(t, dir, filepath.Join(".build", "gen.ts"), badExtract)
	writeFile(t, dir, "notes.txt", "not a source file")

	files, err := listTSFiles(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || filepath.Base(files[0]) != "ok.ts" {
		t.Fatalf("got %v", files)
	}
}

func TestCheckDirIgnoreStatic(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "s.ts", `
class Widget { static create() {} }
const fn = Widget.create;
`)

	_, results, err := CheckDir(context.Background(), dir, CheckOptions{
		MaxDiagnostics: 64,
		Config:         unbound.Config{IgnoreStatic: true},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := results[0].Bag.Len(); got != 0 {
		t.Fatalf("want clean with ignoreStatic, got %+v", results[0].Bag.Items())
	}
}

func TestCheckDirParseErrorSuppressesAnalysis(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.ts", `const = 1;`)

	_, results, err := CheckDir(context.Background(), dir, CheckOptions{MaxDiagnostics: 64})
	if err != nil {
		t.Fatal(err)
	}
	bag := results[0].Bag
	if !bag.HasErrors() {
		t.Fatalf("want syntax errors, got %+v", bag.Items())
	}
	for _, d := range bag.Items() {
		if d.Code == diag.LintUnboundMethod || d.Code == diag.LintUnboundMethodNoThis {
			t.Fatalf("lint must not run on broken file: %+v", d)
		}
	}
}

func TestCheckDirDiskCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := OpenDiskCache("tether-test")
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	writeFile(t, dir, "a.ts", badExtract)

	opts := CheckOptions{MaxDiagnostics: 64, Cache: cache}
	_, first, err := CheckDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first[0].FromCache {
		t.Fatalf("first run must be a cache miss")
	}

	_, second, err := CheckDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second[0].FromCache {
		t.Fatalf("second run must hit the cache")
	}
	got := second[0].Bag.Items()
	want := first[0].Bag.Items()
	if len(got) != len(want) {
		t.Fatalf("cached diagnostics differ: %+v vs %+v", got, want)
	}
	for i := range got {
		if got[i].Code != want[i].Code || got[i].Message != want[i].Message ||
			got[i].Primary.Start != want[i].Primary.Start || got[i].Primary.End != want[i].Primary.End {
			t.Fatalf("cached diagnostic %d differs: %+v vs %+v", i, got[i], want[i])
		}
	}
}

func TestCacheKeyDependsOnConfig(t *testing.T) {
	content := []byte(badExtract)
	plain := cacheKey(content, unbound.Config{})
	static := cacheKey(content, unbound.Config{IgnoreStatic: true})
	if plain == static {
		t.Fatalf("config must be part of the cache key")
	}
	if plain != cacheKey(content, unbound.Config{}) {
		t.Fatalf("key must be stable")
	}
}

func TestTokenizeDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.ts", `const x = 1;`)

	_, results, err := TokenizeDir(context.Background(), dir, 64, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || len(results[0].Tokens) == 0 {
		t.Fatalf("got %+v", results)
	}
}
