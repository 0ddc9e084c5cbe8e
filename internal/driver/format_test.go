package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"sexpr/internal/driver"
	"sexpr/internal/lexer"
	"sexpr/internal/project"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFormatPathsRewrites(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.sexp", "( a   b )\n")

	results, err := driver.FormatPaths(context.Background(), []string{path}, driver.FormatOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Err != nil || !results[0].Changed {
		t.Fatalf("results: %+v", results)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "(a b)\n" {
		t.Errorf("file content: got %q", got)
	}
}

func TestFormatPathsCheckDoesNotWrite(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.sexp", "( a )\n")

	results, err := driver.FormatPaths(context.Background(), []string{path},
		driver.FormatOptions{Check: true})
	if err != nil {
		t.Fatal(err)
	}
	if !results[0].Changed {
		t.Error("expected Changed for unformatted input")
	}
	got, _ := os.ReadFile(path)
	if string(got) != "( a )\n" {
		t.Errorf("check must not rewrite, got %q", got)
	}
}

func TestFormatPathsStableOutput(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.sexp", "(a b)\n")

	results, err := driver.FormatPaths(context.Background(), []string{path},
		driver.FormatOptions{Check: true})
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Changed {
		t.Error("already-formatted input must not be Changed")
	}
}

func TestFormatPathsParseErrors(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.sexp", "(a\n")

	results, err := driver.FormatPaths(context.Background(), []string{path}, driver.FormatOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Err == nil {
		t.Error("expected an error for unparseable input")
	}
	got, _ := os.ReadFile(path)
	if string(got) != "(a\n" {
		t.Errorf("broken file must stay untouched, got %q", got)
	}
}

func TestFormatPathsStdout(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.sexp", "( x ; c\n )\n")

	d := lexer.Dialect{LineComments: true}
	results, err := driver.FormatPaths(context.Background(), []string{path},
		driver.FormatOptions{Dialect: d, Stdout: true})
	if err != nil {
		t.Fatal(err)
	}
	if string(results[0].Formatted) != "(x ; c\n)\n" {
		t.Errorf("got %q", results[0].Formatted)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "( x ; c\n )\n" {
		t.Errorf("stdout mode must not rewrite, got %q", got)
	}
}

func TestDiskCacheDropAll(t *testing.T) {
	cache, err := driver.OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}

	key := project.Combine(project.Digest{1, 2, 3})
	payload := &driver.FormatPayload{Schema: 1, Formatted: []byte("(a)\n")}
	if err := cache.Put(key, payload); err != nil {
		t.Fatal(err)
	}
	var out driver.FormatPayload
	if ok, err := cache.Get(key, &out); err != nil || !ok {
		t.Fatalf("Get before drop: ok=%v err=%v", ok, err)
	}

	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	if ok, err := cache.Get(key, &out); err != nil || ok {
		t.Fatalf("Get after drop: ok=%v err=%v", ok, err)
	}

	// The cache stays usable after a drop.
	if err := cache.Put(key, payload); err != nil {
		t.Fatal(err)
	}
	if ok, err := cache.Get(key, &out); err != nil || !ok {
		t.Fatalf("Get after re-put: ok=%v err=%v", ok, err)
	}
}

func TestFormatDirUsesCache(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.sexp", "( a )\n")
	writeFile(t, dir, "b.sexp", "(b)\n")

	cache, err := driver.OpenDiskCacheAt(filepath.Join(dir, ".cache"))
	if err != nil {
		t.Fatal(err)
	}
	opts := driver.FormatOptions{Stdout: true, Cache: cache}

	first, err := driver.FormatDir(context.Background(), dir, opts, 2)
	if err != nil {
		t.Fatal(err)
	}
	second, err := driver.FormatDir(context.Background(), dir, opts, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("results: %d then %d", len(first), len(second))
	}
	for i := range first {
		if string(first[i].Formatted) != string(second[i].Formatted) {
			t.Errorf("%s: cached output diverged", first[i].Path)
		}
	}
	// Results come back in sorted path order.
	if filepath.Base(first[0].Path) != "a.sexp" || filepath.Base(first[1].Path) != "b.sexp" {
		t.Errorf("order: %s, %s", first[0].Path, first[1].Path)
	}
}
