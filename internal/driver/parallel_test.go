package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"sexpr/internal/diag"
	"sexpr/internal/driver"
	"sexpr/internal/lexer"
	"sexpr/internal/token"
)

func TestTokenize(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.sexp", "(x 1)")

	res, err := driver.Tokenize(path, lexer.Dialect{}, 50)
	if err != nil {
		t.Fatal(err)
	}
	if res.Bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", res.Bag.Items())
	}
	kinds := make([]token.Kind, len(res.Tokens))
	for i, tok := range res.Tokens {
		kinds[i] = tok.Kind
	}
	want := []token.Kind{token.LParen, token.Ident, token.IntLit, token.RParen, token.EOF}
	if len(kinds) != len(want) {
		t.Fatalf("kinds: got %v", kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, kinds[i], want[i])
		}
	}
}

func TestTokenizeBytes(t *testing.T) {
	res := driver.TokenizeBytes("<stdin>", []byte("(x 1)"), lexer.Dialect{}, 50)
	if res.Bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", res.Bag.Items())
	}
	if len(res.Tokens) != 5 || res.Tokens[4].Kind != token.EOF {
		t.Fatalf("tokens: got %v", res.Tokens)
	}
	if got := res.File.Path; got != "<stdin>" {
		t.Errorf("file name: got %q", got)
	}
}

func TestParseBytes(t *testing.T) {
	res := driver.ParseBytes("<stdin>", []byte("(a (b))"), lexer.Dialect{}, 50)
	if res.Bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", res.Bag.Items())
	}
	if len(res.Nodes) != 1 || len(res.Nodes[0].Children) != 2 {
		t.Fatalf("nodes: got %+v", res.Nodes)
	}

	bad := driver.ParseBytes("<stdin>", []byte("(a"), lexer.Dialect{}, 50)
	if !bad.Bag.HasErrors() {
		t.Error("expected an unterminated-group error")
	}
	if len(bad.Nodes) != 1 {
		t.Errorf("best-effort tree missing: %+v", bad.Nodes)
	}
}

func TestParseMissingFile(t *testing.T) {
	if _, err := driver.Parse(filepath.Join(t.TempDir(), "nope.sexp"), lexer.Dialect{}, 50); err == nil {
		t.Fatal("expected an I/O error")
	}
}

func TestParseDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "one.sexp", "(a)")
	writeFile(t, dir, "two.sexp", "(b")
	sub := filepath.Join(dir, "nested")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, sub, "three.sexp", "c")
	writeFile(t, dir, "ignored.txt", "(((")

	_, results, err := driver.ParseDir(context.Background(), dir, lexer.Dialect{}, 50, 4)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	byName := make(map[string]driver.ParseDirResult, len(results))
	for _, r := range results {
		byName[filepath.Base(r.Path)] = r
	}
	if r := byName["one.sexp"]; r.Bag.HasErrors() || len(r.Nodes) != 1 {
		t.Errorf("one.sexp: %+v", r)
	}
	if r := byName["two.sexp"]; !r.Bag.HasErrors() {
		t.Error("two.sexp: expected an unterminated-group error")
	} else if r.Bag.Items()[0].Code != diag.SynUnterminatedGroup {
		t.Errorf("two.sexp: got %v", r.Bag.Items()[0].Code)
	}
	if r := byName["three.sexp"]; r.Bag.HasErrors() || len(r.Nodes) != 1 {
		t.Errorf("three.sexp: %+v", r)
	}
}

func TestMergedBag(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "one.sexp", "(a))")
	writeFile(t, dir, "two.sexp", "(b")

	_, results, err := driver.ParseDir(context.Background(), dir, lexer.Dialect{}, 50, 2)
	if err != nil {
		t.Fatal(err)
	}

	bag := driver.MergedBag(results)
	if bag.Len() != 2 {
		t.Fatalf("expected 2 merged diagnostics, got %d", bag.Len())
	}
	if !bag.HasErrors() {
		t.Error("merged bag must carry the per-file errors")
	}
	// Sorted by file: one.sexp loads first, so its diagnostic leads.
	if bag.Items()[0].Code != diag.SynUnmatchedClose {
		t.Errorf("first merged diagnostic: got %v", bag.Items()[0].Code)
	}
	if bag.Items()[1].Code != diag.SynUnterminatedGroup {
		t.Errorf("second merged diagnostic: got %v", bag.Items()[1].Code)
	}
}

func TestParseDirEmpty(t *testing.T) {
	_, results, err := driver.ParseDir(context.Background(), t.TempDir(), lexer.Dialect{}, 50, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results", len(results))
	}
}
