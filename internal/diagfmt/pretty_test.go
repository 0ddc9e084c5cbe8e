package diagfmt_test

import (
	"strings"
	"testing"

	"sexpr/internal/diag"
	"sexpr/internal/diagfmt"
	"sexpr/internal/lexer"
	"sexpr/internal/parser"
	"sexpr/internal/source"
)

func diagnose(t *testing.T, input string, d lexer.Dialect) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.sexp", []byte(input)))
	bag := diag.NewBag(100)
	lx := lexer.New(file, lexer.Options{
		Dialect:  d,
		Reporter: &diag.BagReporter{Bag: bag},
	})
	parser.ParseFile(lx, parser.Options{
		Reporter:  &diag.BagReporter{Bag: bag},
		MaxErrors: 100,
	})
	bag.Sort()
	return bag, fs
}

func TestPrettyHeader(t *testing.T) {
	bag, fs := diagnose(t, "a)", lexer.Dialect{})
	var sb strings.Builder
	diagfmt.Pretty(&sb, bag, fs, diagfmt.PrettyOpts{})
	got := sb.String()
	want := "test.sexp:1:2: ERROR SYN_UNMATCHED_CLOSE: unmatched closing ')'\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrettyContextUnderline(t *testing.T) {
	bag, fs := diagnose(t, "(x 12_)", lexer.Dialect{})
	var sb strings.Builder
	diagfmt.Pretty(&sb, bag, fs, diagfmt.PrettyOpts{Context: true})
	lines := strings.Split(sb.String(), "\n")
	if len(lines) < 3 {
		t.Fatalf("got %q", sb.String())
	}
	if lines[1] != "  (x 12_)" {
		t.Errorf("context line: got %q", lines[1])
	}
	// The number occupies columns 4-6; caret plus two tildes.
	if lines[2] != "     ^~~" {
		t.Errorf("underline: got %q", lines[2])
	}
}

func TestPrettyNotes(t *testing.T) {
	bag, fs := diagnose(t, "(a]", lexer.Dialect{BracketGroups: true})
	var sb strings.Builder
	diagfmt.Pretty(&sb, bag, fs, diagfmt.PrettyOpts{ShowNotes: true})
	got := sb.String()
	want := "test.sexp:1:3: ERROR SYN_MISMATCHED_DELIMITER: closing ']' does not match opening '('\n" +
		"test.sexp:1:1: note: group opened here\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrettyWideRunes(t *testing.T) {
	// The atom after the CJK rune must still get an aligned underline:
	// 你 is two display columns wide.
	bag, fs := diagnose(t, "你 1_", lexer.Dialect{})
	var sb strings.Builder
	diagfmt.Pretty(&sb, bag, fs, diagfmt.PrettyOpts{Context: true})
	lines := strings.Split(sb.String(), "\n")
	if len(lines) < 3 {
		t.Fatalf("got %q", sb.String())
	}
	if lines[2] != "     ^~" {
		t.Errorf("underline after wide rune: got %q", lines[2])
	}
}

func TestJSONOutput(t *testing.T) {
	bag, fs := diagnose(t, "(a", lexer.Dialect{})
	out := diagfmt.BuildDiagnosticsOutput(bag, fs, diagfmt.JSONOpts{IncludePositions: true})
	if out.Count != 1 {
		t.Fatalf("count: got %d", out.Count)
	}
	d := out.Diagnostics[0]
	if d.Code != "SYN_UNTERMINATED_GROUP" || d.Severity != "ERROR" {
		t.Errorf("got %+v", d)
	}
	if d.Location.File != "test.sexp" || d.Location.StartByte != 0 || d.Location.StartLine != 1 {
		t.Errorf("location: got %+v", d.Location)
	}
}

func TestJSONMaxTruncates(t *testing.T) {
	bag, fs := diagnose(t, ")))", lexer.Dialect{})
	out := diagfmt.BuildDiagnosticsOutput(bag, fs, diagfmt.JSONOpts{Max: 2})
	if out.Count != 2 || bag.Len() != 3 {
		t.Errorf("count: got %d (bag %d)", out.Count, bag.Len())
	}
}
