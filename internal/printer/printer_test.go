package printer_test

import (
	"errors"
	"testing"

	"sexpr/internal/ast"
	"sexpr/internal/diag"
	"sexpr/internal/lexer"
	"sexpr/internal/parser"
	"sexpr/internal/printer"
	"sexpr/internal/source"
	"sexpr/internal/token"
)

func parseInput(t *testing.T, input string, d lexer.Dialect) parser.Result {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.sexp", []byte(input)))
	bag := diag.NewBag(100)
	lx := lexer.New(file, lexer.Options{
		Dialect:  d,
		Reporter: &diag.BagReporter{Bag: bag},
	})
	res := parser.ParseFile(lx, parser.Options{
		Reporter:  &diag.BagReporter{Bag: bag},
		MaxErrors: 100,
	})
	if res.Bag.HasErrors() {
		t.Fatalf("%q: parse errors %v", input, res.Bag.Items())
	}
	return res
}

func roundTrip(t *testing.T, input string, d lexer.Dialect) string {
	t.Helper()
	res := parseInput(t, input, d)
	out, err := printer.Print(res.Nodes, printer.Options{Dialect: d, Comments: res.Comments})
	if err != nil {
		t.Fatalf("%q: print failed: %v", input, err)
	}
	// The reprinted text must parse to a structurally equal tree.
	again := parseInput(t, string(out), d)
	if len(again.Nodes) != len(res.Nodes) {
		t.Fatalf("%q -> %q: node count changed", input, out)
	}
	for i := range res.Nodes {
		if !res.Nodes[i].Equal(again.Nodes[i]) {
			t.Errorf("%q -> %q: node %d not structurally equal", input, out, i)
		}
	}
	return string(out)
}

func TestPrintSimple(t *testing.T) {
	got := roundTrip(t, "(let x 1)", lexer.Dialect{})
	if got != "(let x 1)" {
		t.Errorf("got %q", got)
	}
}

func TestPrintNormalizesWhitespace(t *testing.T) {
	got := roundTrip(t, "( a\n\tb   ( c ) d )", lexer.Dialect{})
	if got != "(a b (c) d)" {
		t.Errorf("got %q", got)
	}
}

func TestPrintTopLevelSiblings(t *testing.T) {
	got := roundTrip(t, "(a)(b) c", lexer.Dialect{})
	if got != "(a) (b) c" {
		t.Errorf("got %q", got)
	}
}

func TestPrintKeepsDelimiterFlavor(t *testing.T) {
	d := lexer.DefaultDialect()
	got := roundTrip(t, "{a [b] (c)}", d)
	if got != "{a [b] (c)}" {
		t.Errorf("got %q", got)
	}
}

func TestPrintKeepsNumberFormatting(t *testing.T) {
	// Base prefixes and digit separators survive verbatim.
	for _, input := range []string{"0b1_01", "1_000", "3.14_15", "(n 0xAb)"} {
		got := roundTrip(t, input, lexer.Dialect{})
		if got != input {
			t.Errorf("%q: got %q", input, got)
		}
	}
}

func TestPrintIdempotent(t *testing.T) {
	d := lexer.DefaultDialect()
	first := roundTrip(t, "( a ; note\n  {b\tc} #12ab# \"s\" )", d)
	second := roundTrip(t, first, d)
	if first != second {
		t.Errorf("not idempotent: %q then %q", first, second)
	}
}

func TestPrintComments(t *testing.T) {
	d := lexer.Dialect{LineComments: true}
	res := parseInput(t, "(a ; note\n b) ; trailing\n", d)
	out, err := printer.Print(res.Nodes, printer.Options{Dialect: d, Comments: res.Comments})
	if err != nil {
		t.Fatal(err)
	}
	got := string(out)
	if got != "(a ; note\nb) ; trailing\n" {
		t.Errorf("got %q", got)
	}
}

func TestPrintWithoutCommentsDropsThem(t *testing.T) {
	d := lexer.Dialect{LineComments: true}
	res := parseInput(t, "(a ; note\n b)", d)
	out, err := printer.Print(res.Nodes, printer.Options{Dialect: d})
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "(a b)" {
		t.Errorf("got %q", out)
	}
}

func TestPrintDialectMismatch(t *testing.T) {
	permissive := lexer.DefaultDialect()

	cases := []struct {
		name   string
		input  string
		target lexer.Dialect
	}{
		{"brace group", "{a}", lexer.Dialect{BracketGroups: true, ByteStrings: true}},
		{"bracket group", "[a]", lexer.Dialect{BraceGroups: true}},
		{"bytes literal", "(#ff#)", lexer.Dialect{BraceGroups: true, BracketGroups: true}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := parseInput(t, tc.input, permissive)
			_, err := printer.Print(res.Nodes, printer.Options{Dialect: tc.target})
			if !errors.Is(err, printer.ErrDialect) {
				t.Errorf("expected ErrDialect, got %v", err)
			}
		})
	}

	// Comments require the line-comment feature in the target dialect.
	res := parseInput(t, "; note\na", permissive)
	_, err := printer.Print(res.Nodes, printer.Options{
		Dialect:  lexer.Dialect{},
		Comments: res.Comments,
	})
	if !errors.Is(err, printer.ErrDialect) {
		t.Errorf("expected ErrDialect for comments, got %v", err)
	}
}

func TestPrintNestedDeep(t *testing.T) {
	got := roundTrip(t, "(((((x)))))", lexer.Dialect{})
	if got != "(((((x)))))" {
		t.Errorf("got %q", got)
	}
}

func TestPrintSyntheticNode(t *testing.T) {
	// Trees built by hand, without spans, print fine; comments are the only
	// span-dependent feature.
	n := ast.NewList(token.Paren, source.Span{}, []*ast.Node{
		ast.NewLeaf(token.Token{Kind: token.Ident, Text: "add"}),
		ast.NewLeaf(token.Token{Kind: token.IntLit, Text: "0x1f",
			Num: &token.Number{Base: token.Hexadecimal, Digits: "1f"}}),
	})
	out, err := printer.PrintNode(n, printer.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "(add 0x1f)" {
		t.Errorf("got %q", out)
	}
}
