package ast

import (
	"bytes"
	"testing"

	"sexpr/internal/source"
	"sexpr/internal/token"
)

func atom(text string) *Node {
	return NewLeaf(token.Token{Kind: token.Ident, Text: text})
}

func TestAccessors(t *testing.T) {
	list := NewList(token.Bracket, source.Span{}, []*Node{atom("a"), atom("b")})
	if got := list.Bracket(); len(got) != 2 {
		t.Fatalf("Bracket: got %v", got)
	}
	if got := list.Paren(); got != nil {
		t.Errorf("Paren on a bracket group: got %v", got)
	}
	if list.AsAtom() != "" {
		t.Error("AsAtom on a list must be empty")
	}
	if atom("x").AsAtom() != "x" {
		t.Error("AsAtom lost the text")
	}
}

func TestStringValue(t *testing.T) {
	n := NewLeaf(token.Token{Kind: token.StringLit, Text: `"a\"b\n"`})
	got, ok := n.StringValue()
	if !ok || got != "a\"b\n" {
		t.Errorf("got %q ok=%v", got, ok)
	}
}

func TestBytesValue(t *testing.T) {
	n := NewLeaf(token.Token{Kind: token.BytesLit, Text: "#12ab#"})
	got, ok := n.BytesValue()
	if !ok || !bytes.Equal(got, []byte{0x12, 0xab}) {
		t.Errorf("got %x ok=%v", got, ok)
	}
}

func TestEqualIgnoresSpans(t *testing.T) {
	a := NewList(token.Paren, source.Span{Start: 0, End: 5}, []*Node{atom("x")})
	b := NewList(token.Paren, source.Span{Start: 10, End: 15}, []*Node{atom("x")})
	if !a.Equal(b) {
		t.Error("structurally equal trees with different spans must be Equal")
	}
}

func TestEqualDistinguishesDelim(t *testing.T) {
	a := NewList(token.Paren, source.Span{}, nil)
	b := NewList(token.Brace, source.Span{}, nil)
	if a.Equal(b) {
		t.Error("delimiter flavor must participate in equality")
	}
}

func TestEqualNumbers(t *testing.T) {
	// Same value, different separator layout: equal.
	a := NewLeaf(token.Token{Kind: token.IntLit, Num: &token.Number{Base: token.Decimal, Digits: "1_0"}})
	b := NewLeaf(token.Token{Kind: token.IntLit, Num: &token.Number{Base: token.Decimal, Digits: "10"}})
	if !a.Equal(b) {
		t.Error("numbers with the same value must be Equal")
	}
	// Different base: not equal (base survives round trips).
	c := NewLeaf(token.Token{Kind: token.IntLit, Num: &token.Number{Base: token.Hexadecimal, Digits: "a"}})
	d := NewLeaf(token.Token{Kind: token.IntLit, Num: &token.Number{Base: token.Decimal, Digits: "10"}})
	if c.Equal(d) {
		t.Error("numbers in different bases must not be Equal")
	}
	// Integer versus decimal literal of the same value: different shape.
	e := NewLeaf(token.Token{Kind: token.IntLit, Num: &token.Number{Base: token.Decimal, Digits: "1"}})
	f := NewLeaf(token.Token{Kind: token.DecimalLit, Num: &token.Number{Base: token.Decimal, Digits: "1", Frac: "0"}})
	if e.Equal(f) {
		t.Error("1 and 1.0 must not be Equal")
	}
}

func TestEqualNumberWithoutMetadata(t *testing.T) {
	// Hand-built number nodes may carry no Number payload; Equal must not
	// dereference it.
	a := &Node{Kind: NodeNumber, Text: "7"}
	b := &Node{Kind: NodeNumber, Text: "7"}
	if !a.Equal(b) {
		t.Error("metadata-free numbers with the same text must be Equal")
	}
	c := NewLeaf(token.Token{Kind: token.IntLit, Text: "7", Num: &token.Number{Base: token.Decimal, Digits: "7"}})
	if a.Equal(c) || c.Equal(a) {
		t.Error("a metadata-free number must not be Equal to one with metadata")
	}
}
