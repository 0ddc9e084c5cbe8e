package ast

import (
	"encoding/hex"
	"strings"

	"sexpr/internal/source"
	"sexpr/internal/token"
)

// NodeKind is the closed set of tree node variants.
type NodeKind uint8

const (
	// NodeList is a delimited group of child nodes.
	NodeList NodeKind = iota
	// NodeAtom is an identifier-like leaf.
	NodeAtom
	// NodeNumber is an integer or decimal literal leaf.
	NodeNumber
	// NodeString is a quoted string literal leaf.
	NodeString
	// NodeBytes is a `#hex#` bytes literal leaf.
	NodeBytes
)

func (k NodeKind) String() string {
	switch k {
	case NodeList:
		return "List"
	case NodeAtom:
		return "Atom"
	case NodeNumber:
		return "Number"
	case NodeString:
		return "String"
	case NodeBytes:
		return "Bytes"
	}
	return "Unknown"
}

// Node is one element of the expression tree. The shape is a tagged variant:
// exactly one of the payload fields is meaningful, selected by Kind.
//
// Every node carries its source span; children spans lie inside their
// parent's. Leaf payloads keep the raw source text so a printer can
// reproduce the input byte-for-byte.
type Node struct {
	Kind NodeKind
	Span source.Span

	// List payload.
	Delim    token.Delim
	Children []*Node

	// Leaf payload: the exact source text (quotes and `#` markers
	// included for String/Bytes).
	Text string
	// Number payload, set only for NodeNumber.
	Num *token.Number
}

// Comment is a `;` line comment kept out of band: comments never appear as
// tree children, but their spans let a printer put them back.
type Comment struct {
	Span source.Span
	Text string // includes the leading ';'
}

// NewList builds a group node; the span should cover open through close
// delimiter.
func NewList(delim token.Delim, span source.Span, children []*Node) *Node {
	return &Node{Kind: NodeList, Span: span, Delim: delim, Children: children}
}

// NewLeaf builds a leaf node from a literal or atom token.
func NewLeaf(tok token.Token) *Node {
	n := &Node{Span: tok.Span, Text: tok.Text}
	switch tok.Kind {
	case token.IntLit, token.DecimalLit:
		n.Kind = NodeNumber
		n.Num = tok.Num
	case token.StringLit:
		n.Kind = NodeString
	case token.BytesLit:
		n.Kind = NodeBytes
	default:
		n.Kind = NodeAtom
	}
	return n
}

// AsList returns the children if the node is a group of the given flavor.
func (n *Node) AsList(delim token.Delim) ([]*Node, bool) {
	if n.Kind == NodeList && n.Delim == delim {
		return n.Children, true
	}
	return nil, false
}

// Paren returns the children of a () group, or nil.
func (n *Node) Paren() []*Node {
	c, _ := n.AsList(token.Paren)
	return c
}

// Brace returns the children of a {} group, or nil.
func (n *Node) Brace() []*Node {
	c, _ := n.AsList(token.Brace)
	return c
}

// Bracket returns the children of a [] group, or nil.
func (n *Node) Bracket() []*Node {
	c, _ := n.AsList(token.Bracket)
	return c
}

// AsAtom returns the atom text, or "" when the node is not an atom.
func (n *Node) AsAtom() string {
	if n.Kind == NodeAtom {
		return n.Text
	}
	return ""
}

// AsNumber returns the number metadata, or nil.
func (n *Node) AsNumber() *token.Number {
	if n.Kind == NodeNumber {
		return n.Num
	}
	return nil
}

// StringValue returns the unescaped contents of a string node.
// The second result is false for non-string nodes.
func (n *Node) StringValue() (string, bool) {
	if n.Kind != NodeString {
		return "", false
	}
	raw := n.Text
	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		raw = raw[1 : len(raw)-1]
	}
	if !strings.ContainsRune(raw, '\\') {
		return raw, true
	}
	var sb strings.Builder
	escaped := false
	for i := 0; i < len(raw); i++ {
		b := raw[i]
		if escaped {
			switch b {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			default:
				sb.WriteByte(b)
			}
			escaped = false
			continue
		}
		if b == '\\' {
			escaped = true
			continue
		}
		sb.WriteByte(b)
	}
	return sb.String(), true
}

// BytesValue decodes the hex interior of a bytes node.
// The second result is false for non-bytes nodes or undecodable interiors.
func (n *Node) BytesValue() ([]byte, bool) {
	if n.Kind != NodeBytes {
		return nil, false
	}
	raw := strings.Trim(n.Text, "#")
	out, err := hex.DecodeString(raw)
	if err != nil {
		return nil, false
	}
	return out, true
}

// Equal reports structural equality: same kinds, delimiter flavors, leaf
// values, and child shapes. Spans are ignored.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.Kind != other.Kind {
		return false
	}
	if n.Kind == NodeList {
		if n.Delim != other.Delim || len(n.Children) != len(other.Children) {
			return false
		}
		for i := range n.Children {
			if !n.Children[i].Equal(other.Children[i]) {
				return false
			}
		}
		return true
	}
	if n.Kind == NodeNumber {
		if n.Num == nil || other.Num == nil {
			return n.Num == other.Num && n.Text == other.Text
		}
		// 1 and 1.0 share a value but not a shape.
		return n.Num.Base == other.Num.Base &&
			n.Num.IsDecimalPoint() == other.Num.IsDecimalPoint() &&
			n.Num.Rat().Cmp(other.Num.Rat()) == 0
	}
	return n.Text == other.Text
}
