package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"sexpr/internal/ast"
	"sexpr/internal/source"
)

// FormatTree draws the expression tree with box-drawing branches, one node
// per line. Each node shows its kind, payload, and resolved position.
func FormatTree(w io.Writer, nodes []*ast.Node, fs *source.FileSet) {
	for i, n := range nodes {
		writeTreeNode(w, n, fs, "", i == len(nodes)-1, i == 0 && len(nodes) == 1)
	}
}

func writeTreeNode(w io.Writer, n *ast.Node, fs *source.FileSet, prefix string, last, root bool) {
	branch := "├── "
	childPrefix := prefix + "│   "
	if last {
		branch = "└── "
		childPrefix = prefix + "    "
	}
	if prefix == "" && root {
		branch = ""
		childPrefix = ""
	}

	fmt.Fprintf(w, "%s%s%s\n", prefix, branch, nodeLabel(n, fs))
	for i, c := range n.Children {
		writeTreeNode(w, c, fs, childPrefix, i == len(n.Children)-1, false)
	}
}

func nodeLabel(n *ast.Node, fs *source.FileSet) string {
	pos := formatSpan(n.Span, fs)
	switch n.Kind {
	case ast.NodeList:
		return fmt.Sprintf("%s %c%c (%s, %d children)",
			n.Kind, n.Delim.OpenByte(), n.Delim.CloseByte(), pos, len(n.Children))
	case ast.NodeNumber:
		if n.Num != nil {
			return fmt.Sprintf("%s %s = %s (%s)", n.Kind, n.Num.Source(), n.Num.Rat().RatString(), pos)
		}
		return fmt.Sprintf("%s %s (%s)", n.Kind, n.Text, pos)
	default:
		return fmt.Sprintf("%s %s (%s)", n.Kind, n.Text, pos)
	}
}

// formatSpan renders a span as line:col-line:col, or raw byte offsets when no
// FileSet is available.
func formatSpan(sp source.Span, fs *source.FileSet) string {
	if fs == nil {
		return sp.String()
	}
	start, end := fs.Resolve(sp)
	return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
}

// NodeJSON is one tree node in JSON output.
type NodeJSON struct {
	Kind     string      `json:"kind"`
	Span     source.Span `json:"span"`
	Delim    string      `json:"delim,omitempty"`
	Text     string      `json:"text,omitempty"`
	Value    string      `json:"value,omitempty"`
	Children []NodeJSON  `json:"children,omitempty"`
}

func buildNodeJSON(n *ast.Node) NodeJSON {
	out := NodeJSON{
		Kind: n.Kind.String(),
		Span: n.Span,
	}
	switch n.Kind {
	case ast.NodeList:
		out.Delim = n.Delim.String()
		out.Children = make([]NodeJSON, len(n.Children))
		for i, c := range n.Children {
			out.Children[i] = buildNodeJSON(c)
		}
	case ast.NodeNumber:
		out.Text = n.Text
		if n.Num != nil {
			out.Value = n.Num.Rat().RatString()
		}
	default:
		out.Text = n.Text
	}
	return out
}

// FormatNodesJSON serializes the tree as an indented JSON array.
func FormatNodesJSON(w io.Writer, nodes []*ast.Node) error {
	output := make([]NodeJSON, len(nodes))
	for i, n := range nodes {
		output[i] = buildNodeJSON(n)
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
