package printer

import (
	"errors"
	"fmt"

	"sexpr/internal/ast"
	"sexpr/internal/lexer"
	"sexpr/internal/token"
)

// ErrDialect is returned when a tree needs a feature the target dialect
// disables, e.g. a brace group with BraceGroups off.
var ErrDialect = errors.New("tree not representable in target dialect")

// Options configures printing.
type Options struct {
	// Dialect the output must stay within. Groups or literals of a
	// disabled flavor make Print fail with ErrDialect.
	Dialect lexer.Dialect
	// Comments, when set, are re-emitted at their span-ordered positions,
	// each terminated by a newline. Requires Dialect.LineComments.
	Comments []ast.Comment
}

// printer walks the tree accumulating output. Spacing follows one rule:
// a separator goes before a leaf or an opening delimiter whenever the
// previous emission was a leaf or a closing delimiter — so there is never a
// space after an open or before a close.
type printer struct {
	buf      []byte
	needSep  bool
	opts     Options
	comments []ast.Comment
	ci       int
}

// Print renders top-level nodes back to text. Re-parsing the output with
// the same dialect yields a structurally equal tree; formatting metadata
// (numeric base, separators, delimiter flavor) is preserved exactly.
// The original source buffer is never consulted.
func Print(nodes []*ast.Node, opts Options) ([]byte, error) {
	if len(opts.Comments) > 0 && !opts.Dialect.LineComments {
		return nil, fmt.Errorf("%w: comments with line comments disabled", ErrDialect)
	}
	p := printer{opts: opts, comments: opts.Comments}
	for _, n := range nodes {
		if err := p.node(n); err != nil {
			return nil, err
		}
	}
	p.flushComments(^uint32(0))
	return p.buf, nil
}

// PrintNode renders a single node.
func PrintNode(n *ast.Node, opts Options) ([]byte, error) {
	return Print([]*ast.Node{n}, opts)
}

func (p *printer) node(n *ast.Node) error {
	p.flushComments(n.Span.Start)
	switch n.Kind {
	case ast.NodeList:
		return p.list(n)
	case ast.NodeNumber:
		if n.Num != nil {
			p.text(n.Num.Source())
		} else {
			p.text(n.Text)
		}
	case ast.NodeBytes:
		if !p.opts.Dialect.ByteStrings {
			return fmt.Errorf("%w: bytes literal with byte strings disabled", ErrDialect)
		}
		p.text(n.Text)
	default:
		p.text(n.Text)
	}
	return nil
}

func (p *printer) list(n *ast.Node) error {
	switch n.Delim {
	case token.Brace:
		if !p.opts.Dialect.BraceGroups {
			return fmt.Errorf("%w: brace group with brace groups disabled", ErrDialect)
		}
	case token.Bracket:
		if !p.opts.Dialect.BracketGroups {
			return fmt.Errorf("%w: bracket group with bracket groups disabled", ErrDialect)
		}
	}

	p.open(n.Delim)
	for _, c := range n.Children {
		if err := p.node(c); err != nil {
			return err
		}
	}
	p.flushComments(n.Span.End)
	p.close(n.Delim)
	return nil
}

func (p *printer) open(d token.Delim) {
	if p.needSep {
		p.buf = append(p.buf, ' ')
	}
	p.buf = append(p.buf, d.OpenByte())
	p.needSep = false
}

func (p *printer) close(d token.Delim) {
	p.buf = append(p.buf, d.CloseByte())
	p.needSep = true
}

func (p *printer) text(s string) {
	if p.needSep {
		p.buf = append(p.buf, ' ')
	}
	p.buf = append(p.buf, s...)
	p.needSep = true
}

// flushComments emits every pending comment positioned before the given
// offset. Each comment ends its line, so whatever follows starts fresh.
func (p *printer) flushComments(before uint32) {
	for p.ci < len(p.comments) && p.comments[p.ci].Span.Start < before {
		c := p.comments[p.ci]
		p.ci++
		if p.needSep {
			p.buf = append(p.buf, ' ')
		}
		p.buf = append(p.buf, c.Text...)
		p.buf = append(p.buf, '\n')
		p.needSep = false
	}
}
