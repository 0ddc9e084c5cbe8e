package parser

import (
	"fmt"

	"sexpr/internal/ast"
	"sexpr/internal/diag"
	"sexpr/internal/lexer"
	"sexpr/internal/source"
	"sexpr/internal/token"
)

// Options configures a parse run.
type Options struct {
	// MaxErrors bounds reported diagnostics; 0 means unlimited.
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough reports whether the error budget is spent.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

// Result is the best-effort outcome of a parse: the top-level nodes that
// could be built, comments kept out of band, and the diagnostics bag when
// the reporter was a BagReporter.
type Result struct {
	Nodes    []*ast.Node
	Comments []ast.Comment
	Bag      *diag.Bag
}

// openGroup is one entry of the delimiter stack.
type openGroup struct {
	delim    token.Delim
	open     source.Span
	children []*ast.Node
}

// Parser builds the expression tree from the lexer's token stream.
// It pulls one token at a time; the token list is never materialized.
type Parser struct {
	lx       *lexer.Lexer
	opts     Options
	stack    []openGroup
	top      []*ast.Node
	comments []ast.Comment
}

// ParseFile consumes the whole token stream and returns the best-effort
// tree. Grouping errors never abort: an unmatched close is dropped, a
// mismatched close still closes the group, and groups left open at EOF are
// emitted with their end at the end of input.
func ParseFile(lx *lexer.Lexer, opts Options) Result {
	if opts.Reporter == nil {
		opts.Reporter = diag.NopReporter{}
	}
	p := Parser{lx: lx, opts: opts}

	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			p.finish(tok.Span)
			break
		}
		p.consume(tok)
	}

	var bag *diag.Bag
	if br, ok := opts.Reporter.(*diag.BagReporter); ok {
		bag = br.Bag
	}
	return Result{
		Nodes:    p.top,
		Comments: p.comments,
		Bag:      bag,
	}
}

func (p *Parser) consume(tok token.Token) {
	switch tok.Kind {
	case token.Comment:
		p.comments = append(p.comments, ast.Comment{Span: tok.Span, Text: tok.Text})
		return
	case token.Invalid:
		// Already reported by the lexer; the bad span holds no structure.
		return
	}

	if delim, open, ok := token.DelimOf(tok.Kind); ok {
		if open {
			p.stack = append(p.stack, openGroup{delim: delim, open: tok.Span})
		} else {
			p.close(delim, tok.Span)
		}
		return
	}

	p.append(ast.NewLeaf(tok))
}

// close handles a closing delimiter of the given flavor.
func (p *Parser) close(delim token.Delim, closeSpan source.Span) {
	if len(p.stack) == 0 {
		p.emit(diag.SynUnmatchedClose, closeSpan,
			fmt.Sprintf("unmatched closing '%c'", delim.CloseByte()), nil)
		return
	}

	entry := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]

	if entry.delim != delim {
		// Close the group anyway so the tree stays usable. It keeps the
		// flavor it was opened with.
		p.emit(diag.SynMismatchedDelimiter, closeSpan,
			fmt.Sprintf("closing '%c' does not match opening '%c'",
				delim.CloseByte(), entry.delim.OpenByte()),
			[]diag.Note{{Span: entry.open, Msg: "group opened here"}})
	}

	p.append(ast.NewList(entry.delim, entry.open.Cover(closeSpan), entry.children))
}

// finish flushes groups still open at EOF, innermost first, reporting each
// with its opening span. eofSpan is the zero-length span at end of input.
func (p *Parser) finish(eofSpan source.Span) {
	for i := range p.stack {
		entry := &p.stack[i]
		p.emit(diag.SynUnterminatedGroup, entry.open,
			fmt.Sprintf("unterminated '%c' group", entry.delim.OpenByte()), nil)
	}
	for len(p.stack) > 0 {
		entry := p.stack[len(p.stack)-1]
		p.stack = p.stack[:len(p.stack)-1]
		p.append(ast.NewList(entry.delim, entry.open.Cover(eofSpan), entry.children))
	}
}

// append attaches a finished node to the innermost open group, or to the
// top level when the stack is empty.
func (p *Parser) append(n *ast.Node) {
	if len(p.stack) == 0 {
		p.top = append(p.top, n)
		return
	}
	entry := &p.stack[len(p.stack)-1]
	entry.children = append(entry.children, n)
}

func (p *Parser) emit(code diag.Code, primary source.Span, msg string, notes []diag.Note) {
	if p.opts.Enough() {
		return
	}
	p.opts.CurrentErrors++
	p.opts.Reporter.Report(code, diag.SevError, primary, msg, notes)
}
