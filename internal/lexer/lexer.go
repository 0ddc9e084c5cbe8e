package lexer

import (
	"fmt"
	"unicode/utf8"

	"sexpr/internal/diag"
	"sexpr/internal/source"
	"sexpr/internal/token"
)

// Lexer turns one source file into a stream of spanned tokens. It is a
// single forward pass with one rune of lookahead; the stream terminates with
// an explicit EOF token and EOF is sticky.
//
// Lexical errors never stop the stream: the offending span is reported
// through Options.Reporter, an Invalid token is produced, and scanning
// resumes after the minimal bad unit.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token // one-token buffer for Peek
}

// New creates a lexer over the file.
func New(file *source.File, opts Options) *Lexer {
	if opts.Reporter == nil {
		opts.Reporter = diag.NopReporter{}
	}
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Dialect returns the dialect the lexer was created with.
func (lx *Lexer) Dialect() Dialect { return lx.opts.Dialect }

// Next returns the next token. After the end of input it always returns EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.skipWhitespace()

	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.EmptySpan()}
	}

	ch := lx.cursor.Peek()
	switch {
	case ch == '(':
		return lx.scanDelim(token.LParen)
	case ch == ')':
		return lx.scanDelim(token.RParen)
	case ch == '{' && lx.opts.Dialect.BraceGroups:
		return lx.scanDelim(token.LBrace)
	case ch == '}' && lx.opts.Dialect.BraceGroups:
		return lx.scanDelim(token.RBrace)
	case ch == '[' && lx.opts.Dialect.BracketGroups:
		return lx.scanDelim(token.LBracket)
	case ch == ']' && lx.opts.Dialect.BracketGroups:
		return lx.scanDelim(token.RBracket)
	case ch == ';':
		if lx.opts.Dialect.LineComments {
			return lx.scanComment()
		}
		return lx.invalidChar()
	case ch == '"':
		return lx.scanString()
	case ch == '#' && lx.opts.Dialect.ByteStrings:
		return lx.scanBytes()
	case isDec(ch):
		return lx.scanNumber()
	default:
		if r, _ := lx.peekRune(); lx.isAtomStart(r) {
			return lx.scanAtom()
		}
		return lx.invalidChar()
	}
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// EmptySpan returns a zero-length span at the current position.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) skipWhitespace() {
	for {
		switch lx.cursor.Peek() {
		case ' ', '\t', '\n':
			lx.cursor.Bump()
		default:
			return
		}
	}
}

func (lx *Lexer) scanDelim(kind token.Kind) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}

// scanComment consumes `;` up to, but not including, the newline.
func (lx *Lexer) scanComment() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.Comment, Span: sp, Text: lx.text(sp)}
}

// invalidChar reports the offending rune (or invalid UTF-8 byte), skips the
// minimal unit, and produces an Invalid token so the rest of the input is
// still lexed.
func (lx *Lexer) invalidChar() token.Token {
	start := lx.cursor.Mark()
	r, sz := lx.peekRune()
	var msg string
	if r == utf8.RuneError && sz == 1 {
		msg = fmt.Sprintf("invalid UTF-8 byte 0x%02x", lx.cursor.Peek())
		lx.cursor.Bump()
	} else {
		msg = fmt.Sprintf("unexpected character %q", r)
		lx.bumpRune()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexInvalidChar, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}
