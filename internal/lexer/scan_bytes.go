package lexer

import (
	"sexpr/internal/diag"
	"sexpr/internal/token"
)

// scanBytes consumes a `#hex#` literal: an even run of hex digit pairs, each
// pair one byte. Odd digit counts, non-hex interiors, and missing
// terminators are errors local to the literal; recovery skips to the closing
// '#' or the next whitespace so the rest of the input still lexes.
func (lx *Lexer) scanBytes() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '#'

	interiorStart := lx.cursor.Mark()
	for isHex(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	interior := lx.cursor.SpanFrom(interiorStart)

	if !lx.cursor.Eat('#') {
		if lx.cursor.EOF() {
			return lx.malformedBytes(start, "unterminated bytes literal")
		}
		// Non-hex character inside: resynchronize on '#' or whitespace.
		for !lx.cursor.EOF() {
			b := lx.cursor.Peek()
			if b == '#' {
				lx.cursor.Bump()
				break
			}
			if b == ' ' || b == '\t' || b == '\n' {
				break
			}
			lx.cursor.Bump()
		}
		return lx.malformedBytes(start, "invalid character in bytes literal")
	}

	if interior.Len()%2 != 0 {
		return lx.malformedBytes(start, "odd number of hex digits in bytes literal")
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.BytesLit, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) malformedBytes(start Mark, msg string) token.Token {
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexMalformedBytes, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}
