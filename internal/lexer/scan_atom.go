package lexer

import (
	"sexpr/internal/token"
)

// scanAtom consumes a maximal run of atom characters. Token.Text is exactly
// the source slice. The caller has already checked isAtomStart on the first
// rune.
func (lx *Lexer) scanAtom() token.Token {
	start := lx.cursor.Mark()
	lx.bumpRune()
	for {
		r, sz := lx.peekRune()
		if sz == 0 || !lx.isAtomContinue(r) {
			break
		}
		lx.bumpRune()
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.Ident, Span: sp, Text: lx.text(sp)}
}
