package lexer

import (
	"sexpr/internal/diag"
	"sexpr/internal/token"
)

// Supported literal forms:
//   - 0b[01_]+ and 0x[0-9a-fA-F_]+ (prefix lowercase, integers only)
//   - [0-9][0-9_]* with an optional .[0-9_]+ fraction (default base only)
//
// '_' is a legibility separator: doubled is fine, leading (after a base
// prefix) or trailing is a MalformedNumber. A malformed literal becomes an
// Invalid token covering its whole span and scanning resumes after it.
// Values carry no bit-width limit; digits are stored raw for round-trip.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	first := lx.cursor.Bump() // leading digit

	if first == '0' {
		switch lx.cursor.Peek() {
		case 'b':
			lx.cursor.Bump()
			return lx.scanPrefixed(start, token.Binary, isBin)
		case 'x':
			lx.cursor.Bump()
			return lx.scanPrefixed(start, token.Hexadecimal, isHex)
		}
	}

	// Decimal integral part; the leading digit is already consumed.
	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}
	digitRun := lx.text(lx.cursor.SpanFrom(start))

	// Fractional part: a '.' counts only when a digit follows, so `1.` is
	// the integer 1 and the dot starts the next atom.
	frac := ""
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && isDec(b1) {
		lx.cursor.Bump() // '.'
		fracStart := lx.cursor.Mark()
		for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
			lx.cursor.Bump()
		}
		frac = lx.text(lx.cursor.SpanFrom(fracStart))
	}

	if bad := lx.checkDigitRun(start, digitRun, frac); bad != nil {
		return *bad
	}
	if tok := lx.checkNumberTail(start); tok != nil {
		return *tok
	}

	sp := lx.cursor.SpanFrom(start)
	kind := token.IntLit
	if frac != "" {
		kind = token.DecimalLit
	}
	return token.Token{
		Kind: kind,
		Span: sp,
		Text: lx.text(sp),
		Num:  &token.Number{Base: token.Decimal, Digits: digitRun, Frac: frac},
	}
}

// scanPrefixed consumes the digit run of a 0b/0x literal.
func (lx *Lexer) scanPrefixed(start Mark, base token.Base, valid func(byte) bool) token.Token {
	digitsStart := lx.cursor.Mark()
	for valid(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}
	digitRun := lx.text(lx.cursor.SpanFrom(digitsStart))

	if digitRun == "" {
		return lx.malformed(start, "missing digits after base prefix")
	}
	if bad := lx.checkDigitRun(start, digitRun, ""); bad != nil {
		return *bad
	}
	if tok := lx.checkNumberTail(start); tok != nil {
		return *tok
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{
		Kind: token.IntLit,
		Span: sp,
		Text: lx.text(sp),
		Num:  &token.Number{Base: base, Digits: digitRun},
	}
}

// checkDigitRun validates underscore placement. Doubled separators are
// allowed; a run may not begin or end with one.
func (lx *Lexer) checkDigitRun(start Mark, digitRun, frac string) *token.Token {
	switch {
	case digitRun[0] == '_':
		bad := lx.malformed(start, "leading underscore in numeric literal")
		return &bad
	case digitRun[len(digitRun)-1] == '_':
		bad := lx.malformed(start, "trailing underscore in numeric literal")
		return &bad
	case frac != "" && frac[len(frac)-1] == '_':
		bad := lx.malformed(start, "trailing underscore in numeric literal")
		return &bad
	}
	return nil
}

// checkNumberTail rejects a literal glued to alphanumeric garbage, e.g.
// `0b102` or `123abc`: the whole run is one malformed literal, not two
// tokens.
func (lx *Lexer) checkNumberTail(start Mark) *token.Token {
	b := lx.cursor.Peek()
	if !isAlnumByte(b) && b != '_' {
		return nil
	}
	for {
		b = lx.cursor.Peek()
		if !isAlnumByte(b) && b != '_' {
			break
		}
		lx.cursor.Bump()
	}
	bad := lx.malformed(start, "invalid digit in numeric literal")
	return &bad
}

// malformed reports the literal and returns an Invalid token over its span.
func (lx *Lexer) malformed(start Mark, msg string) token.Token {
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexMalformedNumber, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}
