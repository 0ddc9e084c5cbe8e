package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"fortio.org/safecast"
)

const utf8RuneSelf = 0x80

// ===== Runes on top of the byte Cursor =====

// peekRune decodes the rune at the cursor. size is 0 at EOF; an invalid
// UTF-8 byte decodes as (utf8.RuneError, 1).
func (lx *Lexer) peekRune() (r rune, size int) {
	if lx.cursor.EOF() {
		return utf8.RuneError, 0
	}
	b := lx.cursor.Peek()
	if b < utf8RuneSelf { // fast-path ASCII
		return rune(b), 1
	}
	r, sz := utf8.DecodeRune(lx.file.Content[lx.cursor.Off:])
	return r, sz
}

// bumpRune advances the cursor by the size of the current rune.
func (lx *Lexer) bumpRune() {
	_, sz := lx.peekRune()
	if sz == 0 {
		return
	}
	usz, err := safecast.Conv[uint32](sz)
	if err != nil {
		panic(fmt.Errorf("bumpRune overflow: %w", err))
	}
	lx.cursor.Off += usz
}

// ===== Character classes =====

func isDec(b byte) bool { return b >= '0' && b <= '9' }
func isHex(b byte) bool {
	return (b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'f') ||
		(b >= 'A' && b <= 'F')
}
func isBin(b byte) bool { return b == '0' || b == '1' }

func isAlnumByte(b byte) bool {
	return isDec(b) || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

// asciiOperators are the ASCII punctuation characters that belong to atoms.
// Excluded for good: () " ; \ and whitespace. # and the {}[] pairs are
// dialect-dependent and handled separately.
const asciiOperators = "?!@$+-*/=<>,.:|%^&~'`"

func isASCIIOperator(b byte) bool {
	return strings.IndexByte(asciiOperators, b) >= 0
}

// extendedMathOperator covers the Unicode mathematical operator blocks.
func extendedMathOperator(r rune) bool {
	return (r >= 0x2200 && r <= 0x22FF) || (r >= 0x2A00 && r <= 0x2AFF)
}

// isAtomStart reports whether r can begin an atom under the dialect.
// Digits never start an atom; a leading digit routes to the number scanner.
func (lx *Lexer) isAtomStart(r rune) bool {
	if r < utf8RuneSelf {
		b := byte(r)
		switch {
		case b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z'):
			return true
		case isASCIIOperator(b):
			return true
		case b == '#':
			return !lx.opts.Dialect.ByteStrings
		case b == '{' || b == '}':
			return !lx.opts.Dialect.BraceGroups
		case b == '[' || b == ']':
			return !lx.opts.Dialect.BracketGroups
		default:
			return false
		}
	}
	return unicode.IsLetter(r) || extendedMathOperator(r)
}

// isAtomContinue reports whether r can continue an atom under the dialect.
// Unlike isAtomStart it admits digits, and '#' regardless of dialect: the
// bytes marker is only special at token start.
func (lx *Lexer) isAtomContinue(r rune) bool {
	if r < utf8RuneSelf {
		b := byte(r)
		if isDec(b) || b == '#' {
			return true
		}
	}
	return lx.isAtomStart(r) || unicode.IsDigit(r)
}
