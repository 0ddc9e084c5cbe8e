package lexer

import (
	"sexpr/internal/diag"
	"sexpr/internal/source"
)

// Dialect is the set of optional lexical features. It is read-only during a
// run and can be shared freely across concurrent lexers.
//
// Plain () grouping is always on and not configurable. Characters of a
// disabled group flavor are not reserved: with BraceGroups off, `{abc}` is a
// single atom.
type Dialect struct {
	// LineComments enables `;` comments running to end of line.
	LineComments bool
	// ByteStrings enables `#hex#` bytes literals.
	ByteStrings bool
	// BraceGroups enables the {} group flavor.
	BraceGroups bool
	// BracketGroups enables the [] group flavor.
	BracketGroups bool
}

// DefaultDialect returns the permissive profile with every feature on.
func DefaultDialect() Dialect {
	return Dialect{
		LineComments:  true,
		ByteStrings:   true,
		BraceGroups:   true,
		BracketGroups: true,
	}
}

// Options configures a Lexer.
type Options struct {
	Dialect  Dialect
	Reporter diag.Reporter // nil means NopReporter: errors are dropped, lexing continues
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
}
