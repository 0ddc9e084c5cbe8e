package token

import (
	"sexpr/internal/source"
)

// Token represents a single source token with its location.
// Text is always the exact source slice, so a token stream can be re-emitted
// verbatim. Num is set only for IntLit and DecimalLit.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
	Num  *Number
}
