package diag

import (
	"sexpr/internal/source"
)

// Note attaches a secondary span to a diagnostic, e.g. the opening delimiter
// of a mismatched pair.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is one recoverable finding with its primary span.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}
