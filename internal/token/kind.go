package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token; a diagnostic with the same span
	// was reported through the lexer's Reporter.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an atom: a maximal run of identifier characters.
	Ident
	// IntLit represents an integer literal in any supported base.
	IntLit
	// DecimalLit represents a base-10 literal with a fractional part.
	DecimalLit
	// StringLit represents a quoted string literal, quotes included.
	StringLit
	// BytesLit represents a `#hex#` bytes literal.
	BytesLit
	// Comment represents a `;` line comment, terminating newline excluded.
	Comment

	// LParen represents '('.
	LParen
	// RParen represents ')'.
	RParen
	// LBrace represents '{'.
	LBrace
	// RBrace represents '}'.
	RBrace
	// LBracket represents '['.
	LBracket
	// RBracket represents ']'.
	RBracket
)

var kindNames = [...]string{
	Invalid:    "Invalid",
	EOF:        "EOF",
	Ident:      "Ident",
	IntLit:     "IntLit",
	DecimalLit: "DecimalLit",
	StringLit:  "StringLit",
	BytesLit:   "BytesLit",
	Comment:    "Comment",
	LParen:     "LParen",
	RParen:     "RParen",
	LBrace:     "LBrace",
	RBrace:     "RBrace",
	LBracket:   "LBracket",
	RBracket:   "RBracket",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}
