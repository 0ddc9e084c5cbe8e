package token

// Delim is the bracket flavor of a group: (), {} or [].
// The three flavors are equivalent containers; the flavor is preserved only
// for round-trip fidelity.
type Delim uint8

const (
	// Paren is the () flavor, always enabled.
	Paren Delim = iota
	// Brace is the {} flavor, enabled by Dialect.BraceGroups.
	Brace
	// Bracket is the [] flavor, enabled by Dialect.BracketGroups.
	Bracket
)

func (d Delim) String() string {
	switch d {
	case Paren:
		return "paren"
	case Brace:
		return "brace"
	case Bracket:
		return "bracket"
	}
	return "unknown"
}

// OpenByte returns the opening delimiter character.
func (d Delim) OpenByte() byte {
	switch d {
	case Brace:
		return '{'
	case Bracket:
		return '['
	default:
		return '('
	}
}

// CloseByte returns the closing delimiter character.
func (d Delim) CloseByte() byte {
	switch d {
	case Brace:
		return '}'
	case Bracket:
		return ']'
	default:
		return ')'
	}
}

// DelimOf maps a delimiter token kind to its flavor and side.
// ok is false for non-delimiter kinds.
func DelimOf(k Kind) (d Delim, open bool, ok bool) {
	switch k {
	case LParen:
		return Paren, true, true
	case RParen:
		return Paren, false, true
	case LBrace:
		return Brace, true, true
	case RBrace:
		return Brace, false, true
	case LBracket:
		return Bracket, true, true
	case RBracket:
		return Bracket, false, true
	}
	return 0, false, false
}
