package token

import (
	"errors"
	"math/big"
	"strings"
)

// Base is the radix of an integer literal.
type Base uint8

const (
	// Binary is the 0b prefix, digits '0'..'1'.
	Binary Base = 2
	// Decimal is the unprefixed base, digits '0'..'9'.
	Decimal Base = 10
	// Hexadecimal is the 0x prefix, digits '0'..'9', 'a'..'f', 'A'..'F'.
	Hexadecimal Base = 16
)

// Prefix returns the literal prefix for the base ("" for decimal).
func (b Base) Prefix() string {
	switch b {
	case Binary:
		return "0b"
	case Hexadecimal:
		return "0x"
	default:
		return ""
	}
}

// ErrUint64Range is returned by Number.Uint64 when the value does not fit.
var ErrUint64Range = errors.New("number out of uint64 range")

// Number holds the formatting metadata of a numeric literal.
//
// Digits and Frac keep the raw digit runs exactly as written, '_' separators
// included, so a printer can reproduce the source layout without re-deriving
// it from the value. The canonical value is available through Int and Rat;
// no magnitude is ever rejected.
type Number struct {
	Base   Base
	Digits string // integral digits, separators kept
	Frac   string // fractional digits, empty for integers
}

// IsDecimalPoint reports whether the literal carries a fractional part.
func (n *Number) IsDecimalPoint() bool { return n.Frac != "" }

// digits strips '_' separators out of a raw digit run.
func digits(raw string) string {
	if !strings.ContainsRune(raw, '_') {
		return raw
	}
	return strings.ReplaceAll(raw, "_", "")
}

// Int returns the integral value of the literal at arbitrary precision.
// For a decimal-point literal this is the integral part only.
func (n *Number) Int() *big.Int {
	v, ok := new(big.Int).SetString(digits(n.Digits), int(n.Base))
	if !ok {
		// The lexer only emits base-valid digit runs.
		return new(big.Int)
	}
	return v
}

// Rat returns the exact value of the literal, fractional part included.
func (n *Number) Rat() *big.Rat {
	if n.Frac == "" {
		return new(big.Rat).SetInt(n.Int())
	}
	v, ok := new(big.Rat).SetString(digits(n.Digits) + "." + digits(n.Frac))
	if !ok {
		return new(big.Rat)
	}
	return v
}

// Uint64 converts the integral value, failing if it does not fit.
func (n *Number) Uint64() (uint64, error) {
	v := n.Int()
	if !v.IsUint64() {
		return 0, ErrUint64Range
	}
	return v.Uint64(), nil
}

// Source renders the literal exactly as written: base prefix, separators,
// and fractional part included.
func (n *Number) Source() string {
	var sb strings.Builder
	sb.WriteString(n.Base.Prefix())
	sb.WriteString(n.Digits)
	if n.Frac != "" {
		sb.WriteByte('.')
		sb.WriteString(n.Frac)
	}
	return sb.String()
}
