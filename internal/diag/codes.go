package diag

import (
	"fmt"
)

// Code identifies a diagnostic kind. Lexical codes live in the 1xxx range,
// grouping codes in the 2xxx range.
type Code uint16

const (
	// UnknownCode is the zero value; never emitted on purpose.
	UnknownCode Code = 0

	// LexInvalidChar: a byte or codepoint not valid at the current lexical
	// position, including invalid UTF-8.
	LexInvalidChar Code = 1001
	// LexMalformedNumber: bad underscore placement or invalid digit for base.
	LexMalformedNumber Code = 1002
	// LexUnterminatedString: string literal hit newline or EOF.
	LexUnterminatedString Code = 1003
	// LexMalformedBytes: `#hex#` literal with an odd digit count, a non-hex
	// interior, or a missing terminator.
	LexMalformedBytes Code = 1004

	// SynUnmatchedClose: a closing delimiter with no open group.
	SynUnmatchedClose Code = 2001
	// SynMismatchedDelimiter: the closing delimiter flavor differs from the
	// innermost open group.
	SynMismatchedDelimiter Code = 2002
	// SynUnterminatedGroup: input ended with the group still open.
	SynUnterminatedGroup Code = 2003

	// IOLoadFile: a source file could not be read from disk.
	IOLoadFile Code = 9001
)

var codeIDs = map[Code]string{
	UnknownCode:            "UNKNOWN",
	LexInvalidChar:         "LEX_INVALID_CHAR",
	LexMalformedNumber:     "LEX_MALFORMED_NUMBER",
	LexUnterminatedString:  "LEX_UNTERMINATED_STRING",
	LexMalformedBytes:      "LEX_MALFORMED_BYTES",
	SynUnmatchedClose:      "SYN_UNMATCHED_CLOSE",
	SynMismatchedDelimiter: "SYN_MISMATCHED_DELIMITER",
	SynUnterminatedGroup:   "SYN_UNTERMINATED_GROUP",
	IOLoadFile:             "IO_LOAD_FILE",
}

// ID returns the stable symbolic name of the code.
func (c Code) ID() string {
	if id, ok := codeIDs[c]; ok {
		return id
	}
	return fmt.Sprintf("CODE_%04d", uint16(c))
}

func (c Code) String() string {
	return fmt.Sprintf("%s(%04d)", c.ID(), uint16(c))
}
