package source

import (
	"path/filepath"
	"slices"
	"unicode/utf8"
)

// normalizeCRLF rewrites every \r\n to \n, leaving lone \r untouched.
// Returns the (possibly new) slice and whether any replacement happened.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !slices.Contains(content, '\r') {
		return content, false
	}

	out := make([]byte, 0, len(content))
	changed := false

	i := 0
	for i < len(content) {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			out = append(out, '\n')
			i += 2
			changed = true
		} else {
			out = append(out, content[i])
			i++
		}
	}
	return out, changed
}

func removeBOM(content []byte) ([]byte, bool) {
	if len(content) < 3 {
		return content, false
	}
	if content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}
	return content, false
}

func buildLineIndex(content []byte) []uint32 {
	var out []uint32
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i))
		}
	}
	return out
}

// toLineCol maps a byte offset to a 1-based line and rune column.
func toLineCol(content []byte, lineIdx []uint32, off uint32) LineCol {
	// Binary search: greatest lineIdx[i] <= off-1, i.e. the newline that
	// precedes the offset.
	lo, hi := 0, len(lineIdx)-1
	for lo <= hi {
		mid := (lo + hi) >> 1
		if lineIdx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	line := hi // index of the newline preceding off, or -1 on the first line

	var startOff uint32
	if line >= 0 {
		startOff = lineIdx[line] + 1
	}

	col := uint32(1)
	if startOff < off && int(off) <= len(content) {
		col += uint32(utf8.RuneCount(content[startOff:off]))
	}
	return LineCol{Line: uint32(line + 2), Col: col}
}

func normalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}
