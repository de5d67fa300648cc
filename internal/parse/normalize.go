package parse

import (
	"strings"
	"unicode/utf8"
)

// isMark reports invisible direction and byte-order marks that some exporters
// inject right before author names.
func isMark(r rune) bool {
	switch {
	case r == 0xFEFF: // byte-order mark
		return true
	case r == 0x200E || r == 0x200F: // LRM, RLM
		return true
	case r >= 0x202A && r <= 0x202E: // embeddings, pop, overrides
		return true
	case r >= 0x2066 && r <= 0x2069: // isolates
		return true
	default:
		return false
	}
}

func isNBSP(r rune) bool {
	return r == 0x00A0 || r == 0x202F
}

// StripMarks removes direction and byte-order marks and turns non-breaking
// spaces into ordinary ones. Other whitespace is left untouched.
func StripMarks(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		switch {
		case isMark(r):
		case isNBSP(r):
			b.WriteByte(' ')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Normalize strips marks, trims and collapses whitespace runs to single spaces.
func Normalize(s string) string {
	return strings.Join(strings.Fields(StripMarks(s)), " ")
}
