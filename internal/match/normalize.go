package match

import (
	"strings"
	"unicode"
)

// Normalize produces the canonical comparison key for a variable name.
// The normalization pipeline:
// 1. Case-fold to lower.
// 2. Strip separators (_, -, any whitespace).
//
// It is total over every string; the empty string normalizes to itself.
func Normalize(name string) string {
	return stripSeparators(strings.ToLower(name))
}

// isSeparator returns true if the rune is a separator ignored during comparison.
func isSeparator(r rune) bool {
	return r == '_' || r == '-' || unicode.IsSpace(r)
}

// stripSeparators removes separators from a string.
func stripSeparators(s string) string {
	if strings.IndexFunc(s, isSeparator) < 0 {
		return s
	}

	var result strings.Builder

	result.Grow(len(s))

	for _, r := range s {
		if !isSeparator(r) {
			result.WriteRune(r)
		}
	}

	return result.String()
}
