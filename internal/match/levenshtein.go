package match

import (
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
)

// EditDistance computes the Levenshtein distance between two strings.
// Insertions, deletions and substitutions each cost 1. Runes are compared
// as-is, so callers wanting case-insensitive distance normalize first.
func EditDistance(a, b string) int {
	if a == b {
		return 0
	}

	return edlib.LevenshteinDistance(a, b)
}

// Similarity computes a normalized similarity score between two variable
// names after normalizing them. 1.0 means the normalized names are identical,
// 0.0 means nothing is shared.
// The score is: (len(longer) - distance) / len(longer), lengths in runes.
func Similarity(a, b string) float64 {
	return similarityNormalized(Normalize(a), Normalize(b))
}

// similarityNormalized scores two already-normalized keys.
func similarityNormalized(a, b string) float64 {
	if a == b {
		return 1.0
	}

	longer := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longer == 0 {
		// Two empty names are the same name.
		return 1.0
	}

	distance := EditDistance(a, b)

	return float64(longer-distance) / float64(longer)
}
