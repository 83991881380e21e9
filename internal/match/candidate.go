package match

import (
	"sort"
)

// Candidate represents a proposed preference for one placeholder.
type Candidate struct {
	// Original is the placeholder name as it appeared in the template.
	Original string `json:"original"`
	// Suggested is the preference key proposed to fill the placeholder.
	Suggested string `json:"suggested"`
	// Confidence is the score in [0,1]; 1.0 only for identical normalized names.
	Confidence float64 `json:"confidence"`

	// Metadata for debugging/explanation
	Kind    MatchKind `json:"-"`
	Concept string    `json:"-"` // canonical concept behind a semantic match
}

// MatchKind records which step of the matcher produced a candidate.
type MatchKind int

const (
	// MatchDirect - normalized edit-distance similarity between the two names.
	MatchDirect MatchKind = iota
	// MatchSemantic - both names are near-synonyms of the same canonical concept.
	MatchSemantic
)

// String returns a human-readable kind name.
func (k MatchKind) String() string {
	switch k {
	case MatchDirect:
		return "direct"
	case MatchSemantic:
		return "semantic"
	default:
		return "unknown"
	}
}

// DedupScope selects which candidates compete with each other during dedup.
type DedupScope int

const (
	// DedupPerPlaceholder keeps the best candidate per (placeholder, preference) pair.
	// Two different placeholders may both be offered the same preference.
	DedupPerPlaceholder DedupScope = iota
	// DedupGlobal keeps the best candidate per preference across the whole call,
	// so a preference is suggested to at most one placeholder.
	DedupGlobal
)

// String returns the configuration name of the scope.
func (s DedupScope) String() string {
	switch s {
	case DedupPerPlaceholder:
		return "placeholder"
	case DedupGlobal:
		return "global"
	default:
		return "unknown"
	}
}

// ParseDedupScope parses a configuration name into a DedupScope.
func ParseDedupScope(s string) (DedupScope, bool) {
	switch s {
	case "placeholder", "per-placeholder", "":
		return DedupPerPlaceholder, true
	case "global":
		return DedupGlobal, true
	default:
		return DedupPerPlaceholder, false
	}
}

// CandidateList is a list of candidates with ranking functionality.
type CandidateList []Candidate

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface.
// Higher confidence comes first; equal confidences keep their relative order
// only under sort.Stable.
func (c CandidateList) Less(i, j int) bool {
	return c[i].Confidence > c[j].Confidence
}

// SortByConfidence sorts in place by confidence descending, preserving
// insertion order for ties, and returns the list.
func (c CandidateList) SortByConfidence() CandidateList {
	sort.Stable(c)
	return c
}

// Dedupe keeps a single candidate per group, where the group is the suggested
// key (DedupGlobal) or the (original, suggested) pair (DedupPerPlaceholder).
// A later candidate replaces the kept one only with strictly higher confidence,
// and takes over its position, so groups stay in first-seen order.
func (c CandidateList) Dedupe(scope DedupScope) CandidateList {
	type groupKey struct {
		original  string
		suggested string
	}

	result := make(CandidateList, 0, len(c))
	index := make(map[groupKey]int, len(c))

	for _, cand := range c {
		key := groupKey{suggested: cand.Suggested}
		if scope == DedupPerPlaceholder {
			key.original = cand.Original
		}

		i, ok := index[key]
		if !ok {
			index[key] = len(result)
			result = append(result, cand)

			continue
		}

		if cand.Confidence > result[i].Confidence {
			result[i] = cand
		}
	}

	return result
}

// AboveThreshold returns candidates with confidence strictly above the threshold.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	result := make(CandidateList, 0, len(c))
	for _, cand := range c {
		if cand.Confidence > threshold {
			result = append(result, cand)
		}
	}

	return result
}

// ForPlaceholder returns the candidates proposed for the given placeholder.
func (c CandidateList) ForPlaceholder(original string) CandidateList {
	var result CandidateList
	for _, cand := range c {
		if cand.Original == original {
			result = append(result, cand)
		}
	}

	return result
}

// Best returns the best candidate, or nil if no candidates.
func (c CandidateList) Best() *Candidate {
	if len(c) == 0 {
		return nil
	}

	return &c[0]
}

// Top returns the top n candidates. A negative n returns none.
func (c CandidateList) Top(n int) CandidateList {
	if n < 0 {
		n = 0
	}

	if n >= len(c) {
		return c
	}

	return c[:n]
}
