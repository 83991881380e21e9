package match

import (
	"slices"
	"sort"
)

// Concept is a canonical semantic category with the spellings that denote it.
type Concept struct {
	Name     string   `yaml:"name" json:"name"`
	Synonyms []string `yaml:"synonyms" json:"synonyms"`
}

// ConceptTable supplies the canonical concepts a Matcher recognizes.
type ConceptTable interface {
	Concepts() []Concept
}

// Config controls matcher scoring and aggregation.
type Config struct {
	Thresholds Thresholds
	Dedup      DedupScope
}

// DefaultConfig returns the tuned production configuration.
func DefaultConfig() Config {
	return Config{
		Thresholds: DefaultThresholds(),
		Dedup:      DedupPerPlaceholder,
	}
}

// Matcher proposes preference keys for template placeholders.
// It is immutable after NewMatcher and safe for concurrent use.
type Matcher struct {
	config   Config
	concepts []compiledConcept
}

// compiledConcept caches the normalized terms of a concept.
type compiledConcept struct {
	name  string
	terms []string // normalized name followed by normalized synonyms
}

// NewMatcher builds a Matcher over a snapshot of the given concept table.
// A nil table yields a matcher that only performs direct matching.
func NewMatcher(table ConceptTable, cfg Config) *Matcher {
	m := &Matcher{config: cfg}
	if table == nil {
		return m
	}

	for _, c := range table.Concepts() {
		cc := compiledConcept{
			name:  c.Name,
			terms: make([]string, 0, len(c.Synonyms)+1),
		}

		cc.terms = append(cc.terms, Normalize(c.Name))
		for _, syn := range c.Synonyms {
			cc.terms = append(cc.terms, Normalize(syn))
		}

		m.concepts = append(m.concepts, cc)
	}

	return m
}

// Config returns the configuration the matcher was built with.
func (m *Matcher) Config() Config {
	return m.config
}

// SemanticMatches returns the direct and synonym-table candidates for one
// placeholder, direct candidates first. Duplicates across the two steps are
// left for Reconcile to resolve.
func (m *Matcher) SemanticMatches(placeholder string, preferences map[string]string) CandidateList {
	keys := sortedKeys(preferences)
	normPlaceholder := Normalize(placeholder)

	normKeys := make([]string, len(keys))
	for i, key := range keys {
		normKeys[i] = Normalize(key)
	}

	var candidates CandidateList

	// Step 1: direct name similarity
	for i, key := range keys {
		score := similarityNormalized(normPlaceholder, normKeys[i])
		if score > m.config.Thresholds.Direct {
			candidates = append(candidates, Candidate{
				Original:   placeholder,
				Suggested:  key,
				Confidence: score,
				Kind:       MatchDirect,
			})
		}
	}

	// Step 2: both names belong to the same canonical concept
	for _, concept := range m.concepts {
		if !m.isInstance(normPlaceholder, concept) {
			continue
		}

		for i, key := range keys {
			if !m.isKeyInstance(key, normKeys[i], concept) {
				continue
			}

			candidates = append(candidates, Candidate{
				Original:   placeholder,
				Suggested:  key,
				Confidence: m.config.Thresholds.Semantic,
				Kind:       MatchSemantic,
				Concept:    concept.name,
			})
		}
	}

	return candidates
}

// Reconcile proposes preferences for every placeholder, in input order.
// The result is deduplicated per the configured scope, filtered to
// confidences above the minimum, and sorted by confidence descending with
// ties in first-seen order.
func (m *Matcher) Reconcile(placeholders []string, preferences map[string]string) CandidateList {
	var all CandidateList
	for _, placeholder := range placeholders {
		all = append(all, m.SemanticMatches(placeholder, preferences)...)
	}

	return all.
		Dedupe(m.config.Dedup).
		AboveThreshold(m.config.Thresholds.Min).
		SortByConfidence()
}

// isInstance reports whether a normalized placeholder is a near-synonym of
// any of the concept's terms, the concept name included.
func (m *Matcher) isInstance(norm string, concept compiledConcept) bool {
	return slices.ContainsFunc(concept.terms, func(term string) bool {
		return similarityNormalized(norm, term) > m.config.Thresholds.Synonym
	})
}

// isKeyInstance reports whether a preference key denotes the concept: the key
// equals the concept name, or is a near-synonym of one of its synonyms. Keys
// merely close to the concept name do not count.
func (m *Matcher) isKeyInstance(key, norm string, concept compiledConcept) bool {
	if key == concept.name || norm == concept.terms[0] {
		return true
	}

	return slices.ContainsFunc(concept.terms[1:], func(term string) bool {
		return similarityNormalized(norm, term) > m.config.Thresholds.Synonym
	})
}

// sortedKeys returns map keys in lexical order so output is deterministic.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
