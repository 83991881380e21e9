package vocab

import (
	"slices"
	"sync"

	"varmatch/internal/match"
)

// Vocabulary is an immutable, ordered set of canonical concepts.
type Vocabulary struct {
	concepts []match.Concept
}

var _ match.ConceptTable = (*Vocabulary)(nil)

// New builds a Vocabulary from a copy of the given concepts.
func New(concepts []match.Concept) *Vocabulary {
	return &Vocabulary{concepts: cloneConcepts(concepts)}
}

// Concepts returns a copy of the concepts in declaration order.
func (v *Vocabulary) Concepts() []match.Concept {
	if v == nil {
		return nil
	}

	return cloneConcepts(v.concepts)
}

// Len returns the number of concepts.
func (v *Vocabulary) Len() int {
	if v == nil {
		return 0
	}

	return len(v.concepts)
}

// Lookup returns the concept whose normalized name equals the normalized name given.
func (v *Vocabulary) Lookup(name string) (match.Concept, bool) {
	if v == nil {
		return match.Concept{}, false
	}

	norm := match.Normalize(name)
	for _, c := range v.concepts {
		if match.Normalize(c.Name) == norm {
			return match.Concept{Name: c.Name, Synonyms: slices.Clone(c.Synonyms)}, true
		}
	}

	return match.Concept{}, false
}

func cloneConcepts(in []match.Concept) []match.Concept {
	if in == nil {
		return nil
	}

	out := make([]match.Concept, len(in))
	for i, c := range in {
		out[i] = match.Concept{Name: c.Name, Synonyms: slices.Clone(c.Synonyms)}
	}

	return out
}

var (
	defaultOnce  sync.Once
	defaultVocab *Vocabulary
)

// Default returns the built-in vocabulary. It is constructed once per process.
func Default() *Vocabulary {
	defaultOnce.Do(func() {
		defaultVocab = New(defaultConcepts)
	})

	return defaultVocab
}

// defaultConcepts covers the variables prompt authors use most often.
var defaultConcepts = []match.Concept{
	{Name: "target_audience", Synonyms: []string{"audience", "target", "demographic", "customer_segment", "user_group"}},
	{Name: "company_name", Synonyms: []string{"company", "business_name", "brand", "organization", "business"}},
	{Name: "product_name", Synonyms: []string{"product", "product_title", "item", "offering"}},
	{Name: "industry", Synonyms: []string{"sector", "field", "vertical", "niche", "market"}},
	{Name: "tone", Synonyms: []string{"voice", "style", "writing_style", "brand_voice"}},
	{Name: "budget", Synonyms: []string{"cost", "price", "spend", "amount"}},
	{Name: "goal", Synonyms: []string{"objective", "aim", "purpose", "outcome"}},
	{Name: "location", Synonyms: []string{"city", "region", "country", "area", "geography"}},
	{Name: "language", Synonyms: []string{"locale", "lang"}},
	{Name: "role", Synonyms: []string{"job_title", "position", "occupation", "profession"}},
	{Name: "timeline", Synonyms: []string{"deadline", "timeframe", "duration", "due_date"}},
	{Name: "topic", Synonyms: []string{"subject", "theme", "keyword"}},
	{Name: "website", Synonyms: []string{"url", "site", "homepage", "domain"}},
	{Name: "platform", Synonyms: []string{"channel", "social_network", "medium"}},
}
