package match

import "fmt"

// Empirical tuning knobs. Changing them changes which suggestions users see.
const (
	// DefaultDirectThreshold is the similarity a preference key must exceed
	// to be proposed on name closeness alone.
	DefaultDirectThreshold = 0.6
	// DefaultSynonymThreshold is the similarity a name must exceed against a
	// concept term to count as an instance of that concept.
	DefaultSynonymThreshold = 0.8
	// DefaultSemanticConfidence is the fixed confidence of a synonym-table match.
	DefaultSemanticConfidence = 0.9
	// DefaultMinConfidence is the confidence a candidate must exceed to be returned.
	DefaultMinConfidence = 0.7
)

// Thresholds groups the scoring constants used by a Matcher.
type Thresholds struct {
	Direct   float64 `yaml:"direct"`
	Synonym  float64 `yaml:"synonym"`
	Semantic float64 `yaml:"semantic"`
	Min      float64 `yaml:"min"`
}

// DefaultThresholds returns the tuned production thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Direct:   DefaultDirectThreshold,
		Synonym:  DefaultSynonymThreshold,
		Semantic: DefaultSemanticConfidence,
		Min:      DefaultMinConfidence,
	}
}

// Validate checks that every threshold lies in [0,1] and that a semantic
// match can never claim the 1.0 reserved for identical names.
func (t Thresholds) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"direct", t.Direct},
		{"synonym", t.Synonym},
		{"semantic", t.Semantic},
		{"min", t.Min},
	} {
		if f.value < 0 || f.value > 1 {
			return fmt.Errorf("threshold %s = %v is outside [0,1]", f.name, f.value)
		}
	}

	if t.Semantic >= 1 {
		return fmt.Errorf("semantic confidence %v must be below 1.0", t.Semantic)
	}

	return nil
}
