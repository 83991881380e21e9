package match

import (
	"math"
	"testing"
)

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected int
	}{
		// Identical strings
		{"", "", 0},
		{"a", "a", 0},
		{"hello", "hello", 0},

		// Empty vs non-empty
		{"", "abc", 3},
		{"abc", "", 3},

		// Single character operations
		{"a", "b", 1},    // substitution
		{"a", "ab", 1},   // insertion
		{"ab", "a", 1},   // deletion
		{"abc", "ab", 1}, // deletion
		{"ab", "abc", 1}, // insertion

		// Multiple operations
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},

		// Case-sensitive: normalization is the caller's job
		{"ABC", "abc", 3},

		// Real-world variable names (normalized)
		{"targetaudience", "audience", 6},
		{"audiences", "audience", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			result := EditDistance(tt.a, tt.b)
			if result != tt.expected {
				t.Errorf("EditDistance(%q, %q) = %d, want %d", tt.a, tt.b, result, tt.expected)
			}

			// Verify symmetry
			resultReverse := EditDistance(tt.b, tt.a)
			if result != resultReverse {
				t.Errorf("EditDistance symmetry failed: (%q, %q) = %d, (%q, %q) = %d",
					tt.a, tt.b, result, tt.b, tt.a, resultReverse)
			}
		})
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected float64
	}{
		// Identical after normalization
		{"company_name", "Company-Name", 1.0},
		{"company name", "companyName", 1.0},

		// Both normalize to empty
		{"", "", 1.0},
		{"__", " - ", 1.0},

		// One side empty
		{"", "abc", 0.0},

		// Completely different
		{"abc", "xyz", 0.0},

		// Partial matches
		{"kitten", "sitting", 1.0 - 3.0/7.0},        // ~0.571
		{"target_audience", "audience", 8.0 / 14.0}, // below the direct threshold
		{"audiences", "audience", 8.0 / 9.0},        // ~0.889
		{"company", "company_name", 7.0 / 11.0},     // ~0.636
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			result := Similarity(tt.a, tt.b)
			// Allow small floating point tolerance
			if diff := result - tt.expected; diff < -0.001 || diff > 0.001 {
				t.Errorf("Similarity(%q, %q) = %f, want %f", tt.a, tt.b, result, tt.expected)
			}
		})
	}
}

var similarityCorpus = []string{
	"", "_", "a", "A", "target_audience", "audience", "Audience", "targetAudience",
	"company_name", "company", "budget", "cost", "xyz123", "kitten", "sitting",
	"tone of voice", "brand-voice", "Über", "über_name",
}

func TestSimilarity_Properties(t *testing.T) {
	for _, a := range similarityCorpus {
		if got := Similarity(a, a); got != 1.0 {
			t.Errorf("Similarity(%q, %q) = %v, want 1.0 (reflexivity)", a, a, got)
		}

		for _, b := range similarityCorpus {
			ab := Similarity(a, b)
			ba := Similarity(b, a)

			if ab != ba {
				t.Errorf("Similarity(%q, %q) = %v but reversed = %v (symmetry)", a, b, ab, ba)
			}

			if ab < 0 || ab > 1 || math.IsNaN(ab) {
				t.Errorf("Similarity(%q, %q) = %v outside [0,1]", a, b, ab)
			}

			if (ab == 1.0) != (Normalize(a) == Normalize(b)) {
				t.Errorf("Similarity(%q, %q) = %v; 1.0 must coincide with equal normalized keys", a, b, ab)
			}
		}
	}
}

func TestSimilarity_DecreasesAsStringsDiverge(t *testing.T) {
	base := "audience"
	variants := []string{"audience", "audiencex", "audiencexy", "audiencexyz"}

	prev := 2.0
	for _, v := range variants {
		score := Similarity(base, v)
		if score >= prev {
			t.Errorf("Similarity(%q, %q) = %v, want < %v", base, v, score, prev)
		}
		prev = score
	}
}

// Benchmark tests
func BenchmarkEditDistance(b *testing.B) {
	a := "targetaudience"
	bStr := "customersegment"
	for i := 0; i < b.N; i++ {
		EditDistance(a, bStr)
	}
}

func BenchmarkSimilarity(b *testing.B) {
	a := "Target_Audience"
	bStr := "customer-segment"
	for i := 0; i < b.N; i++ {
		Similarity(a, bStr)
	}
}
