package vocab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"varmatch/internal/match"
)

func TestDefault(t *testing.T) {
	v := Default()
	require.NotNil(t, v)
	assert.Same(t, v, Default(), "default vocabulary is built once")

	c, ok := v.Lookup("target_audience")
	require.True(t, ok)
	assert.Equal(t, []string{"audience", "target", "demographic", "customer_segment", "user_group"}, c.Synonyms)

	c, ok = v.Lookup("Budget")
	require.True(t, ok)
	assert.Contains(t, c.Synonyms, "cost")

	diags := Validate(v)
	assert.True(t, diags.IsValid(), diags.Error())
	assert.Empty(t, diags.Warnings)
}

func TestDefault_ConceptsDoNotOverlap(t *testing.T) {
	// A term that is a near-synonym of two concepts would make every
	// placeholder spelled like it match both.
	concepts := Default().Concepts()

	for i, a := range concepts {
		termsA := append([]string{a.Name}, a.Synonyms...)
		for _, b := range concepts[i+1:] {
			termsB := append([]string{b.Name}, b.Synonyms...)
			for _, ta := range termsA {
				for _, tb := range termsB {
					assert.LessOrEqual(t, match.Similarity(ta, tb), match.DefaultSynonymThreshold,
						"%s (%s) overlaps %s (%s)", ta, a.Name, tb, b.Name)
				}
			}
		}
	}
}

func TestVocabulary_Immutable(t *testing.T) {
	in := []match.Concept{{Name: "mood", Synonyms: []string{"feeling"}}}
	v := New(in)

	in[0].Name = "changed"
	in[0].Synonyms[0] = "changed"

	out := v.Concepts()
	assert.Equal(t, "mood", out[0].Name)
	assert.Equal(t, []string{"feeling"}, out[0].Synonyms)

	out[0].Synonyms[0] = "mutated"
	assert.Equal(t, []string{"feeling"}, v.Concepts()[0].Synonyms)
}

func TestVocabulary_NilSafe(t *testing.T) {
	var v *Vocabulary

	assert.Nil(t, v.Concepts())
	assert.Equal(t, 0, v.Len())

	_, ok := v.Lookup("tone")
	assert.False(t, ok)
}

func TestVocabulary_Lookup(t *testing.T) {
	v := New([]match.Concept{{Name: "company_name", Synonyms: []string{"company"}}})

	c, ok := v.Lookup("Company-Name")
	require.True(t, ok)
	assert.Equal(t, "company_name", c.Name)

	_, ok = v.Lookup("company")
	assert.False(t, ok, "lookup is by concept name, not synonym")
}
