package vocab

import (
	"fmt"

	"varmatch/internal/diagnostic"
	"varmatch/internal/match"
)

// Validate checks a vocabulary for entries the matcher cannot use sensibly.
// Concept names and synonyms are compared in normalized form.
func Validate(v *Vocabulary) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if v == nil {
		res.AddError("vocabulary_is_nil", "vocabulary is nil", "")
		return res
	}

	if v.Len() == 0 {
		res.AddWarning("empty_vocabulary", "vocabulary has no concepts; only direct matches will be proposed", "concepts")
	}

	seenConcepts := map[string]int{}

	for i, c := range v.concepts {
		field := fmt.Sprintf("concepts[%d]", i)

		norm := match.Normalize(c.Name)
		if norm == "" {
			res.AddError("empty_concept_name", "concept name is empty", field+".name")
			continue
		}

		if prev, ok := seenConcepts[norm]; ok {
			res.AddError("duplicate_concept",
				fmt.Sprintf("concept %q duplicates concepts[%d]", c.Name, prev), field+".name")

			continue
		}

		seenConcepts[norm] = i

		if len(c.Synonyms) == 0 {
			res.AddWarning("no_synonyms",
				fmt.Sprintf("concept %q has no synonyms", c.Name), field+".synonyms")
		}

		seenSynonyms := map[string]struct{}{norm: {}}

		for j, syn := range c.Synonyms {
			synField := fmt.Sprintf("%s.synonyms[%d]", field, j)

			synNorm := match.Normalize(syn)
			if synNorm == "" {
				res.AddError("empty_synonym",
					fmt.Sprintf("concept %q has an empty synonym", c.Name), synField)

				continue
			}

			if _, ok := seenSynonyms[synNorm]; ok {
				res.AddWarning("duplicate_synonym",
					fmt.Sprintf("synonym %q repeats a term of concept %q", syn, c.Name), synField)

				continue
			}

			seenSynonyms[synNorm] = struct{}{}
		}
	}

	return res
}
