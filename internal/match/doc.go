// Package match reconciles prompt template placeholders with stored user
// preferences.
//
// Key functions:
//   - Normalize: canonical comparison key for a variable name
//   - Similarity: normalized Levenshtein similarity between two names
//   - (*Matcher).SemanticMatches: direct and synonym-table candidates for one placeholder
//   - (*Matcher).Reconcile: dedupe, filter and rank candidates for a whole template
//
// The package is pure: no I/O, no logging, no shared mutable state. A Matcher
// is read-only after NewMatcher and may be used from any number of goroutines.
package match
