// Package vocab provides the canonical-concept vocabulary used by the
// semantic matcher: the built-in default table, YAML loading, and validation.
//
// A Vocabulary is built once and never mutated; Concepts returns copies.
//
// # File format
//
//	version: "1"
//	concepts:
//	  - name: target_audience
//	    synonyms: [audience, target, demographic]
//	  - name: tone
//	    synonyms: voice          # a single synonym may be a scalar
//
// Concept order is preserved; the matcher visits concepts in file order.
package vocab
