// Package diagnostic provides structured warnings and errors for input that
// reaches the matcher from outside: configuration files, vocabulary files and
// reconcile requests.
//
// Each diagnostic carries a stable code, a message and the path of the
// offending field (e.g. "extractedVariables[2]" or "concepts[0].name").
package diagnostic
