// Package local implements the deterministic, rule-based extraction engine.
//
// Text is cut into sentence-like segments, each segment is tested against a
// small set of task patterns, and accepted segments receive a due date and a
// priority from keyword tables. All keyword tables live in a Vocabulary, so a
// locale can be swapped by loading a YAML file without touching control flow.
// The engine makes no network calls and never fails.
package local
