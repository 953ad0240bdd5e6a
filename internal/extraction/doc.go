// Package extraction turns natural-language text into structured tasks.
//
// Extraction runs on two interchangeable engines behind the TaskExtractor and
// PriorityAnalyzer interfaces: a remote engine backed by a language model
// (package remote) and a deterministic rule-based engine (package local).
// The Orchestrator composes them. It tries the remote engine when one is
// configured and falls back to the local engine on any failure, so callers
// always receive a result.
//
// Failures of the remote path are classified with the sentinel errors in
// errors.go. They are logged and counted but never returned to callers.
package extraction
