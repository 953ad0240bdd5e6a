// Package service assembles the extraction use cases from configuration.
//
// TaskService is the single entry point used by the HTTP server and the CLI.
// It builds the local rule-based engine (vocabulary, timezone), the remote
// engine when a credential or an explicit Completer is available, and the
// orchestrator that always prefers the remote engine and degrades to the local
// one on any failure. Delivery mechanisms only see the two operations that
// never fail: Extract and ClassifyPriority.
package service
