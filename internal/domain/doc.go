// Package domain contains the core entities of the task extraction service:
// the Task value object, the four-level Priority enumeration with its
// presentation metadata, and the calendar Date used for due dates. It is
// independent of any transport, LLM vendor or configuration mechanism.
package domain
