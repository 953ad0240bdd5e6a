// Package api handles incoming HTTP requests, request validation and response
// formatting. It adapts HTTP to the extraction orchestrator: every endpoint
// answers with the same JSON envelope, and extraction itself never fails, so
// the only error responses come from malformed or invalid requests.
package api
