package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/phrazzld/tasksift/internal/extraction"
)

// MockCompleter implements extraction.Completer for testing
type MockCompleter struct {
	// CompleteFn allows test cases to mock the Complete behavior
	CompleteFn func(ctx context.Context, prompt string) (string, error)

	// Default response values
	Response string
	Err      error

	// Call tracking for verification
	CompleteCalls struct {
		// mu protects the call tracking state for concurrent test cases
		mu sync.Mutex

		// Count tracks how many times Complete was called
		Count int

		// Prompts contains all prompts passed to Complete calls
		Prompts []string
	}
}

// Complete implements the extraction.Completer interface
func (m *MockCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	m.CompleteCalls.mu.Lock()
	m.CompleteCalls.Count++
	m.CompleteCalls.Prompts = append(m.CompleteCalls.Prompts, prompt)
	m.CompleteCalls.mu.Unlock()

	if m.CompleteFn != nil {
		return m.CompleteFn(ctx, prompt)
	}

	return m.Response, m.Err
}

// Calls returns the number of Complete calls so far.
func (m *MockCompleter) Calls() int {
	m.CompleteCalls.mu.Lock()
	defer m.CompleteCalls.mu.Unlock()
	return m.CompleteCalls.Count
}

// LastPrompt returns the most recent prompt, or "".
func (m *MockCompleter) LastPrompt() string {
	m.CompleteCalls.mu.Lock()
	defer m.CompleteCalls.mu.Unlock()
	if len(m.CompleteCalls.Prompts) == 0 {
		return ""
	}
	return m.CompleteCalls.Prompts[len(m.CompleteCalls.Prompts)-1]
}

// Reset resets the call tracking state
func (m *MockCompleter) Reset() {
	m.CompleteCalls.mu.Lock()
	defer m.CompleteCalls.mu.Unlock()

	m.CompleteCalls.Count = 0
	m.CompleteCalls.Prompts = nil
}

// NewMockCompleterWithResponse creates a MockCompleter that returns response
func NewMockCompleterWithResponse(response string) *MockCompleter {
	return &MockCompleter{Response: response}
}

// MockCompleterWithTransportError creates a MockCompleter that simulates an unreachable service
func MockCompleterWithTransportError() *MockCompleter {
	return &MockCompleter{
		Err: fmt.Errorf("%w: connection refused", extraction.ErrRemoteTransport),
	}
}

// MockCompleterWithContentBlocked creates a MockCompleter that simulates a safety block
func MockCompleterWithContentBlocked() *MockCompleter {
	return &MockCompleter{Err: extraction.ErrContentBlocked}
}

// MockCompleterThatBlocks creates a MockCompleter that waits for ctx to end
func MockCompleterThatBlocks() *MockCompleter {
	return &MockCompleter{
		CompleteFn: func(ctx context.Context, _ string) (string, error) {
			<-ctx.Done()
			return "", fmt.Errorf("%w: %w", extraction.ErrRemoteTransport, ctx.Err())
		},
	}
}
