package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/tasksift/internal/domain"
)

// MockEngine implements extraction.Engine for testing
type MockEngine struct {
	ExtractFn         func(ctx context.Context, text, taskContext string) ([]domain.Task, error)
	AnalyzePriorityFn func(ctx context.Context, task domain.Task, taskContext string) (domain.Priority, error)

	// Default response values
	Tasks    []domain.Task
	Priority domain.Priority
	Err      error

	mu            sync.Mutex
	extractTexts  []string
	priorityTasks []domain.Task
}

// Extract implements the extraction.TaskExtractor interface
func (m *MockEngine) Extract(ctx context.Context, text, taskContext string) ([]domain.Task, error) {
	m.mu.Lock()
	m.extractTexts = append(m.extractTexts, text)
	m.mu.Unlock()

	if m.ExtractFn != nil {
		return m.ExtractFn(ctx, text, taskContext)
	}
	return m.Tasks, m.Err
}

// AnalyzePriority implements the extraction.PriorityAnalyzer interface
func (m *MockEngine) AnalyzePriority(
	ctx context.Context,
	task domain.Task,
	taskContext string,
) (domain.Priority, error) {
	m.mu.Lock()
	m.priorityTasks = append(m.priorityTasks, task)
	m.mu.Unlock()

	if m.AnalyzePriorityFn != nil {
		return m.AnalyzePriorityFn(ctx, task, taskContext)
	}
	return m.Priority, m.Err
}

// ExtractTexts returns the texts passed to Extract, in call order.
func (m *MockEngine) ExtractTexts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.extractTexts...)
}

// PriorityTasks returns the tasks passed to AnalyzePriority, in call order.
func (m *MockEngine) PriorityTasks() []domain.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Task(nil), m.priorityTasks...)
}
