package extraction

import (
	"context"

	"github.com/phrazzld/tasksift/internal/domain"
)

// TaskExtractor finds the tasks contained in a piece of text.
type TaskExtractor interface {
	// Extract returns the tasks found in text, in source order. taskContext is
	// the caller's usage domain ("student", "work", "personal", "mixed") and
	// may be empty. Implementations return a non-nil slice on success.
	Extract(ctx context.Context, text, taskContext string) ([]domain.Task, error)
}

// PriorityAnalyzer assigns a priority to an existing task.
type PriorityAnalyzer interface {
	AnalyzePriority(ctx context.Context, task domain.Task, taskContext string) (domain.Priority, error)
}

// Engine is a complete extraction strategy.
type Engine interface {
	TaskExtractor
	PriorityAnalyzer
}

// Completer is the remote text-completion primitive used by the remote engine.
// Errors must wrap ErrRemoteTransport or ErrRemoteProtocol.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
