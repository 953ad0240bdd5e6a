package domain

import (
	"strings"
)

// GeneralCategory is the category of tasks extracted without a usage context.
const GeneralCategory = "general"

// Task is an actionable item extracted from natural-language text.
// Tasks are plain values: every extraction call builds fresh ones and the
// caller owns them afterwards.
type Task struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	DueDate     *Date    `json:"dueDate,omitempty"`
	Completed   bool     `json:"completed"`
	Priority    Priority `json:"priority"`
	Category    string   `json:"category"`
	Context     string   `json:"context,omitempty"`
}

// NewTask creates an open task with the default priority. The title is
// trimmed and must not be empty. taskContext is the caller's usage domain
// ("student", "work", ...) and may be empty.
func NewTask(title, taskContext string) (Task, error) {
	task := Task{
		Title:     strings.TrimSpace(title),
		Completed: false,
		Priority:  DefaultPriority,
		Category:  CategoryFor(taskContext),
		Context:   taskContext,
	}

	if err := task.Validate(); err != nil {
		return Task{}, err
	}

	return task, nil
}

// CategoryFor mirrors the usage context, or "general" when it is absent.
func CategoryFor(taskContext string) string {
	if taskContext == "" {
		return GeneralCategory
	}
	return taskContext
}

// Validate checks the invariants every returned task must hold.
func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}

	if !t.Priority.Valid() {
		return ErrInvalidPriority
	}

	return nil
}

// Text returns the lowercase title and description joined by a space, the
// input used for keyword classification.
func (t Task) Text() string {
	return strings.ToLower(t.Title + " " + t.Description)
}
