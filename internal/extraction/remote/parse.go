package remote

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/phrazzld/tasksift/internal/domain"
	"github.com/phrazzld/tasksift/internal/extraction"
	"github.com/phrazzld/tasksift/internal/extraction/local"
)

// taskPayload is one element of the model's JSON array. Pointers tell an
// absent or null field apart from an empty one.
type taskPayload struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"dueDate"`
	Priority    *string `json:"priority"`
}

// stripCodeFence removes a Markdown code fence wrapped around the payload.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "```json"):
		s = s[len("```json"):]
	case strings.HasPrefix(s, "```"):
		s = s[len("```"):]
	}
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// ParseTasks converts the model's answer into tasks for taskContext. An
// empty array is a valid answer with no tasks. A priority token that is not
// one of the four level names is reinterpreted by classifier from the
// task's own text. Any other deviation returns an error wrapping
// extraction.ErrResponseParse.
func ParseTasks(raw, taskContext string, classifier *local.PriorityClassifier) ([]domain.Task, error) {
	var items []taskPayload
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", extraction.ErrResponseParse, err)
	}
	if items == nil {
		return nil, fmt.Errorf("%w: expected a JSON array", extraction.ErrResponseParse)
	}

	tasks := make([]domain.Task, 0, len(items))
	for i, item := range items {
		task, err := toTask(item, taskContext, classifier)
		if err != nil {
			return nil, fmt.Errorf("%w: task %d: %v", extraction.ErrResponseParse, i, err)
		}
		tasks = append(tasks, task)
	}

	return tasks, nil
}

func toTask(item taskPayload, taskContext string, classifier *local.PriorityClassifier) (domain.Task, error) {
	if item.Title == nil {
		return domain.Task{}, domain.ErrEmptyTitle
	}

	task, err := domain.NewTask(*item.Title, taskContext)
	if err != nil {
		return domain.Task{}, err
	}

	if item.Description != nil {
		task.Description = *item.Description
	}

	if item.DueDate != nil {
		raw := strings.TrimSpace(*item.DueDate)
		if raw != "" && raw != "null" {
			due, err := domain.ParseDate(raw)
			if err != nil {
				return domain.Task{}, err
			}
			task.DueDate = &due
		}
	}

	if item.Priority != nil {
		priority, err := domain.ParsePriority(*item.Priority)
		if err != nil {
			priority = classifier.Classify(task.Title, task.Description)
		}
		task.Priority = priority
	}

	return task, nil
}
