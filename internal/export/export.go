// Package export converts extracted tasks into the JSON shapes returned to
// clients: a standard transfer object, optionally carrying the payload
// expected by Todoist, Notion or ClickUp.
package export

import (
	"errors"
	"fmt"
	"strings"

	"github.com/phrazzld/tasksift/internal/domain"
)

// ErrUnknownFormat is returned by ParseFormat for unsupported format names.
var ErrUnknownFormat = errors.New("unknown export format")

// Format selects the platform payload attached to each TaskDTO.
type Format string

const (
	FormatStandard Format = "standard"
	FormatTodoist  Format = "todoist"
	FormatNotion   Format = "notion"
	FormatClickUp  Format = "clickup"
)

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatStandard, FormatTodoist, FormatNotion, FormatClickUp}
}

// ParseFormat resolves a case-insensitive format name. Empty means standard.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return FormatStandard, nil
	}
	for _, f := range Formats() {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// TaskDTO is the wire representation of a task.
type TaskDTO struct {
	Title         string       `json:"title"`
	Description   string       `json:"description,omitempty"`
	DueDate       *domain.Date `json:"dueDate,omitempty"`
	Priority      string       `json:"priority"`
	Completed     bool         `json:"completed"`
	Context       string       `json:"context,omitempty"`
	Category      string       `json:"category,omitempty"`
	TodoistFormat *TodoistTask `json:"todoistFormat,omitempty"`
	NotionFormat  *NotionTask  `json:"notionFormat,omitempty"`
	ClickUpFormat *ClickUpTask `json:"clickUpFormat,omitempty"`
}

// TodoistTask mirrors the Todoist task creation payload.
type TodoistTask struct {
	Content     string  `json:"content"`
	Description string  `json:"description"`
	DueDate     *string `json:"due_date"`
	Priority    int     `json:"priority"`
}

// NotionTask mirrors a row in a Notion task database.
type NotionTask struct {
	Title    string  `json:"title"`
	Status   string  `json:"status"`
	Priority string  `json:"priority"`
	Due      *string `json:"due"`
}

// ClickUpTask mirrors the ClickUp task creation payload.
type ClickUpTask struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
}

// ToDTO converts a task and attaches the payload for format.
func ToDTO(task domain.Task, format Format) TaskDTO {
	dto := TaskDTO{
		Title:       task.Title,
		Description: task.Description,
		DueDate:     task.DueDate,
		Priority:    task.Priority.String(),
		Completed:   task.Completed,
		Context:     task.Context,
		Category:    task.Category,
	}

	switch format {
	case FormatTodoist:
		t := Todoist(task)
		dto.TodoistFormat = &t
	case FormatNotion:
		n := Notion(task)
		dto.NotionFormat = &n
	case FormatClickUp:
		c := ClickUp(task)
		dto.ClickUpFormat = &c
	}
	return dto
}

// ToDTOs converts tasks in order. The result is never nil.
func ToDTOs(tasks []domain.Task, format Format) []TaskDTO {
	dtos := make([]TaskDTO, 0, len(tasks))
	for _, task := range tasks {
		dtos = append(dtos, ToDTO(task, format))
	}
	return dtos
}

// Todoist builds the Todoist payload. Todoist priorities run 1 (normal) to 4 (urgent).
func Todoist(task domain.Task) TodoistTask {
	return TodoistTask{
		Content:     task.Title,
		Description: task.Description,
		DueDate:     isoDate(task.DueDate),
		Priority:    TodoistPriority(task.Priority),
	}
}

// Notion builds the Notion payload.
func Notion(task domain.Task) NotionTask {
	status := "Not started"
	if task.Completed {
		status = "Done"
	}
	return NotionTask{
		Title:    task.Title,
		Status:   status,
		Priority: task.Priority.String(),
		Due:      isoDate(task.DueDate),
	}
}

// ClickUp builds the ClickUp payload.
func ClickUp(task domain.Task) ClickUpTask {
	status := "open"
	if task.Completed {
		status = "complete"
	}
	return ClickUpTask{
		Name:        task.Title,
		Description: task.Description,
		Status:      status,
		Priority:    ClickUpPriority(task.Priority),
	}
}

// TodoistPriority maps a priority onto Todoist's 1..4 scale.
func TodoistPriority(p domain.Priority) int {
	if !p.Valid() {
		p = domain.DefaultPriority
	}
	return p.Level()
}

// ClickUpPriority maps a priority onto ClickUp's named levels.
func ClickUpPriority(p domain.Priority) string {
	switch p {
	case domain.PriorityCritica:
		return "urgent"
	case domain.PriorityAlta:
		return "high"
	case domain.PriorityBaja:
		return "low"
	default:
		return "normal"
	}
}

func isoDate(d *domain.Date) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}
