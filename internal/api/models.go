package api

import (
	"github.com/phrazzld/tasksift/internal/domain"
)

// AnalyzeTextRequest is the payload of the analyze-text and analyze-preview endpoints.
type AnalyzeTextRequest struct {
	Text    string `json:"text"    validate:"required,max=100000"`
	Context string `json:"context" validate:"omitempty,max=64"`
}

// EmailWebhookRequest is the payload delivered by email forwarding services.
// At least one of subject and body is required.
type EmailWebhookRequest struct {
	Sender  string `json:"sender"  validate:"omitempty,max=320"`
	Subject string `json:"subject" validate:"required_without=Body,max=1000"`
	Body    string `json:"body"    validate:"required_without=Subject,max=100000"`
}

// PriorityRequest asks for the priority of an existing task.
type PriorityRequest struct {
	Task    PriorityTask `json:"task"`
	Context string       `json:"context" validate:"omitempty,max=64"`
}

// PriorityTask is the task being classified.
type PriorityTask struct {
	Title       string       `json:"title"       validate:"required,max=1000"`
	Description string       `json:"description" validate:"max=10000"`
	DueDate     *domain.Date `json:"dueDate"`
}

// PriorityResponse describes a priority level for display.
type PriorityResponse struct {
	Priority string `json:"priority"`
	Level    int    `json:"level"`
	Icon     string `json:"icon"`
	Color    string `json:"color"`
}

func newPriorityResponse(p domain.Priority) PriorityResponse {
	return PriorityResponse{
		Priority: p.String(),
		Level:    p.Level(),
		Icon:     p.Icon(),
		Color:    p.Color(),
	}
}
