package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/phrazzld/tasksift/internal/api/shared"
	"github.com/phrazzld/tasksift/internal/domain"
	"github.com/phrazzld/tasksift/internal/export"
	"github.com/phrazzld/tasksift/internal/platform/logger"
)

// TaskService is the extraction surface used by the handlers. Both
// operations always produce a result.
type TaskService interface {
	Extract(ctx context.Context, text, taskContext string) []domain.Task
	ClassifyPriority(ctx context.Context, task domain.Task, taskContext string) domain.Priority
}

// TaskHandler serves the extraction endpoints.
type TaskHandler struct {
	service TaskService
	logger  *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(service TaskService, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskHandler{
		service: service,
		logger:  logger.With("component", "task_handler"),
	}
}

// AnalyzeText handles POST /api/v1/analyze-text requests
func (h *TaskHandler) AnalyzeText(w http.ResponseWriter, r *http.Request) {
	h.analyze(w, r, false)
}

// AnalyzePreview handles POST /api/v1/analyze-preview requests. Nothing is
// stored in either case; the response is flagged as a preview.
func (h *TaskHandler) AnalyzePreview(w http.ResponseWriter, r *http.Request) {
	h.analyze(w, r, true)
}

func (h *TaskHandler) analyze(w http.ResponseWriter, r *http.Request, preview bool) {
	errPrefix, okMessage := "Error al analizar texto", "Tareas extraídas correctamente"
	if preview {
		errPrefix, okMessage = "Error en análisis preview", "Análisis completado (preview)"
	}

	format, err := formatFromQuery(r)
	if err != nil {
		HandleAPIError(w, r, err, errPrefix)
		return
	}

	var req AnalyzeTextRequest
	if err := decodeRequest(w, r, &req); err != nil {
		HandleAPIError(w, r, err, errPrefix)
		return
	}

	tasks := h.service.Extract(r.Context(), req.Text, req.Context)
	dtos := export.ToDTOs(tasks, format)

	h.log(r).InfoContext(r.Context(), "text analyzed",
		"tasks", len(dtos),
		"context", req.Context,
		"format", format,
		"preview", preview)

	shared.RespondWithEnvelope(w, r, http.StatusOK, shared.Envelope{
		Success: true,
		Message: okMessage,
		Data:    dtos,
		Count:   len(dtos),
		Preview: preview,
	})
}

// ProcessEmail handles POST /api/v1/webhook/email requests. The context is
// inferred from the subject and sender.
func (h *TaskHandler) ProcessEmail(w http.ResponseWriter, r *http.Request) {
	const errPrefix = "Error al procesar email"

	format, err := formatFromQuery(r)
	if err != nil {
		HandleAPIError(w, r, err, errPrefix)
		return
	}

	var req EmailWebhookRequest
	if err := decodeRequest(w, r, &req); err != nil {
		HandleAPIError(w, r, err, errPrefix)
		return
	}

	content := EmailContent(req.Subject, req.Body)
	taskContext := InferEmailContext(req.Subject, req.Sender)

	tasks := h.service.Extract(r.Context(), content, taskContext)
	dtos := export.ToDTOs(tasks, format)

	h.log(r).InfoContext(r.Context(), "email processed",
		"tasks", len(dtos),
		"context", taskContext)

	shared.RespondWithEnvelope(w, r, http.StatusOK, shared.Envelope{
		Success: true,
		Message: "Email procesado correctamente",
		Data:    dtos,
		Count:   len(dtos),
		Source:  "email",
		Sender:  req.Sender,
	})
}

// AnalyzePriority handles POST /api/v1/analyze-priority requests
func (h *TaskHandler) AnalyzePriority(w http.ResponseWriter, r *http.Request) {
	const errPrefix = "Error al analizar prioridad"

	var req PriorityRequest
	if err := decodeRequest(w, r, &req); err != nil {
		HandleAPIError(w, r, err, errPrefix)
		return
	}

	task, err := domain.NewTask(req.Task.Title, req.Context)
	if err != nil {
		HandleAPIError(w, r, err, errPrefix)
		return
	}
	task.Description = req.Task.Description
	task.DueDate = req.Task.DueDate

	priority := h.service.ClassifyPriority(r.Context(), task, req.Context)

	shared.RespondWithEnvelope(w, r, http.StatusOK, shared.Envelope{
		Success: true,
		Message: "Prioridad analizada correctamente",
		Data:    newPriorityResponse(priority),
		Count:   1,
	})
}

// Health handles GET /api/v1/health requests
func Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithEnvelope(w, r, http.StatusOK, shared.Envelope{
		Success: true,
		Message: "API funcionando correctamente",
		Data:    "OK",
	})
}

func (h *TaskHandler) log(r *http.Request) *slog.Logger {
	return logger.FromContextOrDefault(r.Context(), h.logger)
}
