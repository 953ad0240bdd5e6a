package remote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"text/template"

	"github.com/phrazzld/tasksift/internal/domain"
	"github.com/phrazzld/tasksift/internal/extraction"
	"github.com/phrazzld/tasksift/internal/extraction/local"
	"github.com/phrazzld/tasksift/internal/redact"
)

// Client is the remote extraction engine. Each operation makes exactly one
// Complete call. Client is safe for concurrent use.
type Client struct {
	completer      extraction.Completer
	fallback       *local.Extractor
	extractPrompt  *template.Template
	priorityPrompt *template.Template
	recorder       extraction.Recorder
	logger         *slog.Logger
}

type clientOptions struct {
	extractionPromptPath string
	priorityPromptPath   string
	recorder             extraction.Recorder
}

// Option configures a Client.
type Option func(*clientOptions)

// WithExtractionPrompt replaces the built-in extraction prompt with the
// template file at path.
func WithExtractionPrompt(path string) Option {
	return func(o *clientOptions) { o.extractionPromptPath = path }
}

// WithPriorityPrompt replaces the built-in priority prompt with the template
// file at path.
func WithPriorityPrompt(path string) Option {
	return func(o *clientOptions) { o.priorityPromptPath = path }
}

// WithRecorder sets the recorder notified of unparseable answers.
func WithRecorder(r extraction.Recorder) Option {
	return func(o *clientOptions) { o.recorder = r }
}

// NewClient creates a Client sending prompts through completer. fallback
// supplies the anchor date, the vocabulary and the local engine used on
// unparseable answers.
func NewClient(
	completer extraction.Completer,
	fallback *local.Extractor,
	logger *slog.Logger,
	opts ...Option,
) (*Client, error) {
	if completer == nil {
		return nil, fmt.Errorf("%w: completer cannot be nil", extraction.ErrInvalidConfig)
	}
	if fallback == nil {
		return nil, fmt.Errorf("%w: fallback extractor cannot be nil", extraction.ErrInvalidConfig)
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	o := clientOptions{recorder: extraction.NopRecorder{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.recorder == nil {
		o.recorder = extraction.NopRecorder{}
	}

	extractPrompt, err := loadTemplate("extract", o.extractionPromptPath, defaultExtractionPrompt)
	if err != nil {
		return nil, err
	}
	priorityPrompt, err := loadTemplate("priority", o.priorityPromptPath, defaultPriorityPrompt)
	if err != nil {
		return nil, err
	}

	return &Client{
		completer:      completer,
		fallback:       fallback,
		extractPrompt:  extractPrompt,
		priorityPrompt: priorityPrompt,
		recorder:       o.recorder,
		logger:         logger.With("component", "remote_extractor"),
	}, nil
}

// Extract asks the model for the tasks in text. Completer errors are
// returned unchanged. An answer that is not the expected JSON is re-read by
// the local engine, which does not fail.
func (c *Client) Extract(ctx context.Context, text, taskContext string) ([]domain.Task, error) {
	prompt, err := render(c.extractPrompt, extractionData{
		ContextDescription: c.fallback.Vocabulary().ContextDescription(taskContext),
		Today:              c.fallback.Today().String(),
		Text:               text,
	})
	if err != nil {
		return nil, err
	}

	c.logger.DebugContext(ctx, "requesting remote extraction",
		"text_length", len(text),
		"prompt_length", len(prompt))

	answer, err := c.completer.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	tasks, err := ParseTasks(answer, taskContext, c.fallback.Classifier())
	if err != nil {
		c.recorder.ObserveRemoteFailure(extraction.OperationExtract, extraction.FailureKind(err))
		c.logger.WarnContext(ctx, "remote answer is not a task array, extracting from raw answer",
			"error", err,
			"payload", redact.Payload(answer, redact.DefaultPayloadLimit))
		return c.fallback.Extract(ctx, answer, taskContext)
	}

	c.logger.DebugContext(ctx, "remote extraction parsed",
		"task_count", len(tasks))

	return tasks, nil
}

// AnalyzePriority asks the model for the priority of task. The answer is
// matched against the level names, then against hint fragments, and
// defaults to MEDIA.
func (c *Client) AnalyzePriority(ctx context.Context, task domain.Task, taskContext string) (domain.Priority, error) {
	data := priorityData{
		ContextDescription: c.fallback.Vocabulary().ContextDescription(taskContext),
		Title:              task.Title,
		Description:        task.Description,
	}
	if task.DueDate != nil {
		data.DueDate = task.DueDate.String()
	}

	prompt, err := render(c.priorityPrompt, data)
	if err != nil {
		return 0, err
	}

	answer, err := c.completer.Complete(ctx, prompt)
	if err != nil {
		return 0, err
	}

	priority := c.fallback.Classifier().InterpretAnswer(answer)
	c.logger.DebugContext(ctx, "remote priority interpreted",
		"answer", redact.Payload(answer, 64),
		"priority", priority.String())

	return priority, nil
}
