package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tasksift/internal/config"
	"github.com/phrazzld/tasksift/internal/domain"
	"github.com/phrazzld/tasksift/internal/extraction"
	"github.com/phrazzld/tasksift/internal/extraction/local"
	"github.com/phrazzld/tasksift/internal/extraction/remote"
	"github.com/phrazzld/tasksift/internal/platform/gemini"
)

// TaskService exposes task extraction and priority classification.
type TaskService struct {
	orchestrator *extraction.Orchestrator
	local        *local.Extractor
}

type serviceOptions struct {
	recorder  extraction.Recorder
	completer extraction.Completer
	clock     local.Clock
	localOnly bool
}

// Option configures a TaskService.
type Option func(*serviceOptions)

// WithRecorder sets the telemetry sink for both engines.
func WithRecorder(r extraction.Recorder) Option {
	return func(o *serviceOptions) { o.recorder = r }
}

// WithCompleter uses c for remote completion instead of building a Gemini
// client from the configuration.
func WithCompleter(c extraction.Completer) Option {
	return func(o *serviceOptions) { o.completer = c }
}

// WithClock overrides the "today" anchor of the local engine.
func WithClock(clock local.Clock) Option {
	return func(o *serviceOptions) { o.clock = clock }
}

// WithLocalOnly disables the remote engine regardless of configuration.
func WithLocalOnly() Option {
	return func(o *serviceOptions) { o.localOnly = true }
}

// NewTaskService wires the engines described by cfg. The remote engine is
// enabled when a Completer is supplied or cfg carries a Gemini API key.
func NewTaskService(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	opts ...Option,
) (*TaskService, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	o := serviceOptions{recorder: extraction.NopRecorder{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.recorder == nil {
		o.recorder = extraction.NopRecorder{}
	}

	localEngine, err := newLocalEngine(cfg.Extraction, logger, o.clock)
	if err != nil {
		return nil, err
	}

	var remoteEngine extraction.Engine
	if !o.localOnly {
		completer := o.completer
		if completer == nil && cfg.LLM.RemoteEnabled() {
			completer, err = gemini.NewCompleter(ctx, logger, cfg.LLM)
			if err != nil {
				return nil, fmt.Errorf("failed to initialize gemini completer: %w", err)
			}
		}

		if completer != nil {
			client, err := remote.NewClient(completer, localEngine, logger,
				remote.WithExtractionPrompt(cfg.LLM.ExtractionPromptPath),
				remote.WithPriorityPrompt(cfg.LLM.PriorityPromptPath),
				remote.WithRecorder(o.recorder))
			if err != nil {
				return nil, fmt.Errorf("failed to initialize remote extractor: %w", err)
			}
			remoteEngine = client
		}
	}

	orchestrator, err := extraction.NewOrchestrator(localEngine, remoteEngine, logger,
		extraction.WithRecorder(o.recorder),
		extraction.WithRemoteTimeout(cfg.LLM.Timeout()))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orchestrator: %w", err)
	}

	logger.Info("task extraction initialized",
		"remote_enabled", orchestrator.RemoteEnabled(),
		"model", cfg.LLM.ModelName,
		"today", localEngine.Today().String())

	return &TaskService{orchestrator: orchestrator, local: localEngine}, nil
}

func newLocalEngine(cfg config.ExtractionConfig, logger *slog.Logger, clock local.Clock) (*local.Extractor, error) {
	vocab := local.DefaultVocabulary()
	if cfg.VocabularyPath != "" {
		loaded, err := local.LoadVocabulary(cfg.VocabularyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load vocabulary: %w", err)
		}
		vocab = loaded
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	opts := []local.Option{local.WithLocation(loc), local.WithLogger(logger)}
	if clock != nil {
		opts = append(opts, local.WithClock(clock))
	}

	engine, err := local.NewExtractor(vocab, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize local extractor: %w", err)
	}
	return engine, nil
}

// Extract returns the tasks found in text. It never fails.
func (s *TaskService) Extract(ctx context.Context, text, taskContext string) []domain.Task {
	return s.orchestrator.Extract(ctx, text, taskContext)
}

// ClassifyPriority returns the priority of task. It never fails.
func (s *TaskService) ClassifyPriority(ctx context.Context, task domain.Task, taskContext string) domain.Priority {
	return s.orchestrator.ClassifyPriority(ctx, task, taskContext)
}

// RemoteEnabled reports whether the remote engine is wired.
func (s *TaskService) RemoteEnabled() bool {
	return s.orchestrator.RemoteEnabled()
}

// Today is the anchor date used to resolve relative dates.
func (s *TaskService) Today() domain.Date {
	return s.local.Today()
}
