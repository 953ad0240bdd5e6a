package extraction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/tasksift/internal/domain"
	"github.com/phrazzld/tasksift/internal/redact"
)

// Orchestrator is the public entry point of the extraction engine. It tries
// the remote engine when one is configured and falls back to the local
// engine on any remote failure. It is safe for concurrent use.
type Orchestrator struct {
	local         Engine
	remote        Engine
	logger        *slog.Logger
	recorder      Recorder
	remoteTimeout time.Duration
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithRecorder sets the telemetry recorder.
func WithRecorder(r Recorder) Option {
	return func(o *Orchestrator) {
		if r != nil {
			o.recorder = r
		}
	}
}

// WithRemoteTimeout bounds each remote operation. Zero means no bound beyond
// the caller's context.
func WithRemoteTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		o.remoteTimeout = d
	}
}

// NewOrchestrator composes the engines. local is required; a nil remote
// disables the remote path.
func NewOrchestrator(local, remote Engine, logger *slog.Logger, opts ...Option) (*Orchestrator, error) {
	if local == nil {
		return nil, fmt.Errorf("%w: local engine cannot be nil", ErrInvalidConfig)
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	o := &Orchestrator{
		local:    local,
		remote:   remote,
		logger:   logger.With("component", "extraction_orchestrator"),
		recorder: NopRecorder{},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// RemoteEnabled reports whether a remote engine is configured.
func (o *Orchestrator) RemoteEnabled() bool {
	return o.remote != nil
}

// Extract returns the tasks found in text. It never fails and never returns
// nil: any remote failure degrades to the local engine with the original
// text and context.
func (o *Orchestrator) Extract(ctx context.Context, text, taskContext string) []domain.Task {
	if o.remote != nil && strings.TrimSpace(text) != "" {
		tasks, err := o.extractRemote(ctx, text, taskContext)
		if err == nil {
			o.recorder.ObserveExtraction(OperationExtract, PathRemote, len(tasks))
			return tasks
		}
		o.logFailure(ctx, OperationExtract, err)
		return o.extractLocal(ctx, text, taskContext, PathFallback)
	}

	return o.extractLocal(ctx, text, taskContext, PathLocal)
}

// ClassifyPriority returns the priority of task. It never fails: any remote
// failure degrades to keyword classification of the task's own text.
func (o *Orchestrator) ClassifyPriority(ctx context.Context, task domain.Task, taskContext string) domain.Priority {
	if o.remote != nil {
		priority, err := o.priorityRemote(ctx, task, taskContext)
		if err == nil {
			o.recorder.ObserveExtraction(OperationPriority, PathRemote, 1)
			return priority
		}
		o.logFailure(ctx, OperationPriority, err)
		return o.priorityLocal(ctx, task, taskContext, PathFallback)
	}

	return o.priorityLocal(ctx, task, taskContext, PathLocal)
}

func (o *Orchestrator) extractRemote(ctx context.Context, text, taskContext string) (tasks []domain.Task, err error) {
	ctx, cancel := o.remoteContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() {
		o.recorder.ObserveRemoteDuration(OperationExtract, time.Since(start))
		if r := recover(); r != nil {
			tasks, err = nil, fmt.Errorf("%w: remote engine panicked: %v", ErrRemoteProtocol, r)
		}
	}()

	tasks, err = o.remote.Extract(ctx, text, taskContext)
	if err != nil {
		return nil, err
	}

	return checkTasks(tasks)
}

func (o *Orchestrator) priorityRemote(
	ctx context.Context,
	task domain.Task,
	taskContext string,
) (priority domain.Priority, err error) {
	ctx, cancel := o.remoteContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() {
		o.recorder.ObserveRemoteDuration(OperationPriority, time.Since(start))
		if r := recover(); r != nil {
			priority, err = 0, fmt.Errorf("%w: remote engine panicked: %v", ErrRemoteProtocol, r)
		}
	}()

	priority, err = o.remote.AnalyzePriority(ctx, task, taskContext)
	if err != nil {
		return 0, err
	}
	if !priority.Valid() {
		return 0, fmt.Errorf("%w: %v", ErrResponseParse, domain.ErrInvalidPriority)
	}
	return priority, nil
}

func (o *Orchestrator) remoteContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if o.remoteTimeout > 0 {
		return context.WithTimeout(ctx, o.remoteTimeout)
	}
	return context.WithCancel(ctx)
}

// checkTasks rejects remote results that break the Task invariants.
func checkTasks(tasks []domain.Task) ([]domain.Task, error) {
	if tasks == nil {
		return []domain.Task{}, nil
	}
	for i, task := range tasks {
		if err := task.Validate(); err != nil {
			return nil, fmt.Errorf("%w: task %d: %v", ErrResponseParse, i, err)
		}
	}
	return tasks, nil
}

func (o *Orchestrator) extractLocal(ctx context.Context, text, taskContext, path string) []domain.Task {
	// The local engine is pure; context cancellation does not apply to it.
	tasks, err := o.local.Extract(context.WithoutCancel(ctx), text, taskContext)
	if err != nil {
		o.logger.ErrorContext(ctx, "local extraction failed",
			"error", redact.Error(err))
		tasks = nil
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}

	o.recorder.ObserveExtraction(OperationExtract, path, len(tasks))
	o.logger.DebugContext(ctx, "local extraction completed",
		"path", path,
		"task_count", len(tasks))

	return tasks
}

func (o *Orchestrator) priorityLocal(ctx context.Context, task domain.Task, taskContext, path string) domain.Priority {
	priority, err := o.local.AnalyzePriority(context.WithoutCancel(ctx), task, taskContext)
	if err != nil || !priority.Valid() {
		o.logger.ErrorContext(ctx, "local priority analysis failed, using default",
			"error", redact.Error(err))
		priority = domain.DefaultPriority
	}

	o.recorder.ObserveExtraction(OperationPriority, path, 1)
	return priority
}

func (o *Orchestrator) logFailure(ctx context.Context, operation string, err error) {
	kind := FailureKind(err)
	o.recorder.ObserveRemoteFailure(operation, kind)
	o.logger.WarnContext(ctx, "remote path failed, falling back to local engine",
		"operation", operation,
		"failure_kind", kind,
		"error", redact.Payload(err.Error(), redact.DefaultPayloadLimit))
}
