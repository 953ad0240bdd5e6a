package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tasksift/internal/config"
	"github.com/phrazzld/tasksift/internal/metrics"
	"github.com/phrazzld/tasksift/internal/service"
)

// application holds the shared dependencies of the server.
type application struct {
	config  *config.Config
	logger  *slog.Logger
	service *service.TaskService
}

// newApplication wires the task service with process-wide metrics. Extra
// options are appended after the defaults, so tests can replace the
// completer or the clock.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	opts ...service.Option,
) (*application, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	opts = append([]service.Option{service.WithRecorder(metrics.Default())}, opts...)
	svc, err := service.NewTaskService(ctx, cfg, logger, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	return &application{
		config:  cfg,
		logger:  logger,
		service: svc,
	}, nil
}
