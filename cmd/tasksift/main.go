// Package main implements the tasksift CLI, which runs the extraction engine
// on files or standard input without starting the HTTP server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/phrazzld/tasksift/internal/config"
	"github.com/phrazzld/tasksift/internal/platform/logger"
	"github.com/phrazzld/tasksift/internal/service"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	localOnly  bool
	logLevel   string

	// serviceOpts are appended when the task service is built.
	serviceOpts []service.Option
}

func newRootCmd(serviceOpts ...service.Option) *cobra.Command {
	opts := &rootOptions{serviceOpts: serviceOpts}

	cmd := &cobra.Command{
		Use:   "tasksift",
		Short: "Extract actionable tasks from free text",
		Long: `tasksift finds actionable tasks in notes, messages and e-mails.

It uses Gemini when TASKSIFT_LLM_GEMINI_API_KEY is set and falls back to the
local rule-based engine on any remote failure. Results are printed as JSON.`,
		Version:      version,
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	flags.BoolVar(&opts.localOnly, "local-only", false, "never call the remote model")
	flags.StringVar(&opts.logLevel, "log-level", "", "override server.log_level (debug, info, warn, error)")

	cmd.AddCommand(newExtractCmd(opts))
	cmd.AddCommand(newPriorityCmd(opts))

	return cmd
}

// newService loads configuration and builds the task service. Logs go to
// the command's error stream so stdout stays machine-readable.
func (o *rootOptions) newService(ctx context.Context, cmd *cobra.Command) (*service.TaskService, *slog.Logger, error) {
	cfg, err := config.LoadFile(o.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	level := cfg.Server.LogLevel
	if o.logLevel != "" {
		level = o.logLevel
	}
	log := logger.New(cmd.ErrOrStderr(), level)

	opts := append([]service.Option(nil), o.serviceOpts...)
	if o.localOnly {
		opts = append(opts, service.WithLocalOnly())
	}

	svc, err := service.NewTaskService(ctx, cfg, log, opts...)
	if err != nil {
		return nil, nil, err
	}
	return svc, log, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
