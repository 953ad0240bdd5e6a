package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/phrazzld/tasksift/internal/export"
)

func newExtractCmd(root *rootOptions) *cobra.Command {
	var (
		taskContext string
		format      string
	)

	cmd := &cobra.Command{
		Use:   "extract [file|-]",
		Short: "Extract tasks from a file or stdin",
		Long: `Extract tasks from a file or from standard input.

Examples:
  # Extract from a file
  tasksift extract notes.txt

  # Extract from stdin with a usage context
  cat email.txt | tasksift extract - --context work

  # Attach the Todoist payload without calling the remote model
  tasksift extract notes.txt --format todoist --local-only`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exportFormat, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			svc, log, err := root.newService(cmd.Context(), cmd)
			if err != nil {
				return err
			}

			tasks := svc.Extract(cmd.Context(), text, taskContext)
			log.Debug("extraction finished",
				"tasks", len(tasks),
				"remote_enabled", svc.RemoteEnabled())

			return writeJSON(cmd.OutOrStdout(), export.ToDTOs(tasks, exportFormat))
		},
	}

	cmd.Flags().StringVarP(&taskContext, "context", "c", "", "usage context (student, work, personal, ...)")
	cmd.Flags().StringVarP(&format, "format", "f", string(export.FormatStandard), "export format (standard, todoist, notion, clickup)")

	return cmd
}

// readInput reads the named file, or stdin when the argument is absent or "-".
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return string(data), nil
}
