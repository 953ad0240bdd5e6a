package main

import (
	"github.com/spf13/cobra"

	"github.com/phrazzld/tasksift/internal/domain"
)

type priorityOutput struct {
	Title    string          `json:"title"`
	Priority domain.Priority `json:"priority"`
	Level    int             `json:"level"`
	Icon     string          `json:"icon"`
	Color    string          `json:"color"`
}

func newPriorityCmd(root *rootOptions) *cobra.Command {
	var (
		description string
		taskContext string
	)

	cmd := &cobra.Command{
		Use:   "priority <title>",
		Short: "Classify the priority of a single task",
		Long: `Classify the priority of a single task.

Examples:
  tasksift priority "Entregar el proyecto final" --context student
  tasksift priority "Call the client" --description "about the renewal"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := domain.NewTask(args[0], taskContext)
			if err != nil {
				return err
			}
			task.Description = description

			svc, _, err := root.newService(cmd.Context(), cmd)
			if err != nil {
				return err
			}

			p := svc.ClassifyPriority(cmd.Context(), task, taskContext)
			return writeJSON(cmd.OutOrStdout(), priorityOutput{
				Title:    task.Title,
				Priority: p,
				Level:    p.Level(),
				Icon:     p.Icon(),
				Color:    p.Color(),
			})
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "task description")
	cmd.Flags().StringVarP(&taskContext, "context", "c", "", "usage context")

	return cmd
}
