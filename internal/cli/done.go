package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var doneCmd = &cobra.Command{
	Use:   "done [task-id]",
	Short: "Toggle a task's completion",
	Long: `Mark a pending task as completed, or reopen a completed one.

Examples:
  taskmaster done abc123`,
	Args: cobra.ExactArgs(1),
	RunE: runDone,
}

func runDone(cmd *cobra.Command, args []string) (err error) {
	s, done, err := openSession(cmd.Context(), cfg, 0)
	if err != nil {
		return err
	}
	defer done(&err)

	task, err := resolveTask(s, args[0])
	if err != nil {
		return err
	}

	task, err = s.ToggleTaskComplete(task.ID)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	if task.Completed {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Completed: \"%s\"\n", task.Title)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "○ Reopened: \"%s\"\n", task.Title)
	}
	return nil
}
