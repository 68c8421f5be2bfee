package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/existflow/taskmaster/internal/model"
)

var editCmd = &cobra.Command{
	Use:   "edit [task-id]",
	Short: "Edit a task",
	Long: `Change fields of an existing task. Only the flags you pass are changed.

Examples:
  taskmaster edit abc123 --title "Buy oat milk"
  taskmaster edit abc123 -p high --due friday
  taskmaster edit abc123 --no-due`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

var (
	editTitle       string
	editDescription string
	editPriority    string
	editCategory    string
	editDue         string
	editNoDue       bool
)

func init() {
	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "New title")
	editCmd.Flags().StringVar(&editDescription, "desc", "", "New description")
	editCmd.Flags().StringVarP(&editPriority, "priority", "p", "", "New priority (low, medium, high)")
	editCmd.Flags().StringVarP(&editCategory, "category", "c", "", "Move to category")
	editCmd.Flags().StringVarP(&editDue, "due", "d", "", "New due date")
	editCmd.Flags().BoolVar(&editNoDue, "no-due", false, "Remove the due date")
}

func runEdit(cmd *cobra.Command, args []string) (err error) {
	s, done, err := openSession(cmd.Context(), cfg, 0)
	if err != nil {
		return err
	}
	defer done(&err)

	task, err := resolveTask(s, args[0])
	if err != nil {
		return err
	}

	var patch model.TaskPatch
	flags := cmd.Flags()
	if flags.Changed("title") {
		patch.Title = &editTitle
	}
	if flags.Changed("desc") {
		patch.Description = &editDescription
	}
	if flags.Changed("priority") {
		p, err := model.ParsePriority(strings.ToLower(editPriority))
		if err != nil {
			return err
		}
		patch.Priority = &p
	}
	if flags.Changed("category") {
		c, err := resolveCategory(s, editCategory)
		if err != nil {
			return err
		}
		patch.CategoryID = &c.ID
	}
	if flags.Changed("due") {
		due, err := parseDue(editDue, time.Now())
		if err != nil {
			return err
		}
		patch.DueDate = due
		patch.ClearDueDate = due == nil
	}
	if editNoDue {
		patch.ClearDueDate = true
	}

	updated, err := s.UpdateTask(task.ID, patch)
	if err != nil {
		return err
	}

	name, _ := s.CategoryLabel(updated.CategoryID)
	fmt.Fprintf(cmd.OutOrStdout(), "✎ Updated [%s]: \"%s\" (%s)\n", name, updated.Title, updated.Priority)
	return nil
}
