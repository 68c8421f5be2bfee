package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/existflow/taskmaster/internal/logger"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete completed tasks",
	Long: `Delete every completed task, or only those in one category.

Examples:
  taskmaster clear
  taskmaster clear --category work --force`,
	RunE: runClear,
}

var (
	clearCategory string
	clearForce    bool
)

func init() {
	clearCmd.Flags().StringVarP(&clearCategory, "category", "c", "", "Only clear this category")
	clearCmd.Flags().BoolVar(&clearForce, "force", false, "Do not ask for confirmation")
}

func runClear(cmd *cobra.Command, args []string) (err error) {
	s, done, err := openSession(cmd.Context(), cfg, 0)
	if err != nil {
		return err
	}
	defer done(&err)

	var categoryID string
	if clearCategory != "" {
		c, err := resolveCategory(s, clearCategory)
		if err != nil {
			return err
		}
		categoryID = c.ID
	}

	var ids []string
	for _, t := range s.ListTasks() {
		if t.Completed && (categoryID == "" || t.CategoryID == categoryID) {
			ids = append(ids, t.ID)
		}
	}

	out := cmd.OutOrStdout()
	if len(ids) == 0 {
		fmt.Fprintln(out, "Nothing to clear.")
		return nil
	}

	if !clearForce && !confirm(cmd.InOrStdin(), out, fmt.Sprintf("Delete %d completed task(s)? (y/N): ", len(ids))) {
		fmt.Fprintln(out, "Aborted.")
		return nil
	}

	for _, id := range ids {
		if err := s.DeleteTask(id); err != nil {
			return fmt.Errorf("failed to delete task %s: %w", shortID(id), err)
		}
	}

	logger.Info("Cleared completed tasks", logger.F("count", len(ids)))
	fmt.Fprintf(out, "🧹 Cleared %d completed task(s)\n", len(ids))
	return nil
}
