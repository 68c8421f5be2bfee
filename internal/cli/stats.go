package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/existflow/taskmaster/internal/view"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show completion statistics",
	Long: `Show task totals and the completion rate, for every task or one category.

Examples:
  taskmaster stats
  taskmaster stats --category work`,
	RunE: runStats,
}

var statsCategory string

func init() {
	statsCmd.Flags().StringVarP(&statsCategory, "category", "c", "", "Only count this category")
}

func runStats(cmd *cobra.Command, args []string) (err error) {
	s, done, err := openSession(cmd.Context(), cfg, 0)
	if err != nil {
		return err
	}
	defer done(&err)

	tasks := s.ListTasks()
	label := "All tasks"
	if statsCategory != "" {
		c, err := resolveCategory(s, statsCategory)
		if err != nil {
			return err
		}
		tasks = view.FilterByCategory(tasks, &c.ID)
		label = c.Name
	}

	st := view.ComputeStats(tasks)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "📊 %s\n", label)
	fmt.Fprintf(out, "  Total:          %d\n", st.Total)
	fmt.Fprintf(out, "  Completed:      %d\n", st.Completed)
	fmt.Fprintf(out, "  Pending:        %d\n", st.Pending)
	fmt.Fprintf(out, "  High priority:  %d\n", st.HighPriorityPending)
	fmt.Fprintf(out, "  Completion:     %d%%\n", st.CompletionRate)
	return nil
}
