package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/existflow/taskmaster/internal/app"
	"github.com/existflow/taskmaster/internal/model"
	"github.com/existflow/taskmaster/internal/view"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `List tasks grouped by category.

Views: all, today, completed (or done), overdue.

Examples:
  taskmaster list
  taskmaster list --category work
  taskmaster list --view today
  taskmaster list --search invoice --all`,
	RunE: runList,
}

var (
	listCategory    string
	listAll         bool
	listView        string
	listIncludeDone bool
	listSearch      string
)

func init() {
	listCmd.Flags().StringVarP(&listCategory, "category", "c", "", "Filter by category")
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "Ignore the current context")
	listCmd.Flags().StringVarP(&listView, "view", "v", "all", "Smart view (all, today, completed, overdue)")
	listCmd.Flags().BoolVar(&listIncludeDone, "done", false, "Include completed tasks")
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Only tasks whose title or description contains this text")
}

func runList(cmd *cobra.Command, args []string) (err error) {
	s, done, err := openSession(cmd.Context(), cfg, 0)
	if err != nil {
		return err
	}
	defer done(&err)

	smart, ok := view.ParseSmart(listView)
	if !ok {
		return fmt.Errorf("unknown view %q", listView)
	}

	switch {
	case listCategory != "":
		c, err := resolveCategory(s, listCategory)
		if err != nil {
			return err
		}
		s.SetActiveCategory(&c.ID)
	case !listAll:
		if id := GetCurrentContext(); id != "" {
			s.SetActiveCategory(&id)
		}
	}
	s.SetView(smart)
	s.SetSearch(listSearch)

	tasks := s.VisibleTasks()
	if smart == view.All && !listIncludeDone {
		tasks = pendingOnly(tasks)
	}

	out := cmd.OutOrStdout()
	if len(tasks) == 0 {
		fmt.Fprintln(out, "No tasks found. Add one with: taskmaster add \"Your task\"")
		return nil
	}

	printTasksByCategory(out, s, tasks, time.Now())
	printStats(out, s.Stats())
	return nil
}

func pendingOnly(tasks []model.Task) []model.Task {
	out := tasks[:0:0]
	for _, t := range tasks {
		if !t.Completed {
			out = append(out, t)
		}
	}
	return out
}

// printTasksByCategory groups tasks in category order; dangling
// references are listed last under Uncategorized
func printTasksByCategory(out io.Writer, s *app.Session, tasks []model.Task, now time.Time) {
	byCategory := make(map[string][]model.Task)
	for _, t := range tasks {
		byCategory[t.CategoryID] = append(byCategory[t.CategoryID], t)
	}

	for _, c := range s.ListCategories() {
		if group, ok := byCategory[c.ID]; ok {
			printTasks(out, c.Name, group, now)
			delete(byCategory, c.ID)
		}
	}

	var orphans []model.Task
	for _, t := range tasks {
		if _, ok := byCategory[t.CategoryID]; ok {
			orphans = append(orphans, t)
		}
	}
	if len(orphans) > 0 {
		printTasks(out, model.UncategorizedName, orphans, now)
	}
}

func printTasks(out io.Writer, categoryName string, tasks []model.Task, now time.Time) {
	pending := 0
	for _, t := range tasks {
		if !t.Completed {
			pending++
		}
	}

	fmt.Fprintf(out, "\n📁 %s (%d pending)\n", categoryName, pending)
	fmt.Fprintln(out, strings.Repeat("─", 60))
	for i, t := range tasks {
		printTask(out, i+1, t, now)
	}
}

func printTask(out io.Writer, num int, t model.Task, now time.Time) {
	icon := "[ ]"
	if t.Completed {
		icon = "[x]"
	}

	priority := "      "
	switch t.Priority {
	case model.PriorityHigh:
		priority = "▲ high"
	case model.PriorityLow:
		priority = "  low "
	}

	due := ""
	if t.DueDate != nil {
		due = t.DueDate.In(now.Location()).Format("Jan 2")
		if t.IsOverdue(now) {
			due = "!" + due
		}
	}

	title := t.Title
	if len([]rune(title)) > 40 {
		title = string([]rune(title)[:37]) + "..."
	}

	fmt.Fprintf(out, "%2d. %s %-40s %s %-7s %s\n", num, icon, title, priority, due, shortID(t.ID))
}

func printStats(out io.Writer, st view.Stats) {
	fmt.Fprintf(out, "\n%d total · %d done · %d pending · %d high priority · %d%% complete\n",
		st.Total, st.Completed, st.Pending, st.HighPriorityPending, st.CompletionRate)
}
