package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/existflow/taskmaster/internal/app"
	"github.com/existflow/taskmaster/internal/model"
)

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a new task",
	Long: `Add a new task to a category.

Without --category the task goes to the current context, or to the first
category when no context is set.

Examples:
  taskmaster add "Buy groceries"
  taskmaster add "Meeting with team" -p high -d tomorrow
  taskmaster add "Feature work" --category work --desc "ship the importer"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var (
	addCategory    string
	addPriority    string
	addDue         string
	addDescription string
)

func init() {
	addCmd.Flags().StringVarP(&addCategory, "category", "c", "", "Category name or id")
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "medium", "Priority (low, medium, high)")
	addCmd.Flags().StringVarP(&addDue, "due", "d", "", "Due date (e.g., 'tomorrow', '2024-01-15')")
	addCmd.Flags().StringVar(&addDescription, "desc", "", "Task description")
}

func runAdd(cmd *cobra.Command, args []string) (err error) {
	s, done, err := openSession(cmd.Context(), cfg, 0)
	if err != nil {
		return err
	}
	defer done(&err)

	category, err := targetCategory(s, addCategory)
	if err != nil {
		return err
	}

	priority, err := model.ParsePriority(strings.ToLower(addPriority))
	if err != nil {
		return err
	}

	due, err := parseDue(addDue, time.Now())
	if err != nil {
		return err
	}

	task, err := s.AddTask(model.TaskInput{
		Title:       strings.Join(args, " "),
		Description: addDescription,
		Priority:    &priority,
		CategoryID:  category.ID,
		DueDate:     due,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Added to [%s]: \"%s\" (%s) %s\n", category.Name, task.Title, task.Priority, shortID(task.ID))
	return nil
}

// targetCategory picks the category for a new task: the explicit ref,
// then the current context, then the first category
func targetCategory(s *app.Session, ref string) (model.Category, error) {
	if ref != "" {
		return resolveCategory(s, ref)
	}
	if id := GetCurrentContext(); id != "" {
		if c, err := s.GetCategory(id); err == nil {
			return c, nil
		}
	}
	categories := s.ListCategories()
	if len(categories) == 0 {
		return model.Category{}, fmt.Errorf("no categories yet, create one with: taskmaster category new <name>")
	}
	return categories[0], nil
}
