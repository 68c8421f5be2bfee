package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/existflow/taskmaster/internal/model"
)

var categoryCmd = &cobra.Command{
	Use:     "category",
	Aliases: []string{"cat"},
	Short:   "Manage categories",
	Long: `Create, list, rename and delete categories.

Colors may be a palette name (blue, green, red, yellow, purple) or any
other color value such as "#336699".

Examples:
  taskmaster category list
  taskmaster category new Work --color blue
  taskmaster category edit work --name Office
  taskmaster category delete office`,
}

var categoryListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all categories",
	RunE:    runCategoryList,
}

var categoryNewCmd = &cobra.Command{
	Use:     "new [name]",
	Aliases: []string{"add"},
	Short:   "Create a new category",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runCategoryNew,
}

var categoryEditCmd = &cobra.Command{
	Use:   "edit [category]",
	Short: "Rename or recolor a category",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoryEdit,
}

var categoryDeleteCmd = &cobra.Command{
	Use:     "delete [category]",
	Aliases: []string{"rm"},
	Short:   "Delete a category (its tasks are kept)",
	Args:    cobra.ExactArgs(1),
	RunE:    runCategoryDelete,
}

var (
	categoryColor   string
	categoryName    string
	categoryRecolor string
	categoryYes     bool
)

func init() {
	categoryCmd.AddCommand(categoryListCmd)
	categoryCmd.AddCommand(categoryNewCmd)
	categoryCmd.AddCommand(categoryEditCmd)
	categoryCmd.AddCommand(categoryDeleteCmd)

	categoryNewCmd.Flags().StringVar(&categoryColor, "color", model.DefaultColor, "Category color")
	categoryEditCmd.Flags().StringVar(&categoryName, "name", "", "New name")
	categoryEditCmd.Flags().StringVar(&categoryRecolor, "color", "", "New color")
	categoryDeleteCmd.Flags().BoolVarP(&categoryYes, "yes", "y", false, "Do not ask for confirmation")
}

func runCategoryList(cmd *cobra.Command, args []string) (err error) {
	s, done, err := openSession(cmd.Context(), cfg, 0)
	if err != nil {
		return err
	}
	defer done(&err)

	out := cmd.OutOrStdout()
	categories := s.ListCategories()
	if len(categories) == 0 {
		fmt.Fprintln(out, "No categories yet. Create one with: taskmaster category new <name>")
		return nil
	}

	tasks := s.ListTasks()
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %-10s  %-20s  %-9s  %s\n", "ID", "NAME", "COLOR", "TASKS")
	fmt.Fprintln(out, "  "+strings.Repeat("─", 50))
	for _, c := range categories {
		total, pending := countTasks(tasks, c.ID)
		fmt.Fprintf(out, "  %-10s  %-20s  %-9s  %d/%d\n", shortID(c.ID), c.Name, c.Color, pending, total)
	}
	fmt.Fprintln(out)
	return nil
}

func runCategoryNew(cmd *cobra.Command, args []string) (err error) {
	s, done, err := openSession(cmd.Context(), cfg, 0)
	if err != nil {
		return err
	}
	defer done(&err)

	c, err := s.AddCategory(model.CategoryInput{
		Name:  strings.Join(args, " "),
		Color: model.ColorByLabel(categoryColor),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Created category: %s (%s) %s\n", c.Name, c.Color, shortID(c.ID))
	return nil
}

func runCategoryEdit(cmd *cobra.Command, args []string) (err error) {
	s, done, err := openSession(cmd.Context(), cfg, 0)
	if err != nil {
		return err
	}
	defer done(&err)

	c, err := resolveCategory(s, args[0])
	if err != nil {
		return err
	}

	var patch model.CategoryPatch
	if cmd.Flags().Changed("name") {
		patch.Name = &categoryName
	}
	if cmd.Flags().Changed("color") {
		color := model.ColorByLabel(categoryRecolor)
		patch.Color = &color
	}

	updated, err := s.UpdateCategory(c.ID, patch)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✎ Updated category: %s (%s)\n", updated.Name, updated.Color)
	return nil
}

func runCategoryDelete(cmd *cobra.Command, args []string) (err error) {
	s, done, err := openSession(cmd.Context(), cfg, 0)
	if err != nil {
		return err
	}
	defer done(&err)

	c, err := resolveCategory(s, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	total, _ := countTasks(s.ListTasks(), c.ID)
	if cfg.ConfirmDelete && !categoryYes {
		fmt.Fprintf(out, "About to delete category: %s (%d tasks will become uncategorized)\n", c.Name, total)
		if !confirm(cmd.InOrStdin(), out, "Are you sure? [y/N]: ") {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
	}

	if err := s.DeleteCategory(c.ID); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if GetCurrentContext() == c.ID {
		_ = ClearContext()
	}

	fmt.Fprintf(out, "🗑️  Deleted category: %s", c.Name)
	if total > 0 {
		fmt.Fprintf(out, " (%d tasks now uncategorized)", total)
	}
	fmt.Fprintln(out)
	return nil
}

// countTasks returns the total and pending task counts for one category
func countTasks(tasks []model.Task, categoryID string) (total, pending int) {
	for _, t := range tasks {
		if t.CategoryID != categoryID {
			continue
		}
		total++
		if !t.Completed {
			pending++
		}
	}
	return total, pending
}
