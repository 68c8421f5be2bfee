package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/existflow/taskmaster/internal/config"
)

var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Manage the active category",
	Long: `Set or view the active category.

When a context is set, new tasks go to that category and 'list' shows only
its tasks unless --all is given.

Examples:
  taskmaster context              # Show current context
  taskmaster context ls           # List all categories
  taskmaster context set work     # Set context to the 'Work' category
  taskmaster context clear        # Clear context (all categories)`,
	RunE: runContextShow,
}

var contextLsCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List all categories",
	RunE:    runContextList,
}

var contextSetCmd = &cobra.Command{
	Use:   "set [category]",
	Short: "Set the active category",
	Args:  cobra.ExactArgs(1),
	RunE:  runContextSet,
}

var contextClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the active category",
	RunE:  runContextClear,
}

func init() {
	contextCmd.AddCommand(contextLsCmd)
	contextCmd.AddCommand(contextSetCmd)
	contextCmd.AddCommand(contextClearCmd)
}

// Context file path
func contextFilePath() (string, error) {
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "context"), nil
}

// GetCurrentContext returns the active category id (empty means all)
func GetCurrentContext() string {
	path, err := contextFilePath()
	if err != nil {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// SetContext saves the active category id
func SetContext(categoryID string) error {
	path, err := contextFilePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(categoryID), 0644)
}

// ClearContext removes the context file
func ClearContext() error {
	path, err := contextFilePath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func runContextShow(cmd *cobra.Command, args []string) (err error) {
	out := cmd.OutOrStdout()
	id := GetCurrentContext()
	if id == "" {
		fmt.Fprintln(out, "📥 Current context: all categories")
		return nil
	}

	s, done, err := openSession(cmd.Context(), cfg, 0)
	if err != nil {
		return err
	}
	defer done(&err)

	c, err := s.GetCategory(id)
	if err != nil {
		fmt.Fprintf(out, "⚠️  Context set to '%s' but category not found\n", id)
		return nil
	}

	total, pending := countTasks(s.ListTasks(), id)
	fmt.Fprintf(out, "📁 Current context: %s (%d/%d tasks)\n", c.Name, pending, total)
	return nil
}

func runContextList(cmd *cobra.Command, args []string) (err error) {
	out := cmd.OutOrStdout()
	s, done, err := openSession(cmd.Context(), cfg, 0)
	if err != nil {
		return err
	}
	defer done(&err)

	current := GetCurrentContext()
	tasks := s.ListTasks()

	fmt.Fprintln(out)
	for _, c := range s.ListCategories() {
		total, pending := countTasks(tasks, c.ID)
		marker := "  "
		if c.ID == current {
			marker = "❯ "
		}
		fmt.Fprintf(out, "%s%-10s  %-20s  %d/%d\n", marker, shortID(c.ID), c.Name, pending, total)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Use 'taskmaster context set <category>' to switch context")
	return nil
}

func runContextSet(cmd *cobra.Command, args []string) (err error) {
	s, done, err := openSession(cmd.Context(), cfg, 0)
	if err != nil {
		return err
	}
	defer done(&err)

	c, err := resolveCategory(s, args[0])
	if err != nil {
		return err
	}
	if err := SetContext(c.ID); err != nil {
		return fmt.Errorf("failed to set context: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "📁 Switched to: %s\n", c.Name)
	return nil
}

func runContextClear(cmd *cobra.Command, args []string) error {
	if err := ClearContext(); err != nil {
		return fmt.Errorf("failed to clear context: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "📥 Context cleared, showing all categories")
	return nil
}
