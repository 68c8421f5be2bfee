package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete [task-id]",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Long: `Delete a task by its ID.

Examples:
  taskmaster delete abc123
  taskmaster rm abc123 --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

var deleteYes bool

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Do not ask for confirmation")
}

func runDelete(cmd *cobra.Command, args []string) (err error) {
	s, done, err := openSession(cmd.Context(), cfg, 0)
	if err != nil {
		return err
	}
	defer done(&err)

	task, err := resolveTask(s, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if cfg.ConfirmDelete && !deleteYes {
		fmt.Fprintf(out, "About to delete: \"%s\" (ID: %s)\n", task.Title, task.ID)
		if !confirm(cmd.InOrStdin(), out, "Are you sure? [y/N]: ") {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
	}

	if err := s.DeleteTask(task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	fmt.Fprintf(out, "🗑️  Deleted: \"%s\"\n", task.Title)
	return nil
}

// confirm prints prompt and reports whether the answer was y or yes
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	line, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
