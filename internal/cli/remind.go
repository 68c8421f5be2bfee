package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/existflow/taskmaster/internal/config"
	"github.com/existflow/taskmaster/internal/reminder"
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Send the due-task digest now",
	Long: `Build the digest of overdue tasks and tasks due today and send it
through the configured notifier (Telegram when a bot token is set).

Examples:
  taskmaster remind
  taskmaster remind --print`,
	RunE: runRemind,
}

var remindPrint bool

func init() {
	remindCmd.Flags().BoolVar(&remindPrint, "print", false, "Print the digest instead of sending it")
}

func runRemind(cmd *cobra.Command, args []string) (err error) {
	s, done, err := openSession(cmd.Context(), cfg, 0)
	if err != nil {
		return err
	}
	defer done(&err)

	out := cmd.OutOrStdout()
	var notifier reminder.Notifier = writerNotifier{out}
	if !remindPrint {
		if notifier, err = newNotifier(cfg); err != nil {
			return err
		}
	}

	sent, err := reminder.NewScheduler(s, notifier, time.Local).RunOnce(cmd.Context())
	if err != nil {
		return err
	}
	if !sent {
		fmt.Fprintln(out, "Nothing due. 🎉")
	} else if !remindPrint {
		fmt.Fprintln(out, "📨 Reminder sent")
	}
	return nil
}

// newNotifier returns the Telegram notifier when configured, else the log
func newNotifier(cfg *config.Config) (reminder.Notifier, error) {
	if cfg.Reminder.TelegramToken == "" {
		return reminder.LogNotifier{}, nil
	}
	n, err := reminder.NewTelegramNotifier(cfg.Reminder.TelegramToken, cfg.Reminder.TelegramChatID)
	if err != nil {
		return nil, err
	}
	return n, nil
}

type writerNotifier struct {
	w io.Writer
}

func (n writerNotifier) Notify(ctx context.Context, text string) error {
	_, err := fmt.Fprintln(n.w, text)
	return err
}
