package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/existflow/taskmaster/internal/config"
	"github.com/existflow/taskmaster/internal/logger"
	"github.com/existflow/taskmaster/internal/reminder"
	"github.com/existflow/taskmaster/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve tasks over HTTP",
	Long: `Start the JSON API over the configured storage. When a token hash is
configured every /api/v1 request needs 'Authorization: Bearer <token>'.

Examples:
  taskmaster serve
  taskmaster serve --addr :9090`,
	RunE: runServe,
}

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}
	return Serve(ctx, cfg, addr)
}

// Serve runs the API server until ctx is cancelled, then shuts down and
// saves pending changes
func Serve(ctx context.Context, cfg *config.Config, addr string) (err error) {
	debounce, err := cfg.AutosaveDelay()
	if err != nil {
		return err
	}
	s, done, err := openSession(ctx, cfg, debounce)
	if err != nil {
		return err
	}
	defer done(&err)

	if cfg.Reminder.Enabled {
		notifier, err := newNotifier(cfg)
		if err != nil {
			return err
		}
		sched := reminder.NewScheduler(s, notifier, time.Local)
		if _, err := sched.Schedule(cfg.Reminder.Schedule); err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()
		logger.Info("Reminders scheduled", logger.F("schedule", cfg.Reminder.Schedule))
	}

	srv := server.New(s, server.Options{TokenHash: cfg.Server.TokenHash})

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", logger.F("addr", addr), logger.F("auth", cfg.Server.TokenHash != ""))
		errCh <- srv.Start(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
