package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/existflow/taskmaster/internal/config"
	"github.com/existflow/taskmaster/internal/logger"
	"github.com/existflow/taskmaster/internal/tui"
)

var (
	configPath string
	logLevel   string
	logFile    string
	logConsole bool
	storage    string

	// cfg is loaded before every command runs
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "taskmaster",
	Short: "Taskmaster - personal tasks organized by category",
	Long: `Taskmaster keeps your tasks in categories, tracks priority and completion,
and shows how much is done.

Run 'taskmaster' without arguments to launch the interactive TUI.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load config from file (or defaults if not exists)
		var err error
		if configPath != "" {
			cfg, err = config.LoadFile(configPath)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// Override with CLI flags if provided
		configChanged := false
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
			configChanged = true
		}
		if cmd.Flags().Changed("log-file") {
			cfg.LogFile = logFile
			configChanged = true
		}
		if cmd.Flags().Changed("log-console") {
			cfg.LogConsole = logConsole
			configChanged = true
		}

		// Save config if changed via CLI flags
		if configChanged {
			if err := cfg.Save(); err != nil {
				logger.Warn("Failed to save config", logger.F("error", err))
			}
		}

		// storage override is per invocation and never saved
		if cmd.Flags().Changed("storage") {
			cfg.Storage.Driver = storage
			if err := cfg.Validate(); err != nil {
				return err
			}
		}

		logConfig := logger.DefaultConfig()
		logConfig.Level = logger.ParseLevel(cfg.LogLevel)
		logConfig.FilePath = cfg.LogFile
		logConfig.Format = cfg.LogFormat
		logConfig.Console = cfg.LogConsole

		if err := logger.Init(logConfig); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		logger.Info("Taskmaster started", logger.F("command", cmd.Name()), logger.F("storage", cfg.Storage.Driver))
		return nil
	},

	RunE: func(cmd *cobra.Command, args []string) (err error) {
		debounce, err := cfg.AutosaveDelay()
		if err != nil {
			return err
		}
		s, done, err := openSession(cmd.Context(), cfg, debounce)
		if err != nil {
			return err
		}
		defer done(&err)

		logger.Info("Launching TUI")
		m := tui.NewModel(s, tui.Options{ConfirmDelete: cfg.ConfirmDelete, ActiveCategory: GetCurrentContext()})
		p := tea.NewProgram(m, tea.WithAltScreen())

		if _, err := p.Run(); err != nil {
			logger.Error("TUI error", logger.F("error", err))
			return fmt.Errorf("failed to run TUI: %w", err)
		}

		logger.Info("TUI exited normally")
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Info("Taskmaster exiting", logger.F("command", cmd.Name()))
	},
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	defer logger.Close()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (YAML or TOML)")
	rootCmd.PersistentFlags().StringVar(&storage, "storage", "", "Storage driver for this run (json, sqlite, postgres, memory)")

	// Add logging flags
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Path to log file")
	rootCmd.PersistentFlags().BoolVar(&logConsole, "log-console", false, "Enable console logging")

	// Add subcommands
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(categoryCmd)
	rootCmd.AddCommand(contextCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(remindCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(authCmd)
}
