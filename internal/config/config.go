package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/existflow/taskmaster/internal/model"
)

// Storage drivers
const (
	DriverJSON     = "json"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds user preferences
type Config struct {
	ConfirmDelete bool `yaml:"confirm_delete" toml:"confirm_delete" json:"confirm_delete"` // Require confirmation for delete

	// Logging configuration
	LogLevel   string `yaml:"log_level" toml:"log_level" json:"log_level"`       // Log level: DEBUG, INFO, WARN, ERROR
	LogFile    string `yaml:"log_file" toml:"log_file" json:"log_file"`          // Path to log file
	LogConsole bool   `yaml:"log_console" toml:"log_console" json:"log_console"` // Enable console logging
	LogFormat  string `yaml:"log_format" toml:"log_format" json:"log_format"`    // text, json or logfmt

	User     model.User     `yaml:"user" toml:"user" json:"user"`
	Storage  StorageConfig  `yaml:"storage" toml:"storage" json:"storage"`
	Server   ServerConfig   `yaml:"server" toml:"server" json:"server"`
	Reminder ReminderConfig `yaml:"reminder" toml:"reminder" json:"reminder"`

	path string // file the config was read from
}

// StorageConfig selects the persistence backend
type StorageConfig struct {
	Driver   string `yaml:"driver" toml:"driver" json:"driver"`       // json, sqlite, postgres or memory
	Path     string `yaml:"path" toml:"path" json:"path"`             // file for json and sqlite
	DSN      string `yaml:"dsn" toml:"dsn" json:"dsn"`                // postgres connection string
	Autosave string `yaml:"autosave" toml:"autosave" json:"autosave"` // debounce, e.g. "2s"; "0" saves immediately
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr      string `yaml:"addr" toml:"addr" json:"addr"`
	TokenHash string `yaml:"token_hash" toml:"token_hash" json:"token_hash"` // bcrypt hash of the bearer token; empty disables auth
}

// ReminderConfig configures the due-task digest
type ReminderConfig struct {
	Enabled        bool   `yaml:"enabled" toml:"enabled" json:"enabled"`
	Schedule       string `yaml:"schedule" toml:"schedule" json:"schedule"` // cron spec
	TelegramToken  string `yaml:"telegram_token" toml:"telegram_token" json:"telegram_token"`
	TelegramChatID int64  `yaml:"telegram_chat_id" toml:"telegram_chat_id" json:"telegram_chat_id"`
}

// Dir returns the taskmaster home (~/.taskmaster, or $TASKMASTER_HOME)
func Dir() (string, error) {
	if dir := os.Getenv("TASKMASTER_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".taskmaster"), nil
}

// DefaultConfig returns default settings
func DefaultConfig() *Config {
	dir, _ := Dir()
	logPath := ""
	if dir != "" {
		logPath = filepath.Join(dir, "logs", "taskmaster.log")
	}

	return &Config{
		ConfirmDelete: true,
		LogLevel:      "INFO",
		LogFile:       logPath,
		LogFormat:     "text",
		Storage: StorageConfig{
			Driver:   DriverJSON,
			Autosave: "1s",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Reminder: ReminderConfig{
			Schedule: "0 8 * * *",
		},
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// applyEnv lets TASKMASTER_* variables override file values
func (c *Config) applyEnv() {
	c.LogLevel = getEnv("TASKMASTER_LOG_LEVEL", c.LogLevel)
	c.LogFile = getEnv("TASKMASTER_LOG_FILE", c.LogFile)
	c.LogFormat = getEnv("TASKMASTER_LOG_FORMAT", c.LogFormat)
	if v := os.Getenv("TASKMASTER_LOG_CONSOLE"); v != "" {
		c.LogConsole = v == "true"
	}
	c.Storage.Driver = getEnv("TASKMASTER_STORAGE_DRIVER", c.Storage.Driver)
	c.Storage.Path = getEnv("TASKMASTER_STORAGE_PATH", c.Storage.Path)
	c.Storage.DSN = getEnv("TASKMASTER_DATABASE_URL", c.Storage.DSN)
	c.Server.Addr = getEnv("TASKMASTER_SERVER_ADDR", c.Server.Addr)
	c.Server.TokenHash = getEnv("TASKMASTER_TOKEN_HASH", c.Server.TokenHash)
	c.Reminder.TelegramToken = getEnv("TASKMASTER_TELEGRAM_TOKEN", c.Reminder.TelegramToken)
	if v := os.Getenv("TASKMASTER_TELEGRAM_CHAT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Reminder.TelegramChatID = id
		}
	}
}

// Load loads config from ~/.taskmaster/config.yaml, or config.toml if
// only that exists. Missing files yield defaults.
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}

	for _, name := range []string{"config.yaml", "config.yml", "config.toml"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}

	cfg := DefaultConfig()
	cfg.path = filepath.Join(dir, "config.yaml")
	cfg.applyEnv()
	return cfg, cfg.Validate()
}

// LoadFile reads a YAML or TOML (by extension) config file over the defaults
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if isTOML(path) {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}
	cfg.path = path
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the fields other packages rely on
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverJSON, DriverSQLite, DriverMemory:
	case DriverPostgres:
		if c.Storage.DSN == "" {
			return fmt.Errorf("storage driver postgres requires storage.dsn")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if _, err := c.AutosaveDelay(); err != nil {
		return err
	}
	return nil
}

// AutosaveDelay parses Storage.Autosave. Empty or "0" means save immediately.
func (c *Config) AutosaveDelay() (time.Duration, error) {
	s := strings.TrimSpace(c.Storage.Autosave)
	if s == "" || s == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid storage.autosave %q", c.Storage.Autosave)
	}
	return d, nil
}

// StoragePath returns Storage.Path or the driver's default file
func (c *Config) StoragePath() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}
	dir, _ := Dir()
	if c.Storage.Driver == DriverSQLite {
		return filepath.Join(dir, "tasks.db")
	}
	return filepath.Join(dir, "tasks.json")
}

// Path returns the file Save writes to
func (c *Config) Path() string {
	if c.path != "" {
		return c.path
	}
	dir, _ := Dir()
	return filepath.Join(dir, "config.yaml")
}

// Save writes the config back to the file it came from
func (c *Config) Save() error {
	path := c.Path()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var (
		data []byte
		err  error
	)
	if isTOML(path) {
		data, err = toml.Marshal(c)
	} else {
		data, err = yaml.Marshal(c)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
