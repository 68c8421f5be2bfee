package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWhenMissing(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TASKMASTER_HOME", dir)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverJSON, cfg.Storage.Driver)
	assert.True(t, cfg.ConfirmDelete)
	assert.Equal(t, filepath.Join(dir, "tasks.json"), cfg.StoragePath())
	assert.Equal(t, filepath.Join(dir, "config.yaml"), cfg.Path())

	d, err := cfg.AutosaveDelay()
	require.NoError(t, err)
	assert.Equal(t, time.Second, d)
}

func TestLoadFile_YAML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TASKMASTER_HOME", dir)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log_level: DEBUG
user:
  name: Ada
  email: ada@example.com
storage:
  driver: sqlite
  autosave: "0"
reminder:
  enabled: true
  schedule: "30 7 * * 1-5"
`), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, "Ada", cfg.User.Name)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, filepath.Join(dir, "tasks.db"), cfg.StoragePath())
	assert.Equal(t, "30 7 * * 1-5", cfg.Reminder.Schedule)
	assert.Equal(t, ":8080", cfg.Server.Addr, "unset keys keep defaults")

	d, err := cfg.AutosaveDelay()
	require.NoError(t, err)
	assert.Zero(t, d)
}

func TestLoadFile_TOML(t *testing.T) {
	t.Setenv("TASKMASTER_HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "taskmaster.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
confirm_delete = false

[storage]
driver = "postgres"
dsn = "postgres://localhost/tasks?sslmode=disable"

[reminder]
telegram_chat_id = 42
`), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.False(t, cfg.ConfirmDelete)
	assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, int64(42), cfg.Reminder.TelegramChatID)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TASKMASTER_HOME", dir)
	t.Setenv("TASKMASTER_STORAGE_DRIVER", "memory")
	t.Setenv("TASKMASTER_TELEGRAM_CHAT_ID", "7")
	t.Setenv("TASKMASTER_LOG_CONSOLE", "true")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("storage:\n  driver: sqlite\n"), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, int64(7), cfg.Reminder.TelegramChatID)
	assert.True(t, cfg.LogConsole)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{name: "defaults", mutate: func(*Config) {}, ok: true},
		{name: "unknown driver", mutate: func(c *Config) { c.Storage.Driver = "mongo" }},
		{name: "postgres without dsn", mutate: func(c *Config) { c.Storage.Driver = DriverPostgres }},
		{name: "bad autosave", mutate: func(c *Config) { c.Storage.Autosave = "soon" }},
		{name: "negative autosave", mutate: func(c *Config) { c.Storage.Autosave = "-1s" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if tt.ok {
				assert.NoError(t, cfg.Validate())
			} else {
				assert.Error(t, cfg.Validate())
			}
		})
	}
}

func TestSave_RoundTrip(t *testing.T) {
	for _, name := range []string{"config.yaml", "config.toml"} {
		t.Run(name, func(t *testing.T) {
			t.Setenv("TASKMASTER_HOME", t.TempDir())
			path := filepath.Join(t.TempDir(), name)

			cfg := DefaultConfig()
			cfg.path = path
			cfg.User.Name = "Grace"
			cfg.Server.TokenHash = "$2a$10$abc"
			require.NoError(t, cfg.Save())

			got, err := LoadFile(path)
			require.NoError(t, err)
			assert.Equal(t, "Grace", got.User.Name)
			assert.Equal(t, "$2a$10$abc", got.Server.TokenHash)
		})
	}
}
