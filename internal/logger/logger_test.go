package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"DEBUG", DEBUG},
		{"debug", DEBUG},
		{"warning", WARN},
		{"ERROR", ERROR},
		{"", INFO},
		{"verbose", INFO},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), tt.in)
	}
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, log.JSONFormatter, ParseFormat("JSON"))
	assert.Equal(t, log.LogfmtFormatter, ParseFormat("logfmt"))
	assert.Equal(t, log.TextFormatter, ParseFormat(""))
}

func TestLogger_WritesFieldsAndFiltersLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	l, err := New(Config{Level: INFO, FilePath: path, Format: "json", MaxSize: 1 << 20, MaxAge: 7, MaxBackups: 2})
	require.NoError(t, err)

	l.Debug("hidden")
	l.WithFields(F("component", "store")).Info("Task added", F("id", "t1"))
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "Task added", entry["msg"])
	assert.Equal(t, "store", entry["component"])
	assert.Equal(t, "t1", entry["id"])
}

func TestLogger_RotatesBySize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	l, err := New(Config{Level: DEBUG, FilePath: path, MaxSize: 64, MaxAge: 7, MaxBackups: 3})
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		l.Info("a message long enough to pass the size limit", F("i", i))
	}
	require.NoError(t, l.Close())

	_, err = os.Stat(path + ".1")
	assert.NoError(t, err, "expected a rotated backup")
	_, err = os.Stat(path + ".4")
	assert.True(t, os.IsNotExist(err), "backups beyond MaxBackups are not kept")
}

func TestGlobalLoggerNoopBeforeInit(t *testing.T) {
	assert.NotPanics(t, func() {
		Info("before init", F("k", "v"))
	})
	assert.Equal(t, DefaultConfig().MaxBackups, GetConfig().MaxBackups)
}
