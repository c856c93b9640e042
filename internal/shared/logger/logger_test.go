package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starforge/internal/shared/config"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelDebug,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLogLevel(in), in)
	}
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, config.LoggingConfig{Level: "info", Format: "json", JSONFormat: true})

	log.Debug("hidden")
	log.Info("Entity generated", "component", "generator", "nodes", 12)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "Entity generated", line["msg"])
	assert.Equal(t, "generator", line["component"])
	assert.EqualValues(t, 12, line["nodes"])
}

func TestNew_TextFormatHonoursLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, config.LoggingConfig{Level: "warn", Format: "text"})

	log.Info("quiet")
	assert.Empty(t, buf.String())

	log.Warn("Generation failed", "kind", "Xenos")
	assert.Contains(t, buf.String(), "kind=Xenos")
}

func TestInit_RequiresConfig(t *testing.T) {
	saved := config.GlobalConfig
	t.Cleanup(func() { config.GlobalConfig = saved })

	config.GlobalConfig = nil
	assert.Panics(t, Init)
}
