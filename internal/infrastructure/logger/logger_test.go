package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "console", cfg.Format)
	assert.Equal(t, "stdout", cfg.Output)
}

func TestProductionConfig(t *testing.T) {
	cfg := ProductionConfig()
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "json", cfg.Format)
}

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
	}{
		{name: "console format", cfg: &Config{Level: "debug", Format: "console", Output: "stdout", TimeFormat: "2006-01-02"}},
		{name: "json format", cfg: &Config{Level: "info", Format: "json", Output: "stderr", TimeFormat: "2006-01-02"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg)
			require.NoError(t, err)
			require.NotNil(t, logger)
		})
	}
}

func TestNewForEnvironment(t *testing.T) {
	for _, env := range []string{"development", "production", ""} {
		logger, err := NewForEnvironment(env)
		require.NoError(t, err)
		require.NotNil(t, logger)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"fatal", zapcore.FatalLevel},
		{"DEBUG", zapcore.DebugLevel},
		{"unknown", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.input))
		})
	}
}

func TestCreateWriterFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	writer := createWriter(path)
	require.NotNil(t, writer)

	_, err := writer.Write([]byte("hello\n"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}

func TestCreateWriterFallsBackToStdout(t *testing.T) {
	// Unopenable path falls back instead of failing
	writer := createWriter(filepath.Join(t.TempDir(), "missing", "nested", "app.log"))
	require.NotNil(t, writer)
}
