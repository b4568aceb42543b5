package common

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := GetNewLogger(LogConfig{Level: "info", Format: FormatJSON, Output: &buf})
	require.NoError(t, err)

	logger.Debug().Msg("hidden")
	logger.Info().Str("run_id", "42").Msg("visible")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "visible", entry["message"])
	assert.Equal(t, "42", entry["run_id"])
	assert.Equal(t, "info", entry["level"])
}

func TestNewLoggerConsole(t *testing.T) {
	var buf bytes.Buffer
	logger, err := GetNewLogger(LogConfig{Level: "debug", Output: &buf})
	require.NoError(t, err)
	logger.Debug().Msg("Test Debug")
	assert.Contains(t, buf.String(), "Test Debug")
}

func TestNewLoggerErrors(t *testing.T) {
	_, err := GetNewLogger(LogConfig{Level: "verbose"})
	assert.True(t, errors.Is(err, ErrInvalidLogLevel))

	_, err = GetNewLogger(LogConfig{Level: "info", Format: "xml"})
	assert.True(t, errors.Is(err, ErrInvalidLogFormat))
}

func TestRandomID(t *testing.T) {
	first, err := GetRandomID()
	require.NoError(t, err)
	second, err := GetRandomID()
	require.NoError(t, err)
	assert.Len(t, first, 36)
	assert.NotEqual(t, first, second)
}

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		config, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
		require.NoError(t, err)
		assert.Equal(t, "info", config.LogLevel)
		assert.Equal(t, FormatConsole, config.LogFormat)
		assert.Equal(t, 1, config.Workers)
	})

	t.Run("Environment", func(t *testing.T) {
		t.Setenv("HAMTRI_WORKERS", "4")
		t.Setenv("HAMTRI_LOG_FORMAT", "json")
		config, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
		require.NoError(t, err)
		assert.Equal(t, 4, config.Workers)
		assert.Equal(t, FormatJSON, config.LogFormat)
		assert.Equal(t, FormatJSON, config.LogConfig().Format)
	})

	t.Run("DotEnv", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.env")
		require.NoError(t, os.WriteFile(path, []byte("HAMTRI_LOG_LEVEL=debug\n"), 0o600))
		t.Cleanup(func() { os.Unsetenv("HAMTRI_LOG_LEVEL") })

		config, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "debug", config.LogLevel)
	})

	t.Run("Malformed", func(t *testing.T) {
		t.Setenv("HAMTRI_WORKERS", "many")
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
		assert.Error(t, err)
	})
}
