package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	cfg := New()

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "ordinal", cfg.Strategy)
	assert.Equal(t, "table", cfg.Output)
	assert.False(t, cfg.FallbackToRaw)
	assert.Empty(t, cfg.SeasonFile)
}

func TestLoad_DefaultsOnly(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "ordinal", cfg.Strategy)
	assert.Equal(t, "table", cfg.Output)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PODIUM_LOG_LEVEL", "debug")
	t.Setenv("PODIUM_STRATEGY", "shared")
	t.Setenv("PODIUM_OUTPUT", "json")
	t.Setenv("PODIUM_FALLBACK_TO_RAW", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "shared", cfg.Strategy)
	assert.Equal(t, "json", cfg.Output)
	assert.True(t, cfg.FallbackToRaw)
}

func TestLoad_FileThenEnvPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "podium.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"log_level: warn\nstrategy: shared\nsnapshot_file: /data/snap.yaml\n",
	), 0o600))

	t.Setenv("PODIUM_CONFIG", path)
	t.Setenv("PODIUM_LOG_LEVEL", "error")

	cfg, err := Load()
	require.NoError(t, err)

	// Env wins over file, file wins over defaults.
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, "shared", cfg.Strategy)
	assert.Equal(t, "/data/snap.yaml", cfg.SnapshotFile)
	assert.Equal(t, "table", cfg.Output)
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("unknown strategy", func(t *testing.T) {
		t.Setenv("PODIUM_STRATEGY", "lottery")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("unknown output", func(t *testing.T) {
		t.Setenv("PODIUM_OUTPUT", "xml")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("missing config file", func(t *testing.T) {
		t.Setenv("PODIUM_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))
		_, err := Load()
		assert.Error(t, err)
	})
}
