package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 4, cfg.Day.RolloverHour)
	assert.Equal(t, -3, cfg.Day.UTCOffsetHours)
}

func TestLoadFromFileKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("day:\n  rollover_hour: 5\nstorage:\n  path: /tmp/x.db\n"), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Day.RolloverHour)
	assert.Equal(t, -3, cfg.Day.UTCOffsetHours)
	assert.Equal(t, "/tmp/x.db", cfg.Storage.Path)
	assert.True(t, cfg.Board.Watch)
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ASC_ROLLOVER_HOUR", "6")
	t.Setenv("ASC_DB_PATH", "/data/asc.db")
	t.Setenv("ASC_LIFETIME_REPAIR", "true")
	t.Setenv("ASC_UTC_OFFSET_HOURS", "not-a-number")

	cfg := DefaultConfig()
	cfg.ApplyEnv()
	assert.Equal(t, 6, cfg.Day.RolloverHour)
	assert.Equal(t, "/data/asc.db", cfg.Storage.Path)
	assert.True(t, cfg.Lifetime.Repair)
	assert.Equal(t, -3, cfg.Day.UTCOffsetHours)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Day.RolloverHour = 24
	require.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Log.Mode = "verbose"
	require.Error(t, cfg.Validate())
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Lifetime.Repair = true
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
