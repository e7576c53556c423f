package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 10, cfg.Remote.TimeoutSecs)
	assert.Equal(t, 3, cfg.Remote.MaxRetries)
	assert.Equal(t, 5.0, cfg.Remote.RatePerSec)
	assert.Equal(t, 4, cfg.Batch.Concurrency)
	assert.Empty(t, cfg.Remote.BaseURL)
	assert.Empty(t, cfg.Data.CropsFile)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("ADVISOR_SERVER_PORT", "9100")
	t.Setenv("ADVISOR_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadRejectsHalfConfiguredDataOverride(t *testing.T) {
	t.Setenv("ADVISOR_DATA_CROPS_FILE", "/tmp/crops.yaml")

	_, err := Load()
	assert.Error(t, err)
}

func TestInitLogger(t *testing.T) {
	assert.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	assert.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))
	assert.Error(t, InitLogger(LogConfig{Level: "nope", Format: "json"}))
}
