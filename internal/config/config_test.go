package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ADVENTURE_GENRE", "")
	t.Setenv("ADVENTURE_SEED", "")
	t.Setenv("ADVENTURE_ENCOUNTERS", "")
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "fantasy", cfg.Genre)
	assert.True(t, cfg.Encounters)
	assert.NotZero(t, cfg.Seed, "zero seed derives from the clock")
	assert.Empty(t, cfg.GeminiAPIKey)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ADVENTURE_GENRE", "horror")
	t.Setenv("ADVENTURE_SEED", "12345")
	t.Setenv("ADVENTURE_ENCOUNTERS", "false")
	t.Setenv("ADVENTURE_LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "horror", cfg.Genre)
	assert.Equal(t, int64(12345), cfg.Seed)
	assert.False(t, cfg.Encounters)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("ADVENTURE_SEED", "not-a-number")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("ADVENTURE_SEED", "1")
	t.Setenv("ADVENTURE_ENCOUNTERS", "maybe")
	_, err = Load()
	assert.Error(t, err)
}
