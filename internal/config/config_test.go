package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://example.supabase.co")
	t.Setenv("SUPABASE_KEY", "anon-key")
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequired(t)
	t.Setenv("POLL_INTERVAL", "")
	t.Setenv("DATA_DIR", "")
	t.Setenv("REMINDER_SPEC", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://example.supabase.co", cfg.SupabaseURL)
	assert.Equal(t, 5*time.Second, cfg.PollInterval)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "0 8 * * *", cfg.ReminderSpec)
}

func TestLoadConfigOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("POLL_INTERVAL", "30s")
	t.Setenv("DATA_DIR", "/var/lib/bot")
	t.Setenv("REMINDER_SPEC", "0 9 * * 1-5")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.PollInterval)
	assert.Equal(t, "/var/lib/bot", cfg.DataDir)
	assert.Equal(t, "0 9 * * 1-5", cfg.ReminderSpec)
}

func TestLoadConfigBadInterval(t *testing.T) {
	setRequired(t)
	t.Setenv("POLL_INTERVAL", "вчера")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.PollInterval)
}

func TestLoadConfigMissingRequired(t *testing.T) {
	setRequired(t)
	t.Setenv("SUPABASE_KEY", "")

	_, err := LoadConfig()
	assert.Error(t, err)

	setRequired(t)
	t.Setenv("TELEGRAM_TOKEN", "")

	_, err = LoadConfig()
	assert.Error(t, err)
}
