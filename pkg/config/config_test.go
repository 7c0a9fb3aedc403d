package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		ConfigFileEnv, "PORT", "GIN_MODE", "LOG_LEVEL", "WEBHOOK_URL", "VITE_WEBHOOK_URL",
		"ALLOWED_EMAILS", "VITE_ALLOWED_EMAILS", "SESSION_TTL", "CORS_ALLOWED_ORIGIN", "SECURE_COOKIES",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "release", cfg.GinMode)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Empty(t, cfg.WebhookURL)
	assert.False(t, cfg.AllowList().Configured())
	assert.False(t, cfg.SecureCookies)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
port: "9000"
webhook_url: https://hooks.example.com/file
allowed_emails: a@x.com
session_ttl: 30m
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv(ConfigFileEnv, path)
	t.Setenv("WEBHOOK_URL", "https://hooks.example.com/env")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "https://hooks.example.com/env", cfg.WebhookURL)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.True(t, cfg.AllowList().Contains("A@X.com"))
}

func TestLoadConfig_ViteFallbacks(t *testing.T) {
	clearEnv(t)
	t.Setenv("VITE_WEBHOOK_URL", "https://hooks.example.com/vite")
	t.Setenv("VITE_ALLOWED_EMAILS", "a@x.com, b@y.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://hooks.example.com/vite", cfg.WebhookURL)
	assert.Equal(t, 2, cfg.AllowList().Len())
}

func TestLoadConfig_Invalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("SESSION_TTL", "soon")
	_, err := LoadConfig()
	assert.Error(t, err)

	clearEnv(t)
	t.Setenv("SECURE_COOKIES", "sometimes")
	_, err = LoadConfig()
	assert.Error(t, err)

	clearEnv(t)
	t.Setenv("LOG_LEVEL", "loud")
	_, err = LoadConfig()
	assert.Error(t, err)

	clearEnv(t)
	t.Setenv(ConfigFileEnv, filepath.Join(t.TempDir(), "missing.yaml"))
	_, err = LoadConfig()
	assert.Error(t, err)
}

func TestParseLogLevel(t *testing.T) {
	level, err := ParseLogLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	level, err = ParseLogLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)
}

func TestParseAllowList(t *testing.T) {
	list := ParseAllowList(" A@X.com ,b@y.com,, ")

	assert.True(t, list.Configured())
	assert.Equal(t, 2, list.Len())
	assert.True(t, list.Contains("a@x.com"))
	assert.True(t, list.Contains("B@Y.COM"))
	assert.False(t, list.Contains("c@z.com"))

	assert.False(t, ParseAllowList("").Configured())
	assert.False(t, ParseAllowList(" , ").Configured())
}
