package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BOARDGURU_CONFIG_PATH", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 100, cfg.APIListLimitMax)
	assert.Equal(t, 28800, cfg.SessionTokenTTL)
	assert.True(t, cfg.RegistrationsEnabled)
	assert.Equal(t, "default", cfg.Source("base_url"))
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("BOARDGURU_CONFIG_PATH", dir)

	content := []byte("base_url: https://boardguru.example.com\nsession_token_ttl: 3600\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), content, 0o600))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://boardguru.example.com", cfg.BaseURL)
	assert.Equal(t, "file", cfg.Source("base_url"))
	assert.Equal(t, 3600, cfg.SessionTokenTTL)
	// untouched attributes keep default source
	assert.Equal(t, "default", cfg.Source("redis_url"))
}

func TestLoadRegistrationsEnabledFromFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("BOARDGURU_CONFIG_PATH", dir)

	// false is the zero value; it must still count as "set in the file"
	content := []byte("registrations_enabled: false\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), content, 0o600))

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.RegistrationsEnabled)
	assert.Equal(t, "file", cfg.Source("registrations_enabled"))
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("BOARDGURU_CONFIG_PATH", dir)

	content := []byte("base_url: https://from-file.example.com\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), content, 0o600))

	t.Setenv("BOARDGURU_BASE_URL", "https://from-env.example.com")
	t.Setenv("BOARDGURU_TRUSTED_PROXIES", "10.0.0.0/8, 192.168.1.1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://from-env.example.com", cfg.BaseURL)
	assert.Equal(t, "environment", cfg.Source("base_url"))
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.1"}, cfg.TrustedProxies)
}

func TestApprovalURL(t *testing.T) {
	cfg := newDefault()
	cfg.BaseURL = "https://boardguru.example.com/"

	url := cfg.ApprovalURL("abc+123")
	assert.Equal(t, "https://boardguru.example.com/registrations/approve?token=abc%2B123", url)
}

func TestValidate(t *testing.T) {
	cfg := newDefault()
	require.NoError(t, cfg.Validate())

	cfg.BaseURL = "not a url"
	assert.Error(t, cfg.Validate())

	cfg = newDefault()
	cfg.TrustedProxies = []string{"bogus"}
	assert.Error(t, cfg.Validate())

	cfg = newDefault()
	cfg.MeetingReminderLeadMinutes = 0
	assert.Error(t, cfg.Validate())
}

func TestIsTrustedProxy(t *testing.T) {
	cfg := newDefault()
	cfg.TrustedProxies = []string{"10.0.0.0/8", "192.168.1.5"}

	assert.True(t, cfg.IsTrustedProxy("10.1.2.3"))
	assert.True(t, cfg.IsTrustedProxy("192.168.1.5"))
	assert.False(t, cfg.IsTrustedProxy("172.16.0.1"))
	assert.False(t, cfg.IsTrustedProxy("garbage"))
}
