package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, "http://localhost:8080", c.PrimaryBaseURL)
	assert.Equal(t, "http://localhost:8081", c.FallbackBaseURL)
	assert.Equal(t, 15*time.Second, c.RequestTimeout)
	assert.Equal(t, 30*time.Second, c.ResendCooldown)
	assert.Equal(t, 10, c.PageSize)
	assert.False(t, c.RemoteOTP)
	assert.NoError(t, c.Validate())
}

func TestLoad_Precedence(t *testing.T) {
	for _, k := range []string{EnvPrimaryBaseURL, EnvLogLevel, EnvPageSize, EnvRequestTimeout} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	dir := t.TempDir()
	jsonPath := writeFile(t, dir, "cfg.json", `{
		"primary_base_url": "https://json.example",
		"log_level": "debug",
		"page_size": 25,
		"request_timeout": "5s"
	}`)
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvPageSize, "30")

	cfg, err := Load([]string{"-c", jsonPath, "-n", "40", "other", "--unknown"})
	require.NoError(t, err)

	want := defaults()
	want.PrimaryBaseURL = "https://json.example"
	want.LogLevel = "warn"
	want.PageSize = 40
	want.RequestTimeout = 5 * time.Second

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_InvalidResult(t *testing.T) {
	_, err := Load([]string{"-n", "0"})
	require.ErrorContains(t, err, "page size must be positive")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"empty primary", func(c *Config) { c.PrimaryBaseURL = "" }, "primary base url"},
		{"zero timeout", func(c *Config) { c.RequestTimeout = 0 }, "request timeout"},
		{"zero cooldown", func(c *Config) { c.ResendCooldown = 0 }, "resend cooldown"},
		{"zero interval", func(c *Config) { c.OnlineCheckInterval = 0 }, "online check interval"},
		{"empty db", func(c *Config) { c.DatabasePath = "" }, "database path"},
		{"page size too large", func(c *Config) { c.PageSize = MaxPageSize + 1 }, "page size must be at most"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := defaults()
			tt.mutate(c)
			assert.ErrorContains(t, c.Validate(), tt.want)
		})
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
