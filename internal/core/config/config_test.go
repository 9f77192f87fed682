package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_missing_file_returns_defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
	assert.Equal(t, "ws://localhost:8080/taskNotificationHub", cfg.Hub.URL)
	assert.Equal(t, 5, cfg.Hub.MaxRetries)
	assert.Equal(t, 5*time.Second, cfg.UI.ToastTTL.Std())
}

func TestLoad_empty_path_returns_defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().API.Timeout, cfg.API.Timeout)
}

func TestLoad_file_overrides_defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `
api:
  base_url: https://tasks.example.com
hub:
  max_retries: 3
ui:
  theme: gruvbox
  toast_ttl: 2s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://tasks.example.com", cfg.API.BaseURL)
	// Hub URL derives from the API URL, switching to the TLS websocket scheme.
	assert.Equal(t, "wss://tasks.example.com/taskNotificationHub", cfg.Hub.URL)
	assert.Equal(t, 3, cfg.Hub.MaxRetries)
	assert.Equal(t, "gruvbox", cfg.UI.Theme)
	assert.Equal(t, 2*time.Second, cfg.UI.ToastTTL.Std())
	// Unset values keep defaults.
	assert.Equal(t, 10*time.Second, cfg.API.Timeout.Std())
	assert.Equal(t, 500*time.Millisecond, cfg.UI.RefreshDelay.Std())
}

func TestLoad_explicit_hub_url_wins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `
hub:
  url: wss://push.example.com/hub
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "wss://push.example.com/hub", cfg.Hub.URL)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid defaults", func(c *Config) {}, ""},
		{"empty base url", func(c *Config) { c.API.BaseURL = "" }, "api.base_url"},
		{"zero retries", func(c *Config) { c.Hub.MaxRetries = 0 }, "hub.max_retries"},
		{"negative toast ttl", func(c *Config) { c.UI.ToastTTL = Duration(-time.Second) }, "ui.toast_ttl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.applyDefaults()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
