// Package config handles configuration loading and validation for taskdeck.
package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML values like "5s" parse naturally.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", raw, err)
	}

	*d = Duration(parsed)
	return nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config holds the application configuration.
type Config struct {
	API API `yaml:"api"`
	Hub Hub `yaml:"hub"`
	UI  UI  `yaml:"ui"`
	Log Log `yaml:"log"`
}

// API configures the REST gateway.
type API struct {
	BaseURL string   `yaml:"base_url"`
	Timeout Duration `yaml:"timeout"`
}

// Hub configures the push-notification bridge.
type Hub struct {
	// URL of the websocket hub. Derived from api.base_url when empty.
	URL        string `yaml:"url"`
	MaxRetries int    `yaml:"max_retries"`
}

// UI configures dashboard behavior.
type UI struct {
	Theme string `yaml:"theme"`
	// ToastTTL is how long a transient notification stays visible
	// unless dismissed earlier.
	ToastTTL Duration `yaml:"toast_ttl"`
	// RefreshDelay is the pause between receiving a pushed event and
	// refetching the authoritative collection, allowing the server to
	// settle.
	RefreshDelay Duration `yaml:"refresh_delay"`
	// LivenessInterval is how often the bridge connection is checked
	// and, if dead, reconnected.
	LivenessInterval Duration `yaml:"liveness_interval"`
}

// Log configures logging output.
type Log struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		API: API{
			BaseURL: "http://localhost:8080",
			Timeout: Duration(10 * time.Second),
		},
		Hub: Hub{
			MaxRetries: 5,
		},
		UI: UI{
			Theme:            "tokyo-night",
			ToastTTL:         Duration(5 * time.Second),
			RefreshDelay:     Duration(500 * time.Millisecond),
			LivenessInterval: Duration(10 * time.Second),
		},
		Log: Log{
			Level: "info",
		},
	}
}

// Load reads configuration from the given path. If configPath is empty or
// the file doesn't exist, defaults are returned.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// Reconcile re-applies defaults and validates, for use after flag
// overrides have mutated a loaded config.
func (c *Config) Reconcile() error {
	c.applyDefaults()
	return c.Validate()
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.API.Timeout == 0 {
		c.API.Timeout = defaults.API.Timeout
	}
	if c.Hub.URL == "" {
		c.Hub.URL = deriveHubURL(c.API.BaseURL)
	}
	if c.Hub.MaxRetries == 0 {
		c.Hub.MaxRetries = defaults.Hub.MaxRetries
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
	if c.UI.ToastTTL == 0 {
		c.UI.ToastTTL = defaults.UI.ToastTTL
	}
	if c.UI.RefreshDelay == 0 {
		c.UI.RefreshDelay = defaults.UI.RefreshDelay
	}
	if c.UI.LivenessInterval == 0 {
		c.UI.LivenessInterval = defaults.UI.LivenessInterval
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
}

// deriveHubURL converts an API base URL into the default hub endpoint,
// swapping the scheme for its websocket counterpart.
func deriveHubURL(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return ""
	}

	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = "/taskNotificationHub"
	return u.String()
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url cannot be empty")
	}
	if _, err := url.Parse(c.API.BaseURL); err != nil {
		return fmt.Errorf("api.base_url: %w", err)
	}

	if c.Hub.URL == "" {
		return fmt.Errorf("hub.url cannot be empty")
	}
	if c.Hub.MaxRetries < 1 {
		return fmt.Errorf("hub.max_retries must be at least 1")
	}

	if c.UI.ToastTTL <= 0 {
		return fmt.Errorf("ui.toast_ttl must be positive")
	}
	if c.UI.LivenessInterval <= 0 {
		return fmt.Errorf("ui.liveness_interval must be positive")
	}

	return nil
}
