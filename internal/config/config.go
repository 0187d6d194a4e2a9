package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// Config holds application configuration.
type Config struct {
	BaseURL      string `json:"baseUrl"`
	Username     string `json:"username"`
	SessionToken string `json:"sessionToken"`
	FetchLimit   int    `json:"fetchLimit"`
	// PollInterval is the background poll interval in milliseconds.
	// An explicit 0 disables polling; unset means the default interval.
	PollInterval  *int  `json:"pollIntervalMs,omitempty"`
	Notifications *bool `json:"notifications,omitempty"`
}

// Defaults
const (
	DefaultBaseURL        = "https://openlibrary.org"
	DefaultFetchLimit     = 100
	DefaultPollIntervalMs = 60000
)

// DefaultConfigDir returns the platform-appropriate config directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "oltea")
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, ".config", "oltea")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "oltea")
		}
		return filepath.Join(home, ".config", "oltea")
	default: // linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "oltea")
		}
		return filepath.Join(home, ".config", "oltea")
	}
}

// configDir is swapped in tests.
var configDir = DefaultConfigDir

// Load reads the config file, returning defaults for missing fields.
// On first run the defaults are persisted so there is a file to edit.
func Load() (*Config, error) {
	configPath := filepath.Join(configDir(), "config.json")
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := defaults()
			// Best effort: a read-only config dir still gets the
			// in-memory defaults.
			_ = Save(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// Save writes the config to disk.
func Save(cfg *Config) error {
	dir := configDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	configPath := filepath.Join(dir, "config.json")
	tmpPath := configPath + ".tmp"

	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	if err := os.Rename(tmpPath, configPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename config: %w", err)
	}

	return nil
}

// PollIntervalDuration returns the poll interval as a time.Duration.
// Zero when polling is explicitly disabled.
func (c *Config) PollIntervalDuration() time.Duration {
	if c.PollInterval == nil {
		return DefaultPollIntervalMs * time.Millisecond
	}
	return time.Duration(*c.PollInterval) * time.Millisecond
}

// PollingEnabled reports whether background polling is on. A
// pollIntervalMs of 0 in the config file turns it off.
func (c *Config) PollingEnabled() bool {
	return c.PollIntervalDuration() > 0
}

// NotificationsEnabled reports whether desktop notifications are on.
// Unset means enabled.
func (c *Config) NotificationsEnabled() bool {
	return c.Notifications == nil || *c.Notifications
}

func defaults() *Config {
	interval := DefaultPollIntervalMs
	return &Config{
		BaseURL:      DefaultBaseURL,
		FetchLimit:   DefaultFetchLimit,
		PollInterval: &interval,
	}
}

func applyDefaults(cfg *Config) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.FetchLimit == 0 {
		cfg.FetchLimit = DefaultFetchLimit
	}
	// PollInterval is left alone: nil falls back to the default at use
	// time, and an explicit 0 means polling is off.
}
