// Package config handles the XDG configuration directory, file paths and settings.
package config

import (
	"os"
	"path/filepath"
)

const (
	// AppName is the application directory name.
	AppName = "pmctl"

	// TokenFile is the stored identity token filename.
	TokenFile = "token.json"

	// SettingsFile is the optional settings filename.
	SettingsFile = "config.toml"

	// GoogleClientFile is the Google OAuth client credentials filename (export only).
	GoogleClientFile = "google_oauth_client.json"

	// GoogleTokenFile is the stored Google token filename (export only).
	GoogleTokenFile = "google_token.json"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Settings are the resolved backend and identity settings.
	Settings Settings
}

// New creates a Config for configDir and loads its settings.
// If configDir is empty, uses XDG_CONFIG_HOME/pmctl or $HOME/.config/pmctl.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{Dir: dir}
	settings, err := LoadSettings(cfg.SettingsPath())
	if err != nil {
		return nil, err
	}
	cfg.Settings = settings
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

func (c *Config) SettingsPath() string {
	return filepath.Join(c.Dir, SettingsFile)
}

func (c *Config) GoogleClientPath() string {
	return filepath.Join(c.Dir, GoogleClientFile)
}

func (c *Config) GoogleTokenPath() string {
	return filepath.Join(c.Dir, GoogleTokenFile)
}

// EnsureDir creates the config directory with mode 0700 if it doesn't exist.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasToken checks if the identity token file exists.
func (c *Config) HasToken() bool {
	return exists(c.TokenPath())
}

// HasGoogleClient checks if the Google OAuth client file exists.
func (c *Config) HasGoogleClient() bool {
	return exists(c.GoogleClientPath())
}

// HasGoogleToken checks if the Google token file exists.
func (c *Config) HasGoogleToken() bool {
	return exists(c.GoogleTokenPath())
}

// RemoveToken deletes the identity token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}

// RemoveGoogleToken deletes the Google token file.
func (c *Config) RemoveGoogleToken() error {
	return os.Remove(c.GoogleTokenPath())
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
