package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/Netflix/go-env"
)

// Defaults for the backends the client talks to.
const (
	DefaultAPIBaseURL     = "http://localhost:8003"
	DefaultUserServiceURL = "http://localhost:8001"
	DefaultAIServiceURL   = "https://n8n.serperp.com/webhook-test/chat"
	DefaultLogLevel       = "error"
	DefaultReadyTimeout   = 3 * time.Second
	DefaultRequestTimeout = 30 * time.Second
)

// DefaultScopes are requested from the identity provider when none are configured.
var DefaultScopes = []string{"openid", "email", "profile", "offline_access"}

// Settings are resolved from defaults, then config.toml, then the environment.
type Settings struct {
	APIBaseURL     string        `toml:"api_base_url"`
	UserServiceURL string        `toml:"user_service_url"`
	AIServiceURL   string        `toml:"ai_service_url"`
	LogLevel       string        `toml:"log_level"`
	ReadyTimeout   time.Duration `toml:"ready_timeout"`
	RequestTimeout time.Duration `toml:"request_timeout"`
	Identity       Identity      `toml:"identity"`
}

// Identity configures the hosted identity provider used by login.
type Identity struct {
	AuthURL  string   `toml:"auth_url"`
	TokenURL string   `toml:"token_url"`
	ClientID string   `toml:"client_id"`
	Scopes   []string `toml:"scopes"`
}

// Configured reports whether login can run against the identity provider.
func (i Identity) Configured() bool {
	return i.AuthURL != "" && i.TokenURL != "" && i.ClientID != ""
}

// environment lists the variables that override config.toml.
// Unset variables leave the file value alone.
type environment struct {
	APIBaseURL     string        `env:"NEXT_PUBLIC_API_BASE_URL"`
	UserServiceURL string        `env:"NEXT_PUBLIC_USER_SERVICE_URL"`
	AIServiceURL   string        `env:"NEXT_PUBLIC_AI_SERVICE_URL"`
	LogLevel       string        `env:"PMCTL_LOG_LEVEL"`
	ReadyTimeout   time.Duration `env:"PMCTL_READY_TIMEOUT"`
	RequestTimeout time.Duration `env:"PMCTL_REQUEST_TIMEOUT"`
	AuthURL        string        `env:"PMCTL_AUTH_URL"`
	TokenURL       string        `env:"PMCTL_TOKEN_URL"`
	ClientID       string        `env:"PMCTL_CLIENT_ID"`
	Scopes         string        `env:"PMCTL_SCOPES"`
}

// DefaultSettings returns the built-in settings.
func DefaultSettings() Settings {
	return Settings{
		APIBaseURL:     DefaultAPIBaseURL,
		UserServiceURL: DefaultUserServiceURL,
		AIServiceURL:   DefaultAIServiceURL,
		LogLevel:       DefaultLogLevel,
		ReadyTimeout:   DefaultReadyTimeout,
		RequestTimeout: DefaultRequestTimeout,
		Identity: Identity{
			Scopes: append([]string(nil), DefaultScopes...),
		},
	}
}

// LoadSettings reads path (a missing file is fine), applies environment
// overrides and validates the result.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()

	if _, err := toml.DecodeFile(path, &s); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Settings{}, fmt.Errorf("reading %s: %w", path, err)
	}

	var e environment
	if _, err := env.UnmarshalFromEnviron(&e); err != nil {
		return Settings{}, fmt.Errorf("failed to unmarshal environment variables: %w", err)
	}
	s.overlay(e)

	if err := s.validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid settings: %w", err)
	}
	return s, nil
}

func (s *Settings) overlay(e environment) {
	setString(&s.APIBaseURL, e.APIBaseURL)
	setString(&s.UserServiceURL, e.UserServiceURL)
	setString(&s.AIServiceURL, e.AIServiceURL)
	setString(&s.LogLevel, e.LogLevel)
	setString(&s.Identity.AuthURL, e.AuthURL)
	setString(&s.Identity.TokenURL, e.TokenURL)
	setString(&s.Identity.ClientID, e.ClientID)
	if e.ReadyTimeout != 0 {
		s.ReadyTimeout = e.ReadyTimeout
	}
	if e.RequestTimeout != 0 {
		s.RequestTimeout = e.RequestTimeout
	}
	if scopes := strings.Fields(e.Scopes); len(scopes) > 0 {
		s.Identity.Scopes = scopes
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func (s *Settings) validate() error {
	for name, raw := range map[string]string{
		"api_base_url":     s.APIBaseURL,
		"user_service_url": s.UserServiceURL,
		"ai_service_url":   s.AIServiceURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%s must be an absolute URL, got %q", name, raw)
		}
	}
	if s.ReadyTimeout <= 0 {
		return fmt.Errorf("ready timeout must be positive, got %v", s.ReadyTimeout)
	}
	if s.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %v", s.RequestTimeout)
	}
	return nil
}
