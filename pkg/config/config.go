package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigFileEnv names the variable pointing at an optional YAML config file
const ConfigFileEnv = "REGISTRATION_CONFIG"

// Config holds all application configuration values
type Config struct {
	Port              string        `yaml:"port"`
	GinMode           string        `yaml:"gin_mode"`
	LogLevel          string        `yaml:"log_level"`
	WebhookURL        string        `yaml:"webhook_url"`
	AllowedEmails     string        `yaml:"allowed_emails"`
	SessionTTL        time.Duration `yaml:"session_ttl"`
	CORSAllowedOrigin string        `yaml:"cors_allowed_origin"`
	SecureCookies     bool          `yaml:"secure_cookies"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Port:              "8080",
		GinMode:           "release",
		LogLevel:          "info",
		SessionTTL:        2 * time.Hour,
		CORSAllowedOrigin: "*",
	}
}

// LoadConfig reads configuration from the optional YAML file named by
// REGISTRATION_CONFIG, then applies environment variables on top
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	if path := os.Getenv(ConfigFileEnv); path != "" {
		fileCfg, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a YAML file over the defaults
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Port, "PORT")
	setString(&c.GinMode, "GIN_MODE")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.WebhookURL, "WEBHOOK_URL", "VITE_WEBHOOK_URL")
	setString(&c.AllowedEmails, "ALLOWED_EMAILS", "VITE_ALLOWED_EMAILS")
	setString(&c.CORSAllowedOrigin, "CORS_ALLOWED_ORIGIN")

	if raw := os.Getenv("SECURE_COOKIES"); raw != "" {
		secure, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid SECURE_COOKIES %q: %w", raw, err)
		}
		c.SecureCookies = secure
	}

	if raw := os.Getenv("SESSION_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid SESSION_TTL %q: %w", raw, err)
		}
		c.SessionTTL = ttl
	}
	return nil
}

// setString overwrites dst with the first non-empty variable among keys
func setString(dst *string, keys ...string) {
	for _, key := range keys {
		if v := os.Getenv(key); v != "" {
			*dst = v
			return
		}
	}
}

// Validate checks that the configuration is usable.
// A missing webhook URL is not an error here; it is reported when a registration is submitted.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session_ttl must be positive")
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return ":" + c.Port
}

// AllowList parses AllowedEmails
func (c *Config) AllowList() AllowList {
	return ParseAllowList(c.AllowedEmails)
}

// ParseLogLevel maps a level name to a slog.Level
func ParseLogLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return l, nil
}
