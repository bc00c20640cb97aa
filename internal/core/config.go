package core

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents the main configuration for the service
type Config struct {
	Server   ServerConfig   `json:"server"`
	Database DatabaseConfig `json:"database"`
	Log      LogConfig      `json:"log"`
	Features FeatureConfig  `json:"features"`
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	Port int    `json:"port"`
	Host string `json:"host"`
}

// DatabaseConfig contains database-related configuration
type DatabaseConfig struct {
	Path string `json:"path"`
}

// LogConfig contains logging configuration
type LogConfig struct {
	Level string `json:"level"`
}

// FeatureConfig contains feature-specific configuration
type FeatureConfig struct {
	TikTok TikTokConfig `json:"tiktok"`
}

// TikTokConfig contains the profile feed and carousel configuration
type TikTokConfig struct {
	Enabled        bool          `json:"enabled"`
	DefaultUser    string        `json:"default_user"`
	DefaultCount   int           `json:"default_count"`
	BaseURL        string        `json:"base_url"`
	UserAgent      string        `json:"user_agent"`
	AcceptLanguage string        `json:"accept_language"`
	EmbedScriptURL string        `json:"embed_script_url"`
	FetchTimeout   time.Duration `json:"fetch_timeout"`
	APIBaseURL     string        `json:"api_base_url"`
	FetchLog       bool          `json:"fetch_log"`
}

// Upstream defaults
const (
	DefaultTikTokUser     = "fringebiscuit"
	DefaultTikTokCount    = 5
	DefaultTikTokBaseURL  = "https://www.tiktok.com"
	DefaultUserAgent      = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/115.0.0.0 Safari/537.36"
	DefaultAcceptLanguage = "en-US,en;q=0.9"
	DefaultEmbedScriptURL = "https://www.tiktok.com/embed.js"
)

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: getEnvAsInt("APP_PORT", 3000),
			Host: getEnvOrDefault("APP_HOST", "0.0.0.0"),
		},
		Database: DatabaseConfig{
			Path: getEnvOrDefault("APP_DB_PATH", "./tiktok.db"),
		},
		Log: LogConfig{
			Level: getEnvOrDefault("LOG_LEVEL", "info"),
		},
		Features: FeatureConfig{
			TikTok: TikTokConfig{
				Enabled:        getEnvAsBool("TIKTOK_ENABLED", true),
				DefaultUser:    getEnvOrDefault("TIKTOK_DEFAULT_USER", DefaultTikTokUser),
				DefaultCount:   getEnvAsInt("TIKTOK_DEFAULT_COUNT", DefaultTikTokCount),
				BaseURL:        getEnvOrDefault("TIKTOK_BASE_URL", DefaultTikTokBaseURL),
				UserAgent:      getEnvOrDefault("TIKTOK_USER_AGENT", DefaultUserAgent),
				AcceptLanguage: getEnvOrDefault("TIKTOK_ACCEPT_LANGUAGE", DefaultAcceptLanguage),
				EmbedScriptURL: getEnvOrDefault("TIKTOK_EMBED_SCRIPT_URL", DefaultEmbedScriptURL),
				FetchTimeout:   getEnvAsDuration("TIKTOK_FETCH_TIMEOUT", 0),
				APIBaseURL:     getEnvOrDefault("TIKTOK_API_BASE_URL", ""),
				FetchLog:       getEnvAsBool("TIKTOK_FETCH_LOG", false),
			},
		},
	}

	// Validate required configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return NewConfigurationError(fmt.Sprintf("invalid server port: %d", c.Server.Port), nil)
	}

	if _, err := ParseLevel(c.Log.Level); err != nil {
		return NewConfigurationError("invalid log level", err)
	}

	if c.Features.TikTok.Enabled {
		tt := c.Features.TikTok
		if tt.DefaultUser == "" {
			return NewConfigurationError("default TikTok user is required", nil)
		}
		if tt.DefaultCount <= 0 {
			return NewConfigurationError(fmt.Sprintf("default count must be positive: %d", tt.DefaultCount), nil)
		}
		if _, err := url.ParseRequestURI(tt.BaseURL); err != nil {
			return NewConfigurationError("invalid TikTok base URL", err)
		}
		if tt.FetchTimeout < 0 {
			return NewConfigurationError("fetch timeout cannot be negative", nil)
		}
		if tt.FetchLog && c.Database.Path == "" {
			return NewConfigurationError("database path is required when the fetch log is enabled", nil)
		}
	}

	return nil
}

// IsFeatureEnabled checks if a feature is enabled
func (c *Config) IsFeatureEnabled(featureName string) bool {
	switch strings.ToLower(featureName) {
	case "tiktok":
		return c.Features.TikTok.Enabled
	default:
		return false
	}
}

// ParseLevel maps a LOG_LEVEL value to a slog level
func ParseLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo, err
	}
	return l, nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		switch strings.ToLower(value) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return defaultValue
}
