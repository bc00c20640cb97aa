package tiktok

import (
	"fmt"
	"time"

	"tiktok-carousel/internal/core"
)

// Config represents TikTok feature configuration
type Config struct {
	Enabled        bool
	DefaultUser    string
	DefaultCount   int
	BaseURL        string
	UserAgent      string
	AcceptLanguage string
	EmbedScriptURL string
	FetchTimeout   time.Duration
	APIBaseURL     string
	FetchLog       bool
}

// NewConfig creates feature config from core config
func NewConfig(coreConfig *core.Config) *Config {
	tt := coreConfig.Features.TikTok
	return &Config{
		Enabled:        tt.Enabled,
		DefaultUser:    tt.DefaultUser,
		DefaultCount:   tt.DefaultCount,
		BaseURL:        tt.BaseURL,
		UserAgent:      tt.UserAgent,
		AcceptLanguage: tt.AcceptLanguage,
		EmbedScriptURL: tt.EmbedScriptURL,
		FetchTimeout:   tt.FetchTimeout,
		APIBaseURL:     tt.APIBaseURL,
		FetchLog:       tt.FetchLog,
	}
}

// Validate validates the feature configuration
func (c *Config) Validate() error {
	if c.DefaultUser == "" {
		return fmt.Errorf("default user is required")
	}
	if c.DefaultCount <= 0 {
		return fmt.Errorf("default count must be positive")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("base URL is required")
	}
	return nil
}
