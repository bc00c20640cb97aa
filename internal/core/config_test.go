package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	config, err := LoadConfig()
	require.NoError(t, err)

	tt := config.Features.TikTok
	assert.Equal(t, 3000, config.Server.Port)
	assert.True(t, tt.Enabled)
	assert.Equal(t, "fringebiscuit", tt.DefaultUser)
	assert.Equal(t, 5, tt.DefaultCount)
	assert.Equal(t, "https://www.tiktok.com", tt.BaseURL)
	assert.Equal(t, DefaultUserAgent, tt.UserAgent)
	assert.Equal(t, "en-US,en;q=0.9", tt.AcceptLanguage)
	assert.Equal(t, "https://www.tiktok.com/embed.js", tt.EmbedScriptURL)
	assert.Zero(t, tt.FetchTimeout)
	assert.False(t, tt.FetchLog)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("APP_PORT", "8081")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("TIKTOK_DEFAULT_USER", "alice")
	t.Setenv("TIKTOK_DEFAULT_COUNT", "3")
	t.Setenv("TIKTOK_FETCH_TIMEOUT", "15s")
	t.Setenv("TIKTOK_FETCH_LOG", "on")

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8081, config.Server.Port)
	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "alice", config.Features.TikTok.DefaultUser)
	assert.Equal(t, 3, config.Features.TikTok.DefaultCount)
	assert.Equal(t, 15*time.Second, config.Features.TikTok.FetchTimeout)
	assert.True(t, config.Features.TikTok.FetchLog)
}

func TestLoadConfig_Invalid(t *testing.T) {
	cases := map[string][2]string{
		"port":      {"APP_PORT", "70000"},
		"log level": {"LOG_LEVEL", "chatty"},
		"count":     {"TIKTOK_DEFAULT_COUNT", "-2"},
		"base url":  {"TIKTOK_BASE_URL", "not a url"},
	}

	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])

			_, err := LoadConfig()
			require.Error(t, err)
			assert.Equal(t, ErrCodeConfiguration, ErrorCode(err))
		})
	}
}

func TestLoadConfig_FetchLogNeedsDatabasePath(t *testing.T) {
	t.Setenv("TIKTOK_FETCH_LOG", "true")
	config, err := LoadConfig()
	require.NoError(t, err)

	config.Database.Path = ""
	err = config.Validate()
	require.Error(t, err)
	assert.Equal(t, ErrCodeConfiguration, ErrorCode(err))

	config.Features.TikTok.FetchLog = false
	assert.NoError(t, config.Validate())
}

func TestIsFeatureEnabled(t *testing.T) {
	config := &Config{Features: FeatureConfig{TikTok: TikTokConfig{Enabled: true}}}

	assert.True(t, config.IsFeatureEnabled("tiktok"))
	assert.True(t, config.IsFeatureEnabled("TikTok"))
	assert.False(t, config.IsFeatureEnabled("uptime"))
}
