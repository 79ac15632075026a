package config

import (
	"testing"
	"time"

	"github.com/raine/telegram-sushi-bot/internal/scrape"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"BOT_TOKEN", "ADMIN_TELEGRAM_ID", "MENU_URL", "CATALOG_PATH", "SUSHI_DB_PATH",
		"REFRESH_INTERVAL", "SCRAPE_ON_START", "STRICT_EXTRACTION", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOT_TOKEN", "123:abc")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "123:abc", cfg.BotToken)
	assert.Equal(t, int64(0), cfg.AdminID)
	assert.Equal(t, scrape.DefaultMenuURL, cfg.MenuURL)
	assert.Equal(t, "menu.json", cfg.CatalogPath)
	assert.Equal(t, "sushi.db", cfg.DBPath)
	assert.Equal(t, time.Duration(0), cfg.RefreshInterval)
	assert.True(t, cfg.ScrapeOnStart)
	assert.False(t, cfg.StrictExtract)
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("ADMIN_TELEGRAM_ID", "4242")
	t.Setenv("REFRESH_INTERVAL", "6h")
	t.Setenv("SCRAPE_ON_START", "false")
	t.Setenv("STRICT_EXTRACTION", "true")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CATALOG_PATH", "/var/lib/sushi/menu.json")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, int64(4242), cfg.AdminID)
	assert.Equal(t, 6*time.Hour, cfg.RefreshInterval)
	assert.False(t, cfg.ScrapeOnStart)
	assert.True(t, cfg.StrictExtract)
	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel)
	assert.Equal(t, "/var/lib/sushi/menu.json", cfg.CatalogPath)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing token", map[string]string{}},
		{"bad admin id", map[string]string{"BOT_TOKEN": "t", "ADMIN_TELEGRAM_ID": "admin"}},
		{"bad interval", map[string]string{"BOT_TOKEN": "t", "REFRESH_INTERVAL": "daily"}},
		{"negative interval", map[string]string{"BOT_TOKEN": "t", "REFRESH_INTERVAL": "-1h"}},
		{"bad bool", map[string]string{"BOT_TOKEN": "t", "SCRAPE_ON_START": "maybe"}},
		{"bad level", map[string]string{"BOT_TOKEN": "t", "LOG_LEVEL": "loud"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
