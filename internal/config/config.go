package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/raine/telegram-sushi-bot/internal/scrape"
	"github.com/rs/zerolog"
)

const (
	AppName     = "telegram-sushi-bot"
	EnvFileName = "config.env"
)

// Config holds the process settings read from the environment.
type Config struct {
	BotToken        string
	AdminID         int64 // 0 disables failure alerts
	MenuURL         string
	CatalogPath     string
	DBPath          string
	RefreshInterval time.Duration // 0 disables periodic refresh
	ScrapeOnStart   bool
	StrictExtract   bool
	LogLevel        zerolog.Level
}

// LoadEnvFile loads environment variables from the config file in the user's
// config directory, then from .env in the working directory. Errors are
// ignored since the files may not exist.
func LoadEnvFile() {
	if configBase, err := os.UserConfigDir(); err == nil {
		_ = godotenv.Load(filepath.Join(configBase, AppName, EnvFileName))
	}
	_ = godotenv.Load()
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		BotToken:    os.Getenv("BOT_TOKEN"),
		MenuURL:     getEnv("MENU_URL", scrape.DefaultMenuURL),
		CatalogPath: getEnv("CATALOG_PATH", "menu.json"),
		DBPath:      getEnv("SUSHI_DB_PATH", "sushi.db"),
	}
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is not set")
	}

	if s := os.Getenv("ADMIN_TELEGRAM_ID"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("ADMIN_TELEGRAM_ID must be a valid integer: %w", err)
		}
		cfg.AdminID = id
	}

	var err error
	if cfg.RefreshInterval, err = time.ParseDuration(getEnv("REFRESH_INTERVAL", "0s")); err != nil {
		return nil, fmt.Errorf("REFRESH_INTERVAL must be a duration: %w", err)
	}
	if cfg.RefreshInterval < 0 {
		return nil, fmt.Errorf("REFRESH_INTERVAL must not be negative")
	}
	if cfg.ScrapeOnStart, err = strconv.ParseBool(getEnv("SCRAPE_ON_START", "true")); err != nil {
		return nil, fmt.Errorf("SCRAPE_ON_START must be a boolean: %w", err)
	}
	if cfg.StrictExtract, err = strconv.ParseBool(getEnv("STRICT_EXTRACTION", "false")); err != nil {
		return nil, fmt.Errorf("STRICT_EXTRACTION must be a boolean: %w", err)
	}
	if cfg.LogLevel, err = zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL is invalid: %w", err)
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}
