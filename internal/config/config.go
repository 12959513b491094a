package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	BotToken    string `env:"TOKEN,required"`
	WebhookHost string `env:"WEBHOOK_HOST"`
	Port        string `env:"PORT" envDefault:"8080"`
	MetricsAddr string `env:"METRICS_ADDR" envDefault:":9090"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	SpamLimit         int    `env:"SPAM_LIMIT" envDefault:"5"`
	SpamWindowSeconds int    `env:"SPAM_WINDOW_SECONDS" envDefault:"10"`
	MuteSeconds       int    `env:"MUTE_SECONDS" envDefault:"600"`
	ThalaLimit        int    `env:"THALA_LIMIT" envDefault:"3"`
	QuotaFilePath     string `env:"QUOTA_FILE_PATH" envDefault:"./data.json"`
	Timezone          string `env:"TIMEZONE" envDefault:"UTC"`

	WorkerCount     int  `env:"WORKER_COUNT" envDefault:"8"`
	EnableTelemetry bool `env:"ENABLE_TELEMETRY" envDefault:"true"`
}

func (c *Config) SpamWindow() time.Duration {
	return time.Duration(c.SpamWindowSeconds) * time.Second
}

func (c *Config) MuteDuration() time.Duration {
	return time.Duration(c.MuteSeconds) * time.Second
}

func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Location resolves the timezone the civil date (and so the daily quota
// rollover) is computed in.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
