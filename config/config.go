// Package config centralizes runtime settings. Values come from environment
// variables (A11Y_ prefix) via viper, with flag bindings layered on top by the
// CLI commands.
package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Settings holds all runtime configuration.
type Settings struct {
	Port         int
	AuditDB      string
	LogLevel     string
	FetchTimeout time.Duration

	NIMAPIKey  string
	NIMBaseURL string
	NIMModel   string
}

// Init registers defaults and enables A11Y_-prefixed environment variables.
// Call once, before any command reads settings.
func Init() {
	viper.SetEnvPrefix("A11Y")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("port", 8000)
	viper.SetDefault("audit_db", "audits.db")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("fetch_timeout", "30s")

	viper.SetDefault("nim_api_key", "")
	viper.SetDefault("nim_base_url", "")
	viper.SetDefault("nim_model", "")
}

// Load reads the current settings snapshot.
func Load() Settings {
	return Settings{
		Port:         viper.GetInt("port"),
		AuditDB:      viper.GetString("audit_db"),
		LogLevel:     viper.GetString("log_level"),
		FetchTimeout: viper.GetDuration("fetch_timeout"),
		NIMAPIKey:    viper.GetString("nim_api_key"),
		NIMBaseURL:   viper.GetString("nim_base_url"),
		NIMModel:     viper.GetString("nim_model"),
	}
}

// SlogLevel maps the configured log level string to a slog.Level.
func (s Settings) SlogLevel() slog.Level {
	switch strings.ToLower(s.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
