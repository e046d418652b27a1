package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

// Database drivers accepted by database_driver.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// legacyAPIBaseEnv is the variable the old web client read its backend origin from.
const legacyAPIBaseEnv = "next_public_api_base_url"

type Config struct {
	TelegramBotToken   string  `koanf:"telegram_bot_token"`
	TelegramAPIURL     string  `koanf:"telegram_api_url"`
	StoragePath        string  `koanf:"storage_path"`
	HTTPPort           string  `koanf:"http_port"`
	DatabaseDriver     string  `koanf:"database_driver"`
	DatabaseDSN        string  `koanf:"database_dsn"`
	UpdateInterval     int     `koanf:"update_interval"`
	InactiveAfterHours int     `koanf:"inactive_after_hours"`
	MockSearchDelayMS  int     `koanf:"mock_search_delay_ms"`
	APIBaseURL         string  `koanf:"api_base_url"`
	APITimeoutSeconds  int     `koanf:"api_timeout_seconds"`
	SeedFixtures       bool    `koanf:"seed_fixtures"`
	LogLevel           string  `koanf:"log_level"`
	AllowedUsers       []int64 `koanf:"-"`
	AppEnv             AppEnv  `koanf:"-"`
}

// BotEnabled reports whether a Telegram token was configured.
func (c *Config) BotEnabled() bool {
	return c.TelegramBotToken != ""
}

// InactiveAfter is the idle period after which an active channel is marked inactive.
func (c *Config) InactiveAfter() time.Duration {
	return time.Duration(c.InactiveAfterHours) * time.Hour
}

func (c *Config) MockSearchDelay() time.Duration {
	return time.Duration(c.MockSearchDelayMS) * time.Millisecond
}

func (c *Config) APITimeout() time.Duration {
	return time.Duration(c.APITimeoutSeconds) * time.Second
}

func Load() (*Config, error) {
	k := koanf.New(".")

	configFiles := []string{
		"config.yaml",
		"config.yml",
		"config.json",
		"config.toml",
	}

	configFile, found := lo.Find(configFiles, func(file string) bool {
		_, err := os.Stat(file)
		return err == nil
	})

	if found {
		var parser koanf.Parser
		ext := filepath.Ext(configFile)

		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		case ".toml":
			parser = toml.Parser()
		default:
			return nil, oops.Errorf("unsupported config file extension: %s", ext)
		}

		if err := k.Load(file.Provider(configFile), parser); err != nil {
			return nil, oops.With("config_file", configFile).Wrap(err)
		}
	}

	// Environment variables override config file values
	if err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.ToLower(s)
	}), nil); err != nil {
		return nil, oops.With("context", "loading environment variables").Wrap(err)
	}

	if k.String("api_base_url") == "" && k.String(legacyAPIBaseEnv) != "" {
		k.Set("api_base_url", k.String(legacyAPIBaseEnv))
	}

	defaults := map[string]any{
		"telegram_api_url":     "https://api.telegram.org",
		"storage_path":         "./data",
		"http_port":            "8080",
		"database_driver":      DriverSQLite,
		"update_interval":      60,
		"inactive_after_hours": 72,
		"mock_search_delay_ms": 1000,
		"api_base_url":         "http://localhost:8080",
		"api_timeout_seconds":  10,
		"app_env":              string(AppEnvProduction),
	}
	for key, value := range defaults {
		if k.String(key) == "" {
			k.Set(key, value)
		}
	}
	if k.String("database_dsn") == "" {
		k.Set("database_dsn", filepath.Join(k.String("storage_path"), "scout.db"))
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.With("context", "unmarshaling config").Wrap(err)
	}

	// allowed_users is a comma-separated string in env, a list in files
	if allowedUsers := k.Get("allowed_users"); allowedUsers != nil {
		switch v := allowedUsers.(type) {
		case string:
			cfg.AllowedUsers = ParseAllowedUsers(v)
		case []interface{}:
			cfg.AllowedUsers = lo.FilterMap(v, func(item interface{}, _ int) (int64, bool) {
				switch val := item.(type) {
				case int64:
					return val, true
				case int:
					return int64(val), true
				case float64:
					return int64(val), true
				case string:
					ids := ParseAllowedUsers(val)
					return lo.FirstOrEmpty(ids), len(ids) == 1
				default:
					return 0, false
				}
			})
		}
	}

	if appEnv, err := ParseAppEnv(k.String("app_env")); err == nil {
		cfg.AppEnv = appEnv
	} else {
		cfg.AppEnv = AppEnvProduction
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = lo.Ternary(cfg.AppEnv == AppEnvLocal || cfg.AppEnv == AppEnvDevelopment, "debug", "info")
	}

	cfg.DatabaseDriver = strings.ToLower(cfg.DatabaseDriver)
	if !lo.Contains([]string{DriverSQLite, DriverPostgres}, cfg.DatabaseDriver) {
		return nil, oops.With("database_driver", cfg.DatabaseDriver).Errorf("unsupported database driver")
	}
	if cfg.UpdateInterval <= 0 {
		return nil, oops.With("update_interval", cfg.UpdateInterval).Errorf("update_interval must be positive")
	}

	return &cfg, nil
}

// ParseAllowedUsers parses comma-separated user IDs string into []int64
func ParseAllowedUsers(s string) []int64 {
	if s == "" {
		return []int64{}
	}
	parts := strings.Split(s, ",")
	return lo.FilterMap(parts, func(part string, _ int) (int64, bool) {
		part = strings.TrimSpace(part)
		if part == "" {
			return 0, false
		}
		var id int64
		if _, err := fmt.Sscanf(part, "%d", &id); err == nil {
			return id, true
		}
		return 0, false
	})
}
