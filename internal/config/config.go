// Package config loads server settings from defaults, an optional YAML
// file, an optional .env file and the environment, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the full server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Receipts  ReceiptsConfig  `yaml:"receipts"`
	Email     EmailConfig     `yaml:"email"`
	Reminders RemindersConfig `yaml:"reminders"`
}

type ServerConfig struct {
	Port       int    `yaml:"port"`
	StaticPath string `yaml:"static_path"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"` // sqlite or postgres
	Path   string `yaml:"path"`
	URL    string `yaml:"url"`
}

type AuthConfig struct {
	JWTSecret     string        `yaml:"jwt_secret"`
	TokenDuration time.Duration `yaml:"token_duration"`
}

// ReceiptsConfig configures the extraction backend. Scanning is disabled
// without an API key.
type ReceiptsConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// EmailConfig configures SMTP. Reminders are only logged without a host.
type EmailConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

type RemindersConfig struct {
	RedisAddr string        `yaml:"redis_addr"`
	Cooldown  time.Duration `yaml:"cooldown"`
	Schedule  string        `yaml:"schedule"` // cron spec; empty disables
}

// Default returns a Config with development defaults.
func Default() *Config {
	return &Config{
		Server:   ServerConfig{Port: 8080, StaticPath: "./static"},
		Log:      LogConfig{Level: "info", Format: "text"},
		Database: DatabaseConfig{Driver: "sqlite", Path: "./data/splitapp.db"},
		Auth:     AuthConfig{TokenDuration: 24 * time.Hour},
		Receipts: ReceiptsConfig{
			BaseURL: "https://api.openai.com/v1",
			Model:   "gpt-4o-mini",
		},
		Email: EmailConfig{
			Port: 587,
			From: "Split App <noreply@localhost>",
		},
		Reminders: RemindersConfig{Cooldown: 24 * time.Hour},
	}
}

// Load builds the configuration. path may be empty; a missing .env file is
// not an error. Variables already set in the environment win over .env.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	var errs []error
	num := func(key string, dst *int) {
		if v, ok := lookup(key); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}
	dur := func(key string, dst *time.Duration) {
		if v, ok := lookup(key); ok && v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = d
		}
	}

	num("PORT", &c.Server.Port)
	str("STATIC_PATH", &c.Server.StaticPath)
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)
	str("DB_DRIVER", &c.Database.Driver)
	str("DB_PATH", &c.Database.Path)
	str("DATABASE_URL", &c.Database.URL)
	str("JWT_SECRET", &c.Auth.JWTSecret)
	dur("TOKEN_DURATION", &c.Auth.TokenDuration)
	str("OPENAI_API_KEY", &c.Receipts.APIKey)
	str("OPENAI_BASE_URL", &c.Receipts.BaseURL)
	str("OPENAI_MODEL", &c.Receipts.Model)
	str("SMTP_HOST", &c.Email.Host)
	num("SMTP_PORT", &c.Email.Port)
	str("SMTP_USERNAME", &c.Email.Username)
	str("SMTP_PASSWORD", &c.Email.Password)
	str("SMTP_FROM", &c.Email.From)
	str("REDIS_ADDR", &c.Reminders.RedisAddr)
	dur("REMINDER_COOLDOWN", &c.Reminders.Cooldown)
	str("REMINDER_SCHEDULE", &c.Reminders.Schedule)

	return errors.Join(errs...)
}

// Validate reports settings the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("auth.jwt_secret (JWT_SECRET) is required"))
	}
	switch strings.ToLower(c.Database.Driver) {
	case "sqlite":
		if c.Database.Path == "" {
			errs = append(errs, errors.New("database.path is required for sqlite"))
		}
	case "postgres":
		if c.Database.URL == "" {
			errs = append(errs, errors.New("database.url (DATABASE_URL) is required for postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown database driver %q", c.Database.Driver))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %d", c.Server.Port))
	}
	if c.Auth.TokenDuration <= 0 {
		errs = append(errs, errors.New("auth.token_duration must be positive"))
	}
	return errors.Join(errs...)
}
