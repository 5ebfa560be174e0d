package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 24*time.Hour, cfg.Reminders.Cooldown)

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt_secret")
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := writeFile(t, dir, "splitapp.yaml", `
server:
  port: 9000
log:
  level: debug
database:
  driver: sqlite
  path: /tmp/from-yaml.db
auth:
  jwt_secret: yaml-secret
  token_duration: 2h
reminders:
  schedule: "@daily"
`)
	writeFile(t, dir, ".env", "JWT_SECRET=dotenv-secret\nSMTP_HOST=smtp.dotenv\n")

	// .env only fills variables that are unset.
	t.Setenv("JWT_SECRET", "")
	os.Unsetenv("JWT_SECRET")
	t.Setenv("PORT", "9100")
	t.Setenv("SMTP_HOST", "smtp.env")
	t.Setenv("REMINDER_COOLDOWN", "90m")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port, "env beats yaml")
	assert.Equal(t, "debug", cfg.Log.Level, "yaml beats default")
	assert.Equal(t, "/tmp/from-yaml.db", cfg.Database.Path)
	assert.Equal(t, "dotenv-secret", cfg.Auth.JWTSecret, ".env beats yaml")
	assert.Equal(t, "smtp.env", cfg.Email.Host, "env beats .env")
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenDuration)
	assert.Equal(t, 90*time.Minute, cfg.Reminders.Cooldown)
	assert.Equal(t, "@daily", cfg.Reminders.Schedule)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := writeFile(t, dir, "bad.yaml", "server: [")
	_, err = Load(bad)
	assert.Error(t, err)

	t.Setenv("PORT", "eighty")
	_, err = Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"ok", func(c *Config) {}, ""},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }, "unknown database driver"},
		{"postgres without url", func(c *Config) { c.Database.Driver = "postgres" }, "DATABASE_URL"},
		{"postgres with url", func(c *Config) {
			c.Database.Driver = "postgres"
			c.Database.URL = "postgres://localhost/splitapp"
		}, ""},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "invalid port"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Auth.JWTSecret = "secret"
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
