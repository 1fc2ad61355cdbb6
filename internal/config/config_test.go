package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))
	return dir
}

func TestLoadConfigDefaults(t *testing.T) {
	dir := writeConfig(t, `
database:
  driver: sqlite
  path: test.db
jwt:
  secret: dev-secret
storage:
  local_path: `+filepath.Join(t.TempDir(), "uploads")+`
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpireTime)
	assert.Equal(t, 300, cfg.Redis.CatalogTTLSeconds)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 6000, cfg.RateLimit.MaxRequests)
	assert.Equal(t, dir, cfg.Path)
	assert.DirExists(t, cfg.Storage.LocalPath)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	dir := writeConfig(t, `
database:
  driver: sqlite
jwt:
  secret: dev-secret
storage:
  local_path: `+filepath.Join(t.TempDir(), "uploads")+`
`)
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SERVER_PORT", "9090")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "9090", cfg.Server.Port)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(t.TempDir())
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:    ServerConfig{Mode: "debug"},
			Database:  DatabaseConfig{Driver: "mysql"},
			JWT:       JWTConfig{Secret: "short"},
			RateLimit: RateLimitConfig{MaxRequests: 10, WindowMinutes: 1},
		}
	}
	assert.NoError(t, valid().Validate())

	cfg := valid()
	cfg.Database.Driver = "oracle"
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Server.Mode = "release"
	assert.Error(t, cfg.Validate(), "release mode requires a long secret")

	cfg = valid()
	cfg.JWT.Secret = ""
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.RateLimit.WindowMinutes = 0
	assert.Error(t, cfg.Validate())
}
