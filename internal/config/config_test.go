package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalConfig = `
[database]
host = "localhost"
user = "scheduler"
password = "secret"
dbname = "interviews"
`

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(minimalConfig)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, 62, cfg.Scheduling.MaxRangeDays)
	assert.Equal(t, 3, cfg.Scheduling.TxRetries)
	assert.False(t, cfg.Scheduling.StrictCapacity)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 30, cfg.RateLimit.Limit)
	assert.False(t, cfg.RateLimit.TrustForwardedFor)
}

func TestParse_Overrides(t *testing.T) {
	cfg, err := Parse(minimalConfig + `
[scheduling]
strict_capacity = true
max_range_days = 14

[rate_limit]
enabled = true
redis_addr = "redis:6379"
limit = 5
window_seconds = 10
fail_open = true
trust_forwarded_for = true
`)
	require.NoError(t, err)

	assert.True(t, cfg.Scheduling.StrictCapacity)
	assert.Equal(t, 14, cfg.Scheduling.MaxRangeDays)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, "redis:6379", cfg.RateLimit.RedisAddr)
	assert.Equal(t, 5, cfg.RateLimit.Limit)
	assert.True(t, cfg.RateLimit.FailOpen)
	assert.True(t, cfg.RateLimit.TrustForwardedFor)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse(`
[server]
http_port = 70000

[database]
host = ""
dbname = ""
max_open_conns = 2
max_idle_conns = 5
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.http_port")
	assert.Contains(t, err.Error(), "database.host")
	assert.Contains(t, err.Error(), "max_idle_conns")
}

func TestParse_BadTOML(t *testing.T) {
	_, err := Parse("[database\nhost=")
	assert.Error(t, err)
}

func TestLoad_EnvOverridesPassword(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(minimalConfig), 0o600))
	t.Setenv("DB_PASSWORD", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Contains(t, cfg.Database.DSN(), "password=from-env")
	assert.Contains(t, cfg.Database.DSN(), "dbname=interviews")
}
