package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthtrack/internal/stats"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, stats.PeriodWeek, cfg.Period())
	assert.Equal(t, time.Hour, cfg.SessionCleanupInterval.Duration)
	assert.False(t, cfg.OIDC.Enabled())
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
addr = ":9090"
timezone = "Asia/Tokyo"
default_period = "month"
log_format = "json"
session_cleanup_interval = "15m"

[oidc]
issuer_url = "https://id.example.com"
client_id = "healthtrack"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, stats.PeriodMonth, cfg.Period())
	assert.Equal(t, 15*time.Minute, cfg.SessionCleanupInterval.Duration)
	assert.True(t, cfg.OIDC.Enabled())

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tokyo", loc.String())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `addr = ":9090"`)
	t.Setenv("ADDR", ":7070")
	t.Setenv("DATABASE_URL", "postgres://localhost/healthtrack")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Addr)
	assert.Equal(t, "postgres://localhost/healthtrack", cfg.DatabaseURL)
}

func TestLoad_DisableAuthEnv(t *testing.T) {
	t.Setenv("DISABLE_AUTH", "true")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.DisableAuth)

	t.Setenv("DISABLE_AUTH", "maybe")
	_, err = Load("")
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad period", `default_period = "year"`},
		{"bad timezone", `timezone = "Mars/Olympus"`},
		{"bad log format", `log_format = "xml"`},
		{"bad duration", `session_cleanup_interval = "soon"`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoad_ForwardAuthOffByDefault(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.False(t, cfg.ForwardAuth.Enabled())
}

func TestLoad_ForwardAuthFile(t *testing.T) {
	path := writeConfig(t, `
[forward_auth]
header = "Remote-User"
trusted_proxies = ["10.0.0.0/8", "192.168.1.5", "::1"]
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.True(t, cfg.ForwardAuth.Enabled())

	prefixes, err := cfg.ForwardAuth.Prefixes()
	require.NoError(t, err)
	require.Len(t, prefixes, 3)
	assert.Equal(t, "10.0.0.0/8", prefixes[0].String())
	assert.Equal(t, "192.168.1.5/32", prefixes[1].String())
	assert.Equal(t, "::1/128", prefixes[2].String())
}

func TestLoad_ForwardAuthEnv(t *testing.T) {
	t.Setenv("FORWARD_AUTH_HEADER", "X-Forwarded-User")
	t.Setenv("TRUSTED_PROXIES", "172.16.0.0/12, 127.0.0.1")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "X-Forwarded-User", cfg.ForwardAuth.Header)

	prefixes, err := cfg.ForwardAuth.Prefixes()
	require.NoError(t, err)
	assert.Len(t, prefixes, 2)
}

func TestLoad_ForwardAuthRequiresTrustedProxies(t *testing.T) {
	t.Setenv("FORWARD_AUTH_HEADER", "Remote-User")
	_, err := Load("")
	assert.Error(t, err)

	t.Setenv("TRUSTED_PROXIES", "not-an-ip")
	_, err = Load("")
	assert.Error(t, err)
}
