// Package config loads service settings from an optional TOML file and the
// environment. Environment variables win over the file.
package config

import (
	"errors"
	"fmt"
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"healthtrack/internal/stats"
)

type Config struct {
	Addr        string `toml:"addr"`
	WebDir      string `toml:"web_dir"`
	DatabaseURL string `toml:"database_url"`
	// Timezone names the location used for calendar periods and local days.
	Timezone      string `toml:"timezone"`
	DefaultPeriod string `toml:"default_period"`

	// logging
	LogLevel    string `toml:"log_level"`
	LogFormat   string `toml:"log_format"`
	LogFile     string `toml:"log_file"`
	LogToStdout bool   `toml:"log_to_stdout"`

	SessionCleanupInterval duration `toml:"session_cleanup_interval"`
	// DisableAuth serves every request as a single local user.
	DisableAuth bool `toml:"disable_auth"`

	OIDC        OIDC        `toml:"oidc"`
	ForwardAuth ForwardAuth `toml:"forward_auth"`
}

type OIDC struct {
	IssuerURL    string `toml:"issuer_url"`
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RedirectURL  string `toml:"redirect_url"`
}

// Enabled reports whether SSO is configured.
func (o OIDC) Enabled() bool {
	return o.IssuerURL != "" && o.ClientID != ""
}

// ForwardAuth trusts a user name header set by an authenticating reverse
// proxy. It is off unless Header is set.
type ForwardAuth struct {
	// Header is the request header carrying the user name, e.g. "Remote-User".
	Header string `toml:"header"`
	// TrustedProxies lists the addresses or CIDR ranges allowed to set Header.
	TrustedProxies []string `toml:"trusted_proxies"`
}

// Enabled reports whether forward auth is configured.
func (f ForwardAuth) Enabled() bool {
	return f.Header != ""
}

// Prefixes parses TrustedProxies. A bare address matches only itself.
func (f ForwardAuth) Prefixes() ([]netip.Prefix, error) {
	out := make([]netip.Prefix, 0, len(f.TrustedProxies))
	for _, raw := range f.TrustedProxies {
		raw = strings.TrimSpace(raw)
		if strings.Contains(raw, "/") {
			p, err := netip.ParsePrefix(raw)
			if err != nil {
				return nil, err
			}
			out = append(out, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(raw)
		if err != nil {
			return nil, err
		}
		addr = addr.Unmap()
		out = append(out, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return out, nil
}

// duration lets TOML files use strings such as "15m".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func Default() *Config {
	return &Config{
		Addr:                   ":8080",
		WebDir:                 "web",
		Timezone:               "Local",
		DefaultPeriod:          string(stats.PeriodWeek),
		LogLevel:               "info",
		LogFormat:              "text",
		LogToStdout:            true,
		SessionCleanupInterval: duration{time.Hour},
	}
}

// Load reads path (skipped when empty) on top of the defaults, applies
// environment overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"ADDR":                &c.Addr,
		"WEB_DIR":             &c.WebDir,
		"DATABASE_URL":        &c.DatabaseURL,
		"TIMEZONE":            &c.Timezone,
		"DEFAULT_PERIOD":      &c.DefaultPeriod,
		"LOG_LEVEL":           &c.LogLevel,
		"LOG_FORMAT":          &c.LogFormat,
		"LOG_FILE":            &c.LogFile,
		"OIDC_ISSUER_URL":     &c.OIDC.IssuerURL,
		"OIDC_CLIENT_ID":      &c.OIDC.ClientID,
		"OIDC_CLIENT_SECRET":  &c.OIDC.ClientSecret,
		"OIDC_REDIRECT_URL":   &c.OIDC.RedirectURL,
		"FORWARD_AUTH_HEADER": &c.ForwardAuth.Header,
	}
	for key, dst := range strs {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	if v := os.Getenv("DISABLE_AUTH"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("DISABLE_AUTH: %w", err)
		}
		c.DisableAuth = b
	}
	if v := os.Getenv("TRUSTED_PROXIES"); v != "" {
		c.ForwardAuth.TrustedProxies = strings.Split(v, ",")
	}
	if v := os.Getenv("SESSION_CLEANUP_INTERVAL"); v != "" {
		if err := c.SessionCleanupInterval.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("SESSION_CLEANUP_INTERVAL: %w", err)
		}
	}
	return nil
}

// Validate checks values that cannot be caught by decoding.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return errors.New("addr is required")
	}
	if _, err := stats.ParsePeriod(c.DefaultPeriod); err != nil {
		return fmt.Errorf("default_period: %w", err)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("timezone: %w", err)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("log_format must be \"text\" or \"json\", got %q", c.LogFormat)
	}
	if c.SessionCleanupInterval.Duration <= 0 {
		return errors.New("session_cleanup_interval must be positive")
	}
	if c.ForwardAuth.Enabled() {
		if len(c.ForwardAuth.TrustedProxies) == 0 {
			return errors.New("forward_auth.trusted_proxies is required when forward_auth.header is set")
		}
		if _, err := c.ForwardAuth.Prefixes(); err != nil {
			return fmt.Errorf("forward_auth.trusted_proxies: %w", err)
		}
	}
	return nil
}

// Location resolves Timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// Period returns the validated default reporting period.
func (c *Config) Period() stats.Period {
	p, _ := stats.ParsePeriod(c.DefaultPeriod)
	return p
}
