package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port                 int           `yaml:"port"`
	LoginRateLimitPerSec float64       `yaml:"login_rate_limit_per_sec"`
	LoginRateBurst       int           `yaml:"login_rate_burst"`
	PageCacheTTLSeconds  int           `yaml:"page_cache_ttl_seconds"`
	PageCacheTTL         time.Duration `yaml:"-"`
	// TrustedProxies lists the proxy IPs/CIDRs whose X-Forwarded-For is
	// believed. Empty means the client IP is always the peer address.
	TrustedProxies       []string      `yaml:"trusted_proxies"`
}

// UpstreamConfig describes how the front end reaches the upstream API.
type UpstreamConfig struct {
	BaseURL        string        `yaml:"base_url"`
	SessionCookie  string        `yaml:"session_cookie"`
	HTTPProxy      string        `yaml:"http_proxy"`
	TimeoutSeconds int           `yaml:"timeout_seconds"`
	Timeout        time.Duration `yaml:"-"` // Ignored by YAML parser
}

// LogConfig selects the zerolog level and output format.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

const (
	DefaultPort          = 3000
	DefaultBaseURL       = "http://nginx"
	DefaultSessionCookie = "seatapp_session"
)

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{
		Server: ServerConfig{
			LoginRateLimitPerSec: 5,
			LoginRateBurst:       10,
			PageCacheTTLSeconds:  300,
		},
	}
	cfg.applyDefaults()
	return cfg
}

// Load reads the configuration from the given path and applies environment overrides.
// An empty path or a file that does not exist yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		f, err := os.Open(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, err
		default:
			defer f.Close()
			if err := yaml.NewDecoder(f).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("failed to decode %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("WEB_PORT"); ok && strings.TrimSpace(v) != "" {
		port, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid WEB_PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	if v, ok := lookup("UPSTREAM_BASE_URL"); ok && v != "" {
		c.Upstream.BaseURL = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup("LOG_FORMAT"); ok && v != "" {
		c.Log.Format = v
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port <= 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.LoginRateLimitPerSec < 0 {
		c.Server.LoginRateLimitPerSec = 0
	}
	if c.Server.LoginRateBurst <= 0 {
		c.Server.LoginRateBurst = 1
	}
	if c.Server.PageCacheTTLSeconds < 0 {
		c.Server.PageCacheTTLSeconds = 0
	}
	c.Server.PageCacheTTL = time.Duration(c.Server.PageCacheTTLSeconds) * time.Second

	c.Upstream.BaseURL = strings.TrimRight(c.Upstream.BaseURL, "/")
	if c.Upstream.BaseURL == "" {
		c.Upstream.BaseURL = DefaultBaseURL
	}
	if c.Upstream.SessionCookie == "" {
		c.Upstream.SessionCookie = DefaultSessionCookie
	}
	if c.Upstream.TimeoutSeconds < 0 {
		c.Upstream.TimeoutSeconds = 0
	}
	c.Upstream.Timeout = time.Duration(c.Upstream.TimeoutSeconds) * time.Second

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
}
