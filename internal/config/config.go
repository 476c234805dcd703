package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Prefix is prepended to every variable name, e.g. QUESTBOARD_API_BASE.
const Prefix = "QUESTBOARD"

// Config holds the settings shared by the CLI and the dev proxy.
// Environment variables are parsed from the QUESTBOARD_ prefix.
type Config struct {
	// Client side
	APIBase     string        `envconfig:"API_BASE" default:"http://localhost:5173"`
	APIPrefix   string        `envconfig:"API_PREFIX" default:"/api"`
	Session     string        `envconfig:"SESSION" default:""`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`

	// Logging
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Dev proxy
	ProxyListen         string        `envconfig:"PROXY_LISTEN" default:":5173"`
	ProxyPrefix         string        `envconfig:"PROXY_PREFIX" default:"/api"`
	ProxyTarget         string        `envconfig:"PROXY_TARGET" default:"http://localhost:8080"`
	ProxyInsecureTLS    bool          `envconfig:"PROXY_INSECURE_TLS" default:"true"`
	ProxyRequireBackend bool          `envconfig:"PROXY_REQUIRE_BACKEND" default:"false"`
	ProxyProbeTimeout   time.Duration `envconfig:"PROXY_PROBE_TIMEOUT" default:"10s"`
}

// New creates a Config by parsing environment variables and validating them.
func New() (*Config, error) {
	cfg, err := FromEnv()
	if err != nil {
		return nil, err
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Debug().
		Str("api_base", cfg.APIBase).
		Str("api_prefix", cfg.APIPrefix).
		Bool("session_present", cfg.Session != "").
		Dur("http_timeout", cfg.HTTPTimeout).
		Str("log_level", cfg.LogLevel).
		Str("proxy_listen", cfg.ProxyListen).
		Str("proxy_prefix", cfg.ProxyPrefix).
		Str("proxy_target", cfg.ProxyTarget).
		Msg("Configuration loaded")

	return cfg, nil
}

// FromEnv parses environment variables without validating values, for
// callers that apply their own overrides before ResolveDefaults.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	return &cfg, nil
}

// NewForTesting returns the defaults without reading the environment.
func NewForTesting() *Config {
	return &Config{
		APIBase:           "http://localhost:5173",
		APIPrefix:         "/api",
		HTTPTimeout:       30 * time.Second,
		LogLevel:          "info",
		ProxyListen:       ":5173",
		ProxyPrefix:       "/api",
		ProxyTarget:       "http://localhost:8080",
		ProxyInsecureTLS:  true,
		ProxyProbeTimeout: 10 * time.Second,
	}
}

// ResolveDefaults validates addresses and normalizes path prefixes in place.
// It is idempotent, so callers may run it again after applying flag overrides.
func (c *Config) ResolveDefaults() error {
	if err := requireAbsolute("API_BASE", c.APIBase); err != nil {
		return err
	}
	c.APIBase = strings.TrimRight(c.APIBase, "/")

	prefix, err := normalizePrefix("API_PREFIX", c.APIPrefix)
	if err != nil {
		return err
	}
	c.APIPrefix = prefix

	if err := requireAbsolute("PROXY_TARGET", c.ProxyTarget); err != nil {
		return err
	}
	proxyPrefix, err := normalizePrefix("PROXY_PREFIX", c.ProxyPrefix)
	if err != nil {
		return err
	}
	if proxyPrefix == "" {
		return fmt.Errorf("PROXY_PREFIX must not be empty or /")
	}
	c.ProxyPrefix = proxyPrefix

	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be > 0, got %s", c.HTTPTimeout)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (zerolog.Level, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return zerolog.InfoLevel, fmt.Errorf("unsupported LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	if lvl == zerolog.NoLevel {
		return zerolog.InfoLevel, nil
	}
	return lvl, nil
}

// ProxyTargetURL returns the parsed proxy target.
func (c *Config) ProxyTargetURL() (*url.URL, error) {
	return url.Parse(c.ProxyTarget)
}

func requireAbsolute(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("%s must be an absolute http(s) URL, got %q", name, raw)
	}
	return nil
}

// normalizePrefix ensures a leading slash and drops trailing ones; "/" becomes "".
func normalizePrefix(name, p string) (string, error) {
	p = strings.TrimRight(strings.TrimSpace(p), "/")
	if p == "" {
		return "", nil
	}
	if !strings.HasPrefix(p, "/") {
		return "", fmt.Errorf("%s must start with /, got %q", name, p)
	}
	return p, nil
}
