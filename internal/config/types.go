package config

import (
	"strings"
	"time"
)

// Config is the service configuration loaded from YAML.
type Config struct {
	App       AppConfig       `toml:"app"`
	HTTP      HTTPConfig      `toml:"http"`
	Exchange  ExchangeConfig  `toml:"exchange"`
	Precision PrecisionConfig `toml:"precision"`
	Trading   TradingConfig   `toml:"trading"`
}

type AppConfig struct {
	Env      string `toml:"env"`
	LogLevel string `toml:"log_level"`
	LogPath  string `toml:"log_path"`
}

type HTTPConfig struct {
	Addr string `toml:"addr"`
	// CORSOrigins enables CORS for the listed origins; empty disables it.
	CORSOrigins []string `toml:"cors_origins"`
}

type ExchangeConfig struct {
	Name               string        `toml:"name"`
	RESTBaseURL        string        `toml:"rest_base_url"`
	HTTPTimeoutSeconds int           `toml:"http_timeout_seconds"`
	EnvFile            string        `toml:"env_file"`
	APIKeyEnv          string        `toml:"api_key_env"`
	APISecretEnv       string        `toml:"api_secret_env"`
	Proxy              ProxyConfig   `toml:"proxy"`
	Circuit            CircuitConfig `toml:"circuit"`
}

func (e ExchangeConfig) HTTPTimeout() time.Duration {
	return time.Duration(e.HTTPTimeoutSeconds) * time.Second
}

type ProxyConfig struct {
	Enabled bool   `toml:"enabled"`
	RESTURL string `toml:"rest_url"`
}

func (p *ProxyConfig) normalize() {
	p.RESTURL = strings.TrimSpace(p.RESTURL)
	if p.RESTURL == "" {
		p.Enabled = false
	}
}

// CircuitConfig trips the exchange breaker after Threshold consecutive transport
// failures and keeps it open for CooldownSeconds.
type CircuitConfig struct {
	Threshold       int `toml:"threshold"`
	CooldownSeconds int `toml:"cooldown_seconds"`
}

func (c CircuitConfig) Cooldown() time.Duration {
	return time.Duration(c.CooldownSeconds) * time.Second
}

type PrecisionConfig struct {
	// Default is used when a symbol's tick size cannot be resolved.
	Default int `toml:"default"`
	// SeedPath points to an optional YAML file of known symbol precisions.
	SeedPath string `toml:"seed_path"`
}

type TradingConfig struct {
	CancelBeforeBracket bool   `toml:"cancel_before_bracket"`
	ChaseDepth          int    `toml:"chase_depth"`
	ClientOrderPrefix   string `toml:"client_order_prefix"`
}

// keySet tracks the field paths explicitly set in the config files.
type keySet map[string]struct{}

func (k keySet) mark(path string) {
	path = strings.ToLower(strings.TrimSpace(path))
	if path == "" {
		return
	}
	k[path] = struct{}{}
}

func (k keySet) isSet(path string) bool {
	if len(k) == 0 {
		return false
	}
	path = strings.ToLower(strings.TrimSpace(path))
	if path == "" {
		return false
	}
	_, ok := k[path]
	return ok
}

type fieldDefault struct {
	key   string
	need  func() bool
	apply func()
}
