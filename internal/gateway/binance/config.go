package binance

import (
	"strings"
	"time"
)

const (
	defaultRESTBaseURL      = "https://fapi.binance.com"
	defaultHTTPTimeout      = 15 * time.Second
	defaultCircuitThreshold = 5
	defaultCircuitCooldown  = 30 * time.Second
	defaultClientPrefix     = "td"

	// Binance caps newClientOrderId at 36 characters.
	maxClientOrderIDLen = 36
)

type Config struct {
	RESTBaseURL string
	HTTPTimeout time.Duration

	ProxyEnabled bool
	RESTProxyURL string

	CircuitThreshold int
	CircuitCooldown  time.Duration

	// ClientOrderPrefix is prepended to generated client order ids.
	ClientOrderPrefix string
}

// Credentials sign private endpoints. Empty values are allowed for public market data.
type Credentials struct {
	APIKey    string
	APISecret string
}

func (c *Config) withDefaults() Config {
	out := *c
	out.RESTBaseURL = strings.TrimRight(strings.TrimSpace(out.RESTBaseURL), "/")
	if out.RESTBaseURL == "" {
		out.RESTBaseURL = defaultRESTBaseURL
	}
	if out.HTTPTimeout <= 0 {
		out.HTTPTimeout = defaultHTTPTimeout
	}
	out.RESTProxyURL = strings.TrimSpace(out.RESTProxyURL)
	if out.CircuitThreshold <= 0 {
		out.CircuitThreshold = defaultCircuitThreshold
	}
	if out.CircuitCooldown <= 0 {
		out.CircuitCooldown = defaultCircuitCooldown
	}
	out.ClientOrderPrefix = strings.TrimSpace(out.ClientOrderPrefix)
	if out.ClientOrderPrefix == "" {
		out.ClientOrderPrefix = defaultClientPrefix
	}
	return out
}
