package config

import (
	"fmt"
	"net/url"
	"strings"
)

// maxClientPrefixLen leaves room for a 32-character uuid within the exchange's 36-character limit.
const maxClientPrefixLen = 4

func validate(c *Config) error {
	if err := c.App.validate(); err != nil {
		return err
	}
	if err := c.HTTP.validate(); err != nil {
		return err
	}
	if err := c.Exchange.validate(); err != nil {
		return err
	}
	if err := c.Precision.validate(); err != nil {
		return err
	}
	if err := c.Trading.validate(); err != nil {
		return err
	}
	return nil
}

func (a *AppConfig) validate() error {
	switch a.LogLevel {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("app.log_level must be one of debug/info/warn/error, got %q", a.LogLevel)
	}
}

func (h *HTTPConfig) validate() error {
	if strings.TrimSpace(h.Addr) == "" {
		return fmt.Errorf("http.addr is required")
	}
	return nil
}

func (e *ExchangeConfig) validate() error {
	if e.Name != defaultExchangeName {
		return fmt.Errorf("exchange.name %q is not supported (only %s)", e.Name, defaultExchangeName)
	}
	if _, err := url.ParseRequestURI(e.RESTBaseURL); err != nil {
		return fmt.Errorf("exchange.rest_base_url is invalid: %w", err)
	}
	if e.HTTPTimeoutSeconds <= 0 {
		return fmt.Errorf("exchange.http_timeout_seconds must be > 0")
	}
	if strings.TrimSpace(e.APIKeyEnv) == "" || strings.TrimSpace(e.APISecretEnv) == "" {
		return fmt.Errorf("exchange.api_key_env and exchange.api_secret_env are required")
	}
	if e.Proxy.Enabled {
		if _, err := url.Parse(e.Proxy.RESTURL); err != nil {
			return fmt.Errorf("exchange.proxy.rest_url is invalid: %w", err)
		}
	}
	if e.Circuit.Threshold <= 0 {
		return fmt.Errorf("exchange.circuit.threshold must be > 0")
	}
	if e.Circuit.CooldownSeconds <= 0 {
		return fmt.Errorf("exchange.circuit.cooldown_seconds must be > 0")
	}
	return nil
}

func (p *PrecisionConfig) validate() error {
	if p.Default < 0 || p.Default > 18 {
		return fmt.Errorf("precision.default must be within [0,18], got %d", p.Default)
	}
	return nil
}

func (t *TradingConfig) validate() error {
	if t.ChaseDepth <= 0 {
		return fmt.Errorf("trading.chase_depth must be > 0")
	}
	if len(t.ClientOrderPrefix) > maxClientPrefixLen {
		return fmt.Errorf("trading.client_order_prefix must be at most %d characters", maxClientPrefixLen)
	}
	return nil
}
