// Package gateway selects the exchange backend named in the config.
package gateway

import (
	"fmt"
	"strings"

	"tradedesk/internal/config"
	"tradedesk/internal/gateway/binance"
	"tradedesk/internal/gateway/exchange"
)

func NewExchangeFromConfig(cfg *config.Config, creds config.Credentials) (exchange.Exchange, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	ex := cfg.Exchange
	switch strings.ToLower(strings.TrimSpace(ex.Name)) {
	case "", "binance", "binance-futures":
		return binance.New(binance.Config{
			RESTBaseURL:       ex.RESTBaseURL,
			HTTPTimeout:       ex.HTTPTimeout(),
			ProxyEnabled:      ex.Proxy.Enabled,
			RESTProxyURL:      ex.Proxy.RESTURL,
			CircuitThreshold:  ex.Circuit.Threshold,
			CircuitCooldown:   ex.Circuit.Cooldown(),
			ClientOrderPrefix: cfg.Trading.ClientOrderPrefix,
		}, binance.Credentials{APIKey: creds.APIKey, APISecret: creds.APISecret})
	default:
		return nil, fmt.Errorf("unsupported exchange: %s", ex.Name)
	}
}
