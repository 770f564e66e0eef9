package app

import (
	"errors"
	"fmt"

	"tradedesk/internal/config"
	"tradedesk/internal/gateway"
	"tradedesk/internal/gateway/exchange"
	"tradedesk/internal/logger"
	"tradedesk/internal/precision"
	"tradedesk/internal/trader"
	tradehttp "tradedesk/internal/transport/http/trade"
)

// provideCredentials tolerates missing keys: market data still works and order calls
// will be refused by the exchange.
func provideCredentials(cfg *config.Config) (config.Credentials, error) {
	creds, err := config.LoadCredentials(cfg.Exchange)
	if errors.Is(err, config.ErrMissingCredentials) {
		logger.Warnf("[app] %v; order entry will fail until they are set", err)
		return creds, nil
	}
	return creds, err
}

func provideExchange(cfg *config.Config, creds config.Credentials) (exchange.Exchange, error) {
	ex, err := gateway.NewExchangeFromConfig(cfg, creds)
	if err != nil {
		return nil, fmt.Errorf("init exchange: %w", err)
	}
	return ex, nil
}

func providePrecisionCache(cfg *config.Config) (*precision.Cache, error) {
	path := cfg.Precision.SeedPath
	if path == "" {
		return precision.NewCache(), nil
	}
	seed, err := precision.LoadSeed(path)
	if err != nil {
		return nil, err
	}
	logger.Infof("[precision] seeded %d symbols from %s", len(seed), path)
	return precision.NewSeededCache(seed), nil
}

func providePrecisionResolver(cfg *config.Config, ex exchange.Exchange, cache *precision.Cache) *precision.Resolver {
	return precision.NewResolver(ex, cache, precision.WithDefault(int32(cfg.Precision.Default)))
}

func provideTradeResolver(cfg *config.Config, ex exchange.Exchange, prec *precision.Resolver) *trader.Resolver {
	return trader.NewResolver(ex, prec, trader.Options{
		CancelBeforeBracket: cfg.Trading.CancelBeforeBracket,
		ChaseDepth:          cfg.Trading.ChaseDepth,
	})
}

func provideHTTPServer(cfg *config.Config, resolver *trader.Resolver) (*tradehttp.Server, error) {
	return tradehttp.NewServer(tradehttp.ServerConfig{
		Addr:        cfg.HTTP.Addr,
		CORSOrigins: cfg.HTTP.CORSOrigins,
		Executor:    resolver,
	})
}

func provideApp(cfg *config.Config, ex exchange.Exchange, cache *precision.Cache, server *tradehttp.Server, resolver *trader.Resolver) *App {
	return &App{
		cfg:      cfg,
		server:   server,
		resolver: resolver,
		Summary:  newStartupSummary(cfg, ex.Name(), cache.Len()),
	}
}
