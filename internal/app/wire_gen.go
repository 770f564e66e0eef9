//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject

package app

import (
	"context"
	"tradedesk/internal/config"
)

func buildAppWithWire(ctx context.Context, cfg *config.Config) (*App, error) {
	credentials, err := provideCredentials(cfg)
	if err != nil {
		return nil, err
	}
	exchange, err := provideExchange(cfg, credentials)
	if err != nil {
		return nil, err
	}
	cache, err := providePrecisionCache(cfg)
	if err != nil {
		return nil, err
	}
	resolver := providePrecisionResolver(cfg, exchange, cache)
	traderResolver := provideTradeResolver(cfg, exchange, resolver)
	server, err := provideHTTPServer(cfg, traderResolver)
	if err != nil {
		return nil, err
	}
	app := provideApp(cfg, exchange, cache, server, traderResolver)
	return app, nil
}
