//go:build wireinject

package app

import (
	"context"

	"tradedesk/internal/config"

	"github.com/google/wire"
)

func buildAppWithWire(ctx context.Context, cfg *config.Config) (*App, error) {
	wire.Build(
		provideCredentials,
		provideExchange,
		providePrecisionCache,
		providePrecisionResolver,
		provideTradeResolver,
		provideHTTPServer,
		provideApp,
	)
	return nil, nil
}
