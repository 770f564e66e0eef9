// Package exchange defines the collaborator contracts the order resolver talks to.
// A backend (Binance USD-M futures today) implements all of them behind Exchange.
package exchange

import (
	"context"

	"github.com/shopspring/decimal"
)

// OrderEntry submits and cancels orders.
type OrderEntry interface {
	// SubmitOrder returns the exchange order id. Business-rule refusals come back as *Rejection.
	SubmitOrder(ctx context.Context, req OrderRequest) (string, error)

	CancelOpenOrders(ctx context.Context, symbol string) error

	ChangeLeverage(ctx context.Context, symbol string, leverage int) error
}

// MarketData failures wrap ErrMarketDataUnavailable.
type MarketData interface {
	LastPrice(ctx context.Context, symbol string) (decimal.Decimal, error)

	// OrderBookTop returns up to depth levels per side, best price first.
	OrderBookTop(ctx context.Context, symbol string, depth int) (OrderBook, error)
}

type Account interface {
	// PositionFor returns the signed position amount; zero means flat.
	PositionFor(ctx context.Context, symbol string) (decimal.Decimal, error)
}

type InstrumentMeta interface {
	FiltersFor(ctx context.Context, symbol string) ([]Filter, error)
}

type Exchange interface {
	Name() string
	OrderEntry
	MarketData
	Account
	InstrumentMeta
}
