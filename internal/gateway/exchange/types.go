package exchange

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Opposite flips BUY and SELL.
func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

func (s Side) Valid() bool { return s == SideBuy || s == SideSell }

// ParseSide accepts any casing; the bool is false for anything but buy/sell.
func ParseSide(raw string) (Side, bool) {
	s := Side(strings.ToUpper(strings.TrimSpace(raw)))
	return s, s.Valid()
}

type OrderType string

const (
	OrderTypeLimit      OrderType = "LIMIT"
	OrderTypeStop       OrderType = "STOP"
	OrderTypeStopMarket OrderType = "STOP_MARKET"
	OrderTypeMarket     OrderType = "MARKET"
)

const TimeInForceGTC = "GTC"

// OrderRequest is one concrete order submission. Zero Price/StopPrice mean "not set".
type OrderRequest struct {
	Symbol        string
	Side          Side
	Type          OrderType
	Quantity      decimal.Decimal
	Price         decimal.Decimal
	StopPrice     decimal.Decimal
	ReduceOnly    bool
	TimeInForce   string
	ClientOrderID string
}

// WithSide returns a copy of the request on the other side of the book, keeping
// price, trigger and quantity identical.
func (r OrderRequest) WithSide(side Side) OrderRequest {
	out := r
	out.Side = side
	out.ClientOrderID = ""
	return out
}

type PriceLevel struct {
	Price    decimal.Decimal
	Quantity decimal.Decimal
}

type OrderBook struct {
	Symbol string
	Bids   []PriceLevel
	Asks   []PriceLevel
}

// BestBid reports the highest bid, if any.
func (b OrderBook) BestBid() (decimal.Decimal, bool) {
	if len(b.Bids) == 0 {
		return decimal.Zero, false
	}
	return b.Bids[0].Price, true
}

// BestAsk reports the lowest ask, if any.
func (b OrderBook) BestAsk() (decimal.Decimal, bool) {
	if len(b.Asks) == 0 {
		return decimal.Zero, false
	}
	return b.Asks[0].Price, true
}

const FilterPrice = "PRICE_FILTER"

// Filter is one instrument trading rule, e.g. {Type: PRICE_FILTER, Params: {tickSize: "0.01"}}.
type Filter struct {
	Type   string
	Params map[string]string
}

// TickSize scans filters for the price filter's minimum increment.
func TickSize(filters []Filter) (string, bool) {
	for _, f := range filters {
		if !strings.EqualFold(f.Type, FilterPrice) {
			continue
		}
		tick := strings.TrimSpace(f.Params["tickSize"])
		return tick, tick != ""
	}
	return "", false
}
