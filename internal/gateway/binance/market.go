package binance

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tradedesk/internal/gateway/exchange"
	"tradedesk/internal/pkg/convert"

	"github.com/adshao/go-binance/v2/futures"
	"github.com/shopspring/decimal"
)

// depthLimits are the book sizes the depth endpoint accepts.
var depthLimits = []int{5, 10, 20, 50, 100, 500, 1000}

func depthLimit(n int) int {
	for _, l := range depthLimits {
		if n <= l {
			return l
		}
	}
	return depthLimits[len(depthLimits)-1]
}

func unavailable(what, sym string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", exchange.ErrMarketDataUnavailable, what, sym, err)
}

func (c *Client) LastPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	sym, err := c.symbol(symbol)
	if err != nil {
		return decimal.Zero, err
	}
	var prices []*futures.SymbolPrice
	err = c.do("ticker price", func() error {
		var callErr error
		prices, callErr = c.client.NewListPricesService().Symbol(sym).Do(ctx)
		return callErr
	})
	if err != nil {
		return decimal.Zero, unavailable("ticker", sym, err)
	}
	for _, p := range prices {
		if p == nil || !strings.EqualFold(p.Symbol, sym) {
			continue
		}
		px, err := decimal.NewFromString(p.Price)
		if err != nil {
			return decimal.Zero, unavailable("ticker", sym, err)
		}
		return px, nil
	}
	return decimal.Zero, unavailable("ticker", sym, errors.New("no price returned"))
}

func (c *Client) OrderBookTop(ctx context.Context, symbol string, depth int) (exchange.OrderBook, error) {
	sym, err := c.symbol(symbol)
	if err != nil {
		return exchange.OrderBook{}, err
	}
	if depth <= 0 {
		depth = depthLimits[0]
	}
	var res *futures.DepthResponse
	err = c.do("depth", func() error {
		var callErr error
		res, callErr = c.client.NewDepthService().Symbol(sym).Limit(depthLimit(depth)).Do(ctx)
		return callErr
	})
	if err != nil {
		return exchange.OrderBook{}, unavailable("depth", sym, err)
	}
	book := exchange.OrderBook{Symbol: sym}
	for _, b := range res.Bids {
		if lvl, ok := priceLevel(b.Price, b.Quantity); ok && len(book.Bids) < depth {
			book.Bids = append(book.Bids, lvl)
		}
	}
	for _, a := range res.Asks {
		if lvl, ok := priceLevel(a.Price, a.Quantity); ok && len(book.Asks) < depth {
			book.Asks = append(book.Asks, lvl)
		}
	}
	return book, nil
}

func priceLevel(price, qty string) (exchange.PriceLevel, bool) {
	p, err := decimal.NewFromString(price)
	if err != nil {
		return exchange.PriceLevel{}, false
	}
	q, err := decimal.NewFromString(qty)
	if err != nil {
		return exchange.PriceLevel{}, false
	}
	return exchange.PriceLevel{Price: p, Quantity: q}, true
}

// PositionFor nets every position row for the symbol, so hedge-mode accounts report
// long minus short.
func (c *Client) PositionFor(ctx context.Context, symbol string) (decimal.Decimal, error) {
	sym, err := c.symbol(symbol)
	if err != nil {
		return decimal.Zero, err
	}
	var rows []*futures.PositionRisk
	err = c.do("position risk", func() error {
		var callErr error
		rows, callErr = c.client.NewGetPositionRiskService().Symbol(sym).Do(ctx)
		return callErr
	})
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, row := range rows {
		if row == nil || !strings.EqualFold(row.Symbol, sym) {
			continue
		}
		amt, err := decimal.NewFromString(row.PositionAmt)
		if err != nil {
			return decimal.Zero, fmt.Errorf("parse position amount %q: %w", row.PositionAmt, err)
		}
		total = total.Add(amt)
	}
	return total, nil
}

func (c *Client) FiltersFor(ctx context.Context, symbol string) ([]exchange.Filter, error) {
	sym, err := c.symbol(symbol)
	if err != nil {
		return nil, err
	}
	var info *futures.ExchangeInfo
	err = c.do("exchange info", func() error {
		var callErr error
		info, callErr = c.client.NewExchangeInfoService().Do(ctx)
		return callErr
	})
	if err != nil {
		return nil, err
	}
	for _, s := range info.Symbols {
		if !strings.EqualFold(s.Symbol, sym) {
			continue
		}
		out := make([]exchange.Filter, 0, len(s.Filters))
		for _, raw := range s.Filters {
			f := exchange.Filter{Params: make(map[string]string, len(raw))}
			for k, v := range raw {
				if k == "filterType" {
					f.Type = convert.ToString(v)
					continue
				}
				f.Params[k] = convert.ToString(v)
			}
			out = append(out, f)
		}
		return out, nil
	}
	return nil, fmt.Errorf("symbol %s not listed", sym)
}
