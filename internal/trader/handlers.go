package trader

import (
	"context"
	"fmt"
	"strings"

	"tradedesk/internal/gateway/exchange"
	"tradedesk/internal/logger"

	"github.com/shopspring/decimal"
)

// BracketLimitHandler places a BUY limit and a SELL limit framing an expected range.
// The two legs are independent: both are always attempted.
type BracketLimitHandler struct{}

func (h *BracketLimitHandler) Type() IntentType { return IntentLimit }

func (h *BracketLimitHandler) Handle(ctx context.Context, hc *HandlerContext, intent TradeIntent) TradeResult {
	if !intent.Quantity.IsPositive() {
		return failed(errNonPositiveQuantity.Error())
	}
	if !intent.BuyPrice.IsPositive() || !intent.SellPrice.IsPositive() {
		return failed("buy_price and sell_price must be positive")
	}
	cancel := hc.Options().CancelBeforeBracket
	if intent.CancelOpenOrders != nil {
		cancel = *intent.CancelOpenOrders
	}
	if cancel {
		if err := hc.Exchange().CancelOpenOrders(ctx, intent.Symbol); err != nil {
			return failed(fmt.Sprintf("cancel open orders: %v", err))
		}
	}
	if err := hc.applyLeverage(ctx, intent); err != nil {
		return failed(err.Error())
	}

	legs := []struct {
		label string
		side  exchange.Side
		price decimal.Decimal
	}{
		{"Buy limit", exchange.SideBuy, intent.BuyPrice},
		{"Sell limit", exchange.SideSell, intent.SellPrice},
	}
	var (
		parts   []string
		results []SubmitResult
	)
	for _, leg := range legs {
		res := hc.Submit(ctx, exchange.OrderRequest{
			Symbol:      intent.Symbol,
			Side:        leg.side,
			Type:        exchange.OrderTypeLimit,
			Quantity:    intent.Quantity,
			Price:       hc.Round(ctx, intent.Symbol, leg.price),
			TimeInForce: exchange.TimeInForceGTC,
		})
		results = append(results, res)
		if res.OK() {
			parts = append(parts, fmt.Sprintf("%s placed at %s", leg.label, res.Request.Price))
		} else {
			parts = append(parts, fmt.Sprintf("%s failed: %v", leg.label, res.Err))
		}
	}
	out := aggregateLegs(results, parts)
	if len(out.Orders) == len(legs) {
		out.Message = "Limit orders placed."
	}
	return out
}

// ChaseHandler joins the front of the book on the requester's side: best bid for a
// BUY, best ask for a SELL. Without a usable book it falls back to the last price.
type ChaseHandler struct{}

func (h *ChaseHandler) Type() IntentType { return IntentChase }

func (h *ChaseHandler) Handle(ctx context.Context, hc *HandlerContext, intent TradeIntent) TradeResult {
	side, ok := exchange.ParseSide(intent.Side)
	if !ok {
		return failed(fmt.Sprintf("invalid side %q", intent.Side))
	}
	if !intent.Quantity.IsPositive() {
		return failed(errNonPositiveQuantity.Error())
	}
	price, err := h.frontOfBook(ctx, hc, intent.Symbol, side)
	if err != nil {
		return failed(err.Error())
	}
	res := hc.Submit(ctx, exchange.OrderRequest{
		Symbol:      intent.Symbol,
		Side:        side,
		Type:        exchange.OrderTypeLimit,
		Quantity:    intent.Quantity,
		Price:       hc.Round(ctx, intent.Symbol, price),
		TimeInForce: exchange.TimeInForceGTC,
	})
	if !res.OK() {
		return failed(res.Err.Error())
	}
	return TradeResult{
		Success: true,
		Message: fmt.Sprintf("Chase limit %s order placed at %s.", side, res.Request.Price),
		Orders:  []OrderReceipt{receiptFor(res)},
	}
}

func (h *ChaseHandler) frontOfBook(ctx context.Context, hc *HandlerContext, symbol string, side exchange.Side) (decimal.Decimal, error) {
	book, err := hc.Exchange().OrderBookTop(ctx, symbol, hc.Options().ChaseDepth)
	if err == nil {
		best, ok := book.BestAsk()
		if side == exchange.SideBuy {
			best, ok = book.BestBid()
		}
		if ok && best.IsPositive() {
			return best, nil
		}
		err = fmt.Errorf("%w: empty %s side", exchange.ErrMarketDataUnavailable, strings.ToLower(string(side)))
	}
	logger.Warnf("[trader] req=%s order book unusable for %s, using last price: %v", hc.RequestID(), symbol, err)
	return hc.CurrentPrice(ctx, symbol)
}

// MarketHandler sends one unconditional market order on the caller's side.
type MarketHandler struct{}

func (h *MarketHandler) Type() IntentType { return IntentMarket }

func (h *MarketHandler) Handle(ctx context.Context, hc *HandlerContext, intent TradeIntent) TradeResult {
	side, ok := exchange.ParseSide(intent.Side)
	if !ok {
		return failed(fmt.Sprintf("invalid side %q", intent.Side))
	}
	if !intent.Quantity.IsPositive() {
		return failed(errNonPositiveQuantity.Error())
	}
	if err := hc.applyLeverage(ctx, intent); err != nil {
		return failed(err.Error())
	}
	res := hc.Submit(ctx, exchange.OrderRequest{
		Symbol:   intent.Symbol,
		Side:     side,
		Type:     exchange.OrderTypeMarket,
		Quantity: intent.Quantity,
	})
	if !res.OK() {
		return failed(res.Err.Error())
	}
	return TradeResult{
		Success: true,
		Message: fmt.Sprintf("Market %s order executed.", strings.ToLower(string(side))),
		Orders:  []OrderReceipt{receiptFor(res)},
	}
}

// aggregateLegs folds independent legs into one result: success when any leg was placed.
func aggregateLegs(results []SubmitResult, parts []string) TradeResult {
	out := TradeResult{Message: strings.Join(parts, " | ")}
	for _, res := range results {
		if res.OK() {
			out.Success = true
			out.Orders = append(out.Orders, receiptFor(res))
		}
	}
	return out
}
