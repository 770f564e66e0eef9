package trader

import (
	"context"
	"fmt"

	"tradedesk/internal/gateway/exchange"
	"tradedesk/internal/logger"

	"github.com/shopspring/decimal"
)

// IntentHandler resolves one intent type into exchange submissions.
type IntentHandler interface {
	// Type returns the intent type this handler processes.
	Type() IntentType

	// Handle never returns an error; every failure is folded into the TradeResult.
	Handle(ctx context.Context, hc *HandlerContext, intent TradeIntent) TradeResult
}

// HandlerContext gives handlers the resolver's collaborators for one request.
type HandlerContext struct {
	resolver  *Resolver
	requestID string
}

func (c *HandlerContext) RequestID() string { return c.requestID }

func (c *HandlerContext) Exchange() exchange.Exchange { return c.resolver.exchange }

func (c *HandlerContext) Options() Options { return c.resolver.opts }

// Round truncates price to the symbol's tick precision.
func (c *HandlerContext) Round(ctx context.Context, symbol string, price decimal.Decimal) decimal.Decimal {
	return c.resolver.precision.Round(ctx, symbol, price)
}

func (c *HandlerContext) Submit(ctx context.Context, req exchange.OrderRequest) SubmitResult {
	res := submitOnce(ctx, c.resolver.exchange, req)
	c.logSubmission(res)
	return res
}

func (c *HandlerContext) SubmitWithFallback(ctx context.Context, req exchange.OrderRequest, secondary exchange.Side) FallbackOutcome {
	out := SubmitWithFallback(ctx, c.resolver.exchange, req, secondary)
	c.logSubmission(out.Primary)
	if out.Secondary != nil {
		c.logSubmission(*out.Secondary)
	}
	logger.Debugf("[trader] req=%s fallback path=%v", c.requestID, out.Path)
	return out
}

// CurrentPrice fetches the last traded price, fresh for every request.
func (c *HandlerContext) CurrentPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	px, err := c.resolver.exchange.LastPrice(ctx, symbol)
	if err != nil {
		return decimal.Zero, fmt.Errorf("fetch price for %s: %w", symbol, err)
	}
	return px, nil
}

func (c *HandlerContext) applyLeverage(ctx context.Context, intent TradeIntent) error {
	if intent.Leverage <= 0 {
		return nil
	}
	if err := c.resolver.exchange.ChangeLeverage(ctx, intent.Symbol, intent.Leverage); err != nil {
		return fmt.Errorf("change leverage: %w", err)
	}
	return nil
}

func (c *HandlerContext) logSubmission(res SubmitResult) {
	req := res.Request
	if req.Side == "" && req.Type == "" {
		return
	}
	if res.OK() {
		logger.Infof("[trader] req=%s placed %s %s %s qty=%s price=%s stop=%s reduce_only=%t id=%s",
			c.requestID, req.Symbol, req.Side, req.Type, req.Quantity, req.Price, req.StopPrice, req.ReduceOnly, res.OrderID)
		return
	}
	logger.Warnf("[trader] req=%s rejected %s %s %s qty=%s price=%s stop=%s err=%v",
		c.requestID, req.Symbol, req.Side, req.Type, req.Quantity, req.Price, req.StopPrice, res.Err)
}
