// Package trader turns abstract trade intents into concrete exchange orders.
package trader

import (
	"context"
	"fmt"
	"strings"

	"tradedesk/internal/gateway/exchange"
	"tradedesk/internal/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const defaultChaseDepth = 5

// PriceRounder truncates prices to a symbol's tick precision.
type PriceRounder interface {
	Round(ctx context.Context, symbol string, price decimal.Decimal) decimal.Decimal
}

type Options struct {
	// CancelBeforeBracket cancels all open orders for the symbol before a limit bracket,
	// unless the intent says otherwise.
	CancelBeforeBracket bool
	// ChaseDepth is the number of book levels fetched for a chase.
	ChaseDepth int
}

// Resolver is stateless across requests; one instance serves concurrent callers.
type Resolver struct {
	exchange  exchange.Exchange
	precision PriceRounder
	registry  *HandlerRegistry
	opts      Options
	newID     func() string
}

func NewResolver(ex exchange.Exchange, precision PriceRounder, opts Options) *Resolver {
	if opts.ChaseDepth <= 0 {
		opts.ChaseDepth = defaultChaseDepth
	}
	registry := NewHandlerRegistry()
	registry.RegisterDefaultHandlers()
	return &Resolver{
		exchange:  ex,
		precision: precision,
		registry:  registry,
		opts:      opts,
		newID:     func() string { return uuid.NewString() },
	}
}

// ResolveAndSubmit runs one intent to completion. It never returns an error: exchange
// failures, bad input and panics all come back as Success=false.
func (r *Resolver) ResolveAndSubmit(ctx context.Context, intent TradeIntent) (result TradeResult) {
	intent = intent.normalized()
	reqID := r.newID()
	defer func() {
		if rec := recover(); rec != nil {
			logger.Errorf("[trader] req=%s panic: %v", reqID, rec)
			result = failed(fmt.Sprintf("internal error: %v", rec))
		}
	}()

	logger.Infof("[trader] req=%s type=%s symbol=%s qty=%s", reqID, intent.Type, intent.Symbol, intent.Quantity)
	if strings.TrimSpace(intent.Symbol) == "" {
		return failed("symbol is required")
	}
	h, ok := r.registry.Get(intent.Type)
	if !ok {
		return failed("Invalid order type.")
	}
	result = h.Handle(ctx, &HandlerContext{resolver: r, requestID: reqID}, intent)
	logger.Infof("[trader] req=%s done success=%t orders=%d msg=%q", reqID, result.Success, len(result.Orders), result.Message)
	return result
}
