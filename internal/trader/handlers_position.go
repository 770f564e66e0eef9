package trader

import (
	"context"
	"fmt"

	"tradedesk/internal/gateway/exchange"
	"tradedesk/internal/pkg/trading"
)

// AutoProtectHandler sets a stop-loss and a take-profit around the current price for
// the open position. The legs are independent; neither blocks the other.
type AutoProtectHandler struct{}

func (h *AutoProtectHandler) Type() IntentType { return IntentAutoSLTP }

func (h *AutoProtectHandler) Handle(ctx context.Context, hc *HandlerContext, intent TradeIntent) TradeResult {
	if !intent.RRPercentage.IsPositive() {
		return failed("rr_percentage must be positive")
	}
	current, err := hc.CurrentPrice(ctx, intent.Symbol)
	if err != nil {
		return failed(err.Error())
	}
	amount, err := hc.Exchange().PositionFor(ctx, intent.Symbol)
	if err != nil {
		return failed(fmt.Sprintf("Error getting position: %v", err))
	}
	side, ok := SideForPosition(amount)
	if !ok {
		return failed("No open position found for this symbol.")
	}

	slRaw, tpRaw := trading.ProtectiveLevels(current, intent.RRPercentage, amount.IsPositive())
	qty := trading.CloseQuantity(amount)
	sl := hc.Round(ctx, intent.Symbol, slRaw)
	tp := hc.Round(ctx, intent.Symbol, tpRaw)

	slRes := hc.Submit(ctx, exchange.OrderRequest{
		Symbol:      intent.Symbol,
		Side:        side,
		Type:        exchange.OrderTypeStop,
		Quantity:    qty,
		Price:       sl,
		StopPrice:   sl,
		ReduceOnly:  true,
		TimeInForce: exchange.TimeInForceGTC,
	})
	tpRes := hc.Submit(ctx, exchange.OrderRequest{
		Symbol:      intent.Symbol,
		Side:        side,
		Type:        exchange.OrderTypeLimit,
		Quantity:    qty,
		Price:       tp,
		ReduceOnly:  true,
		TimeInForce: exchange.TimeInForceGTC,
	})

	parts := []string{
		legMessage("Stop Loss", slRes),
		legMessage("Take Profit", tpRes),
	}
	return aggregateLegs([]SubmitResult{slRes, tpRes}, parts)
}

func legMessage(label string, res SubmitResult) string {
	if res.OK() {
		return fmt.Sprintf("%s set at %s", label, res.Request.Price)
	}
	return fmt.Sprintf("%s failed: %v", label, res.Err)
}
