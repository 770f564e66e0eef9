package trader

import (
	"context"
	"fmt"

	"tradedesk/internal/gateway/exchange"

	"github.com/shopspring/decimal"
)

type conditionalSpec struct {
	label     string
	field     string
	orderType exchange.OrderType
	reference func(TradeIntent) decimal.Decimal
}

var conditionalSpecs = map[IntentType]conditionalSpec{
	IntentStop: {
		label:     "Stop-limit order",
		field:     "stop_price",
		orderType: exchange.OrderTypeStop,
		reference: func(i TradeIntent) decimal.Decimal { return i.StopPrice },
	},
	IntentMarketStop: {
		label:     "Market stop order",
		field:     "stop_price",
		orderType: exchange.OrderTypeStopMarket,
		reference: func(i TradeIntent) decimal.Decimal { return i.StopPrice },
	},
	IntentTakeProfit: {
		label:     "Take profit limit order",
		field:     "target_price",
		orderType: exchange.OrderTypeLimit,
		reference: func(i TradeIntent) decimal.Decimal { return i.TargetPrice },
	},
}

// ConditionalHandler serves stop, market_stop and take_profit: the side is inferred
// from the reference price against the market, and a trigger rejection flips it once.
type ConditionalHandler struct {
	intent IntentType
}

func (h *ConditionalHandler) Type() IntentType { return h.intent }

func (h *ConditionalHandler) Handle(ctx context.Context, hc *HandlerContext, intent TradeIntent) TradeResult {
	spec, ok := conditionalSpecs[h.intent]
	if !ok {
		return failed("Invalid order type.")
	}
	if !intent.Quantity.IsPositive() {
		return failed(errNonPositiveQuantity.Error())
	}
	raw := spec.reference(intent)
	if !raw.IsPositive() {
		return failed(fmt.Sprintf("%s must be positive", spec.field))
	}
	current, err := hc.CurrentPrice(ctx, intent.Symbol)
	if err != nil {
		return failed(err.Error())
	}
	ref := hc.Round(ctx, intent.Symbol, raw)
	primary, secondary, _ := SidesFor(h.intent, ref, current)

	out := hc.SubmitWithFallback(ctx, h.buildRequest(spec, intent, primary, ref), secondary)
	placed, ok := out.Placed()
	if !ok {
		return failed(out.FailureMessage())
	}
	return TradeResult{
		Success: true,
		Message: fmt.Sprintf("%s placed (%s side).", spec.label, placed.Request.Side),
		Orders:  []OrderReceipt{receiptFor(placed)},
	}
}

func (h *ConditionalHandler) buildRequest(spec conditionalSpec, intent TradeIntent, side exchange.Side, ref decimal.Decimal) exchange.OrderRequest {
	req := exchange.OrderRequest{
		Symbol:      intent.Symbol,
		Side:        side,
		Type:        spec.orderType,
		Quantity:    intent.Quantity,
		ReduceOnly:  true,
		TimeInForce: exchange.TimeInForceGTC,
	}
	switch spec.orderType {
	case exchange.OrderTypeStop:
		req.StopPrice = ref
		req.Price = ref
	case exchange.OrderTypeStopMarket:
		req.StopPrice = ref
	default:
		req.Price = ref
	}
	return req
}
