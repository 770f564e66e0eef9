package trader

import (
	"tradedesk/internal/gateway/exchange"

	"github.com/shopspring/decimal"
)

// invertedIntents maps the price-compared intents to whether they invert the stop
// mapping. A stop above the market buys the breakout; a take-profit above the market
// sells into it.
var invertedIntents = map[IntentType]bool{
	IntentStop:       false,
	IntentMarketStop: false,
	IntentTakeProfit: true,
}

// InferSides picks the primary and secondary side from where the reference price sits
// relative to the current price. Ties count as "not above".
func InferSides(reference, current decimal.Decimal, inverted bool) (primary, secondary exchange.Side) {
	primary = exchange.SideSell
	if reference.GreaterThan(current) {
		primary = exchange.SideBuy
	}
	if inverted {
		primary = primary.Opposite()
	}
	return primary, primary.Opposite()
}

// SidesFor applies InferSides with the intent's inversion flag. ok is false for intent
// types whose side is not derived from price.
func SidesFor(t IntentType, reference, current decimal.Decimal) (primary, secondary exchange.Side, ok bool) {
	inverted, ok := invertedIntents[t]
	if !ok {
		return "", "", false
	}
	primary, secondary = InferSides(reference, current, inverted)
	return primary, secondary, true
}

// SideForPosition returns the closing side for a signed position amount: a long closes
// with SELL, a short with BUY. ok is false when flat.
func SideForPosition(amount decimal.Decimal) (exchange.Side, bool) {
	switch amount.Sign() {
	case 1:
		return exchange.SideSell, true
	case -1:
		return exchange.SideBuy, true
	default:
		return "", false
	}
}
