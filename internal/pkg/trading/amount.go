// Package trading provides trading calculation utilities.
package trading

import "github.com/shopspring/decimal"

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// ProtectiveLevels places a stop-loss and a take-profit symmetrically around the
// current price. rrPercent is a percentage (5 means 5%). For a long position the stop
// sits below and the target above; a short mirrors it.
func ProtectiveLevels(current, rrPercent decimal.Decimal, long bool) (stopLoss, takeProfit decimal.Decimal) {
	rr := rrPercent.Div(hundred)
	below := current.Mul(one.Sub(rr))
	above := current.Mul(one.Add(rr))
	if long {
		return below, above
	}
	return above, below
}

// CloseQuantity is the order size that fully closes a signed position amount.
func CloseQuantity(positionAmt decimal.Decimal) decimal.Decimal {
	return positionAmt.Abs()
}
