package exchange

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMarketDataUnavailable = errors.New("market data unavailable")
	ErrCircuitOpen           = errors.New("exchange circuit open")
)

// TriggerRejectCode is the exchange code for "Order would immediately trigger".
const TriggerRejectCode = "-2021"

const triggerRejectPhrase = "would immediately trigger"

// Rejection is a validation or business-rule refusal reported by the exchange.
type Rejection struct {
	Code    int64
	Message string
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("code=%d, msg=%s", r.Code, r.Message)
}

// IsTriggerRejection classifies an order failure as "would trigger immediately".
// The match runs on the rendered error text: the code substring, or the phrase in any case.
func IsTriggerRejection(err error) bool {
	if err == nil {
		return false
	}
	text := err.Error()
	return strings.Contains(text, TriggerRejectCode) ||
		strings.Contains(strings.ToLower(text), triggerRejectPhrase)
}

// AsRejection unwraps a *Rejection from err.
func AsRejection(err error) (*Rejection, bool) {
	var rej *Rejection
	if errors.As(err, &rej) {
		return rej, true
	}
	return nil, false
}
