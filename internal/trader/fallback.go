package trader

import (
	"context"
	"errors"
	"fmt"

	"tradedesk/internal/gateway/exchange"
)

// SubmissionState is a step of the per-request submission state machine.
type SubmissionState string

const (
	StateReceived           SubmissionState = "RECEIVED"
	StateValidated          SubmissionState = "VALIDATED"
	StatePrimarySubmitted   SubmissionState = "PRIMARY_SUBMITTED"
	StateTriggerRejected    SubmissionState = "TRIGGER_REJECTED"
	StateSecondarySubmitted SubmissionState = "SECONDARY_SUBMITTED"
	StateSucceeded          SubmissionState = "SUCCEEDED"
	StateFailed             SubmissionState = "FAILED"
)

func (s SubmissionState) Terminal() bool {
	return s == StateSucceeded || s == StateFailed
}

var errNonPositiveQuantity = errors.New("quantity must be positive")

// SubmitResult is the outcome of exactly one order submission.
type SubmitResult struct {
	Request exchange.OrderRequest
	OrderID string
	Err     error
}

func (r SubmitResult) OK() bool { return r.Err == nil }

func submitOnce(ctx context.Context, entry exchange.OrderEntry, req exchange.OrderRequest) SubmitResult {
	if !req.Quantity.IsPositive() {
		return SubmitResult{Request: req, Err: errNonPositiveQuantity}
	}
	if !req.Side.Valid() {
		return SubmitResult{Request: req, Err: fmt.Errorf("invalid side %q", req.Side)}
	}
	if err := checkPrices(req); err != nil {
		return SubmitResult{Request: req, Err: err}
	}
	id, err := entry.SubmitOrder(ctx, req)
	return SubmitResult{Request: req, OrderID: id, Err: err}
}

// checkPrices rejects a resolved price that is missing or not positive. A zero price
// means "unset" to the gateway and would otherwise be dropped from the request.
func checkPrices(req exchange.OrderRequest) error {
	switch req.Type {
	case exchange.OrderTypeLimit, exchange.OrderTypeStop:
		if !req.Price.IsPositive() {
			return fmt.Errorf("price must be positive, got %s", req.Price)
		}
	}
	switch req.Type {
	case exchange.OrderTypeStop, exchange.OrderTypeStopMarket:
		if !req.StopPrice.IsPositive() {
			return fmt.Errorf("stop price must be positive, got %s", req.StopPrice)
		}
	}
	return nil
}

// FallbackOutcome records the path taken through the state machine.
type FallbackOutcome struct {
	Path      []SubmissionState
	Primary   SubmitResult
	Secondary *SubmitResult
	// Err is set when the request never reached the exchange.
	Err error
}

func (o FallbackOutcome) State() SubmissionState {
	if len(o.Path) == 0 {
		return StateReceived
	}
	return o.Path[len(o.Path)-1]
}

// Placed returns the submission that the exchange accepted, if any.
func (o FallbackOutcome) Placed() (SubmitResult, bool) {
	if o.State() != StateSucceeded {
		return SubmitResult{}, false
	}
	if o.Secondary != nil {
		return *o.Secondary, true
	}
	return o.Primary, true
}

func (o *FallbackOutcome) to(s SubmissionState) {
	o.Path = append(o.Path, s)
}

// SubmitWithFallback submits primary; if the exchange refuses it because it would
// trigger immediately, it submits the same order once more on the secondary side.
// Any other refusal ends the request. There is no further retry.
func SubmitWithFallback(ctx context.Context, entry exchange.OrderEntry, primary exchange.OrderRequest, secondary exchange.Side) FallbackOutcome {
	out := FallbackOutcome{Path: []SubmissionState{StateReceived}}
	switch {
	case !primary.Quantity.IsPositive():
		out.Err = errNonPositiveQuantity
	case !primary.Side.Valid() || !secondary.Valid():
		out.Err = fmt.Errorf("invalid sides primary=%q secondary=%q", primary.Side, secondary)
	case primary.Side == secondary:
		out.Err = fmt.Errorf("secondary side must differ from primary (%s)", primary.Side)
	}
	if out.Err != nil {
		out.to(StateFailed)
		return out
	}
	out.to(StateValidated)

	out.Primary = submitOnce(ctx, entry, primary)
	out.to(StatePrimarySubmitted)
	if out.Primary.OK() {
		out.to(StateSucceeded)
		return out
	}
	if !exchange.IsTriggerRejection(out.Primary.Err) {
		out.to(StateFailed)
		return out
	}

	out.to(StateTriggerRejected)
	second := submitOnce(ctx, entry, primary.WithSide(secondary))
	out.Secondary = &second
	out.to(StateSecondarySubmitted)
	if second.OK() {
		out.to(StateSucceeded)
	} else {
		out.to(StateFailed)
	}
	return out
}

// FailureMessage renders a failed outcome for the caller.
func (o FallbackOutcome) FailureMessage() string {
	switch {
	case o.Err != nil:
		return o.Err.Error()
	case o.Secondary != nil && o.Secondary.Err != nil:
		return fmt.Sprintf("Both sides failed. Primary: %v, Secondary: %v", o.Primary.Err, o.Secondary.Err)
	case o.Primary.Err != nil:
		return o.Primary.Err.Error()
	default:
		return "order not placed"
	}
}
