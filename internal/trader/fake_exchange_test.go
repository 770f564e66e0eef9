package trader

import (
	"context"
	"fmt"
	"sync"

	"tradedesk/internal/gateway/exchange"
	"tradedesk/internal/precision"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// fakeExchange records submissions and answers from a script.
type fakeExchange struct {
	mu sync.Mutex

	last    decimal.Decimal
	lastErr error

	book    exchange.OrderBook
	bookErr error
	depths  []int

	position    decimal.Decimal
	positionErr error

	// rejections[i] answers the i-th submission; missing entries accept.
	rejections []error
	submitted  []exchange.OrderRequest

	cancelled   []string
	cancelErr   error
	leverage    map[string]int
	leverageErr error

	panicOnSubmit bool
}

func (f *fakeExchange) Name() string { return "fake" }

func (f *fakeExchange) SubmitOrder(_ context.Context, req exchange.OrderRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.panicOnSubmit {
		panic("boom")
	}
	idx := len(f.submitted)
	f.submitted = append(f.submitted, req)
	if idx < len(f.rejections) && f.rejections[idx] != nil {
		return "", f.rejections[idx]
	}
	return fmt.Sprintf("%d", 1000+idx), nil
}

func (f *fakeExchange) CancelOpenOrders(_ context.Context, symbol string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancelErr != nil {
		return f.cancelErr
	}
	f.cancelled = append(f.cancelled, symbol)
	return nil
}

func (f *fakeExchange) ChangeLeverage(_ context.Context, symbol string, leverage int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.leverageErr != nil {
		return f.leverageErr
	}
	if f.leverage == nil {
		f.leverage = map[string]int{}
	}
	f.leverage[symbol] = leverage
	return nil
}

func (f *fakeExchange) LastPrice(context.Context, string) (decimal.Decimal, error) {
	return f.last, f.lastErr
}

func (f *fakeExchange) OrderBookTop(_ context.Context, _ string, depth int) (exchange.OrderBook, error) {
	f.mu.Lock()
	f.depths = append(f.depths, depth)
	f.mu.Unlock()
	return f.book, f.bookErr
}

func (f *fakeExchange) PositionFor(context.Context, string) (decimal.Decimal, error) {
	return f.position, f.positionErr
}

func (f *fakeExchange) FiltersFor(context.Context, string) ([]exchange.Filter, error) {
	return nil, fmt.Errorf("not used")
}

// fixedRounder truncates every symbol to the same precision.
type fixedRounder int32

func (p fixedRounder) Round(_ context.Context, _ string, price decimal.Decimal) decimal.Decimal {
	return precision.RoundPrice(price, int32(p))
}

func triggerReject() error {
	return &exchange.Rejection{Code: -2021, Message: "Order would immediately trigger."}
}

func newTestResolver(ex exchange.Exchange, p int32, opts Options) *Resolver {
	r := NewResolver(ex, fixedRounder(p), opts)
	r.newID = func() string { return "test-req" }
	return r
}
