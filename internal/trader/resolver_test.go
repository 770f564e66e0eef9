package trader

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"tradedesk/internal/gateway/exchange"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func boolPtr(v bool) *bool { return &v }

func TestStopFallsBackToSecondaryOnTriggerRejection(t *testing.T) {
	ex := &fakeExchange{last: dec("100"), rejections: []error{triggerReject()}}
	r := newTestResolver(ex, 2, Options{})

	res := r.ResolveAndSubmit(context.Background(), TradeIntent{
		Type: IntentStop, Symbol: "btcusdt", Quantity: dec("0.5"), StopPrice: dec("110"),
	})

	assert.True(t, res.Success)
	assert.Equal(t, "Stop-limit order placed (SELL side).", res.Message)
	require.Len(t, ex.submitted, 2)
	assert.Equal(t, exchange.SideBuy, ex.submitted[0].Side)
	second := ex.submitted[1]
	assert.Equal(t, "BTCUSDT", second.Symbol)
	assert.Equal(t, exchange.SideSell, second.Side)
	assert.Equal(t, exchange.OrderTypeStop, second.Type)
	assert.Equal(t, "110", second.StopPrice.String())
	assert.Equal(t, "110", second.Price.String())
	assert.True(t, second.ReduceOnly)
	assert.Equal(t, exchange.TimeInForceGTC, second.TimeInForce)
	require.Len(t, res.Orders, 1)
	assert.Equal(t, "1001", res.Orders[0].OrderID)
	assert.Equal(t, "110", res.Orders[0].StopPrice)
}

func TestStopRoundsReferenceBeforeComparing(t *testing.T) {
	ex := &fakeExchange{last: dec("110.12")}
	r := newTestResolver(ex, 2, Options{})

	res := r.ResolveAndSubmit(context.Background(), TradeIntent{
		Type: IntentStop, Symbol: "BTCUSDT", Quantity: dec("1"), StopPrice: dec("110.129"),
	})

	require.True(t, res.Success)
	require.Len(t, ex.submitted, 1)
	assert.Equal(t, "110.12", ex.submitted[0].StopPrice.String())
	// 110.12 is not above 110.12, so the primary side is SELL.
	assert.Equal(t, exchange.SideSell, ex.submitted[0].Side)
}

func TestMarketStopOmitsLimitPrice(t *testing.T) {
	ex := &fakeExchange{last: dec("100")}
	r := newTestResolver(ex, 4, Options{})

	res := r.ResolveAndSubmit(context.Background(), TradeIntent{
		Type: IntentMarketStop, Symbol: "ETHUSDT", Quantity: dec("2"), StopPrice: dec("95"),
	})

	assert.True(t, res.Success)
	assert.Equal(t, "Market stop order placed (SELL side).", res.Message)
	require.Len(t, ex.submitted, 1)
	req := ex.submitted[0]
	assert.Equal(t, exchange.OrderTypeStopMarket, req.Type)
	assert.True(t, req.Price.IsZero())
	assert.Equal(t, "95", req.StopPrice.String())
	assert.True(t, req.ReduceOnly)
}

func TestStopOtherRejectionSurfacesImmediately(t *testing.T) {
	ex := &fakeExchange{last: dec("100"), rejections: []error{&exchange.Rejection{Code: -2019, Message: "Margin is insufficient."}}}
	r := newTestResolver(ex, 2, Options{})

	res := r.ResolveAndSubmit(context.Background(), TradeIntent{
		Type: IntentStop, Symbol: "BTCUSDT", Quantity: dec("1"), StopPrice: dec("120"),
	})

	assert.False(t, res.Success)
	assert.Equal(t, "code=-2019, msg=Margin is insufficient.", res.Message)
	assert.Len(t, ex.submitted, 1)
}

func TestStopBothSidesFail(t *testing.T) {
	ex := &fakeExchange{last: dec("100"), rejections: []error{triggerReject(), errors.New("timeout")}}
	r := newTestResolver(ex, 2, Options{})

	res := r.ResolveAndSubmit(context.Background(), TradeIntent{
		Type: IntentStop, Symbol: "BTCUSDT", Quantity: dec("1"), StopPrice: dec("120"),
	})

	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "Both sides failed. Primary: code=-2021")
	assert.Contains(t, res.Message, "Secondary: timeout")
}

func TestTakeProfitBelowMarketBuys(t *testing.T) {
	ex := &fakeExchange{last: dec("100")}
	r := newTestResolver(ex, 2, Options{})

	res := r.ResolveAndSubmit(context.Background(), TradeIntent{
		Type: IntentTakeProfit, Symbol: "BTCUSDT", Quantity: dec("3"), TargetPrice: dec("90"),
	})

	assert.True(t, res.Success)
	assert.Equal(t, "Take profit limit order placed (BUY side).", res.Message)
	require.Len(t, ex.submitted, 1)
	req := ex.submitted[0]
	assert.Equal(t, exchange.SideBuy, req.Side)
	assert.Equal(t, exchange.OrderTypeLimit, req.Type)
	assert.Equal(t, "90", req.Price.String())
	assert.True(t, req.StopPrice.IsZero())
	assert.True(t, req.ReduceOnly)
}

func TestTakeProfitFallbackUsesClassification(t *testing.T) {
	ex := &fakeExchange{last: dec("100"), rejections: []error{triggerReject()}}
	r := newTestResolver(ex, 2, Options{})
	res := r.ResolveAndSubmit(context.Background(), TradeIntent{
		Type: IntentTakeProfit, Symbol: "BTCUSDT", Quantity: dec("3"), TargetPrice: dec("110"),
	})
	assert.True(t, res.Success)
	require.Len(t, ex.submitted, 2)
	assert.Equal(t, exchange.SideSell, ex.submitted[0].Side)
	assert.Equal(t, exchange.SideBuy, ex.submitted[1].Side)

	ex = &fakeExchange{last: dec("100"), rejections: []error{&exchange.Rejection{Code: -4164, Message: "Order's notional must be no smaller than 5"}}}
	r = newTestResolver(ex, 2, Options{})
	res = r.ResolveAndSubmit(context.Background(), TradeIntent{
		Type: IntentTakeProfit, Symbol: "BTCUSDT", Quantity: dec("3"), TargetPrice: dec("110"),
	})
	assert.False(t, res.Success)
	assert.Len(t, ex.submitted, 1)
}

func TestConditionalPriceFetchFailure(t *testing.T) {
	ex := &fakeExchange{lastErr: fmt.Errorf("%w: ticker 502", exchange.ErrMarketDataUnavailable)}
	r := newTestResolver(ex, 2, Options{})
	res := r.ResolveAndSubmit(context.Background(), TradeIntent{
		Type: IntentStop, Symbol: "BTCUSDT", Quantity: dec("1"), StopPrice: dec("120"),
	})
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "market data unavailable")
	assert.Empty(t, ex.submitted)
}

func TestAutoSLTPLongPosition(t *testing.T) {
	ex := &fakeExchange{last: dec("100"), position: dec("2.5")}
	r := newTestResolver(ex, 2, Options{})

	res := r.ResolveAndSubmit(context.Background(), TradeIntent{
		Type: IntentAutoSLTP, Symbol: "BTCUSDT", RRPercentage: dec("5"),
	})

	assert.True(t, res.Success)
	assert.Equal(t, "Stop Loss set at 95 | Take Profit set at 105", res.Message)
	require.Len(t, ex.submitted, 2)
	sl, tp := ex.submitted[0], ex.submitted[1]

	assert.Equal(t, exchange.SideSell, sl.Side)
	assert.Equal(t, exchange.OrderTypeStop, sl.Type)
	assert.Equal(t, "95", sl.StopPrice.String())
	assert.Equal(t, "95", sl.Price.String())
	assert.Equal(t, "2.5", sl.Quantity.String())
	assert.True(t, sl.ReduceOnly)

	assert.Equal(t, exchange.SideSell, tp.Side)
	assert.Equal(t, exchange.OrderTypeLimit, tp.Type)
	assert.Equal(t, "105", tp.Price.String())
	assert.Equal(t, "2.5", tp.Quantity.String())
	assert.True(t, tp.ReduceOnly)
	assert.Len(t, res.Orders, 2)
}

func TestAutoSLTPShortPosition(t *testing.T) {
	ex := &fakeExchange{last: dec("2000.55"), position: dec("-0.3")}
	r := newTestResolver(ex, 2, Options{})

	res := r.ResolveAndSubmit(context.Background(), TradeIntent{
		Type: IntentAutoSLTP, Symbol: "ETHUSDT", RRPercentage: dec("1"),
	})

	assert.True(t, res.Success)
	require.Len(t, ex.submitted, 2)
	sl, tp := ex.submitted[0], ex.submitted[1]
	assert.Equal(t, exchange.SideBuy, sl.Side)
	assert.Equal(t, exchange.SideBuy, tp.Side)
	// 2000.55 * 1.01 = 2020.5555 -> 2020.55; 2000.55 * 0.99 = 1980.5445 -> 1980.54
	assert.Equal(t, "2020.55", sl.StopPrice.String())
	assert.Equal(t, "1980.54", tp.Price.String())
	assert.Equal(t, "0.3", sl.Quantity.String())
}

func TestAutoSLTPFlatPositionSubmitsNothing(t *testing.T) {
	ex := &fakeExchange{last: dec("100"), position: decimal.Zero}
	r := newTestResolver(ex, 2, Options{})

	res := r.ResolveAndSubmit(context.Background(), TradeIntent{
		Type: IntentAutoSLTP, Symbol: "BTCUSDT", RRPercentage: dec("5"),
	})

	assert.False(t, res.Success)
	assert.Equal(t, "No open position found for this symbol.", res.Message)
	assert.Empty(t, ex.submitted)
}

func TestAutoSLTPLegsAreIndependent(t *testing.T) {
	ex := &fakeExchange{
		last:       dec("100"),
		position:   dec("1"),
		rejections: []error{triggerReject()},
	}
	r := newTestResolver(ex, 2, Options{})

	res := r.ResolveAndSubmit(context.Background(), TradeIntent{
		Type: IntentAutoSLTP, Symbol: "BTCUSDT", RRPercentage: dec("5"),
	})

	assert.True(t, res.Success)
	assert.Equal(t, "Stop Loss failed: code=-2021, msg=Order would immediately trigger. | Take Profit set at 105", res.Message)
	assert.Len(t, ex.submitted, 2, "no fallback between legs")
	require.Len(t, res.Orders, 1)
	assert.Equal(t, exchange.OrderTypeLimit, res.Orders[0].Type)
}

func TestAutoSLTPBothLegsFailed(t *testing.T) {
	reject := errors.New("code=-2019, msg=Margin is insufficient.")
	ex := &fakeExchange{last: dec("100"), position: dec("1"), rejections: []error{reject, reject}}
	r := newTestResolver(ex, 2, Options{})

	res := r.ResolveAndSubmit(context.Background(), TradeIntent{
		Type: IntentAutoSLTP, Symbol: "BTCUSDT", RRPercentage: dec("5"),
	})

	assert.False(t, res.Success)
	assert.Equal(t, "Stop Loss failed: code=-2019, msg=Margin is insufficient. | Take Profit failed: code=-2019, msg=Margin is insufficient.", res.Message)
	assert.Empty(t, res.Orders)
	assert.Len(t, ex.submitted, 2)
}

func TestAutoSLTPPositionError(t *testing.T) {
	ex := &fakeExchange{last: dec("100"), positionErr: errors.New("code=-2015, msg=Invalid API-key")}
	r := newTestResolver(ex, 2, Options{})
	res := r.ResolveAndSubmit(context.Background(), TradeIntent{
		Type: IntentAutoSLTP, Symbol: "BTCUSDT", RRPercentage: dec("5"),
	})
	assert.False(t, res.Success)
	assert.Equal(t, "Error getting position: code=-2015, msg=Invalid API-key", res.Message)
	assert.Empty(t, ex.submitted)
}

func TestAutoSLTPNonPositiveLegIsNotSubmitted(t *testing.T) {
	ex := &fakeExchange{last: dec("100"), position: dec("1")}
	r := newTestResolver(ex, 2, Options{})

	res := r.ResolveAndSubmit(context.Background(), TradeIntent{
		Type: IntentAutoSLTP, Symbol: "BTCUSDT", RRPercentage: dec("100"),
	})

	assert.True(t, res.Success)
	assert.Equal(t, "Stop Loss failed: price must be positive, got 0 | Take Profit set at 200", res.Message)
	require.Len(t, ex.submitted, 1)
	assert.Equal(t, exchange.OrderTypeLimit, ex.submitted[0].Type)
	assert.Equal(t, "200", ex.submitted[0].Price.String())

	short := &fakeExchange{last: dec("100"), position: dec("-1")}
	r = newTestResolver(short, 2, Options{})
	res = r.ResolveAndSubmit(context.Background(), TradeIntent{
		Type: IntentAutoSLTP, Symbol: "BTCUSDT", RRPercentage: dec("150"),
	})

	assert.True(t, res.Success)
	assert.Equal(t, "Stop Loss set at 250 | Take Profit failed: price must be positive, got -50", res.Message)
	require.Len(t, short.submitted, 1)
	assert.Equal(t, exchange.OrderTypeStop, short.submitted[0].Type)
	assert.Equal(t, exchange.SideBuy, short.submitted[0].Side)
	require.Len(t, res.Orders, 1)
}

func TestBracketLimitCancelsThenPlacesBothLegs(t *testing.T) {
	ex := &fakeExchange{}
	r := newTestResolver(ex, 2, Options{CancelBeforeBracket: true})

	res := r.ResolveAndSubmit(context.Background(), TradeIntent{
		Type: IntentLimit, Symbol: "BTCUSDT", Quantity: dec("0.01"),
		BuyPrice: dec("99.999"), SellPrice: dec("105.2371"), Leverage: 10,
	})

	assert.True(t, res.Success)
	assert.Equal(t, "Limit orders placed.", res.Message)
	assert.Equal(t, []string{"BTCUSDT"}, ex.cancelled)
	assert.Equal(t, 10, ex.leverage["BTCUSDT"])
	require.Len(t, ex.submitted, 2)
	buy, sell := ex.submitted[0], ex.submitted[1]
	assert.Equal(t, exchange.SideBuy, buy.Side)
	assert.Equal(t, "99.99", buy.Price.String())
	assert.Equal(t, exchange.SideSell, sell.Side)
	assert.Equal(t, "105.23", sell.Price.String())
	for _, req := range ex.submitted {
		assert.Equal(t, exchange.OrderTypeLimit, req.Type)
		assert.Equal(t, exchange.TimeInForceGTC, req.TimeInForce)
		assert.False(t, req.ReduceOnly)
	}
}

func TestBracketLimitCancelOverride(t *testing.T) {
	ex := &fakeExchange{}
	r := newTestResolver(ex, 2, Options{CancelBeforeBracket: true})
	res := r.ResolveAndSubmit(context.Background(), TradeIntent{
		Type: IntentLimit, Symbol: "BTCUSDT", Quantity: dec("1"),
		BuyPrice: dec("90"), SellPrice: dec("110"), CancelOpenOrders: boolPtr(false),
	})
	assert.True(t, res.Success)
	assert.Empty(t, ex.cancelled)
}

func TestBracketLimitPartialAndCancelFailure(t *testing.T) {
	ex := &fakeExchange{rejections: []error{nil, &exchange.Rejection{Code: -2010, Message: "Order would immediately match and take."}}}
	r := newTestResolver(ex, 2, Options{})
	res := r.ResolveAndSubmit(context.Background(), TradeIntent{
		Type: IntentLimit, Symbol: "BTCUSDT", Quantity: dec("1"), BuyPrice: dec("90"), SellPrice: dec("110"),
	})
	assert.True(t, res.Success)
	assert.Equal(t, "Buy limit placed at 90 | Sell limit failed: code=-2010, msg=Order would immediately match and take.", res.Message)
	assert.Len(t, res.Orders, 1)

	ex = &fakeExchange{cancelErr: errors.New("code=-1003, msg=Too many requests")}
	r = newTestResolver(ex, 2, Options{CancelBeforeBracket: true})
	res = r.ResolveAndSubmit(context.Background(), TradeIntent{
		Type: IntentLimit, Symbol: "BTCUSDT", Quantity: dec("1"), BuyPrice: dec("90"), SellPrice: dec("110"),
	})
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "cancel open orders")
	assert.Empty(t, ex.submitted)
}

func TestChaseUsesBestPriceOnRequesterSide(t *testing.T) {
	book := exchange.OrderBook{
		Bids: []exchange.PriceLevel{{Price: dec("99.987"), Quantity: dec("3")}, {Price: dec("99.5"), Quantity: dec("1")}},
		Asks: []exchange.PriceLevel{{Price: dec("100.013"), Quantity: dec("2")}},
	}
	ex := &fakeExchange{book: book, last: dec("100")}
	r := newTestResolver(ex, 2, Options{})

	res := r.ResolveAndSubmit(context.Background(), TradeIntent{Type: IntentChase, Symbol: "BTCUSDT", Side: "buy", Quantity: dec("1")})
	assert.True(t, res.Success)
	assert.Equal(t, "Chase limit BUY order placed at 99.98.", res.Message)

	res = r.ResolveAndSubmit(context.Background(), TradeIntent{Type: IntentChase, Symbol: "BTCUSDT", Side: "SELL", Quantity: dec("1")})
	assert.True(t, res.Success)
	require.Len(t, ex.submitted, 2)
	assert.Equal(t, "100.01", ex.submitted[1].Price.String())
	assert.Equal(t, exchange.SideSell, ex.submitted[1].Side)
	assert.Equal(t, []int{defaultChaseDepth, defaultChaseDepth}, ex.depths)
}

func TestChaseDegradesToLastPrice(t *testing.T) {
	ex := &fakeExchange{bookErr: fmt.Errorf("%w: depth 503", exchange.ErrMarketDataUnavailable), last: dec("101.555")}
	r := newTestResolver(ex, 2, Options{ChaseDepth: 10})

	res := r.ResolveAndSubmit(context.Background(), TradeIntent{Type: IntentChase, Symbol: "BTCUSDT", Side: "BUY", Quantity: dec("1")})
	assert.True(t, res.Success)
	require.Len(t, ex.submitted, 1)
	assert.Equal(t, "101.55", ex.submitted[0].Price.String())
	assert.Equal(t, []int{10}, ex.depths)

	empty := &fakeExchange{last: dec("50")}
	r = newTestResolver(empty, 2, Options{})
	res = r.ResolveAndSubmit(context.Background(), TradeIntent{Type: IntentChase, Symbol: "BTCUSDT", Side: "SELL", Quantity: dec("1")})
	assert.True(t, res.Success)
	assert.Equal(t, "50", empty.submitted[0].Price.String())
}

func TestChaseSubTickPriceIsNotSubmitted(t *testing.T) {
	ex := &fakeExchange{bookErr: exchange.ErrMarketDataUnavailable, last: dec("0.004")}
	r := newTestResolver(ex, 2, Options{})

	res := r.ResolveAndSubmit(context.Background(), TradeIntent{Type: IntentChase, Symbol: "BTCUSDT", Side: "BUY", Quantity: dec("1")})
	assert.False(t, res.Success)
	assert.Equal(t, "price must be positive, got 0", res.Message)
	assert.Empty(t, ex.submitted)
}

func TestConditionalSubTickReferenceIsNotSubmitted(t *testing.T) {
	ex := &fakeExchange{last: dec("100")}
	r := newTestResolver(ex, 2, Options{})

	res := r.ResolveAndSubmit(context.Background(), TradeIntent{
		Type: IntentMarketStop, Symbol: "BTCUSDT", Quantity: dec("1"), StopPrice: dec("0.001"),
	})
	assert.False(t, res.Success)
	assert.Equal(t, "stop price must be positive, got 0", res.Message)
	assert.Empty(t, ex.submitted)
}

func TestChaseRequiresSide(t *testing.T) {
	ex := &fakeExchange{}
	r := newTestResolver(ex, 2, Options{})
	res := r.ResolveAndSubmit(context.Background(), TradeIntent{Type: IntentChase, Symbol: "BTCUSDT", Quantity: dec("1")})
	assert.False(t, res.Success)
	assert.Empty(t, ex.submitted)
}

type mockExchange struct {
	fakeExchange
	mock.Mock
}

func (m *mockExchange) SubmitOrder(ctx context.Context, req exchange.OrderRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *mockExchange) ChangeLeverage(ctx context.Context, symbol string, leverage int) error {
	args := m.Called(ctx, symbol, leverage)
	return args.Error(0)
}

func TestMarketOrder(t *testing.T) {
	m := new(mockExchange)
	m.On("ChangeLeverage", mock.Anything, "ETHUSDT", 20).Return(nil).Once()
	m.On("SubmitOrder", mock.Anything, mock.MatchedBy(func(req exchange.OrderRequest) bool {
		return req.Symbol == "ETHUSDT" &&
			req.Side == exchange.SideBuy &&
			req.Type == exchange.OrderTypeMarket &&
			req.Quantity.Equal(dec("0.25")) &&
			req.Price.IsZero() && !req.ReduceOnly && req.TimeInForce == ""
	})).Return("778899", nil).Once()

	r := newTestResolver(m, 2, Options{})
	res := r.ResolveAndSubmit(context.Background(), TradeIntent{
		Type: IntentMarket, Symbol: "ethusdt", Side: "buy", Quantity: dec("0.25"), Leverage: 20,
	})

	assert.True(t, res.Success)
	assert.Equal(t, "Market buy order executed.", res.Message)
	require.Len(t, res.Orders, 1)
	assert.Equal(t, "778899", res.Orders[0].OrderID)
	m.AssertExpectations(t)
}

func TestMarketLeverageFailureAborts(t *testing.T) {
	m := new(mockExchange)
	m.On("ChangeLeverage", mock.Anything, "ETHUSDT", 200).Return(&exchange.Rejection{Code: -4028, Message: "Leverage 200 is not valid"})

	r := newTestResolver(m, 2, Options{})
	res := r.ResolveAndSubmit(context.Background(), TradeIntent{
		Type: IntentMarket, Symbol: "ETHUSDT", Side: "SELL", Quantity: dec("1"), Leverage: 200,
	})
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "change leverage")
	m.AssertNotCalled(t, "SubmitOrder", mock.Anything, mock.Anything)
}

func TestResolveAndSubmitRejectsBadInput(t *testing.T) {
	ex := &fakeExchange{last: dec("100")}
	r := newTestResolver(ex, 2, Options{})
	ctx := context.Background()

	res := r.ResolveAndSubmit(ctx, TradeIntent{Type: "iceberg", Symbol: "BTCUSDT", Quantity: dec("1")})
	assert.False(t, res.Success)
	assert.Equal(t, "Invalid order type.", res.Message)

	res = r.ResolveAndSubmit(ctx, TradeIntent{Type: IntentMarket, Side: "BUY", Quantity: dec("1")})
	assert.False(t, res.Success)
	assert.Equal(t, "symbol is required", res.Message)

	res = r.ResolveAndSubmit(ctx, TradeIntent{Type: IntentStop, Symbol: "BTCUSDT", Quantity: dec("0"), StopPrice: dec("1")})
	assert.False(t, res.Success)
	assert.Equal(t, "quantity must be positive", res.Message)

	res = r.ResolveAndSubmit(ctx, TradeIntent{Type: IntentTakeProfit, Symbol: "BTCUSDT", Quantity: dec("1")})
	assert.False(t, res.Success)
	assert.Equal(t, "target_price must be positive", res.Message)

	assert.Empty(t, ex.submitted)
}

func TestResolveAndSubmitRecoversPanics(t *testing.T) {
	ex := &fakeExchange{panicOnSubmit: true}
	r := newTestResolver(ex, 2, Options{})
	res := r.ResolveAndSubmit(context.Background(), TradeIntent{Type: IntentMarket, Symbol: "BTCUSDT", Side: "BUY", Quantity: dec("1")})
	assert.False(t, res.Success)
	assert.Equal(t, "internal error: boom", res.Message)
}

func TestRegistryHasEveryIntent(t *testing.T) {
	r := NewResolver(&fakeExchange{}, fixedRounder(2), Options{})
	for _, it := range []IntentType{IntentLimit, IntentChase, IntentStop, IntentMarketStop, IntentMarket, IntentTakeProfit, IntentAutoSLTP} {
		h, ok := r.registry.Get(it)
		require.True(t, ok, it)
		assert.Equal(t, it, h.Type())
	}
	assert.Equal(t, 7, r.registry.Len())
}
