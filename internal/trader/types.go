package trader

import (
	"strings"

	"tradedesk/internal/gateway/exchange"

	"github.com/shopspring/decimal"
)

// IntentType tags the kind of trade a caller asks for.
type IntentType string

const (
	IntentLimit      IntentType = "limit"
	IntentChase      IntentType = "chase"
	IntentStop       IntentType = "stop"
	IntentMarketStop IntentType = "market_stop"
	IntentMarket     IntentType = "market"
	IntentTakeProfit IntentType = "take_profit"
	IntentAutoSLTP   IntentType = "auto_sl_tp"
)

// TradeIntent is one caller request. Only the fields relevant to Type are read.
type TradeIntent struct {
	Type     IntentType      `json:"type"`
	Symbol   string          `json:"symbol"`
	Quantity decimal.Decimal `json:"quantity"`

	// market, chase
	Side string `json:"side,omitempty"`

	// limit (bracket)
	BuyPrice         decimal.Decimal `json:"buy_price"`
	SellPrice        decimal.Decimal `json:"sell_price"`
	CancelOpenOrders *bool           `json:"cancel_open_orders,omitempty"`

	// stop, market_stop
	StopPrice decimal.Decimal `json:"stop_price"`

	// take_profit
	TargetPrice decimal.Decimal `json:"target_price"`

	// auto_sl_tp
	RRPercentage decimal.Decimal `json:"rr_percentage"`

	// limit, market; zero leaves the account setting untouched
	Leverage int `json:"leverage,omitempty"`
}

func (i TradeIntent) normalized() TradeIntent {
	i.Type = IntentType(strings.ToLower(strings.TrimSpace(string(i.Type))))
	i.Symbol = strings.ToUpper(strings.TrimSpace(i.Symbol))
	return i
}

// TradeResult is what the caller gets back. Partial success of a two-leg request is
// still Success with a composite Message.
type TradeResult struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Orders  []OrderReceipt `json:"orders,omitempty"`
}

type OrderReceipt struct {
	OrderID   string             `json:"order_id"`
	Side      exchange.Side      `json:"side"`
	Type      exchange.OrderType `json:"type"`
	Quantity  string             `json:"quantity"`
	Price     string             `json:"price,omitempty"`
	StopPrice string             `json:"stop_price,omitempty"`
}

func failed(msg string) TradeResult {
	return TradeResult{Success: false, Message: msg}
}

func receiptFor(res SubmitResult) OrderReceipt {
	req := res.Request
	rc := OrderReceipt{
		OrderID:  res.OrderID,
		Side:     req.Side,
		Type:     req.Type,
		Quantity: req.Quantity.String(),
	}
	if !req.Price.IsZero() {
		rc.Price = req.Price.String()
	}
	if !req.StopPrice.IsZero() {
		rc.StopPrice = req.StopPrice.String()
	}
	return rc
}
