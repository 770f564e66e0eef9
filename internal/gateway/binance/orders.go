package binance

import (
	"context"
	"strconv"

	"tradedesk/internal/gateway/exchange"
	"tradedesk/internal/logger"

	"github.com/adshao/go-binance/v2/futures"
)

func (c *Client) SubmitOrder(ctx context.Context, req exchange.OrderRequest) (string, error) {
	sym, err := c.symbol(req.Symbol)
	if err != nil {
		return "", err
	}
	clientID := req.ClientOrderID
	if clientID == "" {
		clientID = c.newID()
	}
	svc := c.client.NewCreateOrderService().
		Symbol(sym).
		Side(futures.SideType(req.Side)).
		Type(futures.OrderType(req.Type)).
		Quantity(req.Quantity.String()).
		NewClientOrderID(clientID)
	if req.TimeInForce != "" {
		svc = svc.TimeInForce(futures.TimeInForceType(req.TimeInForce))
	}
	if !req.Price.IsZero() {
		svc = svc.Price(req.Price.String())
	}
	if !req.StopPrice.IsZero() {
		svc = svc.StopPrice(req.StopPrice.String())
	}
	if req.ReduceOnly {
		svc = svc.ReduceOnly(true)
	}

	var resp *futures.CreateOrderResponse
	err = c.do("create order", func() error {
		var callErr error
		resp, callErr = svc.Do(ctx)
		return callErr
	})
	if err != nil {
		return "", err
	}
	logger.Debugf("[binance] order accepted symbol=%s side=%s type=%s id=%d client_id=%s",
		sym, req.Side, req.Type, resp.OrderID, clientID)
	return strconv.FormatInt(resp.OrderID, 10), nil
}

func (c *Client) CancelOpenOrders(ctx context.Context, symbol string) error {
	sym, err := c.symbol(symbol)
	if err != nil {
		return err
	}
	return c.do("cancel open orders", func() error {
		return c.client.NewCancelAllOpenOrdersService().Symbol(sym).Do(ctx)
	})
}

func (c *Client) ChangeLeverage(ctx context.Context, symbol string, leverage int) error {
	sym, err := c.symbol(symbol)
	if err != nil {
		return err
	}
	return c.do("change leverage", func() error {
		_, callErr := c.client.NewChangeLeverageService().Symbol(sym).Leverage(leverage).Do(ctx)
		return callErr
	})
}
