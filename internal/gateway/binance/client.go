// Package binance implements the exchange contracts over the USD-M futures REST API.
package binance

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"tradedesk/internal/gateway/exchange"
	"tradedesk/internal/logger"
	"tradedesk/internal/pkg/circuit"
	symbolpkg "tradedesk/internal/pkg/symbol"

	"github.com/adshao/go-binance/v2/common"
	"github.com/adshao/go-binance/v2/futures"
	"github.com/google/uuid"
)

const name = "binance"

// Client talks to Binance USD-M futures. Transport failures feed a circuit breaker;
// exchange refusals come back as *exchange.Rejection and never trip it.
type Client struct {
	cfg     Config
	client  *futures.Client
	breaker *circuit.CircuitBreaker
	newID   func() string
}

var _ exchange.Exchange = (*Client)(nil)

func New(cfg Config, creds Credentials) (*Client, error) {
	final := cfg.withDefaults()
	client := futures.NewClient(strings.TrimSpace(creds.APIKey), strings.TrimSpace(creds.APISecret))
	client.BaseURL = final.RESTBaseURL
	httpClient := &http.Client{Timeout: final.HTTPTimeout}
	if final.ProxyEnabled && final.RESTProxyURL != "" {
		proxyURL, err := url.Parse(final.RESTProxyURL)
		if err != nil {
			return nil, fmt.Errorf("invalid REST proxy url: %w", err)
		}
		baseTransport, ok := http.DefaultTransport.(*http.Transport)
		if !ok || baseTransport == nil {
			return nil, fmt.Errorf("http DefaultTransport is not *http.Transport")
		}
		transport := baseTransport.Clone()
		transport.Proxy = http.ProxyURL(proxyURL)
		httpClient.Transport = transport
	}
	client.HTTPClient = httpClient
	if creds.APIKey == "" || creds.APISecret == "" {
		logger.Warnf("[binance] no API credentials configured; private endpoints will be refused")
	}

	c := &Client{
		cfg:     final,
		client:  client,
		breaker: circuit.NewCircuitBreaker(name, final.CircuitThreshold, final.CircuitCooldown),
	}
	c.newID = c.clientOrderID
	return c, nil
}

func (c *Client) Name() string { return name }

// do runs one REST round trip through the breaker and translates the error.
func (c *Client) do(op string, fn func() error) error {
	err := c.breaker.Execute(func() error {
		return translate(fn())
	}, countsAsFailure)
	if errors.Is(err, circuit.ErrOpen) {
		logger.Warnf("[binance] %s skipped: circuit open", op)
		return fmt.Errorf("%w: %s", exchange.ErrCircuitOpen, op)
	}
	return err
}

// translate maps an API error body to a Rejection. A zero code means the body was not
// an exchange error document, so it stays a transport failure.
func translate(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *common.APIError
	if errors.As(err, &apiErr) && apiErr.Code != 0 {
		return &exchange.Rejection{Code: apiErr.Code, Message: apiErr.Message}
	}
	return err
}

func countsAsFailure(err error) bool {
	if _, ok := exchange.AsRejection(err); ok {
		return false
	}
	return !errors.Is(err, context.Canceled)
}

func (c *Client) symbol(raw string) (string, error) {
	sym := symbolpkg.Binance.ToExchange(raw)
	if sym == "" {
		return "", fmt.Errorf("symbol is required")
	}
	return sym, nil
}

func (c *Client) clientOrderID() string {
	id := c.cfg.ClientOrderPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")
	if len(id) > maxClientOrderIDLen {
		id = id[:maxClientOrderIDLen]
	}
	return id
}
