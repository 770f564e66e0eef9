// Package precision resolves per-symbol price precision from exchange metadata and
// rounds prices down to it.
package precision

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tradedesk/internal/gateway/exchange"
	"tradedesk/internal/logger"
	symbolpkg "tradedesk/internal/pkg/symbol"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

// DefaultPrecision is used whenever metadata cannot be resolved.
const DefaultPrecision int32 = 8

const lookupTimeout = 10 * time.Second

type Resolver struct {
	meta      exchange.InstrumentMeta
	cache     *Cache
	fallback  int32
	lookups   singleflight.Group
	normalize func(string) string
}

type Option func(*Resolver)

// WithDefault overrides the fallback precision.
func WithDefault(p int32) Option {
	return func(r *Resolver) {
		if p >= 0 {
			r.fallback = p
		}
	}
}

func NewResolver(meta exchange.InstrumentMeta, cache *Cache, opts ...Option) *Resolver {
	if cache == nil {
		cache = NewCache()
	}
	r := &Resolver{
		meta:      meta,
		cache:     cache,
		fallback:  DefaultPrecision,
		normalize: symbolpkg.Binance.ToExchange,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Resolver) Cache() *Cache { return r.cache }

// PrecisionFor never fails: lookup errors are logged and the default is returned
// without being cached, so a later call can still pick up the real value.
func (r *Resolver) PrecisionFor(ctx context.Context, symbol string) int32 {
	key := r.normalize(symbol)
	if p, ok := r.cache.Get(key); ok {
		return p
	}
	v, err, _ := r.lookups.Do(key, func() (any, error) {
		// Shared by every waiting caller, so one caller's cancellation must not end it.
		lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), lookupTimeout)
		defer cancel()
		return r.lookup(lctx, key)
	})
	if err != nil {
		logger.Warnf("[precision] lookup failed symbol=%s err=%v, using default=%d", key, err, r.fallback)
		return r.fallback
	}
	p := v.(int32)
	r.cache.Set(key, p)
	logger.Debugf("[precision] resolved symbol=%s precision=%d", key, p)
	return p
}

// Round truncates price to the symbol's precision.
func (r *Resolver) Round(ctx context.Context, symbol string, price decimal.Decimal) decimal.Decimal {
	return RoundPrice(price, r.PrecisionFor(ctx, symbol))
}

func (r *Resolver) lookup(ctx context.Context, symbol string) (int32, error) {
	if r.meta == nil {
		return 0, fmt.Errorf("no instrument metadata source")
	}
	filters, err := r.meta.FiltersFor(ctx, symbol)
	if err != nil {
		return 0, err
	}
	tick, ok := exchange.TickSize(filters)
	if !ok {
		return 0, fmt.Errorf("no %s tick size for %s", exchange.FilterPrice, symbol)
	}
	return FromTickSize(tick)
}

// FromTickSize counts the significant fractional digits of a tick size:
// "0.00010000" -> 4, "0.5" -> 1, "1.000" -> 0.
func FromTickSize(tick string) (int32, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(tick))
	if err != nil {
		return 0, fmt.Errorf("invalid tick size %q: %w", tick, err)
	}
	if !d.IsPositive() {
		return 0, fmt.Errorf("tick size must be positive, got %q", tick)
	}
	s := d.String()
	idx := strings.IndexByte(s, '.')
	if idx < 0 {
		return 0, nil
	}
	return int32(len(strings.TrimRight(s[idx+1:], "0"))), nil
}

// RoundPrice truncates toward zero to precision fractional digits. It never rounds
// up, so the result is never above a positive input.
func RoundPrice(price decimal.Decimal, precision int32) decimal.Decimal {
	if precision < 0 {
		precision = 0
	}
	return price.Truncate(precision)
}
