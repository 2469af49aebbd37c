package data

import (
	"context"

	"go.uber.org/zap"
)

// LivePrice wraps a PriceSource with a cache and turns failures into "no price".
type LivePrice struct {
	Source PriceSource
	Cache  PriceCache
	Key    string
}

func NewLivePrice(src PriceSource, cache PriceCache, symbol string) *LivePrice {
	if symbol == "" {
		symbol = DefaultSymbol
	}
	return &LivePrice{Source: src, Cache: cache, Key: "price:" + symbol}
}

// Get returns the latest price, or nil when none is available.
// A nil result is a normal outcome: callers fall back to the trend price.
func (l *LivePrice) Get(ctx context.Context) *float64 {
	if l == nil || l.Source == nil {
		return nil
	}
	if l.Cache != nil {
		if p, ok := l.Cache.Get(ctx, l.Key); ok {
			return &p
		}
	}

	p, err := l.Source.LatestPrice(ctx)
	if err != nil {
		zap.L().Warn("live price unavailable, using trend fallback", zap.Error(err))
		return nil
	}
	if l.Cache != nil {
		if err := l.Cache.Set(ctx, l.Key, p); err != nil {
			zap.L().Warn("price cache write failed", zap.String("key", l.Key), zap.Error(err))
		}
	}
	return &p
}
