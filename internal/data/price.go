package data

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/adshao/go-binance/v2/common"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultSymbol is the spot pair used as the USD price of BTC.
const DefaultSymbol = "BTCUSDT"

// ErrPriceUnavailable means the upstream answered but had no usable quote.
var ErrPriceUnavailable = errors.New("live price unavailable")

// PriceSource returns the latest BTC/USD price.
type PriceSource interface {
	LatestPrice(ctx context.Context) (float64, error)
}

// PriceSourceError is an error reported by the upstream price API.
// Code carries the exchange's own error code, e.g. "BINANCE_-1121".
type PriceSourceError struct {
	Code    string
	Message string
}

func (e *PriceSourceError) Error() string {
	return e.Message
}

// BinancePriceSource reads the public spot ticker. No API key is needed.
type BinancePriceSource struct {
	Symbol  string
	Timeout time.Duration
	client  *binance.Client
}

func NewBinancePriceSource(symbol string) *BinancePriceSource {
	if symbol == "" {
		symbol = DefaultSymbol
	}
	return &BinancePriceSource{
		Symbol:  symbol,
		Timeout: 10 * time.Second,
		client:  binance.NewClient("", ""),
	}
}

func (b *BinancePriceSource) LatestPrice(ctx context.Context) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, b.Timeout)
	defer cancel()

	start := time.Now()
	prices, err := b.client.NewListPricesService().Symbol(b.Symbol).Do(ctx)
	if err != nil {
		zap.L().Warn("price fetch failed",
			zap.String("symbol", b.Symbol),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
		return 0, sourceError(b.Symbol, err)
	}

	for _, p := range prices {
		if p.Symbol != b.Symbol {
			continue
		}
		v, err := parsePrice(p.Price)
		if err != nil {
			return 0, err
		}
		zap.L().Debug("price fetched",
			zap.String("symbol", b.Symbol),
			zap.Float64("price", v),
			zap.Duration("duration", time.Since(start)))
		return v, nil
	}
	return 0, fmt.Errorf("%w: no quote for %s", ErrPriceUnavailable, b.Symbol)
}

// sourceError maps exchange API errors to PriceSourceError and wraps the rest.
func sourceError(symbol string, err error) error {
	var apiErr *common.APIError
	if errors.As(err, &apiErr) {
		return &PriceSourceError{
			Code:    fmt.Sprintf("BINANCE_%d", apiErr.Code),
			Message: apiErr.Message,
		}
	}
	return fmt.Errorf("fetch %s price: %w", symbol, err)
}

func parsePrice(s string) (float64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %w", s, err)
	}
	if !d.IsPositive() {
		return 0, fmt.Errorf("%w: non-positive price %s", ErrPriceUnavailable, s)
	}
	return d.InexactFloat64(), nil
}
