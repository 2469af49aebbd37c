package data

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/adshao/go-binance/v2/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPriceSource struct {
	mock.Mock
}

func (m *mockPriceSource) LatestPrice(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

func TestParsePrice(t *testing.T) {
	v, err := parsePrice("97123.45000000")
	require.NoError(t, err)
	assert.Equal(t, 97123.45, v)

	_, err = parsePrice("abc")
	assert.Error(t, err)

	_, err = parsePrice("0.00000000")
	assert.ErrorIs(t, err, ErrPriceUnavailable)
}

func TestMemoryPriceCache_TTL(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMemoryPriceCache(time.Minute)
	c.now = func() time.Time { return now }

	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "k", 100))
	p, ok := c.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, 100.0, p)

	now = now.Add(2 * time.Minute)
	_, ok = c.Get(ctx, "k")
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "k", 200))
	p, ok = c.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, 200.0, p)
}

func TestLivePrice_CachesSuccessfulFetch(t *testing.T) {
	ctx := context.Background()
	src := &mockPriceSource{}
	src.On("LatestPrice", mock.Anything).Return(65000.0, nil).Once()

	lp := NewLivePrice(src, NewMemoryPriceCache(time.Minute), "")
	assert.Equal(t, "price:BTCUSDT", lp.Key)

	p := lp.Get(ctx)
	require.NotNil(t, p)
	assert.Equal(t, 65000.0, *p)

	// Second call is served from cache; the mock would fail on a second fetch.
	p = lp.Get(ctx)
	require.NotNil(t, p)
	assert.Equal(t, 65000.0, *p)
	src.AssertExpectations(t)
}

func TestLivePrice_FailureMeansNoPrice(t *testing.T) {
	src := &mockPriceSource{}
	src.On("LatestPrice", mock.Anything).Return(0.0, errors.New("boom"))

	lp := NewLivePrice(src, nil, "BTCUSDT")
	assert.Nil(t, lp.Get(context.Background()))
	src.AssertNumberOfCalls(t, "LatestPrice", 1)

	var none *LivePrice
	assert.Nil(t, none.Get(context.Background()))
}

func TestSourceError(t *testing.T) {
	err := sourceError("BTCUSDT", &common.APIError{Code: -1121, Message: "Invalid symbol."})
	var pse *PriceSourceError
	require.True(t, errors.As(err, &pse))
	assert.Equal(t, "BINANCE_-1121", pse.Code)
	assert.Equal(t, "Invalid symbol.", err.Error())

	err = sourceError("BTCUSDT", context.DeadlineExceeded)
	assert.False(t, errors.As(err, &pse))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "BTCUSDT")
}
