package trend

import (
	"math"
	"sync"

	"btc-powerlaw/internal/model"
)

// Sigma is the standard deviation of log10(observed/trend) over a series.
//
// It is the population standard deviation (divide by N) over every point the
// caller supplies, with no resampling: daily input gives a daily-sampled sigma.
type Sigma struct {
	Value   float64 `json:"sigma"`
	Samples int     `json:"samples"`
}

// CalculateSigma computes Sigma for m over series.
// An empty series yields NaN; callers guard before using the result.
func CalculateSigma(series model.HistoricalSeries, m Params) Sigma {
	n := len(series)
	if n == 0 {
		return Sigma{Value: math.NaN()}
	}
	residuals := make([]float64, n)
	sum := 0.0
	for i, pt := range series {
		r := math.Log10(pt.Price / m.Price(pt.Date))
		residuals[i] = r
		sum += r
	}
	mean := sum / float64(n)
	ss := 0.0
	for _, r := range residuals {
		d := r - mean
		ss += d * d
	}
	return Sigma{Value: math.Sqrt(ss / float64(n)), Samples: n}
}

// SigmaCache holds per-model sigma for the lifetime of one historical series.
// Replacing the series through SetSeries drops every cached value.
type SigmaCache struct {
	mu      sync.RWMutex
	series  model.HistoricalSeries
	byModel map[Model]Sigma
}

func NewSigmaCache(series model.HistoricalSeries) *SigmaCache {
	return &SigmaCache{
		series:  series,
		byModel: make(map[Model]Sigma),
	}
}

// SetSeries swaps the underlying series and invalidates cached values.
func (c *SigmaCache) SetSeries(series model.HistoricalSeries) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.series = series
	c.byModel = make(map[Model]Sigma)
}

// Series returns the series the cache is computing from.
func (c *SigmaCache) Series() model.HistoricalSeries {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.series
}

// Get returns sigma for p, computing it on first use.
// With no series loaded it returns the model's fallback sigma and zero samples.
func (c *SigmaCache) Get(p Params) Sigma {
	c.mu.RLock()
	s, ok := c.byModel[p.Model]
	series := c.series
	c.mu.RUnlock()
	if ok {
		return s
	}
	if len(series) == 0 {
		return Sigma{Value: p.FallbackSigma}
	}

	s = CalculateSigma(series, p)

	c.mu.Lock()
	defer c.mu.Unlock()
	// The series may have been swapped while computing; only store if it is unchanged.
	if sameSeries(c.series, series) {
		c.byModel[p.Model] = s
	}
	return s
}

func sameSeries(a, b model.HistoricalSeries) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || &a[0] == &b[0]
}
