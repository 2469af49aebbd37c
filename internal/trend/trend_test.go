package trend

import (
	"math"
	"testing"
	"time"

	"btc-powerlaw/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDaysSinceEpoch(t *testing.T) {
	assert.Equal(t, 0.0, DaysSinceEpoch(GenesisEpoch, GenesisEpoch))
	assert.Equal(t, 1.5, DaysSinceEpoch(GenesisEpoch, GenesisEpoch.Add(36*time.Hour)))
	assert.Equal(t, -2.0, DaysSinceEpoch(GenesisEpoch, GenesisEpoch.AddDate(0, 0, -2)))
}

func TestLookup(t *testing.T) {
	p, err := Lookup(ModelSantostasi)
	require.NoError(t, err)
	assert.Equal(t, ModelSantostasi, p.Model)

	_, err = Lookup("nope")
	assert.ErrorIs(t, err, ErrUnknownModel)

	assert.Len(t, Models(), 2)
}

func TestPrice_MonotonicIncreasing(t *testing.T) {
	for _, p := range Models() {
		prev := p.Price(date(2010, 1, 1))
		for d := date(2010, 2, 1); d.Before(date(2040, 1, 1)); d = d.AddDate(0, 1, 0) {
			cur := p.Price(d)
			assert.Greater(t, cur, prev, "model %s at %s", p.Model, d)
			prev = cur
		}
	}
}

func TestPrice_Formula(t *testing.T) {
	p := MustLookup(ModelSantostasi)
	d := date(2024, 1, 1)
	days := p.Days(d)
	want := math.Pow(10, p.Intercept+p.Exponent*math.Log10(days))
	assert.InEpsilon(t, want, p.Price(d), 1e-9)
	// Sanity check against the published fit: tens of thousands of dollars in early 2024.
	assert.Greater(t, p.Price(d), 30000.0)
	assert.Less(t, p.Price(d), 120000.0)
}

func TestPrice_AtEpochIsFinite(t *testing.T) {
	p := MustLookup(ModelCorridor)
	v := p.Price(GenesisEpoch)
	assert.False(t, math.IsNaN(v))
	assert.False(t, math.IsInf(v, 0))
}

func TestBandPriceAndMultiplier(t *testing.T) {
	p := MustLookup(ModelSantostasi)
	d := date(2025, 6, 1)
	tp := p.Price(d)

	assert.InEpsilon(t, tp*math.Pow(10, 0.6), p.BandPrice(0.3, 2, d), 1e-12)
	assert.InEpsilon(t, tp, p.BandPrice(0.3, 0, d), 1e-12)
	assert.InEpsilon(t, 2.0, p.Multiplier(2*tp, d), 1e-12)
	assert.InDelta(t, 1.0, p.Deviation(tp*math.Pow(10, 0.3), 0.3, d), 1e-9)
}

func syntheticSeries(p Params, residuals []float64) model.HistoricalSeries {
	out := make(model.HistoricalSeries, len(residuals))
	start := date(2020, 1, 1)
	for i, r := range residuals {
		d := start.AddDate(0, 0, i)
		out[i] = model.PricePoint{Date: d, Price: p.Price(d) * math.Pow(10, r)}
	}
	return out
}

func TestCalculateSigma_Population(t *testing.T) {
	p := MustLookup(ModelSantostasi)
	s := CalculateSigma(syntheticSeries(p, []float64{0.1, -0.1, 0.1, -0.1}), p)
	assert.Equal(t, 4, s.Samples)
	assert.InDelta(t, 0.1, s.Value, 1e-9)

	// Constant offset has zero spread.
	s = CalculateSigma(syntheticSeries(p, []float64{0.4, 0.4, 0.4}), p)
	assert.InDelta(t, 0.0, s.Value, 1e-9)
}

func TestCalculateSigma_EmptyIsNaN(t *testing.T) {
	s := CalculateSigma(nil, MustLookup(ModelSantostasi))
	assert.True(t, math.IsNaN(s.Value))
	assert.Equal(t, 0, s.Samples)
}

func TestSigmaCache(t *testing.T) {
	p := MustLookup(ModelSantostasi)

	c := NewSigmaCache(nil)
	assert.Equal(t, p.FallbackSigma, c.Get(p).Value)

	c.SetSeries(syntheticSeries(p, []float64{0.2, -0.2}))
	first := c.Get(p)
	assert.InDelta(t, 0.2, first.Value, 1e-9)
	assert.Equal(t, first, c.Get(p))

	c.SetSeries(syntheticSeries(p, []float64{0.5, -0.5}))
	assert.InDelta(t, 0.5, c.Get(p).Value, 1e-9)
	assert.Len(t, c.Series(), 2)
}

func TestValuationLabel(t *testing.T) {
	cases := []struct {
		mult  float64
		label string
	}{
		{0.3, "Deep value"},
		{0.5, "Undervalued"},
		{0.79, "Undervalued"},
		{1.0, "Fair value"},
		{1.5, "Overvalued"},
		{2.0, "Bubble territory"},
		{25, "Bubble territory"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.label, ValuationLabel(tc.mult).Label, "multiplier %v", tc.mult)
	}
	for i := 1; i < len(ValuationBands); i++ {
		assert.Less(t, ValuationBands[i-1].Max, ValuationBands[i].Max)
	}
}

func TestValuate(t *testing.T) {
	p := MustLookup(ModelCorridor)
	d := date(2026, 1, 1)
	v := p.Valuate(p.Price(d)*math.Pow(10, -0.15), 0.3, d)
	assert.InDelta(t, -0.5, v.K, 1e-9)
	assert.Equal(t, "Undervalued", v.Label)
	assert.Equal(t, ModelCorridor, v.Model)
}

func TestSeries(t *testing.T) {
	p := MustLookup(ModelSantostasi)
	history := model.HistoricalSeries{{Date: date(2024, 1, 8), Price: 45000}}
	pts := p.Series(0.3, SeriesRequest{From: date(2024, 1, 1), To: date(2024, 1, 29), StepDays: 7}, history)

	require.Len(t, pts, 5)
	assert.Len(t, pts[0].Bands, len(DefaultBandSigmas))
	assert.Nil(t, pts[0].Observed)
	require.NotNil(t, pts[1].Observed)
	assert.Equal(t, 45000.0, *pts[1].Observed)
	assert.Less(t, pts[0].Bands[0], pts[0].Trend)
	assert.Greater(t, pts[0].Bands[3], pts[0].Trend)
}
