package trend

import (
	"time"

	"btc-powerlaw/internal/model"
)

// DefaultBandSigmas are the band offsets charted around the trend line.
var DefaultBandSigmas = []float64{-2, -1, 1, 2}

// BandPoint is one sample of the trend chart.
type BandPoint struct {
	Date     time.Time `json:"date"`
	Trend    float64   `json:"trend"`
	Bands    []float64 `json:"bands"`
	Observed *float64  `json:"observed,omitempty"`
}

// SeriesRequest bounds a band series.
type SeriesRequest struct {
	From     time.Time
	To       time.Time
	StepDays int
	NSigmas  []float64
}

// Series samples the trend and its sigma bands between From and To inclusive.
// Observed prices are attached where history has a close for that day.
func (p Params) Series(sigma float64, req SeriesRequest, history model.HistoricalSeries) []BandPoint {
	step := req.StepDays
	if step <= 0 {
		step = 1
	}
	nSigmas := req.NSigmas
	if len(nSigmas) == 0 {
		nSigmas = DefaultBandSigmas
	}

	var out []BandPoint
	for d := req.From; !d.After(req.To); d = d.AddDate(0, 0, step) {
		pt := BandPoint{
			Date:  d,
			Trend: p.Price(d),
			Bands: make([]float64, len(nSigmas)),
		}
		for i, n := range nSigmas {
			pt.Bands[i] = p.BandPrice(sigma, n, d)
		}
		if obs, ok := history.PriceOn(d); ok {
			v := obs
			pt.Observed = &v
		}
		out = append(out, pt)
	}
	return out
}
