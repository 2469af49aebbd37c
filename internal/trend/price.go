package trend

import (
	"math"
	"time"
)

// minDays keeps the power law finite at and before the epoch.
const minDays = 1.0

// DaysSinceEpoch returns fractional days elapsed since epoch.
// Dates before the epoch give negative values; callers get degenerate prices there.
func DaysSinceEpoch(epoch, date time.Time) float64 {
	return date.Sub(epoch).Hours() / 24
}

// Days is DaysSinceEpoch using the model's own epoch.
func (p Params) Days(date time.Time) float64 {
	return DaysSinceEpoch(p.Epoch, date)
}

// Price is the fair-value trend price on date.
func (p Params) Price(date time.Time) float64 {
	d := math.Max(p.Days(date), minDays)
	return math.Pow(10, p.Intercept) * math.Pow(d, p.Exponent)
}

// BandPrice is the trend shifted by nSigma standard deviations in log10 space.
func (p Params) BandPrice(sigma, nSigma float64, date time.Time) float64 {
	return p.Price(date) * math.Pow(10, nSigma*sigma)
}

// Multiplier is the ratio of an observed price to the trend on date.
func (p Params) Multiplier(price float64, date time.Time) float64 {
	return price / p.Price(date)
}

// Deviation is the observed price expressed in sigmas from trend: log10(multiplier)/sigma.
func (p Params) Deviation(price, sigma float64, date time.Time) float64 {
	return math.Log10(p.Multiplier(price, date)) / sigma
}

// Price is a convenience wrapper for callers holding a model identifier.
func Price(m Model, date time.Time) float64 {
	return MustLookup(m).Price(date)
}
