package model

import (
	"sort"
	"time"
)

// PricePoint is one observed daily close in USD.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Price float64   `json:"price"`
}

// HistoricalSeries is a date-ascending sequence of observed prices.
// It is read-only once loaded; loaders sort it before returning.
type HistoricalSeries []PricePoint

// SortByDate orders the series ascending in place.
func (s HistoricalSeries) SortByDate() {
	sort.SliceStable(s, func(i, j int) bool { return s[i].Date.Before(s[j].Date) })
}

// Last returns the most recent point, if any.
func (s HistoricalSeries) Last() (PricePoint, bool) {
	if len(s) == 0 {
		return PricePoint{}, false
	}
	return s[len(s)-1], true
}

// PriceOn returns the observed price on the calendar day of t (UTC).
// The series must be sorted.
func (s HistoricalSeries) PriceOn(t time.Time) (float64, bool) {
	day := t.UTC().Truncate(24 * time.Hour)
	i := sort.Search(len(s), func(i int) bool {
		return !s[i].Date.UTC().Truncate(24 * time.Hour).Before(day)
	})
	if i < len(s) && s[i].Date.UTC().Truncate(24*time.Hour).Equal(day) {
		return s[i].Price, true
	}
	return 0, false
}
