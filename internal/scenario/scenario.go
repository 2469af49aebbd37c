// Package scenario projects future prices as a deviation from a trend model.
//
// A scenario is a curve k(t): the number of sigmas the price sits above (k>0)
// or below (k<0) the trend, t years after the projection starts. The projected
// price is trend * 10^(k*sigma).
package scenario

import (
	"errors"
	"fmt"
	"math"
	"time"

	"btc-powerlaw/internal/trend"
)

// Mode selects a scenario curve.
type Mode string

const (
	SmoothTrend    Mode = "smooth_trend"
	SmoothBear     Mode = "smooth_bear"
	SmoothDeepBear Mode = "smooth_deep_bear"
	Cyclical       Mode = "cyclical"
	CyclicalBear   Mode = "cyclical_bear"
)

var ErrUnknownMode = errors.New("unknown scenario mode")

// Modes returns every mode in comparison order.
func Modes() []Mode {
	return []Mode{SmoothTrend, SmoothBear, SmoothDeepBear, Cyclical, CyclicalBear}
}

// ParseMode validates an identifier.
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	for _, known := range Modes() {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// curve is the closed form shared by every mode:
//
//	k(t) = k0*w(t) + mean*(1-w(t)) + amplitude*exp(-damping*t)*sin(2*pi*t/period)
//	w(t) = exp(-t/reversion)
//
// w(0) is exactly 1 and sin(0) exactly 0, so k(0) == k0 bit for bit.
type curve struct {
	mean        float64
	amplitude   float64
	periodYears float64
	damping     float64
	reversion   float64
}

func curveFor(m Mode) curve {
	switch m {
	case SmoothTrend:
		return curve{mean: 0, reversion: 3}
	case SmoothBear:
		return curve{mean: -0.5, reversion: 3}
	case SmoothDeepBear:
		return curve{mean: -1.0, reversion: 3}
	case Cyclical:
		return curve{mean: 0, amplitude: 1.0, periodYears: 4, damping: 0.1, reversion: 1.5}
	case CyclicalBear:
		return curve{mean: -0.5, amplitude: 0.8, periodYears: 4, damping: 0.1, reversion: 1.5}
	default:
		panic(fmt.Errorf("%w: %q", ErrUnknownMode, m))
	}
}

func (c curve) k(t, k0 float64) float64 {
	w := math.Exp(-t / c.reversion)
	k := k0*w + c.mean*(1-w)
	if c.amplitude != 0 {
		k += c.amplitude * math.Exp(-c.damping*t) * math.Sin(2*math.Pi*t/c.periodYears)
	}
	return k
}

// DefaultInitialK is where every mode starts when no deviation is supplied:
// on the trend line.
const DefaultInitialK = 0.0

// ResolveK returns k for mode m, yearsElapsed after the start of the projection.
// When initialK is non-nil the curve starts at *initialK instead of DefaultInitialK,
// and ResolveK(m, 0, initialK) == *initialK exactly.
func ResolveK(m Mode, yearsElapsed float64, initialK *float64) float64 {
	k0 := DefaultInitialK
	if initialK != nil {
		k0 = *initialK
	}
	return curveFor(m).k(yearsElapsed, k0)
}

// Price is the scenario price on date for deviation k.
func Price(p trend.Params, date time.Time, sigma, k float64) float64 {
	return p.Price(date) * math.Pow(10, k*sigma)
}

var labels = map[Mode]string{
	SmoothTrend:    "Smooth reversion to trend",
	SmoothBear:     "Prolonged bear (-0.5σ)",
	SmoothDeepBear: "Deep bear (-1σ)",
	Cyclical:       "4-year cycles",
	CyclicalBear:   "Bearish cycles",
}

var descriptions = map[Mode]string{
	SmoothTrend:    "Deviation decays toward the trend line.",
	SmoothBear:     "Deviation settles half a sigma below trend.",
	SmoothDeepBear: "Deviation settles a full sigma below trend.",
	Cyclical:       "Damped four-year oscillation around the trend.",
	CyclicalBear:   "Damped four-year oscillation around half a sigma below trend.",
}

// Label is the display name of a mode.
func Label(m Mode) string {
	return labels[m]
}

// Info describes a mode for catalog listings.
type Info struct {
	Mode        Mode   `json:"mode"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// Catalog lists every mode in comparison order.
func Catalog() []Info {
	out := make([]Info, 0, len(Modes()))
	for _, m := range Modes() {
		out = append(out, Info{Mode: m, Label: labels[m], Description: descriptions[m]})
	}
	return out
}
