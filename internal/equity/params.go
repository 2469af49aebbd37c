package equity

import (
	"time"

	"btc-powerlaw/internal/scenario"
	"btc-powerlaw/internal/trend"
)

// PurchaseDate schedules the BTC purchase for the first day of a future month.
type PurchaseDate struct {
	Year  int        `json:"year" yaml:"year"`
	Month time.Month `json:"month" yaml:"month"`
}

// Time returns midnight UTC on the first of the month.
func (p PurchaseDate) Time() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// LoanParams fully specifies one simulation.
//
// Inputs are not validated here: Principal and DurationMonths must be positive,
// AnnualRate non-negative, and every float finite. Boundaries (config, API)
// reject malformed values before calling in.
type LoanParams struct {
	Principal      float64
	DurationMonths int
	// AnnualRate is a fraction: 0.045 is 4.5% a year.
	AnnualRate   float64
	InterestOnly bool

	// Purchase is nil to buy at Now.
	Purchase *PurchaseDate

	Model trend.Model
	// Sigma overrides the model's fallback when positive.
	Sigma    float64
	Scenario scenario.Mode
	// InitialK anchors the scenario at its start. Nil means: derive it from the
	// live price when one is supplied, otherwise use the mode default.
	InitialK *float64

	// Now is the valuation date the scenario clock starts from.
	Now time.Time
}

func (p LoanParams) sigma(m trend.Params) float64 {
	if p.Sigma > 0 {
		return p.Sigma
	}
	return m.FallbackSigma
}

func (p LoanParams) now() time.Time {
	if p.Now.IsZero() {
		return time.Now().UTC()
	}
	return p.Now
}
