package equity

import "math"

// MaxRecommendedLTV is the combined loan-to-value above which lenders balk.
const MaxRecommendedLTV = 0.80

// MonthlyPayment is the recurring installment for a loan.
//
//   - interest-only: principal * monthly rate; principal is repaid as a balloon.
//     At a zero rate that is $0 a month with the whole principal due at the end.
//   - amortizing at a zero rate: principal / durationMonths, paid evenly.
//   - amortizing otherwise: the fixed annuity P*r / (1 - (1+r)^-n).
//
// annualRate is a fraction (0.045 for 4.5%). durationMonths must be positive.
func MonthlyPayment(principal, annualRate float64, durationMonths int, interestOnly bool) float64 {
	r := annualRate / 12
	if interestOnly {
		return principal * r
	}
	if r == 0 {
		return principal / float64(durationMonths)
	}
	return principal * r / (1 - math.Pow(1+r, -float64(durationMonths)))
}

// EquityMetrics describes a home's equity position before and after a new loan.
type EquityMetrics struct {
	HomeEquity  float64 `json:"home_equity"`
	ExistingLTV float64 `json:"existing_ltv"`
	TotalLTV    float64 `json:"total_ltv"`
	LTVWarning  bool    `json:"ltv_warning"`
}

// ComputeEquityMetrics derives LTV figures for a home equity loan.
// A zero home value reports zero LTV instead of dividing by zero.
func ComputeEquityMetrics(homeValue, mortgageBalance, loanAmount float64) EquityMetrics {
	m := EquityMetrics{HomeEquity: homeValue - mortgageBalance}
	if homeValue == 0 {
		return m
	}
	m.ExistingLTV = mortgageBalance / homeValue
	m.TotalLTV = (mortgageBalance + loanAmount) / homeValue
	m.LTVWarning = m.TotalLTV > MaxRecommendedLTV
	return m
}
