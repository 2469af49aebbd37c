package equity

import (
	"time"

	"btc-powerlaw/internal/scenario"
	"btc-powerlaw/internal/trend"
)

// MonthRecord is one month of the projection. Month 0 is the purchase month.
type MonthRecord struct {
	Month int       `json:"month"`
	Date  time.Time `json:"date"`
	// Year is the whole number of years since purchase.
	Year int     `json:"year"`
	K    float64 `json:"k"`

	Price      float64 `json:"price"`
	TrendPrice float64 `json:"trend_price"`

	Payment       float64 `json:"payment"`
	InterestPaid  float64 `json:"interest_paid"`
	PrincipalPaid float64 `json:"principal_paid"`

	CumulativePayments float64 `json:"cumulative_payments"`
	CumulativeInterest float64 `json:"cumulative_interest"`
	RemainingBalance   float64 `json:"remaining_balance"`

	AssetValue  float64 `json:"asset_value"`
	NetPosition float64 `json:"net_position"`
	LTV         float64 `json:"ltv"`
	// ROI is a percentage of what the loan costs to settle at this month.
	ROI float64 `json:"roi"`
}

// Result is a complete projection for one set of LoanParams.
type Result struct {
	Model    trend.Model   `json:"model"`
	Scenario scenario.Mode `json:"scenario"`
	Sigma    float64       `json:"sigma"`
	InitialK float64       `json:"initial_k"`

	PurchaseDate   time.Time `json:"purchase_date"`
	PurchasePrice  float64   `json:"purchase_price"`
	AssetQuantity  float64   `json:"asset_quantity"`
	MonthlyPayment float64   `json:"monthly_payment"`

	Months []MonthRecord `json:"months"`
	// BreakEvenMonth is the first month after purchase where asset value covers
	// cumulative payments, nil when that never happens within the loan term.
	BreakEvenMonth *int `json:"break_even_month"`
}
