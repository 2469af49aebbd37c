package models

// SimulateRequest is the body of POST /api/v1/simulate and /api/v1/simulate/compare.
type SimulateRequest struct {
	Loan     LoanRequest  `json:"loan" binding:"required"`
	Home     *HomeRequest `json:"home,omitempty"`
	Model    string       `json:"model,omitempty"`    // default: santostasi
	Sigma    float64      `json:"sigma,omitempty"`    // 0 = computed from history
	Scenario string       `json:"scenario,omitempty"` // default: smooth_trend
	InitialK *float64     `json:"initial_k,omitempty"`
	// LivePrice overrides the server-side quote. Omit it to use the fetched price.
	LivePrice     *float64 `json:"live_price,omitempty"`
	IgnoreLive    bool     `json:"ignore_live,omitempty"` // simulate as if no quote were available
	IncludeMonths bool     `json:"include_months,omitempty"`
}

// LoanRequest defines the equity loan.
type LoanRequest struct {
	Principal      float64          `json:"principal" binding:"required"`
	DurationMonths int              `json:"duration_months" binding:"required"`
	AnnualRate     float64          `json:"annual_rate"` // fraction, 0.045 = 4.5%
	InterestOnly   bool             `json:"interest_only,omitempty"`
	Purchase       *PurchaseRequest `json:"purchase,omitempty"`
}

// PurchaseRequest schedules the purchase for the first day of a future month.
type PurchaseRequest struct {
	Year  int `json:"year" binding:"required"`
	Month int `json:"month" binding:"required"`
}

// HomeRequest describes the collateral.
type HomeRequest struct {
	Value           float64 `json:"value"`
	MortgageBalance float64 `json:"mortgage_balance"`
}

// TrendQuery are the query parameters of GET /api/v1/trend.
type TrendQuery struct {
	Model    string `form:"model"`
	From     string `form:"from"` // YYYY-MM-DD
	To       string `form:"to"`   // YYYY-MM-DD
	StepDays int    `form:"step_days"`
}
