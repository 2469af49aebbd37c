package models

import (
	"time"

	"btc-powerlaw/internal/equity"
	"btc-powerlaw/internal/trend"
)

// SimulateResponse is the result of one simulation.
type SimulateResponse struct {
	Status    string                `json:"status"`
	LivePrice *float64              `json:"live_price"`
	Purchase  PurchaseInfo          `json:"purchase"`
	Summary   equity.Summary        `json:"summary"`
	Equity    *equity.EquityMetrics `json:"equity,omitempty"`
	Months    []equity.MonthRecord  `json:"months,omitempty"`
}

// PurchaseInfo describes how the purchase was priced.
type PurchaseInfo struct {
	Date     time.Time `json:"date"`
	Price    float64   `json:"price"`
	Quantity float64   `json:"quantity"`
	Model    string    `json:"model"`
	Scenario string    `json:"scenario"`
	Sigma    float64   `json:"sigma"`
	InitialK float64   `json:"initial_k"`
}

// CompareResponse holds one entry per scenario, in fixed order.
type CompareResponse struct {
	LivePrice  *float64              `json:"live_price"`
	Equity     *equity.EquityMetrics `json:"equity,omitempty"`
	Comparison []equity.Comparison   `json:"comparison"`
}

// TrendResponse is the chart series for a model.
type TrendResponse struct {
	Model   string            `json:"model"`
	Sigma   float64           `json:"sigma"`
	NSigmas []float64         `json:"n_sigmas"`
	Points  []trend.BandPoint `json:"points"`
}

// ValuationResponse places the current price against a model.
type ValuationResponse struct {
	trend.Valuation
	// Source is "live" for a fetched quote, "history" for the last stored close.
	Source string `json:"source"`
}

// SigmaResponse reports the deviation statistic for a model.
type SigmaResponse struct {
	Model   string  `json:"model"`
	Sigma   float64 `json:"sigma"`
	Samples int     `json:"samples"`
}

// ModelInfo describes a trend model.
type ModelInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Intercept float64   `json:"intercept"`
	Exponent  float64   `json:"exponent"`
	Epoch     time.Time `json:"epoch"`
	Sigma     float64   `json:"sigma"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
