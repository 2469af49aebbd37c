package handlers

import (
	"net/http"
	"time"

	"btc-powerlaw/internal/api/models"
	"btc-powerlaw/internal/config"
	"btc-powerlaw/internal/equity"
	"btc-powerlaw/internal/scenario"
	"btc-powerlaw/internal/trend"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// simulation is a validated request ready to run.
type simulation struct {
	params    equity.LoanParams
	livePrice *float64
	equity    *equity.EquityMetrics
}

// Simulate handles POST /api/v1/simulate
func (h *Handler) Simulate(c *gin.Context) {
	req, sim, ok := h.bindSimulation(c)
	if !ok {
		return
	}

	res := equity.Simulate(sim.params, sim.livePrice)
	summary := equity.Summarize(res)
	zap.L().Debug("simulation complete",
		zap.String("model", string(res.Model)),
		zap.String("scenario", string(res.Scenario)),
		zap.Float64("purchase_price", res.PurchasePrice),
		zap.Float64("roi_percent", summary.ROIPercent))

	resp := models.SimulateResponse{
		Status:    "completed",
		LivePrice: sim.livePrice,
		Purchase: models.PurchaseInfo{
			Date:     res.PurchaseDate,
			Price:    res.PurchasePrice,
			Quantity: res.AssetQuantity,
			Model:    string(res.Model),
			Scenario: string(res.Scenario),
			Sigma:    res.Sigma,
			InitialK: res.InitialK,
		},
		Summary: summary,
		Equity:  sim.equity,
	}
	if req.IncludeMonths {
		resp.Months = res.Months
	}
	c.JSON(http.StatusOK, resp)
}

// Compare handles POST /api/v1/simulate/compare
func (h *Handler) Compare(c *gin.Context) {
	_, sim, ok := h.bindSimulation(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, models.CompareResponse{
		LivePrice:  sim.livePrice,
		Equity:     sim.equity,
		Comparison: equity.CompareScenarios(sim.params, sim.livePrice),
	})
}

func (h *Handler) bindSimulation(c *gin.Context) (*models.SimulateRequest, *simulation, bool) {
	var req models.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return nil, nil, false
	}

	cfg := buildConfig(req)
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_CONFIG", err.Error())
		return nil, nil, false
	}
	if req.LivePrice != nil && !(*req.LivePrice > 0) {
		respondError(c, http.StatusBadRequest, "INVALID_CONFIG", "live_price must be > 0")
		return nil, nil, false
	}

	sigma := h.sigmas.Get(trend.MustLookup(cfg.Trend.Model)).Value
	sim := &simulation{
		params: cfg.LoanParams(h.now(), sigma),
	}

	switch {
	case req.LivePrice != nil:
		sim.livePrice = req.LivePrice
	case !req.IgnoreLive:
		sim.livePrice = h.livePrice(c.Request.Context())
	}

	if req.Home != nil {
		m := equity.ComputeEquityMetrics(req.Home.Value, req.Home.MortgageBalance, req.Loan.Principal)
		sim.equity = &m
	}
	return &req, sim, true
}

func buildConfig(req models.SimulateRequest) *config.Config {
	cfg := &config.Config{
		Loan: config.LoanConfig{
			Principal:      req.Loan.Principal,
			DurationMonths: req.Loan.DurationMonths,
			AnnualRate:     req.Loan.AnnualRate,
			InterestOnly:   req.Loan.InterestOnly,
		},
		Trend: config.TrendConfig{
			Model: trend.Model(req.Model),
			Sigma: req.Sigma,
		},
		Scenario: config.ScenarioConfig{
			Mode:     scenario.Mode(req.Scenario),
			InitialK: req.InitialK,
		},
	}
	if p := req.Loan.Purchase; p != nil {
		cfg.Loan.Purchase = &equity.PurchaseDate{Year: p.Year, Month: time.Month(p.Month)}
	}
	if req.Home != nil {
		cfg.Home = config.HomeConfig{Value: req.Home.Value, MortgageBalance: req.Home.MortgageBalance}
	}
	return cfg
}
