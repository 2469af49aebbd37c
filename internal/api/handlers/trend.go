package handlers

import (
	"fmt"
	"net/http"
	"time"

	"btc-powerlaw/internal/api/models"
	"btc-powerlaw/internal/model"
	"btc-powerlaw/internal/scenario"
	"btc-powerlaw/internal/trend"

	"github.com/gin-gonic/gin"
)

const (
	dateLayout        = "2006-01-02"
	defaultStepDays   = 7
	maxTrendPoints    = 5000
	defaultYearsAhead = 10
)

// Trend handles GET /api/v1/trend
func (h *Handler) Trend(c *gin.Context) {
	var q models.TrendQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	m, ok := h.lookupModel(c, q.Model)
	if !ok {
		return
	}

	history := h.sigmas.Series()
	now := h.now()

	from := m.Epoch.AddDate(1, 0, 0)
	if first := firstDate(history); !first.IsZero() {
		from = first
	}
	to := now.AddDate(defaultYearsAhead, 0, 0)

	var err error
	if q.From != "" {
		if from, err = time.Parse(dateLayout, q.From); err != nil {
			respondError(c, http.StatusBadRequest, "INVALID_DATE", fmt.Sprintf("from: %v", err))
			return
		}
	}
	if q.To != "" {
		if to, err = time.Parse(dateLayout, q.To); err != nil {
			respondError(c, http.StatusBadRequest, "INVALID_DATE", fmt.Sprintf("to: %v", err))
			return
		}
	}
	if to.Before(from) {
		respondError(c, http.StatusBadRequest, "INVALID_DATE", "to must not be before from")
		return
	}

	step := q.StepDays
	if step <= 0 {
		step = defaultStepDays
	}
	if points := spanDays(from, to) / int64(step); points > maxTrendPoints {
		respondError(c, http.StatusBadRequest, "TOO_MANY_POINTS",
			fmt.Sprintf("range yields %d points; raise step_days or narrow the range (max %d)", points, maxTrendPoints))
		return
	}

	sigma := h.sigmas.Get(m).Value
	c.JSON(http.StatusOK, models.TrendResponse{
		Model:   string(m.Model),
		Sigma:   sigma,
		NSigmas: trend.DefaultBandSigmas,
		Points: m.Series(sigma, trend.SeriesRequest{
			From:     from,
			To:       to,
			StepDays: step,
		}, history),
	})
}

// Valuation handles GET /api/v1/valuation
func (h *Handler) Valuation(c *gin.Context) {
	m, ok := h.lookupModel(c, c.Query("model"))
	if !ok {
		return
	}
	sigma := h.sigmas.Get(m).Value

	if p := h.livePrice(c.Request.Context()); p != nil {
		c.JSON(http.StatusOK, models.ValuationResponse{
			Valuation: m.Valuate(*p, sigma, h.now()),
			Source:    "live",
		})
		return
	}

	last, ok := h.sigmas.Series().Last()
	if !ok {
		respondError(c, http.StatusServiceUnavailable, "PRICE_UNAVAILABLE", "no live price and no price history loaded")
		return
	}
	c.JSON(http.StatusOK, models.ValuationResponse{
		Valuation: m.Valuate(last.Price, sigma, last.Date),
		Source:    "history",
	})
}

// Sigma handles GET /api/v1/sigma
func (h *Handler) Sigma(c *gin.Context) {
	m, ok := h.lookupModel(c, c.Query("model"))
	if !ok {
		return
	}
	s := h.sigmas.Get(m)
	c.JSON(http.StatusOK, models.SigmaResponse{
		Model:   string(m.Model),
		Sigma:   s.Value,
		Samples: s.Samples,
	})
}

// ListModels handles GET /api/v1/models
func (h *Handler) ListModels(c *gin.Context) {
	all := trend.Models()
	out := make([]models.ModelInfo, 0, len(all))
	for _, m := range all {
		out = append(out, models.ModelInfo{
			ID:        string(m.Model),
			Name:      m.Name,
			Intercept: m.Intercept,
			Exponent:  m.Exponent,
			Epoch:     m.Epoch,
			Sigma:     h.sigmas.Get(m).Value,
		})
	}
	c.JSON(http.StatusOK, gin.H{"models": out})
}

// ListScenarios handles GET /api/v1/scenarios
func (h *Handler) ListScenarios(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"scenarios": scenario.Catalog()})
}

// spanDays counts whole days between from and to. time.Duration saturates
// near 292 years, so this works on Unix seconds.
func spanDays(from, to time.Time) int64 {
	return (to.Unix() - from.Unix()) / 86400
}

func firstDate(s model.HistoricalSeries) time.Time {
	if len(s) == 0 {
		return time.Time{}
	}
	return s[0].Date
}
