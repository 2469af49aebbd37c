package handlers

import (
	"context"
	"net/http"
	"time"

	"btc-powerlaw/internal/api/models"
	"btc-powerlaw/internal/trend"

	"github.com/gin-gonic/gin"
)

// LivePricer supplies the current quote, nil when none is available.
type LivePricer interface {
	Get(ctx context.Context) *float64
}

// Handler serves the dashboard API. Sigma values are shared process-wide
// through the SigmaCache; everything else is computed per request.
type Handler struct {
	sigmas *trend.SigmaCache
	live   LivePricer
	now    func() time.Time
}

// NewHandler wires the API. live may be nil to run without quotes.
func NewHandler(sigmas *trend.SigmaCache, live LivePricer) *Handler {
	return &Handler{
		sigmas: sigmas,
		live:   live,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Register mounts every route under group.
func (h *Handler) Register(api *gin.RouterGroup) {
	api.POST("/simulate", h.Simulate)
	api.POST("/simulate/compare", h.Compare)

	api.GET("/trend", h.Trend)
	api.GET("/valuation", h.Valuation)
	api.GET("/sigma", h.Sigma)
	api.GET("/models", h.ListModels)
	api.GET("/scenarios", h.ListScenarios)
}

func (h *Handler) livePrice(ctx context.Context) *float64 {
	if h.live == nil {
		return nil
	}
	return h.live.Get(ctx)
}

func (h *Handler) lookupModel(c *gin.Context, id string) (trend.Params, bool) {
	if id == "" {
		id = string(trend.ModelSantostasi)
	}
	m, err := trend.Lookup(trend.Model(id))
	if err != nil {
		respondError(c, http.StatusBadRequest, "UNKNOWN_MODEL", err.Error())
		return trend.Params{}, false
	}
	return m, true
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}
