package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/service"
	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/vitals"
)

// GetTrend handles GET /trends/:metric.
func (h *Handler) GetTrend(c *gin.Context) {
	userID, ok := caller(c)
	if !ok {
		return
	}

	metric, err := vitals.ParseMetric(c.Param("metric"))
	if err != nil {
		respondServiceError(c, &service.ValidationError{
			Fields: []string{"metric: must be one of heart-rate, blood-pressure, weight, blood-sugar"},
		})
		return
	}

	series, err := h.trends.Series(requestContext(c), userID, metric)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, series)
}

func (h *Handler) GetVitalsSummary(c *gin.Context) {
	userID, ok := caller(c)
	if !ok {
		return
	}

	summary, err := h.trends.Summary(requestContext(c), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, summary)
}
