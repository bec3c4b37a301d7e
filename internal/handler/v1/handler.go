package v1

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/domain/prescription"
	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/service"
	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/timeline"
	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/vitals"
)

type TimelineBuilder interface {
	Build(ctx context.Context, userID uuid.UUID, c timeline.Criteria) (*service.TimelineView, error)
}

type TrendReader interface {
	Series(ctx context.Context, userID uuid.UUID, metric vitals.Metric) (*service.TrendSeries, error)
	Summary(ctx context.Context, userID uuid.UUID) (*service.VitalsSummary, error)
}

type PrescriptionAnalyzer interface {
	Get(ctx context.Context, userID, id uuid.UUID) (*prescription.UploadedPrescription, error)
	Analyze(ctx context.Context, userID, id uuid.UUID) (*prescription.UploadedPrescription, error)
}

type Handler struct {
	timeline      TimelineBuilder
	trends        TrendReader
	prescriptions PrescriptionAnalyzer
}

func NewHandler(tl TimelineBuilder, trends TrendReader, rx PrescriptionAnalyzer) *Handler {
	return &Handler{timeline: tl, trends: trends, prescriptions: rx}
}

// Register mounts the v1 routes. rg must already require authentication.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/timeline", h.GetTimeline)

	rg.GET("/trends/:metric", h.GetTrend)
	rg.GET("/vitals/summary", h.GetVitalsSummary)

	rx := rg.Group("/prescriptions")
	rx.GET("/:id", h.GetPrescription)
	rx.POST("/:id/analyze", h.AnalyzePrescription)
}
