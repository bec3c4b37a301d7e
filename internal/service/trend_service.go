package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/domain"
	mr "github.com/dmehra2102/prod-golang-projects/medtimeline/internal/domain/medical_record"
	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/vitals"
	"github.com/dmehra2102/prod-golang-projects/medtimeline/pkg/metrics"
)

type TrendSeries struct {
	Metric             vitals.Metric       `json:"metric"`
	Unit               string              `json:"unit"`
	Points             []vitals.TrendPoint `json:"points"`
	UnavailableSources []string            `json:"unavailable_sources"`
}

type VitalsSummary struct {
	vitals.Summary
	UnavailableSources []string `json:"unavailable_sources"`
}

type TrendService struct {
	store    *StoreReader
	window   int
	auditSvc *AuditService
	metrics  *metrics.Collector
	tracer   trace.Tracer
	log      *zap.Logger
}

// NewTrendService keeps the last window points per series; window <= 0 means vitals.DefaultTrendWindow.
func NewTrendService(store *StoreReader, window int, auditSvc *AuditService, m *metrics.Collector, log *zap.Logger) *TrendService {
	if window <= 0 {
		window = vitals.DefaultTrendWindow
	}
	return &TrendService{
		store:    store,
		window:   window,
		auditSvc: auditSvc,
		metrics:  m,
		tracer:   otel.Tracer(tracerName),
		log:      log,
	}
}

func (s *TrendService) Series(ctx context.Context, userID uuid.UUID, metric vitals.Metric) (*TrendSeries, error) {
	if !slices.Contains(vitals.TrendMetrics, metric) {
		names := make([]string, len(vitals.TrendMetrics))
		for i, m := range vitals.TrendMetrics {
			names[i] = string(m)
		}
		return nil, &ValidationError{Fields: []string{"metric: must be one of " + strings.Join(names, ", ")}}
	}

	ctx, span := s.tracer.Start(ctx, "TrendService.Series", trace.WithAttributes(
		attribute.String("vitals.metric", string(metric)),
	))
	defer span.End()

	records, unavailable, err := s.records(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("building %s series: %w", metric, err)
	}

	points := vitals.BuildSeries(records, metric, s.window)
	s.metrics.TrendSeriesPoints.WithLabelValues(string(metric)).Observe(float64(len(points)))

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       userID,
		Action:       domain.ActionRead,
		ResourceType: "vitals_trend",
		ResourceID:   string(metric),
	})

	return &TrendSeries{
		Metric:             metric,
		Unit:               metric.Unit(),
		Points:             points,
		UnavailableSources: unavailable,
	}, nil
}

func (s *TrendService) Summary(ctx context.Context, userID uuid.UUID) (*VitalsSummary, error) {
	ctx, span := s.tracer.Start(ctx, "TrendService.Summary")
	defer span.End()

	records, unavailable, err := s.records(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("building vitals summary: %w", err)
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       userID,
		Action:       domain.ActionRead,
		ResourceType: "vitals_summary",
		ResourceID:   userID.String(),
	})

	return &VitalsSummary{
		Summary:            vitals.LatestSummary(records),
		UnavailableSources: unavailable,
	}, nil
}

func (s *TrendService) records(ctx context.Context, userID uuid.UUID) ([]*mr.MedicalRecord, []string, error) {
	records, ok := s.store.Records(ctx, userID)
	if err := ctx.Err(); err != nil {
		s.metrics.FetchesDiscarded.Inc()
		return nil, nil, err
	}
	unavailable := []string{}
	if !ok {
		unavailable = append(unavailable, SourceMedicalRecords)
	}
	return records, unavailable, nil
}
