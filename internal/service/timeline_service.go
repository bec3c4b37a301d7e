package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/timeline"
	"github.com/dmehra2102/prod-golang-projects/medtimeline/pkg/metrics"
)

const tracerName = "github.com/dmehra2102/prod-golang-projects/medtimeline/internal/service"

// TimelineView is a filtered timeline plus the sources that could not be read.
type TimelineView struct {
	timeline.View
	UnavailableSources []string  `json:"unavailable_sources"`
	GeneratedAt        time.Time `json:"generated_at"`
}

type TimelineService struct {
	store      *StoreReader
	normalizer *timeline.Normalizer
	auditSvc   *AuditService
	metrics    *metrics.Collector
	tracer     trace.Tracer
	log        *zap.Logger
	now        func() time.Time
}

func NewTimelineService(store *StoreReader, normalizer *timeline.Normalizer, auditSvc *AuditService, m *metrics.Collector, log *zap.Logger) *TimelineService {
	return &TimelineService{
		store:      store,
		normalizer: normalizer,
		auditSvc:   auditSvc,
		metrics:    m,
		tracer:     otel.Tracer(tracerName),
		log:        log,
		now:        time.Now,
	}
}

// Build reads every source of userID, aggregates and filters. Unreadable
// sources are left out and named in the view. The only error is the caller's
// context ending before the result is committed; nothing fetched is returned then.
func (s *TimelineService) Build(ctx context.Context, userID uuid.UUID, c timeline.Criteria) (*TimelineView, error) {
	ctx, span := s.tracer.Start(ctx, "TimelineService.Build", trace.WithAttributes(
		attribute.String("timeline.category", string(c.Category)),
		attribute.String("timeline.window", string(c.Window)),
	))
	defer span.End()

	start := time.Now()
	src, unavailable := s.store.ReadAll(ctx, userID)

	if err := ctx.Err(); err != nil {
		s.metrics.FetchesDiscarded.Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "caller went away")
		return nil, fmt.Errorf("building timeline: %w", err)
	}

	events := s.normalizer.Aggregate(src)
	s.metrics.TimelineEvents.Observe(float64(len(events)))

	now := s.now()
	view := &TimelineView{
		View:               timeline.Build(events, c, now),
		UnavailableSources: unavailable,
		GeneratedAt:        now.UTC(),
	}
	s.metrics.TimelineBuildDuration.Observe(time.Since(start).Seconds())

	span.SetAttributes(
		attribute.Int("timeline.total", view.Total),
		attribute.Int("timeline.count", view.Count),
		attribute.StringSlice("timeline.unavailable_sources", unavailable),
	)
	if len(unavailable) > 0 {
		s.log.Info("timeline built with missing sources",
			zap.String("user_id", userID.String()),
			zap.Strings("unavailable", unavailable),
		)
	}

	details, _ := json.Marshal(map[string]any{
		"search":   c.Search,
		"category": c.Category,
		"window":   c.Window,
		"count":    view.Count,
	})
	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       userID,
		Action:       domain.ActionRead,
		ResourceType: "timeline",
		ResourceID:   userID.String(),
		Details:      string(details),
	})

	return view, nil
}
