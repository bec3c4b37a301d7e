package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/analysis"
	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/domain/prescription"
	"github.com/dmehra2102/prod-golang-projects/medtimeline/pkg/metrics"
)

type Analyzer interface {
	Enabled() bool
	Analyze(ctx context.Context, req analysis.Request) (string, error)
}

type PrescriptionService struct {
	repo     prescription.Repository
	analyzer Analyzer
	auditSvc *AuditService
	metrics  *metrics.Collector
	tracer   trace.Tracer
	log      *zap.Logger
}

func NewPrescriptionService(repo prescription.Repository, analyzer Analyzer, auditSvc *AuditService, m *metrics.Collector, log *zap.Logger) *PrescriptionService {
	return &PrescriptionService{
		repo:     repo,
		analyzer: analyzer,
		auditSvc: auditSvc,
		metrics:  m,
		tracer:   otel.Tracer(tracerName),
		log:      log,
	}
}

func (s *PrescriptionService) Get(ctx context.Context, userID, id uuid.UUID) (*prescription.UploadedPrescription, error) {
	p, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       userID,
		Action:       domain.ActionRead,
		ResourceType: "prescription",
		ResourceID:   id.String(),
	})

	return p, nil
}

// Analyze moves a new prescription to processing, calls the analyzer and
// records the outcome as analyzed or error. Both outcomes are terminal. If ctx
// ends while the analyzer is running the row stays in processing.
func (s *PrescriptionService) Analyze(ctx context.Context, userID, id uuid.UUID) (*prescription.UploadedPrescription, error) {
	ctx, span := s.tracer.Start(ctx, "PrescriptionService.Analyze", trace.WithAttributes(
		attribute.String("prescription.id", id.String()),
	))
	defer span.End()

	if !s.analyzer.Enabled() {
		return nil, fmt.Errorf("%w: %w", ErrAnalysisUnavailable, analysis.ErrDisabled)
	}

	p, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		return nil, ErrForbidden
	}

	if err := p.StartAnalysis(); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateAnalysis(ctx, p); err != nil {
		return nil, fmt.Errorf("marking prescription processing: %w", err)
	}

	summary, err := s.analyzer.Analyze(ctx, analysis.Request{
		FileName: p.FileName,
		FileURL:  p.FileURL,
		FileType: p.FileType,
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			s.metrics.PrescriptionAnalyses.WithLabelValues("abandoned").Inc()
			return nil, fmt.Errorf("analyzing prescription: %w", ctxErr)
		}
		return nil, s.fail(ctx, span, p, err)
	}

	if err := p.CompleteAnalysis(summary); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateAnalysis(ctx, p); err != nil {
		return nil, fmt.Errorf("saving prescription analysis: %w", err)
	}
	s.metrics.PrescriptionAnalyses.WithLabelValues(string(prescription.StatusAnalyzed)).Inc()

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       userID,
		Action:       domain.ActionAnalyze,
		ResourceType: "prescription",
		ResourceID:   id.String(),
		Details:      `{"status":"analyzed"}`,
	})

	return p, nil
}

func (s *PrescriptionService) fail(ctx context.Context, span trace.Span, p *prescription.UploadedPrescription, cause error) error {
	span.RecordError(cause)
	span.SetStatus(codes.Error, "analysis failed")
	s.log.Error("prescription analysis failed",
		zap.String("prescription_id", p.ID.String()),
		zap.String("user_id", p.UserID.String()),
		zap.Error(cause),
	)

	if err := p.FailAnalysis(); err != nil {
		return err
	}
	if err := s.repo.UpdateAnalysis(ctx, p); err != nil {
		return fmt.Errorf("saving failed prescription analysis: %w", err)
	}
	s.metrics.PrescriptionAnalyses.WithLabelValues(string(prescription.StatusError)).Inc()

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       p.UserID,
		Action:       domain.ActionAnalyze,
		ResourceType: "prescription",
		ResourceID:   p.ID.String(),
		Details:      `{"status":"error"}`,
	})

	if errors.Is(cause, analysis.ErrUnavailable) {
		return fmt.Errorf("%w: %w", ErrAnalysisUnavailable, cause)
	}
	return fmt.Errorf("%w: %w", ErrAnalysisFailed, cause)
}
