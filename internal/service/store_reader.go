package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/config"
	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/domain/checkup"
	mr "github.com/dmehra2102/prod-golang-projects/medtimeline/internal/domain/medical_record"
	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/domain/medication"
	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/domain/prescription"
	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/timeline"
	"github.com/dmehra2102/prod-golang-projects/medtimeline/pkg/metrics"
)

const (
	SourceMedicalRecords = "medical_records"
	SourcePrescriptions  = "uploaded_prescriptions"
	SourceCheckups       = "checkups"
	SourceMedications    = "medications"
)

type Repositories struct {
	Records       mr.Repository
	Prescriptions prescription.Repository
	Checkups      checkup.Repository
	Medications   medication.Repository
}

type source[T any] struct {
	name     string
	list     func(ctx context.Context, userID uuid.UUID) ([]T, error)
	validate func(T) error
	cb       *gobreaker.CircuitBreaker[[]T]
}

// newSource wraps list in its own breaker. validate may be nil; rows it
// rejects are dropped from the result and logged.
func newSource[T any](
	name string,
	list func(context.Context, uuid.UUID) ([]T, error),
	validate func(T) error,
	cfg config.StoreConfig,
	m *metrics.Collector,
	log *zap.Logger,
) *source[T] {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.BreakerHalfOpen,
		Interval:    cfg.BreakerResetEach,
		Timeout:     cfg.BreakerOpenFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
		// A caller hanging up says nothing about the store.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			m.SourceBreakerState.WithLabelValues(name).Set(float64(to))
			log.Warn("record source breaker state changed",
				zap.String("source", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	}
	m.SourceBreakerState.WithLabelValues(name).Set(float64(gobreaker.StateClosed))

	return &source[T]{
		name:     name,
		list:     list,
		validate: validate,
		cb:       gobreaker.NewCircuitBreaker[[]T](settings),
	}
}

func (s *source[T]) fetch(ctx context.Context, userID uuid.UUID, timeout time.Duration) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return s.cb.Execute(func() ([]T, error) {
		return s.list(ctx, userID)
	})
}

// StoreReader reads one user's collections from the record store. A source
// that fails, times out or has an open breaker yields an empty collection and
// is reported as unavailable; it never fails the read as a whole.
type StoreReader struct {
	records       *source[*mr.MedicalRecord]
	prescriptions *source[*prescription.UploadedPrescription]
	checkups      *source[*checkup.Checkup]
	medications   *source[*medication.Medication]

	timeout time.Duration
	metrics *metrics.Collector
	log     *zap.Logger
}

func NewStoreReader(repos Repositories, cfg config.StoreConfig, m *metrics.Collector, log *zap.Logger) *StoreReader {
	return &StoreReader{
		records:       newSource(SourceMedicalRecords, repos.Records.ListByUser, (*mr.MedicalRecord).Validate, cfg, m, log),
		prescriptions: newSource(SourcePrescriptions, repos.Prescriptions.ListByUser, (*prescription.UploadedPrescription).Validate, cfg, m, log),
		checkups:      newSource[*checkup.Checkup](SourceCheckups, repos.Checkups.ListByUser, nil, cfg, m, log),
		medications:   newSource(SourceMedications, repos.Medications.ListByUser, (*medication.Medication).Validate, cfg, m, log),
		timeout:       cfg.FetchTimeout,
		metrics:       m,
		log:           log,
	}
}

// ReadAll fetches the four sources concurrently. Unavailable source names are
// returned in a fixed order.
func (r *StoreReader) ReadAll(ctx context.Context, userID uuid.UUID) (timeline.Sources, []string) {
	var (
		src   timeline.Sources
		avail [4]bool
		g     errgroup.Group
	)

	g.Go(func() error {
		src.Records, avail[0] = read(ctx, r, r.records, userID)
		return nil
	})
	g.Go(func() error {
		src.Prescriptions, avail[1] = read(ctx, r, r.prescriptions, userID)
		return nil
	})
	g.Go(func() error {
		src.Checkups, avail[2] = read(ctx, r, r.checkups, userID)
		return nil
	})
	g.Go(func() error {
		src.Medications, avail[3] = read(ctx, r, r.medications, userID)
		return nil
	})
	_ = g.Wait()

	names := [4]string{SourceMedicalRecords, SourcePrescriptions, SourceCheckups, SourceMedications}
	unavailable := []string{}
	for i, ok := range avail {
		if !ok {
			unavailable = append(unavailable, names[i])
		}
	}
	return src, unavailable
}

// Records reads only the medical records. ok is false when the source was unavailable.
func (r *StoreReader) Records(ctx context.Context, userID uuid.UUID) ([]*mr.MedicalRecord, bool) {
	return read(ctx, r, r.records, userID)
}

func read[T any](ctx context.Context, r *StoreReader, s *source[T], userID uuid.UUID) ([]T, bool) {
	rows, err := s.fetch(ctx, userID, r.timeout)
	if err != nil {
		if ctx.Err() != nil {
			return []T{}, false
		}
		r.metrics.SourceFetchFailures.WithLabelValues(s.name).Inc()
		r.log.Warn("record source unavailable, continuing without it",
			zap.String("source", s.name),
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return []T{}, false
	}
	return keepValid(r, s, userID, rows), true
}

func keepValid[T any](r *StoreReader, s *source[T], userID uuid.UUID, rows []T) []T {
	kept := make([]T, 0, len(rows))
	for _, row := range rows {
		if s.validate != nil {
			if err := s.validate(row); err != nil {
				r.metrics.SourceRowsRejected.WithLabelValues(s.name).Inc()
				r.log.Warn("skipping invalid row",
					zap.String("source", s.name),
					zap.String("user_id", userID.String()),
					zap.Error(err),
				)
				continue
			}
		}
		kept = append(kept, row)
	}
	return kept
}
