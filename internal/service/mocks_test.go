package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/analysis"
	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/config"
	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/domain/checkup"
	mr "github.com/dmehra2102/prod-golang-projects/medtimeline/internal/domain/medical_record"
	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/domain/medication"
	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/domain/prescription"
	"github.com/dmehra2102/prod-golang-projects/medtimeline/pkg/metrics"
)

// --- record store mocks ---

type mockRecordRepo struct {
	ListByUserFunc func(ctx context.Context, userID uuid.UUID) ([]*mr.MedicalRecord, error)
	calls          atomic.Int32
}

func (m *mockRecordRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*mr.MedicalRecord, error) {
	m.calls.Add(1)
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, nil
}

type mockCheckupRepo struct {
	ListByUserFunc func(ctx context.Context, userID uuid.UUID) ([]*checkup.Checkup, error)
	calls          atomic.Int32
}

func (m *mockCheckupRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*checkup.Checkup, error) {
	m.calls.Add(1)
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, nil
}

type mockMedicationRepo struct {
	ListByUserFunc func(ctx context.Context, userID uuid.UUID) ([]*medication.Medication, error)
}

func (m *mockMedicationRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*medication.Medication, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, nil
}

// mockPrescriptionRepo is map-backed and hands out copies, like a real store.
type mockPrescriptionRepo struct {
	mu       sync.Mutex
	rows     map[uuid.UUID]prescription.UploadedPrescription
	history  []prescription.Status
	listErr  error
	updateFn func(p *prescription.UploadedPrescription) error
}

func newMockPrescriptionRepo(rows ...prescription.UploadedPrescription) *mockPrescriptionRepo {
	m := &mockPrescriptionRepo{rows: make(map[uuid.UUID]prescription.UploadedPrescription)}
	for _, r := range rows {
		m.rows[r.ID] = r
	}
	return m
}

func (m *mockPrescriptionRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*prescription.UploadedPrescription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []*prescription.UploadedPrescription
	for _, r := range m.rows {
		if r.UserID == userID {
			cp := r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *mockPrescriptionRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*prescription.UploadedPrescription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok || r.UserID != userID {
		return nil, prescription.ErrPrescriptionNotFound
	}
	cp := r
	return &cp, nil
}

func (m *mockPrescriptionRepo) UpdateAnalysis(ctx context.Context, p *prescription.UploadedPrescription) error {
	if m.updateFn != nil {
		if err := m.updateFn(p); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[p.ID] = *p
	m.history = append(m.history, p.Status)
	return nil
}

func (m *mockPrescriptionRepo) get(id uuid.UUID) prescription.UploadedPrescription {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rows[id]
}

// --- audit ---

type mockAuditRepo struct {
	mu      sync.Mutex
	entries []*domain.AuditLog
	block   chan struct{}
}

func (m *mockAuditRepo) Create(ctx context.Context, entry *domain.AuditLog) error {
	if m.block != nil {
		<-m.block
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockAuditRepo) all() []*domain.AuditLog {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.AuditLog(nil), m.entries...)
}

// --- analyzer ---

type mockAnalyzer struct {
	enabled     bool
	AnalyzeFunc func(ctx context.Context, req analysis.Request) (string, error)
	calls       atomic.Int32
}

func (m *mockAnalyzer) Enabled() bool { return m.enabled }

func (m *mockAnalyzer) Analyze(ctx context.Context, req analysis.Request) (string, error) {
	m.calls.Add(1)
	if m.AnalyzeFunc != nil {
		return m.AnalyzeFunc(ctx, req)
	}
	return "summary", nil
}

// --- fixtures ---

func ptr[T any](v T) *T { return &v }

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func testStoreConfig() config.StoreConfig {
	return config.StoreConfig{
		FetchTimeout:     time.Second,
		BreakerFailures:  5,
		BreakerOpenFor:   time.Minute,
		BreakerHalfOpen:  1,
		BreakerResetEach: 0,
	}
}

func newTestMetrics() *metrics.Collector {
	return metrics.NewCollector("test", prometheus.NewRegistry())
}

// newTestAudit returns an audit service whose entries are flushed by the
// returned drain func. Call drain before inspecting repo.
func newTestAudit(t *testing.T, m *metrics.Collector) (*AuditService, *mockAuditRepo, func()) {
	t.Helper()
	repo := &mockAuditRepo{}
	svc := NewAuditService(repo, m, zap.NewNop())
	var once sync.Once
	drain := func() { once.Do(svc.Shutdown) }
	t.Cleanup(drain)
	return svc, repo, drain
}
