package v1

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/domain/prescription"
	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/middleware"
	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/service"
	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/timeline"
	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/vitals"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubTimeline struct {
	got  timeline.Criteria
	view *service.TimelineView
	err  error
}

func (s *stubTimeline) Build(ctx context.Context, userID uuid.UUID, c timeline.Criteria) (*service.TimelineView, error) {
	s.got = c
	return s.view, s.err
}

type stubTrends struct {
	gotMetric vitals.Metric
	err       error
}

func (s *stubTrends) Series(ctx context.Context, userID uuid.UUID, metric vitals.Metric) (*service.TrendSeries, error) {
	s.gotMetric = metric
	if s.err != nil {
		return nil, s.err
	}
	return &service.TrendSeries{Metric: metric, Unit: metric.Unit(), Points: []vitals.TrendPoint{}, UnavailableSources: []string{}}, nil
}

func (s *stubTrends) Summary(ctx context.Context, userID uuid.UUID) (*service.VitalsSummary, error) {
	return &service.VitalsSummary{Summary: vitals.Summary{Readings: []vitals.Reading{}}, UnavailableSources: []string{}}, s.err
}

type stubPrescriptions struct {
	GetFunc     func(ctx context.Context, userID, id uuid.UUID) (*prescription.UploadedPrescription, error)
	AnalyzeFunc func(ctx context.Context, userID, id uuid.UUID) (*prescription.UploadedPrescription, error)
}

func (s *stubPrescriptions) Get(ctx context.Context, userID, id uuid.UUID) (*prescription.UploadedPrescription, error) {
	return s.GetFunc(ctx, userID, id)
}

func (s *stubPrescriptions) Analyze(ctx context.Context, userID, id uuid.UUID) (*prescription.UploadedPrescription, error) {
	return s.AnalyzeFunc(ctx, userID, id)
}

func newTestRouter(h *Handler, userID uuid.UUID) *gin.Engine {
	r := gin.New()
	api := r.Group("/api/v1", func(c *gin.Context) {
		if userID != uuid.Nil {
			c.Set(middleware.ContextKeyClaims, &domain.Claims{UserID: userID})
		}
		c.Next()
	})
	h.Register(api)
	return r
}

func do(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestGetTimeline(t *testing.T) {
	tl := &stubTimeline{view: &service.TimelineView{
		View:               timeline.View{Groups: []timeline.DayGroup{}, Count: 0, Total: 3},
		UnavailableSources: []string{service.SourceCheckups},
	}}
	r := newTestRouter(NewHandler(tl, &stubTrends{}, &stubPrescriptions{}), uuid.New())

	w := do(r, http.MethodGet, "/api/v1/timeline?search=%20blood%20&category=record&window=3months")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, timeline.Criteria{Search: "blood", Category: timeline.TypeRecord, Window: timeline.Window3Months}, tl.got)

	var body struct {
		Data struct {
			Total              int      `json:"total"`
			UnavailableSources []string `json:"unavailable_sources"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 3, body.Data.Total)
	assert.Equal(t, []string{"checkups"}, body.Data.UnavailableSources)
}

func TestGetTimeline_Defaults(t *testing.T) {
	tl := &stubTimeline{view: &service.TimelineView{}}
	r := newTestRouter(NewHandler(tl, &stubTrends{}, &stubPrescriptions{}), uuid.New())

	require.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/v1/timeline").Code)
	assert.Equal(t, timeline.Criteria{Category: timeline.TypeAll, Window: timeline.WindowAll}, tl.got)
}

func TestGetTimeline_InvalidQuery(t *testing.T) {
	r := newTestRouter(NewHandler(&stubTimeline{}, &stubTrends{}, &stubPrescriptions{}), uuid.New())

	w := do(r, http.MethodGet, "/api/v1/timeline?category=surgery&window=2weeks")
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body ValidationErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Fields, 2)
}

func TestGetTimeline_Unauthenticated(t *testing.T) {
	r := newTestRouter(NewHandler(&stubTimeline{}, &stubTrends{}, &stubPrescriptions{}), uuid.Nil)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/api/v1/timeline").Code)
}

func TestGetTrend(t *testing.T) {
	trends := &stubTrends{}
	r := newTestRouter(NewHandler(&stubTimeline{}, trends, &stubPrescriptions{}), uuid.New())

	w := do(r, http.MethodGet, "/api/v1/trends/blood-sugar")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, vitals.MetricBloodSugar, trends.gotMetric)
	assert.Contains(t, w.Body.String(), `"points":[]`)

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/api/v1/trends/cholesterol").Code)
}

func TestGetVitalsSummary(t *testing.T) {
	r := newTestRouter(NewHandler(&stubTimeline{}, &stubTrends{}, &stubPrescriptions{}), uuid.New())

	w := do(r, http.MethodGet, "/api/v1/vitals/summary")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"readings":[]`)
}

func TestAnalyzePrescription_ErrorMapping(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{prescription.ErrPrescriptionNotFound, http.StatusNotFound},
		{prescription.ErrInvalidStatusTransition, http.StatusConflict},
		{fmt.Errorf("%w: breaker open", service.ErrAnalysisUnavailable), http.StatusServiceUnavailable},
		{fmt.Errorf("%w: model overloaded", service.ErrAnalysisFailed), http.StatusBadGateway},
		{service.ErrForbidden, http.StatusForbidden},
		{&service.ValidationError{Fields: []string{"id"}}, http.StatusBadRequest},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rx := &stubPrescriptions{AnalyzeFunc: func(ctx context.Context, userID, id uuid.UUID) (*prescription.UploadedPrescription, error) {
				return nil, tt.err
			}}
			r := newTestRouter(NewHandler(&stubTimeline{}, &stubTrends{}, rx), uuid.New())

			w := do(r, http.MethodPost, "/api/v1/prescriptions/"+uuid.NewString()+"/analyze")
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusInternalServerError {
				assert.NotContains(t, w.Body.String(), "disk on fire")
			}
		})
	}
}

func TestAnalyzePrescription(t *testing.T) {
	userID := uuid.New()
	rxID := uuid.New()
	summary := "Amoxicillin 500mg"
	rx := &stubPrescriptions{AnalyzeFunc: func(ctx context.Context, gotUser, id uuid.UUID) (*prescription.UploadedPrescription, error) {
		assert.Equal(t, userID, gotUser)
		assert.Equal(t, rxID, id)
		return &prescription.UploadedPrescription{ID: id, UserID: gotUser, Status: prescription.StatusAnalyzed, AISummary: &summary}, nil
	}}
	r := newTestRouter(NewHandler(&stubTimeline{}, &stubTrends{}, rx), userID)

	w := do(r, http.MethodPost, "/api/v1/prescriptions/"+rxID.String()+"/analyze")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"analyzed"`)
}

func TestGetPrescription(t *testing.T) {
	rx := &stubPrescriptions{GetFunc: func(ctx context.Context, userID, id uuid.UUID) (*prescription.UploadedPrescription, error) {
		return &prescription.UploadedPrescription{ID: id, UserID: userID, FileName: "rx.pdf", Status: prescription.StatusNew}, nil
	}}
	r := newTestRouter(NewHandler(&stubTimeline{}, &stubTrends{}, rx), uuid.New())

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/v1/prescriptions/"+uuid.NewString()).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/api/v1/prescriptions/not-a-uuid").Code)
}
