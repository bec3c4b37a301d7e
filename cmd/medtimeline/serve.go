package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/analysis"
	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/config"
	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/handler"
	v1 "github.com/dmehra2102/prod-golang-projects/medtimeline/internal/handler/v1"
	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/middleware"
	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/repository"
	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/service"
	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/timeline"
	"github.com/dmehra2102/prod-golang-projects/medtimeline/pkg/auth"
	"github.com/dmehra2102/prod-golang-projects/medtimeline/pkg/database"
	"github.com/dmehra2102/prod-golang-projects/medtimeline/pkg/logger"
	"github.com/dmehra2102/prod-golang-projects/medtimeline/pkg/metrics"
	"github.com/dmehra2102/prod-golang-projects/medtimeline/pkg/tracer"
)

func serveCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configFile)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(parent context.Context, cfg *config.Config) error {
	log, err := logger.New(cfg.Log, cfg.App)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp, err := tracer.Init(ctx, cfg.Tracing, cfg.App)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Warn("tracer shutdown failed", zap.Error(err))
		}
	}()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("getting underlying sql.DB: %w", err)
	}
	defer sqlDB.Close()

	m := metrics.NewCollector(metricsNamespace(cfg), prometheus.DefaultRegisterer)

	importance, err := timeline.ParseImportance(cfg.Timeline.RecordImportance)
	if err != nil {
		return fmt.Errorf("TIMELINE_RECORD_IMPORTANCE: %w", err)
	}

	repos := repositories(db)
	auditSvc := service.NewAuditService(repository.NewAuditRepository(db), m, log)
	store := service.NewStoreReader(repos, cfg.Store, m, log)

	timelineSvc := service.NewTimelineService(store, timeline.NewNormalizer(timeline.WithRecordImportance(importance)), auditSvc, m, log)
	trendSvc := service.NewTrendService(store, cfg.Timeline.TrendWindow, auditSvc, m, log)
	prescriptionSvc := service.NewPrescriptionService(repos.Prescriptions, analysis.NewClient(cfg.Analysis, log), auditSvc, m, log)

	limiter := middleware.NewRateLimiter(cfg.RateLimit)
	go limiter.Run(ctx)

	router := handler.NewRouter(handler.RouterConfig{
		ServiceName: cfg.Tracing.ServiceName,
		API:         v1.NewHandler(timelineSvc, trendSvc, prescriptionSvc),
		Tokens:      auth.NewJWTManager(cfg.JWT),
		RateLimiter: limiter,
		Metrics:     m,
		CORS:        cfg.CORS,
		Health:      sqlDB.PingContext,
		Log:         log,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.App.Environment),
			zap.String("version", cfg.App.Version),
			zap.Bool("analysis_enabled", cfg.Analysis.Endpoint != ""),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			auditSvc.Shutdown()
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}

	// Handlers are drained, so nothing enqueues audit entries any more.
	auditSvc.Shutdown()
	log.Info("server stopped")
	return nil
}

func repositories(db *gorm.DB) service.Repositories {
	return service.Repositories{
		Records:       repository.NewMedicalRecordRepository(db),
		Prescriptions: repository.NewPrescriptionRepository(db),
		Checkups:      repository.NewCheckupRepository(db),
		Medications:   repository.NewMedicationRepository(db),
	}
}

// metricsNamespace turns "medtimeline-api" into a valid prometheus namespace.
func metricsNamespace(cfg *config.Config) string {
	out := []byte(cfg.App.Name)
	for i, b := range out {
		if !(b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' || b == '_') {
			out[i] = '_'
		}
	}
	return string(out)
}
