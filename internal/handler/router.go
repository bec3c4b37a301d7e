package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/config"
	v1 "github.com/dmehra2102/prod-golang-projects/medtimeline/internal/handler/v1"
	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/middleware"
	"github.com/dmehra2102/prod-golang-projects/medtimeline/pkg/metrics"
)

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

type RouterConfig struct {
	ServiceName string
	API         *v1.Handler
	Tokens      middleware.TokenValidator
	RateLimiter *middleware.RateLimiter
	Metrics     *metrics.Collector
	CORS        config.CORSConfig
	Health      HealthCheck
	Log         *zap.Logger
}

func NewRouter(rc RouterConfig) *gin.Engine {
	r := gin.New()
	// Recovery stays inside Logger and Metrics: a panic is logged and counted as a 500.
	r.Use(
		middleware.RequestID(),
		middleware.Tracing(rc.ServiceName),
		middleware.Logger(rc.Log),
		middleware.Metrics(rc.Metrics),
		middleware.Recovery(rc.Log),
		middleware.CORS(rc.CORS),
	)

	r.GET("/healthz", healthz(rc.Health, rc.Log))
	r.GET("/metrics", gin.WrapH(metrics.MetricsHandler()))

	api := r.Group("/api/v1", middleware.Auth(rc.Tokens), rc.RateLimiter.Middleware())
	rc.API.Register(api)

	return r
}

// healthz is unauthenticated, so the failure cause only goes to the log.
func healthz(check HealthCheck, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				log.Warn("health check failed",
					zap.String("request_id", c.GetString(middleware.ContextKeyRequestID)),
					zap.Error(err),
				)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
