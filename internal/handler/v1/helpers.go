package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/domain/prescription"
	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/middleware"
	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/service"
)

// statusClientClosedRequest is the nginx convention for a caller that hung up.
const statusClientClosedRequest = 499

type APIResponse[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error   string            `json:"error"`
	Code    string            `json:"code,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

type ValidationErrorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields"`
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, APIResponse[any]{Data: data})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: message})
}

func respondServiceError(c *gin.Context, err error) {
	_ = c.Error(err)

	var validErr *service.ValidationError
	if errors.As(err, &validErr) {
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{
			Error:  "validation failed",
			Fields: validErr.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, prescription.ErrPrescriptionNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})

	case errors.Is(err, prescription.ErrInvalidStatusTransition):
		c.JSON(http.StatusConflict, ErrorResponse{
			Error: "prescription is not awaiting analysis",
			Code:  "INVALID_STATUS",
		})

	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "access denied"})

	case errors.Is(err, service.ErrAnalysisUnavailable):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error: "prescription analysis is unavailable",
			Code:  "ANALYSIS_UNAVAILABLE",
		})

	case errors.Is(err, service.ErrAnalysisFailed):
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Error: "prescription analysis failed",
			Code:  "ANALYSIS_FAILED",
		})

	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, ErrorResponse{Error: "request timed out"})

	case errors.Is(err, context.Canceled):
		c.AbortWithStatus(statusClientClosedRequest)

	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

func parseUUID(c *gin.Context, param string) (uuid.UUID, bool) {
	raw := c.Param(param)
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + param + ": must be a valid UUID"})
		return uuid.Nil, false
	}
	return id, true
}

// caller returns the authenticated user id. Routes are mounted behind
// middleware.Auth, so a miss here is a wiring bug.
func caller(c *gin.Context) (uuid.UUID, bool) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthenticated")
		return uuid.Nil, false
	}
	return claims.UserID, true
}

// requestContext carries the caller's IP and request id down to the audit log.
func requestContext(c *gin.Context) context.Context {
	return service.WithRequestMeta(c.Request.Context(), service.RequestMeta{
		IPAddress: c.ClientIP(),
		RequestID: c.GetString(middleware.ContextKeyRequestID),
	})
}
