package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/domain"
)

var (
	ErrForbidden           = errors.New("forbidden: resource belongs to another user")
	ErrAnalysisUnavailable = errors.New("prescription analysis unavailable")
	ErrAnalysisFailed      = errors.New("prescription analysis failed")
)

type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, "; ")
}

type AuditEntry struct {
	UserID       uuid.UUID
	Action       domain.AuditAction
	ResourceType string
	ResourceID   string
	IPAddress    string
	RequestID    string
	Details      string
}

// RequestMeta is the caller information an audit entry needs beyond the user id.
type RequestMeta struct {
	IPAddress string
	RequestID string
}

type requestMetaKey struct{}

func WithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey{}, meta)
}

func requestMetaFrom(ctx context.Context) RequestMeta {
	meta, _ := ctx.Value(requestMetaKey{}).(RequestMeta)
	return meta
}
