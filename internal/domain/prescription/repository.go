package prescription

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*UploadedPrescription, error)

	// GetByID returns ErrPrescriptionNotFound when the row is missing or owned by someone else.
	GetByID(ctx context.Context, userID, id uuid.UUID) (*UploadedPrescription, error)

	// UpdateAnalysis persists Status and AISummary.
	UpdateAnalysis(ctx context.Context, p *UploadedPrescription) error
}
