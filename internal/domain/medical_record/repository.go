package medical_record

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// ListByUser returns every record owned by userID, ordered by visit date.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*MedicalRecord, error)
}
