package medication

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Medication, error)
}
