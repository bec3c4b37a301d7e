package checkup

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Checkup, error)
}
