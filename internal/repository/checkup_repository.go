package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/domain/checkup"
)

type CheckupRepository struct {
	db *gorm.DB
}

func NewCheckupRepository(db *gorm.DB) *CheckupRepository {
	return &CheckupRepository{db: db}
}

func (r *CheckupRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*checkup.Checkup, error) {
	var rows []*checkup.Checkup
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("listing checkups: %w", err)
	}
	return rows, nil
}
