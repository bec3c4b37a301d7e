package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/domain/medication"
)

type MedicationRepository struct {
	db *gorm.DB
}

func NewMedicationRepository(db *gorm.DB) *MedicationRepository {
	return &MedicationRepository{db: db}
}

func (r *MedicationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*medication.Medication, error) {
	var rows []*medication.Medication
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("prescribed_date DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("listing medications: %w", err)
	}
	return rows, nil
}
