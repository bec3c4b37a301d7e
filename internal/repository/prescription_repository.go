package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/domain/prescription"
)

type PrescriptionRepository struct {
	db *gorm.DB
}

func NewPrescriptionRepository(db *gorm.DB) *PrescriptionRepository {
	return &PrescriptionRepository{db: db}
}

func (r *PrescriptionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*prescription.UploadedPrescription, error) {
	var rows []*prescription.UploadedPrescription
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("uploaded_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("listing prescriptions: %w", err)
	}
	return rows, nil
}

func (r *PrescriptionRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*prescription.UploadedPrescription, error) {
	var p prescription.UploadedPrescription
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, prescription.ErrPrescriptionNotFound
		}
		return nil, fmt.Errorf("getting prescription %s: %w", id, err)
	}
	return &p, nil
}

// UpdateAnalysis writes only the analysis columns, scoped to the owner.
func (r *PrescriptionRepository) UpdateAnalysis(ctx context.Context, p *prescription.UploadedPrescription) error {
	res := r.db.WithContext(ctx).
		Model(&prescription.UploadedPrescription{}).
		Where("id = ? AND user_id = ?", p.ID, p.UserID).
		Updates(map[string]any{
			"status":     p.Status,
			"ai_summary": p.AISummary,
		})
	if res.Error != nil {
		return fmt.Errorf("updating prescription %s analysis: %w", p.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return prescription.ErrPrescriptionNotFound
	}
	return nil
}
