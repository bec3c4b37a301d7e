package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	mr "github.com/dmehra2102/prod-golang-projects/medtimeline/internal/domain/medical_record"
)

type MedicalRecordRepository struct {
	db *gorm.DB
}

func NewMedicalRecordRepository(db *gorm.DB) *MedicalRecordRepository {
	return &MedicalRecordRepository{db: db}
}

func (r *MedicalRecordRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*mr.MedicalRecord, error) {
	var records []*mr.MedicalRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("visit_date ASC, uploaded_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("listing medical records: %w", err)
	}
	return records, nil
}
