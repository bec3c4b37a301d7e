// Package repository implements the domain repositories on postgres through gorm.
// Every query is scoped by the owning user id.
package repository

import (
	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/domain/checkup"
	mr "github.com/dmehra2102/prod-golang-projects/medtimeline/internal/domain/medical_record"
	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/domain/medication"
	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/domain/prescription"
)

var (
	_ mr.Repository           = (*MedicalRecordRepository)(nil)
	_ prescription.Repository = (*PrescriptionRepository)(nil)
	_ checkup.Repository      = (*CheckupRepository)(nil)
	_ medication.Repository   = (*MedicationRepository)(nil)
)
