package medical_record

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Category string

const (
	CategoryPrescription Category = "prescription"
	CategoryLabResults   Category = "lab-results"
	CategoryImaging      Category = "imaging"
	CategoryCheckup      Category = "checkup"
	CategoryOther        Category = "other"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryPrescription, CategoryLabResults, CategoryImaging, CategoryCheckup, CategoryOther:
		return true
	}
	return false
}

// MedicalRecord is a single clinical document or encounter. Records are created
// from a form submission and only ever change when a file is re-attached.
//
// Vitals are independently optional: a nil field means "not measured".
type MedicalRecord struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID uuid.UUID `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`

	Title      string    `gorm:"column:title;type:varchar(255);not null" json:"title"`
	DoctorName string    `gorm:"column:doctor_name;type:varchar(255)" json:"doctor_name"`
	VisitDate  time.Time `gorm:"column:visit_date;type:date;not null;index" json:"visit_date"`
	Category   Category  `gorm:"column:category;type:varchar(30);not null;index" json:"category"`

	FileType   string    `gorm:"column:file_type;type:varchar(100)" json:"file_type"`
	FileSize   string    `gorm:"column:file_size;type:varchar(30)" json:"file_size"` // e.g. "2.4 MB"
	UploadedAt time.Time `gorm:"column:uploaded_at;autoCreateTime;index" json:"uploaded_at"`
	FileURL    *string   `gorm:"column:file_url;type:text" json:"file_url,omitempty"`

	// Units: kg, cm, "systolic/diastolic" mmHg, bpm, mg/dL.
	Weight        *float64 `gorm:"column:weight" json:"weight,omitempty"`
	Height        *float64 `gorm:"column:height" json:"height,omitempty"`
	BloodPressure *string  `gorm:"column:blood_pressure;type:varchar(20)" json:"blood_pressure,omitempty"`
	HeartRate     *int     `gorm:"column:heart_rate" json:"heart_rate,omitempty"`
	BloodSugar    *float64 `gorm:"column:blood_sugar" json:"blood_sugar,omitempty"`
}

func (MedicalRecord) TableName() string {
	return "medical_records"
}

// Validate checks the invariants a stored row must hold before it is shown.
func (r *MedicalRecord) Validate() error {
	if !r.Category.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, r.Category)
	}
	return nil
}
