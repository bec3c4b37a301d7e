package medication

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidStatus = errors.New("invalid medication status")

type Status string

const (
	StatusActive       Status = "active"
	StatusCompleted    Status = "completed"
	StatusDiscontinued Status = "discontinued"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusCompleted, StatusDiscontinued:
		return true
	}
	return false
}

type Medication struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID uuid.UUID `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`

	Name           string     `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Dosage         string     `gorm:"column:dosage;type:varchar(100)" json:"dosage"`       // e.g. "500mg"
	Frequency      string     `gorm:"column:frequency;type:varchar(100)" json:"frequency"` // e.g. "twice daily"
	PrescribedBy   string     `gorm:"column:prescribed_by;type:varchar(255)" json:"prescribed_by"`
	PrescribedDate time.Time  `gorm:"column:prescribed_date;type:date;not null;index" json:"prescribed_date"`
	StartDate      time.Time  `gorm:"column:start_date;type:date" json:"start_date"`
	EndDate        *time.Time `gorm:"column:end_date;type:date" json:"end_date,omitempty"`
	Status         Status     `gorm:"column:status;type:varchar(20);not null;default:'active';index" json:"status"`

	Notes       string   `gorm:"column:notes;type:text" json:"notes,omitempty"`
	SideEffects []string `gorm:"column:side_effects;serializer:json" json:"side_effects,omitempty"`
}

func (Medication) TableName() string {
	return "medications"
}

func (m *Medication) Validate() error {
	if !m.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, m.Status)
	}
	return nil
}
