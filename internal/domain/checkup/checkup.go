package checkup

import (
	"time"

	"github.com/google/uuid"
)

// Vitals captured during the visit. Stored as a json column.
type Vitals struct {
	BloodPressure string   `json:"blood_pressure,omitempty"`
	HeartRate     *int     `json:"heart_rate,omitempty"`
	Temperature   *float64 `json:"temperature,omitempty"`
	Weight        *float64 `json:"weight,omitempty"`
	Height        *float64 `json:"height,omitempty"`
}

type Checkup struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID uuid.UUID `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`

	Type       string    `gorm:"column:type;type:varchar(100);not null" json:"type"` // e.g. "Annual Physical", "Urgent Care"
	DoctorName string    `gorm:"column:doctor_name;type:varchar(255)" json:"doctor_name"`
	Facility   string    `gorm:"column:facility;type:varchar(255)" json:"facility"`
	Date       time.Time `gorm:"column:date;type:date;not null;index" json:"date"`
	Time       string    `gorm:"column:time;type:varchar(10)" json:"time,omitempty"` // "HH:MM"
	Duration   string    `gorm:"column:duration;type:varchar(50)" json:"duration,omitempty"`

	Symptoms     []string   `gorm:"column:symptoms;serializer:json" json:"symptoms,omitempty"`
	Diagnosis    string     `gorm:"column:diagnosis;type:text" json:"diagnosis,omitempty"`
	Treatment    string     `gorm:"column:treatment;type:text" json:"treatment,omitempty"`
	FollowUpDate *time.Time `gorm:"column:follow_up_date;type:date" json:"follow_up_date,omitempty"`
	Vitals       *Vitals    `gorm:"column:vitals;serializer:json" json:"vitals,omitempty"`
	Notes        string     `gorm:"column:notes;type:text" json:"notes,omitempty"`
}

func (Checkup) TableName() string {
	return "checkups"
}
