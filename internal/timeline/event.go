// Package timeline merges records, prescriptions, checkups and medications into
// one chronologically ordered, filterable and day-grouped event stream.
//
// Everything in this package is pure: the same inputs and the same "now" always
// produce the same output, so callers recompute on every change.
package timeline

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/domain/checkup"
	mr "github.com/dmehra2102/prod-golang-projects/medtimeline/internal/domain/medical_record"
	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/domain/medication"
	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/domain/prescription"
)

var (
	ErrInvalidEventType  = errors.New("invalid timeline event type")
	ErrInvalidImportance = errors.New("invalid event importance")
	ErrInvalidWindow     = errors.New("invalid time window")
)

type EventType string

const (
	TypeRecord       EventType = "record"
	TypePrescription EventType = "prescription"
	TypeCheckup      EventType = "checkup"
	TypeMedication   EventType = "medication"
	// TypeEmergency is accepted by filters; no source produces it yet.
	TypeEmergency EventType = "emergency"
)

func (t EventType) IsValid() bool {
	switch t {
	case TypeRecord, TypePrescription, TypeCheckup, TypeMedication, TypeEmergency:
		return true
	}
	return false
}

type Importance string

const (
	ImportanceLow      Importance = "low"
	ImportanceMedium   Importance = "medium"
	ImportanceHigh     Importance = "high"
	ImportanceCritical Importance = "critical"
)

func ParseImportance(raw string) (Importance, error) {
	i := Importance(raw)
	switch i {
	case ImportanceLow, ImportanceMedium, ImportanceHigh, ImportanceCritical:
		return i, nil
	}
	return "", ErrInvalidImportance
}

// Payload carries the source row an event was derived from. Exactly one
// accessor returns ok for a payload built by the Normalizer, and it is the one
// matching Kind.
type Payload struct {
	kind         EventType
	record       *mr.MedicalRecord
	prescription *prescription.UploadedPrescription
	checkup      *checkup.Checkup
	medication   *medication.Medication
}

func (p Payload) Kind() EventType { return p.kind }

func (p Payload) Record() (*mr.MedicalRecord, bool) {
	return p.record, p.kind == TypeRecord && p.record != nil
}

func (p Payload) Prescription() (*prescription.UploadedPrescription, bool) {
	return p.prescription, p.kind == TypePrescription && p.prescription != nil
}

func (p Payload) Checkup() (*checkup.Checkup, bool) {
	return p.checkup, p.kind == TypeCheckup && p.checkup != nil
}

func (p Payload) Medication() (*medication.Medication, bool) {
	return p.medication, p.kind == TypeMedication && p.medication != nil
}

// MarshalJSON renders the source row itself.
func (p Payload) MarshalJSON() ([]byte, error) {
	switch p.kind {
	case TypeRecord:
		return json.Marshal(p.record)
	case TypePrescription:
		return json.Marshal(p.prescription)
	case TypeCheckup:
		return json.Marshal(p.checkup)
	case TypeMedication:
		return json.Marshal(p.medication)
	}
	return []byte("null"), nil
}

// Event is the unified projection of any source row. Date is a UTC calendar
// date; a zero Date means no usable date was available.
type Event struct {
	ID          string     `json:"id"`
	Type        EventType  `json:"type"`
	Date        time.Time  `json:"date"`
	Time        string     `json:"time,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Importance  Importance `json:"importance"`
	Data        Payload    `json:"data"`
}

const dayLayout = "2006-01-02"

// Day is the grouping key of the event, or "" when it has no date.
func (e Event) Day() string {
	if e.Date.IsZero() {
		return ""
	}
	return e.Date.Format(dayLayout)
}

// calendarDate drops the time of day, interpreting t in UTC.
func calendarDate(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
