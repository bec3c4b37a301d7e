package timeline

import (
	"fmt"
	"strings"

	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/domain/checkup"
	mr "github.com/dmehra2102/prod-golang-projects/medtimeline/internal/domain/medical_record"
	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/domain/medication"
	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/domain/prescription"
)

// Normalizer maps source rows to events. The zero value is not usable; call NewNormalizer.
type Normalizer struct {
	recordImportance Importance
}

type Option func(*Normalizer)

// WithRecordImportance sets the importance given to medical record events.
// Dashboards historically disagreed between medium and low.
func WithRecordImportance(i Importance) Option {
	return func(n *Normalizer) {
		n.recordImportance = i
	}
}

func NewNormalizer(opts ...Option) *Normalizer {
	n := &Normalizer{recordImportance: ImportanceMedium}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func (n *Normalizer) FromRecord(r *mr.MedicalRecord) Event {
	return Event{
		ID:          "record-" + r.ID.String(),
		Type:        TypeRecord,
		Date:        calendarDate(r.UploadedAt),
		Title:       r.Title,
		Description: fmt.Sprintf("Medical record uploaded - %s", r.Category),
		Importance:  n.recordImportance,
		Data:        Payload{kind: TypeRecord, record: r},
	}
}

func (n *Normalizer) FromPrescription(p *prescription.UploadedPrescription) Event {
	importance := ImportanceMedium
	if p.Status == prescription.StatusAnalyzed {
		importance = ImportanceHigh
	}
	return Event{
		ID:          "prescription-" + p.ID.String(),
		Type:        TypePrescription,
		Date:        calendarDate(p.UploadedAt),
		Title:       "Prescription: " + p.FileName,
		Description: fmt.Sprintf("Prescription uploaded - %s", p.Status),
		Importance:  importance,
		Data:        Payload{kind: TypePrescription, prescription: p},
	}
}

func (n *Normalizer) FromCheckup(c *checkup.Checkup) Event {
	importance := ImportanceMedium
	if strings.Contains(strings.ToLower(c.Type), "urgent") {
		importance = ImportanceHigh
	}
	return Event{
		ID:          "checkup-" + c.ID.String(),
		Type:        TypeCheckup,
		Date:        calendarDate(c.Date),
		Time:        c.Time,
		Title:       c.Type,
		Description: fmt.Sprintf("Visit with %s at %s", c.DoctorName, c.Facility),
		Importance:  importance,
		Data:        Payload{kind: TypeCheckup, checkup: c},
	}
}

func (n *Normalizer) FromMedication(m *medication.Medication) Event {
	importance := ImportanceLow
	if m.Status == medication.StatusActive {
		importance = ImportanceMedium
	}
	return Event{
		ID:          "medication-" + m.ID.String(),
		Type:        TypeMedication,
		Date:        calendarDate(m.PrescribedDate),
		Title:       m.Name + " Prescribed",
		Description: fmt.Sprintf("%s - %s", m.Dosage, m.Frequency),
		Importance:  importance,
		Data:        Payload{kind: TypeMedication, medication: m},
	}
}
