package timeline

import (
	"slices"
	"time"

	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/domain/checkup"
	mr "github.com/dmehra2102/prod-golang-projects/medtimeline/internal/domain/medical_record"
	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/domain/medication"
	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/domain/prescription"
)

// Sources holds the already-fetched rows of one user. Any collection may be empty.
type Sources struct {
	Records       []*mr.MedicalRecord
	Prescriptions []*prescription.UploadedPrescription
	Checkups      []*checkup.Checkup
	Medications   []*medication.Medication
}

func (s Sources) Len() int {
	return len(s.Records) + len(s.Prescriptions) + len(s.Checkups) + len(s.Medications)
}

// Aggregate normalizes every row and returns the events most recent first.
// Events on the same date keep their input order: records, prescriptions,
// checkups, medications, each in the order given.
func (n *Normalizer) Aggregate(src Sources) []Event {
	events := make([]Event, 0, src.Len())
	for _, r := range src.Records {
		if r != nil {
			events = append(events, n.FromRecord(r))
		}
	}
	for _, p := range src.Prescriptions {
		if p != nil {
			events = append(events, n.FromPrescription(p))
		}
	}
	for _, c := range src.Checkups {
		if c != nil {
			events = append(events, n.FromCheckup(c))
		}
	}
	for _, m := range src.Medications {
		if m != nil {
			events = append(events, n.FromMedication(m))
		}
	}

	SortByDateDesc(events)
	return events
}

// SortByDateDesc sorts in place, newest first, stable.
func SortByDateDesc(events []Event) {
	slices.SortStableFunc(events, func(a, b Event) int {
		return b.Date.Compare(a.Date)
	})
}

type DayGroup struct {
	Day    string    `json:"day"`
	Date   time.Time `json:"date"`
	Events []Event   `json:"events"`
}

// GroupByDay partitions events by calendar day. Groups appear in the order of
// their first event and each group keeps the relative order of its events, so
// a list sorted by SortByDateDesc yields days newest first.
func GroupByDay(events []Event) []DayGroup {
	groups := []DayGroup{}
	index := make(map[string]int)

	for _, e := range events {
		key := e.Day()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, DayGroup{Day: key, Date: e.Date})
		}
		groups[i].Events = append(groups[i].Events, e)
	}
	return groups
}
