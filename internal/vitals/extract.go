package vitals

import (
	"errors"
	"slices"
	"strconv"
	"time"

	mr "github.com/dmehra2102/prod-golang-projects/medtimeline/internal/domain/medical_record"
)

var ErrUnknownMetric = errors.New("unknown vitals metric")

type Metric string

const (
	MetricHeartRate     Metric = "heart-rate"
	MetricBloodPressure Metric = "blood-pressure"
	MetricWeight        Metric = "weight"
	MetricBloodSugar    Metric = "blood-sugar"
	MetricHeight        Metric = "height"
)

// TrendMetrics are the metrics a series can be built for, in display order.
var TrendMetrics = []Metric{MetricHeartRate, MetricBloodPressure, MetricWeight, MetricBloodSugar}

func ParseMetric(raw string) (Metric, error) {
	m := Metric(raw)
	if !slices.Contains(TrendMetrics, m) {
		return "", ErrUnknownMetric
	}
	return m, nil
}

func (m Metric) Unit() string {
	switch m {
	case MetricHeartRate:
		return "bpm"
	case MetricBloodPressure:
		return "mmHg"
	case MetricWeight:
		return "kg"
	case MetricBloodSugar:
		return "mg/dL"
	case MetricHeight:
		return "cm"
	}
	return ""
}

// Reading is one classified vital sign taken from a record.
type Reading struct {
	Metric     Metric    `json:"metric"`
	Value      float64   `json:"value"`
	Display    string    `json:"display"`
	Unit       string    `json:"unit"`
	Status     Status    `json:"status"`
	RecordedOn time.Time `json:"recorded_on"`
}

// Extract returns a reading for every vital present on r. Absent fields and a
// malformed blood pressure produce no reading.
func Extract(r *mr.MedicalRecord) []Reading {
	var out []Reading
	for _, m := range []Metric{MetricHeartRate, MetricBloodPressure, MetricWeight, MetricHeight, MetricBloodSugar} {
		if rd, ok := extractOne(r, m); ok {
			out = append(out, rd)
		}
	}
	return out
}

func extractOne(r *mr.MedicalRecord, m Metric) (Reading, bool) {
	rd := Reading{Metric: m, Unit: m.Unit(), Status: StatusNormal, RecordedOn: r.VisitDate}

	switch m {
	case MetricHeartRate:
		if r.HeartRate == nil {
			return Reading{}, false
		}
		rd.Value = float64(*r.HeartRate)
		rd.Display = strconv.Itoa(*r.HeartRate)
		rd.Status = ClassifyHeartRate(*r.HeartRate)
	case MetricBloodPressure:
		if r.BloodPressure == nil {
			return Reading{}, false
		}
		bp, ok := ParseBloodPressure(*r.BloodPressure)
		if !ok {
			return Reading{}, false
		}
		rd.Value = float64(bp.Systolic)
		rd.Display = bp.String()
		rd.Status = ClassifyBloodPressure(bp)
	case MetricWeight:
		if r.Weight == nil {
			return Reading{}, false
		}
		rd.Value = *r.Weight
		rd.Display = formatFloat(*r.Weight)
	case MetricHeight:
		if r.Height == nil {
			return Reading{}, false
		}
		rd.Value = *r.Height
		rd.Display = formatFloat(*r.Height)
	case MetricBloodSugar:
		if r.BloodSugar == nil {
			return Reading{}, false
		}
		rd.Value = *r.BloodSugar
		rd.Display = formatFloat(*r.BloodSugar)
		rd.Status = ClassifyBloodSugar(*r.BloodSugar)
	default:
		return Reading{}, false
	}
	return rd, true
}

// Summary is the dashboard vitals card: the latest value of each metric and the
// BMI of the latest record that carries both weight and height.
type Summary struct {
	Readings []Reading `json:"readings"`
	BMI      *BMI      `json:"bmi,omitempty"`
}

func LatestSummary(records []*mr.MedicalRecord) Summary {
	sorted := byVisitDate(records)

	latest := make(map[Metric]Reading)
	var bmi *BMI
	for _, r := range sorted {
		for _, rd := range Extract(r) {
			latest[rd.Metric] = rd
		}
		if r.Weight != nil && r.Height != nil {
			if b, ok := ComputeBMI(*r.Weight, *r.Height); ok {
				bmi = &b
			}
		}
	}

	summary := Summary{Readings: []Reading{}, BMI: bmi}
	for _, m := range []Metric{MetricHeartRate, MetricBloodPressure, MetricWeight, MetricHeight, MetricBloodSugar} {
		if rd, ok := latest[m]; ok {
			summary.Readings = append(summary.Readings, rd)
		}
	}
	return summary
}

// byVisitDate returns a copy of records sorted ascending by visit date, stable.
func byVisitDate(records []*mr.MedicalRecord) []*mr.MedicalRecord {
	sorted := make([]*mr.MedicalRecord, 0, len(records))
	for _, r := range records {
		if r != nil {
			sorted = append(sorted, r)
		}
	}
	slices.SortStableFunc(sorted, func(a, b *mr.MedicalRecord) int {
		return a.VisitDate.Compare(b.VisitDate)
	})
	return sorted
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
