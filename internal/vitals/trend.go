package vitals

import (
	"time"

	mr "github.com/dmehra2102/prod-golang-projects/medtimeline/internal/domain/medical_record"
)

// DefaultTrendWindow is how many of the most recent points a series keeps.
const DefaultTrendWindow = 6

const trendDateLayout = "Jan 2"

type TrendPoint struct {
	Date       string    `json:"date"`
	RecordedOn time.Time `json:"recorded_on"`
	Value      float64   `json:"value"`
	Normal     bool      `json:"normal"`
}

// BuildSeries returns the last window points of metric, oldest first. Records
// without the metric are skipped; so is a blood pressure whose systolic part is
// not a number. The result is never nil; an empty series means "no data".
func BuildSeries(records []*mr.MedicalRecord, metric Metric, window int) []TrendPoint {
	if window <= 0 {
		window = DefaultTrendWindow
	}

	points := []TrendPoint{}
	for _, r := range byVisitDate(records) {
		v, ok := trendValue(r, metric)
		if !ok {
			continue
		}
		points = append(points, TrendPoint{
			Date:       r.VisitDate.Format(trendDateLayout),
			RecordedOn: r.VisitDate,
			Value:      v,
			Normal:     InTrendBand(metric, v),
		})
	}

	if len(points) > window {
		points = points[len(points)-window:]
	}
	return points
}

func trendValue(r *mr.MedicalRecord, metric Metric) (float64, bool) {
	switch metric {
	case MetricHeartRate:
		if r.HeartRate != nil {
			return float64(*r.HeartRate), true
		}
	case MetricBloodPressure:
		if r.BloodPressure != nil {
			if sys, ok := ParseSystolic(*r.BloodPressure); ok {
				return float64(sys), true
			}
		}
	case MetricWeight:
		if r.Weight != nil {
			return *r.Weight, true
		}
	case MetricBloodSugar:
		if r.BloodSugar != nil {
			return *r.BloodSugar, true
		}
	}
	return 0, false
}
