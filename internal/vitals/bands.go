// Package vitals extracts measured values from medical records, classifies them
// against reference bands and builds per-metric trend series.
//
// Two families of bands exist. Display bands drive the instantaneous status
// badge of a vitals card; trend bands drive the normal flag of chart points.
// They differ for blood sugar (126 vs 140 mg/dL upper bound) and are kept apart
// on purpose until product confirms a single range.
package vitals

import (
	"strconv"
	"strings"
)

// Band is an inclusive reference range.
type Band struct {
	Min float64
	Max float64
}

func (b Band) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// Display bands.
var (
	DisplayHeartRateBand  = Band{Min: 60, Max: 100}
	DisplayBloodSugarBand = Band{Min: 70, Max: 126}
)

// Display thresholds for blood pressure. Either component can flag the reading.
const (
	SystolicHighAt    = 140
	DiastolicHighAt   = 90
	SystolicLowBelow  = 90
	DiastolicLowBelow = 60
)

// Trend bands. Only the systolic component of blood pressure is trended.
var (
	TrendHeartRateBand  = Band{Min: 60, Max: 100}
	TrendSystolicBand   = Band{Min: 90, Max: 140}
	TrendBloodSugarBand = Band{Min: 70, Max: 140}
)

type Status string

const (
	StatusNormal Status = "normal"
	StatusHigh   Status = "high"
	StatusLow    Status = "low"
)

func classify(v float64, b Band) Status {
	switch {
	case v < b.Min:
		return StatusLow
	case v > b.Max:
		return StatusHigh
	}
	return StatusNormal
}

func ClassifyHeartRate(bpm int) Status {
	return classify(float64(bpm), DisplayHeartRateBand)
}

func ClassifyBloodSugar(mgdl float64) Status {
	return classify(mgdl, DisplayBloodSugarBand)
}

type BloodPressure struct {
	Systolic  int `json:"systolic"`
	Diastolic int `json:"diastolic"`
}

func (bp BloodPressure) String() string {
	return strconv.Itoa(bp.Systolic) + "/" + strconv.Itoa(bp.Diastolic)
}

// ParseBloodPressure parses "systolic/diastolic". Both components must be integers.
func ParseBloodPressure(raw string) (BloodPressure, bool) {
	sys, dia, found := strings.Cut(raw, "/")
	if !found {
		return BloodPressure{}, false
	}
	s, err := strconv.Atoi(strings.TrimSpace(sys))
	if err != nil {
		return BloodPressure{}, false
	}
	d, err := strconv.Atoi(strings.TrimSpace(dia))
	if err != nil {
		return BloodPressure{}, false
	}
	return BloodPressure{Systolic: s, Diastolic: d}, true
}

// ParseSystolic returns the text before "/" as an integer.
func ParseSystolic(raw string) (int, bool) {
	sys, _, _ := strings.Cut(raw, "/")
	s, err := strconv.Atoi(strings.TrimSpace(sys))
	if err != nil {
		return 0, false
	}
	return s, true
}

func ClassifyBloodPressure(bp BloodPressure) Status {
	switch {
	case bp.Systolic >= SystolicHighAt || bp.Diastolic >= DiastolicHighAt:
		return StatusHigh
	case bp.Systolic < SystolicLowBelow || bp.Diastolic < DiastolicLowBelow:
		return StatusLow
	}
	return StatusNormal
}

// InTrendBand reports whether v is normal for charting. Weight has no band.
func InTrendBand(m Metric, v float64) bool {
	switch m {
	case MetricHeartRate:
		return TrendHeartRateBand.Contains(v)
	case MetricBloodPressure:
		return TrendSystolicBand.Contains(v)
	case MetricBloodSugar:
		return TrendBloodSugarBand.Contains(v)
	}
	return true
}
