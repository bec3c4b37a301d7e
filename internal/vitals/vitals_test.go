package vitals

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mr "github.com/dmehra2102/prod-golang-projects/medtimeline/internal/domain/medical_record"
)

func ptr[T any](v T) *T { return &v }

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestClassifyBloodPressure(t *testing.T) {
	tests := []struct {
		raw  string
		want Status
	}{
		{"150/95", StatusHigh},
		{"120/80", StatusNormal},
		{"139/89", StatusNormal},
		{"140/70", StatusHigh},
		{"120/90", StatusHigh},
		{"85/70", StatusLow},
		{"110/55", StatusLow},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			bp, ok := ParseBloodPressure(tt.raw)
			require.True(t, ok)
			assert.Equal(t, tt.want, ClassifyBloodPressure(bp))
		})
	}
}

func TestParseBloodPressure_Malformed(t *testing.T) {
	for _, raw := range []string{"", "120", "abc/80", "120/xx", "/80"} {
		_, ok := ParseBloodPressure(raw)
		assert.False(t, ok, raw)
	}

	sys, ok := ParseSystolic(" 128 / 84")
	require.True(t, ok)
	assert.Equal(t, 128, sys)

	_, ok = ParseSystolic("high/80")
	assert.False(t, ok)
}

func TestDisplayClassifiers(t *testing.T) {
	assert.Equal(t, StatusLow, ClassifyHeartRate(59))
	assert.Equal(t, StatusNormal, ClassifyHeartRate(60))
	assert.Equal(t, StatusNormal, ClassifyHeartRate(100))
	assert.Equal(t, StatusHigh, ClassifyHeartRate(101))

	assert.Equal(t, StatusNormal, ClassifyBloodSugar(126))
	assert.Equal(t, StatusHigh, ClassifyBloodSugar(130))
	assert.Equal(t, StatusLow, ClassifyBloodSugar(65))
}

func TestBloodSugarBandsDiffer(t *testing.T) {
	// 130 mg/dL is flagged on the card but normal on the chart.
	assert.Equal(t, StatusHigh, ClassifyBloodSugar(130))
	assert.True(t, InTrendBand(MetricBloodSugar, 130))
	assert.False(t, InTrendBand(MetricBloodSugar, 141))
}

func TestInTrendBand(t *testing.T) {
	assert.True(t, InTrendBand(MetricHeartRate, 60))
	assert.False(t, InTrendBand(MetricHeartRate, 101))
	assert.True(t, InTrendBand(MetricBloodPressure, 140))
	assert.False(t, InTrendBand(MetricBloodPressure, 150))
	assert.True(t, InTrendBand(MetricWeight, 250))
}

func TestExtract(t *testing.T) {
	r := &mr.MedicalRecord{
		VisitDate:     day("2024-05-01"),
		HeartRate:     ptr(110),
		BloodPressure: ptr("150/95"),
		Weight:        ptr(72.5),
	}

	readings := Extract(r)
	require.Len(t, readings, 3)

	byMetric := map[Metric]Reading{}
	for _, rd := range readings {
		byMetric[rd.Metric] = rd
	}

	assert.Equal(t, StatusHigh, byMetric[MetricHeartRate].Status)
	assert.Equal(t, "150/95", byMetric[MetricBloodPressure].Display)
	assert.Equal(t, StatusHigh, byMetric[MetricBloodPressure].Status)
	assert.Equal(t, StatusNormal, byMetric[MetricWeight].Status)
	assert.Equal(t, "kg", byMetric[MetricWeight].Unit)

	_, hasSugar := byMetric[MetricBloodSugar]
	assert.False(t, hasSugar, "absent fields are never reported")
}

func TestExtract_NoVitals(t *testing.T) {
	assert.Empty(t, Extract(&mr.MedicalRecord{BloodPressure: ptr("n/a")}))
}

func TestComputeBMI(t *testing.T) {
	tests := []struct {
		name     string
		weight   float64
		height   float64
		value    float64
		category BMICategory
	}{
		{"normal", 70, 175, 22.9, BMINormal},
		{"obese", 95, 170, 32.9, BMIObese},
		{"underweight", 50, 175, 16.3, BMIUnderweight},
		{"overweight", 85, 175, 27.8, BMIOverweight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bmi, ok := ComputeBMI(tt.weight, tt.height)
			require.True(t, ok)
			assert.InDelta(t, tt.value, bmi.Value, 1e-9)
			assert.Equal(t, tt.category, bmi.Category)
		})
	}
}

func TestComputeBMI_InvalidInput(t *testing.T) {
	_, ok := ComputeBMI(70, 0)
	assert.False(t, ok)
	_, ok = ComputeBMI(-1, 170)
	assert.False(t, ok)
}

func TestCategorizeBMI_Boundaries(t *testing.T) {
	assert.Equal(t, BMIUnderweight, CategorizeBMI(18.4))
	assert.Equal(t, BMINormal, CategorizeBMI(18.5))
	assert.Equal(t, BMINormal, CategorizeBMI(24.9))
	assert.Equal(t, BMIOverweight, CategorizeBMI(25.0))
	assert.Equal(t, BMIOverweight, CategorizeBMI(29.9))
	assert.Equal(t, BMIObese, CategorizeBMI(30.0))
}

func TestBMIScalePosition(t *testing.T) {
	bmi, _ := ComputeBMI(70, 175)
	assert.InDelta(t, 31.6, bmi.ScalePosition, 1e-6)

	assert.Equal(t, 0.0, bmiScalePosition(12))
	assert.Equal(t, 100.0, bmiScalePosition(45))
	assert.InDelta(t, 50.0, bmiScalePosition(27.5), 1e-9)
}

func TestBuildSeries_KeepsLatestWindowAscending(t *testing.T) {
	var records []*mr.MedicalRecord
	// Inserted newest first to prove the builder sorts.
	for i := 9; i >= 0; i-- {
		records = append(records, &mr.MedicalRecord{
			VisitDate: day("2024-01-01").AddDate(0, i, 0),
			HeartRate: ptr(60 + i),
		})
	}

	series := BuildSeries(records, MetricHeartRate, DefaultTrendWindow)
	require.Len(t, series, DefaultTrendWindow)

	for i := 1; i < len(series); i++ {
		assert.True(t, series[i-1].RecordedOn.Before(series[i].RecordedOn))
	}
	assert.Equal(t, "May 1", series[0].Date)
	assert.Equal(t, 64.0, series[0].Value)
	assert.Equal(t, "Oct 1", series[5].Date)
	assert.Equal(t, 69.0, series[5].Value)
}

func TestBuildSeries_BloodPressureSystolic(t *testing.T) {
	records := []*mr.MedicalRecord{
		{VisitDate: day("2024-01-10"), BloodPressure: ptr("120/80")},
		{VisitDate: day("2024-02-10"), BloodPressure: ptr("abc/80")},
		{VisitDate: day("2024-03-10"), BloodPressure: ptr("150/95")},
		{VisitDate: day("2024-04-10")},
	}

	series := BuildSeries(records, MetricBloodPressure, 0)
	require.Len(t, series, 2, "malformed and absent values are skipped, not zero-filled")

	assert.Equal(t, 120.0, series[0].Value)
	assert.True(t, series[0].Normal)
	assert.Equal(t, 150.0, series[1].Value)
	assert.False(t, series[1].Normal)
}

func TestBuildSeries_Empty(t *testing.T) {
	series := BuildSeries([]*mr.MedicalRecord{{VisitDate: day("2024-01-01")}}, MetricBloodSugar, 6)
	assert.NotNil(t, series)
	assert.Empty(t, series)

	assert.Empty(t, BuildSeries(nil, MetricWeight, 6))
}

func TestBuildSeries_WeightAlwaysNormal(t *testing.T) {
	series := BuildSeries([]*mr.MedicalRecord{
		{VisitDate: day("2024-01-01"), Weight: ptr(180.0)},
	}, MetricWeight, 6)
	require.Len(t, series, 1)
	assert.True(t, series[0].Normal)
}

func TestParseMetric(t *testing.T) {
	m, err := ParseMetric("blood-sugar")
	require.NoError(t, err)
	assert.Equal(t, MetricBloodSugar, m)

	_, err = ParseMetric("height")
	assert.ErrorIs(t, err, ErrUnknownMetric)
}

func TestLatestSummary(t *testing.T) {
	records := []*mr.MedicalRecord{
		{VisitDate: day("2024-03-01"), HeartRate: ptr(72)},
		{VisitDate: day("2024-01-01"), HeartRate: ptr(90), Weight: ptr(70.0), Height: ptr(175.0), BloodSugar: ptr(99.0)},
		{VisitDate: day("2024-02-01"), Weight: ptr(95.0), Height: ptr(170.0)},
	}

	summary := LatestSummary(records)

	byMetric := map[Metric]Reading{}
	for _, rd := range summary.Readings {
		byMetric[rd.Metric] = rd
	}
	assert.Equal(t, 72.0, byMetric[MetricHeartRate].Value)
	assert.Equal(t, 95.0, byMetric[MetricWeight].Value)
	assert.Equal(t, 99.0, byMetric[MetricBloodSugar].Value)

	require.NotNil(t, summary.BMI)
	assert.Equal(t, BMIObese, summary.BMI.Category)
}

func TestLatestSummary_Empty(t *testing.T) {
	summary := LatestSummary(nil)
	assert.NotNil(t, summary.Readings)
	assert.Empty(t, summary.Readings)
	assert.Nil(t, summary.BMI)
}
