package vitals

import "math"

type BMICategory string

const (
	BMIUnderweight BMICategory = "Underweight"
	BMINormal      BMICategory = "Normal"
	BMIOverweight  BMICategory = "Overweight"
	BMIObese       BMICategory = "Obese"
)

// Visual scale bounds; a BMI at or below the floor sits at 0%, at or above the ceiling at 100%.
const (
	BMIScaleFloor   = 15.0
	BMIScaleCeiling = 40.0
)

type BMI struct {
	Value         float64     `json:"value"`
	Category      BMICategory `json:"category"`
	ScalePosition float64     `json:"scale_position"` // percent
}

// ComputeBMI derives BMI from weight in kg and height in cm, rounded to one decimal.
// ok is false when either input is not positive.
func ComputeBMI(weightKg, heightCm float64) (BMI, bool) {
	if weightKg <= 0 || heightCm <= 0 {
		return BMI{}, false
	}
	m := heightCm / 100
	value := math.Round(weightKg/(m*m)*10) / 10

	return BMI{
		Value:         value,
		Category:      CategorizeBMI(value),
		ScalePosition: bmiScalePosition(value),
	}, true
}

func CategorizeBMI(bmi float64) BMICategory {
	switch {
	case bmi < 18.5:
		return BMIUnderweight
	case bmi < 25:
		return BMINormal
	case bmi < 30:
		return BMIOverweight
	}
	return BMIObese
}

func bmiScalePosition(bmi float64) float64 {
	pos := (bmi - BMIScaleFloor) / (BMIScaleCeiling - BMIScaleFloor) * 100
	return math.Min(100, math.Max(0, pos))
}
