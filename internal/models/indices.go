// ABOUTME: Derived clinical indices: BMI, blood-pressure category, waist-to-height ratio.
// ABOUTME: Pure functions of Measurements with threshold-based categorization.
package models

import (
	"errors"
	"math"
)

// ErrZeroHeight is returned by calculations that divide by height when height is zero.
var ErrZeroHeight = errors.New("height is zero")

// BMICategory is a body mass index bucket.
type BMICategory string

const (
	BMIUnderweight BMICategory = "Underweight"
	BMINormal      BMICategory = "Normal weight"
	BMIOverweight  BMICategory = "Overweight"
	BMIObesity     BMICategory = "Obesity"
)

// AllBMICategories lists the BMI buckets from lowest to highest.
var AllBMICategories = []BMICategory{BMIUnderweight, BMINormal, BMIOverweight, BMIObesity}

// BloodPressureCategory is a blood-pressure classification label.
type BloodPressureCategory string

const (
	BPNormal             BloodPressureCategory = "Normal"
	BPElevated           BloodPressureCategory = "Elevated"
	BPStage1             BloodPressureCategory = "High Blood Pressure Stage 1"
	BPStage2             BloodPressureCategory = "High Blood Pressure Stage 2"
	BPHypertensiveCrisis BloodPressureCategory = "Hypertensive Crisis"
)

// AllBloodPressureCategories lists every label ClassifyBloodPressure can return.
var AllBloodPressureCategories = []BloodPressureCategory{
	BPNormal, BPElevated, BPStage1, BPStage2, BPHypertensiveCrisis,
}

// WaistToHeightCategory is a central adiposity risk label.
type WaistToHeightCategory string

const (
	WaistToHeightLowRisk  WaistToHeightCategory = "Low Risk"
	WaistToHeightHighRisk WaistToHeightCategory = "High Risk"
)

// AllWaistToHeightCategories lists the waist-to-height labels.
var AllWaistToHeightCategories = []WaistToHeightCategory{WaistToHeightLowRisk, WaistToHeightHighRisk}

// ClassifyBMI buckets a BMI value. Lower bounds are inclusive.
func ClassifyBMI(bmi float64) BMICategory {
	switch {
	case bmi < 18.5:
		return BMIUnderweight
	case bmi < 25:
		return BMINormal
	case bmi < 30:
		return BMIOverweight
	default:
		return BMIObesity
	}
}

// ClassifyBloodPressure evaluates the cascade in order; the first matching rule wins.
//
// The final Hypertensive Crisis case is unreachable for finite readings because the
// Stage 2 disjunction covers everything left over. Only NaN readings fall through.
func ClassifyBloodPressure(systolic, diastolic float64) BloodPressureCategory {
	switch {
	case systolic < 120 && diastolic < 80:
		return BPNormal
	case systolic >= 120 && systolic < 130 && diastolic < 80:
		return BPElevated
	case (systolic >= 130 && systolic < 140) || (diastolic >= 80 && diastolic < 90):
		return BPStage1
	case systolic >= 140 || diastolic >= 90:
		return BPStage2
	default:
		return BPHypertensiveCrisis
	}
}

// ClassifyWaistToHeight labels a waist-to-height ratio; 0.5 itself is low risk.
func ClassifyWaistToHeight(ratio float64) WaistToHeightCategory {
	if ratio <= 0.5 {
		return WaistToHeightLowRisk
	}
	return WaistToHeightHighRisk
}

// BMI returns weight / (height in metres)^2.
// ok is false when height or weight is missing.
func (m Measurements) BMI() (bmi float64, ok bool, err error) {
	if m.HeightCM == nil || m.WeightKG == nil {
		return 0, false, nil
	}
	if *m.HeightCM == 0 {
		return 0, false, ErrZeroHeight
	}
	heightM := *m.HeightCM / 100
	return *m.WeightKG / math.Pow(heightM, 2), true, nil
}

// BMICategory classifies BMI. ok is false when BMI is unavailable.
func (m Measurements) BMICategory() (BMICategory, bool, error) {
	bmi, ok, err := m.BMI()
	if err != nil || !ok {
		return "", false, err
	}
	return ClassifyBMI(bmi), true, nil
}

// BloodPressureCategory classifies the pair of readings.
// ok is false when either reading is missing.
func (m Measurements) BloodPressureCategory() (BloodPressureCategory, bool) {
	if m.SystolicBP == nil || m.DiastolicBP == nil {
		return "", false
	}
	return ClassifyBloodPressure(*m.SystolicBP, *m.DiastolicBP), true
}

// WaistToHeightRatio returns waist / height. ok is false when either is missing.
func (m Measurements) WaistToHeightRatio() (ratio float64, ok bool, err error) {
	if m.HeightCM == nil || m.WaistCM == nil {
		return 0, false, nil
	}
	if *m.HeightCM == 0 {
		return 0, false, ErrZeroHeight
	}
	return *m.WaistCM / *m.HeightCM, true, nil
}

// WaistToHeightCategory classifies the ratio. ok is false when it is unavailable.
func (m Measurements) WaistToHeightCategory() (WaistToHeightCategory, bool, error) {
	ratio, ok, err := m.WaistToHeightRatio()
	if err != nil || !ok {
		return "", false, err
	}
	return ClassifyWaistToHeight(ratio), true, nil
}
