// ABOUTME: Tests for derived clinical indices.
// ABOUTME: Covers category boundaries, cascade ordering, missing inputs, and zero height.
package models

import (
	"errors"
	"math"
	"testing"
)

func TestBMICategory(t *testing.T) {
	tests := []struct {
		name   string
		height float64
		weight float64
		want   BMICategory
	}{
		{"normal weight", 170, 65, BMINormal},
		{"underweight", 160, 45, BMIUnderweight},
		{"overweight", 165, 75, BMIOverweight},
		{"obesity", 155, 90, BMIObesity},
		{"exactly 18.5", 100, 18.5, BMINormal},
		{"exactly 25", 100, 25, BMIOverweight},
		{"exactly 30", 100, 30, BMIObesity},
		{"just under 18.5", 100, 18.49, BMIUnderweight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Measurements{HeightCM: Float(tt.height), WeightKG: Float(tt.weight)}
			got, ok, err := m.BMICategory()
			if err != nil {
				t.Fatalf("BMICategory() error: %v", err)
			}
			if !ok {
				t.Fatal("BMICategory() ok = false, want true")
			}
			if got != tt.want {
				t.Errorf("BMICategory() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBMIValue(t *testing.T) {
	m := Measurements{HeightCM: Float(200), WeightKG: Float(80)}
	bmi, ok, err := m.BMI()
	if err != nil || !ok {
		t.Fatalf("BMI() = %v, %v, %v", bmi, ok, err)
	}
	if bmi != 20 {
		t.Errorf("BMI() = %f, want 20", bmi)
	}
}

func TestBMIMissingInputs(t *testing.T) {
	tests := []struct {
		name string
		m    Measurements
	}{
		{"no height", Measurements{WeightKG: Float(70)}},
		{"no weight", Measurements{HeightCM: Float(170)}},
		{"nothing", Measurements{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok, err := tt.m.BMI()
			if err != nil {
				t.Errorf("BMI() error = %v, want nil", err)
			}
			if ok {
				t.Error("BMI() ok = true, want false")
			}

			cat, ok, err := tt.m.BMICategory()
			if err != nil || ok || cat != "" {
				t.Errorf("BMICategory() = %q, %v, %v; want absent", cat, ok, err)
			}
		})
	}
}

func TestBMIZeroHeight(t *testing.T) {
	m := Measurements{HeightCM: Float(0), WeightKG: Float(70)}

	if _, _, err := m.BMI(); !errors.Is(err, ErrZeroHeight) {
		t.Errorf("BMI() error = %v, want ErrZeroHeight", err)
	}
	if _, _, err := m.BMICategory(); !errors.Is(err, ErrZeroHeight) {
		t.Errorf("BMICategory() error = %v, want ErrZeroHeight", err)
	}
}

func TestClassifyBloodPressure(t *testing.T) {
	tests := []struct {
		name      string
		systolic  float64
		diastolic float64
		want      BloodPressureCategory
	}{
		{"normal", 118, 76, BPNormal},
		{"elevated", 125, 75, BPElevated},
		{"stage 1", 135, 85, BPStage1},
		{"stage 2", 145, 95, BPStage2},
		{"high systolic low diastolic", 145, 70, BPStage2},
		{"elevated systolic stage 1 diastolic", 125, 85, BPStage1},
		{"low systolic high diastolic", 110, 95, BPStage2},
		{"low systolic stage 1 diastolic", 110, 80, BPStage1},
		{"systolic boundary 120", 120, 79, BPElevated},
		{"systolic boundary 130", 130, 70, BPStage1},
		{"systolic boundary 140", 140, 70, BPStage2},
		{"diastolic boundary 90", 100, 90, BPStage2},
		{"stage 1 systolic stage 2 diastolic", 135, 95, BPStage1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyBloodPressure(tt.systolic, tt.diastolic); got != tt.want {
				t.Errorf("ClassifyBloodPressure(%v, %v) = %q, want %q",
					tt.systolic, tt.diastolic, got, tt.want)
			}
		})
	}
}

func TestClassifyBloodPressureNaNFallsThrough(t *testing.T) {
	if got := ClassifyBloodPressure(math.NaN(), 70); got != BPHypertensiveCrisis {
		t.Errorf("ClassifyBloodPressure(NaN, 70) = %q, want %q", got, BPHypertensiveCrisis)
	}
}

func TestBloodPressureCategoryMissing(t *testing.T) {
	tests := []Measurements{
		{SystolicBP: Float(120)},
		{DiastolicBP: Float(80)},
		{},
	}

	for _, m := range tests {
		if cat, ok := m.BloodPressureCategory(); ok || cat != "" {
			t.Errorf("BloodPressureCategory() = %q, %v; want absent", cat, ok)
		}
	}
}

func TestWaistToHeight(t *testing.T) {
	tests := []struct {
		name      string
		height    float64
		waist     float64
		wantRatio float64
		want      WaistToHeightCategory
	}{
		{"low risk", 170, 75, 0.441, WaistToHeightLowRisk},
		{"high risk", 160, 90, 0.5625, WaistToHeightHighRisk},
		{"high risk tall", 180, 100, 0.556, WaistToHeightHighRisk},
		{"exactly one half", 170, 85, 0.5, WaistToHeightLowRisk},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Measurements{HeightCM: Float(tt.height), WaistCM: Float(tt.waist)}

			ratio, ok, err := m.WaistToHeightRatio()
			if err != nil || !ok {
				t.Fatalf("WaistToHeightRatio() = %v, %v, %v", ratio, ok, err)
			}
			if math.Abs(ratio-tt.wantRatio) > 0.001 {
				t.Errorf("WaistToHeightRatio() = %f, want %f", ratio, tt.wantRatio)
			}

			got, ok, err := m.WaistToHeightCategory()
			if err != nil || !ok {
				t.Fatalf("WaistToHeightCategory() = %q, %v, %v", got, ok, err)
			}
			if got != tt.want {
				t.Errorf("WaistToHeightCategory() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWaistToHeightMissingAndZero(t *testing.T) {
	if _, ok, err := (Measurements{HeightCM: Float(170)}).WaistToHeightRatio(); ok || err != nil {
		t.Errorf("missing waist: ok = %v, err = %v", ok, err)
	}
	if _, ok, err := (Measurements{WaistCM: Float(80)}).WaistToHeightCategory(); ok || err != nil {
		t.Errorf("missing height: ok = %v, err = %v", ok, err)
	}

	zero := Measurements{HeightCM: Float(0), WaistCM: Float(80)}
	if _, _, err := zero.WaistToHeightRatio(); !errors.Is(err, ErrZeroHeight) {
		t.Errorf("WaistToHeightRatio() error = %v, want ErrZeroHeight", err)
	}
	if _, _, err := zero.WaistToHeightCategory(); !errors.Is(err, ErrZeroHeight) {
		t.Errorf("WaistToHeightCategory() error = %v, want ErrZeroHeight", err)
	}
}

func TestMeasurementsValueAndSet(t *testing.T) {
	var m Measurements
	for i, field := range NumericFields {
		m.Set(field, Float(float64(i+1)))
	}
	m.Set("Unknown", Float(99))

	for i, field := range NumericFields {
		got := m.Value(field)
		if got == nil || *got != float64(i+1) {
			t.Errorf("Value(%s) = %v, want %d", field, got, i+1)
		}
	}
	if m.Value("Unknown") != nil {
		t.Error("Value(Unknown) should be nil")
	}
}
