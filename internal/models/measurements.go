// ABOUTME: Measurements model holding one patient's five optional raw readings.
// ABOUTME: Also defines the input field names used by delimited-text loading.
package models

// Field names expected in a loosely-typed record, as produced by the bulk loader
// from a header line.
const (
	FieldPatientID   = "PatientID"
	FieldHeightCM    = "Height_cm"
	FieldWeightKG    = "Weight_kg"
	FieldWaistCM     = "Waist_cm"
	FieldSystolicBP  = "Systolic_BP"
	FieldDiastolicBP = "Diastolic_BP"
)

// NumericFields lists the measurement fields in column order.
var NumericFields = []string{
	FieldHeightCM,
	FieldWeightKG,
	FieldWaistCM,
	FieldSystolicBP,
	FieldDiastolicBP,
}

// Measurements holds the raw readings for one patient.
// A nil field means "not measured", which is distinct from zero.
type Measurements struct {
	HeightCM    *float64 `json:"height_cm" yaml:"height_cm"`
	WeightKG    *float64 `json:"weight_kg" yaml:"weight_kg"`
	WaistCM     *float64 `json:"waist_cm" yaml:"waist_cm"`
	SystolicBP  *float64 `json:"systolic_bp" yaml:"systolic_bp"`
	DiastolicBP *float64 `json:"diastolic_bp" yaml:"diastolic_bp"`
}

// Float returns a pointer to v, for building Measurements literals.
func Float(v float64) *float64 {
	return &v
}

// Value returns the named field by its input field name.
func (m Measurements) Value(field string) *float64 {
	switch field {
	case FieldHeightCM:
		return m.HeightCM
	case FieldWeightKG:
		return m.WeightKG
	case FieldWaistCM:
		return m.WaistCM
	case FieldSystolicBP:
		return m.SystolicBP
	case FieldDiastolicBP:
		return m.DiastolicBP
	}
	return nil
}

// Set assigns the named field. Unknown field names are ignored.
func (m *Measurements) Set(field string, v *float64) {
	switch field {
	case FieldHeightCM:
		m.HeightCM = v
	case FieldWeightKG:
		m.WeightKG = v
	case FieldWaistCM:
		m.WaistCM = v
	case FieldSystolicBP:
		m.SystolicBP = v
	case FieldDiastolicBP:
		m.DiastolicBP = v
	}
}
