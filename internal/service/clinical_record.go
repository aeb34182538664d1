package service

import (
	"errors"
	"time"

	"optical-clinic-api/internal/domain/entity"
)

var ErrPastControlDate = errors.New("next control date must be after today")

// Registered clinical field names, in the order consultations record them.
const (
	FieldRxInUse              = "rx_in_use"
	FieldMedicalHistory       = "medical_history"
	FieldSymptomsSigns        = "symptoms_signs"
	FieldPanoramicAnalysis    = "panoramic_analysis"
	FieldRightEyeExam         = "right_eye_exam"
	FieldLeftEyeExam          = "left_eye_exam"
	FieldPantoscopicAnalysis  = "pantoscopic_analysis"
	FieldVertexAnalysis       = "vertex_analysis"
	FieldPatientAnamnesis     = "patient_anamnesis"
	FieldFindings             = "findings"
	FieldDiagnosisTreatment   = "diagnosis_treatment"
	FieldRetinoscopy          = "retinoscopy"
	FieldVisualAcuity         = "visual_acuity"
	FieldSubjectiveRefinement = "subjective_refinement"
	FieldFinalRx              = "final_rx"
)

// clinicalFieldRegistry is the canonical ordered list of recognized
// clinical-data keys. It documents the expected shape; it is never
// enforced as a schema.
var clinicalFieldRegistry = []string{
	FieldRxInUse,
	FieldMedicalHistory,
	FieldSymptomsSigns,
	FieldPanoramicAnalysis,
	FieldRightEyeExam,
	FieldLeftEyeExam,
	FieldPantoscopicAnalysis,
	FieldVertexAnalysis,
	FieldPatientAnamnesis,
	FieldFindings,
	FieldDiagnosisTreatment,
	FieldRetinoscopy,
	FieldVisualAcuity,
	FieldSubjectiveRefinement,
	FieldFinalRx,
}

// reminderWindowDays is how many days before the next control date a
// follow-up reminder becomes due.
const reminderWindowDays = 7

// StructureReport is the read-only result of validating a clinical-data
// mapping against the field registry. Unknown keys are a warning, never
// an error.
type StructureReport struct {
	UnknownFields    []string `json:"unknown_fields,omitempty"`
	RegisteredFields []string `json:"registered_fields"`
}

// Valid reports whether every key in the candidate mapping was registered.
func (r StructureReport) Valid() bool {
	return len(r.UnknownFields) == 0
}

// ClinicalRecordStore owns the clinical field registry, the bulk/
// individual reconciliation rule and the reminder computations. It is
// stateless; the registry is immutable configuration.
type ClinicalRecordStore struct{}

func NewClinicalRecordStore() *ClinicalRecordStore {
	return &ClinicalRecordStore{}
}

// ClinicalFields returns the ordered registry of recognized field names.
func (s *ClinicalRecordStore) ClinicalFields() []string {
	fields := make([]string, len(clinicalFieldRegistry))
	copy(fields, clinicalFieldRegistry)
	return fields
}

// IsRegisteredField reports whether name appears in the registry.
func (s *ClinicalRecordStore) IsRegisteredField(name string) bool {
	for _, f := range clinicalFieldRegistry {
		if f == name {
			return true
		}
	}
	return false
}

// Reconcile merges a bulk clinical-data mapping with individually
// supplied fields into the single mapping that gets stored. Individual
// fields overwrite the bulk value under the same key: callers supplying
// both want the individual value to win. The result is never nil and
// never drops keys from bulk that individual does not name.
func (s *ClinicalRecordStore) Reconcile(bulk entity.ClinicalData, individual map[string]string) entity.ClinicalData {
	merged := entity.ClinicalData{}
	for k, v := range bulk {
		merged[k] = v
	}
	for k, v := range individual {
		merged[k] = v
	}
	return merged
}

// ValidateStructure inspects a candidate mapping and reports any keys
// missing from the registry. The mapping itself is accepted unchanged.
func (s *ClinicalRecordStore) ValidateStructure(candidate map[string]string) StructureReport {
	report := StructureReport{RegisteredFields: s.ClinicalFields()}
	for key := range candidate {
		if !s.IsRegisteredField(key) {
			report.UnknownFields = append(report.UnknownFields, key)
		}
	}
	return report
}

// StructuredData projects the stored mapping onto the registry: every
// registered field appears, empty when unrecorded. Unregistered keys are
// not included here; they remain visible in the raw mapping.
func (s *ClinicalRecordStore) StructuredData(data entity.ClinicalData) map[string]string {
	out := make(map[string]string, len(clinicalFieldRegistry))
	for _, field := range clinicalFieldRegistry {
		out[field] = data.Get(field)
	}
	return out
}

// ValidateNextControl rejects a control date on or before today. A nil
// date is fine; the field is optional.
func (s *ClinicalRecordStore) ValidateNextControl(nextControl *time.Time, today time.Time) error {
	if nextControl == nil {
		return nil
	}
	if !truncateToDay(*nextControl).After(truncateToDay(today)) {
		return ErrPastControlDate
	}
	return nil
}

// NeedsReminder reports whether a follow-up reminder is due: a next
// control date is set, no reminder has gone out, and today is within
// the reminder window before the control date.
func (s *ClinicalRecordStore) NeedsReminder(nextControl *time.Time, reminderSent bool, today time.Time) bool {
	if nextControl == nil || reminderSent {
		return false
	}
	reminderFrom := nextControl.AddDate(0, 0, -reminderWindowDays)
	return !truncateToDay(today).Before(truncateToDay(reminderFrom))
}

// DaysUntilNextControl returns the whole days from today until the next
// control date, negative when it already passed. ok is false when no
// control date is set.
func (s *ClinicalRecordStore) DaysUntilNextControl(nextControl *time.Time, today time.Time) (int, bool) {
	if nextControl == nil {
		return 0, false
	}
	diff := truncateToDay(*nextControl).Sub(truncateToDay(today))
	return int(diff.Hours() / 24), true
}

// ReminderWindow returns the inclusive [from, to] date range the
// pending-reminders report selects on: today through today plus the
// reminder window.
func (s *ClinicalRecordStore) ReminderWindow(today time.Time) (time.Time, time.Time) {
	from := truncateToDay(today)
	return from, from.AddDate(0, 0, reminderWindowDays)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
