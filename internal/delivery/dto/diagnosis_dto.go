package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// CreateDiagnosisRequest accepts the clinical sheet either as a bulk
// clinical_data object, as individual top-level fields, or both. When
// both are present the individual fields win.
type CreateDiagnosisRequest struct {
	PatientID    string            `json:"patient_id" validate:"required,uuid"`
	ClinicalData map[string]string `json:"clinical_data"`

	RxInUse             *string `json:"rx_in_use"`
	MedicalHistory      *string `json:"medical_history"`
	SymptomsSigns       *string `json:"symptoms_signs"`
	PanoramicAnalysis   *string `json:"panoramic_analysis"`
	RightEyeExam        *string `json:"right_eye_exam"`
	LeftEyeExam         *string `json:"left_eye_exam"`
	PantoscopicAnalysis *string `json:"pantoscopic_analysis"`
	VertexAnalysis      *string `json:"vertex_analysis"`
	PatientAnamnesis    *string `json:"patient_anamnesis"`
	Findings            *string `json:"findings"`
	DiagnosisTreatment  *string `json:"diagnosis_treatment"`
	Retinoscopy         *string `json:"retinoscopy"`
	VisualAcuity        *string `json:"visual_acuity"`
	SubjectiveRefine    *string `json:"subjective_refinement"`
	FinalRx             *string `json:"final_rx"`

	LensType           string     `json:"lens_type" validate:"omitempty,oneof=monofocal bifocal progressive occupational contact"`
	LensMaterial       string     `json:"lens_material" validate:"omitempty,oneof=cr39 polycarbonate trivex high_index mineral"`
	LensFilter         string     `json:"lens_filter" validate:"omitempty,oneof=none antireflective blue_light photochromic polarized uv"`
	NextControlDate    *time.Time `json:"next_control_date" validate:"omitempty,gt"`
	OphthalmicReferral bool       `json:"ophthalmic_referral"`
	AdditionalNotes    string     `json:"additional_notes"`
	Comment            string     `json:"comment"`
	ConsultedAt        *time.Time `json:"consulted_at" validate:"required"`
	BranchID           string     `json:"branch_id" validate:"required,uuid"`
}

type UpdateDiagnosisRequest struct {
	ClinicalData map[string]string `json:"clinical_data"`

	RxInUse             *string `json:"rx_in_use"`
	MedicalHistory      *string `json:"medical_history"`
	SymptomsSigns       *string `json:"symptoms_signs"`
	PanoramicAnalysis   *string `json:"panoramic_analysis"`
	RightEyeExam        *string `json:"right_eye_exam"`
	LeftEyeExam         *string `json:"left_eye_exam"`
	PantoscopicAnalysis *string `json:"pantoscopic_analysis"`
	VertexAnalysis      *string `json:"vertex_analysis"`
	PatientAnamnesis    *string `json:"patient_anamnesis"`
	Findings            *string `json:"findings"`
	DiagnosisTreatment  *string `json:"diagnosis_treatment"`
	Retinoscopy         *string `json:"retinoscopy"`
	VisualAcuity        *string `json:"visual_acuity"`
	SubjectiveRefine    *string `json:"subjective_refinement"`
	FinalRx             *string `json:"final_rx"`

	LensType           *string    `json:"lens_type" validate:"omitempty,oneof=monofocal bifocal progressive occupational contact"`
	LensMaterial       *string    `json:"lens_material" validate:"omitempty,oneof=cr39 polycarbonate trivex high_index mineral"`
	LensFilter         *string    `json:"lens_filter" validate:"omitempty,oneof=none antireflective blue_light photochromic polarized uv"`
	NextControlDate    *time.Time `json:"next_control_date" validate:"omitempty,gt"`
	OphthalmicReferral *bool      `json:"ophthalmic_referral"`
	AdditionalNotes    *string    `json:"additional_notes"`
	Comment            *string    `json:"comment"`
}

// Response DTOs

type DiagnosisResponse struct {
	ID          uuid.UUID `json:"id"`
	PatientID   uuid.UUID `json:"patient_id"`
	PatientName string    `json:"patient_name,omitempty"`
	PatientCode string    `json:"patient_code,omitempty"`

	ClinicalData   map[string]string `json:"clinical_data"`
	StructuredData map[string]string `json:"structured_data,omitempty"`

	LensType           string     `json:"lens_type,omitempty"`
	LensMaterial       string     `json:"lens_material,omitempty"`
	LensFilter         string     `json:"lens_filter,omitempty"`
	NextControlDate    *time.Time `json:"next_control_date,omitempty"`
	ReminderSent       bool       `json:"reminder_sent"`
	OphthalmicReferral bool       `json:"ophthalmic_referral"`
	AdditionalNotes    string     `json:"additional_notes,omitempty"`
	Comment            string     `json:"comment,omitempty"`
	ConsultedAt        time.Time  `json:"consulted_at"`

	NeedsReminder        bool `json:"needs_reminder"`
	DaysUntilNextControl *int `json:"days_until_next_control,omitempty"`

	BranchID   uuid.UUID `json:"branch_id"`
	BranchName string    `json:"branch_name,omitempty"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ReminderResponse is a row of the pending-reminders listing.
type ReminderResponse struct {
	DiagnosisID     uuid.UUID `json:"diagnosis_id"`
	PatientID       uuid.UUID `json:"patient_id"`
	PatientName     string    `json:"patient_name"`
	PatientCode     string    `json:"patient_code"`
	PatientContact  string    `json:"patient_contact,omitempty"`
	NextControlDate time.Time `json:"next_control_date"`
	DaysRemaining   int       `json:"days_remaining"`
}

type StructureReportResponse struct {
	Valid            bool     `json:"valid"`
	Warnings         []string `json:"warnings"`
	UnknownFields    []string `json:"unknown_fields"`
	RegisteredFields []string `json:"registered_fields"`
}

type LensTypeCountResponse struct {
	LensType string `json:"lens_type"`
	Count    int64  `json:"count"`
}

type DiagnosisStatsResponse struct {
	Total               int64                   `json:"total"`
	ThisMonth           int64                   `json:"this_month"`
	UpcomingControls    int64                   `json:"upcoming_controls"`
	PendingReminders    int64                   `json:"pending_reminders"`
	OphthalmicReferrals int64                   `json:"ophthalmic_referrals"`
	TopLensTypes        []LensTypeCountResponse `json:"top_lens_types"`
}
