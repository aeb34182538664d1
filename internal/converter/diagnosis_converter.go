package converter

import (
	"time"

	"github.com/google/uuid"

	"optical-clinic-api/internal/delivery/dto"
	"optical-clinic-api/internal/domain/entity"
	"optical-clinic-api/internal/domain/repository"
	"optical-clinic-api/internal/service"
)

var clinicalRecords = service.NewClinicalRecordStore()

// DiagnosisToResponse converts a Diagnosis entity to DiagnosisResponse DTO.
// The reminder predicates are evaluated against now.
func DiagnosisToResponse(diagnosis *entity.Diagnosis, now time.Time) *dto.DiagnosisResponse {
	if diagnosis == nil {
		return nil
	}

	response := &dto.DiagnosisResponse{
		ID:                 diagnosis.ID,
		PatientID:          diagnosis.PatientID,
		ClinicalData:       diagnosis.ClinicalData,
		StructuredData:     clinicalRecords.StructuredData(diagnosis.ClinicalData),
		LensType:           string(diagnosis.LensType),
		LensMaterial:       string(diagnosis.LensMaterial),
		LensFilter:         string(diagnosis.LensFilter),
		NextControlDate:    diagnosis.NextControlDate,
		ReminderSent:       diagnosis.ReminderSent,
		OphthalmicReferral: diagnosis.OphthalmicReferral,
		AdditionalNotes:    diagnosis.AdditionalNotes,
		Comment:            diagnosis.Comment,
		ConsultedAt:        diagnosis.ConsultedAt,
		BranchID:           diagnosis.BranchID,
		IsActive:           diagnosis.IsActive,
		CreatedAt:          diagnosis.CreatedAt,
		UpdatedAt:          diagnosis.UpdatedAt,
	}

	response.NeedsReminder = clinicalRecords.NeedsReminder(diagnosis.NextControlDate, diagnosis.ReminderSent, now)
	if days, ok := clinicalRecords.DaysUntilNextControl(diagnosis.NextControlDate, now); ok {
		response.DaysUntilNextControl = &days
	}

	if diagnosis.Patient.ID != uuid.Nil {
		response.PatientName = diagnosis.Patient.FullName
		response.PatientCode = diagnosis.Patient.PatientCode
	}
	if diagnosis.Branch.Name != "" {
		response.BranchName = diagnosis.Branch.Name
	}

	return response
}

// DiagnosesToResponses converts a slice of Diagnosis entities to slice of DiagnosisResponse DTOs
func DiagnosesToResponses(diagnoses []entity.Diagnosis, now time.Time) []dto.DiagnosisResponse {
	responses := make([]dto.DiagnosisResponse, len(diagnoses))
	for i, diagnosis := range diagnoses {
		resp := DiagnosisToResponse(&diagnosis, now)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// DiagnosisToReminderResponse builds a pending-reminder row for a diagnosis.
// The patient relation must be preloaded.
func DiagnosisToReminderResponse(diagnosis *entity.Diagnosis, now time.Time) *dto.ReminderResponse {
	if diagnosis == nil || diagnosis.NextControlDate == nil {
		return nil
	}

	days, _ := clinicalRecords.DaysUntilNextControl(diagnosis.NextControlDate, now)

	return &dto.ReminderResponse{
		DiagnosisID:     diagnosis.ID,
		PatientID:       diagnosis.PatientID,
		PatientName:     diagnosis.Patient.FullName,
		PatientCode:     diagnosis.Patient.PatientCode,
		PatientContact:  diagnosis.Patient.ContactInfo(),
		NextControlDate: *diagnosis.NextControlDate,
		DaysRemaining:   days,
	}
}

// DiagnosesToReminderResponses converts pending-reminder diagnoses to reminder rows
func DiagnosesToReminderResponses(diagnoses []entity.Diagnosis, now time.Time) []dto.ReminderResponse {
	responses := make([]dto.ReminderResponse, 0, len(diagnoses))
	for i := range diagnoses {
		if resp := DiagnosisToReminderResponse(&diagnoses[i], now); resp != nil {
			responses = append(responses, *resp)
		}
	}
	return responses
}

// DiagnosisStatsToResponse converts repository stats to a response DTO
func DiagnosisStatsToResponse(stats *repository.DiagnosisStats) *dto.DiagnosisStatsResponse {
	if stats == nil {
		return nil
	}

	top := make([]dto.LensTypeCountResponse, len(stats.TopLensTypes))
	for i, lt := range stats.TopLensTypes {
		top[i] = dto.LensTypeCountResponse{
			LensType: string(lt.LensType),
			Count:    lt.Count,
		}
	}

	return &dto.DiagnosisStatsResponse{
		Total:               stats.Total,
		ThisMonth:           stats.ThisMonth,
		UpcomingControls:    stats.UpcomingControls,
		PendingReminders:    stats.PendingReminders,
		OphthalmicReferrals: stats.OphthalmicReferrals,
		TopLensTypes:        top,
	}
}
