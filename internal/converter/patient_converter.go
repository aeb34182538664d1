package converter

import (
	"optical-clinic-api/internal/delivery/dto"
	"optical-clinic-api/internal/domain/entity"
)

// PatientToResponse converts a Patient entity to PatientResponse DTO
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	response := &dto.PatientResponse{
		ID:          patient.ID,
		FullName:    patient.FullName,
		Address:     patient.Address,
		DateOfBirth: patient.DateOfBirth,
		Gender:      patient.Gender,
		Phone:       patient.Phone,
		Email:       patient.Email,
		PatientCode: patient.PatientCode,
		IsActive:    patient.IsActive,
		CreatedAt:   patient.CreatedAt,
		UpdatedAt:   patient.UpdatedAt,
	}

	if patient.Registrar != nil {
		response.RegistrarName = patient.Registrar.FullName
	}
	if patient.Branch != nil {
		response.BranchName = patient.Branch.Name
	}

	return response
}

// PatientsToResponses converts a slice of Patient entities to slice of PatientResponse DTOs
func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(patients))
	for i, patient := range patients {
		resp := PatientToResponse(&patient)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
