package converter

import (
	"github.com/google/uuid"

	"optical-clinic-api/internal/delivery/dto"
	"optical-clinic-api/internal/domain/entity"
	"optical-clinic-api/internal/service"
)

var lifecycle = service.NewAppointmentLifecycle()

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO,
// including the transition predicates derived from the current status.
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:          appointment.ID,
		PatientID:   appointment.PatientID,
		ScheduledAt: appointment.ScheduledAt,
		Status:      string(appointment.Status),
		Comments:    appointment.Comments,
		DoctorID:    appointment.DoctorID,
		BranchID:    appointment.BranchID,

		CanConfirm:    lifecycle.CanConfirm(appointment.Status),
		CanReschedule: lifecycle.CanReschedule(appointment.Status),
		CanCancel:     lifecycle.CanCancel(appointment.Status),
		CanStart:      lifecycle.CanStart(appointment.Status),
		CanFinish:     lifecycle.CanFinish(appointment.Status),

		IsActive:  appointment.IsActive,
		CreatedAt: appointment.CreatedAt,
		UpdatedAt: appointment.UpdatedAt,
	}

	if appointment.Patient.ID != uuid.Nil {
		response.PatientName = appointment.Patient.FullName
		response.PatientCode = appointment.Patient.PatientCode
	}
	if appointment.Doctor != nil {
		response.DoctorName = appointment.Doctor.FullName
	}
	if appointment.Branch.Name != "" {
		response.BranchName = appointment.Branch.Name
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to slice of AppointmentResponse DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i, appointment := range appointments {
		resp := AppointmentToResponse(&appointment)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
