package handler

import (
	"encoding/json"
	"net/http"

	"optical-clinic-api/internal/delivery/dto"
	"optical-clinic-api/internal/domain/entity"
	"optical-clinic-api/internal/service"
	"optical-clinic-api/internal/usecase"
	"optical-clinic-api/pkg/response"
	"optical-clinic-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.Create(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrBranchNotFound:
			response.NotFound(w, "Branch not found")
		case service.ErrPastDateTime:
			response.Error(w, http.StatusBadRequest, "Appointment date and time must be in the future", nil)
		case service.ErrInactivePatient:
			response.Error(w, http.StatusUnprocessableEntity, "Patient is inactive", nil)
		case service.ErrInactiveDoctor:
			response.Error(w, http.StatusUnprocessableEntity, "Doctor is inactive", nil)
		default:
			response.InternalServerError(w, "Failed to create appointment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Appointment created successfully", appointment)
}

func (h *AppointmentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	appointment, err := h.appointmentUsecase.GetByID(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		default:
			response.InternalServerError(w, "Failed to get appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", appointment)
}

func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	page := parsePagination(r)
	filter := entity.AppointmentFilter{
		Search:    r.URL.Query().Get("search"),
		Status:    entity.AppointmentStatus(r.URL.Query().Get("status")),
		BranchID:  queryUUID(r, "branch_id"),
		DoctorID:  queryUUID(r, "doctor_id"),
		PatientID: queryUUID(r, "patient_id"),
		DateFrom:  queryDate(r, "date_from"),
		DateTo:    queryDate(r, "date_to"),
	}

	appointments, total, err := h.appointmentUsecase.List(r.Context(), filter, page)
	if err != nil {
		response.InternalServerError(w, "Failed to list appointments")
		return
	}

	response.SuccessPaginated(w, "Appointments retrieved successfully", appointments,
		response.NewPagination(page.Page, page.PageSize, total))
}

func (h *AppointmentHandler) ListByDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, err := uuid.Parse(mux.Vars(r)["doctorId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	filter := entity.AppointmentFilter{
		Status:   entity.AppointmentStatus(r.URL.Query().Get("status")),
		DateFrom: queryDate(r, "date_from"),
		DateTo:   queryDate(r, "date_to"),
	}

	appointments, err := h.appointmentUsecase.ListByDoctor(r.Context(), doctorID, filter)
	if err != nil {
		response.InternalServerError(w, "Failed to list appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) ListByPatient(w http.ResponseWriter, r *http.Request) {
	patientID, err := uuid.Parse(mux.Vars(r)["patientId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	appointments, err := h.appointmentUsecase.ListByPatient(r.Context(), patientID)
	if err != nil {
		response.InternalServerError(w, "Failed to list appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	var req dto.UpdateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	appointment, err := h.appointmentUsecase.Update(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		default:
			response.InternalServerError(w, "Failed to update appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment updated successfully", appointment)
}

func (h *AppointmentHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	var req dto.ChangeStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.ChangeStatus(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrInvalidStatus:
			response.Error(w, http.StatusBadRequest, "Unknown appointment status", nil)
		case service.ErrInvalidTransition:
			response.Error(w, http.StatusConflict, "Appointment status cannot be changed from its current status", nil)
		case service.ErrMissingRescheduleDate:
			response.Error(w, http.StatusBadRequest, "A new date and time is required to reschedule", nil)
		case service.ErrPastDateTime:
			response.Error(w, http.StatusBadRequest, "Appointment date and time must be in the future", nil)
		case service.ErrInactiveDoctor:
			response.Error(w, http.StatusUnprocessableEntity, "Doctor is inactive", nil)
		default:
			response.InternalServerError(w, "Failed to change appointment status")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment status changed successfully", appointment)
}

func (h *AppointmentHandler) ReassignDoctor(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	var req dto.ReassignDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.ReassignDoctor(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case service.ErrInactiveDoctor:
			response.Error(w, http.StatusUnprocessableEntity, "Doctor is inactive", nil)
		default:
			response.InternalServerError(w, "Failed to reassign doctor")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor reassigned successfully", appointment)
}

func (h *AppointmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	if err := h.appointmentUsecase.Delete(r.Context(), id); err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		default:
			response.InternalServerError(w, "Failed to delete appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment deleted successfully", nil)
}
