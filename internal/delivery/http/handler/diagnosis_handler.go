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

type DiagnosisHandler struct {
	diagnosisUsecase usecase.DiagnosisUsecase
	validator        *validator.CustomValidator
}

func NewDiagnosisHandler(diagnosisUsecase usecase.DiagnosisUsecase, validator *validator.CustomValidator) *DiagnosisHandler {
	return &DiagnosisHandler{
		diagnosisUsecase: diagnosisUsecase,
		validator:        validator,
	}
}

func (h *DiagnosisHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDiagnosisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	diagnosis, err := h.diagnosisUsecase.Create(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrBranchNotFound:
			response.NotFound(w, "Branch not found")
		case service.ErrPastControlDate:
			response.Error(w, http.StatusBadRequest, "Next control date must be after today", nil)
		default:
			response.InternalServerError(w, "Failed to create diagnosis")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Diagnosis created successfully", diagnosis)
}

func (h *DiagnosisHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid diagnosis ID", nil)
		return
	}

	diagnosis, err := h.diagnosisUsecase.GetByID(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrDiagnosisNotFound:
			response.NotFound(w, "Diagnosis not found")
		default:
			response.InternalServerError(w, "Failed to get diagnosis")
		}
		return
	}

	response.Success(w, http.StatusOK, "Diagnosis retrieved successfully", diagnosis)
}

func (h *DiagnosisHandler) List(w http.ResponseWriter, r *http.Request) {
	page := parsePagination(r)
	upcoming := false
	if v := queryBool(r, "upcoming_controls"); v != nil {
		upcoming = *v
	}
	filter := entity.DiagnosisFilter{
		Search:             r.URL.Query().Get("search"),
		BranchID:           queryUUID(r, "branch_id"),
		PatientID:          queryUUID(r, "patient_id"),
		LensType:           entity.LensType(r.URL.Query().Get("lens_type")),
		OphthalmicReferral: queryBool(r, "ophthalmic_referral"),
		DateFrom:           queryDate(r, "date_from"),
		DateTo:             queryDate(r, "date_to"),
		UpcomingControls:   upcoming,
	}

	diagnoses, total, err := h.diagnosisUsecase.List(r.Context(), filter, page)
	if err != nil {
		response.InternalServerError(w, "Failed to list diagnoses")
		return
	}

	response.SuccessPaginated(w, "Diagnoses retrieved successfully", diagnoses,
		response.NewPagination(page.Page, page.PageSize, total))
}

func (h *DiagnosisHandler) ListByPatient(w http.ResponseWriter, r *http.Request) {
	patientID, err := uuid.Parse(mux.Vars(r)["patientId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	diagnoses, err := h.diagnosisUsecase.ListByPatient(r.Context(), patientID)
	if err != nil {
		response.InternalServerError(w, "Failed to list diagnoses")
		return
	}

	response.Success(w, http.StatusOK, "Diagnoses retrieved successfully", diagnoses)
}

func (h *DiagnosisHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid diagnosis ID", nil)
		return
	}

	var req dto.UpdateDiagnosisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	diagnosis, err := h.diagnosisUsecase.Update(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrDiagnosisNotFound:
			response.NotFound(w, "Diagnosis not found")
		case service.ErrPastControlDate:
			response.Error(w, http.StatusBadRequest, "Next control date must be after today", nil)
		default:
			response.InternalServerError(w, "Failed to update diagnosis")
		}
		return
	}

	response.Success(w, http.StatusOK, "Diagnosis updated successfully", diagnosis)
}

func (h *DiagnosisHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid diagnosis ID", nil)
		return
	}

	if err := h.diagnosisUsecase.Delete(r.Context(), id); err != nil {
		switch err {
		case usecase.ErrDiagnosisNotFound:
			response.NotFound(w, "Diagnosis not found")
		default:
			response.InternalServerError(w, "Failed to delete diagnosis")
		}
		return
	}

	response.Success(w, http.StatusOK, "Diagnosis deleted successfully", nil)
}

func (h *DiagnosisHandler) PendingReminders(w http.ResponseWriter, r *http.Request) {
	reminders, err := h.diagnosisUsecase.PendingReminders(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list pending reminders")
		return
	}

	response.Success(w, http.StatusOK, "Pending reminders retrieved successfully", reminders)
}

func (h *DiagnosisHandler) MarkReminderSent(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid diagnosis ID", nil)
		return
	}

	if err := h.diagnosisUsecase.MarkReminderSent(r.Context(), id); err != nil {
		switch err {
		case usecase.ErrDiagnosisNotFound:
			response.NotFound(w, "Diagnosis not found")
		case usecase.ErrReminderWithoutControl:
			response.Error(w, http.StatusBadRequest, "Diagnosis has no next control date", nil)
		case usecase.ErrReminderAlreadySent:
			response.Error(w, http.StatusConflict, "Reminder has already been sent", nil)
		default:
			response.InternalServerError(w, "Failed to mark reminder as sent")
		}
		return
	}

	response.Success(w, http.StatusOK, "Reminder marked as sent", nil)
}

// ValidateStructure checks a clinical-data payload against the field
// registry without persisting anything.
func (h *DiagnosisHandler) ValidateStructure(w http.ResponseWriter, r *http.Request) {
	var data map[string]string
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	report := h.diagnosisUsecase.ValidateStructure(r.Context(), data)
	response.Success(w, http.StatusOK, "Clinical data validated", report)
}

func (h *DiagnosisHandler) ClinicalFields(w http.ResponseWriter, r *http.Request) {
	fields := h.diagnosisUsecase.ClinicalFields(r.Context())
	response.Success(w, http.StatusOK, "Clinical fields retrieved successfully", fields)
}

func (h *DiagnosisHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.diagnosisUsecase.Stats(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to compute diagnosis statistics")
		return
	}

	response.Success(w, http.StatusOK, "Diagnosis statistics retrieved successfully", stats)
}
