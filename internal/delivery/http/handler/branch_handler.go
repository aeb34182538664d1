package handler

import (
	"encoding/json"
	"net/http"

	"optical-clinic-api/internal/delivery/dto"
	"optical-clinic-api/internal/usecase"
	"optical-clinic-api/pkg/response"
	"optical-clinic-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type BranchHandler struct {
	branchUsecase usecase.BranchUsecase
	validator     *validator.CustomValidator
}

func NewBranchHandler(branchUsecase usecase.BranchUsecase, validator *validator.CustomValidator) *BranchHandler {
	return &BranchHandler{
		branchUsecase: branchUsecase,
		validator:     validator,
	}
}

func (h *BranchHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBranchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	branch, err := h.branchUsecase.Create(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrManagerNotFound:
			response.NotFound(w, "Manager not found")
		default:
			response.InternalServerError(w, "Failed to create branch")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Branch created successfully", branch)
}

func (h *BranchHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid branch ID", nil)
		return
	}

	branch, err := h.branchUsecase.GetByID(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrBranchNotFound:
			response.NotFound(w, "Branch not found")
		default:
			response.InternalServerError(w, "Failed to get branch")
		}
		return
	}

	response.Success(w, http.StatusOK, "Branch retrieved successfully", branch)
}

func (h *BranchHandler) List(w http.ResponseWriter, r *http.Request) {
	branches, err := h.branchUsecase.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		response.InternalServerError(w, "Failed to list branches")
		return
	}

	response.Success(w, http.StatusOK, "Branches retrieved successfully", branches)
}

func (h *BranchHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid branch ID", nil)
		return
	}

	var req dto.UpdateBranchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	branch, err := h.branchUsecase.Update(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrBranchNotFound:
			response.NotFound(w, "Branch not found")
		case usecase.ErrManagerNotFound:
			response.NotFound(w, "Manager not found")
		default:
			response.InternalServerError(w, "Failed to update branch")
		}
		return
	}

	response.Success(w, http.StatusOK, "Branch updated successfully", branch)
}

func (h *BranchHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid branch ID", nil)
		return
	}

	if err := h.branchUsecase.Deactivate(r.Context(), id); err != nil {
		switch err {
		case usecase.ErrBranchNotFound:
			response.NotFound(w, "Branch not found")
		default:
			response.InternalServerError(w, "Failed to deactivate branch")
		}
		return
	}

	response.Success(w, http.StatusOK, "Branch deactivated successfully", nil)
}
