package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"optical-clinic-api/internal/delivery/dto"
	"optical-clinic-api/internal/usecase"
	"optical-clinic-api/pkg/response"
	"optical-clinic-api/pkg/validator"

	"github.com/gorilla/mux"
)

type RoleHandler struct {
	roleUsecase usecase.RoleUsecase
	validator   *validator.CustomValidator
}

func NewRoleHandler(roleUsecase usecase.RoleUsecase, validator *validator.CustomValidator) *RoleHandler {
	return &RoleHandler{
		roleUsecase: roleUsecase,
		validator:   validator,
	}
}

func roleID(r *http.Request) (int, error) {
	return strconv.Atoi(mux.Vars(r)["id"])
}

func (h *RoleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	role, err := h.roleUsecase.Create(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrRoleNameTaken:
			response.Error(w, http.StatusConflict, "Role name already exists", nil)
		case usecase.ErrPermissionNotFound:
			response.NotFound(w, "One or more permissions were not found")
		default:
			response.InternalServerError(w, "Failed to create role")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Role created successfully", role)
}

func (h *RoleHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := roleID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid role ID", nil)
		return
	}

	role, err := h.roleUsecase.GetByID(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrRoleNotFound:
			response.NotFound(w, "Role not found")
		default:
			response.InternalServerError(w, "Failed to get role")
		}
		return
	}

	response.Success(w, http.StatusOK, "Role retrieved successfully", role)
}

func (h *RoleHandler) List(w http.ResponseWriter, r *http.Request) {
	roles, err := h.roleUsecase.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		response.InternalServerError(w, "Failed to list roles")
		return
	}

	response.Success(w, http.StatusOK, "Roles retrieved successfully", roles)
}

func (h *RoleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := roleID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid role ID", nil)
		return
	}

	var req dto.UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	role, err := h.roleUsecase.Update(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrRoleNotFound:
			response.NotFound(w, "Role not found")
		case usecase.ErrRoleNameTaken:
			response.Error(w, http.StatusConflict, "Role name already exists", nil)
		default:
			response.InternalServerError(w, "Failed to update role")
		}
		return
	}

	response.Success(w, http.StatusOK, "Role updated successfully", role)
}

func (h *RoleHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, err := roleID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid role ID", nil)
		return
	}

	if err := h.roleUsecase.Deactivate(r.Context(), id); err != nil {
		switch err {
		case usecase.ErrRoleNotFound:
			response.NotFound(w, "Role not found")
		default:
			response.InternalServerError(w, "Failed to deactivate role")
		}
		return
	}

	response.Success(w, http.StatusOK, "Role deactivated successfully", nil)
}

func (h *RoleHandler) AssignPermissions(w http.ResponseWriter, r *http.Request) {
	id, err := roleID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid role ID", nil)
		return
	}

	var req dto.AssignPermissionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	role, err := h.roleUsecase.AssignPermissions(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrRoleNotFound:
			response.NotFound(w, "Role not found")
		case usecase.ErrPermissionNotFound:
			response.NotFound(w, "One or more permissions were not found")
		default:
			response.InternalServerError(w, "Failed to assign permissions")
		}
		return
	}

	response.Success(w, http.StatusOK, "Permissions assigned successfully", role)
}

func (h *RoleHandler) CreatePermission(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePermissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	permission, err := h.roleUsecase.CreatePermission(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrPermissionNameTaken:
			response.Error(w, http.StatusConflict, "Permission name already exists", nil)
		default:
			response.InternalServerError(w, "Failed to create permission")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Permission created successfully", permission)
}

func (h *RoleHandler) ListPermissions(w http.ResponseWriter, r *http.Request) {
	permissions, err := h.roleUsecase.ListPermissions(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		response.InternalServerError(w, "Failed to list permissions")
		return
	}

	response.Success(w, http.StatusOK, "Permissions retrieved successfully", permissions)
}
