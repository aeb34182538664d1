package converter

import (
	"optical-clinic-api/internal/delivery/dto"
	"optical-clinic-api/internal/domain/entity"
)

// PermissionToResponse converts a Permission entity to PermissionResponse DTO
func PermissionToResponse(permission *entity.Permission) *dto.PermissionResponse {
	if permission == nil {
		return nil
	}

	return &dto.PermissionResponse{
		ID:       permission.ID,
		Name:     permission.Name,
		Code:     permission.Code,
		IsActive: permission.IsActive,
	}
}

// PermissionsToResponses converts a slice of Permission entities to slice of PermissionResponse DTOs
func PermissionsToResponses(permissions []entity.Permission) []dto.PermissionResponse {
	responses := make([]dto.PermissionResponse, len(permissions))
	for i, permission := range permissions {
		resp := PermissionToResponse(&permission)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// RoleToResponse converts a Role entity to RoleResponse DTO
func RoleToResponse(role *entity.Role) *dto.RoleResponse {
	if role == nil {
		return nil
	}

	return &dto.RoleResponse{
		ID:          role.ID,
		Name:        role.Name,
		Description: role.Description,
		Permissions: PermissionsToResponses(role.Permissions),
		IsActive:    role.IsActive,
		CreatedAt:   role.CreatedAt,
		UpdatedAt:   role.UpdatedAt,
	}
}

// RolesToResponses converts a slice of Role entities to slice of RoleResponse DTOs
func RolesToResponses(roles []entity.Role) []dto.RoleResponse {
	responses := make([]dto.RoleResponse, len(roles))
	for i, role := range roles {
		resp := RoleToResponse(&role)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
