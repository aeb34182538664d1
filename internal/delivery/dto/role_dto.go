package dto

import "time"

type CreateRoleRequest struct {
	Name          string `json:"name" validate:"required,max=100"`
	Description   string `json:"description" validate:"omitempty,max=255"`
	PermissionIDs []int  `json:"permission_ids" validate:"omitempty,dive,gt=0"`
}

type UpdateRoleRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty,max=255"`
}

type AssignPermissionsRequest struct {
	PermissionIDs []int `json:"permission_ids" validate:"required,dive,gt=0"`
}

type CreatePermissionRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type PermissionResponse struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	IsActive bool   `json:"is_active"`
}

type RoleResponse struct {
	ID          int                  `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description,omitempty"`
	Permissions []PermissionResponse `json:"permissions,omitempty"`
	IsActive    bool                 `json:"is_active"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}
