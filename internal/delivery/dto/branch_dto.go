package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateBranchRequest struct {
	Name      string `json:"name" validate:"required,max=150"`
	Address   string `json:"address" validate:"omitempty,max=255"`
	Phone     string `json:"phone" validate:"omitempty,max=30"`
	ManagerID string `json:"manager_id" validate:"omitempty,uuid"`
}

type UpdateBranchRequest struct {
	Name      *string `json:"name" validate:"omitempty,max=150"`
	Address   *string `json:"address" validate:"omitempty,max=255"`
	Phone     *string `json:"phone" validate:"omitempty,max=30"`
	ManagerID *string `json:"manager_id" validate:"omitempty,uuid"`
}

type BranchResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Address     string     `json:"address,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	ManagerID   *uuid.UUID `json:"manager_id,omitempty"`
	ManagerName string     `json:"manager_name,omitempty"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
