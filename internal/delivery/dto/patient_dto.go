package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreatePatientRequest struct {
	FullName    string `json:"full_name" validate:"required,min=2"`
	Address     string `json:"address" validate:"omitempty"`
	DateOfBirth string `json:"date_of_birth" validate:"omitempty"` // YYYY-MM-DD
	Gender      string `json:"gender" validate:"omitempty,oneof=M F O"`
	Phone       string `json:"phone" validate:"omitempty,min=10,max=20"`
	Email       string `json:"email" validate:"omitempty,email"`
	BranchID    string `json:"branch_id" validate:"omitempty,uuid"`
}

type UpdatePatientRequest struct {
	FullName    *string `json:"full_name" validate:"omitempty,min=2"`
	Address     *string `json:"address"`
	DateOfBirth *string `json:"date_of_birth"` // YYYY-MM-DD
	Gender      *string `json:"gender" validate:"omitempty,oneof=M F O"`
	Phone       *string `json:"phone" validate:"omitempty,min=10,max=20"`
	Email       *string `json:"email" validate:"omitempty,email"`
	BranchID    *string `json:"branch_id" validate:"omitempty,uuid"`
}

// Response DTOs

type PatientResponse struct {
	ID            uuid.UUID  `json:"id"`
	FullName      string     `json:"full_name"`
	Address       string     `json:"address,omitempty"`
	DateOfBirth   *time.Time `json:"date_of_birth,omitempty"`
	Gender        string     `json:"gender,omitempty"`
	Phone         string     `json:"phone,omitempty"`
	Email         string     `json:"email,omitempty"`
	PatientCode   string     `json:"patient_code"`
	RegistrarName string     `json:"registrar_name,omitempty"`
	BranchName    string     `json:"branch_name,omitempty"`
	IsActive      bool       `json:"is_active"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
