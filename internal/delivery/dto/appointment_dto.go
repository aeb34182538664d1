package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	PatientID   string    `json:"patient_id" validate:"required,uuid"`
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
	Comments    string    `json:"comments" validate:"omitempty"`
	DoctorID    string    `json:"doctor_id" validate:"omitempty,uuid"`
	BranchID    string    `json:"branch_id" validate:"required,uuid"`
}

// UpdateAppointmentRequest edits the free-form comments. Date changes
// go through the status endpoint as a reschedule so they pass the
// transition guards.
type UpdateAppointmentRequest struct {
	Comments *string `json:"comments"`
}

// ChangeStatusRequest asks for a status transition. NewStatus is the
// target status; the new datetime is required when rescheduling.
type ChangeStatusRequest struct {
	NewStatus   string     `json:"new_status" validate:"required,oneof=confirmed rescheduled cancelled in_progress finished"`
	Comments    *string    `json:"comments"`
	ScheduledAt *time.Time `json:"new_scheduled_at"`
	DoctorID    *string    `json:"new_doctor_id" validate:"omitempty,uuid"`
}

type ReassignDoctorRequest struct {
	DoctorID string `json:"doctor_id" validate:"required,uuid"`
}

// Response DTOs

type AppointmentResponse struct {
	ID          uuid.UUID  `json:"id"`
	PatientID   uuid.UUID  `json:"patient_id"`
	PatientName string     `json:"patient_name,omitempty"`
	PatientCode string     `json:"patient_code,omitempty"`
	ScheduledAt time.Time  `json:"scheduled_at"`
	Status      string     `json:"status"`
	Comments    string     `json:"comments,omitempty"`
	DoctorID    *uuid.UUID `json:"doctor_id,omitempty"`
	DoctorName  string     `json:"doctor_name,omitempty"`
	BranchID    uuid.UUID  `json:"branch_id"`
	BranchName  string     `json:"branch_name,omitempty"`

	// Derived transition predicates
	CanConfirm    bool `json:"can_confirm"`
	CanReschedule bool `json:"can_reschedule"`
	CanCancel     bool `json:"can_cancel"`
	CanStart      bool `json:"can_start"`
	CanFinish     bool `json:"can_finish"`

	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
