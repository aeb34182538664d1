package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the lifecycle status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusCreated     AppointmentStatus = "created"
	AppointmentStatusConfirmed   AppointmentStatus = "confirmed"
	AppointmentStatusRescheduled AppointmentStatus = "rescheduled"
	AppointmentStatusCancelled   AppointmentStatus = "cancelled"
	AppointmentStatusInProgress  AppointmentStatus = "in_progress"
	AppointmentStatusFinished    AppointmentStatus = "finished"
)

// AppointmentStatuses lists every valid status value.
var AppointmentStatuses = []AppointmentStatus{
	AppointmentStatusCreated,
	AppointmentStatusConfirmed,
	AppointmentStatusRescheduled,
	AppointmentStatusCancelled,
	AppointmentStatusInProgress,
	AppointmentStatusFinished,
}

// IsValidAppointmentStatus reports whether s is one of the defined statuses.
func IsValidAppointmentStatus(s AppointmentStatus) bool {
	for _, v := range AppointmentStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Appointment represents a scheduled patient encounter at a branch
type Appointment struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID   uuid.UUID         `gorm:"type:uuid;not null;index:idx_appointments_patient_time" json:"patient_id"`
	ScheduledAt time.Time         `gorm:"not null;index:idx_appointments_patient_time;index" json:"scheduled_at"`
	Status      AppointmentStatus `gorm:"type:varchar(20);not null;default:'created';index" json:"status"`
	Comments    string            `gorm:"type:text" json:"comments,omitempty"`
	DoctorID    *uuid.UUID        `gorm:"type:uuid;index" json:"doctor_id,omitempty"`
	CreatedByID *uuid.UUID        `gorm:"type:uuid" json:"created_by,omitempty"`
	BranchID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"branch_id"`
	IsActive    bool              `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt   time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient   Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor    *User   `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	CreatedBy *User   `gorm:"foreignKey:CreatedByID" json:"created_by_user,omitempty"`
	Branch    Branch  `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsTerminal reports whether the appointment reached a state with no
// outgoing transitions.
func (a *Appointment) IsTerminal() bool {
	return a.Status == AppointmentStatusCancelled || a.Status == AppointmentStatusFinished
}
