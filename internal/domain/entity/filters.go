package entity

import (
	"time"

	"github.com/google/uuid"
)

// Pagination carries the page window of a list query. PageSize is capped
// by the repository layer.
type Pagination struct {
	Page     int
	PageSize int
}

// PatientFilter narrows the paginated patient listing.
type PatientFilter struct {
	Search   string
	BranchID *uuid.UUID
	Gender   string
}

// AppointmentFilter narrows the paginated appointment listing.
type AppointmentFilter struct {
	Search    string
	Status    AppointmentStatus
	BranchID  *uuid.UUID
	DoctorID  *uuid.UUID
	PatientID *uuid.UUID
	DateFrom  *time.Time
	DateTo    *time.Time
}

// DiagnosisFilter narrows the paginated diagnosis listing.
type DiagnosisFilter struct {
	Search             string
	BranchID           *uuid.UUID
	PatientID          *uuid.UUID
	LensType           LensType
	OphthalmicReferral *bool
	DateFrom           *time.Time
	DateTo             *time.Time
	UpcomingControls   bool
}
