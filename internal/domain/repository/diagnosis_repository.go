package repository

import (
	"time"

	"optical-clinic-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LensTypeCount is one row of the lens-type usage breakdown.
type LensTypeCount struct {
	LensType entity.LensType `json:"lens_type"`
	Count    int64           `json:"count"`
}

// DiagnosisStats aggregates the figures shown on the diagnosis dashboard.
type DiagnosisStats struct {
	Total               int64           `json:"total_diagnoses"`
	ThisMonth           int64           `json:"diagnoses_this_month"`
	UpcomingControls    int64           `json:"upcoming_controls"`
	PendingReminders    int64           `json:"pending_reminders"`
	TopLensTypes        []LensTypeCount `json:"top_lens_types"`
	OphthalmicReferrals int64           `json:"ophthalmic_referrals"`
}

type DiagnosisRepository interface {
	Create(db *gorm.DB, diag *entity.Diagnosis) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Diagnosis, error)
	Search(db *gorm.DB, filter entity.DiagnosisFilter, page entity.Pagination, now time.Time) ([]entity.Diagnosis, int64, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Diagnosis, error)
	FindPendingReminders(db *gorm.DB, from, to time.Time) ([]entity.Diagnosis, error)
	MarkReminderSent(db *gorm.DB, id uuid.UUID) (int64, error)
	Update(db *gorm.DB, diag *entity.Diagnosis) error
	Deactivate(db *gorm.DB, id uuid.UUID) (int64, error)
	Stats(db *gorm.DB, now time.Time) (*DiagnosisStats, error)
}
