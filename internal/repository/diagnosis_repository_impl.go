package repository

import (
	"errors"
	"time"

	"optical-clinic-api/internal/domain/entity"
	domainRepo "optical-clinic-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// upcomingControlDays is the horizon of the "upcoming controls" listing
// filter and statistic.
const upcomingControlDays = 30

type diagnosisRepository struct{}

func NewDiagnosisRepository() domainRepo.DiagnosisRepository {
	return &diagnosisRepository{}
}

func (r *diagnosisRepository) Create(db *gorm.DB, diag *entity.Diagnosis) error {
	return db.Create(diag).Error
}

func (r *diagnosisRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Diagnosis, error) {
	var diag entity.Diagnosis
	err := db.Preload("Patient").Preload("CreatedBy").Preload("Branch").
		Where("id = ? AND is_active = ?", id, true).
		First(&diag).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &diag, nil
}

// controlWindow is the [today, today+horizon] range the upcoming-controls
// filter and statistics select on, truncated in now's location.
func controlWindow(now time.Time) (time.Time, time.Time) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return today, today.AddDate(0, 0, upcomingControlDays)
}

func (r *diagnosisRepository) Search(db *gorm.DB, filter entity.DiagnosisFilter, page entity.Pagination, now time.Time) ([]entity.Diagnosis, int64, error) {
	query := db.Model(&entity.Diagnosis{}).Where("diagnoses.is_active = ?", true)

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.
			Joins("JOIN patients ON patients.id = diagnoses.patient_id").
			Where(`patients.full_name ILIKE ? OR patients.patient_code ILIKE ?
				OR diagnoses.clinical_data->>'final_rx' ILIKE ?
				OR diagnoses.clinical_data->>'diagnosis_treatment' ILIKE ?
				OR diagnoses.clinical_data->>'findings' ILIKE ?
				OR diagnoses.comment ILIKE ?`,
				like, like, like, like, like, like)
	}
	if filter.BranchID != nil {
		query = query.Where("diagnoses.branch_id = ?", *filter.BranchID)
	}
	if filter.PatientID != nil {
		query = query.Where("diagnoses.patient_id = ?", *filter.PatientID)
	}
	if filter.LensType != "" {
		query = query.Where("diagnoses.lens_type = ?", filter.LensType)
	}
	if filter.OphthalmicReferral != nil {
		query = query.Where("diagnoses.ophthalmic_referral = ?", *filter.OphthalmicReferral)
	}
	if filter.DateFrom != nil {
		query = query.Where("diagnoses.consulted_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("diagnoses.consulted_at <= ?", *filter.DateTo)
	}
	if filter.UpcomingControls {
		today, horizon := controlWindow(now)
		query = query.Where("diagnoses.next_control_date BETWEEN ? AND ?", today, horizon)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := applyPagination(&page)
	var diagnoses []entity.Diagnosis
	err := query.Preload("Patient").Preload("CreatedBy").Preload("Branch").
		Order("diagnoses.consulted_at DESC").
		Offset(offset).Limit(page.PageSize).
		Find(&diagnoses).Error
	if err != nil {
		return nil, 0, err
	}
	return diagnoses, total, nil
}

func (r *diagnosisRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Diagnosis, error) {
	var diagnoses []entity.Diagnosis
	err := db.Preload("CreatedBy").Preload("Branch").
		Where("patient_id = ? AND is_active = ?", patientID, true).
		Order("consulted_at DESC").
		Find(&diagnoses).Error
	if err != nil {
		return nil, err
	}
	return diagnoses, nil
}

// FindPendingReminders selects active diagnoses whose next control falls
// inside [from, to] and whose reminder has not gone out. Read-only.
func (r *diagnosisRepository) FindPendingReminders(db *gorm.DB, from, to time.Time) ([]entity.Diagnosis, error) {
	var diagnoses []entity.Diagnosis
	err := db.Preload("Patient").
		Where("next_control_date BETWEEN ? AND ?", from, to).
		Where("reminder_sent = ? AND is_active = ?", false, true).
		Order("next_control_date ASC").
		Find(&diagnoses).Error
	if err != nil {
		return nil, err
	}
	return diagnoses, nil
}

func (r *diagnosisRepository) MarkReminderSent(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Model(&entity.Diagnosis{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("reminder_sent", true)
	return result.RowsAffected, result.Error
}

func (r *diagnosisRepository) Update(db *gorm.DB, diag *entity.Diagnosis) error {
	return db.Save(diag).Error
}

func (r *diagnosisRepository) Deactivate(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Model(&entity.Diagnosis{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}

func (r *diagnosisRepository) Stats(db *gorm.DB, now time.Time) (*domainRepo.DiagnosisStats, error) {
	stats := &domainRepo.DiagnosisStats{}
	active := func() *gorm.DB {
		return db.Model(&entity.Diagnosis{}).Where("is_active = ?", true)
	}

	if err := active().Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	if err := active().
		Where("created_at >= ? AND created_at < ?", monthStart, monthStart.AddDate(0, 1, 0)).
		Count(&stats.ThisMonth).Error; err != nil {
		return nil, err
	}

	today, horizon := controlWindow(now)
	if err := active().
		Where("next_control_date BETWEEN ? AND ?", today, horizon).
		Count(&stats.UpcomingControls).Error; err != nil {
		return nil, err
	}

	if err := active().
		Where("next_control_date BETWEEN ? AND ?", today, today.AddDate(0, 0, 7)).
		Where("reminder_sent = ?", false).
		Count(&stats.PendingReminders).Error; err != nil {
		return nil, err
	}

	if err := active().
		Select("lens_type, COUNT(*) AS count").
		Where("lens_type != ''").
		Group("lens_type").
		Order("count DESC").
		Limit(5).
		Scan(&stats.TopLensTypes).Error; err != nil {
		return nil, err
	}

	if err := active().
		Where("ophthalmic_referral = ?", true).
		Count(&stats.OphthalmicReferrals).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
