package repository

import (
	"errors"

	"optical-clinic-api/internal/domain/entity"
	domainRepo "optical-clinic-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxPageSize = 100

// applyPagination clamps the page window and returns the offset.
func applyPagination(page *entity.Pagination) int {
	if page.Page < 1 {
		page.Page = 1
	}
	if page.PageSize < 1 {
		page.PageSize = 10
	}
	if page.PageSize > maxPageSize {
		page.PageSize = maxPageSize
	}
	return (page.Page - 1) * page.PageSize
}

type patientRepository struct{}

func NewPatientRepository() domainRepo.PatientRepository {
	return &patientRepository{}
}

func (r *patientRepository) Create(db *gorm.DB, patient *entity.Patient) error {
	return db.Create(patient).Error
}

func (r *patientRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.Preload("Registrar").Preload("Branch").
		Where("id = ? AND is_active = ?", id, true).
		First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) FindInactiveByID(db *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.Where("id = ? AND is_active = ?", id, false).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) FindByCode(db *gorm.DB, code string) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.Preload("Registrar").Preload("Branch").
		Where("patient_code = ? AND is_active = ?", code, true).
		First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) EmailTaken(db *gorm.DB, email string, excludeID *uuid.UUID) (bool, error) {
	if email == "" {
		return false, nil
	}
	query := db.Model(&entity.Patient{}).Where("email = ?", email)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *patientRepository) Search(db *gorm.DB, filter entity.PatientFilter, page entity.Pagination) ([]entity.Patient, int64, error) {
	query := db.Model(&entity.Patient{}).Where("is_active = ?", true)

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where(
			"full_name ILIKE ? OR patient_code ILIKE ? OR email ILIKE ? OR phone ILIKE ?",
			like, like, like, like,
		)
	}
	if filter.BranchID != nil {
		query = query.Where("branch_id = ?", *filter.BranchID)
	}
	if filter.Gender != "" {
		query = query.Where("gender = ?", filter.Gender)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := applyPagination(&page)
	var patients []entity.Patient
	err := query.Preload("Registrar").Preload("Branch").
		Order("created_at DESC").
		Offset(offset).Limit(page.PageSize).
		Find(&patients).Error
	if err != nil {
		return nil, 0, err
	}
	return patients, total, nil
}

func (r *patientRepository) Update(db *gorm.DB, patient *entity.Patient) error {
	return db.Save(patient).Error
}

// SetActive flips the soft-delete flag only when it actually changes.
// Returns affected rows so callers can distinguish "not found".
func (r *patientRepository) SetActive(db *gorm.DB, id uuid.UUID, active bool) (int64, error) {
	result := db.Model(&entity.Patient{}).
		Where("id = ? AND is_active = ?", id, !active).
		Update("is_active", active)
	return result.RowsAffected, result.Error
}
