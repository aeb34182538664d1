package repository

import (
	"optical-clinic-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PatientRepository interface {
	Create(db *gorm.DB, patient *entity.Patient) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Patient, error)
	FindInactiveByID(db *gorm.DB, id uuid.UUID) (*entity.Patient, error)
	FindByCode(db *gorm.DB, code string) (*entity.Patient, error)
	EmailTaken(db *gorm.DB, email string, excludeID *uuid.UUID) (bool, error)
	Search(db *gorm.DB, filter entity.PatientFilter, page entity.Pagination) ([]entity.Patient, int64, error)
	Update(db *gorm.DB, patient *entity.Patient) error
	SetActive(db *gorm.DB, id uuid.UUID, active bool) (int64, error)
}
