package repository

import (
	"optical-clinic-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BranchRepository interface {
	Create(db *gorm.DB, branch *entity.Branch) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Branch, error)
	FindAll(db *gorm.DB, search string) ([]entity.Branch, error)
	Update(db *gorm.DB, branch *entity.Branch) error
	SetActive(db *gorm.DB, id uuid.UUID, active bool) (int64, error)
}
