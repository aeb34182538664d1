package repository

import (
	"optical-clinic-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(db *gorm.DB, user *entity.User) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error)
	FindActiveByID(db *gorm.DB, id uuid.UUID) (*entity.User, error)
	FindByUsernameOrEmail(db *gorm.DB, login string) (*entity.User, error)
	Search(db *gorm.DB, search string, page entity.Pagination) ([]entity.User, int64, error)
	Update(db *gorm.DB, user *entity.User) error
	SetActive(db *gorm.DB, id uuid.UUID, active bool) (int64, error)
}
