package repository

import (
	"optical-clinic-api/internal/domain/entity"

	"gorm.io/gorm"
)

type RoleRepository interface {
	Create(db *gorm.DB, role *entity.Role) error
	FindByID(db *gorm.DB, id int) (*entity.Role, error)
	FindAll(db *gorm.DB, search string) ([]entity.Role, error)
	Update(db *gorm.DB, role *entity.Role) error
	Deactivate(db *gorm.DB, id int) (int64, error)
	ReplacePermissions(db *gorm.DB, role *entity.Role, permissions []entity.Permission) error
}

type PermissionRepository interface {
	Create(db *gorm.DB, perm *entity.Permission) error
	FindByID(db *gorm.DB, id int) (*entity.Permission, error)
	FindByIDs(db *gorm.DB, ids []int) ([]entity.Permission, error)
	FindAll(db *gorm.DB, search string) ([]entity.Permission, error)
	Update(db *gorm.DB, perm *entity.Permission) error
	Deactivate(db *gorm.DB, id int) (int64, error)
}
