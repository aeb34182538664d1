package repository

import (
	"errors"

	"optical-clinic-api/internal/domain/entity"
	domainRepo "optical-clinic-api/internal/domain/repository"

	"gorm.io/gorm"
)

type roleRepository struct{}

func NewRoleRepository() domainRepo.RoleRepository {
	return &roleRepository{}
}

func (r *roleRepository) Create(db *gorm.DB, role *entity.Role) error {
	return db.Create(role).Error
}

func (r *roleRepository) FindByID(db *gorm.DB, id int) (*entity.Role, error) {
	var role entity.Role
	err := db.Preload("Permissions").Where("id = ?", id).First(&role).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &role, nil
}

func (r *roleRepository) FindAll(db *gorm.DB, search string) ([]entity.Role, error) {
	query := db.Preload("Permissions")
	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	var roles []entity.Role
	err := query.Order("name ASC").Find(&roles).Error
	if err != nil {
		return nil, err
	}
	return roles, nil
}

func (r *roleRepository) Update(db *gorm.DB, role *entity.Role) error {
	return db.Save(role).Error
}

func (r *roleRepository) Deactivate(db *gorm.DB, id int) (int64, error) {
	result := db.Model(&entity.Role{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}

func (r *roleRepository) ReplacePermissions(db *gorm.DB, role *entity.Role, permissions []entity.Permission) error {
	return db.Model(role).Association("Permissions").Replace(permissions)
}

type permissionRepository struct{}

func NewPermissionRepository() domainRepo.PermissionRepository {
	return &permissionRepository{}
}

func (r *permissionRepository) Create(db *gorm.DB, perm *entity.Permission) error {
	return db.Create(perm).Error
}

func (r *permissionRepository) FindByID(db *gorm.DB, id int) (*entity.Permission, error) {
	var perm entity.Permission
	err := db.Where("id = ?", id).First(&perm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &perm, nil
}

func (r *permissionRepository) FindByIDs(db *gorm.DB, ids []int) ([]entity.Permission, error) {
	var perms []entity.Permission
	err := db.Where("id IN ? AND is_active = ?", ids, true).Find(&perms).Error
	if err != nil {
		return nil, err
	}
	return perms, nil
}

func (r *permissionRepository) FindAll(db *gorm.DB, search string) ([]entity.Permission, error) {
	query := db.Session(&gorm.Session{})
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("name ILIKE ? OR code ILIKE ?", like, like)
	}

	var perms []entity.Permission
	err := query.Order("name ASC").Find(&perms).Error
	if err != nil {
		return nil, err
	}
	return perms, nil
}

func (r *permissionRepository) Update(db *gorm.DB, perm *entity.Permission) error {
	return db.Save(perm).Error
}

func (r *permissionRepository) Deactivate(db *gorm.DB, id int) (int64, error) {
	result := db.Model(&entity.Permission{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}
