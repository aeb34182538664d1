package repository

import (
	"errors"

	"optical-clinic-api/internal/domain/entity"
	domainRepo "optical-clinic-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type branchRepository struct{}

func NewBranchRepository() domainRepo.BranchRepository {
	return &branchRepository{}
}

func (r *branchRepository) Create(db *gorm.DB, branch *entity.Branch) error {
	return db.Create(branch).Error
}

func (r *branchRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Branch, error) {
	var branch entity.Branch
	err := db.Preload("Manager").Where("id = ? AND is_active = ?", id, true).First(&branch).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &branch, nil
}

func (r *branchRepository) FindAll(db *gorm.DB, search string) ([]entity.Branch, error) {
	query := db.Where("is_active = ?", true)
	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	var branches []entity.Branch
	err := query.Preload("Manager").Order("name ASC").Find(&branches).Error
	if err != nil {
		return nil, err
	}
	return branches, nil
}

func (r *branchRepository) Update(db *gorm.DB, branch *entity.Branch) error {
	return db.Save(branch).Error
}

func (r *branchRepository) SetActive(db *gorm.DB, id uuid.UUID, active bool) (int64, error) {
	result := db.Model(&entity.Branch{}).
		Where("id = ? AND is_active = ?", id, !active).
		Update("is_active", active)
	return result.RowsAffected, result.Error
}
