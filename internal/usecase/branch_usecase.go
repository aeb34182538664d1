package usecase

import (
	"context"
	"errors"

	"optical-clinic-api/internal/converter"
	"optical-clinic-api/internal/delivery/dto"
	"optical-clinic-api/internal/domain/entity"
	"optical-clinic-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrManagerNotFound = errors.New("manager not found")

type BranchUsecase interface {
	Create(ctx context.Context, req *dto.CreateBranchRequest) (*dto.BranchResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.BranchResponse, error)
	List(ctx context.Context, search string) ([]dto.BranchResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateBranchRequest) (*dto.BranchResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type branchUsecase struct {
	db         *gorm.DB
	log        *logrus.Logger
	branchRepo repository.BranchRepository
	userRepo   repository.UserRepository
}

func NewBranchUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	branchRepo repository.BranchRepository,
	userRepo repository.UserRepository,
) BranchUsecase {
	return &branchUsecase{
		db:         db,
		log:        log,
		branchRepo: branchRepo,
		userRepo:   userRepo,
	}
}

func (u *branchUsecase) resolveManager(ctx context.Context, managerID string) (*uuid.UUID, error) {
	if managerID == "" {
		return nil, nil
	}
	parsed, err := uuid.Parse(managerID)
	if err != nil {
		return nil, ErrManagerNotFound
	}
	manager, err := u.userRepo.FindActiveByID(u.db.WithContext(ctx), parsed)
	if err != nil {
		u.log.Warnf("Failed to find manager %s: %+v", parsed, err)
		return nil, err
	}
	if manager == nil {
		return nil, ErrManagerNotFound
	}
	return &parsed, nil
}

func (u *branchUsecase) Create(ctx context.Context, req *dto.CreateBranchRequest) (*dto.BranchResponse, error) {
	managerID, err := u.resolveManager(ctx, req.ManagerID)
	if err != nil {
		return nil, err
	}

	branch := &entity.Branch{
		Name:      req.Name,
		Address:   req.Address,
		Phone:     req.Phone,
		ManagerID: managerID,
		IsActive:  true,
	}

	if err := u.branchRepo.Create(u.db.WithContext(ctx), branch); err != nil {
		u.log.Warnf("Failed to create branch: %+v", err)
		return nil, err
	}

	u.log.Infof("Branch created: id=%s, name=%s", branch.ID, branch.Name)
	return converter.BranchToResponse(branch), nil
}

func (u *branchUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.BranchResponse, error) {
	branch, err := u.branchRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find branch %s: %+v", id, err)
		return nil, err
	}
	if branch == nil {
		return nil, ErrBranchNotFound
	}
	return converter.BranchToResponse(branch), nil
}

func (u *branchUsecase) List(ctx context.Context, search string) ([]dto.BranchResponse, error) {
	branches, err := u.branchRepo.FindAll(u.db.WithContext(ctx), search)
	if err != nil {
		u.log.Warnf("Failed to list branches: %+v", err)
		return nil, err
	}
	return converter.BranchesToResponses(branches), nil
}

func (u *branchUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateBranchRequest) (*dto.BranchResponse, error) {
	branch, err := u.branchRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find branch %s: %+v", id, err)
		return nil, err
	}
	if branch == nil {
		return nil, ErrBranchNotFound
	}

	if req.Name != nil {
		branch.Name = *req.Name
	}
	if req.Address != nil {
		branch.Address = *req.Address
	}
	if req.Phone != nil {
		branch.Phone = *req.Phone
	}
	if req.ManagerID != nil {
		managerID, err := u.resolveManager(ctx, *req.ManagerID)
		if err != nil {
			return nil, err
		}
		branch.ManagerID = managerID
	}

	if err := u.branchRepo.Update(u.db.WithContext(ctx), branch); err != nil {
		u.log.Warnf("Failed to update branch %s: %+v", id, err)
		return nil, err
	}

	return converter.BranchToResponse(branch), nil
}

func (u *branchUsecase) Deactivate(ctx context.Context, id uuid.UUID) error {
	affected, err := u.branchRepo.SetActive(u.db.WithContext(ctx), id, false)
	if err != nil {
		u.log.Warnf("Failed to deactivate branch %s: %+v", id, err)
		return err
	}
	if affected == 0 {
		return ErrBranchNotFound
	}
	return nil
}
