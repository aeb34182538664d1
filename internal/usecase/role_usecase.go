package usecase

import (
	"context"
	"errors"

	"optical-clinic-api/internal/converter"
	"optical-clinic-api/internal/delivery/dto"
	"optical-clinic-api/internal/domain/entity"
	"optical-clinic-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrRoleNameTaken       = errors.New("role name already exists")
	ErrPermissionNotFound  = errors.New("one or more permissions were not found")
	ErrPermissionNameTaken = errors.New("permission name already exists")
)

type RoleUsecase interface {
	Create(ctx context.Context, req *dto.CreateRoleRequest) (*dto.RoleResponse, error)
	GetByID(ctx context.Context, id int) (*dto.RoleResponse, error)
	List(ctx context.Context, search string) ([]dto.RoleResponse, error)
	Update(ctx context.Context, id int, req *dto.UpdateRoleRequest) (*dto.RoleResponse, error)
	Deactivate(ctx context.Context, id int) error
	AssignPermissions(ctx context.Context, id int, req *dto.AssignPermissionsRequest) (*dto.RoleResponse, error)
	CreatePermission(ctx context.Context, req *dto.CreatePermissionRequest) (*dto.PermissionResponse, error)
	ListPermissions(ctx context.Context, search string) ([]dto.PermissionResponse, error)
}

type roleUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	roleRepo       repository.RoleRepository
	permissionRepo repository.PermissionRepository
}

func NewRoleUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	roleRepo repository.RoleRepository,
	permissionRepo repository.PermissionRepository,
) RoleUsecase {
	return &roleUsecase{
		db:             db,
		log:            log,
		roleRepo:       roleRepo,
		permissionRepo: permissionRepo,
	}
}

func (u *roleUsecase) Create(ctx context.Context, req *dto.CreateRoleRequest) (*dto.RoleResponse, error) {
	var permissions []entity.Permission
	if len(req.PermissionIDs) > 0 {
		found, err := u.permissionRepo.FindByIDs(u.db.WithContext(ctx), req.PermissionIDs)
		if err != nil {
			u.log.Warnf("Failed to find permissions: %+v", err)
			return nil, err
		}
		if len(found) != len(req.PermissionIDs) {
			return nil, ErrPermissionNotFound
		}
		permissions = found
	}

	role := &entity.Role{
		Name:        req.Name,
		Description: req.Description,
		Permissions: permissions,
		IsActive:    true,
	}

	if err := u.roleRepo.Create(u.db.WithContext(ctx), role); err != nil {
		if isDuplicateKeyError(err, "name") {
			return nil, ErrRoleNameTaken
		}
		u.log.Warnf("Failed to create role: %+v", err)
		return nil, err
	}

	u.log.Infof("Role created: id=%d, name=%s", role.ID, role.Name)
	return converter.RoleToResponse(role), nil
}

func (u *roleUsecase) GetByID(ctx context.Context, id int) (*dto.RoleResponse, error) {
	role, err := u.roleRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find role %d: %+v", id, err)
		return nil, err
	}
	if role == nil {
		return nil, ErrRoleNotFound
	}
	return converter.RoleToResponse(role), nil
}

func (u *roleUsecase) List(ctx context.Context, search string) ([]dto.RoleResponse, error) {
	roles, err := u.roleRepo.FindAll(u.db.WithContext(ctx), search)
	if err != nil {
		u.log.Warnf("Failed to list roles: %+v", err)
		return nil, err
	}
	return converter.RolesToResponses(roles), nil
}

func (u *roleUsecase) Update(ctx context.Context, id int, req *dto.UpdateRoleRequest) (*dto.RoleResponse, error) {
	role, err := u.roleRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find role %d: %+v", id, err)
		return nil, err
	}
	if role == nil {
		return nil, ErrRoleNotFound
	}

	if req.Name != nil {
		role.Name = *req.Name
	}
	if req.Description != nil {
		role.Description = *req.Description
	}

	if err := u.roleRepo.Update(u.db.WithContext(ctx), role); err != nil {
		if isDuplicateKeyError(err, "name") {
			return nil, ErrRoleNameTaken
		}
		u.log.Warnf("Failed to update role %d: %+v", id, err)
		return nil, err
	}

	return converter.RoleToResponse(role), nil
}

func (u *roleUsecase) Deactivate(ctx context.Context, id int) error {
	affected, err := u.roleRepo.Deactivate(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to deactivate role %d: %+v", id, err)
		return err
	}
	if affected == 0 {
		return ErrRoleNotFound
	}
	return nil
}

func (u *roleUsecase) AssignPermissions(ctx context.Context, id int, req *dto.AssignPermissionsRequest) (*dto.RoleResponse, error) {
	role, err := u.roleRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find role %d: %+v", id, err)
		return nil, err
	}
	if role == nil {
		return nil, ErrRoleNotFound
	}

	permissions, err := u.permissionRepo.FindByIDs(u.db.WithContext(ctx), req.PermissionIDs)
	if err != nil {
		u.log.Warnf("Failed to find permissions: %+v", err)
		return nil, err
	}
	if len(permissions) != len(req.PermissionIDs) {
		return nil, ErrPermissionNotFound
	}

	if err := u.roleRepo.ReplacePermissions(u.db.WithContext(ctx), role, permissions); err != nil {
		u.log.Warnf("Failed to assign permissions to role %d: %+v", id, err)
		return nil, err
	}

	role.Permissions = permissions
	return converter.RoleToResponse(role), nil
}

func (u *roleUsecase) CreatePermission(ctx context.Context, req *dto.CreatePermissionRequest) (*dto.PermissionResponse, error) {
	permission := &entity.Permission{
		Name:     req.Name,
		Code:     entity.SlugifyCode(req.Name),
		IsActive: true,
	}

	if err := u.permissionRepo.Create(u.db.WithContext(ctx), permission); err != nil {
		if isDuplicateKeyError(err, "name") || isDuplicateKeyError(err, "code") {
			return nil, ErrPermissionNameTaken
		}
		u.log.Warnf("Failed to create permission: %+v", err)
		return nil, err
	}

	return converter.PermissionToResponse(permission), nil
}

func (u *roleUsecase) ListPermissions(ctx context.Context, search string) ([]dto.PermissionResponse, error) {
	permissions, err := u.permissionRepo.FindAll(u.db.WithContext(ctx), search)
	if err != nil {
		u.log.Warnf("Failed to list permissions: %+v", err)
		return nil, err
	}
	return converter.PermissionsToResponses(permissions), nil
}
