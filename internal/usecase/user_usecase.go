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
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameTaken  = errors.New("username already exists")
	ErrUserEmailTaken = errors.New("email already exists")
	ErrRoleNotFound   = errors.New("role not found")
)

type UserUsecase interface {
	Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error)
	List(ctx context.Context, search string, page entity.Pagination) ([]dto.UserResponse, int64, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error
}

type userUsecase struct {
	db         *gorm.DB
	log        *logrus.Logger
	userRepo   repository.UserRepository
	roleRepo   repository.RoleRepository
	branchRepo repository.BranchRepository
}

func NewUserUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	branchRepo repository.BranchRepository,
) UserUsecase {
	return &userUsecase{
		db:         db,
		log:        log,
		userRepo:   userRepo,
		roleRepo:   roleRepo,
		branchRepo: branchRepo,
	}
}

func (u *userUsecase) Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	if req.RoleID != nil {
		role, err := u.roleRepo.FindByID(u.db.WithContext(ctx), *req.RoleID)
		if err != nil {
			u.log.Warnf("Failed to find role %d: %+v", *req.RoleID, err)
			return nil, err
		}
		if role == nil {
			return nil, ErrRoleNotFound
		}
	}

	var branchID *uuid.UUID
	if req.BranchID != "" {
		parsed, err := uuid.Parse(req.BranchID)
		if err != nil {
			return nil, ErrBranchNotFound
		}
		branch, err := u.branchRepo.FindByID(u.db.WithContext(ctx), parsed)
		if err != nil {
			return nil, err
		}
		if branch == nil {
			return nil, ErrBranchNotFound
		}
		branchID = &parsed
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
		FullName: req.FullName,
		RoleID:   req.RoleID,
		BranchID: branchID,
		IsActive: true,
	}

	if err := u.userRepo.Create(u.db.WithContext(ctx), user); err != nil {
		if isDuplicateKeyError(err, "username") {
			return nil, ErrUsernameTaken
		}
		if isDuplicateKeyError(err, "email") {
			return nil, ErrUserEmailTaken
		}
		if isForeignKeyError(err, "role") {
			return nil, ErrRoleNotFound
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	u.log.Infof("User created: id=%s, username=%s", user.ID, user.Username)
	return converter.UserToResponse(user), nil
}

func (u *userUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", id, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return converter.UserToResponse(user), nil
}

func (u *userUsecase) List(ctx context.Context, search string, page entity.Pagination) ([]dto.UserResponse, int64, error) {
	users, total, err := u.userRepo.Search(u.db.WithContext(ctx), search, page)
	if err != nil {
		u.log.Warnf("Failed to search users: %+v", err)
		return nil, 0, err
	}
	return converter.UsersToResponses(users), total, nil
}

func (u *userUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", id, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.RoleID != nil {
		role, err := u.roleRepo.FindByID(u.db.WithContext(ctx), *req.RoleID)
		if err != nil {
			return nil, err
		}
		if role == nil {
			return nil, ErrRoleNotFound
		}
		user.RoleID = req.RoleID
	}
	if req.BranchID != nil {
		if *req.BranchID == "" {
			user.BranchID = nil
		} else {
			parsed, err := uuid.Parse(*req.BranchID)
			if err != nil {
				return nil, ErrBranchNotFound
			}
			branch, err := u.branchRepo.FindByID(u.db.WithContext(ctx), parsed)
			if err != nil {
				return nil, err
			}
			if branch == nil {
				return nil, ErrBranchNotFound
			}
			user.BranchID = &parsed
		}
	}

	if err := u.userRepo.Update(u.db.WithContext(ctx), user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrUserEmailTaken
		}
		u.log.Warnf("Failed to update user %s: %+v", id, err)
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

func (u *userUsecase) Deactivate(ctx context.Context, id uuid.UUID) error {
	affected, err := u.userRepo.SetActive(u.db.WithContext(ctx), id, false)
	if err != nil {
		u.log.Warnf("Failed to deactivate user %s: %+v", id, err)
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (u *userUsecase) Reactivate(ctx context.Context, id uuid.UUID) error {
	affected, err := u.userRepo.SetActive(u.db.WithContext(ctx), id, true)
	if err != nil {
		u.log.Warnf("Failed to reactivate user %s: %+v", id, err)
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}
