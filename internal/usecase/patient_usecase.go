package usecase

import (
	"context"
	"errors"
	"time"

	"optical-clinic-api/internal/converter"
	"optical-clinic-api/internal/delivery/dto"
	"optical-clinic-api/internal/delivery/http/middleware"
	"optical-clinic-api/internal/domain/entity"
	"optical-clinic-api/internal/domain/repository"
	"optical-clinic-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPatientNotFound        = errors.New("patient not found")
	ErrPatientInactive        = errors.New("patient is inactive")
	ErrPatientAlreadyActive   = errors.New("patient is already active")
	ErrPatientEmailTaken      = errors.New("a patient with this email already exists")
	ErrPatientCodeConflict    = errors.New("patient code already assigned")
	ErrInvalidDateFormat      = errors.New("invalid date format, use YYYY-MM-DD")
	ErrBranchNotFound         = errors.New("branch not found")
	errUserMissingFromContext = errors.New("user not found in context")
)

type PatientUsecase interface {
	Create(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error)
	GetByCode(ctx context.Context, code string) (*dto.PatientResponse, error)
	List(ctx context.Context, filter entity.PatientFilter, page entity.Pagination) ([]dto.PatientResponse, int64, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error)
}

type patientUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	patientRepo  repository.PatientRepository
	branchRepo   repository.BranchRepository
	codeService  *service.PatientCodeService
	auditService service.AuditService
}

func NewPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	branchRepo repository.BranchRepository,
	codeService *service.PatientCodeService,
	auditService service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		db:           db,
		log:          log,
		patientRepo:  patientRepo,
		branchRepo:   branchRepo,
		codeService:  codeService,
		auditService: auditService,
	}
}

func (u *patientUsecase) Create(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errUserMissingFromContext
	}

	var dob *time.Time
	if req.DateOfBirth != "" {
		parsed, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		dob = &parsed
	}

	var branchID *uuid.UUID
	if req.BranchID != "" {
		parsed, err := uuid.Parse(req.BranchID)
		if err != nil {
			return nil, ErrBranchNotFound
		}
		branch, err := u.branchRepo.FindByID(u.db.WithContext(ctx), parsed)
		if err != nil {
			u.log.Warnf("Failed to find branch %s: %+v", parsed, err)
			return nil, err
		}
		if branch == nil {
			return nil, ErrBranchNotFound
		}
		branchID = &parsed
	}

	if req.Email != "" {
		taken, err := u.patientRepo.EmailTaken(u.db.WithContext(ctx), req.Email, nil)
		if err != nil {
			u.log.Warnf("Failed to check patient email: %+v", err)
			return nil, err
		}
		if taken {
			return nil, ErrPatientEmailTaken
		}
	}

	code, err := u.codeService.NextCode(ctx)
	if err != nil {
		u.log.Warnf("Failed to allocate patient code: %+v", err)
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient := &entity.Patient{
		FullName:     req.FullName,
		Address:      req.Address,
		DateOfBirth:  dob,
		Gender:       req.Gender,
		Phone:        req.Phone,
		Email:        req.Email,
		PatientCode:  code,
		RegisteredBy: &userID,
		BranchID:     branchID,
		IsActive:     true,
	}

	if err := u.patientRepo.Create(tx, patient); err != nil {
		if isDuplicateKeyError(err, "patient_code") {
			return nil, ErrPatientCodeConflict
		}
		if isDuplicateKeyError(err, "email") {
			return nil, ErrPatientEmailTaken
		}
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(tx, &userID, entity.AuditActionPatientCreate, "patient", patient.ID.String(), patient); err != nil {
		u.log.Warnf("Failed to write audit entry: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Patient created: id=%s, code=%s", patient.ID, patient.PatientCode)
	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", id, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) GetByCode(ctx context.Context, code string) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByCode(u.db.WithContext(ctx), code)
	if err != nil {
		u.log.Warnf("Failed to find patient by code %s: %+v", code, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) List(ctx context.Context, filter entity.PatientFilter, page entity.Pagination) ([]dto.PatientResponse, int64, error) {
	patients, total, err := u.patientRepo.Search(u.db.WithContext(ctx), filter, page)
	if err != nil {
		u.log.Warnf("Failed to search patients: %+v", err)
		return nil, 0, err
	}
	return converter.PatientsToResponses(patients), total, nil
}

func (u *patientUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errUserMissingFromContext
	}

	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", id, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	old := *patient

	if req.FullName != nil {
		patient.FullName = *req.FullName
	}
	if req.Address != nil {
		patient.Address = *req.Address
	}
	if req.DateOfBirth != nil {
		if *req.DateOfBirth == "" {
			patient.DateOfBirth = nil
		} else {
			parsed, err := time.Parse("2006-01-02", *req.DateOfBirth)
			if err != nil {
				return nil, ErrInvalidDateFormat
			}
			patient.DateOfBirth = &parsed
		}
	}
	if req.Gender != nil {
		patient.Gender = *req.Gender
	}
	if req.Phone != nil {
		patient.Phone = *req.Phone
	}
	if req.Email != nil && *req.Email != patient.Email {
		if *req.Email != "" {
			taken, err := u.patientRepo.EmailTaken(u.db.WithContext(ctx), *req.Email, &id)
			if err != nil {
				u.log.Warnf("Failed to check patient email: %+v", err)
				return nil, err
			}
			if taken {
				return nil, ErrPatientEmailTaken
			}
		}
		patient.Email = *req.Email
	}
	if req.BranchID != nil {
		if *req.BranchID == "" {
			patient.BranchID = nil
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
			patient.BranchID = &parsed
		}
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.patientRepo.Update(tx, patient); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrPatientEmailTaken
		}
		u.log.Warnf("Failed to update patient %s: %+v", id, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(tx, &userID, entity.AuditActionPatientUpdate, "patient", id.String(), old, patient); err != nil {
		u.log.Warnf("Failed to write audit entry: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) Deactivate(ctx context.Context, id uuid.UUID) error {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return errUserMissingFromContext
	}

	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", id, err)
		return err
	}
	if patient == nil {
		return ErrPatientNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.patientRepo.SetActive(tx, id, false)
	if err != nil {
		u.log.Warnf("Failed to deactivate patient %s: %+v", id, err)
		return err
	}
	if affected == 0 {
		return ErrPatientNotFound
	}

	if err := u.auditService.LogDelete(tx, &userID, entity.AuditActionPatientDeactivate, "patient", id.String(), patient); err != nil {
		u.log.Warnf("Failed to write audit entry: %+v", err)
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.log.Infof("Patient deactivated: id=%s, code=%s", id, patient.PatientCode)
	return nil
}

func (u *patientUsecase) Reactivate(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errUserMissingFromContext
	}

	patient, err := u.patientRepo.FindInactiveByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", id, err)
		return nil, err
	}
	if patient == nil {
		active, err := u.patientRepo.FindByID(u.db.WithContext(ctx), id)
		if err != nil {
			return nil, err
		}
		if active != nil {
			return nil, ErrPatientAlreadyActive
		}
		return nil, ErrPatientNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if _, err := u.patientRepo.SetActive(tx, id, true); err != nil {
		u.log.Warnf("Failed to reactivate patient %s: %+v", id, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(tx, &userID, entity.AuditActionPatientUpdate, "patient", id.String(), patient, nil); err != nil {
		u.log.Warnf("Failed to write audit entry: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	patient.IsActive = true
	return converter.PatientToResponse(patient), nil
}
