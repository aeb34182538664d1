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
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrDoctorNotFound      = errors.New("doctor not found")
	ErrInvalidStatus       = errors.New("unknown appointment status")
)

type AppointmentUsecase interface {
	Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	List(ctx context.Context, filter entity.AppointmentFilter, page entity.Pagination) ([]dto.AppointmentResponse, int64, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID, filter entity.AppointmentFilter) ([]dto.AppointmentResponse, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]dto.AppointmentResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	ChangeStatus(ctx context.Context, id uuid.UUID, req *dto.ChangeStatusRequest) (*dto.AppointmentResponse, error)
	ReassignDoctor(ctx context.Context, id uuid.UUID, req *dto.ReassignDoctorRequest) (*dto.AppointmentResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	patientRepo     repository.PatientRepository
	userRepo        repository.UserRepository
	branchRepo      repository.BranchRepository
	lifecycle       *service.AppointmentLifecycle
	auditService    service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	userRepo repository.UserRepository,
	branchRepo repository.BranchRepository,
	lifecycle *service.AppointmentLifecycle,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		userRepo:        userRepo,
		branchRepo:      branchRepo,
		lifecycle:       lifecycle,
		auditService:    auditService,
	}
}

func (u *appointmentUsecase) Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errUserMissingFromContext
	}

	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		return nil, ErrPatientNotFound
	}
	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return nil, err
	}
	if patient == nil {
		// An inactive patient cannot be booked either; report it as such
		inactive, err := u.patientRepo.FindInactiveByID(u.db.WithContext(ctx), patientID)
		if err != nil {
			return nil, err
		}
		if inactive != nil {
			return nil, service.ErrInactivePatient
		}
		return nil, ErrPatientNotFound
	}

	var doctor *entity.User
	if req.DoctorID != "" {
		doctorID, err := uuid.Parse(req.DoctorID)
		if err != nil {
			return nil, ErrDoctorNotFound
		}
		doctor, err = u.userRepo.FindByID(u.db.WithContext(ctx), doctorID)
		if err != nil {
			u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
			return nil, err
		}
		if doctor == nil {
			return nil, ErrDoctorNotFound
		}
	}

	branchID, err := uuid.Parse(req.BranchID)
	if err != nil {
		return nil, ErrBranchNotFound
	}
	branch, err := u.branchRepo.FindByID(u.db.WithContext(ctx), branchID)
	if err != nil {
		u.log.Warnf("Failed to find branch %s: %+v", branchID, err)
		return nil, err
	}
	if branch == nil {
		return nil, ErrBranchNotFound
	}

	if err := u.lifecycle.ValidateCreation(req.ScheduledAt, patient, doctor, time.Now()); err != nil {
		return nil, err
	}

	appointment := &entity.Appointment{
		PatientID:   patientID,
		ScheduledAt: req.ScheduledAt,
		Status:      entity.AppointmentStatusCreated,
		Comments:    req.Comments,
		CreatedByID: &userID,
		BranchID:    branchID,
		IsActive:    true,
	}
	if doctor != nil {
		doctorID := doctor.ID
		appointment.DoctorID = &doctorID
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(tx, &userID, entity.AuditActionAppointmentCreate, "appointment", appointment.ID.String(), appointment); err != nil {
		u.log.Warnf("Failed to write audit entry: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	full, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointment.ID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload appointment %s: %+v", appointment.ID, err)
		return converter.AppointmentToResponse(appointment), nil
	}

	u.log.Infof("Appointment created: id=%s, patient=%s, at=%s", appointment.ID, patientID, req.ScheduledAt)
	return converter.AppointmentToResponse(full), nil
}

func (u *appointmentUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) List(ctx context.Context, filter entity.AppointmentFilter, page entity.Pagination) ([]dto.AppointmentResponse, int64, error) {
	appointments, total, err := u.appointmentRepo.Search(u.db.WithContext(ctx), filter, page)
	if err != nil {
		u.log.Warnf("Failed to search appointments: %+v", err)
		return nil, 0, err
	}
	return converter.AppointmentsToResponses(appointments), total, nil
}

func (u *appointmentUsecase) ListByDoctor(ctx context.Context, doctorID uuid.UUID, filter entity.AppointmentFilter) ([]dto.AppointmentResponse, error) {
	appointments, err := u.appointmentRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID, filter)
	if err != nil {
		u.log.Warnf("Failed to find appointments for doctor %s: %+v", doctorID, err)
		return nil, err
	}
	return converter.AppointmentsToResponses(appointments), nil
}

func (u *appointmentUsecase) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]dto.AppointmentResponse, error) {
	appointments, err := u.appointmentRepo.FindByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find appointments for patient %s: %+v", patientID, err)
		return nil, err
	}
	return converter.AppointmentsToResponses(appointments), nil
}

func (u *appointmentUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errUserMissingFromContext
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	oldComments := appointment.Comments
	if req.Comments != nil {
		appointment.Comments = *req.Comments
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.appointmentRepo.Update(tx, appointment); err != nil {
		u.log.Warnf("Failed to update appointment %s: %+v", id, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(tx, &userID, entity.AuditActionAppointmentUpdate, "appointment", id.String(), oldComments, appointment.Comments); err != nil {
		u.log.Warnf("Failed to write audit entry: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) ChangeStatus(ctx context.Context, id uuid.UUID, req *dto.ChangeStatusRequest) (*dto.AppointmentResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errUserMissingFromContext
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	target := entity.AppointmentStatus(req.NewStatus)
	if !entity.IsValidAppointmentStatus(target) {
		return nil, ErrInvalidStatus
	}
	action, ok := service.ActionForStatus(target)
	if !ok {
		return nil, service.ErrInvalidTransition
	}

	payload := service.TransitionPayload{
		Comments:    req.Comments,
		ScheduledAt: req.ScheduledAt,
	}
	if req.DoctorID != nil {
		doctorID, err := uuid.Parse(*req.DoctorID)
		if err != nil {
			return nil, ErrDoctorNotFound
		}
		doctor, err := u.userRepo.FindByID(u.db.WithContext(ctx), doctorID)
		if err != nil {
			return nil, err
		}
		if doctor == nil {
			return nil, ErrDoctorNotFound
		}
		payload.Doctor = doctor
	}

	oldStatus := appointment.Status
	if err := u.lifecycle.RequestTransition(appointment, action, payload, time.Now()); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.appointmentRepo.Update(tx, appointment); err != nil {
		u.log.Warnf("Failed to update appointment %s: %+v", id, err)
		return nil, err
	}

	change := map[string]interface{}{"from": oldStatus, "to": appointment.Status}
	if err := u.auditService.LogUpdate(tx, &userID, entity.AuditActionAppointmentStatus, "appointment", id.String(), oldStatus, change); err != nil {
		u.log.Warnf("Failed to write audit entry: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Appointment status changed: id=%s, %s -> %s", id, oldStatus, appointment.Status)
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) ReassignDoctor(ctx context.Context, id uuid.UUID, req *dto.ReassignDoctorRequest) (*dto.AppointmentResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errUserMissingFromContext
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	doctorID, err := uuid.Parse(req.DoctorID)
	if err != nil {
		return nil, ErrDoctorNotFound
	}
	doctor, err := u.userRepo.FindByID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	oldDoctorID := appointment.DoctorID
	if err := u.lifecycle.ReassignDoctor(appointment, doctor); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.appointmentRepo.Update(tx, appointment); err != nil {
		u.log.Warnf("Failed to update appointment %s: %+v", id, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(tx, &userID, entity.AuditActionAppointmentDoctor, "appointment", id.String(), oldDoctorID, doctorID); err != nil {
		u.log.Warnf("Failed to write audit entry: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	appointment.Doctor = doctor
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return errUserMissingFromContext
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.appointmentRepo.Deactivate(tx, id)
	if err != nil {
		u.log.Warnf("Failed to deactivate appointment %s: %+v", id, err)
		return err
	}
	if affected == 0 {
		return ErrAppointmentNotFound
	}

	if err := u.auditService.LogDelete(tx, &userID, entity.AuditActionAppointmentDelete, "appointment", id.String(), appointment); err != nil {
		u.log.Warnf("Failed to write audit entry: %+v", err)
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}
