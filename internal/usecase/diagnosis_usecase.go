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
	ErrDiagnosisNotFound      = errors.New("diagnosis not found")
	ErrReminderAlreadySent    = errors.New("reminder has already been sent")
	ErrReminderWithoutControl = errors.New("diagnosis has no next control date")
)

type DiagnosisUsecase interface {
	Create(ctx context.Context, req *dto.CreateDiagnosisRequest) (*dto.DiagnosisResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.DiagnosisResponse, error)
	List(ctx context.Context, filter entity.DiagnosisFilter, page entity.Pagination) ([]dto.DiagnosisResponse, int64, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]dto.DiagnosisResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateDiagnosisRequest) (*dto.DiagnosisResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	PendingReminders(ctx context.Context) ([]dto.ReminderResponse, error)
	MarkReminderSent(ctx context.Context, id uuid.UUID) error
	ValidateStructure(ctx context.Context, data map[string]string) *dto.StructureReportResponse
	ClinicalFields(ctx context.Context) []string
	Stats(ctx context.Context) (*dto.DiagnosisStatsResponse, error)
}

type diagnosisUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	diagnosisRepo repository.DiagnosisRepository
	patientRepo   repository.PatientRepository
	branchRepo    repository.BranchRepository
	records       *service.ClinicalRecordStore
	auditService  service.AuditService
}

func NewDiagnosisUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	diagnosisRepo repository.DiagnosisRepository,
	patientRepo repository.PatientRepository,
	branchRepo repository.BranchRepository,
	records *service.ClinicalRecordStore,
	auditService service.AuditService,
) DiagnosisUsecase {
	return &diagnosisUsecase{
		db:            db,
		log:           log,
		diagnosisRepo: diagnosisRepo,
		patientRepo:   patientRepo,
		branchRepo:    branchRepo,
		records:       records,
		auditService:  auditService,
	}
}

// individualFields flattens the optional top-level clinical fields of a
// create request into an overlay map. Only supplied fields are included.
func individualFields(fields map[string]*string) map[string]string {
	overlay := make(map[string]string)
	for name, value := range fields {
		if value != nil {
			overlay[name] = *value
		}
	}
	return overlay
}

func createRequestFields(req *dto.CreateDiagnosisRequest) map[string]*string {
	return map[string]*string{
		service.FieldRxInUse:              req.RxInUse,
		service.FieldMedicalHistory:       req.MedicalHistory,
		service.FieldSymptomsSigns:        req.SymptomsSigns,
		service.FieldPanoramicAnalysis:    req.PanoramicAnalysis,
		service.FieldRightEyeExam:         req.RightEyeExam,
		service.FieldLeftEyeExam:          req.LeftEyeExam,
		service.FieldPantoscopicAnalysis:  req.PantoscopicAnalysis,
		service.FieldVertexAnalysis:       req.VertexAnalysis,
		service.FieldPatientAnamnesis:     req.PatientAnamnesis,
		service.FieldFindings:             req.Findings,
		service.FieldDiagnosisTreatment:   req.DiagnosisTreatment,
		service.FieldRetinoscopy:          req.Retinoscopy,
		service.FieldVisualAcuity:         req.VisualAcuity,
		service.FieldSubjectiveRefinement: req.SubjectiveRefine,
		service.FieldFinalRx:              req.FinalRx,
	}
}

func updateRequestFields(req *dto.UpdateDiagnosisRequest) map[string]*string {
	return map[string]*string{
		service.FieldRxInUse:              req.RxInUse,
		service.FieldMedicalHistory:       req.MedicalHistory,
		service.FieldSymptomsSigns:        req.SymptomsSigns,
		service.FieldPanoramicAnalysis:    req.PanoramicAnalysis,
		service.FieldRightEyeExam:         req.RightEyeExam,
		service.FieldLeftEyeExam:          req.LeftEyeExam,
		service.FieldPantoscopicAnalysis:  req.PantoscopicAnalysis,
		service.FieldVertexAnalysis:       req.VertexAnalysis,
		service.FieldPatientAnamnesis:     req.PatientAnamnesis,
		service.FieldFindings:             req.Findings,
		service.FieldDiagnosisTreatment:   req.DiagnosisTreatment,
		service.FieldRetinoscopy:          req.Retinoscopy,
		service.FieldVisualAcuity:         req.VisualAcuity,
		service.FieldSubjectiveRefinement: req.SubjectiveRefine,
		service.FieldFinalRx:              req.FinalRx,
	}
}

func (u *diagnosisUsecase) Create(ctx context.Context, req *dto.CreateDiagnosisRequest) (*dto.DiagnosisResponse, error) {
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
		return nil, ErrPatientNotFound
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

	if err := u.records.ValidateNextControl(req.NextControlDate, time.Now()); err != nil {
		return nil, err
	}

	// Individual fields override the bulk clinical_data object
	clinicalData := u.records.Reconcile(req.ClinicalData, individualFields(createRequestFields(req)))

	if report := u.records.ValidateStructure(clinicalData); !report.Valid() {
		u.log.Warnf("Diagnosis for patient %s carries unregistered clinical fields: %v", patientID, report.UnknownFields)
	}

	consultedAt := time.Now()
	if req.ConsultedAt != nil {
		consultedAt = *req.ConsultedAt
	}

	lensFilter := entity.LensFilter(req.LensFilter)
	if lensFilter == "" {
		lensFilter = entity.LensFilterNone
	}

	diagnosis := &entity.Diagnosis{
		PatientID:          patientID,
		ClinicalData:       clinicalData,
		LensType:           entity.LensType(req.LensType),
		LensMaterial:       entity.LensMaterial(req.LensMaterial),
		LensFilter:         lensFilter,
		NextControlDate:    req.NextControlDate,
		OphthalmicReferral: req.OphthalmicReferral,
		AdditionalNotes:    req.AdditionalNotes,
		Comment:            req.Comment,
		ConsultedAt:        consultedAt,
		CreatedByID:        &userID,
		BranchID:           branchID,
		IsActive:           true,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.diagnosisRepo.Create(tx, diagnosis); err != nil {
		u.log.Warnf("Failed to create diagnosis: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(tx, &userID, entity.AuditActionDiagnosisCreate, "diagnosis", diagnosis.ID.String(), diagnosis); err != nil {
		u.log.Warnf("Failed to write audit entry: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	diagnosis.Patient = *patient
	u.log.Infof("Diagnosis created: id=%s, patient=%s", diagnosis.ID, patient.PatientCode)
	return converter.DiagnosisToResponse(diagnosis, time.Now()), nil
}

func (u *diagnosisUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.DiagnosisResponse, error) {
	diagnosis, err := u.diagnosisRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find diagnosis %s: %+v", id, err)
		return nil, err
	}
	if diagnosis == nil {
		return nil, ErrDiagnosisNotFound
	}
	return converter.DiagnosisToResponse(diagnosis, time.Now()), nil
}

func (u *diagnosisUsecase) List(ctx context.Context, filter entity.DiagnosisFilter, page entity.Pagination) ([]dto.DiagnosisResponse, int64, error) {
	diagnoses, total, err := u.diagnosisRepo.Search(u.db.WithContext(ctx), filter, page, time.Now())
	if err != nil {
		u.log.Warnf("Failed to search diagnoses: %+v", err)
		return nil, 0, err
	}
	return converter.DiagnosesToResponses(diagnoses, time.Now()), total, nil
}

func (u *diagnosisUsecase) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]dto.DiagnosisResponse, error) {
	diagnoses, err := u.diagnosisRepo.FindByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find diagnoses for patient %s: %+v", patientID, err)
		return nil, err
	}
	return converter.DiagnosesToResponses(diagnoses, time.Now()), nil
}

func (u *diagnosisUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateDiagnosisRequest) (*dto.DiagnosisResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errUserMissingFromContext
	}

	diagnosis, err := u.diagnosisRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find diagnosis %s: %+v", id, err)
		return nil, err
	}
	if diagnosis == nil {
		return nil, ErrDiagnosisNotFound
	}

	old := *diagnosis

	// Start from the stored data, then layer on the bulk object and the
	// individual fields, in that order
	merged := u.records.Reconcile(diagnosis.ClinicalData, req.ClinicalData)
	diagnosis.ClinicalData = u.records.Reconcile(merged, individualFields(updateRequestFields(req)))

	if report := u.records.ValidateStructure(diagnosis.ClinicalData); !report.Valid() {
		u.log.Warnf("Diagnosis %s carries unregistered clinical fields: %v", id, report.UnknownFields)
	}

	if req.LensType != nil {
		diagnosis.LensType = entity.LensType(*req.LensType)
	}
	if req.LensMaterial != nil {
		diagnosis.LensMaterial = entity.LensMaterial(*req.LensMaterial)
	}
	if req.LensFilter != nil {
		diagnosis.LensFilter = entity.LensFilter(*req.LensFilter)
	}
	if req.NextControlDate != nil {
		if err := u.records.ValidateNextControl(req.NextControlDate, time.Now()); err != nil {
			return nil, err
		}
		diagnosis.NextControlDate = req.NextControlDate
		// A new control date re-arms the reminder
		diagnosis.ReminderSent = false
	}
	if req.OphthalmicReferral != nil {
		diagnosis.OphthalmicReferral = *req.OphthalmicReferral
	}
	if req.AdditionalNotes != nil {
		diagnosis.AdditionalNotes = *req.AdditionalNotes
	}
	if req.Comment != nil {
		diagnosis.Comment = *req.Comment
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.diagnosisRepo.Update(tx, diagnosis); err != nil {
		u.log.Warnf("Failed to update diagnosis %s: %+v", id, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(tx, &userID, entity.AuditActionDiagnosisUpdate, "diagnosis", id.String(), old, diagnosis); err != nil {
		u.log.Warnf("Failed to write audit entry: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.DiagnosisToResponse(diagnosis, time.Now()), nil
}

func (u *diagnosisUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return errUserMissingFromContext
	}

	diagnosis, err := u.diagnosisRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find diagnosis %s: %+v", id, err)
		return err
	}
	if diagnosis == nil {
		return ErrDiagnosisNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.diagnosisRepo.Deactivate(tx, id)
	if err != nil {
		u.log.Warnf("Failed to deactivate diagnosis %s: %+v", id, err)
		return err
	}
	if affected == 0 {
		return ErrDiagnosisNotFound
	}

	if err := u.auditService.LogDelete(tx, &userID, entity.AuditActionDiagnosisDelete, "diagnosis", id.String(), diagnosis); err != nil {
		u.log.Warnf("Failed to write audit entry: %+v", err)
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

// PendingReminders lists active diagnoses whose next control date falls
// inside the reminder window and whose reminder has not been sent yet.
func (u *diagnosisUsecase) PendingReminders(ctx context.Context) ([]dto.ReminderResponse, error) {
	now := time.Now()
	from, to := u.records.ReminderWindow(now)

	diagnoses, err := u.diagnosisRepo.FindPendingReminders(u.db.WithContext(ctx), from, to)
	if err != nil {
		u.log.Warnf("Failed to find pending reminders: %+v", err)
		return nil, err
	}
	return converter.DiagnosesToReminderResponses(diagnoses, now), nil
}

func (u *diagnosisUsecase) MarkReminderSent(ctx context.Context, id uuid.UUID) error {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return errUserMissingFromContext
	}

	diagnosis, err := u.diagnosisRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find diagnosis %s: %+v", id, err)
		return err
	}
	if diagnosis == nil {
		return ErrDiagnosisNotFound
	}
	if diagnosis.NextControlDate == nil {
		return ErrReminderWithoutControl
	}
	if diagnosis.ReminderSent {
		return ErrReminderAlreadySent
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.diagnosisRepo.MarkReminderSent(tx, id)
	if err != nil {
		u.log.Warnf("Failed to mark reminder sent for diagnosis %s: %+v", id, err)
		return err
	}
	if affected == 0 {
		return ErrReminderAlreadySent
	}

	if err := u.auditService.LogUpdate(tx, &userID, entity.AuditActionDiagnosisReminder, "diagnosis", id.String(), false, true); err != nil {
		u.log.Warnf("Failed to write audit entry: %+v", err)
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

// ValidateStructure reports unknown clinical fields without rejecting them
func (u *diagnosisUsecase) ValidateStructure(ctx context.Context, data map[string]string) *dto.StructureReportResponse {
	report := u.records.ValidateStructure(data)

	warnings := make([]string, 0, len(report.UnknownFields))
	for _, field := range report.UnknownFields {
		warnings = append(warnings, "unknown clinical field: "+field)
	}

	return &dto.StructureReportResponse{
		Valid:            report.Valid(),
		Warnings:         warnings,
		UnknownFields:    report.UnknownFields,
		RegisteredFields: report.RegisteredFields,
	}
}

func (u *diagnosisUsecase) ClinicalFields(ctx context.Context) []string {
	return u.records.ClinicalFields()
}

func (u *diagnosisUsecase) Stats(ctx context.Context) (*dto.DiagnosisStatsResponse, error) {
	stats, err := u.diagnosisRepo.Stats(u.db.WithContext(ctx), time.Now())
	if err != nil {
		u.log.Warnf("Failed to compute diagnosis stats: %+v", err)
		return nil, err
	}
	return converter.DiagnosisStatsToResponse(stats), nil
}
