package repository

import (
	"errors"

	"optical-clinic-api/internal/domain/entity"
	domainRepo "optical-clinic-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appt *entity.Appointment) error {
	return db.Create(appt).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appt entity.Appointment
	err := db.Preload("Patient").Preload("Doctor").Preload("CreatedBy").Preload("Branch").
		Where("id = ? AND is_active = ?", id, true).
		First(&appt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appt, nil
}

func (r *appointmentRepository) Search(db *gorm.DB, filter entity.AppointmentFilter, page entity.Pagination) ([]entity.Appointment, int64, error) {
	query := db.Model(&entity.Appointment{}).Where("appointments.is_active = ?", true)

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.
			Joins("JOIN patients ON patients.id = appointments.patient_id").
			Joins("LEFT JOIN users doctors ON doctors.id = appointments.doctor_id").
			Where("patients.full_name ILIKE ? OR patients.patient_code ILIKE ? OR doctors.full_name ILIKE ?",
				like, like, like)
	}
	if filter.Status != "" {
		query = query.Where("appointments.status = ?", filter.Status)
	}
	if filter.BranchID != nil {
		query = query.Where("appointments.branch_id = ?", *filter.BranchID)
	}
	if filter.DoctorID != nil {
		query = query.Where("appointments.doctor_id = ?", *filter.DoctorID)
	}
	if filter.PatientID != nil {
		query = query.Where("appointments.patient_id = ?", *filter.PatientID)
	}
	if filter.DateFrom != nil {
		query = query.Where("appointments.scheduled_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("appointments.scheduled_at <= ?", *filter.DateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := applyPagination(&page)
	var appts []entity.Appointment
	err := query.Preload("Patient").Preload("Doctor").Preload("Branch").
		Order("appointments.scheduled_at DESC").
		Offset(offset).Limit(page.PageSize).
		Find(&appts).Error
	if err != nil {
		return nil, 0, err
	}
	return appts, total, nil
}

func (r *appointmentRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID, filter entity.AppointmentFilter) ([]entity.Appointment, error) {
	query := db.Where("doctor_id = ? AND is_active = ?", doctorID, true)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.DateFrom != nil {
		query = query.Where("scheduled_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("scheduled_at <= ?", *filter.DateTo)
	}

	var appts []entity.Appointment
	err := query.Preload("Patient").Preload("Branch").
		Order("scheduled_at DESC").
		Find(&appts).Error
	if err != nil {
		return nil, err
	}
	return appts, nil
}

func (r *appointmentRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error) {
	var appts []entity.Appointment
	err := db.Preload("Doctor").Preload("Branch").
		Where("patient_id = ? AND is_active = ?", patientID, true).
		Order("scheduled_at DESC").
		Find(&appts).Error
	if err != nil {
		return nil, err
	}
	return appts, nil
}

func (r *appointmentRepository) Update(db *gorm.DB, appt *entity.Appointment) error {
	return db.Save(appt).Error
}

func (r *appointmentRepository) Deactivate(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}
