package repository

import (
	"optical-clinic-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appt *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	Search(db *gorm.DB, filter entity.AppointmentFilter, page entity.Pagination) ([]entity.Appointment, int64, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID, filter entity.AppointmentFilter) ([]entity.Appointment, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error)
	Update(db *gorm.DB, appt *entity.Appointment) error
	Deactivate(db *gorm.DB, id uuid.UUID) (int64, error)
}
