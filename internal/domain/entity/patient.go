package entity

import (
	"time"

	"github.com/google/uuid"
)

// Patient represents a person receiving care at a branch.
// Patients are never physically deleted; IsActive is cleared instead.
type Patient struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	FullName     string     `gorm:"type:varchar(255);not null" json:"full_name"`
	Address      string     `gorm:"type:text" json:"address,omitempty"`
	DateOfBirth  *time.Time `gorm:"type:date" json:"date_of_birth,omitempty"`
	Gender       string     `gorm:"type:char(1)" json:"gender,omitempty"`
	Phone        string     `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Email        string     `gorm:"type:varchar(255)" json:"email,omitempty"`
	PatientCode  string     `gorm:"type:varchar(20);uniqueIndex;not null" json:"patient_code"`
	RegisteredBy *uuid.UUID `gorm:"type:uuid;index" json:"registered_by,omitempty"`
	BranchID     *uuid.UUID `gorm:"type:uuid;index" json:"branch_id,omitempty"`
	IsActive     bool       `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Registrar *User   `gorm:"foreignKey:RegisteredBy" json:"registrar,omitempty"`
	Branch    *Branch `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}

// Gender constants
const (
	GenderMale   = "M"
	GenderFemale = "F"
	GenderOther  = "O"
)

// ContactInfo returns the preferred contact channel for reminders,
// phone first, then email.
func (p *Patient) ContactInfo() string {
	if p.Phone != "" {
		return p.Phone
	}
	return p.Email
}
