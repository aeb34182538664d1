package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// LensType represents the prescribed lens type
type LensType string

const (
	LensTypeMonofocal    LensType = "monofocal"
	LensTypeBifocal      LensType = "bifocal"
	LensTypeProgressive  LensType = "progressive"
	LensTypeOccupational LensType = "occupational"
	LensTypeContact      LensType = "contact"
)

// LensMaterial represents the lens material
type LensMaterial string

const (
	LensMaterialCR39          LensMaterial = "cr39"
	LensMaterialPolycarbonate LensMaterial = "polycarbonate"
	LensMaterialTrivex        LensMaterial = "trivex"
	LensMaterialHighIndex     LensMaterial = "high_index"
	LensMaterialMineral       LensMaterial = "mineral"
)

// LensFilter represents the lens coating/filter
type LensFilter string

const (
	LensFilterNone           LensFilter = "none"
	LensFilterAntireflective LensFilter = "antireflective"
	LensFilterBlueLight      LensFilter = "blue_light"
	LensFilterPhotochromic   LensFilter = "photochromic"
	LensFilterPolarized      LensFilter = "polarized"
	LensFilterUV             LensFilter = "uv"
)

// LensTypes, LensMaterials and LensFilters enumerate the accepted values
// for the lens enums, in display order.
var (
	LensTypes     = []LensType{LensTypeMonofocal, LensTypeBifocal, LensTypeProgressive, LensTypeOccupational, LensTypeContact}
	LensMaterials = []LensMaterial{LensMaterialCR39, LensMaterialPolycarbonate, LensMaterialTrivex, LensMaterialHighIndex, LensMaterialMineral}
	LensFilters   = []LensFilter{LensFilterNone, LensFilterAntireflective, LensFilterBlueLight, LensFilterPhotochromic, LensFilterPolarized, LensFilterUV}
)

// ClinicalData is the schema-less key -> text mapping holding the findings of
// one consultation. Keys usually come from the clinical field registry but
// unregistered keys are stored as-is. Persisted as jsonb.
type ClinicalData map[string]string

// Value implements driver.Valuer for jsonb storage
func (c ClinicalData) Value() (driver.Value, error) {
	if len(c) == 0 {
		return []byte("{}"), nil
	}
	return json.Marshal(c)
}

// Scan implements sql.Scanner
func (c *ClinicalData) Scan(value interface{}) error {
	if value == nil {
		*c = ClinicalData{}
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("failed to unmarshal jsonb value:", value))
	}

	result := map[string]string{}
	err := json.Unmarshal(bytes, &result)
	*c = ClinicalData(result)
	return err
}

// Get returns the value stored under field, or "" if absent.
func (c ClinicalData) Get(field string) string {
	return c[field]
}

// Diagnosis represents the clinical record of one consultation,
// including the flexible clinical-data mapping and the lens prescription.
type Diagnosis struct {
	ID                 uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID          uuid.UUID    `gorm:"type:uuid;not null;index:idx_diagnoses_patient_time" json:"patient_id"`
	ClinicalData       ClinicalData `gorm:"type:jsonb;not null;default:'{}'" json:"clinical_data"`
	LensType           LensType     `gorm:"type:varchar(20)" json:"lens_type,omitempty"`
	LensMaterial       LensMaterial `gorm:"type:varchar(20)" json:"lens_material,omitempty"`
	LensFilter         LensFilter   `gorm:"type:varchar(20);default:'none'" json:"lens_filter"`
	NextControlDate    *time.Time   `gorm:"type:date;index" json:"next_control_date,omitempty"`
	ReminderSent       bool         `gorm:"not null;default:false" json:"reminder_sent"`
	OphthalmicReferral bool         `gorm:"not null;default:false" json:"ophthalmic_referral"`
	AdditionalNotes    string       `gorm:"type:text" json:"additional_notes,omitempty"`
	Comment            string       `gorm:"type:text" json:"comment,omitempty"`
	ConsultedAt        time.Time    `gorm:"not null;index:idx_diagnoses_patient_time;index" json:"consulted_at"`
	CreatedByID        *uuid.UUID   `gorm:"type:uuid" json:"created_by,omitempty"`
	BranchID           uuid.UUID    `gorm:"type:uuid;not null;index" json:"branch_id"`
	IsActive           bool         `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt          time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time    `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient   Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	CreatedBy *User   `gorm:"foreignKey:CreatedByID" json:"created_by_user,omitempty"`
	Branch    Branch  `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
}

func (Diagnosis) TableName() string {
	return "diagnoses"
}
