package entity

import (
	"regexp"
	"strings"
	"time"
)

// Permission represents a named capability granted through roles.
// Code is derived from Name when not supplied.
type Permission struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Code        string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Roles []Role `gorm:"many2many:role_permissions" json:"roles,omitempty"`
}

func (Permission) TableName() string {
	return "permissions"
}

var (
	accentReplacer   = strings.NewReplacer("á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u", "ñ", "n")
	nonCodeChars     = regexp.MustCompile(`[^a-z0-9_]`)
	repeatedSlugSeps = regexp.MustCompile(`_+`)
)

// SlugifyCode derives a permission code from a display name:
// lowercased, accents stripped, non-alphanumerics collapsed to single
// underscores.
func SlugifyCode(name string) string {
	code := strings.ToLower(name)
	code = accentReplacer.Replace(code)
	code = nonCodeChars.ReplaceAllString(code, "_")
	code = repeatedSlugSeps.ReplaceAllString(code, "_")
	return strings.Trim(code, "_")
}

// Permission codes used by the HTTP layer
const (
	PermManagePatients     = "manage_patients"
	PermManageAppointments = "manage_appointments"
	PermManageDiagnoses    = "manage_diagnoses"
	PermManageUsers        = "manage_users"
	PermManageBranches     = "manage_branches"
	PermManageRoles        = "manage_roles"
)
