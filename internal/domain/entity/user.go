package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents a staff account (admins, doctors, receptionists).
// Patients are not users; they are managed through the Patient entity.
type User struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Username  string     `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	Email     string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string     `gorm:"type:text;not null" json:"-"`
	FullName  string     `gorm:"type:varchar(255);not null" json:"full_name"`
	RoleID    *int       `gorm:"index" json:"role_id,omitempty"`
	BranchID  *uuid.UUID `gorm:"type:uuid;index" json:"branch_id,omitempty"`
	IsActive  bool       `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Role   *Role   `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	Branch *Branch `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// HasPermission reports whether the user's role grants the permission code.
// Requires Role.Permissions to be preloaded.
func (u *User) HasPermission(code string) bool {
	if u.Role == nil || !u.Role.IsActive {
		return false
	}
	for _, p := range u.Role.Permissions {
		if p.Code == code && p.IsActive {
			return true
		}
	}
	return false
}
