package entity

import (
	"time"

	"github.com/google/uuid"
)

// Branch represents a physical practice location
type Branch struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string     `gorm:"type:varchar(100);not null" json:"name"`
	Address   string     `gorm:"type:text;not null" json:"address"`
	Phone     string     `gorm:"type:varchar(20)" json:"phone,omitempty"`
	ManagerID *uuid.UUID `gorm:"type:uuid" json:"manager_id,omitempty"`
	IsActive  bool       `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Manager *User `gorm:"foreignKey:ManagerID" json:"manager,omitempty"`
}

func (Branch) TableName() string {
	return "branches"
}
