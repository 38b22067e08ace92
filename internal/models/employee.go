package models

import (
	"time"

	"gorm.io/gorm"
)

// Employee is a company staff record. It may or may not be linked to a
// system user; tasks are assigned to employees, not users.
type Employee struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	CompanyID uint64         `gorm:"not null;index" json:"company_id"`
	UserID    *uint64        `gorm:"index" json:"user_id"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	Email     string         `gorm:"type:varchar(255)" json:"email"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Company Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	User    *User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
