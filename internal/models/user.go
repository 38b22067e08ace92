package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID               uint64         `gorm:"primarykey" json:"id"`
	Email            string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash     string         `gorm:"type:varchar(255);not null" json:"-"`
	PrimaryCompanyID *uint64        `json:"primary_company_id"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	CreatedTasks []Task          `gorm:"foreignKey:CreatorID" json:"-"`
	Memberships  []CompanyMember `gorm:"foreignKey:UserID" json:"-"`
	Employments  []Employee      `gorm:"foreignKey:UserID" json:"-"`
}
