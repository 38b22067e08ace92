package models

import "time"

type CompanyRole string

const (
	RoleOwner  CompanyRole = "owner"
	RoleMember CompanyRole = "member"
)

type CompanyMember struct {
	CompanyID uint64      `gorm:"primarykey" json:"company_id"`
	UserID    uint64      `gorm:"primarykey" json:"user_id"`
	Role      CompanyRole `gorm:"type:varchar(20);not null" json:"role"`
	JoinedAt  time.Time   `json:"joined_at"`

	// Relations
	Company Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
