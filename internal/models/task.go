package models

import (
	"time"

	"gorm.io/gorm"
)

type Task struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	ParentID    *uint64        `gorm:"index" json:"parent_id"`
	CompanyID   *uint64        `gorm:"index" json:"company_id"`
	CreatorID   uint64         `gorm:"not null" json:"creator_id"`
	StatusID    uint64         `gorm:"not null;index" json:"status_id"`
	PriorityID  *uint64        `json:"priority_id"`
	ExecutorID  *uint64        `gorm:"index" json:"executor_id"`
	StartDate   *time.Time     `json:"start_date"`
	Deadline    *time.Time     `json:"deadline"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   *time.Time     `gorm:"autoUpdateTime:false" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Derived per request, never persisted
	Level         int  `gorm:"-" json:"level"`
	HasChildren   bool `gorm:"-" json:"has_children"`
	OrderInStatus int  `gorm:"-" json:"order_in_status"`

	// Relations
	Creator  User      `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Company  *Company  `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Status   Status    `gorm:"foreignKey:StatusID" json:"status,omitempty"`
	Priority *Priority `gorm:"foreignKey:PriorityID" json:"priority,omitempty"`
	Executor *Employee `gorm:"foreignKey:ExecutorID" json:"executor,omitempty"`
}

// Touch records a content mutation. UpdatedAt stays nil until the first edit
// so staleness checks can fall back to CreatedAt.
func (t *Task) Touch(now time.Time) {
	t.UpdatedAt = &now
}

// LastActivity returns the later of the update and creation timestamps.
func (t *Task) LastActivity() time.Time {
	if t.UpdatedAt != nil && t.UpdatedAt.After(t.CreatedAt) {
		return *t.UpdatedAt
	}
	return t.CreatedAt
}
