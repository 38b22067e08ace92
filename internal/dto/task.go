package dto

import (
	"time"

	"github.com/teamgrid/tracker-api/internal/category"
	"github.com/teamgrid/tracker-api/internal/models"
	"github.com/teamgrid/tracker-api/internal/utils"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID    uint64 `json:"id"`
	Email string `json:"email"`
}

func ToUserDTO(user models.User) UserDTO {
	return UserDTO{ID: user.ID, Email: user.Email}
}

// StatusDTO represents a workflow status in API responses
type StatusDTO struct {
	ID         uint64 `json:"id"`
	Name       string `json:"name"`
	StepOrder  int    `json:"step_order"`
	IsTerminal bool   `json:"is_terminal"`
}

func ToStatusDTO(s models.Status) StatusDTO {
	return StatusDTO{ID: s.ID, Name: s.Name, StepOrder: s.StepOrder, IsTerminal: s.IsTerminal}
}

// EmployeeDTO represents an executor in API responses
type EmployeeDTO struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// TaskDTO represents one row of the level-annotated task sequence.
type TaskDTO struct {
	ID            uint64            `json:"id"`
	Title         string            `json:"title"`
	Description   string            `json:"description,omitempty"`
	ParentID      *uint64           `json:"parent_id"`
	CompanyID     *uint64           `json:"company_id"`
	CreatorID     uint64            `json:"creator_id"`
	StatusID      uint64            `json:"status_id"`
	PriorityID    *uint64           `json:"priority_id"`
	ExecutorID    *uint64           `json:"executor_id"`
	StartDate     *time.Time        `json:"start_date"`
	Deadline      *time.Time        `json:"deadline"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     *time.Time        `json:"updated_at"`
	Level         int               `json:"level"`
	HasChildren   bool              `json:"has_children"`
	Status        *StatusDTO        `json:"status,omitempty"`
	Executor      *EmployeeDTO      `json:"executor,omitempty"`
	Badge         category.Category `json:"badge,omitempty"`
	OrderInStatus int               `json:"order_in_status"`
	Progress      int               `json:"progress"`
}

// ToTaskDTO maps a model row; badge and progress are filled by the handler
// where viewer context and the status list are available.
func ToTaskDTO(t models.Task) TaskDTO {
	d := TaskDTO{
		ID:            t.ID,
		Title:         t.Title,
		Description:   t.Description,
		ParentID:      t.ParentID,
		CompanyID:     t.CompanyID,
		CreatorID:     t.CreatorID,
		StatusID:      t.StatusID,
		PriorityID:    t.PriorityID,
		ExecutorID:    t.ExecutorID,
		StartDate:     t.StartDate,
		Deadline:      t.Deadline,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
		Level:         t.Level,
		HasChildren:   t.HasChildren,
		OrderInStatus: t.OrderInStatus,
	}
	if t.Status.ID != 0 {
		s := ToStatusDTO(t.Status)
		d.Status = &s
	}
	if t.Executor != nil {
		d.Executor = &EmployeeDTO{ID: t.Executor.ID, Name: t.Executor.Name, Email: t.Executor.Email}
	}
	return d
}

// TaskListResponse is the flattened, level-annotated sequence plus counts.
// Pagination is present only on paginated views.
type TaskListResponse struct {
	Tasks      []TaskDTO                 `json:"tasks"`
	Counts     category.Counts           `json:"counts"`
	Pagination *utils.PaginationResponse `json:"pagination,omitempty"`
}
