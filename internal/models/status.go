package models

// Status is an ordered workflow step. StepOrder drives kanban column order
// and the Gantt progress percentage. IsTerminal marks done/cancelled states
// that are excluded from the active task views; IsUrgent marks states that
// make a task "important" regardless of priority.
type Status struct {
	ID         uint64 `gorm:"primarykey" json:"id"`
	Name       string `gorm:"type:varchar(100);not null" json:"name"`
	StepOrder  int    `gorm:"not null;default:0" json:"step_order"`
	IsTerminal bool   `gorm:"not null;default:false" json:"is_terminal"`
	IsUrgent   bool   `gorm:"not null;default:false" json:"is_urgent"`
}
