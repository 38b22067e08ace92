package models

// Priority ranks tasks for display. Higher Rank means more urgent.
type Priority struct {
	ID   uint64 `gorm:"primarykey" json:"id"`
	Name string `gorm:"type:varchar(100);not null" json:"name"`
	Rank int    `gorm:"not null;default:0" json:"rank"`
}
