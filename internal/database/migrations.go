package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/teamgrid/tracker-api/internal/models"
)

// AddIndexes adds performance-critical indexes beyond what the model tags
// declare. Safe to run repeatedly.
func AddIndexes(db *gorm.DB, log *zap.Logger) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		{"tasks", "idx_tasks_company_created", "company_id, created_at"},
		{"tasks", "idx_tasks_parent_status", "parent_id, status_id"},
		{"tasks", "idx_tasks_creator_id", "creator_id"},
		{"tasks", "idx_tasks_deadline", "deadline"},
		{"company_members", "idx_company_members_user_id", "user_id"},
		{"employees", "idx_employees_company_user", "company_id, user_id"},
		{"statuses", "idx_statuses_step_order", "step_order"},
	}

	for _, idx := range indexes {
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM information_schema.statistics
			WHERE table_schema = DATABASE() AND table_name = ? AND index_name = ?
		`, idx.table, idx.name).Count(&count).Error
		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}
		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
		log.Info("created index", zap.String("index", idx.name), zap.String("table", idx.table))
	}

	return nil
}

// SeedStatuses inserts the default workflow when the statuses table is empty.
func SeedStatuses(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Status{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count statuses: %w", err)
	}
	if count > 0 {
		return nil
	}

	defaults := []models.Status{
		{Name: "New", StepOrder: 0},
		{Name: "In Progress", StepOrder: 1},
		{Name: "Review", StepOrder: 2},
		{Name: "Done", StepOrder: 3, IsTerminal: true},
		{Name: "Cancelled", StepOrder: 3, IsTerminal: true},
	}
	if err := db.Create(&defaults).Error; err != nil {
		return fmt.Errorf("failed to seed statuses: %w", err)
	}
	return nil
}
