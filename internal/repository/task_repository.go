package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/teamgrid/tracker-api/internal/models"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// visibilityScope applies the tenant predicate: tasks in a visible company,
// or personal tasks (nil company) created by the viewer. With no visible
// companies only the personal clause remains.
func visibilityScope(filter TaskFilter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.CompanyID != nil {
			return db.Where("tasks.company_id = ?", *filter.CompanyID)
		}
		if len(filter.VisibleCompanyIDs) == 0 {
			return db.Where("tasks.company_id IS NULL AND tasks.creator_id = ?", filter.ViewerID)
		}
		return db.Where(
			"tasks.company_id IN ? OR (tasks.company_id IS NULL AND tasks.creator_id = ?)",
			filter.VisibleCompanyIDs, filter.ViewerID,
		)
	}
}

func executorScope(filter TaskFilter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.ExecutorID != nil {
			return db.Where("tasks.executor_id = ?", *filter.ExecutorID)
		}
		return db
	}
}

func (r *GormTaskRepository) baseQuery() *gorm.DB {
	return r.db.Model(&models.Task{}).
		Joins("JOIN statuses ON statuses.id = tasks.status_id").
		Preload("Status").
		Preload("Priority").
		Preload("Executor")
}

// ListActive retrieves visible non-terminal tasks, newest first.
func (r *GormTaskRepository) ListActive(filter TaskFilter) ([]models.Task, error) {
	var tasks []models.Task
	err := r.baseQuery().
		Scopes(visibilityScope(filter), executorScope(filter)).
		Where("statuses.is_terminal = ?", false).
		Order("tasks.created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query active tasks: %w", err)
	}
	return tasks, nil
}

// ListCompleted retrieves visible terminal tasks, most recently touched
// first, falling back to creation time for never-updated rows.
func (r *GormTaskRepository) ListCompleted(filter TaskFilter) ([]models.Task, error) {
	var tasks []models.Task
	err := r.baseQuery().
		Scopes(visibilityScope(filter), executorScope(filter)).
		Where("statuses.is_terminal = ?", true).
		Order("COALESCE(tasks.updated_at, tasks.created_at) DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query completed tasks: %w", err)
	}
	return tasks, nil
}

// ListDescendants walks parent links breadth-first in batched queries. A
// seen-set guards against cyclic parent chains in degenerate data; the
// terminal-status exclusion and executor filter apply at every hop, so a
// resolved or filtered row disconnects anything below it. Descendants are
// returned regardless of their own company: once a root is visible its
// subtree is surfaced whole.
func (r *GormTaskRepository) ListDescendants(rootIDs []uint64, filter TaskFilter) ([]models.Task, error) {
	seen := make(map[uint64]struct{}, len(rootIDs))
	for _, id := range rootIDs {
		seen[id] = struct{}{}
	}

	var out []models.Task
	frontier := append([]uint64(nil), rootIDs...)
	for len(frontier) > 0 {
		var batch []models.Task
		err := r.baseQuery().
			Scopes(executorScope(filter)).
			Where("tasks.parent_id IN ?", frontier).
			Where("statuses.is_terminal = ?", false).
			Order("tasks.created_at DESC").
			Find(&batch).Error
		if err != nil {
			return nil, fmt.Errorf("failed to expand descendants: %w", err)
		}

		frontier = frontier[:0]
		for i := range batch {
			if _, ok := seen[batch[i].ID]; ok {
				continue
			}
			seen[batch[i].ID] = struct{}{}
			out = append(out, batch[i])
			frontier = append(frontier, batch[i].ID)
		}
	}
	return out, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// DeleteSubtree soft deletes a task together with its transitive children so
// no phantom orphans survive the delete. Terminal descendants are included;
// the walk here ignores status.
func (r *GormTaskRepository) DeleteSubtree(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		ids := []uint64{id}
		seen := map[uint64]struct{}{id: {}}
		frontier := []uint64{id}

		for len(frontier) > 0 {
			var childIDs []uint64
			if err := tx.Model(&models.Task{}).
				Where("parent_id IN ?", frontier).
				Pluck("id", &childIDs).Error; err != nil {
				return err
			}

			frontier = frontier[:0]
			for _, cid := range childIDs {
				if _, ok := seen[cid]; ok {
					continue
				}
				seen[cid] = struct{}{}
				ids = append(ids, cid)
				frontier = append(frontier, cid)
			}
		}

		return tx.Delete(&models.Task{}, ids).Error
	})
}
