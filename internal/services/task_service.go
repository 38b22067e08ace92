package services

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/teamgrid/tracker-api/internal/category"
	"github.com/teamgrid/tracker-api/internal/gantt"
	"github.com/teamgrid/tracker-api/internal/models"
	"github.com/teamgrid/tracker-api/internal/repository"
	"github.com/teamgrid/tracker-api/internal/tasktree"
)

var (
	ErrTaskNotFound        = errors.New("task not found")
	ErrParentNotFound      = errors.New("parent task not found")
	ErrStatusNotFound      = errors.New("status not found")
	ErrNotCompanyVisible   = errors.New("user has no access to this company")
	ErrTaskDeleteForbidden = errors.New("only the task creator or the company owner can delete a task")
	ErrTitleRequired       = errors.New("title is required")
	ErrTitleEmpty          = errors.New("title cannot be empty")
)

// TaskService assembles the visible, hierarchy-ordered task views.
type TaskService struct {
	taskRepo    repository.TaskRepository
	companyRepo repository.CompanyRepository
	statusRepo  repository.StatusRepository
	log         *zap.Logger
}

// NewTaskService creates a new TaskService
func NewTaskService(
	taskRepo repository.TaskRepository,
	companyRepo repository.CompanyRepository,
	statusRepo repository.StatusRepository,
	log *zap.Logger,
) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		companyRepo: companyRepo,
		statusRepo:  statusRepo,
		log:         log,
	}
}

// ListTasksInput represents filters for listing tasks.
type ListTasksInput struct {
	UserID     uint64
	CompanyID  *uint64
	ExecutorID *uint64
}

// ListVisibleTasks returns the flattened, level-annotated sequence of active
// tasks the user may see. Without a company filter the tenant predicate alone
// decides; with one, the company's own tasks are expanded to their transitive
// descendants regardless of the descendants' company, so a visible root
// always surfaces its whole unresolved subtree.
func (s *TaskService) ListVisibleTasks(input ListTasksInput) ([]models.Task, error) {
	filter, err := s.buildFilter(input)
	if err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.ListActive(*filter)
	if err != nil {
		return nil, err
	}

	if input.CompanyID != nil && len(tasks) > 0 {
		rootIDs := make([]uint64, len(tasks))
		for i := range tasks {
			rootIDs[i] = tasks[i].ID
		}
		descendants, err := s.taskRepo.ListDescendants(rootIDs, *filter)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, descendants...)
	}

	flat := tasktree.FlattenTasks(tasks)
	gantt.AssignStatusOrder(flat)
	return flat, nil
}

// ListCompletedTasks returns the flattened sequence of resolved tasks,
// most recently touched first.
func (s *TaskService) ListCompletedTasks(input ListTasksInput) ([]models.Task, error) {
	filter, err := s.buildFilter(input)
	if err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.ListCompleted(*filter)
	if err != nil {
		return nil, err
	}

	flat := tasktree.FlattenTasks(tasks)
	gantt.AssignStatusOrder(flat)
	return flat, nil
}

// buildFilter resolves the viewer's tenant set and validates an explicit
// company filter against it.
func (s *TaskService) buildFilter(input ListTasksInput) (*repository.TaskFilter, error) {
	access, err := s.companyRepo.ListVisibleCompanies(input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve visible companies: %w", err)
	}

	visibleIDs := make([]uint64, 0, len(access))
	visible := make(map[uint64]struct{}, len(access))
	for _, a := range access {
		visibleIDs = append(visibleIDs, a.Company.ID)
		visible[a.Company.ID] = struct{}{}
	}

	if input.CompanyID != nil {
		if _, ok := visible[*input.CompanyID]; !ok {
			return nil, ErrNotCompanyVisible
		}
	}

	return &repository.TaskFilter{
		ViewerID:          input.UserID,
		VisibleCompanyIDs: visibleIDs,
		CompanyID:         input.CompanyID,
		ExecutorID:        input.ExecutorID,
	}, nil
}

// Viewer resolves the category viewer (user plus linked employee records).
func (s *TaskService) Viewer(userID uint64) (category.Viewer, error) {
	ids, err := s.companyRepo.ListEmployeeIDsForUser(userID)
	if err != nil {
		return category.Viewer{}, err
	}
	set := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return category.Viewer{UserID: userID, EmployeeIDs: set}, nil
}

// Statuses returns the workflow ordered by step, for progress derivation and
// kanban column layout.
func (s *TaskService) Statuses() ([]models.Status, error) {
	statuses, err := s.statusRepo.ListOrdered()
	if err != nil {
		return nil, fmt.Errorf("failed to list statuses: %w", err)
	}
	return statuses, nil
}

// GetTask returns a task with related data.
func (s *TaskService) GetTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, "Creator", "Status", "Priority", "Executor")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// CreateTaskInput represents input for creating a task.
type CreateTaskInput struct {
	Title       string
	Description string
	ParentID    *uint64
	CompanyID   *uint64
	StatusID    uint64
	PriorityID  *uint64
	ExecutorID  *uint64
	StartDate   *time.Time
	Deadline    *time.Time
	CreatorID   uint64
}

// CreateTask creates a task after validating the status, the parent link and
// the creator's access to the target company. A task with no company is a
// personal task visible only to its creator.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if input.Title == "" {
		return nil, ErrTitleRequired
	}

	if _, err := s.statusRepo.FindByID(input.StatusID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStatusNotFound
		}
		return nil, fmt.Errorf("failed to verify status: %w", err)
	}

	if input.ParentID != nil {
		parent, err := s.taskRepo.FindByID(*input.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrParentNotFound
			}
			return nil, fmt.Errorf("failed to verify parent: %w", err)
		}
		// Subtasks inherit the parent's company unless set explicitly.
		if input.CompanyID == nil {
			input.CompanyID = parent.CompanyID
		}
	}

	if input.CompanyID != nil {
		if err := s.ensureCompanyVisible(input.CreatorID, *input.CompanyID); err != nil {
			return nil, err
		}
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		ParentID:    input.ParentID,
		CompanyID:   input.CompanyID,
		StatusID:    input.StatusID,
		PriorityID:  input.PriorityID,
		ExecutorID:  input.ExecutorID,
		StartDate:   input.StartDate,
		Deadline:    input.Deadline,
		CreatorID:   input.CreatorID,
	}
	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	// History logging is best effort.
	s.log.Info("task created",
		zap.Uint64("task_id", task.ID),
		zap.Uint64("creator_id", task.CreatorID),
	)

	return s.taskRepo.FindByID(task.ID, "Creator", "Status", "Priority", "Executor")
}

// UpdateTaskInput represents input for updating a task. Nil fields are left
// untouched; the Clear* flags reset optional fields to null.
type UpdateTaskInput struct {
	Title         *string
	Description   *string
	StatusID      *uint64
	PriorityID    *uint64
	ExecutorID    *uint64
	StartDate     *time.Time
	Deadline      *time.Time
	ClearDeadline bool
	ClearExecutor bool
}

// UpdateTask updates an existing task. The creator is immutable.
func (s *TaskService) UpdateTask(taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrTitleEmpty
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.StatusID != nil {
		if _, err := s.statusRepo.FindByID(*input.StatusID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrStatusNotFound
			}
			return nil, fmt.Errorf("failed to verify status: %w", err)
		}
		task.StatusID = *input.StatusID
	}
	if input.PriorityID != nil {
		task.PriorityID = input.PriorityID
	}
	if input.ClearExecutor {
		task.ExecutorID = nil
	} else if input.ExecutorID != nil {
		task.ExecutorID = input.ExecutorID
	}
	if input.StartDate != nil {
		task.StartDate = input.StartDate
	}
	if input.ClearDeadline {
		task.Deadline = nil
	} else if input.Deadline != nil {
		task.Deadline = input.Deadline
	}

	task.Touch(time.Now())

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, "Creator", "Status", "Priority", "Executor")
}

// DeleteTask deletes a task and its subtree. Allowed for the task creator
// and for the owner of the task's company.
func (s *TaskService) DeleteTask(taskID, actorID uint64) error {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if task.CreatorID != actorID {
		allowed := false
		if task.CompanyID != nil {
			company, err := s.companyRepo.FindByID(*task.CompanyID)
			if err == nil && company.OwnerID == actorID {
				allowed = true
			}
		}
		if !allowed {
			return ErrTaskDeleteForbidden
		}
	}

	if err := s.taskRepo.DeleteSubtree(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.log.Info("task deleted",
		zap.Uint64("task_id", taskID),
		zap.Uint64("actor_id", actorID),
	)
	return nil
}

// ensureCompanyVisible verifies the user has any access path to a company.
func (s *TaskService) ensureCompanyVisible(userID, companyID uint64) error {
	access, err := s.companyRepo.ListVisibleCompanies(userID)
	if err != nil {
		return fmt.Errorf("failed to resolve visible companies: %w", err)
	}
	for _, a := range access {
		if a.Company.ID == companyID {
			return nil
		}
	}
	return ErrNotCompanyVisible
}
