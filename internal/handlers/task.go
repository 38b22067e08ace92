package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/teamgrid/tracker-api/internal/category"
	"github.com/teamgrid/tracker-api/internal/dto"
	apierrors "github.com/teamgrid/tracker-api/internal/errors"
	"github.com/teamgrid/tracker-api/internal/gantt"
	"github.com/teamgrid/tracker-api/internal/middleware"
	"github.com/teamgrid/tracker-api/internal/models"
	"github.com/teamgrid/tracker-api/internal/services"
	"github.com/teamgrid/tracker-api/internal/tasktree"
	"github.com/teamgrid/tracker-api/internal/utils"
)

// TaskHandler coordinates task-related HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// listInput parses the shared list query parameters.
func listInput(c *gin.Context, userID uint64) (services.ListTasksInput, bool) {
	input := services.ListTasksInput{UserID: userID}

	if raw := c.Query("company_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid company_id")
			return input, false
		}
		input.CompanyID = &id
	}
	if raw := c.Query("executor_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid executor_id")
			return input, false
		}
		input.ExecutorID = &id
	}
	return input, true
}

// parseCollapsed reads the optional collapsed task-id set ("1,2,3").
func parseCollapsed(c *gin.Context) map[uint64]struct{} {
	raw := c.Query("collapsed")
	if raw == "" {
		return nil
	}
	out := make(map[uint64]struct{})
	for _, part := range strings.Split(raw, ",") {
		if id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64); err == nil {
			out[id] = struct{}{}
		}
	}
	return out
}

// annotate fills badge on every DTO and returns the response payload.
func (h *TaskHandler) annotate(tasks []models.Task, viewer category.Viewer) []dto.TaskDTO {
	now := time.Now()
	out := make([]dto.TaskDTO, 0, len(tasks))
	for i := range tasks {
		d := dto.ToTaskDTO(tasks[i])
		d.Badge = category.Badge(category.Classify(tasks[i], viewer, now))
		out = append(out, d)
	}
	return out
}

// ListTasks returns the flattened, level-annotated active task sequence,
// with optional company/executor/category filters, collapse state and
// flat-view sorting.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	input, ok := listInput(c, userID)
	if !ok {
		return
	}

	tasks, err := h.taskService.ListVisibleTasks(input)
	if err != nil {
		h.respondListError(c, err)
		return
	}

	viewer, err := h.taskService.Viewer(userID)
	if err != nil {
		apierrors.StoreUnavailable(c, "")
		return
	}
	now := time.Now()

	// Counts reflect the unfiltered visible collection so quick-filter
	// badges stay stable while a filter is applied.
	counts := category.CountTasks(tasks, viewer, now)

	if collapsed := parseCollapsed(c); len(collapsed) > 0 {
		tasks = tasktree.VisibleTasks(tasks, collapsed)
	}

	if raw := c.Query("category"); raw != "" {
		cat, ok := category.ParseCategory(raw)
		if !ok {
			apierrors.BadRequest(c, "Unknown category")
			return
		}
		tasks = category.FilterByCategory(tasks, cat, viewer, now)
	}

	// Sorting applies after filtering and flattening, to the flat view only.
	if field := c.Query("sort"); field != "" {
		tasks = category.SortTasks(tasks, field, c.Query("order") == "desc")
	}

	c.JSON(http.StatusOK, dto.TaskListResponse{
		Tasks:  h.annotate(tasks, viewer),
		Counts: counts,
	})
}

// ListCompletedTasks returns the resolved tasks, most recently touched first.
func (h *TaskHandler) ListCompletedTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	input, ok := listInput(c, userID)
	if !ok {
		return
	}

	tasks, err := h.taskService.ListCompletedTasks(input)
	if err != nil {
		h.respondListError(c, err)
		return
	}

	viewer, err := h.taskService.Viewer(userID)
	if err != nil {
		apierrors.StoreUnavailable(c, "")
		return
	}

	// Counts cover the full resolved collection; the page is cut afterwards
	// so hierarchy levels survive pagination.
	counts := category.CountTasks(tasks, viewer, time.Now())
	total := int64(len(tasks))

	params := utils.GetPaginationParams(c)
	if params.Offset >= len(tasks) {
		tasks = nil
	} else if end := params.Offset + params.Limit; end < len(tasks) {
		tasks = tasks[params.Offset:end]
	} else {
		tasks = tasks[params.Offset:]
	}

	c.JSON(http.StatusOK, dto.TaskListResponse{
		Tasks:  h.annotate(tasks, viewer),
		Counts: counts,
		Pagination: &utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetTaskCounts returns the per-category totals for the visible collection.
func (h *TaskHandler) GetTaskCounts(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	input, ok := listInput(c, userID)
	if !ok {
		return
	}

	active, err := h.taskService.ListVisibleTasks(input)
	if err != nil {
		h.respondListError(c, err)
		return
	}
	completed, err := h.taskService.ListCompletedTasks(input)
	if err != nil {
		h.respondListError(c, err)
		return
	}

	viewer, err := h.taskService.Viewer(userID)
	if err != nil {
		apierrors.StoreUnavailable(c, "")
		return
	}

	all := append(active, completed...)
	c.JSON(http.StatusOK, category.CountTasks(all, viewer, time.Now()))
}

// ListGantt returns the active sequence annotated with progress percentages
// and per-status row order for the Gantt view.
func (h *TaskHandler) ListGantt(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	input, ok := listInput(c, userID)
	if !ok {
		return
	}

	tasks, err := h.taskService.ListVisibleTasks(input)
	if err != nil {
		h.respondListError(c, err)
		return
	}

	statuses, err := h.taskService.Statuses()
	if err != nil {
		apierrors.StoreUnavailable(c, "")
		return
	}
	viewer, err := h.taskService.Viewer(userID)
	if err != nil {
		apierrors.StoreUnavailable(c, "")
		return
	}

	rows := h.annotate(tasks, viewer)
	for i := range rows {
		rows[i].Progress = gantt.ProgressOf(tasks[i], statuses)
	}

	statusDTOs := make([]dto.StatusDTO, 0, len(statuses))
	for _, s := range statuses {
		statusDTOs = append(statusDTOs, dto.ToStatusDTO(s))
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks":    rows,
		"statuses": statusDTOs,
	})
}

// GetTask returns one task with related data; access is checked by
// RequireTaskAccess.
func (h *TaskHandler) GetTask(c *gin.Context) {
	value, _ := c.Get("task")
	task := value.(models.Task)

	c.JSON(http.StatusOK, dto.ToTaskDTO(task))
}

// CreateTask creates a new task.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateTaskRequest struct {
		Title       string     `json:"title" binding:"required"`
		Description string     `json:"description"`
		ParentID    *uint64    `json:"parent_id"`
		CompanyID   *uint64    `json:"company_id"`
		StatusID    uint64     `json:"status_id" binding:"required"`
		PriorityID  *uint64    `json:"priority_id"`
		ExecutorID  *uint64    `json:"executor_id"`
		StartDate   *time.Time `json:"start_date"`
		Deadline    *time.Time `json:"deadline"`
	}
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		ParentID:    req.ParentID,
		CompanyID:   req.CompanyID,
		StatusID:    req.StatusID,
		PriorityID:  req.PriorityID,
		ExecutorID:  req.ExecutorID,
		StartDate:   req.StartDate,
		Deadline:    req.Deadline,
		CreatorID:   userID,
	})
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask applies a partial update to a task.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	value, _ := c.Get("task")
	task := value.(models.Task)

	type UpdateTaskRequest struct {
		Title         *string    `json:"title"`
		Description   *string    `json:"description"`
		StatusID      *uint64    `json:"status_id"`
		PriorityID    *uint64    `json:"priority_id"`
		ExecutorID    *uint64    `json:"executor_id"`
		StartDate     *time.Time `json:"start_date"`
		Deadline      *time.Time `json:"deadline"`
		ClearDeadline bool       `json:"clear_deadline"`
		ClearExecutor bool       `json:"clear_executor"`
	}
	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.taskService.UpdateTask(task.ID, services.UpdateTaskInput{
		Title:         req.Title,
		Description:   req.Description,
		StatusID:      req.StatusID,
		PriorityID:    req.PriorityID,
		ExecutorID:    req.ExecutorID,
		StartDate:     req.StartDate,
		Deadline:      req.Deadline,
		ClearDeadline: req.ClearDeadline,
		ClearExecutor: req.ClearExecutor,
	})
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*updated))
}

// DeleteTask deletes a task and its subtree.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	value, _ := c.Get("task")
	task := value.(models.Task)

	if err := h.taskService.DeleteTask(task.ID, userID); err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}

func (h *TaskHandler) respondListError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrNotCompanyVisible) {
		apierrors.Forbidden(c, err.Error())
		return
	}
	apierrors.StoreUnavailable(c, "")
}

func (h *TaskHandler) respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrTitleEmpty):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrStatusNotFound),
		errors.Is(err, services.ErrParentNotFound):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotCompanyVisible):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrTaskDeleteForbidden):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
