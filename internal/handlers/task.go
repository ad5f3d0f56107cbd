package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/swapnilgupta14/synapse-api/internal/dto"
	apierrors "github.com/swapnilgupta14/synapse-api/internal/errors"
	"github.com/swapnilgupta14/synapse-api/internal/middleware"
	"github.com/swapnilgupta14/synapse-api/internal/models"
	"github.com/swapnilgupta14/synapse-api/internal/repository"
	"github.com/swapnilgupta14/synapse-api/internal/services"
	"github.com/swapnilgupta14/synapse-api/internal/utils"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskPermissionDenied),
		errors.Is(err, services.ErrNotTheTeamManager):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrTeamNotFound):
		apierrors.NotFound(c, "Team not found")
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrTitleEmpty),
		errors.Is(err, services.ErrInvalidTaskPriority),
		errors.Is(err, services.ErrInvalidTaskStatus),
		errors.Is(err, services.ErrNoTaskIDsProvided):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}

// ListTasks returns tasks matching query filters, paginated
func (h *TaskHandler) ListTasks(c *gin.Context) {
	if _, ok := middleware.CurrentUser(c); !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	params := utils.GetPaginationParams(c)
	filter := repository.TaskFilter{
		Page:          params.Page,
		PageSize:      params.Limit,
		SortByDueDate: c.Query("sort") == "due_date",
	}

	for name, target := range map[string]**uint64{
		"organization_id": &filter.OrganizationID,
		"project_id":      &filter.ProjectID,
		"team_id":         &filter.TeamID,
		"created_by":      &filter.CreatedBy,
		"assigned_to":     &filter.AssignedTo,
	} {
		raw := c.Query(name)
		if raw == "" {
			continue
		}
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid "+name)
			return
		}
		*target = &id
	}

	if raw := c.Query("status"); raw != "" {
		status := models.TaskStatus(raw)
		filter.Status = &status
	}
	if raw := c.Query("priority"); raw != "" {
		priority := models.TaskPriority(raw)
		filter.Priority = &priority
	}
	if raw := c.Query("category"); raw != "" {
		filter.Category = &raw
	}

	tasks, total, err := h.taskService.ListTasks(filter)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.TaskListResponse{
		Tasks: dto.NewTaskDTOs(tasks),
		Pagination: utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetTask returns one task
func (h *TaskHandler) GetTask(c *gin.Context) {
	if _, ok := middleware.CurrentUser(c); !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(taskID)
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTaskDTO(task))
}

// CreateTask creates a task, or a batch when it is a team task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateTaskRequest struct {
		PublicID       string              `json:"public_id"`
		Title          string              `json:"title" binding:"required"`
		Description    string              `json:"description"`
		Priority       models.TaskPriority `json:"priority"`
		Category       string              `json:"category"`
		DueDate        *time.Time          `json:"due_date"`
		AssignedTo     *uint64             `json:"assigned_to"`
		TeamID         *uint64             `json:"team_id"`
		ProjectID      *uint64             `json:"project_id"`
		OrganizationID *uint64             `json:"organization_id"`
		TeamTask       bool                `json:"team_task"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	tasks, err := h.taskService.CreateTask(actor, services.CreateTaskInput{
		PublicID:       req.PublicID,
		Title:          req.Title,
		Description:    req.Description,
		Priority:       req.Priority,
		Category:       req.Category,
		DueDate:        req.DueDate,
		AssignedTo:     req.AssignedTo,
		TeamID:         req.TeamID,
		ProjectID:      req.ProjectID,
		OrganizationID: req.OrganizationID,
		TeamTask:       req.TeamTask,
	})
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"tasks": dto.NewTaskDTOs(tasks)})
}

// UpdateTask merges partial fields into a task
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type UpdateTaskRequest struct {
		Title        *string              `json:"title"`
		Description  *string              `json:"description"`
		Priority     *models.TaskPriority `json:"priority"`
		Category     *string              `json:"category"`
		Status       *models.TaskStatus   `json:"status"`
		DueDate      *time.Time           `json:"due_date"`
		ClearDueDate bool                 `json:"clear_due_date"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	task, err := h.taskService.UpdateTask(actor, taskID, services.UpdateTaskInput{
		Title:        req.Title,
		Description:  req.Description,
		Priority:     req.Priority,
		Category:     req.Category,
		Status:       req.Status,
		DueDate:      req.DueDate,
		ClearDueDate: req.ClearDueDate,
	})
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTaskDTO(task))
}

// DeleteTask removes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(actor, taskID); err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}

// ToggleStatus flips a task between pending and completed
func (h *TaskHandler) ToggleStatus(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	task, err := h.taskService.ToggleStatus(actor, taskID)
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTaskDTO(task))
}

// BulkUpdate applies shared updates to a set of tasks
func (h *TaskHandler) BulkUpdate(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	type BulkUpdateRequest struct {
		TaskIDs  []uint64             `json:"task_ids" binding:"required,min=1"`
		Priority *models.TaskPriority `json:"priority"`
		Category *string              `json:"category"`
		Status   *models.TaskStatus   `json:"status"`
		DueDate  *time.Time           `json:"due_date"`
	}

	var req BulkUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	affected, err := h.taskService.BulkUpdate(actor, req.TaskIDs, services.BulkUpdateInput{
		Priority: req.Priority,
		Category: req.Category,
		Status:   req.Status,
		DueDate:  req.DueDate,
	})
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": affected})
}

// Reassign moves selected tasks between assignees
func (h *TaskHandler) Reassign(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	type ReassignRequest struct {
		TaskIDs    []uint64 `json:"task_ids" binding:"required,min=1"`
		FromUserID uint64   `json:"from_user_id" binding:"required"`
		ToUserID   uint64   `json:"to_user_id" binding:"required"`
	}

	var req ReassignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	affected, err := h.taskService.ReassignSelected(actor, req.TaskIDs, req.FromUserID, req.ToUserID)
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reassigned": affected})
}

// Archive moves tasks into the archive collection; with no IDs, overdue
// tasks are selected automatically
func (h *TaskHandler) Archive(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	type ArchiveRequest struct {
		TaskIDs []uint64 `json:"task_ids"`
	}

	// An empty body means "select overdue tasks automatically".
	var req ArchiveRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.BadRequest(c, "")
			return
		}
	}

	archived, err := h.taskService.ArchiveTasks(actor, req.TaskIDs)
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"archived": archived})
}

// ListArchived returns the archive collection
func (h *TaskHandler) ListArchived(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	archived, err := h.taskService.ListArchivedTasks(actor)
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"archived_tasks": archived})
}

// UpdatePriorities sets the priority on a set of tasks
func (h *TaskHandler) UpdatePriorities(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	type UpdatePrioritiesRequest struct {
		TaskIDs  []uint64            `json:"task_ids" binding:"required,min=1"`
		Priority models.TaskPriority `json:"priority" binding:"required"`
	}

	var req UpdatePrioritiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	affected, err := h.taskService.UpdateTaskPriorities(actor, req.TaskIDs, req.Priority)
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": affected})
}

// Statistics returns the derived statistics snapshot
func (h *TaskHandler) Statistics(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	stats, err := h.taskService.GenerateStatistics(actor)
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
