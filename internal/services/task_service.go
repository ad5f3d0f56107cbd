package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/swapnilgupta14/synapse-api/internal/authz"
	"github.com/swapnilgupta14/synapse-api/internal/models"
	"github.com/swapnilgupta14/synapse-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound         = errors.New("task not found")
	ErrTaskPermissionDenied = errors.New("user does not have permission to modify this task")
	ErrTitleRequired        = errors.New("title is required")
	ErrTitleEmpty           = errors.New("title cannot be empty")
	ErrInvalidTaskPriority  = errors.New("invalid task priority")
	ErrInvalidTaskStatus    = errors.New("invalid task status")
	ErrNotTheTeamManager    = errors.New("only the team manager can create team tasks")
	ErrNoTaskIDsProvided    = errors.New("at least one task ID is required")
	ErrSameAssignee         = errors.New("source and target assignee are the same")
)

// TaskService handles task business logic: creation (including team fan-out),
// role-gated mutation, archival, and statistics.
type TaskService struct {
	taskRepo repository.TaskRepository
	teamRepo repository.TeamRepository
	userRepo repository.UserRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, teamRepo repository.TeamRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		teamRepo: teamRepo,
		userRepo: userRepo,
	}
}

// CreateTaskInput represents input for creating a task. PublicID, when
// supplied by the client, makes a retried create idempotent: the task with
// that UUID is returned instead of a second row being written.
type CreateTaskInput struct {
	PublicID       string
	Title          string
	Description    string
	Priority       models.TaskPriority
	Category       string
	DueDate        *time.Time
	AssignedTo     *uint64
	TeamID         *uint64
	ProjectID      *uint64
	OrganizationID *uint64
	TeamTask       bool
}

// CreateTask creates a pending task assigned to the creator unless an
// assignee is given. A team manager creating a team task fans it out into one
// task per non-manager team member, each with its own ID and assignee.
func (s *TaskService) CreateTask(actor *models.User, input CreateTaskInput) ([]models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}

	priority := input.Priority
	if priority == "" {
		priority = models.TaskPriorityMedium
	}
	switch priority {
	case models.TaskPriorityHigh, models.TaskPriorityMedium, models.TaskPriorityLow:
	default:
		return nil, ErrInvalidTaskPriority
	}

	if input.PublicID != "" {
		existing, err := s.taskRepo.FindByPublicID(input.PublicID)
		if err == nil {
			return []models.Task{*existing}, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check for existing task: %w", err)
		}
	}

	if input.TeamTask {
		return s.createTeamTasks(actor, input, priority)
	}

	assignedTo := actor.ID
	if input.AssignedTo != nil {
		assignedTo = *input.AssignedTo
	}

	task := s.newTask(actor, input, priority, assignedTo)
	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return []models.Task{*task}, nil
}

// createTeamTasks fans a team task out into one task per non-manager member.
// Each row's PublicID is derived from the client key and the member, so a
// retried create finds the rows the first attempt wrote instead of minting a
// second batch.
func (s *TaskService) createTeamTasks(actor *models.User, input CreateTaskInput, priority models.TaskPriority) ([]models.Task, error) {
	if input.TeamID == nil {
		return nil, ErrTeamNotFound
	}

	team, err := s.teamRepo.FindByID(*input.TeamID, "Members")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to find team: %w", err)
	}

	if actor.Role != models.RoleAdmin {
		if team.TeamManagerID == nil || *team.TeamManagerID != actor.ID {
			return nil, ErrNotTheTeamManager
		}
	}

	var created []models.Task
	var toCreate []*models.Task
	for _, member := range team.Members {
		if member.Role == models.RoleTeamManager {
			continue
		}
		task := s.newTask(actor, input, priority, member.ID)
		task.PublicID = teamTaskPublicID(input.PublicID, member.ID)
		if input.PublicID != "" {
			existing, err := s.taskRepo.FindByPublicID(task.PublicID)
			if err == nil {
				created = append(created, *existing)
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("failed to check for existing task: %w", err)
			}
		}
		toCreate = append(toCreate, task)
	}

	if err := s.taskRepo.CreateBatch(toCreate); err != nil {
		return nil, fmt.Errorf("failed to create team tasks: %w", err)
	}

	for _, t := range toCreate {
		created = append(created, *t)
	}
	return created, nil
}

// teamTaskPublicID allocates a fan-out row's UUID. With a client key the ID
// is a stable function of key and member; without one each row gets a fresh
// random UUID.
func teamTaskPublicID(clientID string, memberID uint64) string {
	if clientID == "" {
		return uuid.NewString()
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("%s/%d", clientID, memberID))).String()
}

func (s *TaskService) newTask(actor *models.User, input CreateTaskInput, priority models.TaskPriority, assignedTo uint64) *models.Task {
	publicID := input.PublicID
	if publicID == "" {
		publicID = uuid.NewString()
	}
	return &models.Task{
		PublicID:       publicID,
		Title:          input.Title,
		Description:    input.Description,
		Priority:       priority,
		Category:       input.Category,
		Status:         models.TaskStatusPending,
		DueDate:        input.DueDate,
		CreatedBy:      actor.ID,
		AssignedTo:     assignedTo,
		TeamID:         input.TeamID,
		ProjectID:      input.ProjectID,
		OrganizationID: input.OrganizationID,
	}
}

// GetTask returns a task with related data.
func (s *TaskService) GetTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, "Creator", "Assignee", "Team")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// ListTasks returns tasks matching the filter.
func (s *TaskService) ListTasks(filter repository.TaskFilter) ([]models.Task, int64, error) {
	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// ListArchivedTasks returns the archive collection.
func (s *TaskService) ListArchivedTasks(actor *models.User) ([]models.ArchivedTask, error) {
	if !authz.Allowed(actor.Role, authz.OpArchiveTasks) {
		return nil, ErrTaskPermissionDenied
	}
	archived, err := s.taskRepo.ListArchived()
	if err != nil {
		return nil, fmt.Errorf("failed to list archived tasks: %w", err)
	}
	return archived, nil
}

// UpdateTaskInput represents input for updating a task.
type UpdateTaskInput struct {
	Title        *string
	Description  *string
	Priority     *models.TaskPriority
	Category     *string
	Status       *models.TaskStatus
	DueDate      *time.Time
	ClearDueDate bool
}

// UpdateTask merges the partial input into the task. Permitted for admins,
// the manager of the task's team, the creator, and the assignee.
func (s *TaskService) UpdateTask(actor *models.User, taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}

	allowed, err := s.canModify(actor, task, true)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrTaskPermissionDenied
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrTitleEmpty
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Priority != nil {
		switch *input.Priority {
		case models.TaskPriorityHigh, models.TaskPriorityMedium, models.TaskPriorityLow:
			task.Priority = *input.Priority
		default:
			return nil, ErrInvalidTaskPriority
		}
	}
	if input.Category != nil {
		task.Category = *input.Category
	}
	if input.Status != nil {
		if err := applyStatus(task, *input.Status, time.Now()); err != nil {
			return nil, err
		}
	}
	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// DeleteTask removes a task. Permitted for admins, the manager of the task's
// team, and the creator — not the assignee.
func (s *TaskService) DeleteTask(actor *models.User, taskID uint64) error {
	task, err := s.findTask(taskID)
	if err != nil {
		return err
	}

	allowed, err := s.canModify(actor, task, false)
	if err != nil {
		return err
	}
	if !allowed {
		return ErrTaskPermissionDenied
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// ToggleStatus flips a task between pending and completed, keeping
// CompletedAt in step with the status. Permitted for the creator, the
// assignee, and team managers.
func (s *TaskService) ToggleStatus(actor *models.User, taskID uint64) (*models.Task, error) {
	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}

	permitted := actor.Role == models.RoleAdmin ||
		actor.Role == models.RoleTeamManager ||
		task.CreatedBy == actor.ID ||
		task.AssignedTo == actor.ID
	if !permitted {
		return nil, ErrTaskPermissionDenied
	}

	now := time.Now()
	if task.Status == models.TaskStatusCompleted {
		task.Status = models.TaskStatusPending
		task.CompletedAt = nil
	} else {
		task.Status = models.TaskStatusCompleted
		task.CompletedAt = &now
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to toggle status: %w", err)
	}

	return task, nil
}

// BulkUpdateInput holds the fields a bulk update may set.
type BulkUpdateInput struct {
	Priority *models.TaskPriority
	Category *string
	Status   *models.TaskStatus
	DueDate  *time.Time
}

// BulkUpdate applies the updates to every matched task. Admins and team
// managers only.
func (s *TaskService) BulkUpdate(actor *models.User, taskIDs []uint64, input BulkUpdateInput) (int64, error) {
	if !authz.Allowed(actor.Role, authz.OpBulkUpdateTasks) {
		return 0, ErrTaskPermissionDenied
	}
	if len(taskIDs) == 0 {
		return 0, ErrNoTaskIDsProvided
	}

	now := time.Now()
	updates := map[string]interface{}{"updated_at": now}
	if input.Priority != nil {
		switch *input.Priority {
		case models.TaskPriorityHigh, models.TaskPriorityMedium, models.TaskPriorityLow:
			updates["priority"] = *input.Priority
		default:
			return 0, ErrInvalidTaskPriority
		}
	}
	if input.Category != nil {
		updates["category"] = *input.Category
	}
	if input.Status != nil {
		switch *input.Status {
		case models.TaskStatusPending, models.TaskStatusInProgress:
			updates["status"] = *input.Status
			updates["completed_at"] = nil
		case models.TaskStatusCompleted:
			updates["status"] = *input.Status
			updates["completed_at"] = &now
		default:
			return 0, ErrInvalidTaskStatus
		}
	}
	if input.DueDate != nil {
		updates["due_date"] = input.DueDate
	}

	affected, err := s.taskRepo.UpdateBatch(uniqueUint64(taskIDs), updates)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk update tasks: %w", err)
	}

	return affected, nil
}

// ReassignSelected moves the selected tasks from one assignee to another.
// Managerial roles only; a same-user reassignment is a no-op. Only tasks
// currently assigned to the source user change.
func (s *TaskService) ReassignSelected(actor *models.User, taskIDs []uint64, fromUserID, toUserID uint64) (int64, error) {
	if !authz.Allowed(actor.Role, authz.OpReassignTasks) {
		return 0, ErrTaskPermissionDenied
	}
	if fromUserID == toUserID {
		return 0, nil
	}
	if len(taskIDs) == 0 {
		return 0, ErrNoTaskIDsProvided
	}

	if _, err := s.userRepo.FindByID(toUserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("failed to find target user: %w", err)
	}

	affected, err := s.taskRepo.Reassign(uniqueUint64(taskIDs), fromUserID, toUserID)
	if err != nil {
		return 0, fmt.Errorf("failed to reassign tasks: %w", err)
	}

	return affected, nil
}

// ArchiveTasks moves tasks into the archive collection. Admin only. With no
// explicit IDs, every task past its due date is selected.
func (s *TaskService) ArchiveTasks(actor *models.User, taskIDs []uint64) (int64, error) {
	if !authz.Allowed(actor.Role, authz.OpArchiveTasks) {
		return 0, ErrTaskPermissionDenied
	}

	now := time.Now()

	var tasks []models.Task
	var err error
	if len(taskIDs) > 0 {
		tasks, err = s.taskRepo.FindByIDs(uniqueUint64(taskIDs))
	} else {
		tasks, err = s.taskRepo.ListOverdue(now)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to select tasks for archival: %w", err)
	}
	if len(tasks) == 0 {
		return 0, nil
	}

	if err := s.taskRepo.Archive(tasks, now); err != nil {
		return 0, fmt.Errorf("failed to archive tasks: %w", err)
	}

	return int64(len(tasks)), nil
}

// UpdateTaskPriorities sets the priority on every matched task. Admin only.
func (s *TaskService) UpdateTaskPriorities(actor *models.User, taskIDs []uint64, priority models.TaskPriority) (int64, error) {
	if !authz.Allowed(actor.Role, authz.OpUpdateTaskPriorities) {
		return 0, ErrTaskPermissionDenied
	}
	if len(taskIDs) == 0 {
		return 0, ErrNoTaskIDsProvided
	}
	switch priority {
	case models.TaskPriorityHigh, models.TaskPriorityMedium, models.TaskPriorityLow:
	default:
		return 0, ErrInvalidTaskPriority
	}

	affected, err := s.taskRepo.UpdateBatch(uniqueUint64(taskIDs), map[string]interface{}{
		"priority":   priority,
		"updated_at": time.Now(),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to update task priorities: %w", err)
	}

	return affected, nil
}

// GenerateStatistics derives the statistics snapshot from the active task
// collection. Admin only.
func (s *TaskService) GenerateStatistics(actor *models.User) (*TaskStatistics, error) {
	if !authz.Allowed(actor.Role, authz.OpViewStatistics) {
		return nil, ErrTaskPermissionDenied
	}

	tasks, err := s.taskRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	return ComputeStatistics(tasks, time.Now()), nil
}

func (s *TaskService) findTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// canModify evaluates the per-task ownership rule: admins always, the manager
// of the task's team, the creator, and — for edits only — the assignee.
func (s *TaskService) canModify(actor *models.User, task *models.Task, includeAssignee bool) (bool, error) {
	if actor.Role == models.RoleAdmin {
		return true, nil
	}
	if task.CreatedBy == actor.ID {
		return true, nil
	}
	if includeAssignee && task.AssignedTo == actor.ID {
		return true, nil
	}
	if task.TeamID != nil && actor.Role == models.RoleTeamManager {
		team, err := s.teamRepo.FindByID(*task.TeamID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return false, nil
			}
			return false, fmt.Errorf("failed to find task's team: %w", err)
		}
		if team.TeamManagerID != nil && *team.TeamManagerID == actor.ID {
			return true, nil
		}
	}
	return false, nil
}

// applyStatus sets a new status while keeping CompletedAt consistent:
// non-nil iff the status is completed.
func applyStatus(task *models.Task, status models.TaskStatus, now time.Time) error {
	switch status {
	case models.TaskStatusPending, models.TaskStatusInProgress:
		task.Status = status
		task.CompletedAt = nil
	case models.TaskStatusCompleted:
		task.Status = status
		task.CompletedAt = &now
	default:
		return ErrInvalidTaskStatus
	}
	return nil
}

// uniqueUint64 removes duplicate values from a slice of uint64
func uniqueUint64(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
