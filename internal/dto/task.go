package dto

import (
	"time"

	"github.com/swapnilgupta14/synapse-api/internal/models"
	"github.com/swapnilgupta14/synapse-api/internal/utils"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID             uint64              `json:"id"`
	PublicID       string              `json:"public_id"`
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	Priority       models.TaskPriority `json:"priority"`
	Category       string              `json:"category,omitempty"`
	Status         models.TaskStatus   `json:"status"`
	DueDate        *time.Time          `json:"due_date"`
	CompletedAt    *time.Time          `json:"completed_at"`
	CreatedBy      uint64              `json:"created_by"`
	AssignedTo     uint64              `json:"assigned_to"`
	TeamID         *uint64             `json:"team_id,omitempty"`
	ProjectID      *uint64             `json:"project_id,omitempty"`
	OrganizationID *uint64             `json:"organization_id,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
	Creator        *UserDTO            `json:"creator,omitempty"`
	Assignee       *UserDTO            `json:"assignee,omitempty"`
}

// NewTaskDTO converts a task model to its response form
func NewTaskDTO(task *models.Task) TaskDTO {
	d := TaskDTO{
		ID:             task.ID,
		PublicID:       task.PublicID,
		Title:          task.Title,
		Description:    task.Description,
		Priority:       task.Priority,
		Category:       task.Category,
		Status:         task.Status,
		DueDate:        task.DueDate,
		CompletedAt:    task.CompletedAt,
		CreatedBy:      task.CreatedBy,
		AssignedTo:     task.AssignedTo,
		TeamID:         task.TeamID,
		ProjectID:      task.ProjectID,
		OrganizationID: task.OrganizationID,
		CreatedAt:      task.CreatedAt,
		UpdatedAt:      task.UpdatedAt,
	}
	if task.Creator != nil {
		creator := NewUserDTO(task.Creator)
		d.Creator = &creator
	}
	if task.Assignee != nil {
		assignee := NewUserDTO(task.Assignee)
		d.Assignee = &assignee
	}
	return d
}

// NewTaskDTOs converts a slice of task models
func NewTaskDTOs(tasks []models.Task) []TaskDTO {
	out := make([]TaskDTO, len(tasks))
	for i := range tasks {
		out[i] = NewTaskDTO(&tasks[i])
	}
	return out
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks      []TaskDTO                `json:"tasks"`
	Pagination utils.PaginationResponse `json:"pagination"`
}
