package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusArchived   TaskStatus = "archived"
)

type TaskPriority string

const (
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityLow    TaskPriority = "low"
)

// Task is an active (non-archived) task. PublicID is a client-visible UUID
// allocated at creation; retrying a create with the same PublicID must not
// produce a second row.
type Task struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	PublicID       string         `gorm:"type:varchar(36);uniqueIndex;not null" json:"public_id"`
	Title          string         `gorm:"not null" json:"title"`
	Description    string         `gorm:"type:text" json:"description"`
	Priority       TaskPriority   `gorm:"type:varchar(10);not null;default:'medium'" json:"priority"`
	Category       string         `gorm:"type:varchar(100)" json:"category"`
	Status         TaskStatus     `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	DueDate        *time.Time     `json:"due_date"`
	CompletedAt    *time.Time     `json:"completed_at"`
	CreatedBy      uint64         `gorm:"not null;index" json:"created_by"`
	AssignedTo     uint64         `gorm:"not null;index" json:"assigned_to"`
	TeamID         *uint64        `gorm:"index" json:"team_id"`
	ProjectID      *uint64        `gorm:"index" json:"project_id"`
	OrganizationID *uint64        `gorm:"index" json:"organization_id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Creator  *User `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	Assignee *User `gorm:"foreignKey:AssignedTo" json:"assignee,omitempty"`
	Team     *Team `gorm:"foreignKey:TeamID" json:"team,omitempty"`
}

// IsOverdue reports whether the task is pending past its due date.
func (t *Task) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && t.Status == TaskStatusPending
}
