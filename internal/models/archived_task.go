package models

import "time"

// ArchivedTask is a task moved out of the active working set. Rows are copied
// here and removed from tasks; no operation moves them back.
type ArchivedTask struct {
	ID             uint64       `gorm:"primarykey" json:"id"`
	TaskID         uint64       `gorm:"not null;index" json:"task_id"`
	PublicID       string       `gorm:"type:varchar(36);uniqueIndex;not null" json:"public_id"`
	Title          string       `gorm:"not null" json:"title"`
	Description    string       `gorm:"type:text" json:"description"`
	Priority       TaskPriority `gorm:"type:varchar(10);not null" json:"priority"`
	Category       string       `gorm:"type:varchar(100)" json:"category"`
	Status         TaskStatus   `gorm:"type:varchar(20);not null" json:"status"`
	DueDate        *time.Time   `json:"due_date"`
	CompletedAt    *time.Time   `json:"completed_at"`
	CreatedBy      uint64       `gorm:"not null" json:"created_by"`
	AssignedTo     uint64       `gorm:"not null" json:"assigned_to"`
	TeamID         *uint64      `json:"team_id"`
	ProjectID      *uint64      `json:"project_id"`
	OrganizationID *uint64      `json:"organization_id"`
	TaskCreatedAt  time.Time    `json:"task_created_at"`
	ArchivedAt     time.Time    `json:"archived_at"`
}

// ArchiveTask snapshots an active task into its archived form.
func ArchiveTask(t *Task, now time.Time) *ArchivedTask {
	return &ArchivedTask{
		TaskID:         t.ID,
		PublicID:       t.PublicID,
		Title:          t.Title,
		Description:    t.Description,
		Priority:       t.Priority,
		Category:       t.Category,
		Status:         TaskStatusArchived,
		DueDate:        t.DueDate,
		CompletedAt:    t.CompletedAt,
		CreatedBy:      t.CreatedBy,
		AssignedTo:     t.AssignedTo,
		TeamID:         t.TeamID,
		ProjectID:      t.ProjectID,
		OrganizationID: t.OrganizationID,
		TaskCreatedAt:  t.CreatedAt,
		ArchivedAt:     now,
	}
}
