package models

import (
	"time"

	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectStatusPlanning ProjectStatus = "planning"
	ProjectStatusActive   ProjectStatus = "active"
	ProjectStatusArchived ProjectStatus = "archived"
)

type Project struct {
	ID               uint64         `gorm:"primarykey" json:"id"`
	Name             string         `gorm:"type:varchar(255);not null" json:"name"`
	OrganizationID   uint64         `gorm:"not null;index" json:"organization_id"`
	ProjectManagerID *uint64        `json:"project_manager_id"`
	Status           ProjectStatus  `gorm:"type:varchar(20);not null;default:'planning'" json:"status"`
	StartDate        *time.Time     `json:"start_date"`
	EndDate          *time.Time     `json:"end_date"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Teams []Team `gorm:"foreignKey:ProjectID" json:"teams,omitempty"`
}
