package models

import (
	"time"

	"gorm.io/gorm"
)

// Team groups users working on a project. A team may exist unassigned
// (ProjectID nil) and holds at most one team manager at a time.
type Team struct {
	ID            uint64         `gorm:"primarykey" json:"id"`
	Name          string         `gorm:"type:varchar(255);not null" json:"name"`
	Description   string         `gorm:"type:text" json:"description"`
	ProjectID     *uint64        `gorm:"index" json:"project_id"`
	TeamManagerID *uint64        `json:"team_manager_id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Members []User   `gorm:"many2many:team_members" json:"members,omitempty"`
	Project *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}

// HasMember reports whether the team's preloaded Members include the user.
func (t *Team) HasMember(userID uint64) bool {
	for _, m := range t.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}
