package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleAdmin          UserRole = "admin"
	RoleOrganisation   UserRole = "organisation"
	RoleProjectManager UserRole = "project_manager"
	RoleTeamManager    UserRole = "team_manager"
	RoleTeamMember     UserRole = "team_member"
)

type User struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	Username       string         `gorm:"type:varchar(255);not null" json:"username"`
	Email          string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash   string         `gorm:"type:varchar(255);not null" json:"-"`
	Role           UserRole       `gorm:"type:varchar(30);not null;default:'team_member'" json:"role"`
	OrganizationID *uint64        `gorm:"index" json:"organization_id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Teams         []Team `gorm:"many2many:team_members" json:"teams,omitempty"`
	CreatedTasks  []Task `gorm:"foreignKey:CreatedBy" json:"-"`
	AssignedTasks []Task `gorm:"foreignKey:AssignedTo" json:"-"`
}

// InTeam reports whether the user's preloaded Teams include the given team.
func (u *User) InTeam(teamID uint64) bool {
	for _, t := range u.Teams {
		if t.ID == teamID {
			return true
		}
	}
	return false
}
