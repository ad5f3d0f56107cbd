package dto

import (
	"time"

	"github.com/swapnilgupta14/synapse-api/internal/models"
)

// OrganizationDTO represents an organisation in API responses
type OrganizationDTO struct {
	ID      uint64 `json:"id"`
	Name    string `json:"name"`
	OwnerID uint64 `json:"owner_id"`
}

// NewOrganizationDTO converts an organisation model to its response form
func NewOrganizationDTO(org *models.Organization) OrganizationDTO {
	return OrganizationDTO{
		ID:      org.ID,
		Name:    org.Name,
		OwnerID: org.OwnerID,
	}
}

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID               uint64               `json:"id"`
	Name             string               `json:"name"`
	OrganizationID   uint64               `json:"organization_id"`
	ProjectManagerID *uint64              `json:"project_manager_id,omitempty"`
	Status           models.ProjectStatus `json:"status"`
	StartDate        *time.Time           `json:"start_date,omitempty"`
	EndDate          *time.Time           `json:"end_date,omitempty"`
	TeamIDs          []uint64             `json:"team_ids"`
}

// NewProjectDTO converts a project model to its response form
func NewProjectDTO(project *models.Project) ProjectDTO {
	d := ProjectDTO{
		ID:               project.ID,
		Name:             project.Name,
		OrganizationID:   project.OrganizationID,
		ProjectManagerID: project.ProjectManagerID,
		Status:           project.Status,
		StartDate:        project.StartDate,
		EndDate:          project.EndDate,
		TeamIDs:          make([]uint64, 0, len(project.Teams)),
	}
	for _, t := range project.Teams {
		d.TeamIDs = append(d.TeamIDs, t.ID)
	}
	return d
}

// NewProjectDTOs converts a slice of project models
func NewProjectDTOs(projects []models.Project) []ProjectDTO {
	out := make([]ProjectDTO, len(projects))
	for i := range projects {
		out[i] = NewProjectDTO(&projects[i])
	}
	return out
}

// TeamDTO represents a team in API responses
type TeamDTO struct {
	ID            uint64    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	ProjectID     *uint64   `json:"project_id,omitempty"`
	TeamManagerID *uint64   `json:"team_manager_id,omitempty"`
	Members       []UserDTO `json:"members"`
}

// NewTeamDTO converts a team model to its response form
func NewTeamDTO(team *models.Team) TeamDTO {
	return TeamDTO{
		ID:            team.ID,
		Name:          team.Name,
		Description:   team.Description,
		ProjectID:     team.ProjectID,
		TeamManagerID: team.TeamManagerID,
		Members:       NewUserDTOs(team.Members),
	}
}

// NewTeamDTOs converts a slice of team models
func NewTeamDTOs(teams []models.Team) []TeamDTO {
	out := make([]TeamDTO, len(teams))
	for i := range teams {
		out[i] = NewTeamDTO(&teams[i])
	}
	return out
}
