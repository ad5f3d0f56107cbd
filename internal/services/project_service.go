package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/swapnilgupta14/synapse-api/internal/authz"
	"github.com/swapnilgupta14/synapse-api/internal/models"
	"github.com/swapnilgupta14/synapse-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound      = errors.New("project not found")
	ErrInvalidProjectName   = errors.New("project name cannot be empty")
	ErrInvalidProjectStatus = errors.New("invalid project status")
	ErrTeamNotFound         = errors.New("team not found")
)

// ProjectService provides business logic for projects and the
// project<->team relationship.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	teamRepo    repository.TeamRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, teamRepo repository.TeamRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		teamRepo:    teamRepo,
	}
}

// CreateProjectInput represents parameters to create a new project.
type CreateProjectInput struct {
	Name             string
	OrganizationID   uint64
	ProjectManagerID *uint64
	StartDate        *time.Time
	EndDate          *time.Time
}

// CreateProject creates a project in planning status with no teams.
func (s *ProjectService) CreateProject(actor *models.User, input CreateProjectInput) (*models.Project, error) {
	if !authz.Allowed(actor.Role, authz.OpManageProjects) {
		return nil, ErrOperationNotPermitted
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidProjectName
	}

	project := &models.Project{
		Name:             input.Name,
		OrganizationID:   input.OrganizationID,
		ProjectManagerID: input.ProjectManagerID,
		Status:           models.ProjectStatusPlanning,
		StartDate:        input.StartDate,
		EndDate:          input.EndDate,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// GetProject returns a project with its teams.
func (s *ProjectService) GetProject(projectID uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID, "Teams")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// ListProjects lists projects, optionally scoped to an organisation.
func (s *ProjectService) ListProjects(organizationID *uint64) ([]models.Project, error) {
	projects, err := s.projectRepo.List(organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// UpdateProjectInput holds the mutable project fields. The owning
// organisation is immutable after creation and deliberately absent.
type UpdateProjectInput struct {
	Name             *string
	ProjectManagerID *uint64
	Status           *models.ProjectStatus
	StartDate        *time.Time
	EndDate          *time.Time
}

// UpdateProject merges the partial input into the project.
func (s *ProjectService) UpdateProject(actor *models.User, projectID uint64, input UpdateProjectInput) (*models.Project, error) {
	if !authz.Allowed(actor.Role, authz.OpManageProjects) {
		return nil, ErrOperationNotPermitted
	}

	project, err := s.GetProject(projectID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrInvalidProjectName
		}
		project.Name = *input.Name
	}
	if input.ProjectManagerID != nil {
		project.ProjectManagerID = input.ProjectManagerID
	}
	if input.Status != nil {
		switch *input.Status {
		case models.ProjectStatusPlanning, models.ProjectStatusActive, models.ProjectStatusArchived:
			project.Status = *input.Status
		default:
			return nil, ErrInvalidProjectStatus
		}
	}
	if input.StartDate != nil {
		project.StartDate = input.StartDate
	}
	if input.EndDate != nil {
		project.EndDate = input.EndDate
	}

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return project, nil
}

// DeleteProject removes the project. Its teams become unassigned rather than
// being deleted with it.
func (s *ProjectService) DeleteProject(actor *models.User, projectID uint64) error {
	if !authz.Allowed(actor.Role, authz.OpManageProjects) {
		return ErrOperationNotPermitted
	}

	if _, err := s.GetProject(projectID); err != nil {
		return err
	}

	if err := s.projectRepo.Delete(projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}

// AssignTeamToProject attaches the team to the project, detaching it from any
// previous project first. Both sides update atomically; repeating the call
// with the same arguments changes nothing.
func (s *ProjectService) AssignTeamToProject(actor *models.User, teamID, projectID uint64) error {
	if !authz.Allowed(actor.Role, authz.OpManageProjects) {
		return ErrOperationNotPermitted
	}

	if _, err := s.GetProject(projectID); err != nil {
		return err
	}
	if _, err := s.teamRepo.FindByID(teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to find team: %w", err)
	}

	if err := s.projectRepo.AssignTeam(teamID, projectID); err != nil {
		return fmt.Errorf("failed to assign team to project: %w", err)
	}

	return nil
}

// RemoveTeamFromProject detaches the team from its project.
func (s *ProjectService) RemoveTeamFromProject(actor *models.User, teamID uint64) error {
	if !authz.Allowed(actor.Role, authz.OpManageProjects) {
		return ErrOperationNotPermitted
	}

	if _, err := s.teamRepo.FindByID(teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to find team: %w", err)
	}

	if err := s.projectRepo.DetachTeam(teamID); err != nil {
		return fmt.Errorf("failed to detach team from project: %w", err)
	}

	return nil
}
