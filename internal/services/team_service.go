package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/swapnilgupta14/synapse-api/internal/authz"
	"github.com/swapnilgupta14/synapse-api/internal/models"
	"github.com/swapnilgupta14/synapse-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrInvalidTeamName     = errors.New("team name cannot be empty")
	ErrNotTeamMember       = errors.New("user is not a member of the team")
	ErrAdminCannotJoinTeam = errors.New("admin users cannot join a team")
	ErrRoleNotToggleable   = errors.New("only team members and team managers can be toggled")
)

// TeamService provides business logic for teams, their membership, and the
// single-manager rule.
type TeamService struct {
	teamRepo    repository.TeamRepository
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
}

// NewTeamService creates a new TeamService.
func NewTeamService(teamRepo repository.TeamRepository, projectRepo repository.ProjectRepository, userRepo repository.UserRepository) *TeamService {
	return &TeamService{
		teamRepo:    teamRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

// CreateTeamInput represents parameters to create a new team.
type CreateTeamInput struct {
	Name        string
	Description string
	ProjectID   *uint64
}

// CreateTeam creates a team with no members. A project reference, when
// present, is resolved before anything is written, then goes through the same
// assign flow as a later attach so the project side stays in sync.
func (s *TeamService) CreateTeam(actor *models.User, input CreateTeamInput) (*models.Team, error) {
	if !authz.Allowed(actor.Role, authz.OpManageTeams) {
		return nil, ErrOperationNotPermitted
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidTeamName
	}

	if input.ProjectID != nil {
		if _, err := s.projectRepo.FindByID(*input.ProjectID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProjectNotFound
			}
			return nil, fmt.Errorf("failed to find project: %w", err)
		}
	}

	team := &models.Team{
		Name:        input.Name,
		Description: input.Description,
	}

	if err := s.teamRepo.Create(team); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	if input.ProjectID != nil {
		if err := s.projectRepo.AssignTeam(team.ID, *input.ProjectID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProjectNotFound
			}
			return nil, fmt.Errorf("failed to assign team to project: %w", err)
		}
		team.ProjectID = input.ProjectID
	}

	return team, nil
}

// GetTeam returns a team with its members.
func (s *TeamService) GetTeam(teamID uint64) (*models.Team, error) {
	team, err := s.teamRepo.FindByID(teamID, "Members")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to find team: %w", err)
	}
	return team, nil
}

// ListTeams lists all teams.
func (s *TeamService) ListTeams() ([]models.Team, error) {
	teams, err := s.teamRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

// UpdateTeamInput holds the mutable team fields.
type UpdateTeamInput struct {
	Name           *string
	Description    *string
	ProjectID      *uint64
	ClearProjectID bool
}

// UpdateTeam merges the partial input. A project change re-runs the
// assign/detach sequence before any other field is touched, keeping the
// project<->team references in agreement.
func (s *TeamService) UpdateTeam(actor *models.User, teamID uint64, input UpdateTeamInput) (*models.Team, error) {
	if !authz.Allowed(actor.Role, authz.OpManageTeams) {
		return nil, ErrOperationNotPermitted
	}

	team, err := s.GetTeam(teamID)
	if err != nil {
		return nil, err
	}

	switch {
	case input.ClearProjectID:
		if team.ProjectID != nil {
			if err := s.projectRepo.DetachTeam(teamID); err != nil {
				return nil, fmt.Errorf("failed to detach team from project: %w", err)
			}
			team.ProjectID = nil
		}
	case input.ProjectID != nil:
		if team.ProjectID == nil || *team.ProjectID != *input.ProjectID {
			if err := s.projectRepo.AssignTeam(teamID, *input.ProjectID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, ErrProjectNotFound
				}
				return nil, fmt.Errorf("failed to assign team to project: %w", err)
			}
			team.ProjectID = input.ProjectID
		}
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrInvalidTeamName
		}
		team.Name = *input.Name
	}
	if input.Description != nil {
		team.Description = *input.Description
	}

	if err := s.teamRepo.Update(team); err != nil {
		return nil, fmt.Errorf("failed to update team: %w", err)
	}

	return team, nil
}

// DeleteTeam removes the team. Every member loses the team link and the
// owning project, if any, loses its reference — all in one transaction.
func (s *TeamService) DeleteTeam(actor *models.User, teamID uint64) error {
	if !authz.Allowed(actor.Role, authz.OpManageTeams) {
		return ErrOperationNotPermitted
	}

	if _, err := s.GetTeam(teamID); err != nil {
		return err
	}

	if err := s.teamRepo.Delete(teamID); err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}

	return nil
}

// AddMembers links the given users to the team. Adding a user who is
// already a member changes nothing. Admin users never join teams.
func (s *TeamService) AddMembers(actor *models.User, teamID uint64, userIDs []uint64) (*models.Team, error) {
	if !authz.Allowed(actor.Role, authz.OpManageTeams) {
		return nil, ErrOperationNotPermitted
	}

	if _, err := s.GetTeam(teamID); err != nil {
		return nil, err
	}

	users, err := s.userRepo.FindByIDs(uniqueUint64(userIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to look up users: %w", err)
	}
	if len(users) != len(uniqueUint64(userIDs)) {
		return nil, ErrUserNotFound
	}
	for _, u := range users {
		if u.Role == models.RoleAdmin {
			return nil, ErrAdminCannotJoinTeam
		}
	}

	if err := s.teamRepo.AddMembers(teamID, users); err != nil {
		return nil, fmt.Errorf("failed to add team members: %w", err)
	}

	return s.GetTeam(teamID)
}

// RemoveMembers unlinks the users from the team; absent users are a no-op.
// Removing the current manager clears the manager seat.
func (s *TeamService) RemoveMembers(actor *models.User, teamID uint64, userIDs []uint64) (*models.Team, error) {
	if !authz.Allowed(actor.Role, authz.OpManageTeams) {
		return nil, ErrOperationNotPermitted
	}

	team, err := s.GetTeam(teamID)
	if err != nil {
		return nil, err
	}

	ids := uniqueUint64(userIDs)

	if err := s.teamRepo.RemoveMembers(teamID, ids); err != nil {
		return nil, fmt.Errorf("failed to remove team members: %w", err)
	}

	if team.TeamManagerID != nil {
		for _, id := range ids {
			if *team.TeamManagerID != id {
				continue
			}
			manager, err := s.userRepo.FindByID(id)
			if err != nil {
				return nil, fmt.Errorf("failed to find outgoing manager: %w", err)
			}
			manager.Role = models.RoleTeamMember
			team.TeamManagerID = nil
			if err := s.teamRepo.SaveManagerChange(team, manager); err != nil {
				return nil, fmt.Errorf("failed to clear team manager: %w", err)
			}
			break
		}
	}

	return s.GetTeam(teamID)
}

// ToggleMemberRole flips a member between team member and team manager. A
// team holds at most one manager: promoting a member while a manager exists
// demotes the incumbent in the same transaction.
func (s *TeamService) ToggleMemberRole(actor *models.User, teamID, userID uint64) (*models.Team, error) {
	if !authz.Allowed(actor.Role, authz.OpManageTeams) {
		return nil, ErrOperationNotPermitted
	}

	team, err := s.GetTeam(teamID)
	if err != nil {
		return nil, err
	}
	if !team.HasMember(userID) {
		return nil, ErrNotTeamMember
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	switch user.Role {
	case models.RoleTeamManager:
		// Demotion. Clear the seat only if this user holds it.
		user.Role = models.RoleTeamMember
		if team.TeamManagerID != nil && *team.TeamManagerID == userID {
			team.TeamManagerID = nil
		}
		if err := s.teamRepo.SaveManagerChange(team, user); err != nil {
			return nil, fmt.Errorf("failed to demote team manager: %w", err)
		}
	case models.RoleTeamMember:
		changed := []*models.User{user}
		if team.TeamManagerID != nil && *team.TeamManagerID != userID {
			incumbent, err := s.userRepo.FindByID(*team.TeamManagerID)
			if err != nil {
				return nil, fmt.Errorf("failed to find incumbent manager: %w", err)
			}
			incumbent.Role = models.RoleTeamMember
			changed = append(changed, incumbent)
		}
		user.Role = models.RoleTeamManager
		team.TeamManagerID = &user.ID
		if err := s.teamRepo.SaveManagerChange(team, changed...); err != nil {
			return nil, fmt.Errorf("failed to promote team manager: %w", err)
		}
	default:
		return nil, ErrRoleNotToggleable
	}

	return s.GetTeam(teamID)
}
