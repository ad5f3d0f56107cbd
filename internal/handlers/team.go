package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/swapnilgupta14/synapse-api/internal/dto"
	apierrors "github.com/swapnilgupta14/synapse-api/internal/errors"
	"github.com/swapnilgupta14/synapse-api/internal/middleware"
	"github.com/swapnilgupta14/synapse-api/internal/services"
)

type TeamHandler struct {
	teamService *services.TeamService
}

func NewTeamHandler(teamService *services.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

func (h *TeamHandler) respondTeamError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrOperationNotPermitted):
		apierrors.Forbidden(c, "")
	case errors.Is(err, services.ErrTeamNotFound):
		apierrors.NotFound(c, "Team not found")
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, "Project not found")
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, services.ErrNotTeamMember):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInvalidTeamName),
		errors.Is(err, services.ErrAdminCannotJoinTeam),
		errors.Is(err, services.ErrRoleNotToggleable):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}

// CreateTeam creates a new team
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateTeamRequest struct {
		Name        string  `json:"name" binding:"required"`
		Description string  `json:"description"`
		ProjectID   *uint64 `json:"project_id"`
	}

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	team, err := h.teamService.CreateTeam(actor, services.CreateTeamInput{
		Name:        req.Name,
		Description: req.Description,
		ProjectID:   req.ProjectID,
	})
	if err != nil {
		h.respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewTeamDTO(team))
}

// ListTeams lists all teams
func (h *TeamHandler) ListTeams(c *gin.Context) {
	teams, err := h.teamService.ListTeams()
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"teams": dto.NewTeamDTOs(teams)})
}

// GetTeam returns a team with its members
func (h *TeamHandler) GetTeam(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	team, err := h.teamService.GetTeam(teamID)
	if err != nil {
		h.respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTeamDTO(team))
}

// UpdateTeam merges partial fields into a team
func (h *TeamHandler) UpdateTeam(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type UpdateTeamRequest struct {
		Name           *string `json:"name"`
		Description    *string `json:"description"`
		ProjectID      *uint64 `json:"project_id"`
		ClearProjectID bool    `json:"clear_project_id"`
	}

	var req UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	team, err := h.teamService.UpdateTeam(actor, teamID, services.UpdateTeamInput{
		Name:           req.Name,
		Description:    req.Description,
		ProjectID:      req.ProjectID,
		ClearProjectID: req.ClearProjectID,
	})
	if err != nil {
		h.respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTeamDTO(team))
}

// DeleteTeam removes a team, unlinking members and project
func (h *TeamHandler) DeleteTeam(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.teamService.DeleteTeam(actor, teamID); err != nil {
		h.respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Team deleted"})
}

// AddMembers links users to the team
func (h *TeamHandler) AddMembers(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type AddMembersRequest struct {
		UserIDs []uint64 `json:"user_ids" binding:"required,min=1"`
	}

	var req AddMembersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	team, err := h.teamService.AddMembers(actor, teamID, req.UserIDs)
	if err != nil {
		h.respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTeamDTO(team))
}

// RemoveMembers unlinks users from the team
func (h *TeamHandler) RemoveMembers(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type RemoveMembersRequest struct {
		UserIDs []uint64 `json:"user_ids" binding:"required,min=1"`
	}

	var req RemoveMembersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	team, err := h.teamService.RemoveMembers(actor, teamID, req.UserIDs)
	if err != nil {
		h.respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTeamDTO(team))
}

// ToggleMemberRole flips a member between team member and team manager
func (h *TeamHandler) ToggleMemberRole(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	team, err := h.teamService.ToggleMemberRole(actor, teamID, userID)
	if err != nil {
		h.respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTeamDTO(team))
}
