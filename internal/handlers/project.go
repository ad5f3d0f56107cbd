package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/swapnilgupta14/synapse-api/internal/dto"
	apierrors "github.com/swapnilgupta14/synapse-api/internal/errors"
	"github.com/swapnilgupta14/synapse-api/internal/middleware"
	"github.com/swapnilgupta14/synapse-api/internal/models"
	"github.com/swapnilgupta14/synapse-api/internal/services"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

func (h *ProjectHandler) respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrOperationNotPermitted):
		apierrors.Forbidden(c, "")
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, "Project not found")
	case errors.Is(err, services.ErrTeamNotFound):
		apierrors.NotFound(c, "Team not found")
	case errors.Is(err, services.ErrInvalidProjectName),
		errors.Is(err, services.ErrInvalidProjectStatus):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}

// CreateProject creates a new project in planning status
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateProjectRequest struct {
		Name             string     `json:"name" binding:"required"`
		OrganizationID   uint64     `json:"organization_id" binding:"required"`
		ProjectManagerID *uint64    `json:"project_manager_id"`
		StartDate        *time.Time `json:"start_date"`
		EndDate          *time.Time `json:"end_date"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	project, err := h.projectService.CreateProject(actor, services.CreateProjectInput{
		Name:             req.Name,
		OrganizationID:   req.OrganizationID,
		ProjectManagerID: req.ProjectManagerID,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
	})
	if err != nil {
		h.respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewProjectDTO(project))
}

// ListProjects lists projects, optionally filtered by organisation
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	var organizationID *uint64
	if raw := c.Query("organization_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid organization_id")
			return
		}
		organizationID = &id
	}

	projects, err := h.projectService.ListProjects(organizationID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": dto.NewProjectDTOs(projects)})
}

// GetProject returns a project with its teams
func (h *ProjectHandler) GetProject(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	project, err := h.projectService.GetProject(projectID)
	if err != nil {
		h.respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewProjectDTO(project))
}

// UpdateProject merges partial fields into a project
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type UpdateProjectRequest struct {
		Name             *string               `json:"name"`
		ProjectManagerID *uint64               `json:"project_manager_id"`
		Status           *models.ProjectStatus `json:"status"`
		StartDate        *time.Time            `json:"start_date"`
		EndDate          *time.Time            `json:"end_date"`
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	project, err := h.projectService.UpdateProject(actor, projectID, services.UpdateProjectInput{
		Name:             req.Name,
		ProjectManagerID: req.ProjectManagerID,
		Status:           req.Status,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
	})
	if err != nil {
		h.respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewProjectDTO(project))
}

// DeleteProject removes a project, leaving its teams unassigned
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.projectService.DeleteProject(actor, projectID); err != nil {
		h.respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted"})
}

// AssignTeam attaches a team to the project
func (h *ProjectHandler) AssignTeam(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type AssignTeamRequest struct {
		TeamID uint64 `json:"team_id" binding:"required"`
	}

	var req AssignTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	if err := h.projectService.AssignTeamToProject(actor, req.TeamID, projectID); err != nil {
		h.respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Team assigned"})
}

// DetachTeam removes a team from its project
func (h *ProjectHandler) DetachTeam(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	teamID, ok := parseIDParam(c, "team_id")
	if !ok {
		return
	}

	if err := h.projectService.RemoveTeamFromProject(actor, teamID); err != nil {
		h.respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Team detached"})
}
