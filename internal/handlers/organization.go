package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/swapnilgupta14/synapse-api/internal/dto"
	apierrors "github.com/swapnilgupta14/synapse-api/internal/errors"
	"github.com/swapnilgupta14/synapse-api/internal/middleware"
	"github.com/swapnilgupta14/synapse-api/internal/services"
)

type OrganizationHandler struct {
	orgService *services.OrganizationService
}

func NewOrganizationHandler(orgService *services.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{orgService: orgService}
}

// CreateOrganization creates a new organisation owned by the caller
func (h *OrganizationHandler) CreateOrganization(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateOrganizationRequest struct {
		Name string `json:"name" binding:"required"`
	}

	var req CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	org, err := h.orgService.CreateOrganization(services.CreateOrganizationInput{
		Name:    req.Name,
		OwnerID: actor.ID,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidOrganizationName) {
			apierrors.BadRequest(c, err.Error())
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusCreated, dto.NewOrganizationDTO(org))
}

// GetOrganization returns one organisation
func (h *OrganizationHandler) GetOrganization(c *gin.Context) {
	orgID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	org, err := h.orgService.GetOrganization(orgID)
	if err != nil {
		if errors.Is(err, services.ErrOrganizationNotFound) {
			apierrors.NotFound(c, "Organisation not found")
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.NewOrganizationDTO(org))
}

// UpdateOrganization renames an organisation
func (h *OrganizationHandler) UpdateOrganization(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	orgID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type UpdateOrganizationRequest struct {
		Name *string `json:"name"`
	}

	var req UpdateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	org, err := h.orgService.UpdateOrganization(actor, orgID, services.UpdateOrganizationInput{
		Name: req.Name,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOperationNotPermitted):
			apierrors.Forbidden(c, "")
		case errors.Is(err, services.ErrOrganizationNotFound):
			apierrors.NotFound(c, "Organisation not found")
		case errors.Is(err, services.ErrInvalidOrganizationName):
			apierrors.BadRequest(c, err.Error())
		default:
			apierrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, dto.NewOrganizationDTO(org))
}

// DeleteOrganization removes an organisation and releases its members
func (h *OrganizationHandler) DeleteOrganization(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	orgID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.orgService.DeleteOrganization(actor, orgID); err != nil {
		switch {
		case errors.Is(err, services.ErrOperationNotPermitted):
			apierrors.Forbidden(c, "")
		case errors.Is(err, services.ErrOrganizationNotFound):
			apierrors.NotFound(c, "Organisation not found")
		default:
			apierrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Organisation deleted"})
}

// ListMembers returns the organisation's member roster
func (h *OrganizationHandler) ListMembers(c *gin.Context) {
	orgID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	members, err := h.orgService.ListMembers(orgID)
	if err != nil {
		if errors.Is(err, services.ErrOrganizationNotFound) {
			apierrors.NotFound(c, "Organisation not found")
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"members": dto.NewUserDTOs(members)})
}

// AddMembers links users (by email) to the organisation. Duplicates are
// skipped; their count comes back in the response.
func (h *OrganizationHandler) AddMembers(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	orgID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type AddMembersRequest struct {
		Emails []string `json:"emails" binding:"required,min=1"`
	}

	var req AddMembersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	result, err := h.orgService.AddMembers(actor, orgID, req.Emails)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOperationNotPermitted):
			apierrors.Forbidden(c, "")
		case errors.Is(err, services.ErrOrganizationNotFound):
			apierrors.NotFound(c, "Organisation not found")
		case errors.Is(err, services.ErrUserNotFound):
			apierrors.NotFound(c, err.Error())
		case errors.Is(err, services.ErrAdminCannotBeMember):
			apierrors.BadRequest(c, err.Error())
		default:
			apierrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"added":      dto.NewUserDTOs(result.Added),
		"duplicates": result.Duplicates,
	})
}

// RemoveMember unlinks a member by user ID or email
func (h *OrganizationHandler) RemoveMember(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	orgID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var userID uint64
	if raw := c.Param("user_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid user ID")
			return
		}
		userID = id
	}
	email := c.Query("email")

	if err := h.orgService.RemoveMember(actor, orgID, userID, email); err != nil {
		switch {
		case errors.Is(err, services.ErrOperationNotPermitted):
			apierrors.Forbidden(c, "")
		case errors.Is(err, services.ErrOrganizationNotFound):
			apierrors.NotFound(c, "Organisation not found")
		default:
			apierrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member removed"})
}

// parseIDParam reads a numeric URL parameter, replying 400 on garbage.
func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}
