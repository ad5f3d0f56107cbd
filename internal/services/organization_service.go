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
	ErrOrganizationNotFound    = errors.New("organisation not found")
	ErrInvalidOrganizationName = errors.New("organisation name cannot be empty")
	ErrAdminCannotBeMember     = errors.New("admin users cannot join an organisation")
	ErrOperationNotPermitted   = errors.New("role does not permit this operation")
)

// OrganizationService provides business logic for organisation membership.
// Both sides of the membership relation (the organisation's roster and the
// user's organisation link) live on users.organization_id, so they can never
// disagree.
type OrganizationService struct {
	orgRepo  repository.OrganizationRepository
	userRepo repository.UserRepository
}

// NewOrganizationService creates a new OrganizationService.
func NewOrganizationService(orgRepo repository.OrganizationRepository, userRepo repository.UserRepository) *OrganizationService {
	return &OrganizationService{
		orgRepo:  orgRepo,
		userRepo: userRepo,
	}
}

// CreateOrganizationInput represents parameters to create a new organisation.
type CreateOrganizationInput struct {
	Name    string
	OwnerID uint64
}

// CreateOrganization creates a new organisation owned by the given user.
func (s *OrganizationService) CreateOrganization(input CreateOrganizationInput) (*models.Organization, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidOrganizationName
	}

	org := &models.Organization{
		Name:    input.Name,
		OwnerID: input.OwnerID,
	}

	if err := s.orgRepo.Create(org); err != nil {
		return nil, fmt.Errorf("failed to create organisation: %w", err)
	}

	return org, nil
}

// GetOrganization returns an organisation by ID.
func (s *OrganizationService) GetOrganization(orgID uint64) (*models.Organization, error) {
	org, err := s.orgRepo.FindByID(orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to find organisation: %w", err)
	}
	return org, nil
}

// UpdateOrganizationInput represents updatable organisation fields. Nil
// fields are left unchanged.
type UpdateOrganizationInput struct {
	Name *string
}

// UpdateOrganization renames an organisation.
func (s *OrganizationService) UpdateOrganization(actor *models.User, orgID uint64, input UpdateOrganizationInput) (*models.Organization, error) {
	if !authz.Allowed(actor.Role, authz.OpManageOrganisations) {
		return nil, ErrOperationNotPermitted
	}

	org, err := s.GetOrganization(orgID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrInvalidOrganizationName
		}
		org.Name = *input.Name
	}

	if err := s.orgRepo.Update(org); err != nil {
		return nil, fmt.Errorf("failed to update organisation: %w", err)
	}

	return org, nil
}

// DeleteOrganization removes an organisation. Its members are released, not
// deleted: their organisation link is cleared in the same transaction.
func (s *OrganizationService) DeleteOrganization(actor *models.User, orgID uint64) error {
	if !authz.Allowed(actor.Role, authz.OpManageOrganisations) {
		return ErrOperationNotPermitted
	}

	if _, err := s.GetOrganization(orgID); err != nil {
		return err
	}

	if err := s.orgRepo.Delete(orgID); err != nil {
		return fmt.Errorf("failed to delete organisation: %w", err)
	}

	return nil
}

// ListMembers returns all non-admin users belonging to the organisation.
func (s *OrganizationService) ListMembers(orgID uint64) ([]models.User, error) {
	if _, err := s.GetOrganization(orgID); err != nil {
		return nil, err
	}

	members, err := s.orgRepo.ListMembers(orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list organisation members: %w", err)
	}
	return members, nil
}

// AddMembersResult reports the outcome of an AddMembers call. Duplicates are
// skipped, not failed: the operation succeeds for the remaining candidates
// and the skipped count is surfaced to the caller.
type AddMembersResult struct {
	Added      []models.User
	Duplicates int
}

// AddMembers links the users identified by the given emails to the
// organisation. Users already in the organisation count as duplicates.
func (s *OrganizationService) AddMembers(actor *models.User, orgID uint64, emails []string) (*AddMembersResult, error) {
	if !authz.Allowed(actor.Role, authz.OpManageOrganisationMembers) {
		return nil, ErrOperationNotPermitted
	}

	if _, err := s.GetOrganization(orgID); err != nil {
		return nil, err
	}

	result := &AddMembersResult{}
	var addIDs []uint64

	for _, email := range emails {
		email = strings.ToLower(strings.TrimSpace(email))
		if email == "" {
			continue
		}

		user, err := s.userRepo.FindByEmail(email)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrUserNotFound, email)
			}
			return nil, fmt.Errorf("failed to look up user: %w", err)
		}

		if user.Role == models.RoleAdmin {
			return nil, ErrAdminCannotBeMember
		}

		if user.OrganizationID != nil && *user.OrganizationID == orgID {
			result.Duplicates++
			continue
		}

		addIDs = append(addIDs, user.ID)
		result.Added = append(result.Added, *user)
	}

	if err := s.orgRepo.AddMembers(orgID, addIDs); err != nil {
		return nil, fmt.Errorf("failed to add members: %w", err)
	}

	for i := range result.Added {
		id := orgID
		result.Added[i].OrganizationID = &id
	}

	return result, nil
}

// RemoveMember unlinks a member identified by user ID or email. Removing an
// absent member is a no-op, not an error.
func (s *OrganizationService) RemoveMember(actor *models.User, orgID uint64, userID uint64, email string) error {
	if !authz.Allowed(actor.Role, authz.OpManageOrganisationMembers) {
		return ErrOperationNotPermitted
	}

	if _, err := s.GetOrganization(orgID); err != nil {
		return err
	}

	if userID == 0 && email != "" {
		user, err := s.userRepo.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return fmt.Errorf("failed to look up user: %w", err)
		}
		userID = user.ID
	}
	if userID == 0 {
		return nil
	}

	if err := s.orgRepo.RemoveMember(orgID, userID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	return nil
}
