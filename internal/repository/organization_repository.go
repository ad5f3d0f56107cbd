package repository

import (
	"github.com/swapnilgupta14/synapse-api/internal/models"
	"gorm.io/gorm"
)

// GormOrganizationRepository is a GORM implementation of OrganizationRepository
type GormOrganizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository creates a new OrganizationRepository
func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &GormOrganizationRepository{db: db}
}

// Create creates a new organisation
func (r *GormOrganizationRepository) Create(org *models.Organization) error {
	return r.db.Create(org).Error
}

// FindByID finds an organisation by ID
func (r *GormOrganizationRepository) FindByID(id uint64) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.First(&org, id).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

// Update updates an organisation
func (r *GormOrganizationRepository) Update(org *models.Organization) error {
	return r.db.Save(org).Error
}

// Delete deletes an organisation and releases its members in a transaction
func (r *GormOrganizationRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).
			Where("organization_id = ?", id).
			Update("organization_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Organization{}, id).Error
	})
}

// ListMembers lists the organisation's members, excluding admins
func (r *GormOrganizationRepository) ListMembers(organizationID uint64) ([]models.User, error) {
	var members []models.User
	if err := r.db.
		Where("organization_id = ? AND role <> ?", organizationID, models.RoleAdmin).
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// AddMembers links the given users to the organisation in one transaction
func (r *GormOrganizationRepository) AddMembers(organizationID uint64, userIDs []uint64) error {
	if len(userIDs) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Model(&models.User{}).
			Where("id IN ?", userIDs).
			Update("organization_id", organizationID).Error
	})
}

// RemoveMember clears the user's organisation link
func (r *GormOrganizationRepository) RemoveMember(organizationID, userID uint64) error {
	return r.db.Model(&models.User{}).
		Where("id = ? AND organization_id = ?", userID, organizationID).
		Update("organization_id", nil).Error
}
