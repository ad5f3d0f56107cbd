package repository

import (
	"github.com/swapnilgupta14/synapse-api/internal/models"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project
func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// FindByID finds a project by ID with optional preloading
func (r *GormProjectRepository) FindByID(id uint64, preload ...string) (*models.Project, error) {
	var project models.Project
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// List lists projects, optionally scoped to an organisation
func (r *GormProjectRepository) List(organizationID *uint64) ([]models.Project, error) {
	var projects []models.Project
	query := r.db.Preload("Teams").Order("created_at DESC")
	if organizationID != nil {
		query = query.Where("organization_id = ?", *organizationID)
	}
	if err := query.Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// Update updates a project
func (r *GormProjectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// Delete removes the project and unassigns its teams in one transaction.
// Teams are orphaned, never cascade-deleted.
func (r *GormProjectRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Team{}).
			Where("project_id = ?", id).
			Update("project_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, id).Error
	})
}

// AssignTeam detaches the team from any previous project and attaches it to
// the given one. A single UPDATE flips the link, so both sides of the
// relationship change in one write.
func (r *GormProjectRepository) AssignTeam(teamID, projectID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Project{}, projectID).Error; err != nil {
			return err
		}
		return tx.Model(&models.Team{}).
			Where("id = ?", teamID).
			Update("project_id", projectID).Error
	})
}

// DetachTeam clears the team's project link
func (r *GormProjectRepository) DetachTeam(teamID uint64) error {
	return r.db.Model(&models.Team{}).
		Where("id = ?", teamID).
		Update("project_id", nil).Error
}
