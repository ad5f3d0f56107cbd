package repository

import (
	"github.com/swapnilgupta14/synapse-api/internal/models"
	"gorm.io/gorm"
)

// GormTeamRepository is a GORM implementation of TeamRepository
type GormTeamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new TeamRepository
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &GormTeamRepository{db: db}
}

// Create creates a new team
func (r *GormTeamRepository) Create(team *models.Team) error {
	return r.db.Create(team).Error
}

// FindByID finds a team by ID with optional preloading
func (r *GormTeamRepository) FindByID(id uint64, preload ...string) (*models.Team, error) {
	var team models.Team
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&team, id).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

// List lists all teams
func (r *GormTeamRepository) List() ([]models.Team, error) {
	var teams []models.Team
	if err := r.db.Preload("Members").Order("created_at DESC").Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}

// Update updates a team
func (r *GormTeamRepository) Update(team *models.Team) error {
	return r.db.Omit("Members").Save(team).Error
}

// Delete removes the team, its membership rows, and its project link in one
// transaction. Member user records keep everything except the team link.
func (r *GormTeamRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		team := models.Team{ID: id}
		if err := tx.Model(&team).Association("Members").Clear(); err != nil {
			return err
		}
		return tx.Delete(&models.Team{}, id).Error
	})
}

// AddMembers links users to the team. The join table upsert makes re-adding
// an existing member a no-op.
func (r *GormTeamRepository) AddMembers(teamID uint64, users []models.User) error {
	if len(users) == 0 {
		return nil
	}
	team := models.Team{ID: teamID}
	refs := make([]*models.User, len(users))
	for i := range users {
		refs[i] = &models.User{ID: users[i].ID}
	}
	return r.db.Model(&team).Omit("Members.*").Association("Members").Append(refs)
}

// RemoveMembers unlinks users from the team; absent users are untouched
func (r *GormTeamRepository) RemoveMembers(teamID uint64, userIDs []uint64) error {
	if len(userIDs) == 0 {
		return nil
	}
	team := models.Team{ID: teamID}
	refs := make([]*models.User, len(userIDs))
	for i, id := range userIDs {
		refs[i] = &models.User{ID: id}
	}
	return r.db.Model(&team).Association("Members").Delete(refs)
}

// SaveManagerChange persists a manager promotion/demotion: the team row and
// every affected user role change commit together.
func (r *GormTeamRepository) SaveManagerChange(team *models.Team, users ...*models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Members").Save(team).Error; err != nil {
			return err
		}
		for _, u := range users {
			if err := tx.Model(&models.User{}).
				Where("id = ?", u.ID).
				Update("role", u.Role).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
