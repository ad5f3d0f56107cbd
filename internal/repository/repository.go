package repository

import (
	"time"

	"github.com/swapnilgupta14/synapse-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// FindByIDs returns the users matching the given IDs
	FindByIDs(ids []uint64) ([]models.User, error)

	// Update updates a user
	Update(user *models.User) error
}

// OrganizationRepository defines the interface for organisation data access
type OrganizationRepository interface {
	// Create creates a new organisation
	Create(org *models.Organization) error

	// FindByID finds an organisation by ID
	FindByID(id uint64) (*models.Organization, error)

	// Update updates an organisation
	Update(org *models.Organization) error

	// Delete deletes an organisation
	Delete(id uint64) error

	// ListMembers lists the organisation's members, excluding admins
	ListMembers(organizationID uint64) ([]models.User, error)

	// AddMembers links the given users to the organisation in one transaction
	AddMembers(organizationID uint64, userIDs []uint64) error

	// RemoveMember clears the user's organisation link
	RemoveMember(organizationID, userID uint64) error
}

// ProjectRepository defines the interface for project data access.
// Team attach/detach lives here because both sides of the project<->team
// relationship must change together.
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a project by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Project, error)

	// List lists projects, optionally scoped to an organisation
	List(organizationID *uint64) ([]models.Project, error)

	// Update updates a project
	Update(project *models.Project) error

	// Delete removes the project and unassigns its teams in one transaction
	Delete(id uint64) error

	// AssignTeam detaches the team from any previous project and attaches it
	// to the given one, atomically
	AssignTeam(teamID, projectID uint64) error

	// DetachTeam clears the team's project link
	DetachTeam(teamID uint64) error
}

// TeamRepository defines the interface for team data access
type TeamRepository interface {
	// Create creates a new team
	Create(team *models.Team) error

	// FindByID finds a team by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Team, error)

	// List lists all teams
	List() ([]models.Team, error)

	// Update updates a team
	Update(team *models.Team) error

	// Delete removes the team, its membership rows, and its project link in
	// one transaction
	Delete(id uint64) error

	// AddMembers links users to the team; already-linked users are untouched
	AddMembers(teamID uint64, users []models.User) error

	// RemoveMembers unlinks users from the team; absent users are untouched
	RemoveMembers(teamID uint64, userIDs []uint64) error

	// SaveManagerChange persists a manager promotion/demotion: the team row
	// and every affected user role change commit together
	SaveManagerChange(team *models.Team, users ...*models.User) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	OrganizationID *uint64
	ProjectID      *uint64
	TeamID         *uint64
	CreatedBy      *uint64
	AssignedTo     *uint64
	Status         *models.TaskStatus
	Priority       *models.TaskPriority
	Category       *string
	DueBefore      *time.Time
	SortByDueDate  bool
	Page           int
	PageSize       int
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// CreateBatch creates several tasks in one transaction
	CreateBatch(tasks []*models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// FindByPublicID finds a task by its client-visible UUID
	FindByPublicID(publicID string) (*models.Task, error)

	// FindByIDs returns the active tasks matching the given IDs
	FindByIDs(ids []uint64) ([]models.Task, error)

	// List retrieves tasks with filtering and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// ListAll returns the whole active collection (statistics input)
	ListAll() ([]models.Task, error)

	// ListOverdue returns non-archived tasks whose due date has passed
	ListOverdue(now time.Time) ([]models.Task, error)

	// Update updates a task
	Update(task *models.Task) error

	// UpdateBatch applies the column updates to every matched task
	UpdateBatch(ids []uint64, updates map[string]interface{}) (int64, error)

	// Reassign moves tasks currently assigned to from over to to, returning
	// the number of rows changed
	Reassign(ids []uint64, from, to uint64) (int64, error)

	// Delete soft deletes a task
	Delete(id uint64) error

	// Archive copies the tasks into the archive collection and removes them
	// from the active one, atomically
	Archive(tasks []models.Task, now time.Time) error

	// ListArchived returns the archive collection, newest first
	ListArchived() ([]models.ArchivedTask, error)
}
