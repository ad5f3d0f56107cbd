package repository

import (
	"time"

	"github.com/swapnilgupta14/synapse-api/internal/database"
	"github.com/swapnilgupta14/synapse-api/internal/models"
	"github.com/swapnilgupta14/synapse-api/internal/utils"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// CreateBatch creates several tasks in one transaction
func (r *GormTaskRepository) CreateBatch(tasks []*models.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, task := range tasks {
			if err := tx.Create(task).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// FindByPublicID finds a task by its client-visible UUID
func (r *GormTaskRepository) FindByPublicID(publicID string) (*models.Task, error) {
	var task models.Task
	if err := r.db.Where("public_id = ?", publicID).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// FindByIDs returns the active tasks matching the given IDs
func (r *GormTaskRepository) FindByIDs(ids []uint64) ([]models.Task, error) {
	var tasks []models.Task
	if len(ids) == 0 {
		return tasks, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// List retrieves tasks with filtering and pagination
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{})

	if filter.OrganizationID != nil {
		query = query.Where("tasks.organization_id = ?", *filter.OrganizationID)
	}
	if filter.ProjectID != nil {
		query = query.Where("tasks.project_id = ?", *filter.ProjectID)
	}
	if filter.TeamID != nil {
		query = query.Where("tasks.team_id = ?", *filter.TeamID)
	}
	if filter.CreatedBy != nil {
		query = query.Where("tasks.created_by = ?", *filter.CreatedBy)
	}
	if filter.AssignedTo != nil {
		query = query.Where("tasks.assigned_to = ?", *filter.AssignedTo)
	}
	if filter.Status != nil {
		query = query.Where("tasks.status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("tasks.priority = ?", *filter.Priority)
	}
	if filter.Category != nil {
		query = query.Where("tasks.category = ?", *filter.Category)
	}
	if filter.DueBefore != nil {
		query = query.Where("tasks.due_date < ?", *filter.DueBefore)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query
	if filter.SortByDueDate {
		listQuery = listQuery.Order("CASE WHEN tasks.due_date IS NULL THEN 1 ELSE 0 END, tasks.due_date ASC")
	} else {
		listQuery = listQuery.Order("tasks.created_at DESC")
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		listQuery = listQuery.Scopes(database.Paginate(utils.PaginationParams{
			Page:   filter.Page,
			Limit:  filter.PageSize,
			Offset: (filter.Page - 1) * filter.PageSize,
		}))
	}

	if err := listQuery.Preload("Creator").Preload("Assignee").Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// ListAll returns the whole active collection
func (r *GormTaskRepository) ListAll() ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListOverdue returns non-archived tasks whose due date has passed
func (r *GormTaskRepository) ListOverdue(now time.Time) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.
		Where("due_date IS NOT NULL AND due_date < ?", now).
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// UpdateBatch applies the column updates to every matched task
func (r *GormTaskRepository) UpdateBatch(ids []uint64, updates map[string]interface{}) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.Model(&models.Task{}).
		Where("id IN ?", ids).
		Updates(updates)
	return result.RowsAffected, result.Error
}

// Reassign moves tasks currently assigned to from over to to
func (r *GormTaskRepository) Reassign(ids []uint64, from, to uint64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.Model(&models.Task{}).
		Where("id IN ? AND assigned_to = ?", ids, from).
		Updates(map[string]interface{}{"assigned_to": to, "updated_at": time.Now()})
	return result.RowsAffected, result.Error
}

// Delete soft deletes a task
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Task{}, id).Error
}

// Archive copies the tasks into the archive collection and removes them from
// the active one, atomically
func (r *GormTaskRepository) Archive(tasks []models.Task, now time.Time) error {
	if len(tasks) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		ids := make([]uint64, len(tasks))
		for i := range tasks {
			ids[i] = tasks[i].ID
			if err := tx.Create(models.ArchiveTask(&tasks[i], now)).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Task{}, ids).Error
	})
}

// ListArchived returns the archive collection, newest first
func (r *GormTaskRepository) ListArchived() ([]models.ArchivedTask, error) {
	var archived []models.ArchivedTask
	if err := r.db.Order("archived_at DESC").Find(&archived).Error; err != nil {
		return nil, err
	}
	return archived, nil
}
