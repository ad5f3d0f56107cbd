package scheduler

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/swapnilgupta14/synapse-api/internal/models"
	"github.com/swapnilgupta14/synapse-api/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type ArchiveSweeperTestSuite struct {
	suite.Suite
	db      *gorm.DB
	sweeper *ArchiveSweeper
}

func (suite *ArchiveSweeperTestSuite) SetupTest() {
	var err error
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(&models.User{}, &models.Team{}, &models.Task{}, &models.ArchivedTask{})
	suite.Require().NoError(err)

	suite.sweeper = NewArchiveSweeper(repository.NewTaskRepository(suite.db), time.Hour)
}

func (suite *ArchiveSweeperTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *ArchiveSweeperTestSuite) createTask(title string, dueDate *time.Time) *models.Task {
	task := &models.Task{
		PublicID:   uuid.NewString(),
		Title:      title,
		Priority:   models.TaskPriorityMedium,
		Status:     models.TaskStatusPending,
		DueDate:    dueDate,
		CreatedBy:  1,
		AssignedTo: 1,
	}
	suite.db.Create(task)
	return task
}

func (suite *ArchiveSweeperTestSuite) TestSweep_ArchivesOnlyOverdue() {
	now := time.Now()
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	overdue := suite.createTask("Overdue", &past)
	suite.createTask("Future", &future)
	suite.createTask("No due date", nil)

	suite.sweeper.Sweep(now)

	var remaining int64
	suite.db.Model(&models.Task{}).Count(&remaining)
	assert.Equal(suite.T(), int64(2), remaining)

	var archived []models.ArchivedTask
	suite.db.Find(&archived)
	suite.Require().Len(archived, 1)
	assert.Equal(suite.T(), overdue.ID, archived[0].TaskID)
	assert.Equal(suite.T(), models.TaskStatusArchived, archived[0].Status)
}

func (suite *ArchiveSweeperTestSuite) TestSweep_NothingOverdueIsNoOp() {
	future := time.Now().Add(24 * time.Hour)
	suite.createTask("Future", &future)

	suite.sweeper.Sweep(time.Now())

	var remaining int64
	suite.db.Model(&models.Task{}).Count(&remaining)
	assert.Equal(suite.T(), int64(1), remaining)
}

func (suite *ArchiveSweeperTestSuite) TestStartStop() {
	suite.sweeper.Start()
	suite.sweeper.Stop()

	// Stopping twice must not block or panic
	suite.sweeper.Stop()
}

func TestArchiveSweeperTestSuite(t *testing.T) {
	suite.Run(t, new(ArchiveSweeperTestSuite))
}
