package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/swapnilgupta14/synapse-api/internal/constants"
	"github.com/swapnilgupta14/synapse-api/internal/database"
	"github.com/swapnilgupta14/synapse-api/internal/models"
	"github.com/swapnilgupta14/synapse-api/internal/repository"
	"github.com/swapnilgupta14/synapse-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TaskHandlerTestSuite defines the test suite for TaskHandler
type TaskHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *TaskHandler
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.Project{},
		&models.Team{},
		&models.Task{},
		&models.ArchivedTask{},
	)
	suite.Require().NoError(err)

	// Set the test DB as the default database
	database.SetDB(suite.db)

	userRepo := repository.NewUserRepository(suite.db)
	teamRepo := repository.NewTeamRepository(suite.db)
	taskRepo := repository.NewTaskRepository(suite.db)
	suite.handler = NewTaskHandler(services.NewTaskService(taskRepo, teamRepo, userRepo))

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *TaskHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TaskHandlerTestSuite) createTestUser(email string, role models.UserRole) *models.User {
	user := &models.User{
		Username:     email,
		Email:        email,
		PasswordHash: "hashedpassword",
		Role:         role,
	}
	suite.db.Create(user)
	return user
}

func (suite *TaskHandlerTestSuite) createTestTask(title string, creatorID uint64, dueDate *time.Time) *models.Task {
	task := &models.Task{
		PublicID:   uuid.NewString(),
		Title:      title,
		Priority:   models.TaskPriorityMedium,
		Status:     models.TaskStatusPending,
		DueDate:    dueDate,
		CreatedBy:  creatorID,
		AssignedTo: creatorID,
	}
	suite.db.Create(task)
	return task
}

// Helper function to create authenticated context
func (suite *TaskHandlerTestSuite) createAuthContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, userID)

	return c, w
}

func (suite *TaskHandlerTestSuite) TestCreateTask() {
	user := suite.createTestUser("user@example.com", models.RoleTeamMember)

	body, _ := json.Marshal(map[string]interface{}{
		"title":    "Write report",
		"priority": "high",
	})
	c, w := suite.createAuthContext(http.MethodPost, "/api/tasks", body, user.ID)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response struct {
		Tasks []struct {
			Title    string `json:"title"`
			Priority string `json:"priority"`
			Status   string `json:"status"`
		} `json:"tasks"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	suite.Require().NoError(err)
	suite.Require().Len(response.Tasks, 1)
	assert.Equal(suite.T(), "Write report", response.Tasks[0].Title)
	assert.Equal(suite.T(), "high", response.Tasks[0].Priority)
	assert.Equal(suite.T(), "pending", response.Tasks[0].Status)
}

func (suite *TaskHandlerTestSuite) TestCreateTask_MissingTitle() {
	user := suite.createTestUser("user@example.com", models.RoleTeamMember)

	body, _ := json.Marshal(map[string]interface{}{"priority": "high"})
	c, w := suite.createAuthContext(http.MethodPost, "/api/tasks", body, user.ID)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestCreateTask_Unauthenticated() {
	body, _ := json.Marshal(map[string]interface{}{"title": "Write report"})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/tasks", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *TaskHandlerTestSuite) TestToggleStatus() {
	user := suite.createTestUser("user@example.com", models.RoleTeamMember)
	task := suite.createTestTask("Write report", user.ID, nil)

	c, w := suite.createAuthContext(http.MethodPost, "/api/tasks/1/toggle", nil, user.ID)
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(task.ID, 10)}}

	suite.handler.ToggleStatus(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response struct {
		Status      string     `json:"status"`
		CompletedAt *time.Time `json:"completed_at"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), "completed", response.Status)
	assert.NotNil(suite.T(), response.CompletedAt)
}

func (suite *TaskHandlerTestSuite) TestDeleteTask_NotFound() {
	user := suite.createTestUser("user@example.com", models.RoleTeamMember)

	c, w := suite.createAuthContext(http.MethodDelete, "/api/tasks/99", nil, user.ID)
	c.Params = gin.Params{{Key: "id", Value: "99"}}

	suite.handler.DeleteTask(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *TaskHandlerTestSuite) TestArchive_EmptyBodySelectsOverdue() {
	admin := suite.createTestUser("admin@example.com", models.RoleAdmin)
	past := time.Now().Add(-24 * time.Hour)
	suite.createTestTask("Overdue", admin.ID, &past)
	suite.createTestTask("Current", admin.ID, nil)

	c, w := suite.createAuthContext(http.MethodPost, "/api/tasks/archive", nil, admin.ID)

	suite.handler.Archive(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response struct {
		Archived int64 `json:"archived"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), int64(1), response.Archived)

	var remaining int64
	suite.db.Model(&models.Task{}).Count(&remaining)
	assert.Equal(suite.T(), int64(1), remaining)
}

func (suite *TaskHandlerTestSuite) TestArchive_MemberForbidden() {
	user := suite.createTestUser("user@example.com", models.RoleTeamMember)

	c, w := suite.createAuthContext(http.MethodPost, "/api/tasks/archive", nil, user.ID)

	suite.handler.Archive(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func (suite *TaskHandlerTestSuite) TestStatistics_AdminOnly() {
	admin := suite.createTestUser("admin@example.com", models.RoleAdmin)
	member := suite.createTestUser("user@example.com", models.RoleTeamMember)
	suite.createTestTask("Write report", member.ID, nil)

	c, w := suite.createAuthContext(http.MethodGet, "/api/tasks/statistics", nil, admin.ID)
	suite.handler.Statistics(c)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var stats struct {
		Total int `json:"total"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &stats)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), 1, stats.Total)

	c, w = suite.createAuthContext(http.MethodGet, "/api/tasks/statistics", nil, member.ID)
	suite.handler.Statistics(c)
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
