package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/swapnilgupta14/synapse-api/internal/models"
	"github.com/swapnilgupta14/synapse-api/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type AuthServiceTestSuite struct {
	suite.Suite
	db          *gorm.DB
	authService *AuthService
}

func (suite *AuthServiceTestSuite) SetupTest() {
	var err error
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(&models.User{}, &models.Team{})
	suite.Require().NoError(err)

	suite.authService = NewAuthService(repository.NewUserRepository(suite.db))
}

func (suite *AuthServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *AuthServiceTestSuite) signup(email string, role models.UserRole) *models.User {
	user, err := suite.authService.Signup(SignupInput{
		Username: "testuser",
		Email:    email,
		Password: "password123",
		Role:     role,
	})
	suite.Require().NoError(err)
	return user
}

func (suite *AuthServiceTestSuite) TestSignup_DefaultsToTeamMember() {
	user := suite.signup("user@example.com", "")

	assert.Equal(suite.T(), models.RoleTeamMember, user.Role)
	assert.NotEqual(suite.T(), "password123", user.PasswordHash)
}

func (suite *AuthServiceTestSuite) TestSignup_NormalisesEmail() {
	user := suite.signup("  User@Example.COM ", "")
	assert.Equal(suite.T(), "user@example.com", user.Email)
}

func (suite *AuthServiceTestSuite) TestSignup_DuplicateEmail() {
	suite.signup("user@example.com", "")

	_, err := suite.authService.Signup(SignupInput{
		Username: "other",
		Email:    "user@example.com",
		Password: "password123",
	})
	assert.ErrorIs(suite.T(), err, ErrEmailTaken)
}

func (suite *AuthServiceTestSuite) TestSignup_ShortPassword() {
	_, err := suite.authService.Signup(SignupInput{
		Username: "testuser",
		Email:    "user@example.com",
		Password: "short",
	})
	assert.ErrorIs(suite.T(), err, ErrPasswordTooShort)
}

func (suite *AuthServiceTestSuite) TestSignup_UnknownRole() {
	_, err := suite.authService.Signup(SignupInput{
		Username: "testuser",
		Email:    "user@example.com",
		Password: "password123",
		Role:     models.UserRole("superuser"),
	})
	assert.ErrorIs(suite.T(), err, ErrInvalidSignupRole)
}

func (suite *AuthServiceTestSuite) TestLogin_Success() {
	created := suite.signup("user@example.com", models.RoleProjectManager)

	user, err := suite.authService.Login(LoginInput{
		Email:    "user@example.com",
		Password: "password123",
	})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), created.ID, user.ID)
	assert.Equal(suite.T(), models.RoleProjectManager, user.Role)
}

func (suite *AuthServiceTestSuite) TestLogin_WrongPassword() {
	suite.signup("user@example.com", "")

	_, err := suite.authService.Login(LoginInput{
		Email:    "user@example.com",
		Password: "wrongpassword",
	})
	assert.ErrorIs(suite.T(), err, ErrInvalidCredentials)
}

func (suite *AuthServiceTestSuite) TestLogin_UnknownEmail() {
	_, err := suite.authService.Login(LoginInput{
		Email:    "ghost@example.com",
		Password: "password123",
	})
	assert.ErrorIs(suite.T(), err, ErrInvalidCredentials)
}

func (suite *AuthServiceTestSuite) TestGetUser_NotFound() {
	_, err := suite.authService.GetUser(999)
	assert.ErrorIs(suite.T(), err, ErrUserNotFound)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
