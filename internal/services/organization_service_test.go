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

type OrganizationServiceTestSuite struct {
	suite.Suite
	db         *gorm.DB
	orgService *OrganizationService
	admin      *models.User
	org        *models.Organization
}

func (suite *OrganizationServiceTestSuite) SetupTest() {
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

	userRepo := repository.NewUserRepository(suite.db)
	orgRepo := repository.NewOrganizationRepository(suite.db)
	suite.orgService = NewOrganizationService(orgRepo, userRepo)

	suite.admin = suite.createUser("admin@example.com", models.RoleAdmin)
	suite.org, err = suite.orgService.CreateOrganization(CreateOrganizationInput{
		Name:    "Acme",
		OwnerID: suite.admin.ID,
	})
	suite.Require().NoError(err)
}

func (suite *OrganizationServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *OrganizationServiceTestSuite) createUser(email string, role models.UserRole) *models.User {
	user := &models.User{
		Username:     email,
		Email:        email,
		PasswordHash: "hashedpassword",
		Role:         role,
	}
	suite.db.Create(user)
	return user
}

func (suite *OrganizationServiceTestSuite) TestAddMembers_LinksUsers() {
	suite.createUser("u1@example.com", models.RoleTeamMember)
	suite.createUser("u2@example.com", models.RoleTeamMember)

	result, err := suite.orgService.AddMembers(suite.admin, suite.org.ID, []string{"u1@example.com", "u2@example.com"})
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), result.Added, 2)
	assert.Zero(suite.T(), result.Duplicates)

	members, err := suite.orgService.ListMembers(suite.org.ID)
	suite.Require().NoError(err)
	assert.Len(suite.T(), members, 2)
}

func (suite *OrganizationServiceTestSuite) TestAddMembers_CountsDuplicates() {
	suite.createUser("u1@example.com", models.RoleTeamMember)
	suite.createUser("u2@example.com", models.RoleTeamMember)

	_, err := suite.orgService.AddMembers(suite.admin, suite.org.ID, []string{"u1@example.com"})
	suite.Require().NoError(err)

	result, err := suite.orgService.AddMembers(suite.admin, suite.org.ID, []string{"u1@example.com", "u2@example.com"})
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), result.Added, 1)
	assert.Equal(suite.T(), 1, result.Duplicates)

	members, err := suite.orgService.ListMembers(suite.org.ID)
	suite.Require().NoError(err)
	assert.Len(suite.T(), members, 2)
}

func (suite *OrganizationServiceTestSuite) TestAddMembers_UnknownEmail() {
	_, err := suite.orgService.AddMembers(suite.admin, suite.org.ID, []string{"ghost@example.com"})
	assert.ErrorIs(suite.T(), err, ErrUserNotFound)
}

func (suite *OrganizationServiceTestSuite) TestAddMembers_RejectsAdmin() {
	_, err := suite.orgService.AddMembers(suite.admin, suite.org.ID, []string{suite.admin.Email})
	assert.ErrorIs(suite.T(), err, ErrAdminCannotBeMember)
}

func (suite *OrganizationServiceTestSuite) TestAddMembers_MemberForbidden() {
	member := suite.createUser("member@example.com", models.RoleTeamMember)

	_, err := suite.orgService.AddMembers(member, suite.org.ID, []string{"member@example.com"})
	assert.ErrorIs(suite.T(), err, ErrOperationNotPermitted)
}

func (suite *OrganizationServiceTestSuite) TestRemoveMember_ByEmail() {
	u1 := suite.createUser("u1@example.com", models.RoleTeamMember)
	_, err := suite.orgService.AddMembers(suite.admin, suite.org.ID, []string{u1.Email})
	suite.Require().NoError(err)

	err = suite.orgService.RemoveMember(suite.admin, suite.org.ID, 0, u1.Email)
	assert.NoError(suite.T(), err)

	var fromDB models.User
	suite.db.First(&fromDB, u1.ID)
	assert.Nil(suite.T(), fromDB.OrganizationID)
}

func (suite *OrganizationServiceTestSuite) TestRemoveMember_AbsentIsNoOp() {
	u1 := suite.createUser("u1@example.com", models.RoleTeamMember)

	err := suite.orgService.RemoveMember(suite.admin, suite.org.ID, u1.ID, "")
	assert.NoError(suite.T(), err)

	err = suite.orgService.RemoveMember(suite.admin, suite.org.ID, 0, "ghost@example.com")
	assert.NoError(suite.T(), err)
}

func (suite *OrganizationServiceTestSuite) TestListMembers_ExcludesAdmins() {
	u1 := suite.createUser("u1@example.com", models.RoleTeamMember)
	_, err := suite.orgService.AddMembers(suite.admin, suite.org.ID, []string{u1.Email})
	suite.Require().NoError(err)

	// An admin row pointing at the organisation must never show up
	orgID := suite.org.ID
	suite.db.Model(&models.User{}).Where("id = ?", suite.admin.ID).Update("organization_id", orgID)

	members, err := suite.orgService.ListMembers(suite.org.ID)
	suite.Require().NoError(err)
	suite.Require().Len(members, 1)
	assert.Equal(suite.T(), u1.ID, members[0].ID)
}

func (suite *OrganizationServiceTestSuite) TestUpdateOrganization_Renames() {
	name := "Acme Industries"
	org, err := suite.orgService.UpdateOrganization(suite.admin, suite.org.ID, UpdateOrganizationInput{Name: &name})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Acme Industries", org.Name)

	var fromDB models.Organization
	suite.db.First(&fromDB, suite.org.ID)
	assert.Equal(suite.T(), "Acme Industries", fromDB.Name)
}

func (suite *OrganizationServiceTestSuite) TestUpdateOrganization_RejectsBlankName() {
	name := "   "
	_, err := suite.orgService.UpdateOrganization(suite.admin, suite.org.ID, UpdateOrganizationInput{Name: &name})
	assert.ErrorIs(suite.T(), err, ErrInvalidOrganizationName)
}

func (suite *OrganizationServiceTestSuite) TestUpdateOrganization_MemberForbidden() {
	member := suite.createUser("member@example.com", models.RoleTeamMember)

	name := "Takeover"
	_, err := suite.orgService.UpdateOrganization(member, suite.org.ID, UpdateOrganizationInput{Name: &name})
	assert.ErrorIs(suite.T(), err, ErrOperationNotPermitted)
}

func (suite *OrganizationServiceTestSuite) TestDeleteOrganization_ReleasesMembers() {
	u1 := suite.createUser("u1@example.com", models.RoleTeamMember)
	_, err := suite.orgService.AddMembers(suite.admin, suite.org.ID, []string{u1.Email})
	suite.Require().NoError(err)

	err = suite.orgService.DeleteOrganization(suite.admin, suite.org.ID)
	assert.NoError(suite.T(), err)

	_, err = suite.orgService.GetOrganization(suite.org.ID)
	assert.ErrorIs(suite.T(), err, ErrOrganizationNotFound)

	var fromDB models.User
	suite.db.First(&fromDB, u1.ID)
	assert.Nil(suite.T(), fromDB.OrganizationID)
}

func (suite *OrganizationServiceTestSuite) TestDeleteOrganization_MemberForbidden() {
	member := suite.createUser("member@example.com", models.RoleTeamMember)

	err := suite.orgService.DeleteOrganization(member, suite.org.ID)
	assert.ErrorIs(suite.T(), err, ErrOperationNotPermitted)
}

func TestOrganizationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrganizationServiceTestSuite))
}
