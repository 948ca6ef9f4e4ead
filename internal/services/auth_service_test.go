package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dafoundation/disaster-relief-api/internal/constants"
	"github.com/dafoundation/disaster-relief-api/internal/models"
	"github.com/dafoundation/disaster-relief-api/internal/repository"
)

// AuthServiceTestSuite defines the test suite for AuthService
type AuthServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *AuthService
}

// SetupTest runs before each test
func (suite *AuthServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(&models.User{})
	suite.Require().NoError(err)

	suite.service = NewAuthService(repository.NewUserRepository(suite.db), "admin@example.com")
}

// TearDownTest runs after each test
func (suite *AuthServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// TestSignup_Success tests successful registration
func (suite *AuthServiceTestSuite) TestSignup_Success() {
	user, err := suite.service.Signup(SignupInput{
		Email:    "Volunteer@Example.com",
		FullName: "  Jamie Volunteer  ",
		Password: "password123",
	})
	assert.NoError(suite.T(), err)
	assert.NotEmpty(suite.T(), user.ID)
	assert.Equal(suite.T(), "volunteer@example.com", user.Email)
	assert.Equal(suite.T(), "Jamie Volunteer", user.FullName)
	assert.Equal(suite.T(), constants.RoleUser, user.Role)
	assert.NotEqual(suite.T(), "password123", user.PasswordHash)
	assert.NoError(suite.T(), bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
}

// TestSignup_AdminEmail tests that the configured admin address gets the Admin role
func (suite *AuthServiceTestSuite) TestSignup_AdminEmail() {
	user, err := suite.service.Signup(SignupInput{
		Email:    "Admin@Example.com",
		FullName: "Site Admin",
		Password: "password123",
	})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), constants.RoleAdmin, user.Role)
}

// TestSignup_EmailTaken tests duplicate registration
func (suite *AuthServiceTestSuite) TestSignup_EmailTaken() {
	_, err := suite.service.Signup(SignupInput{
		Email:    "volunteer@example.com",
		FullName: "First",
		Password: "password123",
	})
	suite.Require().NoError(err)

	_, err = suite.service.Signup(SignupInput{
		Email:    "VOLUNTEER@example.com",
		FullName: "Second",
		Password: "password123",
	})
	assert.ErrorIs(suite.T(), err, ErrEmailTaken)
}

// TestSignup_PasswordTooShort tests the minimum password length
func (suite *AuthServiceTestSuite) TestSignup_PasswordTooShort() {
	_, err := suite.service.Signup(SignupInput{
		Email:    "volunteer@example.com",
		FullName: "Jamie",
		Password: "short",
	})
	assert.ErrorIs(suite.T(), err, ErrPasswordTooShort)
}

// TestLogin_Success tests logging in with correct credentials
func (suite *AuthServiceTestSuite) TestLogin_Success() {
	created, err := suite.service.Signup(SignupInput{
		Email:    "volunteer@example.com",
		FullName: "Jamie",
		Password: "password123",
	})
	suite.Require().NoError(err)

	user, err := suite.service.Login(LoginInput{
		Email:    "Volunteer@Example.com",
		Password: "password123",
	})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), created.ID, user.ID)
}

// TestLogin_WrongPassword tests logging in with an incorrect password
func (suite *AuthServiceTestSuite) TestLogin_WrongPassword() {
	_, err := suite.service.Signup(SignupInput{
		Email:    "volunteer@example.com",
		FullName: "Jamie",
		Password: "password123",
	})
	suite.Require().NoError(err)

	_, err = suite.service.Login(LoginInput{
		Email:    "volunteer@example.com",
		Password: "wrongpassword",
	})
	assert.ErrorIs(suite.T(), err, ErrInvalidCredentials)
}

// TestLogin_UnknownEmail tests logging in with an unknown address
func (suite *AuthServiceTestSuite) TestLogin_UnknownEmail() {
	_, err := suite.service.Login(LoginInput{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	assert.ErrorIs(suite.T(), err, ErrInvalidCredentials)
}

// TestGetUser_NotFound tests looking up a missing user
func (suite *AuthServiceTestSuite) TestGetUser_NotFound() {
	_, err := suite.service.GetUser("missing-id")
	assert.ErrorIs(suite.T(), err, ErrUserNotFound)
}

// TestSuite runs the test suite
func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
