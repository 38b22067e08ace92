package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/teamgrid/tracker-api/internal/models"
	"github.com/teamgrid/tracker-api/internal/repository"
)

type AuthServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *AuthService
}

func (suite *AuthServiceTestSuite) SetupTest() {
	var err error
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.db.AutoMigrate(&models.User{}))

	suite.service = NewAuthService(repository.NewUserRepository(suite.db))
}

func (suite *AuthServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *AuthServiceTestSuite) TestSignupAndLogin() {
	user, err := suite.service.Signup(SignupInput{Email: "Dev@Example.com", Password: "secret-password"})
	suite.Require().NoError(err)
	suite.Equal("dev@example.com", user.Email)
	suite.NoError(bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret-password")))

	logged, err := suite.service.Login(LoginInput{Email: "dev@example.com", Password: "secret-password"})
	suite.Require().NoError(err)
	suite.Equal(user.ID, logged.ID)
}

func (suite *AuthServiceTestSuite) TestSignupRejectsDuplicateEmail() {
	_, err := suite.service.Signup(SignupInput{Email: "dev@example.com", Password: "secret-password"})
	suite.Require().NoError(err)

	_, err = suite.service.Signup(SignupInput{Email: "DEV@example.com", Password: "another-password"})
	suite.ErrorIs(err, ErrEmailTaken)
}

func (suite *AuthServiceTestSuite) TestSignupRejectsShortPassword() {
	_, err := suite.service.Signup(SignupInput{Email: "dev@example.com", Password: "short"})
	suite.ErrorIs(err, ErrPasswordTooShort)
}

func (suite *AuthServiceTestSuite) TestLoginRejectsWrongPassword() {
	_, err := suite.service.Signup(SignupInput{Email: "dev@example.com", Password: "secret-password"})
	suite.Require().NoError(err)

	_, err = suite.service.Login(LoginInput{Email: "dev@example.com", Password: "wrong-password"})
	suite.ErrorIs(err, ErrInvalidCredentials)
}

func (suite *AuthServiceTestSuite) TestLoginRejectsUnknownEmail() {
	_, err := suite.service.Login(LoginInput{Email: "nobody@example.com", Password: "whatever1"})
	suite.ErrorIs(err, ErrInvalidCredentials)
}

func (suite *AuthServiceTestSuite) TestGetUser() {
	user, err := suite.service.Signup(SignupInput{Email: "dev@example.com", Password: "secret-password"})
	suite.Require().NoError(err)

	found, err := suite.service.GetUser(user.ID)
	suite.Require().NoError(err)
	suite.Equal(user.Email, found.Email)

	_, err = suite.service.GetUser(999)
	suite.ErrorIs(err, ErrUserNotFound)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
