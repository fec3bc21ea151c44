package service

import (
	"errors"
	"testing"
	"time"

	"github.com/mdehtemam/bagquote-backend/internal/app/model"
	"github.com/mdehtemam/bagquote-backend/internal/app/repository"
	"github.com/mdehtemam/bagquote-backend/internal/db"
	"github.com/mdehtemam/bagquote-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testJWTSecret = "test-secret-key"

func setupAuthServiceTest(t *testing.T) (AuthService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	authService := NewAuthService(
		repository.NewUserRepository(testDB),
		repository.NewProfileRepository(testDB),
		repository.NewRoleRepository(testDB),
		testJWTSecret,
		15*time.Minute,
		7*24*time.Hour,
	)

	return authService, testDB
}

// failingProfileRepo simulates the profile write failing after the account
// is created.
type failingProfileRepo struct {
	repository.ProfileRepository
}

func (r *failingProfileRepo) Create(profile *model.Profile) error {
	return errors.New("profile insert failed")
}

func TestAuthService_Register_Success(t *testing.T) {
	authService, testDB := setupAuthServiceTest(t)

	user, tokens, err := authService.Register("corp@example.com", "password123", "Procurement Lead", "9876543210")
	require.NoError(t, err)
	require.NotNil(t, user)
	require.NotNil(t, tokens)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, "corp@example.com", user.Email)

	// Profile and default role rows were written
	var profile model.Profile
	require.NoError(t, testDB.Where("user_id = ?", user.ID).First(&profile).Error)
	assert.Equal(t, "Procurement Lead", profile.Name)

	var role model.UserRole
	require.NoError(t, testDB.Where("user_id = ?", user.ID).First(&role).Error)
	assert.Equal(t, model.RoleUser, role.Role)

	// The password is stored hashed
	var stored model.User
	require.NoError(t, testDB.First(&stored, user.ID).Error)
	assert.NotEqual(t, "password123", stored.PasswordHash)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, _, err := authService.Register("corp@example.com", "password123", "First", "")
	require.NoError(t, err)

	_, _, err = authService.Register("corp@example.com", "different456", "Second", "")
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestAuthService_Register_ProfileFailureStillCreatesAccount(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	authService := NewAuthService(
		repository.NewUserRepository(testDB),
		&failingProfileRepo{ProfileRepository: repository.NewProfileRepository(testDB)},
		repository.NewRoleRepository(testDB),
		testJWTSecret,
		15*time.Minute,
		7*24*time.Hour,
	)

	user, tokens, err := authService.Register("corp@example.com", "password123", "Lead", "")
	require.NoError(t, err)
	require.NotNil(t, tokens)

	// Account exists without a profile row
	var stored model.User
	require.NoError(t, testDB.First(&stored, user.ID).Error)
	var profileCount int64
	testDB.Model(&model.Profile{}).Count(&profileCount)
	assert.Equal(t, int64(0), profileCount)
}

func TestAuthService_Login_Success(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, _, err := authService.Register("corp@example.com", "password123", "Lead", "")
	require.NoError(t, err)

	user, tokens, err := authService.Login("corp@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "corp@example.com", user.Email)

	claims, err := util.ValidateToken(tokens.AccessToken, testJWTSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, string(model.RoleUser), claims.Role)
}

func TestAuthService_Login_AdminRoleClaim(t *testing.T) {
	authService, testDB := setupAuthServiceTest(t)

	user, _, err := authService.Register("admin@example.com", "password123", "Admin", "")
	require.NoError(t, err)

	// Admin membership comes from the role table, not the user row
	require.NoError(t, testDB.Create(&model.UserRole{UserID: user.ID, Role: model.RoleAdmin}).Error)

	_, tokens, err := authService.Login("admin@example.com", "password123")
	require.NoError(t, err)

	claims, err := util.ValidateToken(tokens.AccessToken, testJWTSecret)
	require.NoError(t, err)
	assert.Equal(t, string(model.RoleAdmin), claims.Role)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, _, err := authService.Register("corp@example.com", "password123", "Lead", "")
	require.NoError(t, err)

	_, _, err = authService.Login("corp@example.com", "wrongpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, _, err := authService.Login("nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Hydrate_FullSession(t *testing.T) {
	authService, testDB := setupAuthServiceTest(t)

	user, _, err := authService.Register("corp@example.com", "password123", "Lead", "9876543210")
	require.NoError(t, err)
	require.NoError(t, testDB.Create(&model.UserRole{UserID: user.ID, Role: model.RoleAdmin}).Error)

	session, err := authService.Hydrate(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, session.User.ID)
	require.NotNil(t, session.Profile)
	assert.Equal(t, "Lead", session.Profile.Name)
	assert.True(t, session.IsAdmin)
}

func TestAuthService_Hydrate_MissingProfileDegrades(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	authService := NewAuthService(
		repository.NewUserRepository(testDB),
		&failingProfileRepo{ProfileRepository: repository.NewProfileRepository(testDB)},
		repository.NewRoleRepository(testDB),
		testJWTSecret,
		15*time.Minute,
		7*24*time.Hour,
	)

	user, _, err := authService.Register("corp@example.com", "password123", "Lead", "")
	require.NoError(t, err)

	// Session hydrates with identity only
	session, err := authService.Hydrate(user.ID)
	require.NoError(t, err)
	assert.Nil(t, session.Profile)
	assert.False(t, session.IsAdmin)
}

// brokenProfileRepo fails profile reads outright, simulating a backend
// outage rather than a missing row.
type brokenProfileRepo struct {
	repository.ProfileRepository
}

func (r *brokenProfileRepo) FindByUserID(userID uint) (*model.Profile, error) {
	return nil, errors.New("profile fetch failed")
}

// brokenRoleRepo fails the admin membership check.
type brokenRoleRepo struct {
	repository.RoleRepository
}

func (r *brokenRoleRepo) HasRole(userID uint, role model.Role) (bool, error) {
	return false, errors.New("role lookup failed")
}

func TestAuthService_Hydrate_ProfileFetchErrorDegrades(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	authService := NewAuthService(
		repository.NewUserRepository(testDB),
		&brokenProfileRepo{ProfileRepository: repository.NewProfileRepository(testDB)},
		&brokenRoleRepo{RoleRepository: repository.NewRoleRepository(testDB)},
		testJWTSecret,
		15*time.Minute,
		7*24*time.Hour,
	)

	user, _, err := authService.Register("corp@example.com", "password123", "Lead", "")
	require.NoError(t, err)

	// Both lookups error out, yet the session still hydrates with identity
	// only: nil profile and admin defaulting to false
	session, err := authService.Hydrate(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, session.User.ID)
	assert.Nil(t, session.Profile)
	assert.False(t, session.IsAdmin)
}

func TestAuthService_Hydrate_UserNotFound(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, err := authService.Hydrate(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
