package service

import (
	"errors"
	"time"

	"github.com/mdehtemam/bagquote-backend/internal/app/model"
	"github.com/mdehtemam/bagquote-backend/internal/app/repository"
	"github.com/mdehtemam/bagquote-backend/pkg/logger"
	"github.com/mdehtemam/bagquote-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

// Session is the hydrated identity state: the authenticated user, their
// profile (nil when the profile row is missing or could not be fetched) and
// the admin flag derived from the role table.
type Session struct {
	User    *model.User    `json:"user"`
	Profile *model.Profile `json:"profile"`
	IsAdmin bool           `json:"is_admin"`
}

type AuthService interface {
	Register(email, password, name, phone string) (*model.User, *util.TokenPair, error)
	Login(email, password string) (*model.User, *util.TokenPair, error)
	Hydrate(userID uint) (*Session, error)
}

type authService struct {
	userRepo      repository.UserRepository
	profileRepo   repository.ProfileRepository
	roleRepo      repository.RoleRepository
	jwtSecret     string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	roleRepo repository.RoleRepository,
	jwtSecret string,
	accessExpiry, refreshExpiry time.Duration,
) AuthService {
	return &authService{
		userRepo:      userRepo,
		profileRepo:   profileRepo,
		roleRepo:      roleRepo,
		jwtSecret:     jwtSecret,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

// Register creates the account, then makes a best-effort attempt to create
// the profile row and the default "user" role row. Failures in the follow-up
// writes are logged and swallowed: the account exists either way, and a
// missing profile only blocks quote submission, not sign-in.
func (s *authService) Register(email, password, name, phone string) (*model.User, *util.TokenPair, error) {
	logger.Info("Attempting user registration", map[string]interface{}{
		"email": email,
		"name":  name,
	})

	existingUser, err := s.userRepo.FindByEmail(email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing user", err, map[string]interface{}{
			"email": email,
		})
		return nil, nil, err
	}
	if existingUser != nil {
		logger.Warn("Registration failed: email already exists", map[string]interface{}{
			"email": email,
		})
		return nil, nil, ErrEmailAlreadyExists
	}

	hashedPassword, err := util.HashPassword(password)
	if err != nil {
		logger.Error("Failed to hash password", err, map[string]interface{}{
			"email": email,
		})
		return nil, nil, err
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hashedPassword,
	}
	if err := s.userRepo.Create(user); err != nil {
		logger.Error("Failed to create user in database", err, map[string]interface{}{
			"email": email,
		})
		return nil, nil, err
	}

	// Best-effort follow-ups. An account without a profile or role row is an
	// accepted inconsistency window, not a registration failure.
	profile := &model.Profile{
		UserID: user.ID,
		Name:   name,
		Phone:  phone,
	}
	if err := s.profileRepo.Create(profile); err != nil {
		logger.Error("Failed to create profile during registration", err, map[string]interface{}{
			"user_id": user.ID,
		})
	} else {
		user.Profile = profile
	}

	if err := s.roleRepo.Create(&model.UserRole{UserID: user.ID, Role: model.RoleUser}); err != nil {
		logger.Error("Failed to create default role during registration", err, map[string]interface{}{
			"user_id": user.ID,
		})
	}

	tokens, err := util.GenerateTokenPair(
		user.ID,
		user.Email,
		string(model.RoleUser),
		s.jwtSecret,
		s.accessExpiry,
		s.refreshExpiry,
	)
	if err != nil {
		logger.Error("Failed to generate tokens", err, map[string]interface{}{
			"user_id": user.ID,
			"email":   email,
		})
		return nil, nil, err
	}

	logger.Info("User registered successfully", map[string]interface{}{
		"user_id": user.ID,
		"email":   email,
	})

	return user, tokens, nil
}

func (s *authService) Login(email, password string) (*model.User, *util.TokenPair, error) {
	logger.Info("Login attempt", map[string]interface{}{
		"email": email,
	})

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Login failed: user not found", map[string]interface{}{
				"email": email,
			})
			return nil, nil, ErrInvalidCredentials
		}
		logger.Error("Failed to find user", err, map[string]interface{}{
			"email": email,
		})
		return nil, nil, err
	}

	if !util.VerifyPassword(user.PasswordHash, password) {
		logger.Warn("Login failed: invalid password", map[string]interface{}{
			"email":   email,
			"user_id": user.ID,
		})
		return nil, nil, ErrInvalidCredentials
	}

	// The role claim is derived from the membership table at login time, not
	// stored on the user row.
	role := model.RoleUser
	isAdmin, err := s.roleRepo.HasRole(user.ID, model.RoleAdmin)
	if err != nil {
		logger.Error("Failed to check admin membership at login", err, map[string]interface{}{
			"user_id": user.ID,
		})
	} else if isAdmin {
		role = model.RoleAdmin
	}

	tokens, err := util.GenerateTokenPair(
		user.ID,
		user.Email,
		string(role),
		s.jwtSecret,
		s.accessExpiry,
		s.refreshExpiry,
	)
	if err != nil {
		logger.Error("Failed to generate tokens", err, map[string]interface{}{
			"user_id": user.ID,
			"email":   email,
		})
		return nil, nil, err
	}

	logger.Info("User logged in successfully", map[string]interface{}{
		"user_id": user.ID,
		"email":   email,
		"role":    role,
	})

	return user, tokens, nil
}

// Hydrate rebuilds the session state for a user id. A missing or failing
// profile or role fetch degrades to a session with identity only (nil
// profile, admin=false); it never surfaces as an error to the caller.
func (s *authService) Hydrate(userID uint) (*Session, error) {
	logger.Debug("Hydrating session", map[string]interface{}{
		"user_id": userID,
	})

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		logger.Error("Failed to fetch user for session hydration", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	session := &Session{User: user}

	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to fetch profile during hydration, continuing without it", err, map[string]interface{}{
				"user_id": userID,
			})
		}
	} else {
		session.Profile = profile
	}

	isAdmin, err := s.roleRepo.HasRole(userID, model.RoleAdmin)
	if err != nil {
		logger.Error("Failed to check admin membership during hydration, defaulting to false", err, map[string]interface{}{
			"user_id": userID,
		})
	} else {
		session.IsAdmin = isAdmin
	}

	logger.Debug("Session hydrated", map[string]interface{}{
		"user_id":     userID,
		"has_profile": session.Profile != nil,
		"is_admin":    session.IsAdmin,
	})

	return session, nil
}
