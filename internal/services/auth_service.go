package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/bahsim/ai-practitioner-task-manager/internal/auth"
	"github.com/bahsim/ai-practitioner-task-manager/internal/constants"
	"github.com/bahsim/ai-practitioner-task-manager/internal/models"
	"github.com/bahsim/ai-practitioner-task-manager/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrUsernameTaken        = errors.New("username already exists")
	ErrEmailTaken           = errors.New("email already exists")
	ErrInvalidUsername      = errors.New("username must be 2-30 characters of letters, digits or underscores")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// AuthService handles signup and credential verification.
type AuthService struct {
	userRepo repository.UserRepository
	hasher   *auth.PasswordHasher
	tokens   *auth.TokenService
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, hasher *auth.PasswordHasher, tokens *auth.TokenService) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
	}
}

// SignupInput represents the required information to create a new user.
type SignupInput struct {
	Username string
	Email    string
	Password string
	About    *string
	Avatar   *string
}

// Signup creates a new user. Username uniqueness is checked before email, so
// a signup colliding on both reports the username conflict. The unique
// indexes remain the authoritative guard: a duplicate-key error from the
// store is reported as the same conflict.
func (s *AuthService) Signup(input SignupInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if len(username) < constants.MinUsernameLength ||
		len(username) > constants.MaxUsernameLength ||
		!usernamePattern.MatchString(username) {
		return nil, ErrInvalidUsername
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	if _, err := s.userRepo.FindByEmail(input.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Username:     username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		About:        normalizeOptional(input.About),
		Avatar:       normalizeOptional(input.Avatar),
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// A concurrent signup won the race between pre-check and insert.
			if _, lookupErr := s.userRepo.FindByUsername(username); lookupErr == nil {
				return nil, ErrUsernameTaken
			}
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// ValidateCredentials looks up the user by email and verifies the password.
// An unknown email and a wrong password return the same error so callers
// cannot enumerate accounts.
func (s *AuthService) ValidateCredentials(email, password string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// Login mints a session token for an already-verified user. It performs no
// re-verification; call ValidateCredentials first.
func (s *AuthService) Login(user *models.User) (string, error) {
	return s.tokens.Issue(user.ID, user.Email)
}

// normalizeOptional maps an absent or empty optional field to nil, so a
// present-but-empty value clears the field while an omitted one leaves it.
func normalizeOptional(value *string) *string {
	if value == nil || *value == "" {
		return nil
	}
	return value
}
