package services

import (
	"testing"
	"time"

	"github.com/bahsim/ai-practitioner-task-manager/internal/auth"
	"github.com/bahsim/ai-practitioner-task-manager/internal/models"
	"github.com/bahsim/ai-practitioner-task-manager/internal/repository"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type authServiceEnv struct {
	db      *gorm.DB
	hasher  *auth.PasswordHasher
	tokens  *auth.TokenService
	service *AuthService
}

func setupAuthServiceEnv(t *testing.T) authServiceEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Task{}))

	userRepo := repository.NewUserRepository(db)
	hasher := auth.NewPasswordHasher(bcrypt.MinCost)
	tokens := auth.NewTokenService("auth-service-test-secret", time.Hour)
	service := NewAuthService(userRepo, hasher, tokens)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return authServiceEnv{
		db:      db,
		hasher:  hasher,
		tokens:  tokens,
		service: service,
	}
}

func TestAuthService_Signup(t *testing.T) {
	env := setupAuthServiceEnv(t)

	user, err := env.service.Signup(SignupInput{
		Username: "alice_1",
		Email:    "alice@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	require.Equal(t, "alice_1", user.Username)
	require.NotEqual(t, "supersecret", user.PasswordHash)
	require.True(t, env.hasher.Verify("supersecret", user.PasswordHash))
	require.Nil(t, user.About)
	require.Nil(t, user.Avatar)
}

func TestAuthService_Signup_BlankOptionalFieldsBecomeNull(t *testing.T) {
	env := setupAuthServiceEnv(t)

	empty := ""
	about := "Software developer"
	user, err := env.service.Signup(SignupInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "supersecret",
		About:    &about,
		Avatar:   &empty,
	})
	require.NoError(t, err)
	require.NotNil(t, user.About)
	require.Equal(t, "Software developer", *user.About)
	require.Nil(t, user.Avatar)
}

func TestAuthService_Signup_DuplicateUsername(t *testing.T) {
	env := setupAuthServiceEnv(t)

	_, err := env.service.Signup(SignupInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	_, err = env.service.Signup(SignupInput{
		Username: "alice",
		Email:    "other@example.com",
		Password: "supersecret",
	})
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	env := setupAuthServiceEnv(t)

	_, err := env.service.Signup(SignupInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	_, err = env.service.Signup(SignupInput{
		Username: "bob",
		Email:    "alice@example.com",
		Password: "supersecret",
	})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthService_Signup_DuplicateBothReportsUsername(t *testing.T) {
	env := setupAuthServiceEnv(t)

	_, err := env.service.Signup(SignupInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	// Username is checked before email.
	_, err = env.service.Signup(SignupInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "supersecret",
	})
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestAuthService_Signup_InvalidInput(t *testing.T) {
	env := setupAuthServiceEnv(t)

	_, err := env.service.Signup(SignupInput{
		Username: "a",
		Email:    "a@example.com",
		Password: "supersecret",
	})
	require.ErrorIs(t, err, ErrInvalidUsername)

	_, err = env.service.Signup(SignupInput{
		Username: "has space",
		Email:    "a@example.com",
		Password: "supersecret",
	})
	require.ErrorIs(t, err, ErrInvalidUsername)

	_, err = env.service.Signup(SignupInput{
		Username: "alice",
		Email:    "a@example.com",
		Password: "short",
	})
	require.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestAuthService_ValidateCredentials(t *testing.T) {
	env := setupAuthServiceEnv(t)

	created, err := env.service.Signup(SignupInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	user, err := env.service.ValidateCredentials("alice@example.com", "supersecret")
	require.NoError(t, err)
	require.Equal(t, created.ID, user.ID)

	// Wrong password and unknown email fail identically.
	_, err = env.service.ValidateCredentials("alice@example.com", "wrongpassword")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.service.ValidateCredentials("nobody@example.com", "supersecret")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_LoginTokenRoundTrip(t *testing.T) {
	env := setupAuthServiceEnv(t)

	user, err := env.service.Signup(SignupInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	token, err := env.service.Login(user)
	require.NoError(t, err)

	claims, err := env.tokens.Verify(token)
	require.NoError(t, err)
	require.Equal(t, user.Email, claims.Email)

	userID, err := claims.UserID()
	require.NoError(t, err)
	require.Equal(t, user.ID, userID)
}
