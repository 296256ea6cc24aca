package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bahsim/ai-practitioner-task-manager/internal/auth"
	"github.com/bahsim/ai-practitioner-task-manager/internal/dto"
	"github.com/bahsim/ai-practitioner-task-manager/internal/models"
	"github.com/bahsim/ai-practitioner-task-manager/internal/repository"
	"github.com/bahsim/ai-practitioner-task-manager/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type authTestEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	tokens      *auth.TokenService
	authService *services.AuthService
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.User{}, &models.Task{})
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	hasher := auth.NewPasswordHasher(bcrypt.MinCost)
	tokens := auth.NewTokenService("auth-handler-test-secret", time.Hour)
	authService := services.NewAuthService(userRepo, hasher, tokens)
	handler := NewAuthHandler(authService)

	r := gin.New()
	r.POST("/api/auth/signup", handler.Signup)
	r.POST("/api/auth/signin", handler.Signin)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return authTestEnv{
		db:          db,
		router:      r,
		tokens:      tokens,
		authService: authService,
	}
}

func postJSON(t *testing.T, r *gin.Engine, url string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Signup(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := postJSON(t, env.router, "/api/auth/signup", map[string]string{
		"username": "newuser",
		"email":    "newuser@example.com",
		"password": "supersecret",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "newuser", response.Username)
	require.Equal(t, "newuser@example.com", response.Email)
	require.NotZero(t, response.ID)

	// The password hash never appears in the outward representation.
	require.NotContains(t, w.Body.String(), "password")
	require.NotContains(t, w.Body.String(), "supersecret")
}

func TestAuthHandler_Signup_InvalidBody(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := postJSON(t, env.router, "/api/auth/signup", map[string]string{
		"username": "newuser",
		"email":    "not-an-email",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Signup_Conflicts(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := postJSON(t, env.router, "/api/auth/signup", map[string]string{
		"username": "existing",
		"email":    "existing@example.com",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, env.router, "/api/auth/signup", map[string]string{
		"username": "existing",
		"email":    "unique@example.com",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, w.Body.String(), "username already exists")

	w = postJSON(t, env.router, "/api/auth/signup", map[string]string{
		"username": "unique",
		"email":    "existing@example.com",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, w.Body.String(), "email already exists")
}

func TestAuthHandler_Signin(t *testing.T) {
	env := setupAuthTestEnv(t)

	user, err := env.authService.Signup(services.SignupInput{
		Username: "existing",
		Email:    "existing@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	w := postJSON(t, env.router, "/api/auth/signin", map[string]string{
		"email":    "existing@example.com",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotEmpty(t, response.AccessToken)

	claims, err := env.tokens.Verify(response.AccessToken)
	require.NoError(t, err)
	userID, err := claims.UserID()
	require.NoError(t, err)
	require.Equal(t, user.ID, userID)
}

func TestAuthHandler_Signin_Unauthorized(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Signup(services.SignupInput{
		Username: "existing",
		Email:    "existing@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	// Wrong password and unknown account get the same response shape.
	wrongPassword := postJSON(t, env.router, "/api/auth/signin", map[string]string{
		"email":    "existing@example.com",
		"password": "wrongpassword",
	})
	require.Equal(t, http.StatusUnauthorized, wrongPassword.Code)

	unknownAccount := postJSON(t, env.router, "/api/auth/signin", map[string]string{
		"email":    "nobody@example.com",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusUnauthorized, unknownAccount.Code)
	require.Equal(t, wrongPassword.Body.String(), unknownAccount.Body.String())
}
