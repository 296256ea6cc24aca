package dto

import (
	"time"

	"github.com/bahsim/ai-practitioner-task-manager/internal/models"
)

// UserDTO represents a user in API responses. The password hash is never
// part of any outward representation.
type UserDTO struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	About     *string   `json:"about"`
	Avatar    *string   `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TokenResponse carries the session token issued at signin.
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		About:     user.About,
		Avatar:    user.Avatar,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
