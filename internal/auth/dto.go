// AngelaMos | 2026
// dto.go

package auth

import (
	"time"

	"github.com/suprilp8221/Store-Rating-Platform/internal/policy"
)

type SignupRequest struct {
	Name     string  `json:"name"     validate:"required,min=8,max=20"`
	Email    string  `json:"email"    validate:"required,emailaddr"`
	Password string  `json:"password" validate:"required,password"`
	Address  *string `json:"address"  validate:"omitempty,max=400"`
	Role     string  `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,password"`
}

type UserResponse struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Email   string      `json:"email"`
	Address *string     `json:"address"`
	Role    policy.Role `json:"role"`
}

type AuthResponse struct {
	Message   string       `json:"message"`
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	ExpiresAt time.Time    `json:"expires_at"`
}

func toUserResponse(u *UserInfo) UserResponse {
	return UserResponse{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Address: u.Address,
		Role:    u.Role,
	}
}
