package dto

import (
	"time"

	"github.com/sakib-arifin/exam-portal-api/internal/models"
)

// SignupRequest describes the payload for all signup endpoints. The
// resulting role is decided by the endpoint, never by the caller.
type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=150"`
	Name     string `json:"name" validate:"omitempty,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone" validate:"omitempty,max=15"`
	Address  string `json:"address" validate:"omitempty"`
}

// LoginRequest carries the credentials for token issuance.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the bearer token and its expiry.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// ProfileUpdateRequest edits profile fields; the role is immutable here.
type ProfileUpdateRequest struct {
	Name    *string `json:"name" validate:"omitempty,max=255"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   *string `json:"phone" validate:"omitempty,max=15"`
	Address *string `json:"address" validate:"omitempty"`
}

// UserResponse is the public shape of a user account.
type UserResponse struct {
	ID        uint        `json:"id"`
	Username  string      `json:"username"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
	Phone     string      `json:"phone"`
	Address   string      `json:"address"`
	CreatedAt time.Time   `json:"created_at"`
}

// NewUserResponse converts a User model into a DTO.
func NewUserResponse(model models.User) UserResponse {
	return UserResponse{
		ID:        model.ID,
		Username:  model.Username,
		Name:      model.Name,
		Email:     model.Email,
		Role:      model.Role,
		Phone:     model.Phone,
		Address:   model.Address,
		CreatedAt: model.CreatedAt,
	}
}

// NewUserResponseSlice converts user models into DTOs.
func NewUserResponseSlice(users []models.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, NewUserResponse(user))
	}

	return responses
}
