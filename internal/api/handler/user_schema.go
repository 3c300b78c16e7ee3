package handler

import (
	"time"

	"github.com/labsuite/user-access-api/internal/core/domain"
)

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name"     validate:"required"`
	Role     string `json:"role"     validate:"required"`
	Document string `json:"document"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`

	Profile domain.ProfilePatch `json:"profile"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updateUserRequest struct {
	Password *string `json:"password,omitempty" validate:"omitempty,min=6"`
	Name     *string `json:"name,omitempty"`
	Document *string `json:"document,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Address  *string `json:"address,omitempty"`
	Active   *bool   `json:"active,omitempty"`
	Role     *string `json:"role,omitempty"`

	Profile *domain.ProfilePatch `json:"profile,omitempty"`
}

type userResponse struct {
	ID          string         `json:"id"`
	Email       string         `json:"email"`
	Name        string         `json:"name"`
	Document    string         `json:"document,omitempty"`
	Phone       string         `json:"phone,omitempty"`
	Address     string         `json:"address,omitempty"`
	Active      bool           `json:"active"`
	CreatedAt   string         `json:"created_at"`
	Role        string         `json:"role"`
	Permissions []string       `json:"permissions"`
	Profile     domain.Profile `json:"profile"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Document:    u.Document,
		Phone:       u.Phone,
		Address:     u.Address,
		Active:      u.Active,
		CreatedAt:   u.CreatedAt.UTC().Format(time.RFC3339),
		Role:        u.Role.Name,
		Permissions: u.Role.Permissions,
		Profile:     u.Profile,
	}
}
