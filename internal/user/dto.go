// AngelaMos | 2026
// dto.go

package user

import (
	"strings"
	"time"

	"github.com/suprilp8221/Store-Rating-Platform/internal/policy"
)

type CreateUserRequest struct {
	Name     string  `json:"name"     validate:"required,min=8,max=20"`
	Email    string  `json:"email"    validate:"required,emailaddr"`
	Password string  `json:"password" validate:"required,password"`
	Address  *string `json:"address"  validate:"omitempty,max=400"`
	Role     string  `json:"role"     validate:"omitempty,role"`
}

// UpdateUserRequest is a partial update: nil fields are left unchanged.
type UpdateUserRequest struct {
	Name     *string `json:"name"     validate:"omitempty,min=8,max=20"`
	Email    *string `json:"email"    validate:"omitempty,emailaddr"`
	Password *string `json:"password" validate:"omitempty,password"`
	Address  *string `json:"address"  validate:"omitempty,max=400"`
	Role     *string `json:"role"     validate:"omitempty,role"`
}

type UpdateProfileRequest struct {
	Name    *string `json:"name"    validate:"omitempty,min=8,max=20"`
	Email   *string `json:"email"   validate:"omitempty,emailaddr"`
	Address *string `json:"address" validate:"omitempty,max=400"`
}

type UserResponse struct {
	ID                       string      `json:"id"`
	Name                     string      `json:"name"`
	Email                    string      `json:"email"`
	Address                  *string     `json:"address"`
	Role                     policy.Role `json:"role"`
	OwnedStoresAverageRating *float64    `json:"owned_stores_average_rating,omitempty"`
	CreatedAt                time.Time   `json:"created_at"`
	UpdatedAt                time.Time   `json:"updated_at"`
}

type UserEnvelope struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

const (
	SortByName    = "name"
	SortByEmail   = "email"
	SortByAddress = "address"
	SortByRole    = "role"

	SortAsc  = "asc"
	SortDesc = "desc"
)

var sortableFields = map[string]struct{}{
	SortByName:    {},
	SortByEmail:   {},
	SortByAddress: {},
	SortByRole:    {},
}

type ListUsersParams struct {
	Name      string
	Email     string
	Address   string
	Role      string
	SortField string
	SortOrder string
}

// Normalize applies the listing defaults. An unknown sort field falls back
// to name ascending instead of failing; an unknown order means ascending.
func (p *ListUsersParams) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.TrimSpace(p.Email)
	p.Address = strings.TrimSpace(p.Address)
	p.Role = strings.TrimSpace(p.Role)

	if _, ok := sortableFields[p.SortField]; !ok {
		p.SortField = SortByName
		p.SortOrder = SortAsc
		return
	}

	if strings.EqualFold(p.SortOrder, SortDesc) {
		p.SortOrder = SortDesc
	} else {
		p.SortOrder = SortAsc
	}
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Address:   u.Address,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
