// AngelaMos | 2026
// entity.go

package user

import (
	"time"

	"github.com/suprilp8221/Store-Rating-Platform/internal/policy"
)

type User struct {
	ID           string      `db:"id"`
	Name         string      `db:"name"`
	Email        string      `db:"email"`
	PasswordHash string      `db:"password_hash"`
	Address      *string     `db:"address"`
	Role         policy.Role `db:"role"`
	CreatedAt    time.Time   `db:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == policy.RoleAdmin
}

func (u *User) IsStoreOwner() bool {
	return u.Role == policy.RoleOwner
}
