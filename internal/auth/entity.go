// AngelaMos | 2026
// entity.go

package auth

import (
	"github.com/suprilp8221/Store-Rating-Platform/internal/policy"
)

// UserInfo is the credential view of an account that authentication works
// against. PasswordHash never leaves this package in a response.
type UserInfo struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Address      *string
	Role         policy.Role
}

type NewUser struct {
	Name         string
	Email        string
	PasswordHash string
	Address      *string
	Role         policy.Role
}
