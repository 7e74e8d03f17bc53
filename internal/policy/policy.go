// AngelaMos | 2026
// policy.go

package policy

import (
	"fmt"
	"strings"
)

// Role is the closed set of account roles. The string values are what the
// API and the database carry.
type Role string

const (
	RoleAdmin Role = "System Administrator"
	RoleUser  Role = "Normal User"
	RoleOwner Role = "Store Owner"
)

var validRoles = []Role{RoleAdmin, RoleUser, RoleOwner}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	for _, candidate := range validRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

func ParseRole(value string) (Role, error) {
	role := Role(value)
	if !role.IsValid() {
		return "", fmt.Errorf("invalid role %q", value)
	}
	return role, nil
}

// SignupRole maps a self-registration request onto an allowed role.
// Anything other than Store Owner becomes Normal User, including
// System Administrator.
func SignupRole(requested string) Role {
	if Role(requested) == RoleOwner {
		return RoleOwner
	}
	return RoleUser
}

func RoleList() string {
	names := make([]string, 0, len(validRoles))
	for _, r := range validRoles {
		names = append(names, string(r))
	}
	return strings.Join(names, ", ")
}

type Operation string

const (
	OpManageUsers    Operation = "users:manage"
	OpManageStores   Operation = "stores:manage"
	OpAdminDashboard Operation = "dashboard:admin"
	OpSubmitRating   Operation = "ratings:submit"
	OpOwnerDashboard Operation = "dashboard:owner"
	OpListStores     Operation = "stores:list"
	OpProfile        Operation = "profile:self"
)

var anyRole = []Role{RoleAdmin, RoleUser, RoleOwner}

var table = map[Operation][]Role{
	OpManageUsers:    {RoleAdmin},
	OpManageStores:   {RoleAdmin},
	OpAdminDashboard: {RoleAdmin},
	OpSubmitRating:   {RoleUser},
	OpOwnerDashboard: {RoleOwner},
	OpListStores:     anyRole,
	OpProfile:        anyRole,
}

// Allowed reports whether role may invoke op. Unknown operations and
// unknown roles are denied.
func Allowed(role Role, op Operation) bool {
	for _, permitted := range table[op] {
		if permitted == role {
			return true
		}
	}
	return false
}

func RolesFor(op Operation) []Role {
	roles := table[op]
	out := make([]Role, len(roles))
	copy(out, roles)
	return out
}
