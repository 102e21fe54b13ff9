package enums

import "strings"

// RoleSet is the set of roles permitted on a route.
type RoleSet map[UserRole]struct{}

// Roles builds a RoleSet from the provided roles, ignoring unknown values.
func Roles(roles ...UserRole) RoleSet {
	set := make(RoleSet, len(roles))
	for _, role := range roles {
		if role.IsValid() {
			set[role] = struct{}{}
		}
	}
	return set
}

// Allows reports whether role is in the set.
func (s RoleSet) Allows(role UserRole) bool {
	_, ok := s[role]
	return ok
}

func (s RoleSet) String() string {
	parts := make([]string, 0, len(s))
	for _, candidate := range validUserRoles {
		if s.Allows(candidate) {
			parts = append(parts, string(candidate))
		}
	}
	return strings.Join(parts, ",")
}

var (
	RolesAdmin         = Roles(UserRoleAdmin)
	RolesManagement    = Roles(UserRoleAdmin, UserRoleManager)
	RolesMaintenance   = Roles(UserRoleAdmin, UserRoleManager, UserRoleMechanic)
	RolesAuthenticated = Roles(validUserRoles...)
)
