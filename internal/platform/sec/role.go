// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

// UserRole represents the authorization level granted to an identity.
type UserRole string

const (
	// RoleAdmin may create and delete plays.
	RoleAdmin UserRole = "admin"

	// RoleMember is every signed-in identity.
	RoleMember UserRole = "member"
)

// RoleFor maps the profile admin flag to a role.
func RoleFor(isAdmin bool) UserRole {
	if isAdmin {
		return RoleAdmin
	}
	return RoleMember
}

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

func (r UserRole) level() int {
	switch r {
	case RoleAdmin:
		return 20
	case RoleMember:
		return 10
	default:
		return 0
	}
}
