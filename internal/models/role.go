package models

import "fmt"

// UserRole defines the access level of a user account.
type UserRole string

const (
	RoleUser      UserRole = "USER"
	RolePremium   UserRole = "PREMIUM"
	RoleAdmin     UserRole = "ADMIN"
	RoleModerator UserRole = "MODERATOR"
)

// DisplayName returns the user-facing name for the role.
func (r UserRole) DisplayName() string {
	switch r {
	case RoleUser:
		return "User"
	case RolePremium:
		return "Premium User"
	case RoleAdmin:
		return "Administrator"
	case RoleModerator:
		return "Moderator"
	}
	return string(r)
}

// HasAdminPrivileges reports whether the role may perform administrative actions.
func (r UserRole) HasAdminPrivileges() bool {
	return r == RoleAdmin || r == RoleModerator
}

// HasPremiumAccess reports whether the role unlocks premium features.
func (r UserRole) HasPremiumAccess() bool {
	return r == RolePremium || r == RoleAdmin || r == RoleModerator
}

// ParseUserRole converts a stored role name into a UserRole.
func ParseUserRole(s string) (UserRole, error) {
	switch UserRole(s) {
	case RoleUser, RolePremium, RoleAdmin, RoleModerator:
		return UserRole(s), nil
	}
	return "", fmt.Errorf("unknown user role: %q", s)
}
