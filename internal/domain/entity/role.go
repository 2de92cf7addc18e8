// Package entity contains the core business objects of the project.
package entity

// Role represents the type of role an account can hold in the system.
// Each role keeps its own independent account collection: the same email may
// be registered under every role, but only once within a role.
type Role string

const (
	// RoleUser indicates a regular rating user.
	RoleUser Role = "user"
	// RoleOwner indicates a store owner.
	RoleOwner Role = "owner"
	// RoleAdmin indicates a system administrator.
	RoleAdmin Role = "admin"
)

// AllRoles lists every valid role, in the order the admin dashboard reports them.
//
//nolint:gochecknoglobals
var AllRoles = Roles{RoleUser, RoleOwner, RoleAdmin}

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleOwner, RoleAdmin:
		return true
	default:
		return false
	}
}

// Collection returns the role's account collection name ("users", "owners",
// "admins"), matching the per-role table naming of the account directory.
func (r Role) Collection() string {
	return string(r) + "s"
}

// DashboardPath returns the client-side dashboard entry point for the role.
func (r Role) DashboardPath() string {
	return "/pages/" + string(r) + "dashboard"
}

// Roles is a slice of Role for convenience.
type Roles []Role
