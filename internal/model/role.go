package model

// Role is a privilege level of a user.
type Role string

const (
	// RoleAdmin is the least privileged role.
	RoleAdmin Role = "admin"
	// RoleSuperAdmin can manage other users' sessions.
	RoleSuperAdmin Role = "super_admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}
