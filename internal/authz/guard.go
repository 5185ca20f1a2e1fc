// Package authz decides whether a verified identity may perform an action.
//
// Decisions use the role embedded in the access token, not a fresh user
// lookup. A role change therefore takes effect for a user only once their
// current access token expires, so the staleness window is bounded by the
// access token lifetime.
package authz

import (
	"slices"

	"github.com/dtroode/panorama-auth/internal/model"
)

// Decision is the outcome of a policy check.
type Decision bool

const (
	Deny  Decision = false
	Allow Decision = true
)

// Policy is a named set of roles allowed to pass.
type Policy struct {
	Name    string
	allowed []model.Role
}

var (
	// RequireAdmin allows admin and super_admin.
	RequireAdmin = Policy{Name: "admin", allowed: []model.Role{model.RoleAdmin, model.RoleSuperAdmin}}
	// RequireSuperAdmin allows super_admin only.
	RequireSuperAdmin = Policy{Name: "super_admin", allowed: []model.Role{model.RoleSuperAdmin}}
)

// Check evaluates the policy against the identity.
func Check(identity model.Identity, policy Policy) Decision {
	if slices.Contains(policy.allowed, identity.Role) {
		return Allow
	}
	return Deny
}
