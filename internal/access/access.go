// Package access decides what a caller may read and mutate.
//
// Everything here is a pure function of the caller's identity and role set.
// Read decisions are returned as scopes which the store turns into SQL
// predicates; the same scopes can be evaluated in memory with Includes.
// Mutation decisions are returned as errors wrapping ErrForbidden.
package access

import (
	"errors"

	"github.com/adanyl0v/taskflow/internal/models"
)

// ErrForbidden is wrapped by every mutation verdict that denies the caller.
var ErrForbidden = errors.New("forbidden")

// Caller is the authenticated actor of a request.
type Caller struct {
	UserID string
	Roles  models.RoleSet
}

// Role is the most privileged role the caller holds.
func (c Caller) Role() models.Role {
	return c.Roles.Highest()
}

// Privileged reports whether the caller sees and manages everything,
// which is the case for admins and managers.
func (c Caller) Privileged() bool {
	switch c.Role() {
	case models.RoleAdmin, models.RoleManager:
		return true
	default:
		return false
	}
}

// IsAdmin reports whether the caller holds the admin role.
func (c Caller) IsAdmin() bool {
	return c.Role() == models.RoleAdmin
}
