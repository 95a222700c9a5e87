package models

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownRole = errors.New("unknown role")

// Role is ordered by privilege: a greater value outranks a smaller one.
type Role uint8

const (
	RoleNone Role = iota
	RoleMember
	RoleManager
	RoleAdmin
)

var roleNames = map[Role]string{
	RoleMember:  "Member",
	RoleManager: "Manager",
	RoleAdmin:   "Admin",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "None"
}

func (r Role) Valid() bool {
	return r >= RoleMember && r <= RoleAdmin
}

// ParseRole accepts a role name case-insensitively.
func ParseRole(s string) (Role, error) {
	for role, name := range roleNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return role, nil
		}
	}
	return RoleNone, fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

// RoleSet is a bit set of roles held by a single user.
type RoleSet uint8

func NewRoleSet(roles ...Role) RoleSet {
	var s RoleSet
	for _, r := range roles {
		s = s.With(r)
	}
	return s
}

func (s RoleSet) With(r Role) RoleSet {
	if !r.Valid() {
		return s
	}
	return s | 1<<r
}

func (s RoleSet) Has(r Role) bool {
	return r.Valid() && s&(1<<r) != 0
}

// Highest returns the most privileged role in the set, or RoleNone.
func (s RoleSet) Highest() Role {
	for r := RoleAdmin; r >= RoleMember; r-- {
		if s.Has(r) {
			return r
		}
	}
	return RoleNone
}

func (s RoleSet) Roles() []Role {
	roles := make([]Role, 0, 3)
	for r := RoleAdmin; r >= RoleMember; r-- {
		if s.Has(r) {
			roles = append(roles, r)
		}
	}
	return roles
}

func (s RoleSet) Strings() []string {
	roles := s.Roles()
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = r.String()
	}
	return names
}
