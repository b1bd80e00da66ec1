package auth

import (
	"fmt"
	"strings"
)

type Role string

const (
	RoleAdmin  Role = "Admin"
	RoleEditor Role = "Editor"
	RoleViewer Role = "Viewer"
)

// ParseRole matches s against the role enum.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleEditor, RoleViewer:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// AssignableRole validates a client-supplied role on user creation. Admin can
// never be requested, whatever the spelling: the comparison is
// case-insensitive so "admin" and "ADMIN" are rejected the same as "Admin".
func AssignableRole(s string) (Role, error) {
	if strings.EqualFold(s, string(RoleAdmin)) {
		return "", fmt.Errorf("role %s cannot be assigned", RoleAdmin)
	}
	role, err := ParseRole(s)
	if err != nil {
		return "", err
	}
	return role, nil
}

// CanManageUsers reports whether the role may list, create or delete users.
func CanManageUsers(role Role) bool {
	return role == RoleAdmin
}

// CanManageCatalog reports whether the role may mutate artists, albums and
// tracks. Viewers are read-only.
func CanManageCatalog(role Role) bool {
	return role == RoleAdmin || role == RoleEditor
}

// CanDeleteUser decides whether requester may delete target. Only admins
// delete users at all, and an admin account can only be deleted by itself.
func CanDeleteUser(requester Role, requesterID string, target Role, targetID string) bool {
	if requester != RoleAdmin {
		return false
	}
	if target == RoleAdmin && requesterID != targetID {
		return false
	}
	return true
}
