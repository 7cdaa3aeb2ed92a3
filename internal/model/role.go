package model

import (
	"errors"
	"strings"
)

var ErrInvalidRole = errors.New("invalid role")

// ProjectRole is the role a user holds on a single project.
type ProjectRole string

const (
	ProjectRoleOwner  ProjectRole = "OWNER"
	ProjectRoleAdmin  ProjectRole = "ADMIN"
	ProjectRoleEditor ProjectRole = "EDITOR"
	ProjectRoleViewer ProjectRole = "VIEWER"
)

func (r ProjectRole) Valid() bool {
	switch r {
	case ProjectRoleOwner, ProjectRoleAdmin, ProjectRoleEditor, ProjectRoleViewer:
		return true
	}
	return false
}

// Assignable reports whether the role can be granted directly. OWNER only
// changes hands through an ownership transfer.
func (r ProjectRole) Assignable() bool {
	return r.Valid() && r != ProjectRoleOwner
}

func ParseProjectRole(s string) (ProjectRole, error) {
	r := ProjectRole(strings.ToUpper(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

// WorkspaceRole is the role a user holds inside a workspace.
type WorkspaceRole string

const (
	WorkspaceRoleOwner  WorkspaceRole = "OWNER"
	WorkspaceRoleAdmin  WorkspaceRole = "ADMIN"
	WorkspaceRoleMember WorkspaceRole = "MEMBER"
)

func (r WorkspaceRole) Valid() bool {
	switch r {
	case WorkspaceRoleOwner, WorkspaceRoleAdmin, WorkspaceRoleMember:
		return true
	}
	return false
}

// IsAdmin is true for OWNER and ADMIN, the roles that administer every
// project in the workspace.
func (r WorkspaceRole) IsAdmin() bool {
	return r == WorkspaceRoleOwner || r == WorkspaceRoleAdmin
}

func ParseWorkspaceRole(s string) (WorkspaceRole, error) {
	r := WorkspaceRole(strings.ToUpper(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

// ProjectRoles is a set of project roles used for permission checks.
type ProjectRoles []ProjectRole

func (rs ProjectRoles) Contains(role ProjectRole) bool {
	for _, r := range rs {
		if r == role {
			return true
		}
	}
	return false
}

var (
	ProjectAdminRoles = ProjectRoles{ProjectRoleOwner, ProjectRoleAdmin}
	ProjectOwnerRoles = ProjectRoles{ProjectRoleOwner}
)
