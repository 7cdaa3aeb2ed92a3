package service

import (
	"context"
	"errors"
	"fmt"

	"fractal.app/api/internal/model"
	"fractal.app/api/internal/store"
)

// anyProjectRole admits every project member.
var anyProjectRole = model.ProjectRoles{
	model.ProjectRoleOwner,
	model.ProjectRoleAdmin,
	model.ProjectRoleEditor,
	model.ProjectRoleViewer,
}

// PermissionResolver decides whether a user may act on a project.
//
// Workspace OWNER and ADMIN members pass every check regardless of the
// allowed project roles, so they can administer projects they were never
// added to. Everyone else needs a direct project membership with one of the
// allowed roles. Checks read through the given StoreProvider so they observe
// the same transaction as the writes that follow; nothing is cached.
type PermissionResolver interface {
	CheckStrictPermission(ctx context.Context, stores StoreProvider, userID, projectID int64, allowed model.ProjectRoles) (*model.Project, error)
	ValidateProjectAdminAccess(ctx context.Context, stores StoreProvider, userID, projectID int64) (*model.Project, error)
	// CheckDeletedPermission is CheckStrictPermission for a project that may be soft-deleted.
	CheckDeletedPermission(ctx context.Context, stores StoreProvider, userID, projectID int64, allowed model.ProjectRoles) (*model.Project, error)
}

type permissionResolver struct{}

func NewPermissionResolver() PermissionResolver {
	return permissionResolver{}
}

func (r permissionResolver) CheckStrictPermission(ctx context.Context, stores StoreProvider, userID, projectID int64, allowed model.ProjectRoles) (*model.Project, error) {
	return r.check(ctx, stores, userID, projectID, allowed, false)
}

func (r permissionResolver) ValidateProjectAdminAccess(ctx context.Context, stores StoreProvider, userID, projectID int64) (*model.Project, error) {
	return r.check(ctx, stores, userID, projectID, model.ProjectAdminRoles, false)
}

func (r permissionResolver) CheckDeletedPermission(ctx context.Context, stores StoreProvider, userID, projectID int64, allowed model.ProjectRoles) (*model.Project, error) {
	return r.check(ctx, stores, userID, projectID, allowed, true)
}

func (permissionResolver) check(ctx context.Context, stores StoreProvider, userID, projectID int64, allowed model.ProjectRoles, allowDeleted bool) (*model.Project, error) {
	project, err := stores.Projects().GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errNotFound("project not found")
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	if project.IsDeleted() && !allowDeleted {
		return nil, errNotFound("project not found")
	}

	wsMember, err := stores.WorkspaceMembers().Get(ctx, project.WorkspaceID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errForbidden("not a workspace member")
		}
		return nil, fmt.Errorf("getting workspace member: %w", err)
	}
	if wsMember.Role.IsAdmin() {
		return project, nil
	}

	member, err := stores.ProjectMembers().Get(ctx, projectID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errForbidden("not a project member")
		}
		return nil, fmt.Errorf("getting project member: %w", err)
	}
	if !allowed.Contains(member.Role) {
		return nil, errForbidden("insufficient permissions")
	}

	return project, nil
}
