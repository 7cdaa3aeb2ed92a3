package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"fractal.app/api/common/id"
	"fractal.app/api/common/logger"
	"fractal.app/api/internal/model"
	"fractal.app/api/internal/store"
)

type CreateProjectParams struct {
	Name     string
	Color    *string
	ParentID *int64
}

type UpdateProjectParams struct {
	Name  string  // blank keeps the current name
	Color *string // nil keeps the current color
}

type ProjectService interface {
	Create(ctx context.Context, userID, workspaceID int64, params CreateProjectParams) (*model.ProjectWithRole, error)
	List(ctx context.Context, userID, workspaceID int64) ([]model.ProjectWithRole, error)
	Update(ctx context.Context, userID, projectID int64, params UpdateProjectParams) (*model.Project, error)
	Delete(ctx context.Context, userID, projectID int64) error
	Restore(ctx context.Context, userID, projectID int64) error
	ListMembers(ctx context.Context, userID, projectID int64) ([]model.MemberDetail, error)
	AddMember(ctx context.Context, requesterID, projectID, newUserID int64, role model.ProjectRole) (*model.ProjectMember, error)
	RemoveMember(ctx context.Context, requesterID, projectID, targetUserID int64) error
	UpdateMemberRole(ctx context.Context, requesterID, projectID, targetUserID int64, role model.ProjectRole) (*model.ProjectMember, error)
	TransferOwnership(ctx context.Context, requesterID, projectID, newOwnerID int64) error
}

type projectService struct {
	stores   StoreProvider
	txRunner TxRunner
	perms    PermissionResolver
	now      func() time.Time
}

func NewProjectService(stores StoreProvider, txRunner TxRunner, perms PermissionResolver) ProjectService {
	return &projectService{
		stores:   stores,
		txRunner: txRunner,
		perms:    perms,
		now:      time.Now,
	}
}

func (s *projectService) Create(ctx context.Context, userID, workspaceID int64, params CreateProjectParams) (*model.ProjectWithRole, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, errBadRequest("project name is required")
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		WorkspaceID: logger.Ptr(workspaceID),
		Component:   "fractal.service.project",
	})

	var created *model.Project
	err := s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		if _, err := requireWorkspaceMember(ctx, stores, workspaceID, userID); err != nil {
			return err
		}

		if params.ParentID != nil {
			parentID := *params.ParentID
			ok, err := stores.Projects().ExistsInWorkspace(ctx, parentID, workspaceID)
			if err != nil {
				return fmt.Errorf("checking parent project: %w", err)
			}
			if !ok {
				return errBadRequest("parent project not found in workspace")
			}
			// Direct membership on the parent is required even for workspace admins.
			if _, err := stores.ProjectMembers().Get(ctx, parentID, userID); err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return errForbidden("not a member of the parent project")
				}
				return fmt.Errorf("getting parent membership: %w", err)
			}
		}

		project := &model.Project{
			ID:          id.New(),
			WorkspaceID: workspaceID,
			ParentID:    params.ParentID,
			Name:        name,
			Color:       params.Color,
			CreatedBy:   userID,
		}
		if err := stores.Projects().Create(ctx, project); err != nil {
			return fmt.Errorf("creating project: %w", err)
		}

		if err := stores.ProjectHierarchy().InsertSelfReference(ctx, project.ID); err != nil {
			return fmt.Errorf("inserting self reference: %w", err)
		}
		if params.ParentID != nil {
			if err := stores.ProjectHierarchy().InsertHierarchy(ctx, project.ID, *params.ParentID); err != nil {
				return fmt.Errorf("linking to parent: %w", err)
			}
		}

		owner := &model.ProjectMember{
			ProjectID: project.ID,
			UserID:    userID,
			Role:      model.ProjectRoleOwner,
		}
		if err := stores.ProjectMembers().Create(ctx, owner); err != nil {
			return fmt.Errorf("adding owner: %w", err)
		}

		if params.ParentID != nil {
			if err := stores.ProjectMembers().CopyFromParent(ctx, project.ID, *params.ParentID, userID); err != nil {
				return fmt.Errorf("inheriting parent members: %w", err)
			}
		}

		created = project
		return nil
	})
	if err != nil {
		return nil, err
	}

	recordEvent("project", "created")
	slog.InfoContext(ctx, "project created",
		"project_id", created.ID,
		"parent_id", created.ParentID,
		"user_id", userID,
	)

	return &model.ProjectWithRole{Project: *created, Role: model.ProjectRoleOwner}, nil
}

func (s *projectService) List(ctx context.Context, userID, workspaceID int64) ([]model.ProjectWithRole, error) {
	if _, err := requireWorkspaceMember(ctx, s.stores, workspaceID, userID); err != nil {
		return nil, err
	}

	projects, err := s.stores.Projects().ListVisible(ctx, workspaceID, userID)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return projects, nil
}

func (s *projectService) Update(ctx context.Context, userID, projectID int64, params UpdateProjectParams) (*model.Project, error) {
	var updated *model.Project
	err := s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		project, err := s.perms.ValidateProjectAdminAccess(ctx, stores, userID, projectID)
		if err != nil {
			return err
		}

		if name := strings.TrimSpace(params.Name); name != "" {
			project.Name = name
		}
		if params.Color != nil {
			project.Color = params.Color
		}

		if err := stores.Projects().Update(ctx, project); err != nil {
			return fmt.Errorf("updating project: %w", err)
		}
		updated = project
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "project updated", "project_id", projectID, "user_id", userID)
	return updated, nil
}

func (s *projectService) Delete(ctx context.Context, userID, projectID int64) error {
	sc := logger.StartSpan(logger.WithLogFields(ctx, logger.LogFields{ProjectID: logger.Ptr(projectID)}), "project.delete")
	defer sc.End()
	ctx = sc.Context()

	var count int
	err := s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		if _, err := s.perms.CheckStrictPermission(ctx, stores, userID, projectID, model.ProjectOwnerRoles); err != nil {
			return err
		}

		ids, err := stores.ProjectHierarchy().ListDescendantIDsIncludingSelf(ctx, projectID)
		if err != nil {
			return fmt.Errorf("listing descendants: %w", err)
		}

		if err := stores.Projects().SoftDelete(ctx, ids, s.now()); err != nil {
			return fmt.Errorf("soft deleting projects: %w", err)
		}
		count = len(ids)
		return nil
	})
	if err != nil {
		sc.RecordError(err)
		return err
	}

	recordEvent("project", "deleted")
	slog.InfoContext(ctx, "project subtree deleted", "project_id", projectID, "count", count, "user_id", userID)
	return nil
}

func (s *projectService) Restore(ctx context.Context, userID, projectID int64) error {
	var count int
	err := s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		project, err := s.perms.CheckDeletedPermission(ctx, stores, userID, projectID, model.ProjectOwnerRoles)
		if err != nil {
			return err
		}
		if !project.IsDeleted() {
			return errBadRequest("project is not deleted")
		}

		if err := ensureAncestorsActive(ctx, stores, projectID); err != nil {
			return err
		}

		ids, err := stores.ProjectHierarchy().ListDescendantIDsIncludingSelf(ctx, projectID)
		if err != nil {
			return fmt.Errorf("listing descendants: %w", err)
		}

		if err := stores.Projects().Restore(ctx, ids); err != nil {
			return fmt.Errorf("restoring projects: %w", err)
		}
		count = len(ids)
		return nil
	})
	if err != nil {
		return err
	}

	recordEvent("project", "restored")
	slog.InfoContext(ctx, "project subtree restored", "project_id", projectID, "count", count, "user_id", userID)
	return nil
}

// ensureAncestorsActive refuses to restore a subtree under a parent that is still deleted.
func ensureAncestorsActive(ctx context.Context, stores StoreProvider, projectID int64) error {
	ancestors, err := stores.ProjectHierarchy().ListAncestors(ctx, projectID)
	if err != nil {
		return fmt.Errorf("listing ancestors: %w", err)
	}

	var ids []int64
	for _, a := range ancestors {
		if a.Depth > 0 {
			ids = append(ids, a.AncestorID)
		}
	}

	projects, err := stores.Projects().ListByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("loading ancestors: %w", err)
	}
	for _, p := range projects {
		if p.IsDeleted() {
			return errBadRequest("restore the parent project first")
		}
	}
	return nil
}

func (s *projectService) ListMembers(ctx context.Context, userID, projectID int64) ([]model.MemberDetail, error) {
	if _, err := s.perms.CheckStrictPermission(ctx, s.stores, userID, projectID, anyProjectRole); err != nil {
		return nil, err
	}

	members, err := s.stores.ProjectMembers().ListDetailed(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing project members: %w", err)
	}
	return members, nil
}

func (s *projectService) AddMember(ctx context.Context, requesterID, projectID, newUserID int64, role model.ProjectRole) (*model.ProjectMember, error) {
	if err := validateAssignableProjectRole(role); err != nil {
		return nil, err
	}

	var member *model.ProjectMember
	err := s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		project, err := s.perms.ValidateProjectAdminAccess(ctx, stores, requesterID, projectID)
		if err != nil {
			return err
		}

		if _, err := stores.WorkspaceMembers().Get(ctx, project.WorkspaceID, newUserID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return errBadRequest("user is not a member of the workspace")
			}
			return fmt.Errorf("getting workspace member: %w", err)
		}

		m := &model.ProjectMember{
			ProjectID: projectID,
			UserID:    newUserID,
			Role:      role,
		}
		if err := stores.ProjectMembers().Create(ctx, m); err != nil {
			if errors.Is(err, store.ErrConflict) {
				return errConflict("user is already a project member")
			}
			return fmt.Errorf("adding project member: %w", err)
		}
		member = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	recordEvent("project_member", "added")
	slog.InfoContext(ctx, "project member added",
		"project_id", projectID,
		"user_id", newUserID,
		"role", role,
		"requester_id", requesterID,
	)
	return member, nil
}

func (s *projectService) RemoveMember(ctx context.Context, requesterID, projectID, targetUserID int64) error {
	var cascaded int
	err := s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		if requesterID != targetUserID {
			if _, err := s.perms.ValidateProjectAdminAccess(ctx, stores, requesterID, projectID); err != nil {
				return err
			}
		} else if err := requireActiveProject(ctx, stores, projectID); err != nil {
			return err
		}

		target, err := stores.ProjectMembers().GetForUpdate(ctx, projectID, targetUserID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return errNotFound("project member not found")
			}
			return fmt.Errorf("getting project member: %w", err)
		}
		if target.Role == model.ProjectRoleOwner {
			return errForbidden("the project owner cannot be removed; transfer ownership first")
		}

		if err := stores.ProjectMembers().Delete(ctx, projectID, targetUserID); err != nil {
			return fmt.Errorf("removing project member: %w", err)
		}

		descendants, err := stores.ProjectHierarchy().ListDescendantIDs(ctx, projectID)
		if err != nil {
			return fmt.Errorf("listing descendants: %w", err)
		}
		if err := stores.ProjectMembers().DeleteByUserInProjects(ctx, targetUserID, descendants); err != nil {
			return fmt.Errorf("removing member from subprojects: %w", err)
		}
		cascaded = len(descendants)
		return nil
	})
	if err != nil {
		return err
	}

	recordEvent("project_member", "removed")
	slog.InfoContext(ctx, "project member removed",
		"project_id", projectID,
		"user_id", targetUserID,
		"requester_id", requesterID,
		"descendants", cascaded,
	)
	return nil
}

func (s *projectService) UpdateMemberRole(ctx context.Context, requesterID, projectID, targetUserID int64, role model.ProjectRole) (*model.ProjectMember, error) {
	if err := validateAssignableProjectRole(role); err != nil {
		return nil, err
	}

	var member *model.ProjectMember
	err := s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		if _, err := s.perms.ValidateProjectAdminAccess(ctx, stores, requesterID, projectID); err != nil {
			return err
		}

		target, err := stores.ProjectMembers().GetForUpdate(ctx, projectID, targetUserID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return errNotFound("project member not found")
			}
			return fmt.Errorf("getting project member: %w", err)
		}
		if target.Role == model.ProjectRoleOwner {
			return errForbidden("the project owner's role cannot be changed; transfer ownership instead")
		}

		updated, err := stores.ProjectMembers().UpdateRole(ctx, projectID, targetUserID, role)
		if err != nil {
			return fmt.Errorf("updating member role: %w", err)
		}
		member = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "project member role updated",
		"project_id", projectID,
		"user_id", targetUserID,
		"role", role,
		"requester_id", requesterID,
	)
	return member, nil
}

func (s *projectService) TransferOwnership(ctx context.Context, requesterID, projectID, newOwnerID int64) error {
	var previousOwnerID int64
	err := s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		if _, err := s.perms.CheckStrictPermission(ctx, stores, requesterID, projectID, model.ProjectOwnerRoles); err != nil {
			return err
		}

		if _, err := stores.ProjectMembers().GetForUpdate(ctx, projectID, newOwnerID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return errBadRequest("new owner must be a project member")
			}
			return fmt.Errorf("getting new owner: %w", err)
		}

		// The requester may be a workspace admin without a project row, so find
		// the owner by scanning the members.
		members, err := stores.ProjectMembers().List(ctx, projectID)
		if err != nil {
			return fmt.Errorf("listing project members: %w", err)
		}
		var current *model.ProjectMember
		for i := range members {
			if members[i].Role == model.ProjectRoleOwner {
				current = &members[i]
				break
			}
		}
		if current == nil {
			return errInternal("project has no owner")
		}
		previousOwnerID = current.UserID
		if current.UserID == newOwnerID {
			return nil
		}

		if _, err := stores.ProjectMembers().GetForUpdate(ctx, projectID, current.UserID); err != nil {
			return fmt.Errorf("locking current owner: %w", err)
		}
		if _, err := stores.ProjectMembers().UpdateRole(ctx, projectID, current.UserID, model.ProjectRoleAdmin); err != nil {
			return fmt.Errorf("demoting current owner: %w", err)
		}
		if _, err := stores.ProjectMembers().UpdateRole(ctx, projectID, newOwnerID, model.ProjectRoleOwner); err != nil {
			return fmt.Errorf("promoting new owner: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if previousOwnerID != newOwnerID {
		recordEvent("project", "ownership_transferred")
	}
	slog.InfoContext(ctx, "project ownership transferred",
		"project_id", projectID,
		"previous_owner_id", previousOwnerID,
		"new_owner_id", newOwnerID,
		"requester_id", requesterID,
	)
	return nil
}

func validateAssignableProjectRole(role model.ProjectRole) error {
	if role == model.ProjectRoleOwner {
		return errBadRequest("OWNER cannot be assigned; use transfer ownership")
	}
	if !role.Assignable() {
		return errBadRequest("invalid project role")
	}
	return nil
}

func requireActiveProject(ctx context.Context, stores StoreProvider, projectID int64) error {
	project, err := stores.Projects().GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errNotFound("project not found")
		}
		return fmt.Errorf("getting project: %w", err)
	}
	if project.IsDeleted() {
		return errNotFound("project not found")
	}
	return nil
}
