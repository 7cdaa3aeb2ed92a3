package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"fractal.app/api/common"
	"fractal.app/api/common/id"
	"fractal.app/api/internal/model"
	"fractal.app/api/internal/store"
)

const maxSlugAttempts = 20

type UpdateWorkspaceParams struct {
	Name string  // blank keeps the current name
	Slug *string // nil or blank keeps the current slug
}

type WorkspaceService interface {
	Create(ctx context.Context, userID int64, name string) (*model.WorkspaceWithRole, error)
	ListForUser(ctx context.Context, userID int64) ([]model.WorkspaceWithRole, error)
	ListMembers(ctx context.Context, requesterID, workspaceID int64) ([]model.MemberDetail, error)
	Update(ctx context.Context, userID, workspaceID int64, params UpdateWorkspaceParams) (*model.Workspace, error)
	UpdateMemberRole(ctx context.Context, requesterID, workspaceID, targetUserID int64, role model.WorkspaceRole) (*model.WorkspaceMember, error)
	RemoveMember(ctx context.Context, requesterID, workspaceID, targetUserID int64) error
	Delete(ctx context.Context, userID, workspaceID int64) error
	TransferOwnership(ctx context.Context, requesterID, workspaceID, newOwnerID int64) error
}

type workspaceService struct {
	stores   StoreProvider
	txRunner TxRunner
}

func NewWorkspaceService(stores StoreProvider, txRunner TxRunner) WorkspaceService {
	return &workspaceService{
		stores:   stores,
		txRunner: txRunner,
	}
}

func (s *workspaceService) Create(ctx context.Context, userID int64, name string) (*model.WorkspaceWithRole, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errBadRequest("workspace name is required")
	}

	var created *model.Workspace
	err := s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		slug, err := ensureSlug(ctx, stores.Workspaces(), name)
		if err != nil {
			return err
		}

		ws := &model.Workspace{
			ID:      id.New(),
			OwnerID: userID,
			Name:    name,
			Slug:    slug,
		}
		if err := stores.Workspaces().Create(ctx, ws); err != nil {
			if errors.Is(err, store.ErrConflict) {
				return errConflict("workspace slug already in use")
			}
			return fmt.Errorf("creating workspace: %w", err)
		}

		if err := stores.WorkspaceMembers().Create(ctx, &model.WorkspaceMember{
			WorkspaceID: ws.ID,
			UserID:      userID,
			Role:        model.WorkspaceRoleOwner,
		}); err != nil {
			return fmt.Errorf("adding workspace owner: %w", err)
		}

		created = ws
		return nil
	})
	if err != nil {
		return nil, err
	}

	recordEvent("workspace", "created")
	slog.InfoContext(ctx, "workspace created",
		"workspace_id", created.ID,
		"slug", created.Slug,
		"user_id", userID,
	)
	return &model.WorkspaceWithRole{Workspace: *created, Role: model.WorkspaceRoleOwner}, nil
}

func (s *workspaceService) ListForUser(ctx context.Context, userID int64) ([]model.WorkspaceWithRole, error) {
	workspaces, err := s.stores.Workspaces().ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing workspaces: %w", err)
	}
	return workspaces, nil
}

func (s *workspaceService) ListMembers(ctx context.Context, requesterID, workspaceID int64) ([]model.MemberDetail, error) {
	if _, err := requireWorkspaceMember(ctx, s.stores, workspaceID, requesterID); err != nil {
		return nil, err
	}

	members, err := s.stores.WorkspaceMembers().ListDetailed(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("listing workspace members: %w", err)
	}
	return members, nil
}

func (s *workspaceService) Update(ctx context.Context, userID, workspaceID int64, params UpdateWorkspaceParams) (*model.Workspace, error) {
	var updated *model.Workspace
	err := s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		if _, err := requireWorkspaceRole(ctx, stores, workspaceID, userID, model.WorkspaceRoleOwner, model.WorkspaceRoleAdmin); err != nil {
			return err
		}

		ws, err := stores.Workspaces().GetByID(ctx, workspaceID)
		if err != nil {
			return fmt.Errorf("getting workspace: %w", err)
		}

		if name := strings.TrimSpace(params.Name); name != "" {
			ws.Name = name
		}
		if params.Slug != nil && strings.TrimSpace(*params.Slug) != "" {
			slug, err := common.Slugify(*params.Slug, "")
			if err != nil {
				return errBadRequest("invalid slug")
			}
			if slug != ws.Slug {
				if _, err := stores.Workspaces().GetBySlug(ctx, slug); err == nil {
					return errConflict("workspace slug already in use")
				} else if !errors.Is(err, store.ErrNotFound) {
					return fmt.Errorf("checking slug availability: %w", err)
				}
				ws.Slug = slug
			}
		}

		if err := stores.Workspaces().Update(ctx, ws); err != nil {
			if errors.Is(err, store.ErrConflict) {
				return errConflict("workspace slug already in use")
			}
			return fmt.Errorf("updating workspace: %w", err)
		}
		updated = ws
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "workspace updated", "workspace_id", workspaceID, "user_id", userID)
	return updated, nil
}

func (s *workspaceService) UpdateMemberRole(ctx context.Context, requesterID, workspaceID, targetUserID int64, role model.WorkspaceRole) (*model.WorkspaceMember, error) {
	if !role.Valid() {
		return nil, errBadRequest("invalid workspace role")
	}
	if role == model.WorkspaceRoleOwner {
		return nil, errForbidden("OWNER cannot be assigned; use transfer ownership")
	}

	var member *model.WorkspaceMember
	err := s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		if _, err := requireWorkspaceRole(ctx, stores, workspaceID, requesterID, model.WorkspaceRoleOwner); err != nil {
			return err
		}

		target, err := stores.WorkspaceMembers().GetForUpdate(ctx, workspaceID, targetUserID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return errNotFound("workspace member not found")
			}
			return fmt.Errorf("getting workspace member: %w", err)
		}
		if target.Role == model.WorkspaceRoleOwner {
			return errForbidden("the workspace owner's role cannot be changed")
		}

		updated, err := stores.WorkspaceMembers().UpdateRole(ctx, workspaceID, targetUserID, role)
		if err != nil {
			return fmt.Errorf("updating workspace member role: %w", err)
		}
		member = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "workspace member role updated",
		"workspace_id", workspaceID,
		"user_id", targetUserID,
		"role", role,
		"requester_id", requesterID,
	)
	return member, nil
}

func (s *workspaceService) RemoveMember(ctx context.Context, requesterID, workspaceID, targetUserID int64) error {
	err := s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		if requesterID != targetUserID {
			if _, err := requireWorkspaceRole(ctx, stores, workspaceID, requesterID, model.WorkspaceRoleOwner); err != nil {
				return err
			}
		}

		target, err := stores.WorkspaceMembers().GetForUpdate(ctx, workspaceID, targetUserID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return errNotFound("workspace member not found")
			}
			return fmt.Errorf("getting workspace member: %w", err)
		}
		if target.Role == model.WorkspaceRoleOwner {
			return errForbidden("the workspace owner cannot leave; transfer ownership first")
		}

		if err := stores.WorkspaceMembers().Delete(ctx, workspaceID, targetUserID); err != nil {
			return fmt.Errorf("removing workspace member: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	recordEvent("workspace_member", "removed")
	slog.InfoContext(ctx, "workspace member removed",
		"workspace_id", workspaceID,
		"user_id", targetUserID,
		"requester_id", requesterID,
	)
	return nil
}

func (s *workspaceService) Delete(ctx context.Context, userID, workspaceID int64) error {
	err := s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		if _, err := requireWorkspaceRole(ctx, stores, workspaceID, userID, model.WorkspaceRoleOwner); err != nil {
			return err
		}
		if err := stores.Workspaces().SoftDelete(ctx, workspaceID); err != nil {
			return fmt.Errorf("deleting workspace: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	recordEvent("workspace", "deleted")
	slog.InfoContext(ctx, "workspace deleted", "workspace_id", workspaceID, "user_id", userID)
	return nil
}

func (s *workspaceService) TransferOwnership(ctx context.Context, requesterID, workspaceID, newOwnerID int64) error {
	err := s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		ws, err := getActiveWorkspace(ctx, stores, workspaceID)
		if err != nil {
			return err
		}
		if ws.OwnerID != requesterID {
			return errForbidden("only the workspace owner can transfer ownership")
		}
		if newOwnerID == requesterID {
			return nil
		}

		if _, err := stores.WorkspaceMembers().GetForUpdate(ctx, workspaceID, newOwnerID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return errBadRequest("new owner must be a workspace member")
			}
			return fmt.Errorf("getting new owner: %w", err)
		}
		if _, err := stores.WorkspaceMembers().GetForUpdate(ctx, workspaceID, requesterID); err != nil {
			return fmt.Errorf("locking current owner: %w", err)
		}

		if _, err := stores.WorkspaceMembers().UpdateRole(ctx, workspaceID, requesterID, model.WorkspaceRoleAdmin); err != nil {
			return fmt.Errorf("demoting current owner: %w", err)
		}
		if _, err := stores.WorkspaceMembers().UpdateRole(ctx, workspaceID, newOwnerID, model.WorkspaceRoleOwner); err != nil {
			return fmt.Errorf("promoting new owner: %w", err)
		}
		if err := stores.Workspaces().UpdateOwner(ctx, workspaceID, newOwnerID); err != nil {
			return fmt.Errorf("updating workspace owner: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	recordEvent("workspace", "ownership_transferred")
	slog.InfoContext(ctx, "workspace ownership transferred",
		"workspace_id", workspaceID,
		"previous_owner_id", requesterID,
		"new_owner_id", newOwnerID,
	)
	return nil
}

func ensureSlug(ctx context.Context, workspaces store.WorkspaceStore, name string) (string, error) {
	base, err := common.Slugify(name, "workspace")
	if err != nil {
		return "", fmt.Errorf("generating slug: %w", err)
	}

	for i := 0; i <= maxSlugAttempts; i++ {
		candidate := common.SlugCandidate(base, i)
		_, err := workspaces.GetBySlug(ctx, candidate)
		if errors.Is(err, store.ErrNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("checking slug availability: %w", err)
		}
	}

	return "", errConflict(fmt.Sprintf("unable to find an available slug for %q", base))
}

func getActiveWorkspace(ctx context.Context, stores StoreProvider, workspaceID int64) (*model.Workspace, error) {
	ws, err := stores.Workspaces().GetByID(ctx, workspaceID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errNotFound("workspace not found")
		}
		return nil, fmt.Errorf("getting workspace: %w", err)
	}
	return ws, nil
}

// requireWorkspaceMember returns the caller's membership in an existing workspace.
func requireWorkspaceMember(ctx context.Context, stores StoreProvider, workspaceID, userID int64) (*model.WorkspaceMember, error) {
	if _, err := getActiveWorkspace(ctx, stores, workspaceID); err != nil {
		return nil, err
	}

	member, err := stores.WorkspaceMembers().Get(ctx, workspaceID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errForbidden("not a workspace member")
		}
		return nil, fmt.Errorf("getting workspace member: %w", err)
	}
	return member, nil
}

func requireWorkspaceRole(ctx context.Context, stores StoreProvider, workspaceID, userID int64, allowed ...model.WorkspaceRole) (*model.WorkspaceMember, error) {
	member, err := requireWorkspaceMember(ctx, stores, workspaceID, userID)
	if err != nil {
		return nil, err
	}
	for _, r := range allowed {
		if member.Role == r {
			return member, nil
		}
	}
	return nil, errForbidden("insufficient permissions")
}
