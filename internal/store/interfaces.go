package store

import (
	"context"
	"errors"
	"time"

	"fractal.app/api/internal/model"
)

var (
	// ErrNotFound is returned when a requested entity does not exist
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a write violates a uniqueness constraint
	ErrConflict = errors.New("conflict")
)

// UserStore defines the contract for user data access
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// UpsertByEmail inserts the user or refreshes name and avatar of the
	// existing row with the same email. user is overwritten with the stored row.
	UpsertByEmail(ctx context.Context, user *model.User) error
}

// SessionStore defines the contract for session data access
type SessionStore interface {
	Create(ctx context.Context, session *model.Session) error
	GetValid(ctx context.Context, id int64) (*model.Session, error) // checks expiry
	Delete(ctx context.Context, id int64) error
	// DeleteExpired removes lapsed sessions and reports how many went.
	DeleteExpired(ctx context.Context) (int64, error)
}

// WorkspaceStore defines the contract for workspace data access.
// Soft-deleted workspaces are invisible to every read.
type WorkspaceStore interface {
	Create(ctx context.Context, ws *model.Workspace) error
	GetByID(ctx context.Context, id int64) (*model.Workspace, error)
	GetBySlug(ctx context.Context, slug string) (*model.Workspace, error)
	Update(ctx context.Context, ws *model.Workspace) error
	UpdateOwner(ctx context.Context, id, ownerID int64) error
	SoftDelete(ctx context.Context, id int64) error
	ListForUser(ctx context.Context, userID int64) ([]model.WorkspaceWithRole, error)
}

// WorkspaceMemberStore defines the contract for workspace membership data access
type WorkspaceMemberStore interface {
	Get(ctx context.Context, workspaceID, userID int64) (*model.WorkspaceMember, error)
	// GetForUpdate locks the membership row until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, workspaceID, userID int64) (*model.WorkspaceMember, error)
	GetByEmail(ctx context.Context, workspaceID int64, email string) (*model.WorkspaceMember, error)
	ListDetailed(ctx context.Context, workspaceID int64) ([]model.MemberDetail, error)
	Create(ctx context.Context, member *model.WorkspaceMember) error
	UpdateRole(ctx context.Context, workspaceID, userID int64, role model.WorkspaceRole) (*model.WorkspaceMember, error)
	Delete(ctx context.Context, workspaceID, userID int64) error
}

// InvitationStore defines the contract for workspace invitation data access
type InvitationStore interface {
	Create(ctx context.Context, inv *model.Invitation) error
	GetByToken(ctx context.Context, token string) (*model.Invitation, error)
	Delete(ctx context.Context, id int64) error
	DeleteByWorkspaceAndEmail(ctx context.Context, workspaceID int64, email string) error
}

// ProjectStore defines the contract for project data access.
// GetByID returns soft-deleted projects too; callers decide how to treat them.
type ProjectStore interface {
	Create(ctx context.Context, project *model.Project) error
	GetByID(ctx context.Context, id int64) (*model.Project, error)
	ExistsInWorkspace(ctx context.Context, id, workspaceID int64) (bool, error)
	// ListVisible returns the non-deleted projects of the workspace the user
	// holds a direct membership row on, paired with that role.
	ListVisible(ctx context.Context, workspaceID, userID int64) ([]model.ProjectWithRole, error)
	ListByIDs(ctx context.Context, ids []int64) ([]model.Project, error)
	Update(ctx context.Context, project *model.Project) error
	SoftDelete(ctx context.Context, ids []int64, at time.Time) error
	Restore(ctx context.Context, ids []int64) error
}

// ProjectMemberStore defines the contract for project membership data access
type ProjectMemberStore interface {
	Get(ctx context.Context, projectID, userID int64) (*model.ProjectMember, error)
	// GetForUpdate locks the membership row until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, projectID, userID int64) (*model.ProjectMember, error)
	List(ctx context.Context, projectID int64) ([]model.ProjectMember, error)
	ListDetailed(ctx context.Context, projectID int64) ([]model.MemberDetail, error)
	Create(ctx context.Context, member *model.ProjectMember) error
	// CopyFromParent copies every parent membership onto child, skipping
	// excludeUserID and rows that already exist.
	CopyFromParent(ctx context.Context, childID, parentID, excludeUserID int64) error
	UpdateRole(ctx context.Context, projectID, userID int64, role model.ProjectRole) (*model.ProjectMember, error)
	Delete(ctx context.Context, projectID, userID int64) error
	// DeleteByUserInProjects removes the user's non-OWNER rows on every listed
	// project. An empty list is a no-op.
	DeleteByUserInProjects(ctx context.Context, userID int64, projectIDs []int64) error
}

// ProjectHierarchyStore defines the contract for the ancestor/descendant closure table
type ProjectHierarchyStore interface {
	InsertSelfReference(ctx context.Context, projectID int64) error
	// InsertHierarchy links child under every ancestor of parent, parent included.
	InsertHierarchy(ctx context.Context, childID, parentID int64) error
	ListDescendantIDsIncludingSelf(ctx context.Context, ancestorID int64) ([]int64, error)
	ListDescendantIDs(ctx context.Context, ancestorID int64) ([]int64, error)
	// ListAncestors returns ancestors of the project ordered nearest first, self included at depth 0.
	ListAncestors(ctx context.Context, descendantID int64) ([]model.ProjectAncestor, error)
}
