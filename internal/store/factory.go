package store

import (
	"fractal.app/api/core/db/sqlc"
)

type Stores struct {
	queries *sqlc.Queries
}

func NewStores(queries *sqlc.Queries) *Stores {
	return &Stores{queries: queries}
}

func (s *Stores) Users() UserStore {
	return newUserStore(s.queries)
}

func (s *Stores) Sessions() SessionStore {
	return newSessionStore(s.queries)
}

func (s *Stores) Workspaces() WorkspaceStore {
	return newWorkspaceStore(s.queries)
}

func (s *Stores) WorkspaceMembers() WorkspaceMemberStore {
	return newWorkspaceMemberStore(s.queries)
}

func (s *Stores) Invitations() InvitationStore {
	return newInvitationStore(s.queries)
}

func (s *Stores) Projects() ProjectStore {
	return newProjectStore(s.queries)
}

func (s *Stores) ProjectMembers() ProjectMemberStore {
	return newProjectMemberStore(s.queries)
}

func (s *Stores) ProjectHierarchy() ProjectHierarchyStore {
	return newProjectHierarchyStore(s.queries)
}
