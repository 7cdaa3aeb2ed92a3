package service_test

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"slices"
	"time"

	"fractal.app/api/internal/model"
	"fractal.app/api/internal/service"
	"fractal.app/api/internal/store"
)

type pair [2]int64

// memDB is an in-memory StoreProvider with the same read semantics as the
// SQL queries. newMemTxRunner gives it rollback on error.
type memDB struct {
	users       map[int64]model.User
	sessions    map[int64]model.Session
	workspaces  map[int64]model.Workspace
	wsMembers   map[pair]model.WorkspaceMember
	invitations map[int64]model.Invitation
	projects    map[int64]model.Project
	projMembers map[pair]model.ProjectMember
	closure     map[pair]int32 // (ancestor, descendant) -> depth

	// failOn makes the named store method return the error.
	failOn map[string]error
	clock  time.Time
}

func newMemDB() *memDB {
	return &memDB{
		users:       map[int64]model.User{},
		sessions:    map[int64]model.Session{},
		workspaces:  map[int64]model.Workspace{},
		wsMembers:   map[pair]model.WorkspaceMember{},
		invitations: map[int64]model.Invitation{},
		projects:    map[int64]model.Project{},
		projMembers: map[pair]model.ProjectMember{},
		closure:     map[pair]int32{},
		failOn:      map[string]error{},
		clock:       time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *memDB) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memDB) fail(op string) error {
	return m.failOn[op]
}

func (m *memDB) snapshot() *memDB {
	return &memDB{
		users:       maps.Clone(m.users),
		sessions:    maps.Clone(m.sessions),
		workspaces:  maps.Clone(m.workspaces),
		wsMembers:   maps.Clone(m.wsMembers),
		invitations: maps.Clone(m.invitations),
		projects:    maps.Clone(m.projects),
		projMembers: maps.Clone(m.projMembers),
		closure:     maps.Clone(m.closure),
	}
}

func (m *memDB) restore(s *memDB) {
	m.users = s.users
	m.sessions = s.sessions
	m.workspaces = s.workspaces
	m.wsMembers = s.wsMembers
	m.invitations = s.invitations
	m.projects = s.projects
	m.projMembers = s.projMembers
	m.closure = s.closure
}

func newMemTxRunner(db *memDB) *mockTxRunner {
	return &mockTxRunner{
		withTxFn: func(_ context.Context, fn func(stores service.StoreProvider) error) error {
			snap := db.snapshot()
			if err := fn(db); err != nil {
				db.restore(snap)
				return err
			}
			return nil
		},
	}
}

func (m *memDB) Users() store.UserStore                       { return memUsers{m} }
func (m *memDB) Sessions() store.SessionStore                 { return memSessions{m} }
func (m *memDB) Workspaces() store.WorkspaceStore             { return memWorkspaces{m} }
func (m *memDB) WorkspaceMembers() store.WorkspaceMemberStore { return memWorkspaceMembers{m} }
func (m *memDB) Invitations() store.InvitationStore           { return memInvitations{m} }
func (m *memDB) Projects() store.ProjectStore                 { return memProjects{m} }
func (m *memDB) ProjectMembers() store.ProjectMemberStore     { return memProjectMembers{m} }
func (m *memDB) ProjectHierarchy() store.ProjectHierarchyStore {
	return memHierarchy{m}
}

// --- seeding helpers ---------------------------------------------------------

func (m *memDB) addUser(id int64, email string) {
	m.users[id] = model.User{ID: id, Name: email, Email: email, CreatedAt: m.tick()}
}

func (m *memDB) addWorkspace(id, ownerID int64) {
	m.workspaces[id] = model.Workspace{ID: id, OwnerID: ownerID, Name: "ws", Slug: fmt.Sprintf("ws-%d", id), CreatedAt: m.tick()}
	m.wsMembers[pair{id, ownerID}] = model.WorkspaceMember{WorkspaceID: id, UserID: ownerID, Role: model.WorkspaceRoleOwner, JoinedAt: m.tick()}
}

func (m *memDB) addWorkspaceMember(workspaceID, userID int64, role model.WorkspaceRole) {
	m.wsMembers[pair{workspaceID, userID}] = model.WorkspaceMember{WorkspaceID: workspaceID, UserID: userID, Role: role, JoinedAt: m.tick()}
}

func (m *memDB) projectRole(projectID, userID int64) (model.ProjectRole, bool) {
	pm, ok := m.projMembers[pair{projectID, userID}]
	return pm.Role, ok
}

func (m *memDB) projectMemberRoles(projectID int64) map[int64]model.ProjectRole {
	out := map[int64]model.ProjectRole{}
	for k, v := range m.projMembers {
		if k[0] == projectID {
			out[k[1]] = v.Role
		}
	}
	return out
}

// --- users -------------------------------------------------------------------

type memUsers struct{ m *memDB }

func (s memUsers) GetByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := s.m.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (s memUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range s.m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s memUsers) UpsertByEmail(ctx context.Context, user *model.User) error {
	if existing, err := s.GetByEmail(ctx, user.Email); err == nil {
		existing.Name = user.Name
		existing.AvatarURL = user.AvatarURL
		s.m.users[existing.ID] = *existing
		*user = *existing
		return nil
	}
	user.CreatedAt = s.m.tick()
	s.m.users[user.ID] = *user
	return nil
}

// --- sessions ----------------------------------------------------------------

type memSessions struct{ m *memDB }

func (s memSessions) Create(_ context.Context, session *model.Session) error {
	s.m.sessions[session.ID] = *session
	return nil
}

func (s memSessions) GetValid(_ context.Context, id int64) (*model.Session, error) {
	sess, ok := s.m.sessions[id]
	if !ok || sess.Expired(time.Now()) {
		return nil, store.ErrNotFound
	}
	return &sess, nil
}

func (s memSessions) Delete(_ context.Context, id int64) error {
	delete(s.m.sessions, id)
	return nil
}

func (s memSessions) DeleteExpired(_ context.Context) (int64, error) {
	now := time.Now()
	before := len(s.m.sessions)
	maps.DeleteFunc(s.m.sessions, func(_ int64, v model.Session) bool { return v.Expired(now) })
	return int64(before - len(s.m.sessions)), nil
}

// --- workspaces --------------------------------------------------------------

type memWorkspaces struct{ m *memDB }

func (s memWorkspaces) Create(_ context.Context, ws *model.Workspace) error {
	if err := s.m.fail("Workspaces.Create"); err != nil {
		return err
	}
	for _, existing := range s.m.workspaces {
		if existing.Slug == ws.Slug {
			return store.ErrConflict
		}
	}
	ws.CreatedAt = s.m.tick()
	s.m.workspaces[ws.ID] = *ws
	return nil
}

func (s memWorkspaces) GetByID(_ context.Context, id int64) (*model.Workspace, error) {
	ws, ok := s.m.workspaces[id]
	if !ok || ws.IsDeleted() {
		return nil, store.ErrNotFound
	}
	return &ws, nil
}

func (s memWorkspaces) GetBySlug(_ context.Context, slug string) (*model.Workspace, error) {
	for _, ws := range s.m.workspaces {
		if ws.Slug == slug {
			return &ws, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s memWorkspaces) Update(_ context.Context, ws *model.Workspace) error {
	for _, existing := range s.m.workspaces {
		if existing.ID != ws.ID && existing.Slug == ws.Slug {
			return store.ErrConflict
		}
	}
	s.m.workspaces[ws.ID] = *ws
	return nil
}

func (s memWorkspaces) UpdateOwner(_ context.Context, id, ownerID int64) error {
	ws := s.m.workspaces[id]
	ws.OwnerID = ownerID
	s.m.workspaces[id] = ws
	return nil
}

func (s memWorkspaces) SoftDelete(_ context.Context, id int64) error {
	ws := s.m.workspaces[id]
	now := s.m.tick()
	ws.DeletedAt = &now
	s.m.workspaces[id] = ws
	return nil
}

func (s memWorkspaces) ListForUser(_ context.Context, userID int64) ([]model.WorkspaceWithRole, error) {
	result := []model.WorkspaceWithRole{}
	for k, member := range s.m.wsMembers {
		ws, ok := s.m.workspaces[k[0]]
		if k[1] != userID || !ok || ws.IsDeleted() {
			continue
		}
		result = append(result, model.WorkspaceWithRole{Workspace: ws, Role: member.Role})
	}
	slices.SortFunc(result, func(a, b model.WorkspaceWithRole) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return result, nil
}

// --- workspace members -------------------------------------------------------

type memWorkspaceMembers struct{ m *memDB }

func (s memWorkspaceMembers) Get(_ context.Context, workspaceID, userID int64) (*model.WorkspaceMember, error) {
	wm, ok := s.m.wsMembers[pair{workspaceID, userID}]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &wm, nil
}

func (s memWorkspaceMembers) GetForUpdate(ctx context.Context, workspaceID, userID int64) (*model.WorkspaceMember, error) {
	return s.Get(ctx, workspaceID, userID)
}

func (s memWorkspaceMembers) GetByEmail(ctx context.Context, workspaceID int64, email string) (*model.WorkspaceMember, error) {
	user, err := memUsers(s).GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, workspaceID, user.ID)
}

func (s memWorkspaceMembers) ListDetailed(_ context.Context, workspaceID int64) ([]model.MemberDetail, error) {
	result := []model.MemberDetail{}
	for k, wm := range s.m.wsMembers {
		if k[0] != workspaceID {
			continue
		}
		u := s.m.users[k[1]]
		result = append(result, model.MemberDetail{UserID: k[1], Email: u.Email, Name: u.Name, Role: string(wm.Role), JoinedAt: wm.JoinedAt})
	}
	slices.SortFunc(result, func(a, b model.MemberDetail) int { return a.JoinedAt.Compare(b.JoinedAt) })
	return result, nil
}

func (s memWorkspaceMembers) Create(_ context.Context, member *model.WorkspaceMember) error {
	key := pair{member.WorkspaceID, member.UserID}
	if _, ok := s.m.wsMembers[key]; ok {
		return store.ErrConflict
	}
	member.JoinedAt = s.m.tick()
	s.m.wsMembers[key] = *member
	return nil
}

func (s memWorkspaceMembers) UpdateRole(_ context.Context, workspaceID, userID int64, role model.WorkspaceRole) (*model.WorkspaceMember, error) {
	key := pair{workspaceID, userID}
	wm, ok := s.m.wsMembers[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	wm.Role = role
	s.m.wsMembers[key] = wm
	return &wm, nil
}

func (s memWorkspaceMembers) Delete(_ context.Context, workspaceID, userID int64) error {
	delete(s.m.wsMembers, pair{workspaceID, userID})
	return nil
}

// --- invitations -------------------------------------------------------------

type memInvitations struct{ m *memDB }

func (s memInvitations) Create(_ context.Context, inv *model.Invitation) error {
	inv.CreatedAt = s.m.tick()
	s.m.invitations[inv.ID] = *inv
	return nil
}

func (s memInvitations) GetByToken(_ context.Context, token string) (*model.Invitation, error) {
	for _, inv := range s.m.invitations {
		if inv.Token == token {
			return &inv, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s memInvitations) Delete(_ context.Context, id int64) error {
	delete(s.m.invitations, id)
	return nil
}

func (s memInvitations) DeleteByWorkspaceAndEmail(_ context.Context, workspaceID int64, email string) error {
	maps.DeleteFunc(s.m.invitations, func(_ int64, v model.Invitation) bool {
		return v.WorkspaceID == workspaceID && v.Email == email
	})
	return nil
}

// --- projects ----------------------------------------------------------------

type memProjects struct{ m *memDB }

func (s memProjects) Create(_ context.Context, project *model.Project) error {
	project.CreatedAt = s.m.tick()
	project.UpdatedAt = project.CreatedAt
	s.m.projects[project.ID] = *project
	return nil
}

func (s memProjects) GetByID(_ context.Context, id int64) (*model.Project, error) {
	p, ok := s.m.projects[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

func (s memProjects) ExistsInWorkspace(_ context.Context, id, workspaceID int64) (bool, error) {
	p, ok := s.m.projects[id]
	return ok && p.WorkspaceID == workspaceID && !p.IsDeleted(), nil
}

func (s memProjects) ListVisible(_ context.Context, workspaceID, userID int64) ([]model.ProjectWithRole, error) {
	result := []model.ProjectWithRole{}
	for _, p := range s.m.projects {
		if p.WorkspaceID != workspaceID || p.IsDeleted() {
			continue
		}
		pm, ok := s.m.projMembers[pair{p.ID, userID}]
		if !ok {
			continue
		}
		result = append(result, model.ProjectWithRole{Project: p, Role: pm.Role})
	}
	slices.SortFunc(result, func(a, b model.ProjectWithRole) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return result, nil
}

func (s memProjects) ListByIDs(_ context.Context, ids []int64) ([]model.Project, error) {
	result := []model.Project{}
	for _, id := range ids {
		if p, ok := s.m.projects[id]; ok {
			result = append(result, p)
		}
	}
	return result, nil
}

func (s memProjects) Update(_ context.Context, project *model.Project) error {
	project.UpdatedAt = s.m.tick()
	s.m.projects[project.ID] = *project
	return nil
}

func (s memProjects) SoftDelete(_ context.Context, ids []int64, at time.Time) error {
	if err := s.m.fail("Projects.SoftDelete"); err != nil {
		return err
	}
	for _, id := range ids {
		p := s.m.projects[id]
		t := at
		p.DeletedAt = &t
		s.m.projects[id] = p
	}
	return nil
}

func (s memProjects) Restore(_ context.Context, ids []int64) error {
	for _, id := range ids {
		p := s.m.projects[id]
		p.DeletedAt = nil
		s.m.projects[id] = p
	}
	return nil
}

// --- project members ---------------------------------------------------------

type memProjectMembers struct{ m *memDB }

func (s memProjectMembers) Get(_ context.Context, projectID, userID int64) (*model.ProjectMember, error) {
	pm, ok := s.m.projMembers[pair{projectID, userID}]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &pm, nil
}

func (s memProjectMembers) GetForUpdate(ctx context.Context, projectID, userID int64) (*model.ProjectMember, error) {
	return s.Get(ctx, projectID, userID)
}

func (s memProjectMembers) List(_ context.Context, projectID int64) ([]model.ProjectMember, error) {
	result := []model.ProjectMember{}
	for k, pm := range s.m.projMembers {
		if k[0] == projectID {
			result = append(result, pm)
		}
	}
	slices.SortFunc(result, func(a, b model.ProjectMember) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return result, nil
}

func (s memProjectMembers) ListDetailed(ctx context.Context, projectID int64) ([]model.MemberDetail, error) {
	members, _ := s.List(ctx, projectID)
	result := make([]model.MemberDetail, len(members))
	for i, pm := range members {
		u := s.m.users[pm.UserID]
		result[i] = model.MemberDetail{UserID: pm.UserID, Email: u.Email, Name: u.Name, Role: string(pm.Role), JoinedAt: pm.CreatedAt}
	}
	return result, nil
}

func (s memProjectMembers) Create(_ context.Context, member *model.ProjectMember) error {
	key := pair{member.ProjectID, member.UserID}
	if _, ok := s.m.projMembers[key]; ok {
		return store.ErrConflict
	}
	member.CreatedAt = s.m.tick()
	s.m.projMembers[key] = *member
	return nil
}

func (s memProjectMembers) CopyFromParent(_ context.Context, childID, parentID, excludeUserID int64) error {
	if err := s.m.fail("ProjectMembers.CopyFromParent"); err != nil {
		return err
	}
	for k, pm := range maps.Clone(s.m.projMembers) {
		if k[0] != parentID || k[1] == excludeUserID {
			continue
		}
		key := pair{childID, k[1]}
		if _, ok := s.m.projMembers[key]; ok {
			continue
		}
		role := pm.Role
		if role == model.ProjectRoleOwner {
			role = model.ProjectRoleAdmin
		}
		s.m.projMembers[key] = model.ProjectMember{ProjectID: childID, UserID: k[1], Role: role, CreatedAt: s.m.tick()}
	}
	return nil
}

func (s memProjectMembers) UpdateRole(_ context.Context, projectID, userID int64, role model.ProjectRole) (*model.ProjectMember, error) {
	key := pair{projectID, userID}
	pm, ok := s.m.projMembers[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	pm.Role = role
	s.m.projMembers[key] = pm
	return &pm, nil
}

func (s memProjectMembers) Delete(_ context.Context, projectID, userID int64) error {
	delete(s.m.projMembers, pair{projectID, userID})
	return nil
}

func (s memProjectMembers) DeleteByUserInProjects(_ context.Context, userID int64, projectIDs []int64) error {
	for _, id := range projectIDs {
		key := pair{id, userID}
		if m, ok := s.m.projMembers[key]; ok && m.Role != model.ProjectRoleOwner {
			delete(s.m.projMembers, key)
		}
	}
	return nil
}

// --- hierarchy ---------------------------------------------------------------

type memHierarchy struct{ m *memDB }

func (s memHierarchy) InsertSelfReference(_ context.Context, projectID int64) error {
	key := pair{projectID, projectID}
	if _, ok := s.m.closure[key]; ok {
		return store.ErrConflict
	}
	s.m.closure[key] = 0
	return nil
}

func (s memHierarchy) InsertHierarchy(_ context.Context, childID, parentID int64) error {
	for k, depth := range maps.Clone(s.m.closure) {
		if k[1] == parentID {
			s.m.closure[pair{k[0], childID}] = depth + 1
		}
	}
	return nil
}

func (s memHierarchy) descendants(ancestorID int64, minDepth int32) []int64 {
	type row struct {
		id    int64
		depth int32
	}
	var rows []row
	for k, depth := range s.m.closure {
		if k[0] == ancestorID && depth >= minDepth {
			rows = append(rows, row{k[1], depth})
		}
	}
	slices.SortFunc(rows, func(a, b row) int {
		if a.depth != b.depth {
			return cmp.Compare(a.depth, b.depth)
		}
		return cmp.Compare(a.id, b.id)
	})
	ids := make([]int64, len(rows))
	for i, r := range rows {
		ids[i] = r.id
	}
	return ids
}

func (s memHierarchy) ListDescendantIDsIncludingSelf(_ context.Context, ancestorID int64) ([]int64, error) {
	return s.descendants(ancestorID, 0), nil
}

func (s memHierarchy) ListDescendantIDs(_ context.Context, ancestorID int64) ([]int64, error) {
	return s.descendants(ancestorID, 1), nil
}

func (s memHierarchy) ListAncestors(_ context.Context, descendantID int64) ([]model.ProjectAncestor, error) {
	result := []model.ProjectAncestor{}
	for k, depth := range s.m.closure {
		if k[1] == descendantID {
			result = append(result, model.ProjectAncestor{AncestorID: k[0], Depth: depth})
		}
	}
	slices.SortFunc(result, func(a, b model.ProjectAncestor) int { return cmp.Compare(a.Depth, b.Depth) })
	return result, nil
}
