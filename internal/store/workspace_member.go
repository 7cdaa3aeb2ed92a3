package store

import (
	"context"

	"fractal.app/api/core/db/sqlc"
	"fractal.app/api/internal/model"
)

type workspaceMemberStore struct {
	queries *sqlc.Queries
}

func newWorkspaceMemberStore(queries *sqlc.Queries) WorkspaceMemberStore {
	return &workspaceMemberStore{queries: queries}
}

func (s *workspaceMemberStore) Get(ctx context.Context, workspaceID, userID int64) (*model.WorkspaceMember, error) {
	row, err := s.queries.GetWorkspaceMember(ctx, sqlc.GetWorkspaceMemberParams{
		WorkspaceID: workspaceID,
		UserID:      userID,
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return toWorkspaceMemberModel(row), nil
}

func (s *workspaceMemberStore) GetForUpdate(ctx context.Context, workspaceID, userID int64) (*model.WorkspaceMember, error) {
	row, err := s.queries.GetWorkspaceMemberForUpdate(ctx, sqlc.GetWorkspaceMemberForUpdateParams{
		WorkspaceID: workspaceID,
		UserID:      userID,
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return toWorkspaceMemberModel(row), nil
}

func (s *workspaceMemberStore) GetByEmail(ctx context.Context, workspaceID int64, email string) (*model.WorkspaceMember, error) {
	row, err := s.queries.GetWorkspaceMemberByEmail(ctx, sqlc.GetWorkspaceMemberByEmailParams{
		WorkspaceID: workspaceID,
		Email:       email,
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return toWorkspaceMemberModel(row), nil
}

func (s *workspaceMemberStore) ListDetailed(ctx context.Context, workspaceID int64) ([]model.MemberDetail, error) {
	rows, err := s.queries.ListWorkspaceMembersDetailed(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	result := make([]model.MemberDetail, len(rows))
	for i, row := range rows {
		result[i] = model.MemberDetail{
			UserID:    row.UserID,
			Email:     row.Email,
			Name:      row.Name,
			AvatarURL: row.AvatarUrl,
			Role:      row.Role,
			JoinedAt:  row.JoinedAt.Time,
		}
	}
	return result, nil
}

func (s *workspaceMemberStore) Create(ctx context.Context, member *model.WorkspaceMember) error {
	row, err := s.queries.CreateWorkspaceMember(ctx, sqlc.CreateWorkspaceMemberParams{
		WorkspaceID: member.WorkspaceID,
		UserID:      member.UserID,
		Role:        string(member.Role),
	})
	if err != nil {
		return mapErr(err)
	}
	*member = *toWorkspaceMemberModel(row)
	return nil
}

func (s *workspaceMemberStore) UpdateRole(ctx context.Context, workspaceID, userID int64, role model.WorkspaceRole) (*model.WorkspaceMember, error) {
	row, err := s.queries.UpdateWorkspaceMemberRole(ctx, sqlc.UpdateWorkspaceMemberRoleParams{
		WorkspaceID: workspaceID,
		UserID:      userID,
		Role:        string(role),
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return toWorkspaceMemberModel(row), nil
}

func (s *workspaceMemberStore) Delete(ctx context.Context, workspaceID, userID int64) error {
	return s.queries.DeleteWorkspaceMember(ctx, sqlc.DeleteWorkspaceMemberParams{
		WorkspaceID: workspaceID,
		UserID:      userID,
	})
}

func toWorkspaceMemberModel(row sqlc.WorkspaceMember) *model.WorkspaceMember {
	return &model.WorkspaceMember{
		WorkspaceID: row.WorkspaceID,
		UserID:      row.UserID,
		Role:        model.WorkspaceRole(row.Role),
		JoinedAt:    row.JoinedAt.Time,
	}
}
