package store

import (
	"context"

	"fractal.app/api/core/db/sqlc"
	"fractal.app/api/internal/model"
)

type projectMemberStore struct {
	queries *sqlc.Queries
}

func newProjectMemberStore(queries *sqlc.Queries) ProjectMemberStore {
	return &projectMemberStore{queries: queries}
}

func (s *projectMemberStore) Get(ctx context.Context, projectID, userID int64) (*model.ProjectMember, error) {
	row, err := s.queries.GetProjectMember(ctx, sqlc.GetProjectMemberParams{
		ProjectID: projectID,
		UserID:    userID,
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return toProjectMemberModel(row), nil
}

func (s *projectMemberStore) GetForUpdate(ctx context.Context, projectID, userID int64) (*model.ProjectMember, error) {
	row, err := s.queries.GetProjectMemberForUpdate(ctx, sqlc.GetProjectMemberForUpdateParams{
		ProjectID: projectID,
		UserID:    userID,
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return toProjectMemberModel(row), nil
}

func (s *projectMemberStore) List(ctx context.Context, projectID int64) ([]model.ProjectMember, error) {
	rows, err := s.queries.ListProjectMembers(ctx, projectID)
	if err != nil {
		return nil, err
	}

	result := make([]model.ProjectMember, len(rows))
	for i, row := range rows {
		result[i] = *toProjectMemberModel(row)
	}
	return result, nil
}

func (s *projectMemberStore) ListDetailed(ctx context.Context, projectID int64) ([]model.MemberDetail, error) {
	rows, err := s.queries.ListProjectMembersDetailed(ctx, projectID)
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

func (s *projectMemberStore) Create(ctx context.Context, member *model.ProjectMember) error {
	row, err := s.queries.CreateProjectMember(ctx, sqlc.CreateProjectMemberParams{
		ProjectID: member.ProjectID,
		UserID:    member.UserID,
		Role:      string(member.Role),
	})
	if err != nil {
		return mapErr(err)
	}
	*member = *toProjectMemberModel(row)
	return nil
}

func (s *projectMemberStore) CopyFromParent(ctx context.Context, childID, parentID, excludeUserID int64) error {
	return s.queries.CopyProjectMembers(ctx, sqlc.CopyProjectMembersParams{
		ChildID:       childID,
		ParentID:      parentID,
		ExcludeUserID: excludeUserID,
	})
}

func (s *projectMemberStore) UpdateRole(ctx context.Context, projectID, userID int64, role model.ProjectRole) (*model.ProjectMember, error) {
	row, err := s.queries.UpdateProjectMemberRole(ctx, sqlc.UpdateProjectMemberRoleParams{
		ProjectID: projectID,
		UserID:    userID,
		Role:      string(role),
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return toProjectMemberModel(row), nil
}

func (s *projectMemberStore) Delete(ctx context.Context, projectID, userID int64) error {
	return s.queries.DeleteProjectMember(ctx, sqlc.DeleteProjectMemberParams{
		ProjectID: projectID,
		UserID:    userID,
	})
}

func (s *projectMemberStore) DeleteByUserInProjects(ctx context.Context, userID int64, projectIDs []int64) error {
	if len(projectIDs) == 0 {
		return nil
	}
	return s.queries.DeleteProjectMembersByUserInProjects(ctx, sqlc.DeleteProjectMembersByUserInProjectsParams{
		UserID:     userID,
		ProjectIds: projectIDs,
	})
}

func toProjectMemberModel(row sqlc.ProjectMember) *model.ProjectMember {
	return &model.ProjectMember{
		ProjectID: row.ProjectID,
		UserID:    row.UserID,
		Role:      model.ProjectRole(row.Role),
		CreatedAt: row.CreatedAt.Time,
	}
}
