package store

import (
	"context"
	"time"

	"fractal.app/api/core/db/sqlc"
	"fractal.app/api/internal/model"
)

type projectStore struct {
	queries *sqlc.Queries
}

func newProjectStore(queries *sqlc.Queries) ProjectStore {
	return &projectStore{queries: queries}
}

func (s *projectStore) Create(ctx context.Context, project *model.Project) error {
	row, err := s.queries.CreateProject(ctx, sqlc.CreateProjectParams{
		ID:          project.ID,
		WorkspaceID: project.WorkspaceID,
		ParentID:    project.ParentID,
		Name:        project.Name,
		Color:       project.Color,
		CreatedBy:   project.CreatedBy,
	})
	if err != nil {
		return mapErr(err)
	}
	*project = *toProjectModel(row)
	return nil
}

func (s *projectStore) GetByID(ctx context.Context, id int64) (*model.Project, error) {
	row, err := s.queries.GetProject(ctx, id)
	if err != nil {
		return nil, mapErr(err)
	}
	return toProjectModel(row), nil
}

func (s *projectStore) ExistsInWorkspace(ctx context.Context, id, workspaceID int64) (bool, error) {
	return s.queries.ProjectExistsInWorkspace(ctx, sqlc.ProjectExistsInWorkspaceParams{
		ID:          id,
		WorkspaceID: workspaceID,
	})
}

func (s *projectStore) ListVisible(ctx context.Context, workspaceID, userID int64) ([]model.ProjectWithRole, error) {
	rows, err := s.queries.ListVisibleProjects(ctx, sqlc.ListVisibleProjectsParams{
		UserID:      userID,
		WorkspaceID: workspaceID,
	})
	if err != nil {
		return nil, err
	}

	result := make([]model.ProjectWithRole, len(rows))
	for i, row := range rows {
		result[i] = model.ProjectWithRole{
			Project: *toProjectModel(sqlc.Project{
				ID:          row.ID,
				WorkspaceID: row.WorkspaceID,
				ParentID:    row.ParentID,
				Name:        row.Name,
				Color:       row.Color,
				IsArchived:  row.IsArchived,
				CreatedBy:   row.CreatedBy,
				CreatedAt:   row.CreatedAt,
				UpdatedAt:   row.UpdatedAt,
				DeletedAt:   row.DeletedAt,
			}),
			Role: model.ProjectRole(row.Role),
		}
	}
	return result, nil
}

func (s *projectStore) ListByIDs(ctx context.Context, ids []int64) ([]model.Project, error) {
	if len(ids) == 0 {
		return []model.Project{}, nil
	}
	rows, err := s.queries.ListProjectsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]model.Project, len(rows))
	for i, row := range rows {
		result[i] = *toProjectModel(row)
	}
	return result, nil
}

func (s *projectStore) Update(ctx context.Context, project *model.Project) error {
	row, err := s.queries.UpdateProject(ctx, sqlc.UpdateProjectParams{
		ID:    project.ID,
		Name:  project.Name,
		Color: project.Color,
	})
	if err != nil {
		return mapErr(err)
	}
	*project = *toProjectModel(row)
	return nil
}

func (s *projectStore) SoftDelete(ctx context.Context, ids []int64, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	return s.queries.SoftDeleteProjects(ctx, sqlc.SoftDeleteProjectsParams{
		DeletedAt: timestamptz(at),
		Ids:       ids,
	})
}

func (s *projectStore) Restore(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return s.queries.RestoreProjects(ctx, ids)
}

func toProjectModel(row sqlc.Project) *model.Project {
	return &model.Project{
		ID:          row.ID,
		WorkspaceID: row.WorkspaceID,
		ParentID:    row.ParentID,
		Name:        row.Name,
		Color:       row.Color,
		IsArchived:  row.IsArchived,
		CreatedBy:   row.CreatedBy,
		CreatedAt:   row.CreatedAt.Time,
		UpdatedAt:   row.UpdatedAt.Time,
		DeletedAt:   nullableTime(row.DeletedAt),
	}
}
