package store

import (
	"context"

	"fractal.app/api/core/db/sqlc"
	"fractal.app/api/internal/model"
)

type workspaceStore struct {
	queries *sqlc.Queries
}

func newWorkspaceStore(queries *sqlc.Queries) WorkspaceStore {
	return &workspaceStore{queries: queries}
}

func (s *workspaceStore) Create(ctx context.Context, ws *model.Workspace) error {
	row, err := s.queries.CreateWorkspace(ctx, sqlc.CreateWorkspaceParams{
		ID:      ws.ID,
		OwnerID: ws.OwnerID,
		Name:    ws.Name,
		Slug:    ws.Slug,
	})
	if err != nil {
		return mapErr(err)
	}
	*ws = *toWorkspaceModel(row)
	return nil
}

func (s *workspaceStore) GetByID(ctx context.Context, id int64) (*model.Workspace, error) {
	row, err := s.queries.GetWorkspace(ctx, id)
	if err != nil {
		return nil, mapErr(err)
	}
	return toWorkspaceModel(row), nil
}

func (s *workspaceStore) GetBySlug(ctx context.Context, slug string) (*model.Workspace, error) {
	row, err := s.queries.GetWorkspaceBySlug(ctx, slug)
	if err != nil {
		return nil, mapErr(err)
	}
	return toWorkspaceModel(row), nil
}

func (s *workspaceStore) Update(ctx context.Context, ws *model.Workspace) error {
	row, err := s.queries.UpdateWorkspace(ctx, sqlc.UpdateWorkspaceParams{
		ID:   ws.ID,
		Name: ws.Name,
		Slug: ws.Slug,
	})
	if err != nil {
		return mapErr(err)
	}
	*ws = *toWorkspaceModel(row)
	return nil
}

func (s *workspaceStore) UpdateOwner(ctx context.Context, id, ownerID int64) error {
	return s.queries.UpdateWorkspaceOwner(ctx, sqlc.UpdateWorkspaceOwnerParams{
		ID:      id,
		OwnerID: ownerID,
	})
}

func (s *workspaceStore) SoftDelete(ctx context.Context, id int64) error {
	return s.queries.SoftDeleteWorkspace(ctx, id)
}

func (s *workspaceStore) ListForUser(ctx context.Context, userID int64) ([]model.WorkspaceWithRole, error) {
	rows, err := s.queries.ListWorkspacesForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]model.WorkspaceWithRole, len(rows))
	for i, row := range rows {
		result[i] = model.WorkspaceWithRole{
			Workspace: *toWorkspaceModel(sqlc.Workspace{
				ID:        row.ID,
				OwnerID:   row.OwnerID,
				Name:      row.Name,
				Slug:      row.Slug,
				CreatedAt: row.CreatedAt,
				UpdatedAt: row.UpdatedAt,
				DeletedAt: row.DeletedAt,
			}),
			Role: model.WorkspaceRole(row.Role),
		}
	}
	return result, nil
}

func toWorkspaceModel(row sqlc.Workspace) *model.Workspace {
	return &model.Workspace{
		ID:        row.ID,
		OwnerID:   row.OwnerID,
		Name:      row.Name,
		Slug:      row.Slug,
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
		DeletedAt: nullableTime(row.DeletedAt),
	}
}
