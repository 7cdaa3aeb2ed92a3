package store

import (
	"context"

	"fractal.app/api/core/db/sqlc"
	"fractal.app/api/internal/model"
)

type projectHierarchyStore struct {
	queries *sqlc.Queries
}

func newProjectHierarchyStore(queries *sqlc.Queries) ProjectHierarchyStore {
	return &projectHierarchyStore{queries: queries}
}

func (s *projectHierarchyStore) InsertSelfReference(ctx context.Context, projectID int64) error {
	return mapErr(s.queries.InsertSelfReference(ctx, projectID))
}

func (s *projectHierarchyStore) InsertHierarchy(ctx context.Context, childID, parentID int64) error {
	return mapErr(s.queries.InsertHierarchy(ctx, sqlc.InsertHierarchyParams{
		ChildID:  childID,
		ParentID: parentID,
	}))
}

func (s *projectHierarchyStore) ListDescendantIDsIncludingSelf(ctx context.Context, ancestorID int64) ([]int64, error) {
	return s.queries.ListDescendantIDsIncludingSelf(ctx, ancestorID)
}

func (s *projectHierarchyStore) ListDescendantIDs(ctx context.Context, ancestorID int64) ([]int64, error) {
	return s.queries.ListDescendantIDs(ctx, ancestorID)
}

func (s *projectHierarchyStore) ListAncestors(ctx context.Context, descendantID int64) ([]model.ProjectAncestor, error) {
	rows, err := s.queries.ListAncestors(ctx, descendantID)
	if err != nil {
		return nil, err
	}

	result := make([]model.ProjectAncestor, len(rows))
	for i, row := range rows {
		result[i] = model.ProjectAncestor{
			AncestorID: row.AncestorID,
			Depth:      row.Depth,
		}
	}
	return result, nil
}
