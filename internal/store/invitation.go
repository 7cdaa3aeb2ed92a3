package store

import (
	"context"

	"fractal.app/api/core/db/sqlc"
	"fractal.app/api/internal/model"
)

type invitationStore struct {
	queries *sqlc.Queries
}

func newInvitationStore(queries *sqlc.Queries) InvitationStore {
	return &invitationStore{queries: queries}
}

func (s *invitationStore) Create(ctx context.Context, inv *model.Invitation) error {
	row, err := s.queries.CreateInvitation(ctx, sqlc.CreateInvitationParams{
		ID:          inv.ID,
		WorkspaceID: inv.WorkspaceID,
		Email:       inv.Email,
		Role:        string(inv.Role),
		Token:       inv.Token,
		InvitedBy:   inv.InvitedBy,
		ExpiresAt:   timestamptz(inv.ExpiresAt),
	})
	if err != nil {
		return mapErr(err)
	}
	*inv = *toInvitationModel(row)
	return nil
}

func (s *invitationStore) GetByToken(ctx context.Context, token string) (*model.Invitation, error) {
	row, err := s.queries.GetInvitationByToken(ctx, token)
	if err != nil {
		return nil, mapErr(err)
	}
	return toInvitationModel(row), nil
}

func (s *invitationStore) Delete(ctx context.Context, id int64) error {
	return s.queries.DeleteInvitation(ctx, id)
}

func (s *invitationStore) DeleteByWorkspaceAndEmail(ctx context.Context, workspaceID int64, email string) error {
	return s.queries.DeleteInvitationsByWorkspaceAndEmail(ctx, sqlc.DeleteInvitationsByWorkspaceAndEmailParams{
		WorkspaceID: workspaceID,
		Email:       email,
	})
}

func toInvitationModel(row sqlc.WorkspaceInvitation) *model.Invitation {
	return &model.Invitation{
		ID:          row.ID,
		WorkspaceID: row.WorkspaceID,
		Email:       row.Email,
		Role:        model.WorkspaceRole(row.Role),
		Token:       row.Token,
		InvitedBy:   row.InvitedBy,
		ExpiresAt:   row.ExpiresAt.Time,
		CreatedAt:   row.CreatedAt.Time,
	}
}
