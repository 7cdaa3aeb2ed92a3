package store

import (
	"context"
	"strings"

	"fractal.app/api/core/db/sqlc"
	"fractal.app/api/internal/model"
)

type userStore struct {
	queries *sqlc.Queries
}

func newUserStore(queries *sqlc.Queries) UserStore {
	return &userStore{queries: queries}
}

func (s *userStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	row, err := s.queries.GetUser(ctx, id)
	if err != nil {
		return nil, mapErr(err)
	}
	return toUserModel(row), nil
}

func (s *userStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	row, err := s.queries.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, mapErr(err)
	}
	return toUserModel(row), nil
}

func (s *userStore) UpsertByEmail(ctx context.Context, user *model.User) error {
	row, err := s.queries.UpsertUserByEmail(ctx, sqlc.UpsertUserByEmailParams{
		ID:        user.ID,
		Name:      user.Name,
		Email:     normalizeEmail(user.Email),
		AvatarUrl: user.AvatarURL,
	})
	if err != nil {
		return mapErr(err)
	}
	*user = *toUserModel(row)
	return nil
}

func toUserModel(row sqlc.User) *model.User {
	return &model.User{
		ID:        row.ID,
		Name:      row.Name,
		Email:     row.Email,
		AvatarURL: row.AvatarUrl,
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
}

// Emails are stored lower-cased so invitation matching and upserts agree on identity.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
