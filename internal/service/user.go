package service

import (
	"context"
	"errors"
	"fmt"

	"fractal.app/api/internal/model"
	"fractal.app/api/internal/store"
)

type UserService interface {
	// Profile returns the user together with every workspace they belong to.
	Profile(ctx context.Context, userID int64) (*model.User, []model.WorkspaceWithRole, error)
}

type userService struct {
	userStore      store.UserStore
	workspaceStore store.WorkspaceStore
}

func NewUserService(userStore store.UserStore, workspaceStore store.WorkspaceStore) UserService {
	return &userService{
		userStore:      userStore,
		workspaceStore: workspaceStore,
	}
}

func (s *userService) Profile(ctx context.Context, userID int64) (*model.User, []model.WorkspaceWithRole, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, fmt.Errorf("getting user: %w", err)
	}

	workspaces, err := s.workspaceStore.ListForUser(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("listing workspaces: %w", err)
	}

	return user, workspaces, nil
}
