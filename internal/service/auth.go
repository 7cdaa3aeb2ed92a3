package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fractal.app/api/common/id"
	"fractal.app/api/internal/model"
	"fractal.app/api/internal/store"
)

var (
	ErrInvalidCode    = errors.New("invalid authorization code")
	ErrUserNotFound   = errors.New("user not found")
	ErrSessionExpired = errors.New("session expired")
)

// Principal is the authenticated caller of a request.
type Principal struct {
	User      model.User
	SessionID int64
}

type LoginResult struct {
	User      *model.User
	SessionID int64
	Token     string
}

type AuthService interface {
	AuthorizationURL(state string) (string, error)
	HandleCallback(ctx context.Context, code string) (*LoginResult, error)
	Authenticate(ctx context.Context, token string) (*Principal, error)
	Logout(ctx context.Context, sessionID int64) error
	// PruneSessions deletes expired sessions and returns how many were removed.
	PruneSessions(ctx context.Context) (int64, error)
}

type authService struct {
	userStore    store.UserStore
	sessionStore store.SessionStore
	provider     IdentityProvider
	tokens       *TokenIssuer
}

func NewAuthService(
	userStore store.UserStore,
	sessionStore store.SessionStore,
	provider IdentityProvider,
	tokens *TokenIssuer,
) AuthService {
	return &authService{
		userStore:    userStore,
		sessionStore: sessionStore,
		provider:     provider,
		tokens:       tokens,
	}
}

func (s *authService) AuthorizationURL(state string) (string, error) {
	return s.provider.AuthorizationURL(state)
}

func (s *authService) HandleCallback(ctx context.Context, code string) (*LoginResult, error) {
	identity, err := s.provider.Exchange(ctx, code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to exchange authorization code", "error", err)
		return nil, ErrInvalidCode
	}

	user := &model.User{
		ID:        id.New(),
		Name:      identity.Name,
		Email:     identity.Email,
		AvatarURL: identity.AvatarURL,
	}
	if err := s.userStore.UpsertByEmail(ctx, user); err != nil {
		slog.ErrorContext(ctx, "failed to upsert user",
			"error", err,
			"email", user.Email,
		)
		return nil, fmt.Errorf("upserting user: %w", err)
	}

	session := &model.Session{
		ID:     id.New(),
		UserID: user.ID,
	}
	token, expiresAt, err := s.tokens.Issue(user.ID, session.ID)
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}
	session.ExpiresAt = expiresAt

	if err := s.sessionStore.Create(ctx, session); err != nil {
		slog.ErrorContext(ctx, "failed to create session",
			"error", err,
			"user_id", user.ID,
		)
		return nil, fmt.Errorf("creating session: %w", err)
	}

	slog.InfoContext(ctx, "user authenticated",
		"user_id", user.ID,
		"session_id", session.ID,
	)

	return &LoginResult{User: user, SessionID: session.ID, Token: token}, nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*Principal, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}
	userID, _ := claims.UserID()

	session, err := s.sessionStore.GetValid(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSessionExpired
		}
		return nil, fmt.Errorf("getting session: %w", err)
	}
	if session.UserID != userID {
		return nil, ErrInvalidToken
	}

	user, err := s.userStore.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}

	return &Principal{User: *user, SessionID: session.ID}, nil
}

func (s *authService) Logout(ctx context.Context, sessionID int64) error {
	if err := s.sessionStore.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	slog.InfoContext(ctx, "session ended", "session_id", sessionID)
	return nil
}

func (s *authService) PruneSessions(ctx context.Context) (int64, error) {
	n, err := s.sessionStore.DeleteExpired(ctx)
	if err != nil {
		return 0, fmt.Errorf("deleting expired sessions: %w", err)
	}
	if n > 0 {
		slog.InfoContext(ctx, "expired sessions pruned", "count", n)
	}
	return n, nil
}
