package service

import (
	"fractal.app/api/internal/queue"
	"fractal.app/api/internal/store"
)

type Services struct {
	stores      *store.Stores
	txRunner    TxRunner
	provider    IdentityProvider
	tokens      *TokenIssuer
	producer    queue.Producer
	frontendURL string
	perms       PermissionResolver
}

func NewServices(
	stores *store.Stores,
	txRunner TxRunner,
	provider IdentityProvider,
	tokens *TokenIssuer,
	producer queue.Producer,
	frontendURL string,
) *Services {
	return &Services{
		stores:      stores,
		txRunner:    txRunner,
		provider:    provider,
		tokens:      tokens,
		producer:    producer,
		frontendURL: frontendURL,
		perms:       NewPermissionResolver(),
	}
}

func (s *Services) Users() UserService {
	return NewUserService(s.stores.Users(), s.stores.Workspaces())
}

func (s *Services) Auth() AuthService {
	return NewAuthService(s.stores.Users(), s.stores.Sessions(), s.provider, s.tokens)
}

func (s *Services) Workspaces() WorkspaceService {
	return NewWorkspaceService(s.stores, s.txRunner)
}

func (s *Services) Invitations() InvitationService {
	return NewInvitationService(s.stores, s.txRunner, s.producer, s.frontendURL)
}

func (s *Services) Projects() ProjectService {
	return NewProjectService(s.stores, s.txRunner, s.perms)
}
