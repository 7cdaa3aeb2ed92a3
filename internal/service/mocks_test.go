package service_test

import (
	"context"
	"sync"

	"fractal.app/api/internal/model"
	"fractal.app/api/internal/queue"
	"fractal.app/api/internal/service"
)

type mockTxRunner struct {
	withTxFn func(ctx context.Context, fn func(stores service.StoreProvider) error) error
}

func (m *mockTxRunner) WithTx(ctx context.Context, fn func(stores service.StoreProvider) error) error {
	if m.withTxFn != nil {
		return m.withTxFn(ctx, fn)
	}
	return fn(newMemDB())
}

type mockUserStore struct {
	getByIDFn    func(ctx context.Context, id int64) (*model.User, error)
	getByEmailFn func(ctx context.Context, email string) (*model.User, error)
	upsertFn     func(ctx context.Context, user *model.User) error
}

func (m *mockUserStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, nil
}

func (m *mockUserStore) UpsertByEmail(ctx context.Context, user *model.User) error {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, user)
	}
	return nil
}

type mockSessionStore struct {
	createFn        func(ctx context.Context, session *model.Session) error
	getValidFn      func(ctx context.Context, id int64) (*model.Session, error)
	deleteFn        func(ctx context.Context, id int64) error
	deleteExpiredFn func(ctx context.Context) (int64, error)
	createCalls     int
}

func (m *mockSessionStore) Create(ctx context.Context, session *model.Session) error {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, session)
	}
	return nil
}

func (m *mockSessionStore) GetValid(ctx context.Context, id int64) (*model.Session, error) {
	if m.getValidFn != nil {
		return m.getValidFn(ctx, id)
	}
	return nil, nil
}

func (m *mockSessionStore) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockSessionStore) DeleteExpired(ctx context.Context) (int64, error) {
	if m.deleteExpiredFn != nil {
		return m.deleteExpiredFn(ctx)
	}
	return 0, nil
}

type mockIdentityProvider struct {
	authorizationURLFn func(state string) (string, error)
	exchangeFn         func(ctx context.Context, code string) (*service.Identity, error)
}

func (m *mockIdentityProvider) AuthorizationURL(state string) (string, error) {
	if m.authorizationURLFn != nil {
		return m.authorizationURLFn(state)
	}
	return "https://idp.example.com/authorize?state=" + state, nil
}

func (m *mockIdentityProvider) Exchange(ctx context.Context, code string) (*service.Identity, error) {
	if m.exchangeFn != nil {
		return m.exchangeFn(ctx, code)
	}
	return nil, nil
}

type mockProducer struct {
	mu        sync.Mutex
	publishFn func(ctx context.Context, n queue.Notification) error
	published []queue.Notification
}

func (m *mockProducer) Publish(ctx context.Context, n queue.Notification) error {
	m.mu.Lock()
	m.published = append(m.published, n)
	m.mu.Unlock()
	if m.publishFn != nil {
		return m.publishFn(ctx, n)
	}
	return nil
}

func (m *mockProducer) Close() error {
	return nil
}

func strPtr(s string) *string {
	return &s
}

func int64Ptr(v int64) *int64 {
	return &v
}
