package service

import (
	"context"
	"log/slog"
	"time"

	"fractal.app/api/common/logger"
	"fractal.app/api/core/db"
	"fractal.app/api/core/db/sqlc"
	"fractal.app/api/internal/store"
)

// StoreProvider exposes the stores a service operation may touch. Inside
// WithTx every store is bound to the same transaction.
type StoreProvider interface {
	Users() store.UserStore
	Sessions() store.SessionStore
	Workspaces() store.WorkspaceStore
	WorkspaceMembers() store.WorkspaceMemberStore
	Invitations() store.InvitationStore
	Projects() store.ProjectStore
	ProjectMembers() store.ProjectMemberStore
	ProjectHierarchy() store.ProjectHierarchyStore
}

// TxRunner runs functions within a transaction and provides stores bound to that transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(stores StoreProvider) error) error
}

type dbTxRunner struct {
	db *db.DB
}

// NewTxRunner builds a TxRunner backed by the core DB.
func NewTxRunner(db *db.DB) TxRunner {
	return &dbTxRunner{db: db}
}

func (r *dbTxRunner) WithTx(ctx context.Context, fn func(stores StoreProvider) error) error {
	sc := logger.StartSpan(ctx, "db.tx")
	defer sc.End()
	ctx = sc.Context()

	start := time.Now()
	err := r.db.WithTx(ctx, func(q *sqlc.Queries) error {
		return fn(store.NewStores(q))
	})
	if err != nil {
		sc.RecordError(err)
		slog.DebugContext(ctx, "transaction rolled back", "error", err, "duration", time.Since(start))
		return err
	}
	slog.DebugContext(ctx, "transaction committed", "duration", time.Since(start))
	return nil
}
