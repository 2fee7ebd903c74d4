package service

import (
	"context"

	"github.com/Adv-2005/DocuGenAI/core/db"
	"github.com/Adv-2005/DocuGenAI/core/db/sqlc"
	"github.com/Adv-2005/DocuGenAI/internal/store"
)

// StoreProvider exposes only the stores needed by a transactional operation.
type StoreProvider interface {
	Users() store.UserStore
	RepositoryConnections() store.RepositoryConnectionStore
}

// TxRunner runs fn in a transaction with stores bound to it.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(stores StoreProvider) error) error
}

type dbTxRunner struct {
	db *db.DB
}

func NewTxRunner(db *db.DB) TxRunner {
	return &dbTxRunner{db: db}
}

func (r *dbTxRunner) WithTx(ctx context.Context, fn func(stores StoreProvider) error) error {
	return r.db.WithTx(ctx, func(q *sqlc.Queries) error {
		return fn(store.NewStores(q))
	})
}
