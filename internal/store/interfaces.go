package store

import (
	"context"
	"errors"

	"github.com/Adv-2005/DocuGenAI/internal/model"
	"github.com/Adv-2005/DocuGenAI/internal/scm"
)

var (
	// ErrNotFound is returned when a requested entity does not exist
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a write violates a uniqueness constraint
	ErrConflict = errors.New("conflict")
)

type UserStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByWorkOSID(ctx context.Context, workosUserID string) (*model.User, error)
	// Create inserts a user without an identity provider account (guests).
	Create(ctx context.Context, user *model.User) error
	// UpsertByWorkOSID creates or refreshes the user linked to a WorkOS account.
	UpsertByWorkOSID(ctx context.Context, user *model.User) error
}

// RepositoryConnectionStore holds at most one connection per (user, provider).
type RepositoryConnectionStore interface {
	Get(ctx context.Context, userID int64, provider scm.Provider) (*model.RepositoryConnection, error)
	GetByAccount(ctx context.Context, provider scm.Provider, externalAccountID string) (*model.RepositoryConnection, error)
	ListByUser(ctx context.Context, userID int64) ([]model.RepositoryConnection, error)
	// Upsert merges into an existing connection: nil optional fields keep
	// their stored values. Returns ErrConflict if the external account is
	// linked to another user.
	Upsert(ctx context.Context, conn *model.RepositoryConnection) error
	Delete(ctx context.Context, userID int64, provider scm.Provider) error
}

type DocumentationDraftStore interface {
	Get(ctx context.Context, userID, id int64) (*model.DocumentationDraft, error)
	ListByUser(ctx context.Context, userID int64, limit int32) ([]model.DocumentationDraft, error)
	// Save replaces the draft for the same (provider, repo, path) if one exists.
	Save(ctx context.Context, draft *model.DocumentationDraft) error
	Delete(ctx context.Context, userID, id int64) error
}

type SessionStore interface {
	Get(ctx context.Context, id string) (*model.Session, error)
	Create(ctx context.Context, session *model.Session) error
	Delete(ctx context.Context, id string) error
}
