package store

import (
	"context"

	"github.com/Adv-2005/DocuGenAI/core/db/sqlc"
	"github.com/Adv-2005/DocuGenAI/internal/model"
	"github.com/Adv-2005/DocuGenAI/internal/scm"
)

type repositoryConnectionStore struct {
	queries *sqlc.Queries
}

func newRepositoryConnectionStore(queries *sqlc.Queries) RepositoryConnectionStore {
	return &repositoryConnectionStore{queries: queries}
}

func (s *repositoryConnectionStore) Get(ctx context.Context, userID int64, provider scm.Provider) (*model.RepositoryConnection, error) {
	row, err := s.queries.GetRepositoryConnection(ctx, sqlc.GetRepositoryConnectionParams{
		UserID:   userID,
		Provider: string(provider),
	})
	if err != nil {
		return nil, mapError(err)
	}
	return toConnectionModel(row), nil
}

func (s *repositoryConnectionStore) GetByAccount(ctx context.Context, provider scm.Provider, externalAccountID string) (*model.RepositoryConnection, error) {
	row, err := s.queries.GetRepositoryConnectionByAccount(ctx, sqlc.GetRepositoryConnectionByAccountParams{
		Provider:          string(provider),
		ExternalAccountID: &externalAccountID,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return toConnectionModel(row), nil
}

func (s *repositoryConnectionStore) ListByUser(ctx context.Context, userID int64) ([]model.RepositoryConnection, error) {
	rows, err := s.queries.ListRepositoryConnectionsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	conns := make([]model.RepositoryConnection, len(rows))
	for i, row := range rows {
		conns[i] = *toConnectionModel(row)
	}
	return conns, nil
}

func (s *repositoryConnectionStore) Upsert(ctx context.Context, conn *model.RepositoryConnection) error {
	var scopes []string
	if len(conn.Scopes) > 0 {
		scopes = conn.Scopes
	}

	row, err := s.queries.UpsertRepositoryConnection(ctx, sqlc.UpsertRepositoryConnectionParams{
		UserID:            conn.UserID,
		Provider:          string(conn.Provider),
		AccessToken:       conn.AccessToken,
		InstanceUrl:       conn.InstanceURL,
		ExternalAccountID: conn.ExternalAccountID,
		AccountLogin:      conn.AccountLogin,
		Scopes:            scopes,
	})
	if err != nil {
		return mapError(err)
	}
	*conn = *toConnectionModel(row)
	return nil
}

func (s *repositoryConnectionStore) Delete(ctx context.Context, userID int64, provider scm.Provider) error {
	n, err := s.queries.DeleteRepositoryConnection(ctx, sqlc.DeleteRepositoryConnectionParams{
		UserID:   userID,
		Provider: string(provider),
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func toConnectionModel(row sqlc.RepositoryConnection) *model.RepositoryConnection {
	return &model.RepositoryConnection{
		UserID:            row.UserID,
		Provider:          scm.Provider(row.Provider),
		AccessToken:       row.AccessToken,
		InstanceURL:       row.InstanceUrl,
		ExternalAccountID: row.ExternalAccountID,
		AccountLogin:      row.AccountLogin,
		Scopes:            row.Scopes,
		CreatedAt:         row.CreatedAt.Time,
		UpdatedAt:         row.UpdatedAt.Time,
	}
}
