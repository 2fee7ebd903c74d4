package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"golang.org/x/oauth2"

	"github.com/Adv-2005/DocuGenAI/common/logger"
	"github.com/Adv-2005/DocuGenAI/internal/model"
	"github.com/Adv-2005/DocuGenAI/internal/scm"
	"github.com/Adv-2005/DocuGenAI/internal/store"
)

// HostResolver returns the source-control host for a connection.
type HostResolver interface {
	Get(provider scm.Provider, instanceURL string) (scm.Host, error)
}

type ConnectionService interface {
	// AuthorizeURL starts the GitHub OAuth web flow.
	AuthorizeURL(state string) (string, error)
	CompleteGitHubOAuth(ctx context.Context, userID int64, code string) (*model.RepositoryConnection, error)
	ConnectWithToken(ctx context.Context, userID int64, provider scm.Provider, token, instanceURL string) (*model.RepositoryConnection, error)
	Get(ctx context.Context, userID int64, provider scm.Provider) (*model.RepositoryConnection, error)
	List(ctx context.Context, userID int64) ([]model.RepositoryConnection, error)
	Disconnect(ctx context.Context, userID int64, provider scm.Provider) error
	ListRepositories(ctx context.Context, userID int64, provider scm.Provider) ([]scm.Repository, error)
}

type connectionService struct {
	connections store.RepositoryConnectionStore
	txRunner    TxRunner
	hosts       HostResolver
	oauth       *oauth2.Config
}

// NewConnectionService builds the service. oauth may be nil when the GitHub
// OAuth app is not configured; tokens can still be connected directly.
func NewConnectionService(
	connections store.RepositoryConnectionStore,
	txRunner TxRunner,
	hosts HostResolver,
	oauth *oauth2.Config,
) ConnectionService {
	return &connectionService{
		connections: connections,
		txRunner:    txRunner,
		hosts:       hosts,
		oauth:       oauth,
	}
}

func (s *connectionService) AuthorizeURL(state string) (string, error) {
	if s.oauth == nil {
		return "", ErrGitHubOAuthDisabled
	}
	return s.oauth.AuthCodeURL(state), nil
}

func (s *connectionService) CompleteGitHubOAuth(ctx context.Context, userID int64, code string) (*model.RepositoryConnection, error) {
	if s.oauth == nil {
		return nil, ErrGitHubOAuthDisabled
	}
	if code == "" {
		return nil, ErrInvalidCode
	}

	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			slog.WarnContext(ctx, "github code exchange rejected", "error_code", retrieveErr.ErrorCode)
			return nil, ErrInvalidCode
		}
		return nil, fmt.Errorf("exchanging github code: %w", err)
	}

	var scopes []string
	if raw, ok := token.Extra("scope").(string); ok && raw != "" {
		scopes = strings.Split(raw, ",")
	}

	return s.connect(ctx, userID, scm.ProviderGitHub, token.AccessToken, "", scopes)
}

func (s *connectionService) ConnectWithToken(ctx context.Context, userID int64, provider scm.Provider, token, instanceURL string) (*model.RepositoryConnection, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, &MissingCredentialError{Missing: []string{"accessToken"}}
	}
	if provider == scm.ProviderGitHub && instanceURL != "" {
		return nil, &InvalidInputError{Field: "instanceUrl", Reason: "only supported for gitlab"}
	}
	return s.connect(ctx, userID, provider, token, strings.TrimSuffix(instanceURL, "/"), nil)
}

// connect verifies the token against the host, then records the connection
// unless the host account is already linked to another user.
func (s *connectionService) connect(ctx context.Context, userID int64, provider scm.Provider, token, instanceURL string, scopes []string) (*model.RepositoryConnection, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{UserID: &userID, Provider: logger.Ptr(string(provider))})

	host, err := s.hosts.Get(provider, instanceURL)
	if err != nil {
		return nil, err
	}

	account, err := host.Account(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("verifying %s token: %w", provider, err)
	}

	accountID := strconv.FormatInt(account.ID, 10)
	conn := &model.RepositoryConnection{
		UserID:            userID,
		Provider:          provider,
		AccessToken:       token,
		ExternalAccountID: &accountID,
		AccountLogin:      &account.Login,
		Scopes:            scopes,
	}
	if instanceURL != "" {
		conn.InstanceURL = &instanceURL
	}

	err = s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		existing, err := stores.RepositoryConnections().GetByAccount(ctx, provider, accountID)
		switch {
		case err == nil && existing.UserID != userID:
			return ErrCredentialInUse
		case err != nil && !errors.Is(err, store.ErrNotFound):
			return err
		}
		return stores.RepositoryConnections().Upsert(ctx, conn)
	})
	if err != nil {
		if errors.Is(err, store.ErrConflict) || errors.Is(err, ErrCredentialInUse) {
			slog.InfoContext(ctx, "account already linked to another user", "account_login", account.Login)
			return nil, ErrCredentialInUse
		}
		return nil, fmt.Errorf("saving connection: %w", err)
	}

	slog.InfoContext(ctx, "repository connection saved", "account_login", account.Login)
	return conn, nil
}

func (s *connectionService) Get(ctx context.Context, userID int64, provider scm.Provider) (*model.RepositoryConnection, error) {
	conn, err := s.connections.Get(ctx, userID, provider)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrConnectionNotFound
		}
		return nil, fmt.Errorf("getting connection: %w", err)
	}
	return conn, nil
}

func (s *connectionService) List(ctx context.Context, userID int64) ([]model.RepositoryConnection, error) {
	return s.connections.ListByUser(ctx, userID)
}

func (s *connectionService) Disconnect(ctx context.Context, userID int64, provider scm.Provider) error {
	if err := s.connections.Delete(ctx, userID, provider); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrConnectionNotFound
		}
		return fmt.Errorf("deleting connection: %w", err)
	}
	slog.InfoContext(ctx, "repository connection removed", "user_id", userID, "provider", provider)
	return nil
}

func (s *connectionService) ListRepositories(ctx context.Context, userID int64, provider scm.Provider) ([]scm.Repository, error) {
	conn, host, err := resolveConnection(ctx, s.connections, s.hosts, userID, provider)
	if err != nil {
		return nil, err
	}
	return host.ListRepositories(ctx, conn.AccessToken)
}

// resolveConnection loads the user's connection and its host. A missing
// connection is reported as a missing credential.
func resolveConnection(
	ctx context.Context,
	connections store.RepositoryConnectionStore,
	hosts HostResolver,
	userID int64,
	provider scm.Provider,
) (*model.RepositoryConnection, scm.Host, error) {
	conn, err := connections.Get(ctx, userID, provider)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, &MissingCredentialError{Missing: []string{"accessToken"}}
		}
		return nil, nil, fmt.Errorf("getting connection: %w", err)
	}

	instanceURL := ""
	if conn.InstanceURL != nil {
		instanceURL = *conn.InstanceURL
	}
	host, err := hosts.Get(provider, instanceURL)
	if err != nil {
		return nil, nil, err
	}
	return conn, host, nil
}
