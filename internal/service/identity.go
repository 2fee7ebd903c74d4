package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/workos/workos-go/v6/pkg/usermanagement"
	"github.com/workos/workos-go/v6/pkg/workos_errors"

	"github.com/Adv-2005/DocuGenAI/core/config"
)

// Identity is a user as known by the identity provider.
type Identity struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	AvatarURL string
}

func (i Identity) DisplayName() string {
	name := strings.TrimSpace(i.FirstName + " " + i.LastName)
	if name == "" {
		return i.Email
	}
	return name
}

// IdentityProvider authenticates users. Failures are reported with the
// service sentinels (ErrInvalidCredentials, ErrEmailInUse, ErrWeakPassword,
// ErrInvalidCode).
type IdentityProvider interface {
	CreateUser(ctx context.Context, email, password, firstName, lastName string) (Identity, error)
	AuthenticateWithPassword(ctx context.Context, email, password string) (Identity, error)
	AuthenticateWithCode(ctx context.Context, code string) (Identity, error)
	AuthorizationURL(state, provider string) (string, error)
}

type workosIdentityProvider struct {
	client *usermanagement.Client
	cfg    config.WorkOSConfig
}

// NewWorkOSIdentityProvider uses WorkOS User Management. endpoint overrides
// the API base URL when non-empty.
func NewWorkOSIdentityProvider(cfg config.WorkOSConfig, endpoint string) IdentityProvider {
	client := usermanagement.NewClient(cfg.APIKey)
	if endpoint != "" {
		client.Endpoint = strings.TrimSuffix(endpoint, "/")
	}
	return &workosIdentityProvider{client: client, cfg: cfg}
}

func (p *workosIdentityProvider) CreateUser(ctx context.Context, email, password, firstName, lastName string) (Identity, error) {
	user, err := p.client.CreateUser(ctx, usermanagement.CreateUserOpts{
		Email:     email,
		Password:  password,
		FirstName: firstName,
		LastName:  lastName,
	})
	if err != nil {
		return Identity{}, mapSignUpError(err)
	}
	return toIdentity(user), nil
}

func (p *workosIdentityProvider) AuthenticateWithPassword(ctx context.Context, email, password string) (Identity, error) {
	resp, err := p.client.AuthenticateWithPassword(ctx, usermanagement.AuthenticateWithPasswordOpts{
		ClientID: p.cfg.ClientID,
		Email:    email,
		Password: password,
	})
	if err != nil {
		if status := httpStatus(err); status >= 400 && status < 500 {
			return Identity{}, ErrInvalidCredentials
		}
		return Identity{}, fmt.Errorf("authenticating with password: %w", err)
	}
	return toIdentity(resp.User), nil
}

func (p *workosIdentityProvider) AuthenticateWithCode(ctx context.Context, code string) (Identity, error) {
	resp, err := p.client.AuthenticateWithCode(ctx, usermanagement.AuthenticateWithCodeOpts{
		ClientID: p.cfg.ClientID,
		Code:     code,
	})
	if err != nil {
		if status := httpStatus(err); status >= 400 && status < 500 {
			return Identity{}, ErrInvalidCode
		}
		return Identity{}, fmt.Errorf("authenticating with code: %w", err)
	}
	return toIdentity(resp.User), nil
}

func (p *workosIdentityProvider) AuthorizationURL(state, provider string) (string, error) {
	if provider == "" {
		provider = "authkit"
	}
	u, err := p.client.GetAuthorizationURL(usermanagement.GetAuthorizationURLOpts{
		ClientID:    p.cfg.ClientID,
		RedirectURI: p.cfg.RedirectURI,
		State:       state,
		Provider:    provider,
	})
	if err != nil {
		return "", fmt.Errorf("generating authorization URL: %w", err)
	}
	return u.String(), nil
}

func mapSignUpError(err error) error {
	status := httpStatus(err)
	if status < 400 || status >= 500 {
		return fmt.Errorf("creating user: %w", err)
	}

	text := strings.ToLower(err.Error())
	switch {
	case strings.Contains(text, "email_not_available"), strings.Contains(text, "already"):
		return ErrEmailInUse
	case strings.Contains(text, "password"):
		return ErrWeakPassword
	default:
		return fmt.Errorf("creating user: %w", err)
	}
}

func httpStatus(err error) int {
	var httpErr workos_errors.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}
	var httpErrPtr *workos_errors.HTTPError
	if errors.As(err, &httpErrPtr) {
		return httpErrPtr.Code
	}
	return 0
}

func toIdentity(u usermanagement.User) Identity {
	return Identity{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		AvatarURL: u.ProfilePictureURL,
	}
}
