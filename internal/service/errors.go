package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailInUse         = errors.New("email already in use")
	ErrWeakPassword       = errors.New("password too weak")
	ErrInvalidCode        = errors.New("invalid authorization code")
	ErrUserNotFound       = errors.New("user not found")
	ErrSessionExpired     = errors.New("session expired")

	// ErrCredentialInUse means the source-control account is already linked
	// to a different user.
	ErrCredentialInUse = errors.New("credential already in use")

	ErrConnectionNotFound      = errors.New("repository connection not found")
	ErrDraftNotFound           = errors.New("draft not found")
	ErrPullRequestsUnsupported = errors.New("pull requests are not supported for this provider")
	ErrGitHubOAuthDisabled     = errors.New("github oauth is not configured")
)

// MissingCredentialError is returned before any network call when the
// repository name or the access token is absent.
type MissingCredentialError struct {
	Missing []string
}

func (e *MissingCredentialError) Error() string {
	if len(e.Missing) == 1 {
		return fmt.Sprintf("%s is required", e.Missing[0])
	}
	return "repoFullName and accessToken are required"
}

// InvalidInputError carries a request problem that is not a schema violation.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}
