// Package scm talks to source-control hosts on behalf of a user: listing
// repositories, fetching READMEs and opening documentation pull requests.
package scm

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Provider identifies a source-control host.
type Provider string

const (
	ProviderGitHub Provider = "github"
	ProviderGitLab Provider = "gitlab"
)

func ParseProvider(s string) (Provider, error) {
	switch p := Provider(strings.ToLower(s)); p {
	case ProviderGitHub, ProviderGitLab:
		return p, nil
	default:
		return "", fmt.Errorf("unknown provider %q", s)
	}
}

func (p Provider) DisplayName() string {
	switch p {
	case ProviderGitHub:
		return "GitHub"
	case ProviderGitLab:
		return "GitLab"
	default:
		return string(p)
	}
}

type Repository struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	FullName      string     `json:"fullName"`
	Description   string     `json:"description"`
	DefaultBranch string     `json:"defaultBranch"`
	HTMLURL       string     `json:"htmlUrl"`
	Private       bool       `json:"private"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
}

// Account is the host identity behind a token.
type Account struct {
	ID    int64
	Login string
	Name  string
	Email string
}

// Host is implemented per provider. Every call makes its own requests with
// the given token and nothing is retried.
type Host interface {
	Provider() Provider
	ListRepositories(ctx context.Context, token string) ([]Repository, error)
	// FetchReadme returns the raw README bytes, or ErrReadmeNotFound.
	FetchReadme(ctx context.Context, token, fullName string) ([]byte, error)
	Account(ctx context.Context, token string) (*Account, error)
}

// DocsPullRequest describes a single-file documentation change.
type DocsPullRequest struct {
	RepoFullName  string
	Branch        string
	Path          string
	Content       string
	Title         string
	Body          string
	CommitMessage string
}

type PullRequest struct {
	Number int    `json:"number"`
	URL    string `json:"url"`
	Branch string `json:"branch"`
}

// PullRequester opens a pull request that writes one file on a new branch
// cut from the default branch.
type PullRequester interface {
	OpenDocsPullRequest(ctx context.Context, token string, req DocsPullRequest) (*PullRequest, error)
}

// SplitFullName splits "owner/name". GitLab paths may contain subgroups,
// so everything before the last slash is the owner.
func SplitFullName(fullName string) (owner, name string, err error) {
	i := strings.LastIndex(fullName, "/")
	if i <= 0 || i == len(fullName)-1 {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidRepoName, fullName)
	}
	return fullName[:i], fullName[i+1:], nil
}
