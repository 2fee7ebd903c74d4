package scm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

const (
	defaultUserAgent = "docugenai-app"
	rawMediaType     = "application/vnd.github.v3.raw"
	maxRepoPages     = 10
)

type GitHubOptions struct {
	BaseURL   string // API root, defaults to https://api.github.com/
	UserAgent string
	Timeout   time.Duration
}

// GitHubHost implements Host and PullRequester against the GitHub REST API.
type GitHubHost struct {
	baseURL   *url.URL
	userAgent string
	timeout   time.Duration
}

var (
	_ Host          = (*GitHubHost)(nil)
	_ PullRequester = (*GitHubHost)(nil)
)

func NewGitHubHost(opts GitHubOptions) (*GitHubHost, error) {
	h := &GitHubHost{userAgent: opts.UserAgent, timeout: opts.Timeout}
	if h.userAgent == "" {
		h.userAgent = defaultUserAgent
	}
	if opts.BaseURL != "" {
		u, err := url.Parse(strings.TrimSuffix(opts.BaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("parsing github base url: %w", err)
		}
		h.baseURL = u
	}
	return h, nil
}

func (h *GitHubHost) Provider() Provider { return ProviderGitHub }

// client builds a per-token client. Requests carry "Authorization: Bearer <token>".
func (h *GitHubHost) client(ctx context.Context, token string) *github.Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(ctx, ts)
	if h.timeout > 0 {
		tc.Timeout = h.timeout
	}

	c := github.NewClient(tc)
	c.UserAgent = h.userAgent
	if h.baseURL != nil {
		c.BaseURL = h.baseURL
	}
	return c
}

// ListRepositories returns the user's repositories, most recently updated first.
func (h *GitHubHost) ListRepositories(ctx context.Context, token string) ([]Repository, error) {
	c := h.client(ctx, token)

	var repos []Repository
	page := 1
	for i := 0; i < maxRepoPages; i++ {
		req, err := c.NewRequest(http.MethodGet,
			fmt.Sprintf("user/repos?sort=updated&direction=desc&per_page=100&page=%d", page), nil)
		if err != nil {
			return nil, fmt.Errorf("building request: %w", err)
		}

		var pageRepos []*github.Repository
		resp, err := c.Do(ctx, req, &pageRepos)
		if err != nil {
			return nil, h.convertError(err)
		}

		for _, r := range pageRepos {
			repos = append(repos, toRepository(r))
		}

		if resp.NextPage == 0 {
			break
		}
		page = resp.NextPage
	}

	return repos, nil
}

// FetchReadme fetches the README in raw form. Bytes are returned unchanged.
func (h *GitHubHost) FetchReadme(ctx context.Context, token, fullName string) ([]byte, error) {
	owner, name, err := SplitFullName(fullName)
	if err != nil {
		return nil, err
	}

	c := h.client(ctx, token)
	req, err := c.NewRequest(http.MethodGet, fmt.Sprintf("repos/%s/%s/readme", owner, name), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", rawMediaType)

	var buf bytes.Buffer
	if _, err := c.Do(ctx, req, &buf); err != nil {
		err = h.convertError(err)
		if isNotFound(err) {
			return nil, ErrReadmeNotFound
		}
		return nil, err
	}

	return buf.Bytes(), nil
}

func (h *GitHubHost) Account(ctx context.Context, token string) (*Account, error) {
	user, _, err := h.client(ctx, token).Users.Get(ctx, "")
	if err != nil {
		return nil, h.convertError(err)
	}
	return &Account{
		ID:    user.GetID(),
		Login: user.GetLogin(),
		Name:  user.GetName(),
		Email: user.GetEmail(),
	}, nil
}

// OpenDocsPullRequest creates req.Branch from the default branch, writes the
// file on it and opens a pull request back into the default branch.
func (h *GitHubHost) OpenDocsPullRequest(ctx context.Context, token string, req DocsPullRequest) (*PullRequest, error) {
	owner, name, err := SplitFullName(req.RepoFullName)
	if err != nil {
		return nil, err
	}
	c := h.client(ctx, token)

	repo, _, err := c.Repositories.Get(ctx, owner, name)
	if err != nil {
		return nil, h.convertError(err)
	}
	base := repo.GetDefaultBranch()

	baseRef, _, err := c.Git.GetRef(ctx, owner, name, "refs/heads/"+base)
	if err != nil {
		return nil, h.convertError(err)
	}

	_, _, err = c.Git.CreateRef(ctx, owner, name, &github.Reference{
		Ref:    github.String("refs/heads/" + req.Branch),
		Object: &github.GitObject{SHA: baseRef.GetObject().SHA},
	})
	if err != nil {
		return nil, h.convertError(err)
	}

	fileOpts := &github.RepositoryContentFileOptions{
		Message: github.String(req.CommitMessage),
		Content: []byte(req.Content),
		Branch:  github.String(req.Branch),
	}

	existing, _, _, err := c.Repositories.GetContents(ctx, owner, name, req.Path,
		&github.RepositoryContentGetOptions{Ref: req.Branch})
	switch {
	case err == nil && existing != nil:
		fileOpts.SHA = existing.SHA
		if _, _, err := c.Repositories.UpdateFile(ctx, owner, name, req.Path, fileOpts); err != nil {
			return nil, h.convertError(err)
		}
	case err == nil || isNotFound(h.convertError(err)):
		if _, _, err := c.Repositories.CreateFile(ctx, owner, name, req.Path, fileOpts); err != nil {
			return nil, h.convertError(err)
		}
	default:
		return nil, h.convertError(err)
	}

	pr, _, err := c.PullRequests.Create(ctx, owner, name, &github.NewPullRequest{
		Title: github.String(req.Title),
		Body:  github.String(req.Body),
		Head:  github.String(req.Branch),
		Base:  github.String(base),
	})
	if err != nil {
		return nil, h.convertError(err)
	}

	slog.InfoContext(ctx, "documentation pull request opened",
		"repo_full_name", req.RepoFullName,
		"number", pr.GetNumber(),
		"branch", req.Branch)

	return &PullRequest{Number: pr.GetNumber(), URL: pr.GetHTMLURL(), Branch: req.Branch}, nil
}

func (h *GitHubHost) convertError(err error) error {
	var (
		resp     *http.Response
		message  string
		ghErr    *github.ErrorResponse
		rlErr    *github.RateLimitError
		abuseErr *github.AbuseRateLimitError
	)
	switch {
	case errors.As(err, &ghErr):
		resp, message = ghErr.Response, ghErr.Message
	case errors.As(err, &rlErr):
		resp, message = rlErr.Response, rlErr.Message
	case errors.As(err, &abuseErr):
		resp, message = abuseErr.Response, abuseErr.Message
	}

	if resp == nil {
		return &UnavailableError{Provider: ProviderGitHub, Err: err}
	}

	return &UpstreamHTTPError{
		Provider:   ProviderGitHub,
		StatusCode: resp.StatusCode,
		Body:       responseBody(resp, message),
	}
}

func responseBody(resp *http.Response, fallback string) string {
	if resp.Body != nil {
		data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		if err == nil && len(data) > 0 {
			return string(data)
		}
	}
	return fallback
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func toRepository(r *github.Repository) Repository {
	repo := Repository{
		ID:            r.GetID(),
		Name:          r.GetName(),
		FullName:      r.GetFullName(),
		Description:   r.GetDescription(),
		DefaultBranch: r.GetDefaultBranch(),
		HTMLURL:       r.GetHTMLURL(),
		Private:       r.GetPrivate(),
	}
	if r.UpdatedAt != nil {
		t := r.UpdatedAt.Time
		repo.UpdatedAt = &t
	}
	return repo
}
