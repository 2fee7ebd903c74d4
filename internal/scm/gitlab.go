package scm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	gitlab "gitlab.com/gitlab-org/api/client-go"
)

const (
	DefaultGitLabURL = "https://gitlab.com"
	readmeFile       = "README.md"
	defaultRef       = "HEAD"
)

type GitLabOptions struct {
	BaseURL string // instance URL without /api/v4
	Timeout time.Duration
}

// GitLabHost implements Host against a GitLab instance using a personal
// access token.
type GitLabHost struct {
	baseURL string
	timeout time.Duration
}

var _ Host = (*GitLabHost)(nil)

func NewGitLabHost(opts GitLabOptions) *GitLabHost {
	base := opts.BaseURL
	if base == "" {
		base = DefaultGitLabURL
	}
	return &GitLabHost{baseURL: strings.TrimSuffix(base, "/"), timeout: opts.Timeout}
}

func (h *GitLabHost) Provider() Provider { return ProviderGitLab }

func (h *GitLabHost) BaseURL() string { return h.baseURL }

func (h *GitLabHost) newClient(token string) (*gitlab.Client, error) {
	httpClient := &http.Client{Timeout: h.timeout}
	client, err := gitlab.NewClient(
		token,
		gitlab.WithBaseURL(h.baseURL+"/api/v4"),
		gitlab.WithHTTPClient(httpClient),
		gitlab.WithCustomRetryMax(0),
	)
	if err != nil {
		return nil, fmt.Errorf("creating gitlab client: %w", err)
	}
	return client, nil
}

// ListRepositories returns the projects the token's user is a member of,
// most recently active first.
func (h *GitLabHost) ListRepositories(ctx context.Context, token string) ([]Repository, error) {
	client, err := h.newClient(token)
	if err != nil {
		return nil, err
	}

	opts := &gitlab.ListProjectsOptions{
		Membership: gitlab.Ptr(true),
		OrderBy:    gitlab.Ptr("last_activity_at"),
		Sort:       gitlab.Ptr("desc"),
		ListOptions: gitlab.ListOptions{
			Page:    1,
			PerPage: 100,
		},
	}

	var repos []Repository
	for i := 0; i < maxRepoPages; i++ {
		pageProjects, resp, err := client.Projects.ListProjects(opts, gitlab.WithContext(ctx))
		if err != nil {
			return nil, convertGitLabError(err)
		}

		for _, p := range pageProjects {
			repos = append(repos, Repository{
				ID:            int64(p.ID),
				Name:          p.Name,
				FullName:      p.PathWithNamespace,
				Description:   p.Description,
				DefaultBranch: p.DefaultBranch,
				HTMLURL:       p.WebURL,
				Private:       p.Visibility != gitlab.PublicVisibility,
				UpdatedAt:     p.LastActivityAt,
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return repos, nil
}

// FetchReadme reads README.md from the project's default branch. A missing
// project and a missing file both report ErrReadmeNotFound.
func (h *GitLabHost) FetchReadme(ctx context.Context, token, fullName string) ([]byte, error) {
	if _, _, err := SplitFullName(fullName); err != nil {
		return nil, err
	}

	client, err := h.newClient(token)
	if err != nil {
		return nil, err
	}

	raw, _, err := client.RepositoryFiles.GetRawFile(fullName, readmeFile,
		&gitlab.GetRawFileOptions{Ref: gitlab.Ptr(defaultRef)},
		gitlab.WithContext(ctx))
	if err != nil {
		err = convertGitLabError(err)
		if isNotFound(err) {
			return nil, ErrReadmeNotFound
		}
		return nil, err
	}

	return raw, nil
}

func (h *GitLabHost) Account(ctx context.Context, token string) (*Account, error) {
	client, err := h.newClient(token)
	if err != nil {
		return nil, err
	}

	user, _, err := client.Users.CurrentUser(gitlab.WithContext(ctx))
	if err != nil {
		return nil, convertGitLabError(err)
	}

	return &Account{
		ID:    int64(user.ID),
		Login: user.Username,
		Name:  user.Name,
		Email: user.Email,
	}, nil
}

func convertGitLabError(err error) error {
	// client-go reports every 404 as this sentinel and drops the body.
	if errors.Is(err, gitlab.ErrNotFound) {
		return &UpstreamHTTPError{
			Provider:   ProviderGitLab,
			StatusCode: http.StatusNotFound,
			Body:       err.Error(),
		}
	}

	var glErr *gitlab.ErrorResponse
	if !errors.As(err, &glErr) || glErr.Response == nil {
		return &UnavailableError{Provider: ProviderGitLab, Err: err}
	}

	body := string(glErr.Body)
	if body == "" {
		body = glErr.Message
	}
	return &UpstreamHTTPError{
		Provider:   ProviderGitLab,
		StatusCode: glErr.Response.StatusCode,
		Body:       body,
	}
}
