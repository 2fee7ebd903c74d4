package scm

import "fmt"

// Hosts resolves the Host for a connection. GitLab connections may point at
// a self-managed instance, so a GitLab host is built per instance URL.
type Hosts struct {
	github *GitHubHost
	gitlab GitLabOptions
}

func NewHosts(github *GitHubHost, gitlab GitLabOptions) *Hosts {
	return &Hosts{github: github, gitlab: gitlab}
}

func (h *Hosts) Get(provider Provider, instanceURL string) (Host, error) {
	switch provider {
	case ProviderGitHub:
		return h.github, nil
	case ProviderGitLab:
		opts := h.gitlab
		if instanceURL != "" {
			opts.BaseURL = instanceURL
		}
		return NewGitLabHost(opts), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", provider)
	}
}
