package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Adv-2005/DocuGenAI/common"
	"github.com/Adv-2005/DocuGenAI/common/id"
	"github.com/Adv-2005/DocuGenAI/common/logger"
	"github.com/Adv-2005/DocuGenAI/internal/flow"
	"github.com/Adv-2005/DocuGenAI/internal/model"
	"github.com/Adv-2005/DocuGenAI/internal/scm"
	"github.com/Adv-2005/DocuGenAI/internal/store"
)

const (
	defaultBatchConcurrency = 4
	defaultReadmePath       = "README.md"
)

var ErrFlowNotFound = errors.New("flow not found")

type ModuleSource struct {
	Name string `json:"moduleName"`
	Code string `json:"moduleCode"`
}

type ModuleReadme struct {
	ModuleName    string `json:"moduleName"`
	ReadmeContent string `json:"readmeContent"`
}

type SaveDraftParams struct {
	Provider     scm.Provider
	RepoFullName string
	Kind         model.DraftKind
	Path         string
	Title        string
	Content      string
}

// CreatePullRequestParams describes the PR to open. When DraftID is set the
// draft's path, title and content fill in whatever is left empty.
type CreatePullRequestParams struct {
	RepoFullName  string
	Path          string
	Content       string
	Title         string
	Body          string
	CommitMessage string
	DraftID       *int64
}

type DocumentationService interface {
	// ReadmeDocument fetches the README with the caller's token and returns
	// "# {repoFullName}\n\n{readme}".
	ReadmeDocument(ctx context.Context, provider scm.Provider, repoFullName, accessToken string) (string, error)
	ReadmeDocumentForUser(ctx context.Context, userID int64, provider scm.Provider, repoFullName string) (string, error)

	Flows() []*flow.Definition
	RunFlow(ctx context.Context, name string, input map[string]any) (*flow.Result, error)
	RenderFlow(ctx context.Context, name string, input map[string]any) (string, error)

	GenerateArchitectureOverview(ctx context.Context, in flow.ArchitectureOverviewInput) (*flow.ArchitectureOverviewOutput, error)
	GenerateModuleReadme(ctx context.Context, in flow.ModuleReadmeInput) (*flow.ModuleReadmeOutput, error)
	SemanticSearch(ctx context.Context, in flow.SemanticSearchInput) (*flow.SemanticSearchOutput, error)
	SuggestPRDocumentation(ctx context.Context, in flow.PRDocumentationDeltaInput) (*flow.PRDocumentationDeltaOutput, error)
	// GenerateModuleReadmes runs one module README flow per module
	// concurrently. Results keep the input order; any failure fails the batch.
	GenerateModuleReadmes(ctx context.Context, repoName string, modules []ModuleSource) ([]ModuleReadme, error)

	SaveDraft(ctx context.Context, userID int64, params SaveDraftParams) (*model.DocumentationDraft, error)
	GetDraft(ctx context.Context, userID, draftID int64) (*model.DocumentationDraft, error)
	ListDrafts(ctx context.Context, userID int64) ([]model.DocumentationDraft, error)

	CreatePullRequest(ctx context.Context, userID int64, params CreatePullRequestParams) (*scm.PullRequest, error)
}

type documentationService struct {
	orchestrator     *flow.Orchestrator
	registry         *flow.Registry
	hosts            HostResolver
	connections      store.RepositoryConnectionStore
	drafts           store.DocumentationDraftStore
	batchConcurrency int
}

func NewDocumentationService(
	orchestrator *flow.Orchestrator,
	registry *flow.Registry,
	hosts HostResolver,
	connections store.RepositoryConnectionStore,
	drafts store.DocumentationDraftStore,
	batchConcurrency int,
) DocumentationService {
	if batchConcurrency <= 0 {
		batchConcurrency = defaultBatchConcurrency
	}
	return &documentationService{
		orchestrator:     orchestrator,
		registry:         registry,
		hosts:            hosts,
		connections:      connections,
		drafts:           drafts,
		batchConcurrency: batchConcurrency,
	}
}

func (s *documentationService) ReadmeDocument(ctx context.Context, provider scm.Provider, repoFullName, accessToken string) (string, error) {
	var missing []string
	if repoFullName == "" {
		missing = append(missing, "repoFullName")
	}
	if accessToken == "" {
		missing = append(missing, "accessToken")
	}
	if len(missing) > 0 {
		return "", &MissingCredentialError{Missing: missing}
	}

	host, err := s.hosts.Get(provider, "")
	if err != nil {
		return "", err
	}
	return s.readme(ctx, host, repoFullName, accessToken)
}

func (s *documentationService) ReadmeDocumentForUser(ctx context.Context, userID int64, provider scm.Provider, repoFullName string) (string, error) {
	if repoFullName == "" {
		return "", &MissingCredentialError{Missing: []string{"repoFullName"}}
	}

	conn, host, err := resolveConnection(ctx, s.connections, s.hosts, userID, provider)
	if err != nil {
		return "", err
	}
	return s.readme(ctx, host, repoFullName, conn.AccessToken)
}

func (s *documentationService) readme(ctx context.Context, host scm.Host, repoFullName, token string) (string, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Provider:     logger.Ptr(string(host.Provider())),
		RepoFullName: &repoFullName,
	})

	raw, err := host.FetchReadme(ctx, token, repoFullName)
	if err != nil {
		slog.WarnContext(ctx, "readme fetch failed", "error", err)
		return "", err
	}

	slog.DebugContext(ctx, "readme fetched", "bytes", len(raw))
	return fmt.Sprintf("# %s\n\n%s", repoFullName, raw), nil
}

func (s *documentationService) Flows() []*flow.Definition {
	return s.registry.List()
}

func (s *documentationService) RunFlow(ctx context.Context, name string, input map[string]any) (*flow.Result, error) {
	def, ok := s.registry.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFlowNotFound, name)
	}
	return s.orchestrator.Run(ctx, def, input)
}

func (s *documentationService) RenderFlow(ctx context.Context, name string, input map[string]any) (string, error) {
	def, ok := s.registry.Get(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrFlowNotFound, name)
	}
	return s.orchestrator.Render(ctx, def, input)
}

func (s *documentationService) GenerateArchitectureOverview(ctx context.Context, in flow.ArchitectureOverviewInput) (*flow.ArchitectureOverviewOutput, error) {
	return s.orchestrator.ArchitectureOverview(ctx, in)
}

func (s *documentationService) GenerateModuleReadme(ctx context.Context, in flow.ModuleReadmeInput) (*flow.ModuleReadmeOutput, error) {
	return s.orchestrator.ModuleReadme(ctx, in)
}

func (s *documentationService) SemanticSearch(ctx context.Context, in flow.SemanticSearchInput) (*flow.SemanticSearchOutput, error) {
	return s.orchestrator.SemanticSearch(ctx, in)
}

func (s *documentationService) SuggestPRDocumentation(ctx context.Context, in flow.PRDocumentationDeltaInput) (*flow.PRDocumentationDeltaOutput, error) {
	return s.orchestrator.PRDocumentationDelta(ctx, in)
}

func (s *documentationService) GenerateModuleReadmes(ctx context.Context, repoName string, modules []ModuleSource) ([]ModuleReadme, error) {
	results := make([]ModuleReadme, len(modules))
	if len(modules) == 0 {
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchConcurrency)

	for i, m := range modules {
		g.Go(func() error {
			out, err := s.orchestrator.ModuleReadme(gctx, flow.ModuleReadmeInput{
				ModuleName: m.Name,
				ModuleCode: m.Code,
				RepoName:   repoName,
			})
			if err != nil {
				return fmt.Errorf("module %q: %w", m.Name, err)
			}
			results[i] = ModuleReadme{ModuleName: m.Name, ReadmeContent: out.ReadmeContent}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "module readmes generated", "repo_name", repoName, "modules", len(modules))
	return results, nil
}

func (s *documentationService) SaveDraft(ctx context.Context, userID int64, params SaveDraftParams) (*model.DocumentationDraft, error) {
	if params.RepoFullName == "" {
		return nil, &InvalidInputError{Field: "repoFullName", Reason: "is required"}
	}
	if _, _, err := scm.SplitFullName(params.RepoFullName); err != nil {
		return nil, &InvalidInputError{Field: "repoFullName", Reason: "must be owner/name"}
	}
	if params.Kind == "" {
		params.Kind = model.DraftKindReadme
	}
	if !params.Kind.Valid() {
		return nil, &InvalidInputError{Field: "kind", Reason: fmt.Sprintf("unknown draft kind %q", params.Kind)}
	}
	if params.Path == "" {
		params.Path = defaultReadmePath
	}
	if params.Provider == "" {
		params.Provider = scm.ProviderGitHub
	}

	draft := &model.DocumentationDraft{
		ID:           id.New(),
		UserID:       userID,
		Provider:     params.Provider,
		RepoFullName: params.RepoFullName,
		Kind:         params.Kind,
		Path:         params.Path,
		Title:        params.Title,
		Content:      params.Content,
	}
	if err := s.drafts.Save(ctx, draft); err != nil {
		return nil, fmt.Errorf("saving draft: %w", err)
	}

	slog.InfoContext(ctx, "draft saved",
		"user_id", userID,
		"draft_id", draft.ID,
		"repo_full_name", draft.RepoFullName,
		"path", draft.Path)
	return draft, nil
}

func (s *documentationService) GetDraft(ctx context.Context, userID, draftID int64) (*model.DocumentationDraft, error) {
	draft, err := s.drafts.Get(ctx, userID, draftID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrDraftNotFound
		}
		return nil, fmt.Errorf("getting draft: %w", err)
	}
	return draft, nil
}

func (s *documentationService) ListDrafts(ctx context.Context, userID int64) ([]model.DocumentationDraft, error) {
	return s.drafts.ListByUser(ctx, userID, 0)
}

func (s *documentationService) CreatePullRequest(ctx context.Context, userID int64, params CreatePullRequestParams) (*scm.PullRequest, error) {
	if params.DraftID != nil {
		draft, err := s.GetDraft(ctx, userID, *params.DraftID)
		if err != nil {
			return nil, err
		}
		params.RepoFullName = cmp.Or(params.RepoFullName, draft.RepoFullName)
		params.Path = cmp.Or(params.Path, draft.Path)
		params.Title = cmp.Or(params.Title, draft.Title)
		params.Content = cmp.Or(params.Content, draft.Content)
	}

	if params.RepoFullName == "" {
		return nil, &MissingCredentialError{Missing: []string{"repoFullName"}}
	}
	if strings.TrimSpace(params.Content) == "" {
		return nil, &InvalidInputError{Field: "content", Reason: "is required"}
	}
	params.Path = cmp.Or(params.Path, defaultReadmePath)
	params.Title = cmp.Or(params.Title, "Update "+params.Path)
	params.CommitMessage = cmp.Or(params.CommitMessage, "docs: update "+params.Path)

	conn, host, err := resolveConnection(ctx, s.connections, s.hosts, userID, scm.ProviderGitHub)
	if err != nil {
		return nil, err
	}
	requester, ok := host.(scm.PullRequester)
	if !ok {
		return nil, ErrPullRequestsUnsupported
	}

	branch, err := common.BranchName(params.Title, id.New())
	if err != nil {
		return nil, err
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{UserID: &userID, RepoFullName: &params.RepoFullName})
	pr, err := requester.OpenDocsPullRequest(ctx, conn.AccessToken, scm.DocsPullRequest{
		RepoFullName:  params.RepoFullName,
		Branch:        branch,
		Path:          params.Path,
		Content:       params.Content,
		Title:         params.Title,
		Body:          params.Body,
		CommitMessage: params.CommitMessage,
	})
	if err != nil {
		slog.WarnContext(ctx, "pull request failed", "error", err, "branch", branch)
		return nil, err
	}
	return pr, nil
}
