package service_test

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/goleak"

	"github.com/Adv-2005/DocuGenAI/common/llm"
	"github.com/Adv-2005/DocuGenAI/internal/flow"
	"github.com/Adv-2005/DocuGenAI/internal/model"
	"github.com/Adv-2005/DocuGenAI/internal/schema"
	"github.com/Adv-2005/DocuGenAI/internal/scm"
	"github.com/Adv-2005/DocuGenAI/internal/service"
	"github.com/Adv-2005/DocuGenAI/internal/store"
)

var _ = Describe("DocumentationService", func() {
	var (
		ctx         context.Context
		invoker     *mockInvoker
		github      *mockPullRequestHost
		gitlab      *mockHost
		connections *mockConnectionStore
		drafts      *mockDraftStore
		svc         service.DocumentationService
	)

	newService := func(concurrency int) service.DocumentationService {
		hosts := &mockHosts{hosts: map[scm.Provider]scm.Host{
			scm.ProviderGitHub: github,
			scm.ProviderGitLab: gitlab,
		}}
		return service.NewDocumentationService(flow.New(invoker), flow.DefaultRegistry(), hosts, connections, drafts, concurrency)
	}

	BeforeEach(func() {
		ctx = context.Background()
		invoker = &mockInvoker{invokeFn: replyWith(`{"readmeContent":"# generated"}`)}
		github = &mockPullRequestHost{mockHost: mockHost{provider: scm.ProviderGitHub}}
		gitlab = &mockHost{provider: scm.ProviderGitLab}
		connections = &mockConnectionStore{}
		drafts = &mockDraftStore{}
		svc = newService(2)
	})

	Describe("ReadmeDocument", func() {
		It("prefixes the raw README with the repository heading", func() {
			github.fetchReadme = func(context.Context, string, string) ([]byte, error) {
				return []byte("Hello **world**\n"), nil
			}

			content, err := svc.ReadmeDocument(ctx, scm.ProviderGitHub, "foo/bar", "tok")
			Expect(err).NotTo(HaveOccurred())
			Expect(content).To(Equal("# foo/bar\n\nHello **world**\n"))
			Expect(github.readmeCalls).To(Equal(int32(1)))
			Expect(github.lastToken).To(Equal("tok"))
		})

		DescribeTable("reports missing parameters before any network call",
			func(repo, token string, missing []string) {
				_, err := svc.ReadmeDocument(ctx, scm.ProviderGitHub, repo, token)
				var missingErr *service.MissingCredentialError
				Expect(errors.As(err, &missingErr)).To(BeTrue())
				Expect(missingErr.Missing).To(Equal(missing))
				Expect(github.readmeCalls).To(BeZero())
			},
			Entry("no repository", "", "tok", []string{"repoFullName"}),
			Entry("no token", "foo/bar", "", []string{"accessToken"}),
			Entry("neither", "", "", []string{"repoFullName", "accessToken"}),
		)

		It("passes host errors through unchanged", func() {
			upstream := &scm.UpstreamHTTPError{Provider: scm.ProviderGitHub, StatusCode: 500, Body: "boom"}
			github.fetchReadme = func(context.Context, string, string) ([]byte, error) {
				return nil, upstream
			}

			_, err := svc.ReadmeDocument(ctx, scm.ProviderGitHub, "foo/bar", "tok")
			Expect(err).To(BeIdenticalTo(upstream))
			Expect(github.readmeCalls).To(Equal(int32(1)))
		})

		It("returns ErrReadmeNotFound for a repository without a README", func() {
			_, err := svc.ReadmeDocument(ctx, scm.ProviderGitHub, "foo/empty", "tok")
			Expect(err).To(MatchError(scm.ErrReadmeNotFound))
		})
	})

	Describe("ReadmeDocumentForUser", func() {
		It("reads the token from the user's connection", func() {
			connections.getFn = func(_ context.Context, _ int64, p scm.Provider) (*model.RepositoryConnection, error) {
				return &model.RepositoryConnection{Provider: p, AccessToken: "glpat-stored"}, nil
			}
			gitlab.fetchReadme = func(context.Context, string, string) ([]byte, error) {
				return []byte("docs"), nil
			}

			content, err := svc.ReadmeDocumentForUser(ctx, 7, scm.ProviderGitLab, "acme/api")
			Expect(err).NotTo(HaveOccurred())
			Expect(content).To(Equal("# acme/api\n\ndocs"))
			Expect(gitlab.lastToken).To(Equal("glpat-stored"))
		})

		It("treats a missing connection as a missing credential", func() {
			_, err := svc.ReadmeDocumentForUser(ctx, 7, scm.ProviderGitHub, "acme/api")
			var missingErr *service.MissingCredentialError
			Expect(errors.As(err, &missingErr)).To(BeTrue())
		})
	})

	Describe("RunFlow", func() {
		It("runs a registered flow by name", func() {
			invoker.invokeFn = replyWith(`{"architectureOverview":"layers"}`)

			res, err := svc.RunFlow(ctx, flow.NameArchitectureOverview, map[string]any{"codebaseContent": "package main"})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Output.String("architectureOverview")).To(Equal("layers"))
		})

		It("rejects unknown flows", func() {
			_, err := svc.RunFlow(ctx, "summarize-everything", map[string]any{})
			Expect(errors.Is(err, service.ErrFlowNotFound)).To(BeTrue())
		})

		It("renders without invoking the model", func() {
			prompt, err := svc.RenderFlow(ctx, flow.NameArchitectureOverview, map[string]any{"codebaseContent": "package main"})
			Expect(err).NotTo(HaveOccurred())
			Expect(prompt).To(ContainSubstring("package main"))
			Expect(invoker.calls).To(BeZero())
		})
	})

	Describe("GenerateModuleReadmes", func() {
		It("keeps input order and bounds concurrency", func() {
			before := goleak.IgnoreCurrent()

			var inFlight, peak int32
			invoker.invokeFn = func(ctx context.Context, req llm.Request) (schema.Values, *llm.Response, error) {
				n := atomic.AddInt32(&inFlight, 1)
				defer atomic.AddInt32(&inFlight, -1)
				for {
					p := atomic.LoadInt32(&peak)
					if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
						break
					}
				}
				time.Sleep(10 * time.Millisecond)

				name := req.Prompt[strings.Index(req.Prompt, "mod-"):]
				name = name[:strings.IndexAny(name, "\n ")]
				return replyWith(`{"readmeContent":"# ` + name + `"}`)(ctx, req)
			}

			modules := []service.ModuleSource{
				{Name: "mod-a", Code: "a"}, {Name: "mod-b", Code: "b"}, {Name: "mod-c", Code: "c"},
				{Name: "mod-d", Code: "d"}, {Name: "mod-e", Code: "e"},
			}
			results, err := svc.GenerateModuleReadmes(ctx, "acme/web", modules)
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(5))
			for i, m := range modules {
				Expect(results[i].ModuleName).To(Equal(m.Name))
				Expect(results[i].ReadmeContent).To(Equal("# " + m.Name))
			}
			Expect(atomic.LoadInt32(&peak)).To(BeNumerically("<=", 2))
			Expect(invoker.calls).To(Equal(int32(5)))

			Expect(goleak.Find(before)).To(Succeed())
		})

		It("fails the batch when one module fails", func() {
			invoker.invokeFn = func(ctx context.Context, req llm.Request) (schema.Values, *llm.Response, error) {
				if strings.Contains(req.Prompt, "broken") {
					return nil, nil, &llm.InvocationError{Provider: llm.ProviderGemini, StatusCode: 500}
				}
				return replyWith(`{"readmeContent":"ok"}`)(ctx, req)
			}

			_, err := svc.GenerateModuleReadmes(ctx, "acme/web", []service.ModuleSource{
				{Name: "fine", Code: "x"}, {Name: "broken", Code: "y"},
			})
			var invErr *llm.InvocationError
			Expect(errors.As(err, &invErr)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring(`module "broken"`))
		})

		It("returns an empty result for no modules", func() {
			results, err := svc.GenerateModuleReadmes(ctx, "acme/web", nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(BeEmpty())
			Expect(invoker.calls).To(BeZero())
		})
	})

	Describe("drafts", func() {
		It("fills defaults when saving", func() {
			var saved *model.DocumentationDraft
			drafts.saveFn = func(_ context.Context, d *model.DocumentationDraft) error {
				saved = d
				return nil
			}

			draft, err := svc.SaveDraft(ctx, 7, service.SaveDraftParams{RepoFullName: "acme/web", Content: "# web"})
			Expect(err).NotTo(HaveOccurred())
			Expect(draft).To(BeIdenticalTo(saved))
			Expect(draft.ID).NotTo(BeZero())
			Expect(draft.Path).To(Equal("README.md"))
			Expect(draft.Kind).To(Equal(model.DraftKindReadme))
			Expect(draft.Provider).To(Equal(scm.ProviderGitHub))
		})

		It("rejects unknown kinds", func() {
			_, err := svc.SaveDraft(ctx, 7, service.SaveDraftParams{RepoFullName: "acme/web", Kind: "poem"})
			var invalid *service.InvalidInputError
			Expect(errors.As(err, &invalid)).To(BeTrue())
			Expect(invalid.Field).To(Equal("kind"))
		})

		It("maps a missing draft", func() {
			_, err := svc.GetDraft(ctx, 7, 1)
			Expect(err).To(MatchError(service.ErrDraftNotFound))
		})
	})

	Describe("CreatePullRequest", func() {
		BeforeEach(func() {
			connections.getFn = func(_ context.Context, _ int64, p scm.Provider) (*model.RepositoryConnection, error) {
				return &model.RepositoryConnection{Provider: p, AccessToken: "gho_stored"}, nil
			}
		})

		It("opens the PR from a saved draft on a new branch", func() {
			drafts.getFn = func(_ context.Context, userID, id int64) (*model.DocumentationDraft, error) {
				return &model.DocumentationDraft{
					ID: id, UserID: userID, RepoFullName: "acme/web", Path: "docs/ARCH.md",
					Title: "Architecture overview", Content: "# Architecture",
				}, nil
			}
			draftID := int64(42)

			pr, err := svc.CreatePullRequest(ctx, 7, service.CreatePullRequestParams{DraftID: &draftID})
			Expect(err).NotTo(HaveOccurred())
			Expect(pr.Number).To(Equal(1))

			Expect(github.opened).To(HaveLen(1))
			req := github.opened[0]
			Expect(req.RepoFullName).To(Equal("acme/web"))
			Expect(req.Path).To(Equal("docs/ARCH.md"))
			Expect(req.Content).To(Equal("# Architecture"))
			Expect(req.Branch).To(HavePrefix("docugen/architecture-overview-"))
			Expect(req.CommitMessage).To(Equal("docs: update docs/ARCH.md"))
		})

		It("requires content", func() {
			_, err := svc.CreatePullRequest(ctx, 7, service.CreatePullRequestParams{RepoFullName: "acme/web"})
			var invalid *service.InvalidInputError
			Expect(errors.As(err, &invalid)).To(BeTrue())
			Expect(github.opened).To(BeEmpty())
		})

		It("requires a GitHub connection", func() {
			connections.getFn = func(context.Context, int64, scm.Provider) (*model.RepositoryConnection, error) {
				return nil, store.ErrNotFound
			}
			_, err := svc.CreatePullRequest(ctx, 7, service.CreatePullRequestParams{RepoFullName: "acme/web", Content: "x"})
			var missing *service.MissingCredentialError
			Expect(errors.As(err, &missing)).To(BeTrue())
		})
	})
})
