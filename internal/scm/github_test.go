package scm_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/Adv-2005/DocuGenAI/internal/scm"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type recordedRequest struct {
	method string
	path   string
	query  string
	header http.Header
	body   map[string]any
}

type recorder struct {
	mu       sync.Mutex
	requests []recordedRequest
}

func (r *recorder) wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		data, _ := io.ReadAll(req.Body)
		var body map[string]any
		_ = json.Unmarshal(data, &body)

		r.mu.Lock()
		r.requests = append(r.requests, recordedRequest{
			method: req.Method,
			path:   req.URL.Path,
			query:  req.URL.RawQuery,
			header: req.Header.Clone(),
			body:   body,
		})
		r.mu.Unlock()

		next.ServeHTTP(w, req)
	})
}

func (r *recorder) all() []recordedRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]recordedRequest(nil), r.requests...)
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

var _ = Describe("GitHubHost", func() {
	var (
		ctx    context.Context
		mux    *http.ServeMux
		rec    *recorder
		server *httptest.Server
		host   *scm.GitHubHost
	)

	BeforeEach(func() {
		ctx = context.Background()
		mux = http.NewServeMux()
		rec = &recorder{}
		server = httptest.NewServer(rec.wrap(mux))

		var err error
		host, err = scm.NewGitHubHost(scm.GitHubOptions{BaseURL: server.URL})
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		server.Close()
	})

	Describe("FetchReadme", func() {
		It("requests the raw README with the token and user agent", func() {
			mux.HandleFunc("GET /repos/acme/web/readme", func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/plain")
				_, _ = io.WriteString(w, "Hello **world**\n")
			})

			readme, err := host.FetchReadme(ctx, "gho_token", "acme/web")
			Expect(err).NotTo(HaveOccurred())
			Expect(string(readme)).To(Equal("Hello **world**\n"))

			reqs := rec.all()
			Expect(reqs).To(HaveLen(1))
			Expect(reqs[0].header.Get("Authorization")).To(Equal("Bearer gho_token"))
			Expect(reqs[0].header.Get("Accept")).To(Equal("application/vnd.github.v3.raw"))
			Expect(reqs[0].header.Get("User-Agent")).To(Equal("docugenai-app"))
		})

		It("maps 404 to ErrReadmeNotFound", func() {
			mux.HandleFunc("GET /repos/acme/empty/readme", func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusNotFound, `{"message":"Not Found"}`)
			})

			_, err := host.FetchReadme(ctx, "t", "acme/empty")
			Expect(err).To(MatchError(scm.ErrReadmeNotFound))
		})

		It("keeps the upstream status and body for other failures", func() {
			mux.HandleFunc("GET /repos/acme/web/readme", func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusUnauthorized, `{"message":"Bad credentials"}`)
			})

			_, err := host.FetchReadme(ctx, "expired", "acme/web")
			var upErr *scm.UpstreamHTTPError
			Expect(errors.As(err, &upErr)).To(BeTrue())
			Expect(upErr.StatusCode).To(Equal(http.StatusUnauthorized))
			Expect(upErr.Body).To(ContainSubstring("Bad credentials"))
			Expect(errors.Is(err, scm.ErrReadmeNotFound)).To(BeFalse())
		})

		It("reports an unreachable host as unavailable", func() {
			server.Close()

			_, err := host.FetchReadme(ctx, "t", "acme/web")
			var unavailable *scm.UnavailableError
			Expect(errors.As(err, &unavailable)).To(BeTrue())
			Expect(unavailable.Provider).To(Equal(scm.ProviderGitHub))
		})

		It("rejects names without an owner before any request", func() {
			_, err := host.FetchReadme(ctx, "t", "web")
			Expect(errors.Is(err, scm.ErrInvalidRepoName)).To(BeTrue())
			Expect(rec.all()).To(BeEmpty())
		})
	})

	Describe("ListRepositories", func() {
		It("asks for recently updated repositories and keeps the upstream order", func() {
			mux.HandleFunc("GET /user/repos", func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, `[
					{"id": 2, "name": "web", "full_name": "acme/web", "default_branch": "main", "private": true, "updated_at": "2024-05-02T10:00:00Z"},
					{"id": 1, "name": "api", "full_name": "acme/api", "default_branch": "trunk"}
				]`)
			})

			repos, err := host.ListRepositories(ctx, "t")
			Expect(err).NotTo(HaveOccurred())
			Expect(repos).To(HaveLen(2))
			Expect(repos[0].FullName).To(Equal("acme/web"))
			Expect(repos[0].Private).To(BeTrue())
			Expect(repos[0].UpdatedAt).NotTo(BeNil())
			Expect(repos[1].DefaultBranch).To(Equal("trunk"))
			Expect(repos[1].UpdatedAt).To(BeNil())

			query := rec.all()[0].query
			Expect(query).To(ContainSubstring("sort=updated"))
			Expect(query).To(ContainSubstring("direction=desc"))
		})
	})

	Describe("Account", func() {
		It("returns the authenticated user", func() {
			mux.HandleFunc("GET /user", func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, `{"id": 99, "login": "octo", "name": "Octo Cat"}`)
			})

			account, err := host.Account(ctx, "t")
			Expect(err).NotTo(HaveOccurred())
			Expect(account.ID).To(Equal(int64(99)))
			Expect(account.Login).To(Equal("octo"))
		})
	})

	Describe("OpenDocsPullRequest", func() {
		BeforeEach(func() {
			mux.HandleFunc("GET /repos/acme/web", func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, `{"id": 1, "full_name": "acme/web", "default_branch": "main"}`)
			})
			mux.HandleFunc("GET /repos/acme/web/git/ref/heads/main", func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, `{"ref": "refs/heads/main", "object": {"sha": "base-sha", "type": "commit"}}`)
			})
			mux.HandleFunc("POST /repos/acme/web/git/refs", func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusCreated, `{"ref": "refs/heads/docugen/readme-1", "object": {"sha": "base-sha"}}`)
			})
			mux.HandleFunc("PUT /repos/acme/web/contents/README.md", func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusCreated, `{"content": {"name": "README.md"}, "commit": {"sha": "new-sha"}}`)
			})
			mux.HandleFunc("POST /repos/acme/web/pulls", func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusCreated, `{"number": 7, "html_url": "https://github.com/acme/web/pull/7"}`)
			})
		})

		It("branches from the default branch, writes the file and opens the PR", func() {
			mux.HandleFunc("GET /repos/acme/web/contents/README.md", func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusNotFound, `{"message": "Not Found"}`)
			})

			pr, err := host.OpenDocsPullRequest(ctx, "t", scm.DocsPullRequest{
				RepoFullName:  "acme/web",
				Branch:        "docugen/readme-1",
				Path:          "README.md",
				Content:       "# web\n",
				Title:         "Update README",
				Body:          "Generated documentation",
				CommitMessage: "docs: update README",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(pr.Number).To(Equal(7))
			Expect(pr.URL).To(Equal("https://github.com/acme/web/pull/7"))
			Expect(pr.Branch).To(Equal("docugen/readme-1"))

			var createRef, putFile, createPR *recordedRequest
			for _, r := range rec.all() {
				switch {
				case r.method == http.MethodPost && r.path == "/repos/acme/web/git/refs":
					createRef = &r
				case r.method == http.MethodPut:
					putFile = &r
				case r.method == http.MethodPost && r.path == "/repos/acme/web/pulls":
					createPR = &r
				}
			}
			Expect(createRef).NotTo(BeNil())
			Expect(createRef.body).To(HaveKeyWithValue("ref", "refs/heads/docugen/readme-1"))
			Expect(createRef.body).To(HaveKeyWithValue("sha", "base-sha"))

			Expect(putFile).NotTo(BeNil())
			Expect(putFile.body).To(HaveKeyWithValue("branch", "docugen/readme-1"))
			Expect(putFile.body).NotTo(HaveKey("sha"))

			Expect(createPR).NotTo(BeNil())
			Expect(createPR.body).To(HaveKeyWithValue("head", "docugen/readme-1"))
			Expect(createPR.body).To(HaveKeyWithValue("base", "main"))
		})

		It("updates an existing file with its blob sha", func() {
			mux.HandleFunc("GET /repos/acme/web/contents/README.md", func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, `{"type": "file", "name": "README.md", "path": "README.md", "sha": "old-sha"}`)
			})

			_, err := host.OpenDocsPullRequest(ctx, "t", scm.DocsPullRequest{
				RepoFullName: "acme/web",
				Branch:       "docugen/readme-1",
				Path:         "README.md",
				Content:      "# web\n",
				Title:        "Update README",
			})
			Expect(err).NotTo(HaveOccurred())

			for _, r := range rec.all() {
				if r.method == http.MethodPut {
					Expect(r.body).To(HaveKeyWithValue("sha", "old-sha"))
				}
			}
		})
	})
})
