package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Adv-2005/DocuGenAI/common/llm"
	"github.com/Adv-2005/DocuGenAI/internal/flow"
	"github.com/Adv-2005/DocuGenAI/internal/http/handler"
	"github.com/Adv-2005/DocuGenAI/internal/schema"
	"github.com/Adv-2005/DocuGenAI/internal/service"
)

var _ = Describe("FlowHandler", func() {
	var (
		router *gin.Engine
		docs   *mockDocumentationService
	)

	BeforeEach(func() {
		router = newTestRouter()
		docs = &mockDocumentationService{}
		h := handler.NewFlowHandler(docs)
		router.GET("/flows", h.List)
		router.POST("/flows/module-readme/batch", h.ModuleReadmeBatch)
		router.POST("/flows/:name", h.Run)
		router.POST("/flows/:name/render", h.Render)
	})

	do := func(method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
		req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		var resp map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
		return w, resp
	}

	It("lists flows with their fields", func() {
		docs.flowsFn = func() []*flow.Definition { return flow.DefaultRegistry().List() }

		w, resp := do(http.MethodGet, "/flows", "")

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(resp["flows"]).To(HaveLen(4))
	})

	It("runs the named flow with the raw body", func() {
		var gotName string
		var gotInput map[string]any
		docs.runFlowFn = func(_ context.Context, name string, input map[string]any) (*flow.Result, error) {
			gotName, gotInput = name, input
			return &flow.Result{
				Flow:   name,
				Output: schema.Values{"architectureOverview": "layers"},
				Usage:  flow.Usage{PromptTokens: 10, CompletionTokens: 3},
			}, nil
		}

		w, resp := do(http.MethodPost, "/flows/architecture-overview", `{"codebaseContent":"package main"}`)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(gotName).To(Equal("architecture-overview"))
		Expect(gotInput).To(HaveKeyWithValue("codebaseContent", "package main"))
		Expect(resp["output"]).To(HaveKeyWithValue("architectureOverview", "layers"))
		Expect(resp["usage"]).To(HaveKeyWithValue("promptTokens", BeNumerically("==", 10)))
	})

	It("reports schema violations with field and constraint", func() {
		docs.runFlowFn = func(context.Context, string, map[string]any) (*flow.Result, error) {
			return nil, &schema.ValidationError{
				Schema:     "ModuleReadmeInput",
				Field:      "moduleCode",
				Constraint: schema.ConstraintMissing,
			}
		}

		w, resp := do(http.MethodPost, "/flows/module-readme", `{"moduleName":"auth"}`)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(resp).To(HaveKeyWithValue("field", "moduleCode"))
		Expect(resp).To(HaveKeyWithValue("constraint", "missing_required_field"))
	})

	It("rejects a body that is not a JSON object", func() {
		w, _ := do(http.MethodPost, "/flows/module-readme", `["a"]`)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	DescribeTable("maps model failures",
		func(err error, status int) {
			docs.runFlowFn = func(context.Context, string, map[string]any) (*flow.Result, error) {
				return nil, err
			}

			w, _ := do(http.MethodPost, "/flows/semantic-search", `{"query":"q","documents":[]}`)

			Expect(w.Code).To(Equal(status))
		},
		Entry("rate limited", &llm.InvocationError{Provider: llm.ProviderGemini, StatusCode: 429}, http.StatusServiceUnavailable),
		Entry("rejected request", &llm.InvocationError{Provider: llm.ProviderOpenAI, StatusCode: 400}, http.StatusBadGateway),
		Entry("bad output", &llm.OutputError{Schema: "SemanticSearchOutput", Err: errors.New("bad json")}, http.StatusBadGateway),
		Entry("unknown flow", service.ErrFlowNotFound, http.StatusNotFound),
	)

	It("renders without running", func() {
		docs.renderFlowFn = func(_ context.Context, name string, _ map[string]any) (string, error) {
			return "prompt for " + name, nil
		}

		w, resp := do(http.MethodPost, "/flows/module-readme/render", `{"moduleName":"a","moduleCode":"b","repoName":"c"}`)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(resp).To(HaveKeyWithValue("prompt", "prompt for module-readme"))
	})

	Describe("ModuleReadmeBatch", func() {
		It("returns the readmes in order", func() {
			docs.generateModuleReadmesFn = func(_ context.Context, repo string, modules []service.ModuleSource) ([]service.ModuleReadme, error) {
				out := make([]service.ModuleReadme, len(modules))
				for i, m := range modules {
					out[i] = service.ModuleReadme{ModuleName: m.Name, ReadmeContent: repo + ":" + m.Name}
				}
				return out, nil
			}

			w, resp := do(http.MethodPost, "/flows/module-readme/batch",
				`{"repoName":"acme/api","modules":[{"moduleName":"a","moduleCode":"x"},{"moduleName":"b","moduleCode":"y"}]}`)

			Expect(w.Code).To(Equal(http.StatusOK))
			readmes := resp["readmes"].([]any)
			Expect(readmes).To(HaveLen(2))
			Expect(readmes[0]).To(HaveKeyWithValue("readmeContent", "acme/api:a"))
			Expect(readmes[1]).To(HaveKeyWithValue("moduleName", "b"))
		})

		It("requires at least one module", func() {
			w, _ := do(http.MethodPost, "/flows/module-readme/batch", `{"repoName":"acme/api","modules":[]}`)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})
})
