package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Adv-2005/DocuGenAI/common/logger"
	"github.com/Adv-2005/DocuGenAI/internal/http/dto"
	"github.com/Adv-2005/DocuGenAI/internal/scm"
	"github.com/Adv-2005/DocuGenAI/internal/service"
)

const (
	msgProxyMissingParams = "repoFullName and accessToken are required"
	msgProxyFailed        = "Failed to generate documentation."
)

type DocumentationHandler struct {
	docs service.DocumentationService
}

func NewDocumentationHandler(docs service.DocumentationService) *DocumentationHandler {
	return &DocumentationHandler{docs: docs}
}

// GenerateDocs proxies a GitHub README with the caller's own token. Any
// missing field gets the same combined message. A body that fails to decode
// and any failure that is not an upstream error answer 500.
func (h *DocumentationHandler) GenerateDocs(c *gin.Context) {
	var req dto.GenerateDocsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.ErrorContext(c.Request.Context(), "decoding readme proxy body", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgProxyFailed})
		return
	}

	ctx := logger.WithLogFields(c.Request.Context(), logger.LogFields{
		RepoFullName: logger.Ptr(req.RepoFullName),
		Component:    "docugen.readme_proxy",
	})

	content, err := h.docs.ReadmeDocument(ctx, scm.ProviderGitHub, req.RepoFullName, req.AccessToken)
	if err != nil {
		var (
			missingErr     *service.MissingCredentialError
			upstreamErr    *scm.UpstreamHTTPError
			unavailableErr *scm.UnavailableError
		)
		switch {
		case errors.As(err, &missingErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": msgProxyMissingParams})
		case errors.Is(err, scm.ErrReadmeNotFound),
			errors.Is(err, scm.ErrInvalidRepoName),
			errors.As(err, &upstreamErr),
			errors.As(err, &unavailableErr):
			respondError(c, err)
		default:
			slog.ErrorContext(ctx, "generating readme document", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": msgProxyFailed})
		}
		return
	}

	c.JSON(http.StatusOK, dto.DocumentResponse{Content: content})
}

// RepositoryReadme is the signed-in variant that uses the stored connection.
func (h *DocumentationHandler) RepositoryReadme(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.RepositoryReadmeRequest
	if !bindJSON(c, &req) {
		return
	}
	provider, ok := parseProvider(c, req.Provider)
	if !ok {
		return
	}

	ctx := logger.WithLogFields(c.Request.Context(), logger.LogFields{RepoFullName: logger.Ptr(req.RepoFullName)})
	content, err := h.docs.ReadmeDocumentForUser(ctx, userID, provider, req.RepoFullName)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.DocumentResponse{Content: content})
}
