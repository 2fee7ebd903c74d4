package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Adv-2005/DocuGenAI/common/llm"
	"github.com/Adv-2005/DocuGenAI/internal/schema"
	"github.com/Adv-2005/DocuGenAI/internal/scm"
	"github.com/Adv-2005/DocuGenAI/internal/service"
)

const (
	msgReadmeNotFound     = "README not found for this repository."
	msgInvalidCredentials = "Invalid email or password."
	msgEmailInUse         = "This email address is already in use. Please log in or use a different email."
	msgWeakPassword       = "The password is too weak."
	msgCredentialInUse    = "This account is already linked with a different user."
	msgUnexpected         = "An unexpected error occurred. Please try again."
)

// respondError writes the JSON error for err. Anything not recognised is
// logged and reported as a 500 with a generic message.
func respondError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var (
		validationErr  *schema.ValidationError
		missingErr     *service.MissingCredentialError
		invalidErr     *service.InvalidInputError
		upstreamErr    *scm.UpstreamHTTPError
		unavailableErr *scm.UnavailableError
		invocationErr  *llm.InvocationError
		outputErr      *llm.OutputError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      validationErr.Error(),
			"field":      validationErr.Field,
			"constraint": string(validationErr.Constraint),
		})
	case errors.As(err, &missingErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": missingErr.Error()})
	case errors.As(err, &invalidErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidErr.Error(), "field": invalidErr.Field})
	case errors.Is(err, scm.ErrInvalidRepoName):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, scm.ErrReadmeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": msgReadmeNotFound})
	case errors.As(err, &upstreamErr):
		status := upstreamErr.StatusCode
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		slog.WarnContext(ctx, "upstream host error", "provider", upstreamErr.Provider, "status", upstreamErr.StatusCode)
		c.JSON(status, gin.H{"error": upstreamErr.Error(), "details": upstreamErr.Body})
	case errors.As(err, &unavailableErr):
		slog.ErrorContext(ctx, "upstream host unavailable", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to reach " + unavailableErr.Provider.DisplayName() + "."})

	case errors.As(err, &invocationErr):
		status := http.StatusBadGateway
		if invocationErr.Temporary() {
			status = http.StatusServiceUnavailable
		}
		slog.ErrorContext(ctx, "model invocation failed", "error", err, "temporary", invocationErr.Temporary())
		c.JSON(status, gin.H{"error": "The model could not be reached. Please try again."})
	case errors.As(err, &outputErr):
		slog.ErrorContext(ctx, "model output rejected", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "The model returned an unexpected response."})

	case errors.Is(err, service.ErrCredentialInUse):
		c.JSON(http.StatusConflict, gin.H{"error": msgCredentialInUse})
	case errors.Is(err, service.ErrEmailInUse):
		c.JSON(http.StatusConflict, gin.H{"error": msgEmailInUse})
	case errors.Is(err, service.ErrWeakPassword):
		c.JSON(http.StatusBadRequest, gin.H{"error": msgWeakPassword})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": msgInvalidCredentials})
	case errors.Is(err, service.ErrInvalidCode):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or expired authorization code"})
	case errors.Is(err, service.ErrSessionExpired), errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "session expired"})

	case errors.Is(err, service.ErrFlowNotFound),
		errors.Is(err, service.ErrDraftNotFound),
		errors.Is(err, service.ErrConnectionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrPullRequestsUnsupported):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrGitHubOAuthDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})

	case errors.Is(err, context.DeadlineExceeded):
		slog.ErrorContext(ctx, "request timed out", "error", err)
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "request timed out"})
	default:
		slog.ErrorContext(ctx, "unhandled error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgUnexpected})
	}
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		slog.WarnContext(c.Request.Context(), "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}
