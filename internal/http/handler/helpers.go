package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Adv-2005/DocuGenAI/common/id"
	"github.com/Adv-2005/DocuGenAI/internal/http/middleware"
	"github.com/Adv-2005/DocuGenAI/internal/scm"
	"github.com/Adv-2005/DocuGenAI/internal/service"
)

// requireUser returns the user id set by middleware.RequireAuth.
func requireUser(c *gin.Context) (int64, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, service.ErrSessionExpired)
		return 0, false
	}
	return user.ID, true
}

// parseProvider reads a provider name, defaulting to GitHub when empty.
func parseProvider(c *gin.Context, raw string) (scm.Provider, bool) {
	if raw == "" {
		return scm.ProviderGitHub, true
	}
	p, err := scm.ParseProvider(raw)
	if err != nil {
		respondError(c, &service.InvalidInputError{Field: "provider", Reason: "must be github or gitlab"})
		return "", false
	}
	return p, true
}

func parseID(c *gin.Context, field, raw string) (int64, bool) {
	v, err := id.Parse(raw)
	if err != nil {
		respondError(c, &service.InvalidInputError{Field: field, Reason: "must be a numeric id"})
		return 0, false
	}
	return v, true
}
