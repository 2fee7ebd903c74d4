package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/Adv-2005/DocuGenAI/internal/http/dto"
	"github.com/Adv-2005/DocuGenAI/internal/scm"
	"github.com/Adv-2005/DocuGenAI/internal/service"
)

const (
	stateCookieName = "docugen_oauth_state"
	stateCookieAge  = 600
)

type ConnectionHandler struct {
	connections  service.ConnectionService
	dashboardURL string
	isProduction bool
}

func NewConnectionHandler(connections service.ConnectionService, dashboardURL string, isProduction bool) *ConnectionHandler {
	return &ConnectionHandler{
		connections:  connections,
		dashboardURL: dashboardURL,
		isProduction: isProduction,
	}
}

func (h *ConnectionHandler) List(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	conns, err := h.connections.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.ConnectionResponse, 0, len(conns))
	for i := range conns {
		resp = append(resp, dto.ToConnectionResponse(&conns[i]))
	}
	c.JSON(http.StatusOK, gin.H{"connections": resp})
}

func (h *ConnectionHandler) Get(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	provider, ok := parseProvider(c, c.Param("provider"))
	if !ok {
		return
	}

	conn, err := h.connections.Get(c.Request.Context(), userID, provider)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToConnectionResponse(conn))
}

// Connect links an account with a personal access token.
func (h *ConnectionHandler) Connect(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	provider, ok := parseProvider(c, c.Param("provider"))
	if !ok {
		return
	}

	var req dto.ConnectRequest
	if !bindJSON(c, &req) {
		return
	}

	conn, err := h.connections.ConnectWithToken(c.Request.Context(), userID, provider, req.AccessToken, req.InstanceURL)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToConnectionResponse(conn))
}

func (h *ConnectionHandler) Disconnect(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	provider, ok := parseProvider(c, c.Param("provider"))
	if !ok {
		return
	}

	if err := h.connections.Disconnect(c.Request.Context(), userID, provider); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GitHubAuthorize starts the OAuth web flow. The state is kept in a
// short-lived cookie and compared on callback.
func (h *ConnectionHandler) GitHubAuthorize(c *gin.Context) {
	ctx := c.Request.Context()

	state, err := generateState()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate state", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate state"})
		return
	}

	authURL, err := h.connections.AuthorizeURL(state)
	if err != nil {
		respondError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookieName, state, stateCookieAge, "/", "", h.isProduction, true)
	c.JSON(http.StatusOK, dto.AuthURLResponse{AuthorizationURL: authURL, State: state})
}

// GitHubCallback finishes the OAuth web flow and sends the browser back to
// the dashboard with the outcome in the query string.
func (h *ConnectionHandler) GitHubCallback(c *gin.Context) {
	ctx := c.Request.Context()

	if errParam := c.Query("error"); errParam != "" {
		slog.WarnContext(ctx, "github oauth error", "error", errParam, "description", c.Query("error_description"))
		h.redirect(c, "connect_error", errParam)
		return
	}

	storedState, err := c.Cookie(stateCookieName)
	if err != nil || storedState == "" || c.Query("state") != storedState {
		slog.WarnContext(ctx, "github oauth state mismatch")
		h.redirect(c, "connect_error", "invalid_state")
		return
	}
	c.SetCookie(stateCookieName, "", -1, "/", "", h.isProduction, true)

	userID, ok := requireUser(c)
	if !ok {
		return
	}

	if _, err := h.connections.CompleteGitHubOAuth(ctx, userID, c.Query("code")); err != nil {
		switch {
		case errors.Is(err, service.ErrCredentialInUse):
			h.redirect(c, "connect_error", "credential_in_use")
		case errors.Is(err, service.ErrInvalidCode):
			h.redirect(c, "connect_error", "invalid_code")
		default:
			slog.ErrorContext(ctx, "failed to complete github oauth", "error", err)
			h.redirect(c, "connect_error", "callback_failed")
		}
		return
	}

	h.redirect(c, "connected", string(scm.ProviderGitHub))
}

func (h *ConnectionHandler) Repositories(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	provider, ok := parseProvider(c, c.Query("provider"))
	if !ok {
		return
	}

	repos, err := h.connections.ListRepositories(c.Request.Context(), userID, provider)
	if err != nil {
		respondError(c, err)
		return
	}
	if repos == nil {
		repos = []scm.Repository{}
	}

	c.JSON(http.StatusOK, gin.H{"repositories": repos})
}

func (h *ConnectionHandler) redirect(c *gin.Context, key, value string) {
	q := url.Values{}
	q.Set(key, value)
	c.Redirect(http.StatusTemporaryRedirect, h.dashboardURL+"/repositories?"+q.Encode())
}
