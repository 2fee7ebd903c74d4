package handler

import (
	"crypto/rand"
	"encoding/base64"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Adv-2005/DocuGenAI/internal/http/dto"
	"github.com/Adv-2005/DocuGenAI/internal/http/middleware"
	"github.com/Adv-2005/DocuGenAI/internal/model"
	"github.com/Adv-2005/DocuGenAI/internal/service"
)

const defaultSignInProvider = "GitHubOAuth"

type AuthHandler struct {
	authService  service.AuthService
	isProduction bool
}

func NewAuthHandler(authService service.AuthService, isProduction bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		isProduction: isProduction,
	}
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	var req dto.SignUpRequest
	if !bindJSON(c, &req) {
		return
	}

	user, session, err := h.authService.SignUp(c.Request.Context(), service.SignUpParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.startSession(c, http.StatusCreated, user, session)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, session, err := h.authService.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	h.startSession(c, http.StatusOK, user, session)
}

func (h *AuthHandler) Guest(c *gin.Context) {
	user, session, err := h.authService.SignInAsGuest(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	h.startSession(c, http.StatusCreated, user, session)
}

// GetAuthURL returns the hosted sign-in URL for a social provider. The
// caller keeps state and checks it when the code comes back.
func (h *AuthHandler) GetAuthURL(c *gin.Context) {
	ctx := c.Request.Context()

	state, err := generateState()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate state", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate state"})
		return
	}

	provider := c.DefaultQuery("provider", defaultSignInProvider)
	authURL, err := h.authService.AuthorizationURL(state, provider)
	if err != nil {
		slog.ErrorContext(ctx, "failed to get authorization URL", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get authorization URL"})
		return
	}

	c.JSON(http.StatusOK, dto.AuthURLResponse{
		AuthorizationURL: authURL,
		State:            state,
	})
}

func (h *AuthHandler) Exchange(c *gin.Context) {
	var req dto.ExchangeRequest
	if !bindJSON(c, &req) {
		return
	}

	user, session, err := h.authService.HandleCallback(c.Request.Context(), req.Code)
	if err != nil {
		respondError(c, err)
		return
	}

	h.startSession(c, http.StatusOK, user, session)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := c.Request.Context()

	if sessionID := middleware.SessionID(c); sessionID != "" {
		if err := h.authService.Logout(ctx, sessionID); err != nil {
			slog.WarnContext(ctx, "failed to delete session", "error", err)
		}
	}

	h.clearSessionCookie(c)

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, session, err := h.authService.ValidateSession(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		h.clearSessionCookie(c)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSessionResponse(user, session))
}

func (h *AuthHandler) startSession(c *gin.Context, status int, user *model.User, session *model.Session) {
	maxAge := int(time.Until(session.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, session.ID, maxAge, "/", "", h.isProduction, true)

	c.JSON(status, dto.ToSessionResponse(user, session))
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", h.isProduction, true)
}

func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
