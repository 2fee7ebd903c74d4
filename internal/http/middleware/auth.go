package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Adv-2005/DocuGenAI/common/logger"
	"github.com/Adv-2005/DocuGenAI/internal/model"
	"github.com/Adv-2005/DocuGenAI/internal/service"
)

const (
	SessionCookieName = "docugen_session"
	SessionIDHeader   = "X-Session-ID"

	userContextKey    = "docugen.user"
	sessionContextKey = "docugen.session"
)

// SessionID reads the session from the header first, then the cookie.
func SessionID(c *gin.Context) string {
	if id := c.GetHeader(SessionIDHeader); id != "" {
		return id
	}
	id, err := c.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return id
}

// RequireAuth rejects requests without a live session. On success the user
// and session are stored on the gin context and the user id is added to the
// request's log fields.
func RequireAuth(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		sessionID := SessionID(c)
		if sessionID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		user, session, err := auth.ValidateSession(ctx, sessionID)
		if err != nil {
			if errors.Is(err, service.ErrSessionExpired) || errors.Is(err, service.ErrUserNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
				return
			}
			slog.ErrorContext(ctx, "failed to validate session", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to validate session"})
			return
		}

		c.Set(userContextKey, user)
		c.Set(sessionContextKey, session)
		c.Request = c.Request.WithContext(logger.WithLogFields(ctx, logger.LogFields{UserID: &user.ID}))

		c.Next()
	}
}

func CurrentUser(c *gin.Context) (*model.User, bool) {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*model.User)
	return user, ok && user != nil
}

func CurrentSession(c *gin.Context) (*model.Session, bool) {
	v, ok := c.Get(sessionContextKey)
	if !ok {
		return nil, false
	}
	session, ok := v.(*model.Session)
	return session, ok && session != nil
}
