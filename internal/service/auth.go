package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Adv-2005/DocuGenAI/common/id"
	"github.com/Adv-2005/DocuGenAI/internal/model"
	"github.com/Adv-2005/DocuGenAI/internal/store"
)

const (
	guestName         = "Guest"
	defaultSessionTTL = 7 * 24 * time.Hour
	minPasswordLength = 8
)

type SignUpParams struct {
	Name     string
	Email    string
	Password string
}

type AuthService interface {
	SignUp(ctx context.Context, params SignUpParams) (*model.User, *model.Session, error)
	SignIn(ctx context.Context, email, password string) (*model.User, *model.Session, error)
	SignInAsGuest(ctx context.Context) (*model.User, *model.Session, error)
	AuthorizationURL(state, provider string) (string, error)
	HandleCallback(ctx context.Context, code string) (*model.User, *model.Session, error)
	ValidateSession(ctx context.Context, sessionID string) (*model.User, *model.Session, error)
	Logout(ctx context.Context, sessionID string) error
}

type authService struct {
	identity     IdentityProvider
	userStore    store.UserStore
	sessionStore store.SessionStore
	sessionTTL   time.Duration
}

func NewAuthService(
	identity IdentityProvider,
	userStore store.UserStore,
	sessionStore store.SessionStore,
	sessionTTL time.Duration,
) AuthService {
	if sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
	}
	return &authService{
		identity:     identity,
		userStore:    userStore,
		sessionStore: sessionStore,
		sessionTTL:   sessionTTL,
	}
}

func (s *authService) SignUp(ctx context.Context, params SignUpParams) (*model.User, *model.Session, error) {
	email := strings.TrimSpace(params.Email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, nil, &InvalidInputError{Field: "email", Reason: "must be a valid email address"}
	}
	if len(params.Password) < minPasswordLength {
		return nil, nil, ErrWeakPassword
	}

	first, last := splitName(params.Name)
	ident, err := s.identity.CreateUser(ctx, email, params.Password, first, last)
	if err != nil {
		return nil, nil, err
	}

	return s.establish(ctx, ident)
}

func (s *authService) SignIn(ctx context.Context, email, password string) (*model.User, *model.Session, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, nil, ErrInvalidCredentials
	}

	ident, err := s.identity.AuthenticateWithPassword(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return nil, nil, err
	}

	return s.establish(ctx, ident)
}

func (s *authService) SignInAsGuest(ctx context.Context) (*model.User, *model.Session, error) {
	user := &model.User{
		ID:      id.New(),
		Name:    guestName,
		IsGuest: true,
	}
	if err := s.userStore.Create(ctx, user); err != nil {
		return nil, nil, fmt.Errorf("creating guest user: %w", err)
	}

	session, err := s.newSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	slog.InfoContext(ctx, "guest signed in", "user_id", user.ID)
	return user, session, nil
}

func (s *authService) AuthorizationURL(state, provider string) (string, error) {
	return s.identity.AuthorizationURL(state, provider)
}

func (s *authService) HandleCallback(ctx context.Context, code string) (*model.User, *model.Session, error) {
	if code == "" {
		return nil, nil, ErrInvalidCode
	}

	ident, err := s.identity.AuthenticateWithCode(ctx, code)
	if err != nil {
		if !errors.Is(err, ErrInvalidCode) {
			slog.ErrorContext(ctx, "failed to authenticate with code", "error", err)
		}
		return nil, nil, err
	}

	return s.establish(ctx, ident)
}

func (s *authService) ValidateSession(ctx context.Context, sessionID string) (*model.User, *model.Session, error) {
	if sessionID == "" {
		return nil, nil, ErrSessionExpired
	}

	session, err := s.sessionStore.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrSessionExpired
		}
		return nil, nil, fmt.Errorf("getting session: %w", err)
	}

	user, err := s.userStore.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, fmt.Errorf("getting user: %w", err)
	}

	return user, session, nil
}

func (s *authService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessionStore.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// establish upserts the local user for ident and opens a session.
func (s *authService) establish(ctx context.Context, ident Identity) (*model.User, *model.Session, error) {
	user := &model.User{
		ID:           id.New(),
		WorkOSUserID: &ident.ID,
		Name:         ident.DisplayName(),
	}
	if ident.Email != "" {
		user.Email = &ident.Email
	}
	if ident.AvatarURL != "" {
		user.AvatarURL = &ident.AvatarURL
	}

	if err := s.userStore.UpsertByWorkOSID(ctx, user); err != nil {
		slog.ErrorContext(ctx, "failed to upsert user", "error", err, "workos_id", ident.ID)
		return nil, nil, fmt.Errorf("upserting user: %w", err)
	}

	session, err := s.newSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	slog.InfoContext(ctx, "user authenticated", "user_id", user.ID)
	return user, session, nil
}

func (s *authService) newSession(ctx context.Context, user *model.User) (*model.Session, error) {
	sessionID, err := newSessionID()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &model.Session{
		ID:        sessionID,
		UserID:    user.ID,
		IsGuest:   user.IsGuest,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.sessionStore.Create(ctx, session); err != nil {
		slog.ErrorContext(ctx, "failed to create session", "error", err, "user_id", user.ID)
		return nil, fmt.Errorf("creating session: %w", err)
	}
	return session, nil
}

func newSessionID() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating session id: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func splitName(name string) (first, last string) {
	name = strings.TrimSpace(name)
	first, last, _ = strings.Cut(name, " ")
	return first, strings.TrimSpace(last)
}
