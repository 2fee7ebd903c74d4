package dto

import (
	"time"

	"github.com/Adv-2005/DocuGenAI/common/id"
	"github.com/Adv-2005/DocuGenAI/internal/model"
)

type UserResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     *string `json:"email,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	IsGuest   bool    `json:"is_guest"`
}

func ToUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:        id.String(u.ID),
		Name:      u.Name,
		Email:     u.Email,
		AvatarURL: u.AvatarURL,
		IsGuest:   u.IsGuest,
	}
}

type SessionResponse struct {
	User      UserResponse `json:"user"`
	SessionID string       `json:"session_id"`
	ExpiresAt time.Time    `json:"expires_at"`
}

func ToSessionResponse(u *model.User, s *model.Session) SessionResponse {
	return SessionResponse{
		User:      ToUserResponse(u),
		SessionID: s.ID,
		ExpiresAt: s.ExpiresAt,
	}
}
