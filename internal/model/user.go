package model

import "time"

type User struct {
	ID           int64     `json:"id"`
	WorkOSUserID *string   `json:"-"`
	Name         string    `json:"name"`
	Email        *string   `json:"email,omitempty"`
	AvatarURL    *string   `json:"avatar_url,omitempty"`
	IsGuest      bool      `json:"is_guest"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
