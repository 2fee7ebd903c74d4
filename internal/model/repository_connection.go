package model

import (
	"time"

	"github.com/Adv-2005/DocuGenAI/internal/scm"
)

// RepositoryConnection links a user to one source-control account. There is
// at most one per (user, provider) and an external account belongs to one user.
type RepositoryConnection struct {
	UserID            int64        `json:"user_id"`
	Provider          scm.Provider `json:"provider"`
	AccessToken       string       `json:"-"`
	InstanceURL       *string      `json:"instance_url,omitempty"`
	ExternalAccountID *string      `json:"external_account_id,omitempty"`
	AccountLogin      *string      `json:"account_login,omitempty"`
	Scopes            []string     `json:"scopes,omitempty"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}
