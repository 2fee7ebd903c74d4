package dto

import (
	"time"

	"github.com/Adv-2005/DocuGenAI/internal/model"
)

type ConnectRequest struct {
	AccessToken string `json:"accessToken"`
	InstanceURL string `json:"instanceUrl" binding:"omitempty,url"`
}

type ConnectionResponse struct {
	Provider     string    `json:"provider"`
	AccountLogin *string   `json:"accountLogin,omitempty"`
	InstanceURL  *string   `json:"instanceUrl,omitempty"`
	Scopes       []string  `json:"scopes,omitempty"`
	ConnectedAt  time.Time `json:"connectedAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func ToConnectionResponse(c *model.RepositoryConnection) ConnectionResponse {
	return ConnectionResponse{
		Provider:     string(c.Provider),
		AccountLogin: c.AccountLogin,
		InstanceURL:  c.InstanceURL,
		Scopes:       c.Scopes,
		ConnectedAt:  c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
