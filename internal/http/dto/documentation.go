package dto

import (
	"time"

	"github.com/Adv-2005/DocuGenAI/common/id"
	"github.com/Adv-2005/DocuGenAI/internal/model"
	"github.com/Adv-2005/DocuGenAI/internal/service"
)

// GenerateDocsRequest is the README proxy body. Fields are checked by the
// service so that a missing one yields the proxy's own error message.
type GenerateDocsRequest struct {
	RepoFullName string `json:"repoFullName"`
	AccessToken  string `json:"accessToken"`
}

type DocumentResponse struct {
	Content string `json:"content"`
}

type RepositoryReadmeRequest struct {
	Provider     string `json:"provider"`
	RepoFullName string `json:"repoFullName"`
}

type ModuleReadmeBatchRequest struct {
	RepoName string                 `json:"repoName" binding:"required"`
	Modules  []service.ModuleSource `json:"modules" binding:"required,min=1,max=50,dive"`
}

type ModuleReadmeBatchResponse struct {
	RepoName string                 `json:"repoName"`
	Readmes  []service.ModuleReadme `json:"readmes"`
}

type FlowResponse struct {
	Flow   string         `json:"flow"`
	Output map[string]any `json:"output"`
	Usage  FlowUsage      `json:"usage"`
}

type FlowUsage struct {
	PromptTokens     int `json:"promptTokens"`
	CompletionTokens int `json:"completionTokens"`
}

type FlowSummary struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	InputFields  []string `json:"inputFields"`
	OutputFields []string `json:"outputFields"`
}

type RenderResponse struct {
	Flow   string `json:"flow"`
	Prompt string `json:"prompt"`
}

type SaveDraftRequest struct {
	Provider     string `json:"provider"`
	RepoFullName string `json:"repoFullName" binding:"required"`
	Kind         string `json:"kind"`
	Path         string `json:"path" binding:"max=1024"`
	Title        string `json:"title" binding:"max=255"`
	Content      string `json:"content"`
}

type DraftResponse struct {
	ID           string    `json:"id"`
	Provider     string    `json:"provider"`
	RepoFullName string    `json:"repoFullName"`
	Kind         string    `json:"kind"`
	Path         string    `json:"path"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func ToDraftResponse(d *model.DocumentationDraft) DraftResponse {
	return DraftResponse{
		ID:           id.String(d.ID),
		Provider:     string(d.Provider),
		RepoFullName: d.RepoFullName,
		Kind:         string(d.Kind),
		Path:         d.Path,
		Title:        d.Title,
		Content:      d.Content,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type CreatePullRequestRequest struct {
	RepoFullName  string  `json:"repoFullName"`
	Path          string  `json:"path"`
	Content       string  `json:"content"`
	Title         string  `json:"title" binding:"max=255"`
	Body          string  `json:"body"`
	CommitMessage string  `json:"commitMessage"`
	DraftID       *string `json:"draftId,omitempty"`
}
