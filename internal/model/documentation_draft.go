package model

import (
	"time"

	"github.com/Adv-2005/DocuGenAI/internal/scm"
)

type DraftKind string

const (
	DraftKindReadme       DraftKind = "readme"
	DraftKindArchitecture DraftKind = "architecture"
	DraftKindModule       DraftKind = "module"
	DraftKindPRDelta      DraftKind = "pr_delta"
)

func (k DraftKind) Valid() bool {
	switch k {
	case DraftKindReadme, DraftKindArchitecture, DraftKindModule, DraftKindPRDelta:
		return true
	}
	return false
}

// DocumentationDraft is edited text saved before it is proposed to the
// repository. A draft is unique per (user, provider, repo, path).
type DocumentationDraft struct {
	ID           int64        `json:"id,string"`
	UserID       int64        `json:"user_id,string"`
	Provider     scm.Provider `json:"provider"`
	RepoFullName string       `json:"repo_full_name"`
	Kind         DraftKind    `json:"kind"`
	Path         string       `json:"path"`
	Title        string       `json:"title"`
	Content      string       `json:"content"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
