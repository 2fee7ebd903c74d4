package store

import (
	"context"

	"github.com/Adv-2005/DocuGenAI/core/db/sqlc"
	"github.com/Adv-2005/DocuGenAI/internal/model"
	"github.com/Adv-2005/DocuGenAI/internal/scm"
)

const defaultDraftLimit = 50

type documentationDraftStore struct {
	queries *sqlc.Queries
}

func newDocumentationDraftStore(queries *sqlc.Queries) DocumentationDraftStore {
	return &documentationDraftStore{queries: queries}
}

func (s *documentationDraftStore) Get(ctx context.Context, userID, id int64) (*model.DocumentationDraft, error) {
	row, err := s.queries.GetDocumentationDraft(ctx, sqlc.GetDocumentationDraftParams{
		ID:     id,
		UserID: userID,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return toDraftModel(row), nil
}

func (s *documentationDraftStore) ListByUser(ctx context.Context, userID int64, limit int32) ([]model.DocumentationDraft, error) {
	if limit <= 0 {
		limit = defaultDraftLimit
	}
	rows, err := s.queries.ListDocumentationDraftsByUser(ctx, sqlc.ListDocumentationDraftsByUserParams{
		UserID: userID,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}
	drafts := make([]model.DocumentationDraft, len(rows))
	for i, row := range rows {
		drafts[i] = *toDraftModel(row)
	}
	return drafts, nil
}

func (s *documentationDraftStore) Save(ctx context.Context, draft *model.DocumentationDraft) error {
	row, err := s.queries.UpsertDocumentationDraft(ctx, sqlc.UpsertDocumentationDraftParams{
		ID:           draft.ID,
		UserID:       draft.UserID,
		Provider:     string(draft.Provider),
		RepoFullName: draft.RepoFullName,
		Kind:         string(draft.Kind),
		Path:         draft.Path,
		Title:        draft.Title,
		Content:      draft.Content,
	})
	if err != nil {
		return mapError(err)
	}
	*draft = *toDraftModel(row)
	return nil
}

func (s *documentationDraftStore) Delete(ctx context.Context, userID, id int64) error {
	n, err := s.queries.DeleteDocumentationDraft(ctx, sqlc.DeleteDocumentationDraftParams{
		ID:     id,
		UserID: userID,
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func toDraftModel(row sqlc.DocumentationDraft) *model.DocumentationDraft {
	return &model.DocumentationDraft{
		ID:           row.ID,
		UserID:       row.UserID,
		Provider:     scm.Provider(row.Provider),
		RepoFullName: row.RepoFullName,
		Kind:         model.DraftKind(row.Kind),
		Path:         row.Path,
		Title:        row.Title,
		Content:      row.Content,
		CreatedAt:    row.CreatedAt.Time,
		UpdatedAt:    row.UpdatedAt.Time,
	}
}
