package store

import (
	"github.com/Adv-2005/DocuGenAI/core/db/sqlc"
)

type Stores struct {
	queries *sqlc.Queries
}

func NewStores(queries *sqlc.Queries) *Stores {
	return &Stores{queries: queries}
}

func (s *Stores) Users() UserStore {
	return newUserStore(s.queries)
}

func (s *Stores) RepositoryConnections() RepositoryConnectionStore {
	return newRepositoryConnectionStore(s.queries)
}

func (s *Stores) DocumentationDrafts() DocumentationDraftStore {
	return newDocumentationDraftStore(s.queries)
}
