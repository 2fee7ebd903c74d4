package store_test

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Adv-2005/DocuGenAI/core/db/sqlc"
	"github.com/Adv-2005/DocuGenAI/internal/model"
	"github.com/Adv-2005/DocuGenAI/internal/scm"
	"github.com/Adv-2005/DocuGenAI/internal/store"
)

func strPtr(s string) *string { return &s }

var _ = Describe("RepositoryConnectionStore", func() {
	var (
		ctx    context.Context
		db     *fakeDB
		stores *store.Stores
	)

	BeforeEach(func() {
		ctx = context.Background()
		db = &fakeDB{}
		stores = store.NewStores(sqlc.New(db))
	})

	It("returns ErrNotFound when no connection exists", func() {
		_, err := stores.RepositoryConnections().Get(ctx, 1, scm.ProviderGitHub)
		Expect(err).To(MatchError(store.ErrNotFound))
	})

	It("maps a unique violation on the external account to ErrConflict", func() {
		db.rows = []fakeRow{{err: &pgconn.PgError{Code: "23505", ConstraintName: "repository_connections_account_key"}}}

		err := stores.RepositoryConnections().Upsert(ctx, &model.RepositoryConnection{
			UserID:            2,
			Provider:          scm.ProviderGitHub,
			AccessToken:       "gho_x",
			ExternalAccountID: strPtr("99"),
		})
		Expect(errors.Is(err, store.ErrConflict)).To(BeTrue())
	})

	It("passes nil optional fields so stored values are kept", func() {
		now := pgtype.Timestamptz{Time: time.Now(), Valid: true}
		db.rows = []fakeRow{{values: []any{
			int64(1), "github", "gho_new", nil, strPtr("99"), strPtr("octo"), []string{"repo"}, now, now,
		}}}

		conn := &model.RepositoryConnection{UserID: 1, Provider: scm.ProviderGitHub, AccessToken: "gho_new"}
		Expect(stores.RepositoryConnections().Upsert(ctx, conn)).To(Succeed())

		Expect(db.lastArgs).To(HaveLen(7))
		Expect(db.lastArgs[3]).To(BeNil())
		Expect(db.lastArgs[4]).To(BeNil())
		Expect(db.lastArgs[6]).To(BeNil())

		Expect(*conn.AccountLogin).To(Equal("octo"))
		Expect(conn.Scopes).To(ConsistOf("repo"))
	})

	It("reports deleting a missing connection as not found", func() {
		db.execTag = pgconn.NewCommandTag("DELETE 0")
		err := stores.RepositoryConnections().Delete(ctx, 1, scm.ProviderGitLab)
		Expect(err).To(MatchError(store.ErrNotFound))
	})
})

var _ = Describe("DocumentationDraftStore", func() {
	It("scopes lookups to the owning user", func() {
		db := &fakeDB{}
		drafts := store.NewStores(sqlc.New(db)).DocumentationDrafts()

		_, err := drafts.Get(context.Background(), 7, 42)
		Expect(err).To(MatchError(store.ErrNotFound))
		Expect(db.lastArgs).To(Equal([]any{int64(42), int64(7)}))
	})

	It("converts rows to models", func() {
		now := pgtype.Timestamptz{Time: time.Unix(1700000000, 0), Valid: true}
		db := &fakeDB{rows: []fakeRow{{values: []any{
			int64(42), int64(7), "github", "acme/web", "readme", "README.md", "Readme", "# web", now, now,
		}}}}

		draft := &model.DocumentationDraft{ID: 42, UserID: 7, Provider: scm.ProviderGitHub, RepoFullName: "acme/web",
			Kind: model.DraftKindReadme, Path: "README.md", Title: "Readme", Content: "# web"}
		Expect(store.NewStores(sqlc.New(db)).DocumentationDrafts().Save(context.Background(), draft)).To(Succeed())
		Expect(draft.Kind).To(Equal(model.DraftKindReadme))
		Expect(draft.UpdatedAt.Unix()).To(Equal(int64(1700000000)))
	})
})

var _ = Describe("UserStore", func() {
	It("looks users up by WorkOS id", func() {
		db := &fakeDB{}
		_, err := store.NewStores(sqlc.New(db)).Users().GetByWorkOSID(context.Background(), "user_01")
		Expect(err).To(MatchError(store.ErrNotFound))
		Expect(db.lastArgs).To(HaveLen(1))
		Expect(*(db.lastArgs[0].(*string))).To(Equal("user_01"))
	})
})
