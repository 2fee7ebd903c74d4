package store_test

import (
	"context"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/redis/go-redis/v9"

	"github.com/Adv-2005/DocuGenAI/internal/model"
	"github.com/Adv-2005/DocuGenAI/internal/store"
)

// Runs against a real Redis when DOCUGEN_TEST_REDIS_URL is set.
var _ = Describe("RedisSessionStore", Ordered, func() {
	var (
		ctx      context.Context
		client   *redis.Client
		sessions store.SessionStore
	)

	BeforeAll(func() {
		url := os.Getenv("DOCUGEN_TEST_REDIS_URL")
		if url == "" {
			Skip("DOCUGEN_TEST_REDIS_URL not set")
		}
		opts, err := redis.ParseURL(url)
		Expect(err).NotTo(HaveOccurred())
		client = redis.NewClient(opts)
		DeferCleanup(client.Close)

		ctx = context.Background()
		sessions = store.NewRedisSessionStore(client)
	})

	It("stores sessions with a TTL and deletes them", func() {
		s := &model.Session{
			ID:        "test-session-1",
			UserID:    42,
			CreatedAt: time.Now(),
			ExpiresAt: time.Now().Add(time.Hour),
		}
		Expect(sessions.Create(ctx, s)).To(Succeed())
		DeferCleanup(func() { _ = sessions.Delete(ctx, s.ID) })

		got, err := sessions.Get(ctx, s.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(got.UserID).To(Equal(int64(42)))

		ttl, err := client.TTL(ctx, "docugen:session:"+s.ID).Result()
		Expect(err).NotTo(HaveOccurred())
		Expect(ttl).To(BeNumerically("~", time.Hour, time.Minute))

		Expect(sessions.Create(ctx, s)).To(MatchError(store.ErrConflict))

		Expect(sessions.Delete(ctx, s.ID)).To(Succeed())
		_, err = sessions.Get(ctx, s.ID)
		Expect(err).To(MatchError(store.ErrNotFound))
	})

	It("refuses already expired sessions", func() {
		err := sessions.Create(ctx, &model.Session{ID: "expired", ExpiresAt: time.Now().Add(-time.Second)})
		Expect(err).To(HaveOccurred())
	})
})
