package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Adv-2005/DocuGenAI/common/logger"
	"github.com/Adv-2005/DocuGenAI/internal/http/middleware"
	"github.com/Adv-2005/DocuGenAI/internal/model"
	"github.com/Adv-2005/DocuGenAI/internal/service"
)

type stubAuth struct {
	service.AuthService
	validate func(ctx context.Context, sessionID string) (*model.User, *model.Session, error)
}

func (s *stubAuth) ValidateSession(ctx context.Context, sessionID string) (*model.User, *model.Session, error) {
	return s.validate(ctx, sessionID)
}

var _ = Describe("RequireAuth", func() {
	var (
		router   *gin.Engine
		auth     *stubAuth
		gotUser  *model.User
		gotField *int64
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		gotUser, gotField = nil, nil
		auth = &stubAuth{validate: func(_ context.Context, id string) (*model.User, *model.Session, error) {
			switch id {
			case "live":
				return &model.User{ID: 11}, &model.Session{ID: id, UserID: 11}, nil
			case "broken":
				return nil, nil, errors.New("redis down")
			default:
				return nil, nil, service.ErrSessionExpired
			}
		}}

		router = gin.New()
		router.GET("/me", middleware.RequireAuth(auth), func(c *gin.Context) {
			gotUser, _ = middleware.CurrentUser(c)
			gotField = logger.GetLogFields(c.Request.Context()).UserID
			c.Status(http.StatusOK)
		})
	})

	serve := func(req *http.Request) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("accepts the session header", func() {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set(middleware.SessionIDHeader, "live")

		Expect(serve(req).Code).To(Equal(http.StatusOK))
		Expect(gotUser.ID).To(Equal(int64(11)))
		Expect(gotField).NotTo(BeNil())
		Expect(*gotField).To(Equal(int64(11)))
	})

	It("accepts the session cookie", func() {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "live"})

		Expect(serve(req).Code).To(Equal(http.StatusOK))
	})

	It("prefers the header over the cookie", func() {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set(middleware.SessionIDHeader, "stale")
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "live"})

		Expect(serve(req).Code).To(Equal(http.StatusUnauthorized))
	})

	It("rejects missing and expired sessions", func() {
		Expect(serve(httptest.NewRequest(http.MethodGet, "/me", nil)).Code).To(Equal(http.StatusUnauthorized))

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set(middleware.SessionIDHeader, "gone")
		Expect(serve(req).Code).To(Equal(http.StatusUnauthorized))
		Expect(gotUser).To(BeNil())
	})

	It("returns 500 when the session store fails", func() {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set(middleware.SessionIDHeader, "broken")

		Expect(serve(req).Code).To(Equal(http.StatusInternalServerError))
	})
})

var _ = Describe("UserRateLimiter", func() {
	var router *gin.Engine

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		limiter := middleware.NewUserRateLimiter(0.001, 2)
		auth := &stubAuth{validate: func(_ context.Context, id string) (*model.User, *model.Session, error) {
			uid, err := strconv.ParseInt(id, 10, 64)
			if err != nil {
				return nil, nil, service.ErrSessionExpired
			}
			return &model.User{ID: uid}, &model.Session{ID: id, UserID: uid}, nil
		}}

		router = gin.New()
		router.POST("/flows/:name", middleware.RequireAuth(auth), limiter.Middleware(), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
	})

	call := func(session string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/flows/module-readme", nil)
		req.Header.Set(middleware.SessionIDHeader, session)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("allows the burst then returns 429 with Retry-After", func() {
		Expect(call("1").Code).To(Equal(http.StatusOK))
		Expect(call("1").Code).To(Equal(http.StatusOK))

		w := call("1")
		Expect(w.Code).To(Equal(http.StatusTooManyRequests))
		Expect(w.Header().Get("Retry-After")).NotTo(BeEmpty())
	})

	It("keeps a separate bucket per user", func() {
		call("1")
		call("1")
		Expect(call("1").Code).To(Equal(http.StatusTooManyRequests))

		Expect(call("2").Code).To(Equal(http.StatusOK))
	})
})

var _ = Describe("Recovery", func() {
	It("turns a panic into a 500", func() {
		gin.SetMode(gin.TestMode)
		router := gin.New()
		router.Use(middleware.Recovery(), middleware.Logger())
		router.GET("/boom", func(*gin.Context) { panic("kaboom") })

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

		Expect(w.Code).To(Equal(http.StatusInternalServerError))
		Expect(w.Body.String()).To(ContainSubstring("internal server error"))
	})
})
