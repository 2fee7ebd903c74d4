package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Adv-2005/DocuGenAI/internal/http/handler"
	"github.com/Adv-2005/DocuGenAI/internal/http/middleware"
	"github.com/Adv-2005/DocuGenAI/internal/model"
	"github.com/Adv-2005/DocuGenAI/internal/service"
)

var _ = Describe("AuthHandler", func() {
	var (
		router *gin.Engine
		auth   *mockAuthService
	)

	BeforeEach(func() {
		router = newTestRouter()
		auth = &mockAuthService{}
		h := handler.NewAuthHandler(auth, false)
		router.POST("/auth/signup", h.SignUp)
		router.POST("/auth/login", h.Login)
		router.POST("/auth/guest", h.Guest)
		router.GET("/auth/github/url", h.GetAuthURL)
		router.POST("/auth/exchange", h.Exchange)
		router.POST("/auth/logout", h.Logout)
		router.GET("/auth/me", h.Me)
	})

	do := func(req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		var resp map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
		return w, resp
	}

	postJSON := func(path, body string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		return req
	}

	session := func(userID int64) (*model.User, *model.Session, error) {
		return &model.User{ID: userID, Name: "Ada"}, &model.Session{
			ID:        "sess-abc",
			UserID:    userID,
			ExpiresAt: time.Now().Add(time.Hour),
		}, nil
	}

	sessionCookie := func(w *httptest.ResponseRecorder) *http.Cookie {
		for _, c := range w.Result().Cookies() {
			if c.Name == middleware.SessionCookieName {
				return c
			}
		}
		return nil
	}

	It("logs in and sets the session cookie", func() {
		auth.signInFn = func(_ context.Context, email, password string) (*model.User, *model.Session, error) {
			Expect(email).To(Equal("ada@example.com"))
			Expect(password).To(Equal("hunter22"))
			return session(7)
		}

		w, resp := do(postJSON("/auth/login", `{"email":"ada@example.com","password":"hunter22"}`))

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(resp).To(HaveKeyWithValue("session_id", "sess-abc"))
		Expect(resp["user"]).To(HaveKeyWithValue("id", "7"))
		cookie := sessionCookie(w)
		Expect(cookie).NotTo(BeNil())
		Expect(cookie.Value).To(Equal("sess-abc"))
		Expect(cookie.HttpOnly).To(BeTrue())
	})

	DescribeTable("shows the sign-in messages",
		func(path, body string, err error, status int, message string) {
			auth.signInFn = func(context.Context, string, string) (*model.User, *model.Session, error) {
				return nil, nil, err
			}
			auth.signUpFn = func(context.Context, service.SignUpParams) (*model.User, *model.Session, error) {
				return nil, nil, err
			}

			w, resp := do(postJSON(path, body))

			Expect(w.Code).To(Equal(status))
			Expect(resp).To(HaveKeyWithValue("error", message))
		},
		Entry("wrong password", "/auth/login", `{"email":"a@b.c","password":"x"}`,
			service.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password."),
		Entry("email taken", "/auth/signup", `{"email":"a@b.c","password":"longenough"}`,
			service.ErrEmailInUse, http.StatusConflict,
			"This email address is already in use. Please log in or use a different email."),
		Entry("weak password", "/auth/signup", `{"email":"a@b.c","password":"short"}`,
			service.ErrWeakPassword, http.StatusBadRequest, "The password is too weak."),
	)

	It("requires email and password on login", func() {
		w, _ := do(postJSON("/auth/login", `{"email":"a@b.c"}`))

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("signs in a guest", func() {
		auth.signInAsGuestFn = func(context.Context) (*model.User, *model.Session, error) {
			u, s, err := session(9)
			u.IsGuest = true
			return u, s, err
		}

		w, resp := do(postJSON("/auth/guest", ``))

		Expect(w.Code).To(Equal(http.StatusCreated))
		Expect(resp["user"]).To(HaveKeyWithValue("is_guest", true))
		Expect(sessionCookie(w)).NotTo(BeNil())
	})

	It("returns an authorization URL with a fresh state", func() {
		var gotState, gotProvider string
		auth.authorizationURLFn = func(state, provider string) (string, error) {
			gotState, gotProvider = state, provider
			return "https://auth.example.com/authorize?state=" + state, nil
		}

		w, resp := do(httptest.NewRequest(http.MethodGet, "/auth/github/url", nil))

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(gotState).NotTo(BeEmpty())
		Expect(gotProvider).To(Equal("GitHubOAuth"))
		Expect(resp).To(HaveKeyWithValue("state", gotState))
	})

	It("exchanges a code for a session", func() {
		auth.handleCallbackFn = func(_ context.Context, code string) (*model.User, *model.Session, error) {
			if code != "good" {
				return nil, nil, service.ErrInvalidCode
			}
			return session(3)
		}

		w, _ := do(postJSON("/auth/exchange", `{"code":"good"}`))
		Expect(w.Code).To(Equal(http.StatusOK))

		w, _ = do(postJSON("/auth/exchange", `{"code":"bad"}`))
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("logs out the session from the header and clears the cookie", func() {
		var loggedOut string
		auth.logoutFn = func(_ context.Context, id string) error {
			loggedOut = id
			return nil
		}

		req := postJSON("/auth/logout", ``)
		req.Header.Set(middleware.SessionIDHeader, "sess-abc")
		w, _ := do(req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(loggedOut).To(Equal("sess-abc"))
		Expect(sessionCookie(w).MaxAge).To(BeNumerically("<", 0))
	})

	Describe("Me", func() {
		It("returns the user for a session cookie", func() {
			auth.validateSessionFn = func(_ context.Context, id string) (*model.User, *model.Session, error) {
				Expect(id).To(Equal("sess-abc"))
				return session(5)
			}

			req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
			req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "sess-abc"})
			w, resp := do(req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(resp["user"]).To(HaveKeyWithValue("name", "Ada"))
		})

		It("returns 401 without a session", func() {
			w, _ := do(httptest.NewRequest(http.MethodGet, "/auth/me", nil))

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})
	})
})
