package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Adv-2005/DocuGenAI/internal/http/handler"
	"github.com/Adv-2005/DocuGenAI/internal/http/middleware"
	"github.com/Adv-2005/DocuGenAI/internal/service"
)

type RouterConfig struct {
	DashboardURL   string
	IsProduction   bool
	FlowRateLimit  float64 // requests per second per user
	FlowRateBurst  int
	HealthCheckers []HealthChecker
}

func SetupRoutes(router *gin.Engine, services *service.Services, cfg RouterConfig) {
	router.GET("/health", healthHandler(cfg.HealthCheckers))

	authHandler := handler.NewAuthHandler(services.Auth(), cfg.IsProduction)
	AuthRouter(router.Group("/auth"), authHandler)

	docsHandler := handler.NewDocumentationHandler(services.Documentation())
	router.POST("/api/generate-docs", docsHandler.GenerateDocs)

	v1 := router.Group("/api/v1", middleware.RequireAuth(services.Auth()))
	{
		connHandler := handler.NewConnectionHandler(services.Connections(), cfg.DashboardURL, cfg.IsProduction)
		ConnectionRouter(v1.Group("/connections"), connHandler)
		RepositoryRouter(v1.Group("/repositories"), connHandler, docsHandler)

		limiter := middleware.NewUserRateLimiter(cfg.FlowRateLimit, cfg.FlowRateBurst)
		FlowRouter(v1.Group("/flows", limiter.Middleware()), handler.NewFlowHandler(services.Documentation()))

		DraftRouter(v1.Group("/drafts"), handler.NewDraftHandler(services.Documentation()))

		prHandler := handler.NewPullRequestHandler(services.Documentation())
		v1.POST("/pull-requests", prHandler.Create)
	}
}

func healthHandler(checkers []HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, check := range checkers {
			if err := check.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
