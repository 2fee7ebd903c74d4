package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Adv-2005/DocuGenAI/internal/http/handler"
)

func ConnectionRouter(rg *gin.RouterGroup, h *handler.ConnectionHandler) {
	rg.GET("", h.List)
	rg.GET("/github/authorize", h.GitHubAuthorize)
	rg.GET("/github/callback", h.GitHubCallback)
	rg.GET("/:provider", h.Get)
	rg.PUT("/:provider", h.Connect)
	rg.DELETE("/:provider", h.Disconnect)
}

func RepositoryRouter(rg *gin.RouterGroup, conn *handler.ConnectionHandler, docs *handler.DocumentationHandler) {
	rg.GET("", conn.Repositories)
	rg.POST("/readme", docs.RepositoryReadme)
}
