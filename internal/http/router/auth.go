package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Adv-2005/DocuGenAI/internal/http/handler"
)

func AuthRouter(rg *gin.RouterGroup, h *handler.AuthHandler) {
	rg.POST("/signup", h.SignUp)
	rg.POST("/login", h.Login)
	rg.POST("/guest", h.Guest)
	rg.GET("/github/url", h.GetAuthURL)
	rg.POST("/exchange", h.Exchange)
	rg.POST("/logout", h.Logout)
	rg.GET("/me", h.Me)
}
