package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Adv-2005/DocuGenAI/internal/http/handler"
)

func FlowRouter(rg *gin.RouterGroup, h *handler.FlowHandler) {
	rg.GET("", h.List)
	rg.POST("/module-readme/batch", h.ModuleReadmeBatch)
	rg.POST("/:name", h.Run)
	rg.POST("/:name/render", h.Render)
}

func DraftRouter(rg *gin.RouterGroup, h *handler.DraftHandler) {
	rg.GET("", h.List)
	rg.PUT("", h.Save)
	rg.GET("/:id", h.Get)
}
