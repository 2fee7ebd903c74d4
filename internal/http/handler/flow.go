package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Adv-2005/DocuGenAI/internal/http/dto"
	"github.com/Adv-2005/DocuGenAI/internal/service"
)

type FlowHandler struct {
	docs service.DocumentationService
}

func NewFlowHandler(docs service.DocumentationService) *FlowHandler {
	return &FlowHandler{docs: docs}
}

func (h *FlowHandler) List(c *gin.Context) {
	defs := h.docs.Flows()
	resp := make([]dto.FlowSummary, 0, len(defs))
	for _, def := range defs {
		resp = append(resp, dto.FlowSummary{
			Name:         def.Name,
			Description:  def.Description,
			InputFields:  def.Input.Names(),
			OutputFields: def.Output.Names(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"flows": resp})
}

// Run decodes the body as a plain JSON object and leaves validation to the
// flow's input schema.
func (h *FlowHandler) Run(c *gin.Context) {
	var input map[string]any
	if !bindJSON(c, &input) {
		return
	}

	result, err := h.docs.RunFlow(c.Request.Context(), c.Param("name"), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FlowResponse{
		Flow:   result.Flow,
		Output: result.Output.Map(),
		Usage: dto.FlowUsage{
			PromptTokens:     result.Usage.PromptTokens,
			CompletionTokens: result.Usage.CompletionTokens,
		},
	})
}

func (h *FlowHandler) Render(c *gin.Context) {
	var input map[string]any
	if !bindJSON(c, &input) {
		return
	}

	name := c.Param("name")
	text, err := h.docs.RenderFlow(c.Request.Context(), name, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RenderResponse{Flow: name, Prompt: text})
}

func (h *FlowHandler) ModuleReadmeBatch(c *gin.Context) {
	var req dto.ModuleReadmeBatchRequest
	if !bindJSON(c, &req) {
		return
	}

	readmes, err := h.docs.GenerateModuleReadmes(c.Request.Context(), req.RepoName, req.Modules)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ModuleReadmeBatchResponse{RepoName: req.RepoName, Readmes: readmes})
}
