package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Adv-2005/DocuGenAI/internal/http/dto"
	"github.com/Adv-2005/DocuGenAI/internal/model"
	"github.com/Adv-2005/DocuGenAI/internal/service"
)

type DraftHandler struct {
	docs service.DocumentationService
}

func NewDraftHandler(docs service.DocumentationService) *DraftHandler {
	return &DraftHandler{docs: docs}
}

func (h *DraftHandler) List(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	drafts, err := h.docs.ListDrafts(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.DraftResponse, 0, len(drafts))
	for i := range drafts {
		resp = append(resp, dto.ToDraftResponse(&drafts[i]))
	}
	c.JSON(http.StatusOK, gin.H{"drafts": resp})
}

func (h *DraftHandler) Get(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	draftID, ok := parseID(c, "id", c.Param("id"))
	if !ok {
		return
	}

	draft, err := h.docs.GetDraft(c.Request.Context(), userID, draftID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDraftResponse(draft))
}

// Save stores the editor content. Saving the same repository path again
// replaces the earlier draft.
func (h *DraftHandler) Save(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.SaveDraftRequest
	if !bindJSON(c, &req) {
		return
	}
	provider, ok := parseProvider(c, req.Provider)
	if !ok {
		return
	}

	draft, err := h.docs.SaveDraft(c.Request.Context(), userID, service.SaveDraftParams{
		Provider:     provider,
		RepoFullName: req.RepoFullName,
		Kind:         model.DraftKind(req.Kind),
		Path:         req.Path,
		Title:        req.Title,
		Content:      req.Content,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDraftResponse(draft))
}
