package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Adv-2005/DocuGenAI/internal/http/dto"
	"github.com/Adv-2005/DocuGenAI/internal/service"
)

type PullRequestHandler struct {
	docs service.DocumentationService
}

func NewPullRequestHandler(docs service.DocumentationService) *PullRequestHandler {
	return &PullRequestHandler{docs: docs}
}

func (h *PullRequestHandler) Create(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.CreatePullRequestRequest
	if !bindJSON(c, &req) {
		return
	}

	params := service.CreatePullRequestParams{
		RepoFullName:  req.RepoFullName,
		Path:          req.Path,
		Content:       req.Content,
		Title:         req.Title,
		Body:          req.Body,
		CommitMessage: req.CommitMessage,
	}
	if req.DraftID != nil {
		draftID, ok := parseID(c, "draftId", *req.DraftID)
		if !ok {
			return
		}
		params.DraftID = &draftID
	}

	pr, err := h.docs.CreatePullRequest(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, pr)
}
