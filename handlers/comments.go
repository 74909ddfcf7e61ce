package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joejung/mira/services"
)

// CommentHandler serves comment creation.
type CommentHandler struct {
	svc *services.CommentService
}

func NewCommentHandler(svc *services.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

type createCommentRequest struct {
	Content  string `json:"content" binding:"required"`
	IssueID  uint   `json:"issueId" binding:"required"`
	AuthorID uint   `json:"authorId" binding:"required"`
}

// Create handles POST /api/comments
func (h *CommentHandler) Create(c *gin.Context) {
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	comment, err := h.svc.Create(services.CommentInput{
		Content:  req.Content,
		IssueID:  req.IssueID,
		AuthorID: req.AuthorID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}
