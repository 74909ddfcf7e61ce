package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joejung/mira/services"
)

// ProjectHandler serves project listing and creation.
type ProjectHandler struct {
	svc *services.ProjectService
}

func NewProjectHandler(svc *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

// List handles GET /api/projects
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.svc.List()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

type createProjectRequest struct {
	Name        string  `json:"name" binding:"required"`
	Key         string  `json:"key" binding:"required"`
	Description *string `json:"description"`
}

// Create handles POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	project, err := h.svc.Create(services.ProjectInput{
		Name:        req.Name,
		Key:         req.Key,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, project)
}
