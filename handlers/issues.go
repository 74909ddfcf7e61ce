package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/joejung/mira/models"
	"github.com/joejung/mira/services"
	"github.com/joejung/mira/store"
)

// IssueHandler serves issue listing, creation and partial update.
type IssueHandler struct {
	svc *services.IssueService
}

func NewIssueHandler(svc *services.IssueService) *IssueHandler {
	return &IssueHandler{svc: svc}
}

// List handles GET /api/issues?offset=&limit=
func (h *IssueHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(services.DefaultListLimit)))

	issues, err := h.svc.List(offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, issues)
}

// Get handles GET /api/issues/:id
func (h *IssueHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	issue, err := h.svc.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, issue)
}

type createIssueRequest struct {
	Title       string          `json:"title" binding:"required"`
	Description *string         `json:"description"`
	Status      models.Status   `json:"status"`
	Priority    models.Priority `json:"priority"`
	ProjectID   uint            `json:"projectId" binding:"required"`
	ReporterID  uint            `json:"reporterId" binding:"required"`
	AssigneeID  *uint           `json:"assigneeId"`
	Chipset     *string         `json:"chipset"`
	ChipsetVer  *string         `json:"chipsetVer"`
}

// Create handles POST /api/issues
func (h *IssueHandler) Create(c *gin.Context) {
	var req createIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	issue, err := h.svc.Create(services.IssueInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		ProjectID:   req.ProjectID,
		ReporterID:  req.ReporterID,
		AssigneeID:  req.AssigneeID,
		Chipset:     req.Chipset,
		ChipsetVer:  req.ChipsetVer,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, issue)
}

// Update handles PUT /api/issues/:id with a sparse body: only the fields
// present in the JSON are applied.
func (h *IssueHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var patch store.IssuePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	issue, err := h.svc.Update(id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, issue)
}
