package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"learnfromvideo/internal/domain"
)

type StatusRecorder interface {
	Create(ctx context.Context, clientName string) (*domain.StatusCheck, error)
	List(ctx context.Context) ([]domain.StatusCheck, error)
}

type StatusHandler struct {
	statuses StatusRecorder
}

func NewStatusHandler(s StatusRecorder) *StatusHandler {
	return &StatusHandler{statuses: s}
}

// GET /api/
func (h *StatusHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Hello World"})
}

type statusCreateRequest struct {
	ClientName string `json:"client_name" binding:"required"`
}

// POST /api/status
func (h *StatusHandler) Create(c *gin.Context) {
	var req statusCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "client_name is required"})
		return
	}

	check, err := h.statuses.Create(c.Request.Context(), req.ClientName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, check)
}

// GET /api/status
func (h *StatusHandler) List(c *gin.Context) {
	checks, err := h.statuses.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, checks)
}
