package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"learnfromvideo/internal/domain"
)

type CourseConverter interface {
	Convert(ctx context.Context, videoURL string) (*domain.Course, error)
	GetCourse(ctx context.Context, courseID string) (*domain.Course, error)
	ListCourses(ctx context.Context) ([]domain.Course, error)
}

type CourseHandler struct {
	converter CourseConverter
}

func NewCourseHandler(c CourseConverter) *CourseHandler {
	return &CourseHandler{converter: c}
}

type convertRequest struct {
	VideoURL string `json:"video_url" binding:"required"`
}

// POST /api/convert-youtube
func (h *CourseHandler) Convert(c *gin.Context) {
	var req convertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "video_url is required"})
		return
	}

	course, err := h.converter.Convert(c.Request.Context(), req.VideoURL)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidURL) {
			// Ошибка клиента, не наша — в лог сервера не пишем
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid YouTube URL"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, course)
}

// GET /api/courses/:id
func (h *CourseHandler) GetOne(c *gin.Context) {
	course, err := h.converter.GetCourse(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrCourseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Course not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, course)
}

// GET /api/courses
func (h *CourseHandler) List(c *gin.Context) {
	courses, err := h.converter.ListCourses(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, courses)
}
