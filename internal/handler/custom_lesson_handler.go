package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/wakeup-planner-api/internal/dto"
	"github.com/noah-isme/wakeup-planner-api/internal/models"
	appErrors "github.com/noah-isme/wakeup-planner-api/pkg/errors"
	"github.com/noah-isme/wakeup-planner-api/pkg/response"
)

type customLessonService interface {
	List(ctx context.Context) ([]models.CustomLesson, error)
	Create(ctx context.Context, req dto.CustomLessonRequest) (*models.CustomLesson, error)
	Delete(ctx context.Context, id string) error
}

// CustomLessonHandler manages user-defined lessons.
type CustomLessonHandler struct {
	service customLessonService
}

// NewCustomLessonHandler constructs the handler.
func NewCustomLessonHandler(svc customLessonService) *CustomLessonHandler {
	return &CustomLessonHandler{service: svc}
}

// List godoc
// @Summary List custom lessons
// @Tags Custom Lessons
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /custom-lessons [get]
func (h *CustomLessonHandler) List(c *gin.Context) {
	lessons, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, lessons, map[string]interface{}{"total": len(lessons)})
}

// Create godoc
// @Summary Add a custom lesson
// @Tags Custom Lessons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CustomLessonRequest true "Lesson"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /custom-lessons [post]
func (h *CustomLessonHandler) Create(c *gin.Context) {
	var req dto.CustomLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid lesson payload"))
		return
	}
	lesson, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, lesson)
}

// Delete godoc
// @Summary Remove a custom lesson
// @Tags Custom Lessons
// @Security BearerAuth
// @Param id path string true "Lesson ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /custom-lessons/{id} [delete]
func (h *CustomLessonHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
