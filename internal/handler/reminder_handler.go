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

type reminderService interface {
	List(ctx context.Context) ([]models.Reminder, error)
	Create(ctx context.Context, req dto.ReminderRequest) (*models.Reminder, error)
	Update(ctx context.Context, id string, req dto.ReminderRequest) (*models.Reminder, error)
	Delete(ctx context.Context, id string) error
}

// ReminderHandler exposes one-off reminders.
type ReminderHandler struct {
	service reminderService
}

// NewReminderHandler constructs the handler.
func NewReminderHandler(svc reminderService) *ReminderHandler {
	return &ReminderHandler{service: svc}
}

// List godoc
// @Summary List reminders
// @Tags Reminders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /reminders [get]
func (h *ReminderHandler) List(c *gin.Context) {
	reminders, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reminders, map[string]interface{}{"total": len(reminders)})
}

// Create godoc
// @Summary Create reminder
// @Tags Reminders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.ReminderRequest true "Reminder"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /reminders [post]
func (h *ReminderHandler) Create(c *gin.Context) {
	req, ok := bindReminder(c)
	if !ok {
		return
	}
	reminder, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, reminder)
}

// Update godoc
// @Summary Replace reminder
// @Tags Reminders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reminder ID"
// @Param payload body dto.ReminderRequest true "Reminder"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /reminders/{id} [put]
func (h *ReminderHandler) Update(c *gin.Context) {
	req, ok := bindReminder(c)
	if !ok {
		return
	}
	reminder, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reminder)
}

// Delete godoc
// @Summary Delete reminder
// @Tags Reminders
// @Security BearerAuth
// @Param id path string true "Reminder ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /reminders/{id} [delete]
func (h *ReminderHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func bindReminder(c *gin.Context) (dto.ReminderRequest, bool) {
	var req dto.ReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid reminder payload"))
		return req, false
	}
	return req, true
}
