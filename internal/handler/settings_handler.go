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

type settingsService interface {
	Get(ctx context.Context) (*models.Settings, error)
	Save(ctx context.Context, req dto.SettingsRequest) (*models.Settings, error)
}

// SettingsHandler serves the single settings record.
type SettingsHandler struct {
	service settingsService
}

// NewSettingsHandler constructs the handler.
func NewSettingsHandler(svc settingsService) *SettingsHandler {
	return &SettingsHandler{service: svc}
}

// Get godoc
// @Summary Get settings
// @Tags Settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /settings [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.service.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, settings)
}

// Update godoc
// @Summary Replace settings
// @Description Overwrites every setting with the payload
// @Tags Settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.SettingsRequest true "Settings"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /settings [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	var req dto.SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid settings payload"))
		return
	}
	settings, err := h.service.Save(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, settings)
}
