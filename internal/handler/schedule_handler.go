package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/wakeup-planner-api/internal/dto"
	"github.com/noah-isme/wakeup-planner-api/internal/middleware"
	"github.com/noah-isme/wakeup-planner-api/internal/service"
	appErrors "github.com/noah-isme/wakeup-planner-api/pkg/errors"
	"github.com/noah-isme/wakeup-planner-api/pkg/response"
)

type scheduleService interface {
	Week(ctx context.Context, now time.Time) (*dto.ScheduleResponse, error)
	RequestRefresh(ctx context.Context) (*dto.RefreshResponse, error)
}

type scheduleExporter interface {
	Export(ctx context.Context, format string, now time.Time) (*service.ExportResult, error)
}

// ScheduleHandler serves the normalised week, refreshes and exports.
type ScheduleHandler struct {
	service  scheduleService
	exporter scheduleExporter
	clock    service.Clock
}

// NewScheduleHandler constructs the handler.
func NewScheduleHandler(svc scheduleService, exporter scheduleExporter, clock service.Clock) *ScheduleHandler {
	if clock == nil {
		clock = time.Now
	}
	return &ScheduleHandler{service: svc, exporter: exporter, clock: clock}
}

// Week godoc
// @Summary Weekly schedule
// @Description Timetable lessons active on the given date merged with custom lessons
// @Tags Schedule
// @Produce json
// @Security BearerAuth
// @Param at query string false "Reference time (RFC 3339)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /schedule [get]
func (h *ScheduleHandler) Week(c *gin.Context) {
	now, err := requestTime(c, h.clock)
	if err != nil {
		response.Error(c, err)
		return
	}
	week, err := h.service.Week(c.Request.Context(), now)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetSource(c, week.Source)
	response.JSON(c, http.StatusOK, week, middleware.ExtractMeta(c))
}

// Refresh godoc
// @Summary Queue a timetable refresh
// @Tags Schedule
// @Produce json
// @Security BearerAuth
// @Success 202 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /schedule/refresh [post]
func (h *ScheduleHandler) Refresh(c *gin.Context) {
	res, err := h.service.RequestRefresh(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusAccepted, res)
}

// Export godoc
// @Summary Export the weekly schedule
// @Tags Schedule
// @Produce application/pdf
// @Produce text/csv
// @Security BearerAuth
// @Param format query string false "csv or pdf" default(csv)
// @Param at query string false "Reference time (RFC 3339)"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /schedule/export [get]
func (h *ScheduleHandler) Export(c *gin.Context) {
	now, err := requestTime(c, h.clock)
	if err != nil {
		response.Error(c, err)
		return
	}
	format := strings.ToLower(strings.TrimSpace(c.DefaultQuery("format", service.ExportFormatCSV)))
	if format != service.ExportFormatCSV && format != service.ExportFormatPDF {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf"))
		return
	}
	file, err := h.exporter.Export(c.Request.Context(), format, now)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}
