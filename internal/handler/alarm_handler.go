package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/wakeup-planner-api/internal/middleware"
	"github.com/noah-isme/wakeup-planner-api/internal/models"
	"github.com/noah-isme/wakeup-planner-api/internal/service"
	"github.com/noah-isme/wakeup-planner-api/pkg/response"
)

type alarmPlanner interface {
	NextAlarm(ctx context.Context, now time.Time) (*models.AlarmPlan, error)
}

// AlarmHandler runs the full wake-up pipeline.
type AlarmHandler struct {
	planner alarmPlanner
	clock   service.Clock
}

// NewAlarmHandler constructs the handler.
func NewAlarmHandler(planner alarmPlanner, clock service.Clock) *AlarmHandler {
	if clock == nil {
		clock = time.Now
	}
	return &AlarmHandler{planner: planner, clock: clock}
}

// Next godoc
// @Summary Next wake-up alarm
// @Description Finds the next class or reminder and subtracts routine, travel and buffer time.
// @Description data.alarm is null when nothing is scheduled in the coming week.
// @Tags Alarm
// @Produce json
// @Security BearerAuth
// @Param at query string false "Reference time (RFC 3339)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /alarm/next [get]
func (h *AlarmHandler) Next(c *gin.Context) {
	now, err := requestTime(c, h.clock)
	if err != nil {
		response.Error(c, err)
		return
	}
	plan, err := h.planner.NextAlarm(c.Request.Context(), now)
	if err != nil {
		response.Error(c, err)
		return
	}
	if plan.ScheduleSource != "" {
		middleware.SetSource(c, plan.ScheduleSource)
	}
	response.JSON(c, http.StatusOK, plan, middleware.ExtractMeta(c))
}
