package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/wakeup-planner-api/internal/models"
	"github.com/noah-isme/wakeup-planner-api/internal/service"
	appErrors "github.com/noah-isme/wakeup-planner-api/pkg/errors"
	"github.com/noah-isme/wakeup-planner-api/pkg/response"
)

type routeSettingsReader interface {
	Get(ctx context.Context) (*models.Settings, error)
}

type routeEstimator interface {
	Estimate(ctx context.Context, settings models.Settings, destination string, arriveBy time.Time) (*models.RouteResult, error)
}

// RouteHandler estimates travel from home to an address or campus.
type RouteHandler struct {
	settings routeSettingsReader
	routes   routeEstimator
	clock    service.Clock
}

// NewRouteHandler constructs the handler.
func NewRouteHandler(settings routeSettingsReader, routes routeEstimator, clock service.Clock) *RouteHandler {
	if clock == nil {
		clock = time.Now
	}
	return &RouteHandler{settings: settings, routes: routes, clock: clock}
}

// Estimate godoc
// @Summary Estimate a route
// @Description destination may be a street address or a campus code such as "пр"
// @Tags Routes
// @Produce json
// @Security BearerAuth
// @Param destination query string true "Address or campus code"
// @Param departure query string false "Arrival deadline (RFC 3339)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /route [get]
func (h *RouteHandler) Estimate(c *gin.Context) {
	destination := strings.TrimSpace(c.Query("destination"))
	if destination == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "destination is required"))
		return
	}

	now := h.clock()
	arriveBy := now
	if raw := strings.TrimSpace(c.Query("departure")); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "departure must be an RFC 3339 timestamp"))
			return
		}
		arriveBy = parsed.In(now.Location())
	}

	settings, err := h.settings.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if address, ok := service.GetCampusAddress(strings.ToLower(destination), settings.CampusAddresses); ok {
		destination = address
	}

	route, err := h.routes.Estimate(c.Request.Context(), *settings, destination, arriveBy)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, route)
}
