package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/wakeup-planner-api/internal/models"
	appErrors "github.com/noah-isme/wakeup-planner-api/pkg/errors"
	"github.com/noah-isme/wakeup-planner-api/pkg/response"
)

type metricsProvider interface {
	Handler() http.Handler
	Snapshot() models.MetricsSnapshot
}

// Pinger is a dependency checked by the readiness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// MetricsHandler exposes Prometheus metrics and health probes.
type MetricsHandler struct {
	metrics      metricsProvider
	dependencies map[string]Pinger
}

// NewMetricsHandler creates a new handler.
func NewMetricsHandler(metrics metricsProvider, dependencies map[string]Pinger) *MetricsHandler {
	return &MetricsHandler{metrics: metrics, dependencies: dependencies}
}

// Prometheus godoc
// @Summary Prometheus metrics
// @Tags Observability
// @Produce plain
// @Success 200 {string} string "metrics"
// @Router /metrics [get]
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusNotFound)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// Health godoc
// @Summary Liveness probe with a metrics summary
// @Tags Observability
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /health [get]
func (h *MetricsHandler) Health(c *gin.Context) {
	payload := gin.H{"status": "ok"}
	if h.metrics != nil {
		payload["metrics"] = h.metrics.Snapshot()
	}
	response.JSON(c, http.StatusOK, payload)
}

// Ready godoc
// @Summary Readiness probe
// @Tags Observability
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /ready [get]
func (h *MetricsHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := make(map[string]string, len(h.dependencies))
	var failed error
	for name, dep := range h.dependencies {
		if dep == nil {
			continue
		}
		if err := dep.Ping(ctx); err != nil {
			checks[name] = err.Error()
			failed = err
			continue
		}
		checks[name] = "ok"
	}

	if failed != nil {
		response.Error(c, appErrors.Wrap(failed, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "dependencies not ready"))
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"status": "ready", "checks": checks})
}
