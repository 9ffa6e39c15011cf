package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/horarium/timetable-api/internal/service"
	"github.com/horarium/timetable-api/pkg/response"
)

// Pinger is the readiness probe contract satisfied by the Redis client.
type Pinger interface {
	Ping(ctx context.Context) error
}

// MetricsHandler exposes observability endpoints.
type MetricsHandler struct {
	metrics service.MetricsService
	pinger  Pinger
}

// NewMetricsHandler constructs a metrics handler. The pinger is optional.
func NewMetricsHandler(metrics service.MetricsService, pinger Pinger) *MetricsHandler {
	return &MetricsHandler{metrics: metrics, pinger: pinger}
}

// Prometheus serves the Prometheus scrape endpoint.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	promhttp.HandlerFor(h.metrics.Registry(), promhttp.HandlerOpts{}).ServeHTTP(c.Writer, c.Request)
}

// Health responds with a generic OK payload for liveness usage.
func (h *MetricsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready checks the optional cache backend before reporting readiness.
func (h *MetricsHandler) Ready(c *gin.Context) {
	status := gin.H{"status": "ready"}
	if h.pinger != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.pinger.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "cache": err.Error()})
			return
		}
		status["cache"] = "ok"
	}
	c.JSON(http.StatusOK, status)
}

// System godoc
// @Summary Lightweight JSON snapshot of service counters
// @Tags System
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /system/metrics [get]
func (h *MetricsHandler) System(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.metrics.Snapshot(), nil)
}
