package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/formaplan/formaplan-api/internal/service"
)

type pinger interface {
	PingContext(ctx context.Context) error
}

// MonitoringHandler exposes health, readiness and metrics endpoints.
type MonitoringHandler struct {
	metrics *service.MetricsService
	db      pinger
}

// NewMonitoringHandler constructs a monitoring handler.
func NewMonitoringHandler(metrics *service.MetricsService, db pinger) *MonitoringHandler {
	return &MonitoringHandler{metrics: metrics, db: db}
}

// Health responds with a generic OK payload for liveness usage.
func (h *MonitoringHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready checks the database connection before reporting readiness.
func (h *MonitoringHandler) Ready(c *gin.Context) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "database unreachable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *MonitoringHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// Summary godoc
// @Summary Aggregated runtime metrics snapshot
// @Tags Monitoring
// @Produce json
// @Success 200 {object} models.SystemMetrics
// @Router /metrics/summary [get]
func (h *MonitoringHandler) Summary(c *gin.Context) {
	c.JSON(http.StatusOK, h.metrics.Snapshot())
}
