package handler

import (
	"context"
	"net/http"
	"time"

	coreport "github.com/contactbot/payment-processor/internal/domain/port/core"
	"github.com/contactbot/payment-processor/internal/infrastructure/adapter/api/dto"
	"github.com/contactbot/payment-processor/internal/infrastructure/adapter/database"
	"github.com/gin-gonic/gin"
)

const healthCheckTimeout = 2 * time.Second

// DatabaseHealth is the database view needed by the health check
type DatabaseHealth interface {
	Ping(ctx context.Context) error
	PoolMetrics() database.ConnectionPoolMetrics
}

// HealthHandler reports service liveness and database reachability
type HealthHandler struct {
	db     DatabaseHealth
	logger coreport.Logger
}

// NewHealthHandler creates a new health handler instance
func NewHealthHandler(db DatabaseHealth, logger coreport.Logger) *HealthHandler {
	return &HealthHandler{db: db, logger: logger}
}

// Health handles the GET /health endpoint
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.logger.Warn("Health check failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusServiceUnavailable, dto.HealthResponse{
			Status:   "unavailable",
			Database: "unreachable",
		})
		return
	}

	pool := h.db.PoolMetrics()
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:   "ok",
		Database: "ok",
		Pool: &dto.PoolStatistics{
			OpenConnections:    pool.OpenConnections,
			InUse:              pool.InUse,
			IdleConnections:    pool.IdleConnections,
			MaxOpenConnections: pool.MaxOpenConnections,
			WaitCount:          pool.WaitCount,
		},
	})
}
