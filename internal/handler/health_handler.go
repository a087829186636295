package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/todopro_api/internal/utils"
)

var startTime = time.Now()

// DBClock reads the database server time.
type DBClock interface {
	Now(ctx context.Context) (time.Time, error)
}

// StorePinger checks the key-value store.
type StorePinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler provides health endpoints.
type HealthHandler struct {
	db      DBClock
	store   StorePinger
	backend string
}

// NewHealthHandler creates a new HealthHandler. backend names the store
// implementation ("redis" or "memory").
func NewHealthHandler(db DBClock, store StorePinger, backend string) *HealthHandler {
	return &HealthHandler{db: db, store: store, backend: backend}
}

// TestDB handles GET /test-db and reports the database time.
func (h *HealthHandler) TestDB(c *gin.Context) {
	now, err := h.db.Now(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Database check failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Database connection failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "timestamp": now})
}

// GetHealth handles GET /v1/health
func (h *HealthHandler) GetHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "connected"
	if _, err := h.db.Now(ctx); err != nil {
		dbStatus = "disconnected"
	}
	storeStatus := "connected"
	if err := h.store.Ping(ctx); err != nil {
		storeStatus = "disconnected"
	}

	status := "healthy"
	if dbStatus != "connected" || storeStatus != "connected" {
		status = "degraded"
	}

	utils.Success(c, http.StatusOK, "Service is "+status, gin.H{
		"status":   status,
		"version":  "1.0.0",
		"uptime":   int(time.Since(startTime).Seconds()),
		"database": gin.H{"status": dbStatus},
		"store":    gin.H{"status": storeStatus, "backend": h.backend},
	})
}
