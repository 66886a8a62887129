package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oppabier/cardapio-server/src/config"
	"github.com/oppabier/cardapio-server/src/database"
)

var startTime = time.Now()

// HealthHandler handles health check requests
type HealthHandler struct {
	db         *database.Database
	restaurant *config.Restaurant
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *database.Database, restaurant *config.Restaurant) *HealthHandler {
	return &HealthHandler{
		db:         db,
		restaurant: restaurant,
	}
}

// HandleHealth returns health status with DB check
func (hh *HealthHandler) HandleHealth(c *gin.Context) {
	start := time.Now()
	err := hh.db.Health(c.Request.Context())
	dbLatency := time.Since(start)

	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"database":   "connected",
		"db_latency": dbLatency.String(),
		"uptime":     time.Since(startTime).String(),
	})
}

// HandleReady returns readiness status (for load balancers)
func (hh *HealthHandler) HandleReady(c *gin.Context) {
	if err := hh.db.Health(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ready": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ready": true})
}

// HandleInfo returns service information plus the restaurant branding
func (hh *HealthHandler) HandleInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service":     "cardapio-server",
		"status":      "running",
		"uptime":      time.Since(startTime).String(),
		"restaurante": hh.restaurant,
	})
}
