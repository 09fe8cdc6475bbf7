package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/gtd_catalog/internal/cache"
	"github.com/GTDGit/gtd_catalog/internal/service"
	"github.com/GTDGit/gtd_catalog/internal/utils"
)

var startTime = time.Now()

// HealthHandler provides health endpoint.
type HealthHandler struct {
	catalog service.CatalogClient
	redis   *cache.RedisClient
}

// NewHealthHandler creates a new HealthHandler. redis may be nil when the
// memory cache driver is in use.
func NewHealthHandler(catalog service.CatalogClient, redis *cache.RedisClient) *HealthHandler {
	return &HealthHandler{catalog: catalog, redis: redis}
}

// GetHealth responds with service, upstream catalog and cache status.
// The upstream is probed directly, bypassing the request cache.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	catalogStatus := "connected"
	categories, err := h.catalog.GetCategories(ctx)
	if err != nil {
		catalogStatus = "disconnected"
	}

	cacheStatus := gin.H{"driver": "memory", "status": "connected"}
	if h.redis != nil {
		cacheStatus["driver"] = "redis"
		if err := h.redis.Ping(ctx); err != nil {
			cacheStatus["status"] = "disconnected"
		}
	}

	utils.Success(c, 200, "Service is healthy", gin.H{
		"status":  "healthy",
		"version": "1.0.0",
		"uptime":  int(time.Since(startTime).Seconds()),
		"catalog": gin.H{
			"status":     catalogStatus,
			"categories": len(categories),
		},
		"cache": cacheStatus,
	})
}
