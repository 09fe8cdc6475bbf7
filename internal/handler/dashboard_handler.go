package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/GTDGit/gtd_catalog/internal/service"
	"github.com/GTDGit/gtd_catalog/internal/utils"
)

// DashboardHandler serves the dashboard summary API.
type DashboardHandler struct {
	catalogService *service.CatalogService
}

// NewDashboardHandler constructs a DashboardHandler.
func NewDashboardHandler(catalogService *service.CatalogService) *DashboardHandler {
	return &DashboardHandler{catalogService: catalogService}
}

// GetStats returns the stat tiles and the recent products.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	dash, err := h.catalogService.LoadDashboard(c.Request.Context())
	if err != nil {
		apiError(c, err)
		return
	}
	utils.Success(c, 200, "Dashboard retrieved successfully", dash)
}
