package handler

import (
	"github.com/bizbooks/bizbooks-api/internal/application/service"
	"github.com/bizbooks/bizbooks-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// DashboardHandler handles dashboard-related HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Get returns the dashboard stats and monthly overview.
func (h *DashboardHandler) Get(c *gin.Context) {
	data, err := h.dashboardService.GetDashboard(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, data)
}
