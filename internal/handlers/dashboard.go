package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/svitoratos/tangocrm-backend/internal/services"
)

type DashboardHandler struct {
	dashboardService services.DashboardService
}

func NewDashboardHandler(dashboardService services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (dh *DashboardHandler) Overview(c *gin.Context) {
	metrics, err := dh.dashboardService.Overview(c.Request.Context(), c.Query("niche"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "dashboard_fetch_failed", err)
		return
	}
	RespondOK(c, gin.H{"dashboard": metrics})
}
