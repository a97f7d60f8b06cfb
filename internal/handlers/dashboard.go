package handlers

import (
  "github.com/gin-gonic/gin"

  "github.com/adgenius/adgenius-backend/internal/services"
)

type DashboardHandler struct {
  dashboardService services.DashboardService
}

func NewDashboardHandler(dashboardService services.DashboardService) *DashboardHandler {
  return &DashboardHandler{dashboardService: dashboardService}
}

func (dh *DashboardHandler) Stats(c *gin.Context) {
  data, err := dh.dashboardService.GetStats(c.Request.Context())
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"success": true, "data": data})
}

func (dh *DashboardHandler) Products(c *gin.Context) {
  products, err := dh.dashboardService.GetUserProducts(c.Request.Context())
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"success": true, "data": products})
}
