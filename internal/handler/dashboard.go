package handler

import (
	"context"
	"net/http"

	"unboxx/internal/dto"
	"unboxx/internal/realtime"
	"unboxx/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboard service.DashboardService
	reports   service.ReportService
	hub       *realtime.Hub
}

func NewDashboardHandler(dashboard service.DashboardService, reports service.ReportService, hub *realtime.Hub) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, reports: reports, hub: hub}
}

func (h *DashboardHandler) Get(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}
	resp, err := h.dashboard.Get(c.Request.Context(), who)
	if err != nil {
		respondError(c, err, "Failed to load dashboard")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DashboardHandler) Live(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}
	streamLive(c, h.hub, service.DashboardTables, func(ctx context.Context) (*dto.DashboardResponse, error) {
		return h.dashboard.Refresh(ctx, who)
	}, "Failed to load dashboard")
}

func (h *DashboardHandler) Reports(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}
	resp, err := h.reports.Get(c.Request.Context(), who)
	if err != nil {
		respondError(c, err, "Failed to load reports")
		return
	}
	c.JSON(http.StatusOK, resp)
}
