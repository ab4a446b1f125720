package handler

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"unboxx/internal/dto"
	"unboxx/internal/realtime"
	"unboxx/internal/service"

	"github.com/gin-gonic/gin"
)

var invoiceTables = []string{"invoices"}

type InvoicesHandler struct {
	svc service.InvoiceService
	hub *realtime.Hub
}

func NewInvoicesHandler(svc service.InvoiceService, hub *realtime.Hub) *InvoicesHandler {
	return &InvoicesHandler{svc: svc, hub: hub}
}

func (h *InvoicesHandler) List(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}
	var filter dto.InvoiceFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), who, filter)
	if err != nil {
		respondError(c, err, "Failed to load invoices")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InvoicesHandler) Live(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}
	var filter dto.InvoiceFilter
	if !bindQuery(c, &filter) {
		return
	}
	streamLive(c, h.hub, invoiceTables, func(ctx context.Context) (*dto.InvoiceListResponse, error) {
		return h.svc.List(ctx, who, filter)
	}, "Failed to load invoices")
}

// Export downloads every matching invoice as CSV, ignoring paging.
func (h *InvoicesHandler) Export(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}
	var filter dto.InvoiceFilter
	if !bindQuery(c, &filter) {
		return
	}
	var buf bytes.Buffer
	if err := h.svc.ExportCSV(c.Request.Context(), who, filter, &buf); err != nil {
		respondError(c, err, "Failed to export invoices")
		return
	}
	name := fmt.Sprintf("invoices_%s.csv", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
