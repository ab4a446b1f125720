package handler

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"unboxx/internal/dto"
	"unboxx/internal/realtime"
	"unboxx/internal/service"

	"github.com/gin-gonic/gin"
)

var orderTables = []string{"orders", "trackings"}

type OrdersHandler struct {
	svc service.OrderService
	hub *realtime.Hub
}

func NewOrdersHandler(svc service.OrderService, hub *realtime.Hub) *OrdersHandler {
	return &OrdersHandler{svc: svc, hub: hub}
}

// List serves store and bulk orders; ?type=store|bulk narrows it.
func (h *OrdersHandler) List(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}
	var filter dto.OrderFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), who, filter)
	if err != nil {
		respondError(c, err, "Failed to load orders")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdersHandler) Live(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}
	var filter dto.OrderFilter
	if !bindQuery(c, &filter) {
		return
	}
	streamLive(c, h.hub, orderTables, func(ctx context.Context) (*dto.OrderListResponse, error) {
		return h.svc.List(ctx, who, filter)
	}, "Failed to load orders")
}

func (h *OrdersHandler) Get(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), who, id)
	if err != nil {
		respondError(c, err, "Failed to load order")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdersHandler) Create(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}
	var req dto.CreateOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), who, req)
	if err != nil {
		respondError(c, err, "Failed to create order")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *OrdersHandler) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.UpdateOrderStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err, "Failed to update order")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PDF renders the order summary as an attachment.
func (h *OrdersHandler) PDF(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	name, err := h.svc.RenderPDF(c.Request.Context(), who, id, &buf)
	if err != nil {
		respondError(c, err, "Failed to render order PDF")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
