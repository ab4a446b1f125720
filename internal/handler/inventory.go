package handler

import (
	"context"
	"net/http"

	"unboxx/internal/dto"
	"unboxx/internal/realtime"
	"unboxx/internal/service"

	"github.com/gin-gonic/gin"
)

var inventoryTables = []string{"products", "product_variants"}

type InventoryHandler struct {
	svc service.InventoryService
	hub *realtime.Hub
}

func NewInventoryHandler(svc service.InventoryService, hub *realtime.Hub) *InventoryHandler {
	return &InventoryHandler{svc: svc, hub: hub}
}

func (h *InventoryHandler) List(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}
	var filter dto.InventoryFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), who, filter)
	if err != nil {
		respondError(c, err, "Failed to load inventory")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventoryHandler) Live(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}
	var filter dto.InventoryFilter
	if !bindQuery(c, &filter) {
		return
	}
	streamLive(c, h.hub, inventoryTables, func(ctx context.Context) (*dto.InventoryListResponse, error) {
		return h.svc.List(ctx, who, filter)
	}, "Failed to load inventory")
}

func (h *InventoryHandler) Stores(c *gin.Context) {
	stores, err := h.svc.Stores(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to load stores")
		return
	}
	c.JSON(http.StatusOK, gin.H{"stores": stores})
}

func (h *InventoryHandler) Toggle(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ToggleRow(c.Request.Context(), who, id)
	if err != nil {
		respondError(c, err, "Failed to toggle row")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ToggleAll acts on the rows the caller is looking at, so it takes the same
// query parameters as List.
func (h *InventoryHandler) ToggleAll(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}
	var filter dto.InventoryFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.ToggleAll(c.Request.Context(), who, filter)
	if err != nil {
		respondError(c, err, "Failed to toggle rows")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventoryHandler) SetVariantStock(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.SetStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.SetVariantStock(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err, "Failed to update stock")
		return
	}
	c.JSON(http.StatusOK, resp)
}
