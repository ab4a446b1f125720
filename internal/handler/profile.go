package handler

import (
	"net/http"

	"unboxx/internal/dto"
	"unboxx/internal/service"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct{ svc service.ProfileService }

func NewProfileHandler(svc service.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

func (h *ProfileHandler) Get(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), who)
	if err != nil {
		respondError(c, err, "Failed to load profile")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProfileHandler) Save(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}
	var req dto.SaveProfileRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Save(c.Request.Context(), who, req)
	if err != nil {
		respondError(c, err, "Failed to save profile")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProfileHandler) UpdatePersonal(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}
	var req dto.UpdatePersonalRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdatePersonal(c.Request.Context(), who, req)
	if err != nil {
		respondError(c, err, "Failed to update personal details")
		return
	}
	c.JSON(http.StatusOK, resp)
}
