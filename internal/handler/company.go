package handler

import (
	"errors"
	"net/http"

	"unboxx/internal/apierror"
	"unboxx/internal/dto"
	"unboxx/internal/service"

	"github.com/gin-gonic/gin"
)

type CompanyHandler struct{ svc service.CompanyService }

func NewCompanyHandler(svc service.CompanyService) *CompanyHandler {
	return &CompanyHandler{svc: svc}
}

func (h *CompanyHandler) Get(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), who)
	if errors.Is(err, service.ErrNoCompany) {
		c.JSON(http.StatusNotFound, apierror.New("No company linked to this profile"))
		return
	}
	if err != nil {
		respondError(c, err, "Failed to load company")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Save returns 201 when the company was created and linked, 200 on update.
func (h *CompanyHandler) Save(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}
	var req dto.SaveCompanyRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Save(c.Request.Context(), who, req)
	if err != nil {
		respondError(c, err, "Failed to save company")
		return
	}
	status := http.StatusOK
	if resp.Created {
		status = http.StatusCreated
	}
	c.JSON(status, resp)
}
