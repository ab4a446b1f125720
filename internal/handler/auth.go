package handler

import (
	"net/http"

	"unboxx/internal/dto"
	"unboxx/internal/service"

	"github.com/gin-gonic/gin"
)

// SessionCookie describes the browser session cookie that mirrors the
// access token.
type SessionCookie struct {
	Name   string
	MaxAge int // seconds
	Secure bool
}

type AuthHandler struct {
	svc    service.AuthService
	cookie SessionCookie
}

func NewAuthHandler(svc service.AuthService, cookie SessionCookie) *AuthHandler {
	return &AuthHandler{svc: svc, cookie: cookie}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Could not sign in")
		return
	}
	h.setCookie(c, resp.AccessToken, h.cookie.MaxAge)
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, err, "Could not refresh session")
		return
	}
	h.setCookie(c, resp.AccessToken, h.cookie.MaxAge)
	c.JSON(http.StatusOK, resp)
}

// Logout clears the session cookie. Tokens are stateless, so bearer clients
// simply discard theirs.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.setCookie(c, "", -1)
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) Me(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}
	resp, err := h.svc.Me(c.Request.Context(), who)
	if err != nil {
		respondError(c, err, "Could not load session")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) setCookie(c *gin.Context, value string, maxAge int) {
	if h.cookie.Name == "" {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, value, maxAge, "/", "", h.cookie.Secure, true)
}
