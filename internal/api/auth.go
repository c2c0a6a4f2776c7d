package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gabbyferm/savory/backend/internal/service"
	"github.com/gabbyferm/savory/backend/internal/types"
)

// AuthHandler serves registration, sign-in and token refresh
type AuthHandler struct {
	authService service.IAuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService service.IAuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes mounts the public endpoints on public and logout on
// protected. limit guards the credential endpoints.
func (h *AuthHandler) RegisterRoutes(public, protected *gin.RouterGroup, limit ...gin.HandlerFunc) {
	auth := public.Group("/auth", limit...)
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.Refresh)
	}
	protected.POST("/auth/logout", h.Logout)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req types.RefreshTokenRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.authService.Refresh(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	if err := h.authService.Logout(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
