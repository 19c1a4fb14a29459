package handler

import (
	identityapp "github.com/gestor/backend/internal/application/identity"
	"github.com/gestor/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles account and session endpoints
type AuthHandler struct {
	BaseHandler
	authService *identityapp.AuthService
	loginLimit  *middleware.RateLimiter
}

// NewAuthHandler creates a new AuthHandler. The rate limiter guards the
// credential endpoints; pass nil to disable limiting (tests).
func NewAuthHandler(authService *identityapp.AuthService, loginLimit *middleware.RateLimiter) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		loginLimit:  loginLimit,
	}
}

// RegisterRoutes registers auth routes on the API group
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")

	guarded := auth.Group("")
	if h.loginLimit != nil {
		guarded.Use(h.loginLimit.Middleware())
	}
	guarded.POST("/register", h.Register)
	guarded.POST("/login", h.Login)

	auth.POST("/logout", h.Logout)
	auth.GET("/me", h.Me)
	auth.PUT("/password", h.ChangePassword)
}

// Register creates a new account with its own fresh tenant partition.
func (h *AuthHandler) Register(c *gin.Context) {
	var req identityapp.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Login authenticates credentials and issues an access token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req identityapp.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Logout revokes the presented token for its remaining lifetime.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Me returns the authenticated account.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.authService.Me(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ChangePassword replaces the account password and invalidates every token
// issued before the change.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req identityapp.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), userID, &req); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
