package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/recipebox/backend/internal/middleware"
	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/types"
)

// AuthHandler serves registration, login and the current account
type AuthHandler struct {
	authService service.IAuthService
	callers     callerResolver
	log         *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService service.IAuthService, callers callerResolver, log *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, callers: callers, log: log}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/logout", middleware.AuthMiddleware(h.authService), h.Logout)
		auth.GET("/me", middleware.AuthMiddleware(h.authService), h.Me)
	}
}

func (h *AuthHandler) respondWithToken(c *gin.Context, status int, user model.User) {
	token, err := h.authService.GenerateToken(user)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(status, types.AuthResponse{User: user, Token: token})
}

// Register creates an account and returns it with a token
func (h *AuthHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	h.respondWithToken(c, http.StatusCreated, user)
}

// Login checks credentials and returns the user with a token
func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	h.respondWithToken(c, http.StatusOK, user)
}

// Logout acknowledges the logout. Tokens are stateless, the client drops its copy.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me returns the authenticated user
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.callers.required(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
