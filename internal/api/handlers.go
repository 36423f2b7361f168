package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/recipebox/backend/internal/errs"
	"github.com/pageza/recipebox/backend/internal/middleware"
	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/service"
)

// Version is reported by the health check
const Version = "v1.0.0"

// Dependencies are the services and infrastructure the routes are built from
type Dependencies struct {
	Auth          service.IAuthService
	Recipes       service.IRecipeService
	Images        service.IImageService
	CreateLimiter *middleware.RateLimiter
	Metrics       http.Handler
	Log           *zap.Logger
}

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Recipe Box API is running",
		"version": Version,
	})
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, deps Dependencies) {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}

	// Health check endpoint (no auth required)
	router.GET("/health", HealthCheck)
	v1 := router.Group("/api/v1")
	v1.GET("/health", HealthCheck)
	if deps.Metrics != nil {
		v1.GET("/metrics", gin.WrapH(deps.Metrics))
	}

	callers := callerResolver{auth: deps.Auth}
	NewAuthHandler(deps.Auth, callers, log).RegisterRoutes(v1)
	NewRecipeHandler(deps.Recipes, deps.Auth, deps.Images, deps.CreateLimiter, callers, log).RegisterRoutes(v1)
	NewProfileHandler(deps.Auth, deps.Recipes, callers, log).RegisterRoutes(v1)
}

// callerResolver loads the user behind the token the auth middleware accepted
type callerResolver struct {
	auth service.IAuthService
}

// optional returns nil for anonymous requests and for tokens whose account no longer exists.
func (r callerResolver) optional(c *gin.Context) (*model.User, error) {
	id, ok := middleware.UserID(c)
	if !ok {
		return nil, nil
	}
	user, err := r.auth.GetUserByID(c.Request.Context(), id)
	if errors.Is(err, errs.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// required is optional but fails with errs.ErrUnauthenticated instead of returning nil
func (r callerResolver) required(c *gin.Context) (*model.User, error) {
	user, err := r.optional(c)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errs.ErrUnauthenticated
	}
	return user, nil
}
