package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/recipebox/backend/internal/middleware"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/types"
)

// ProfileHandler serves the caller's profile, favorites and own recipes
type ProfileHandler struct {
	authService   service.IAuthService
	recipeService service.IRecipeService
	callers       callerResolver
	log           *zap.Logger
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(authService service.IAuthService, recipeService service.IRecipeService, callers callerResolver, log *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		authService:   authService,
		recipeService: recipeService,
		callers:       callers,
		log:           log,
	}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	profile := router.Group("/profile")
	profile.Use(middleware.AuthMiddleware(h.authService))
	{
		profile.GET("", h.GetProfile)
		profile.PUT("", h.UpdateProfile)
		profile.GET("/favorites", h.GetFavorites)
		profile.GET("/recipes", h.GetUserRecipes)
	}
}

// GetProfile returns the caller's profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	user, err := h.callers.required(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": user})
}

// UpdateProfile changes username, bio or profile image
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req types.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	caller, err := h.callers.required(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), caller.ID, req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": user})
}

// GetFavorites lists the caller's favorite recipes that still exist
func (h *ProfileHandler) GetFavorites(c *gin.Context) {
	caller, err := h.callers.required(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	recipes, err := h.recipeService.ListFavorites(c.Request.Context(), *caller)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": service.Views(recipes, caller)})
}

// GetUserRecipes lists the recipes the caller created
func (h *ProfileHandler) GetUserRecipes(c *gin.Context) {
	caller, err := h.callers.required(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	recipes, err := h.recipeService.ListByOwner(c.Request.Context(), caller.ID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": service.Views(recipes, caller)})
}
