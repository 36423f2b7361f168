package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/recipebox/backend/internal/filter"
	"github.com/pageza/recipebox/backend/internal/middleware"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/types"
)

// RecipeHandler serves recipe listing, CRUD, favorites and photos
type RecipeHandler struct {
	recipeService service.IRecipeService
	authService   service.IAuthService
	imageService  service.IImageService
	createLimiter *middleware.RateLimiter
	callers       callerResolver
	log           *zap.Logger
}

// NewRecipeHandler creates a RecipeHandler. createLimiter may be nil.
func NewRecipeHandler(
	recipeService service.IRecipeService,
	authService service.IAuthService,
	imageService service.IImageService,
	createLimiter *middleware.RateLimiter,
	callers callerResolver,
	log *zap.Logger,
) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		authService:   authService,
		imageService:  imageService,
		createLimiter: createLimiter,
		callers:       callers,
		log:           log,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	required := middleware.AuthMiddleware(h.authService)
	create := []gin.HandlerFunc{required}
	if h.createLimiter != nil {
		create = append(create, h.createLimiter.RateLimitMiddleware())
	}
	create = append(create, h.CreateRecipe)

	recipes := router.Group("/recipes")
	{
		recipes.GET("", middleware.OptionalAuth(h.authService), h.ListRecipes)
		recipes.GET("/:id", middleware.OptionalAuth(h.authService), h.GetRecipe)
		recipes.POST("", create...)
		recipes.PUT("/:id", required, h.UpdateRecipe)
		recipes.DELETE("/:id", required, h.DeleteRecipe)
		recipes.POST("/:id/favorite", required, h.ToggleFavorite)
		recipes.POST("/:id/image", required, h.SetImage)
	}
}

// criteriaFromQuery reads q, dietary and category from the query string
func criteriaFromQuery(c *gin.Context) (filter.Criteria, error) {
	category, err := filter.ParseCategory(c.Query("category"))
	if err != nil {
		return filter.Criteria{}, err
	}
	return filter.Criteria{
		Query:    c.Query("q"),
		Tags:     filter.ParseTags(c.Query("dietary")),
		Category: category,
	}, nil
}

// ListRecipes returns the recipes matching the query with the caller's view of each
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	criteria, err := criteriaFromQuery(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	caller, err := h.callers.optional(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	recipes, err := h.recipeService.ListRecipes(c.Request.Context(), criteria)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recipes": service.Views(recipes, caller),
	})
}

// GetRecipe returns one recipe with the caller's view of it
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	caller, err := h.callers.optional(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, service.View(recipe, caller))
}

// CreateRecipe adds a recipe owned by the caller
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var in types.RecipeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	caller, err := h.callers.required(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	recipe, err := h.recipeService.CreateRecipe(c.Request.Context(), caller, in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"recipe": recipe})
}

// UpdateRecipe merges the fields in the body into the caller's recipe
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	var patch types.RecipePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	caller, err := h.callers.required(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	recipe, err := h.recipeService.UpdateRecipe(c.Request.Context(), caller, c.Param("id"), patch)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

// DeleteRecipe removes the caller's recipe
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	caller, err := h.callers.required(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	if err := h.recipeService.DeleteRecipe(c.Request.Context(), caller, c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ToggleFavorite adds the recipe to the caller's favorites or removes it
func (h *RecipeHandler) ToggleFavorite(c *gin.Context) {
	caller, err := h.callers.required(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	id := c.Param("id")
	user, err := h.authService.ToggleFavorite(c.Request.Context(), caller.ID, id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"is_favorite": user.Favorites.Contains(id),
		"favorites":   user.Favorites,
	})
}

// SetImage replaces the recipe photo, either from a multipart "image" upload
// or by importing the image at the URL in a JSON body.
func (h *RecipeHandler) SetImage(c *gin.Context) {
	caller, err := h.callers.required(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	id := c.Param("id")

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, service.MaxImageBytes+1<<20)
		header, err := c.FormFile("image")
		if err != nil {
			badRequest(c, "image file is required")
			return
		}
		file, err := header.Open()
		if err != nil {
			badRequest(c, "image file could not be read")
			return
		}
		defer file.Close()

		recipe, err := h.imageService.UploadRecipeImage(c.Request.Context(), caller, id, file)
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"recipe": recipe})
		return
	}

	var req types.ImportImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	recipe, err := h.imageService.ImportRecipeImage(c.Request.Context(), caller, id, req.URL)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}
