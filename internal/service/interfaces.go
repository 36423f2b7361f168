package service

import (
	"context"
	"io"

	"github.com/pageza/recipebox/backend/internal/filter"
	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/types"
)

// IAuthService defines the interface for authentication and account operations
type IAuthService interface {
	Register(ctx context.Context, req types.RegisterRequest) (model.User, error)
	Login(ctx context.Context, email, password string) (model.User, error)
	GetUserByID(ctx context.Context, id string) (model.User, error)
	UpdateProfile(ctx context.Context, userID string, req types.UpdateProfileRequest) (model.User, error)
	ToggleFavorite(ctx context.Context, userID, recipeID string) (model.User, error)
	GenerateToken(user model.User) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	ListRecipes(ctx context.Context, criteria filter.Criteria) ([]model.Recipe, error)
	GetRecipe(ctx context.Context, id string) (model.Recipe, error)
	ListByOwner(ctx context.Context, userID string) ([]model.Recipe, error)
	ListFavorites(ctx context.Context, user model.User) ([]model.Recipe, error)
	CreateRecipe(ctx context.Context, caller *model.User, in types.RecipeInput) (model.Recipe, error)
	UpdateRecipe(ctx context.Context, caller *model.User, id string, patch types.RecipePatch) (model.Recipe, error)
	DeleteRecipe(ctx context.Context, caller *model.User, id string) error
}

// IImageService defines the interface for recipe photo operations
type IImageService interface {
	UploadRecipeImage(ctx context.Context, caller *model.User, recipeID string, body io.Reader) (model.Recipe, error)
	ImportRecipeImage(ctx context.Context, caller *model.User, recipeID, rawURL string) (model.Recipe, error)
}

var (
	_ IAuthService   = (*AuthService)(nil)
	_ IRecipeService = (*RecipeService)(nil)
	_ IImageService  = (*ImageService)(nil)
)
