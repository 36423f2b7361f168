package types

import (
	"github.com/pageza/recipebox/backend/internal/model"
)

// RecipeInput is the body for creating a recipe. It is also the format of recipe files
// handed to the CLI, so it carries yaml tags as well.
type RecipeInput struct {
	Title        string             `json:"title" yaml:"title"`
	Description  string             `json:"description" yaml:"description"`
	Ingredients  []string           `json:"ingredients" yaml:"ingredients"`
	Instructions model.Instructions `json:"instructions" yaml:"instructions"`
	Image        string             `json:"image" yaml:"image"`
	CookingTime  int                `json:"cooking_time" yaml:"cooking_time"`
	Servings     int                `json:"servings" yaml:"servings"`
	Difficulty   model.Difficulty   `json:"difficulty" yaml:"difficulty"`
	Dietary      []string           `json:"dietary" yaml:"dietary"`
}

// RecipePatch is the body for updating a recipe. Nil fields keep their current value.
type RecipePatch struct {
	Title        *string             `json:"title,omitempty" yaml:"title,omitempty"`
	Description  *string             `json:"description,omitempty" yaml:"description,omitempty"`
	Ingredients  *[]string           `json:"ingredients,omitempty" yaml:"ingredients,omitempty"`
	Instructions *model.Instructions `json:"instructions,omitempty" yaml:"instructions,omitempty"`
	Image        *string             `json:"image,omitempty" yaml:"image,omitempty"`
	CookingTime  *int                `json:"cooking_time,omitempty" yaml:"cooking_time,omitempty"`
	Servings     *int                `json:"servings,omitempty" yaml:"servings,omitempty"`
	Difficulty   *model.Difficulty   `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
	Dietary      *[]string           `json:"dietary,omitempty" yaml:"dietary,omitempty"`
}

// RegisterRequest represents the request body for registration
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Username string `json:"username" binding:"required"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest represents a request to update a user's profile
type UpdateProfileRequest struct {
	Username     *string `json:"username,omitempty"`
	Bio          *string `json:"bio,omitempty"`
	ProfileImage *string `json:"profile_image,omitempty"`
}

// ImportImageRequest asks the server to fetch a recipe photo from a remote URL
type ImportImageRequest struct {
	URL string `json:"url" binding:"required"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	User  model.User `json:"user"`
	Token string     `json:"token"`
}
