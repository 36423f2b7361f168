package service

import (
	"github.com/pageza/recipebox/backend/internal/model"
)

// IsOwner reports whether user created recipe. A nil user owns nothing.
func IsOwner(recipe *model.Recipe, user *model.User) bool {
	return user != nil && recipe != nil && user.ID != "" && user.ID == recipe.UserID
}

// IsFavorite reports whether recipe is in the user's favorites. A nil user has none.
func IsFavorite(recipe *model.Recipe, user *model.User) bool {
	return user != nil && recipe != nil && user.Favorites.Contains(recipe.ID)
}

// ToggleFavorite returns a copy of user with recipeID added to or removed from its
// favorites. user itself is left untouched.
func ToggleFavorite(user model.User, recipeID string) model.User {
	out := user.Clone()
	if user.Favorites.Contains(recipeID) {
		out.Favorites = user.Favorites.Without(recipeID)
	} else {
		out.Favorites = user.Favorites.With(recipeID)
	}
	return out
}

// RecipeView is a recipe as seen by a particular caller
type RecipeView struct {
	Recipe     model.Recipe `json:"recipe"`
	IsOwner    bool         `json:"is_owner"`
	IsFavorite bool         `json:"is_favorite"`
}

// View resolves ownership and favorite state of recipe for user
func View(recipe model.Recipe, user *model.User) RecipeView {
	return RecipeView{
		Recipe:     recipe,
		IsOwner:    IsOwner(&recipe, user),
		IsFavorite: IsFavorite(&recipe, user),
	}
}

// Views resolves every recipe for user, keeping order
func Views(recipes []model.Recipe, user *model.User) []RecipeView {
	out := make([]RecipeView, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, View(r, user))
	}
	return out
}
