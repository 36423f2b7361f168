package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/pageza/recipebox/backend/internal/errs"
	"github.com/pageza/recipebox/backend/internal/filter"
	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/store"
	"github.com/pageza/recipebox/backend/internal/types"
)

// RecipeService handles recipe operations
type RecipeService struct {
	recipes   *store.RecipeStore
	sanitizer *Sanitizer
	log       *zap.Logger
	now       func() time.Time
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(recipes *store.RecipeStore, sanitizer *Sanitizer, log *zap.Logger) *RecipeService {
	if sanitizer == nil {
		sanitizer = NewSanitizer()
	}
	return &RecipeService{
		recipes:   recipes,
		sanitizer: sanitizer,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// ListRecipes returns the recipes matching criteria in stored order
func (s *RecipeService) ListRecipes(ctx context.Context, criteria filter.Criteria) ([]model.Recipe, error) {
	all, err := s.recipes.All(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Apply(all, criteria), nil
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id string) (model.Recipe, error) {
	return s.recipes.Find(ctx, id)
}

// ListByOwner returns the recipes created by userID
func (s *RecipeService) ListByOwner(ctx context.Context, userID string) ([]model.Recipe, error) {
	all, err := s.recipes.All(ctx)
	if err != nil {
		return nil, err
	}
	out := []model.Recipe{}
	for _, r := range all {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

// ListFavorites returns the user's favorite recipes in stored order.
// Favorites pointing at deleted recipes are skipped.
func (s *RecipeService) ListFavorites(ctx context.Context, user model.User) ([]model.Recipe, error) {
	all, err := s.recipes.All(ctx)
	if err != nil {
		return nil, err
	}
	out := []model.Recipe{}
	for _, r := range all {
		if user.Favorites.Contains(r.ID) {
			out = append(out, r)
		}
	}
	return out, nil
}

// prepare normalizes, sanitizes and validates r
func (s *RecipeService) prepare(r *model.Recipe) error {
	s.sanitizer.Recipe(r)
	normalizeRecipe(r)
	return ValidateRecipe(r)
}

// CreateRecipe validates in and appends it to the store, owned by caller
func (s *RecipeService) CreateRecipe(ctx context.Context, caller *model.User, in types.RecipeInput) (model.Recipe, error) {
	if caller == nil {
		return model.Recipe{}, errs.ErrUnauthenticated
	}

	now := s.now()
	recipe := model.Recipe{
		Title:        in.Title,
		Description:  in.Description,
		Ingredients:  in.Ingredients,
		Instructions: in.Instructions,
		Image:        in.Image,
		CookingTime:  in.CookingTime,
		Servings:     in.Servings,
		Difficulty:   in.Difficulty,
		Dietary:      in.Dietary,
		Rating:       0,
		Reviews:      []model.Review{},
		UserID:       caller.ID,
		Creator:      caller.Username,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.prepare(&recipe); err != nil {
		return model.Recipe{}, err
	}
	if recipe.Image == "" {
		recipe.Image = store.DefaultImage
	}

	err := s.recipes.Mutate(ctx, func(all []model.Recipe) ([]model.Recipe, error) {
		recipe.ID = s.recipes.NewID(all)
		return append(all, recipe), nil
	})
	if err != nil {
		return model.Recipe{}, err
	}

	s.log.Info("recipe created", zap.String("recipe_id", recipe.ID), zap.String("user_id", caller.ID))
	return recipe, nil
}

// applyPatch overlays the fields set in p onto r
func applyPatch(r *model.Recipe, p types.RecipePatch) {
	if p.Title != nil {
		r.Title = *p.Title
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.Ingredients != nil {
		r.Ingredients = append([]string(nil), (*p.Ingredients)...)
	}
	if p.Instructions != nil {
		r.Instructions = append(model.Instructions(nil), (*p.Instructions)...)
	}
	if p.Image != nil {
		r.Image = *p.Image
	}
	if p.CookingTime != nil {
		r.CookingTime = *p.CookingTime
	}
	if p.Servings != nil {
		r.Servings = *p.Servings
	}
	if p.Difficulty != nil {
		r.Difficulty = *p.Difficulty
	}
	if p.Dietary != nil {
		r.Dietary = append([]string(nil), (*p.Dietary)...)
	}
}

// checkOwner gates a change to recipe on the caller owning it
func checkOwner(recipe *model.Recipe, caller *model.User) error {
	if caller == nil {
		return errs.ErrUnauthenticated
	}
	if !IsOwner(recipe, caller) {
		return errs.ErrPermissionDenied
	}
	return nil
}

// UpdateRecipe merges patch over the stored recipe. Only the owner may update;
// the id and the creator never change.
func (s *RecipeService) UpdateRecipe(ctx context.Context, caller *model.User, id string, patch types.RecipePatch) (model.Recipe, error) {
	var updated model.Recipe
	err := s.recipes.Mutate(ctx, func(all []model.Recipe) ([]model.Recipe, error) {
		i := store.IndexOf(all, id)
		if i < 0 {
			return nil, errs.ErrNotFound
		}
		if err := checkOwner(&all[i], caller); err != nil {
			return nil, err
		}

		merged := all[i].Clone()
		applyPatch(&merged, s.sanitizer.Patch(patch))
		normalizeRecipe(&merged)
		if err := ValidateRecipe(&merged); err != nil {
			return nil, err
		}
		if merged.Image == "" {
			merged.Image = store.DefaultImage
		}
		merged.ID = all[i].ID
		merged.UserID = all[i].UserID
		merged.Creator = all[i].Creator
		merged.CreatedAt = all[i].CreatedAt
		merged.UpdatedAt = s.now()

		all[i] = merged
		updated = merged
		return all, nil
	})
	if err != nil {
		return model.Recipe{}, err
	}

	s.log.Info("recipe updated", zap.String("recipe_id", id), zap.String("user_id", caller.ID))
	return updated, nil
}

// DeleteRecipe removes a recipe owned by caller. Favorites referencing it are left as they are.
func (s *RecipeService) DeleteRecipe(ctx context.Context, caller *model.User, id string) error {
	err := s.recipes.Mutate(ctx, func(all []model.Recipe) ([]model.Recipe, error) {
		i := store.IndexOf(all, id)
		if i < 0 {
			return nil, errs.ErrNotFound
		}
		if err := checkOwner(&all[i], caller); err != nil {
			return nil, err
		}
		return append(all[:i:i], all[i+1:]...), nil
	})
	if err != nil {
		return err
	}

	s.log.Info("recipe deleted", zap.String("recipe_id", id), zap.String("user_id", caller.ID))
	return nil
}

// ResetRecipes restores the seed collection
func (s *RecipeService) ResetRecipes(ctx context.Context) error {
	return s.recipes.Reset(ctx)
}
