// Package store owns the recipe, user and session collections persisted through the gateway.
package store

import (
	"context"
	"sync"

	"github.com/pageza/recipebox/backend/internal/errs"
	"github.com/pageza/recipebox/backend/internal/gateway"
	"github.com/pageza/recipebox/backend/internal/model"
)

// RecipeStore is the full recipe collection, stored as one list under gateway.KeyRecipes.
type RecipeStore struct {
	gw   gateway.Gateway
	seed func() []model.Recipe
	ids  *IDGenerator

	// mu serializes read-modify-write cycles within the process
	mu sync.Mutex
}

// NewRecipeStore creates a store on gw. seed provides the collection written on first load.
func NewRecipeStore(gw gateway.Gateway, seed func() []model.Recipe) *RecipeStore {
	if seed == nil {
		seed = func() []model.Recipe { return []model.Recipe{} }
	}
	return &RecipeStore{gw: gw, seed: seed, ids: NewIDGenerator()}
}

func (s *RecipeStore) load(ctx context.Context) ([]model.Recipe, error) {
	recipes, err := gateway.Load(ctx, s.gw, gateway.KeyRecipes, s.seed)
	if err != nil {
		return nil, err
	}
	if recipes == nil {
		recipes = []model.Recipe{}
	}
	return recipes, nil
}

// All returns every recipe in stored order
func (s *RecipeStore) All(ctx context.Context) ([]model.Recipe, error) {
	return s.load(ctx)
}

// Find returns the recipe with id or errs.ErrNotFound
func (s *RecipeStore) Find(ctx context.Context, id string) (model.Recipe, error) {
	recipes, err := s.load(ctx)
	if err != nil {
		return model.Recipe{}, err
	}
	if i := indexOf(recipes, id); i >= 0 {
		return recipes[i], nil
	}
	return model.Recipe{}, errs.ErrNotFound
}

// Mutate loads the collection, lets fn transform it and saves the result.
// Nothing is written when fn returns an error.
func (s *RecipeStore) Mutate(ctx context.Context, fn func([]model.Recipe) ([]model.Recipe, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	recipes, err := s.load(ctx)
	if err != nil {
		return err
	}
	updated, err := fn(recipes)
	if err != nil {
		return err
	}
	return gateway.Save(ctx, s.gw, gateway.KeyRecipes, updated)
}

// NewID returns an id not used by any recipe in recipes
func (s *RecipeStore) NewID(recipes []model.Recipe) string {
	id := s.ids.Next()
	for indexOf(recipes, id) >= 0 {
		id = s.ids.Next()
	}
	return id
}

// Reset overwrites the collection with the seed
func (s *RecipeStore) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return gateway.Save(ctx, s.gw, gateway.KeyRecipes, s.seed())
}

// IndexOf returns the position of the recipe with id, or -1
func IndexOf(recipes []model.Recipe, id string) int {
	return indexOf(recipes, id)
}

func indexOf(recipes []model.Recipe, id string) int {
	for i := range recipes {
		if recipes[i].ID == id {
			return i
		}
	}
	return -1
}
