package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipebox/backend/internal/filter"
	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/types"
)

// MockRecipeService is a mock implementation of service.IRecipeService
type MockRecipeService struct {
	mock.Mock
}

func recipes(args mock.Arguments) ([]model.Recipe, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}

func (m *MockRecipeService) ListRecipes(ctx context.Context, criteria filter.Criteria) ([]model.Recipe, error) {
	return recipes(m.Called(ctx, criteria))
}

func (m *MockRecipeService) GetRecipe(ctx context.Context, id string) (model.Recipe, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Recipe), args.Error(1)
}

func (m *MockRecipeService) ListByOwner(ctx context.Context, userID string) ([]model.Recipe, error) {
	return recipes(m.Called(ctx, userID))
}

func (m *MockRecipeService) ListFavorites(ctx context.Context, user model.User) ([]model.Recipe, error) {
	return recipes(m.Called(ctx, user))
}

func (m *MockRecipeService) CreateRecipe(ctx context.Context, caller *model.User, in types.RecipeInput) (model.Recipe, error) {
	args := m.Called(ctx, caller, in)
	return args.Get(0).(model.Recipe), args.Error(1)
}

func (m *MockRecipeService) UpdateRecipe(ctx context.Context, caller *model.User, id string, patch types.RecipePatch) (model.Recipe, error) {
	args := m.Called(ctx, caller, id, patch)
	return args.Get(0).(model.Recipe), args.Error(1)
}

func (m *MockRecipeService) DeleteRecipe(ctx context.Context, caller *model.User, id string) error {
	return m.Called(ctx, caller, id).Error(0)
}

// MockImageService is a mock implementation of service.IImageService
type MockImageService struct {
	mock.Mock
}

func (m *MockImageService) UploadRecipeImage(ctx context.Context, caller *model.User, recipeID string, body io.Reader) (model.Recipe, error) {
	args := m.Called(ctx, caller, recipeID, body)
	return args.Get(0).(model.Recipe), args.Error(1)
}

func (m *MockImageService) ImportRecipeImage(ctx context.Context, caller *model.User, recipeID, rawURL string) (model.Recipe, error) {
	args := m.Called(ctx, caller, recipeID, rawURL)
	return args.Get(0).(model.Recipe), args.Error(1)
}
