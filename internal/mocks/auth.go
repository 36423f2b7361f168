// Package mocks holds testify mocks of the service interfaces for handler tests.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/types"
)

// MockAuthService is a mock implementation of service.IAuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) ValidateToken(token string) (*types.TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TokenClaims), args.Error(1)
}

func (m *MockAuthService) Register(ctx context.Context, req types.RegisterRequest) (model.User, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (model.User, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockAuthService) GetUserByID(ctx context.Context, id string) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockAuthService) UpdateProfile(ctx context.Context, userID string, req types.UpdateProfileRequest) (model.User, error) {
	args := m.Called(ctx, userID, req)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockAuthService) ToggleFavorite(ctx context.Context, userID, recipeID string) (model.User, error) {
	args := m.Called(ctx, userID, recipeID)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockAuthService) GenerateToken(user model.User) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}
