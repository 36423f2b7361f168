package service

import (
	"context"
	"fmt"

	"github.com/pageza/recipebox/backend/internal/errs"
	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/store"
	"github.com/pageza/recipebox/backend/internal/types"
)

// Session drives account operations on behalf of the single persisted current user.
// The CLI owns one; the HTTP API derives its caller from tokens instead.
type Session struct {
	auth  *AuthService
	store *store.SessionStore
}

// NewSession creates a session over auth and sessions
func NewSession(auth *AuthService, sessions *store.SessionStore) *Session {
	return &Session{auth: auth, store: sessions}
}

// Current returns the signed-in user or nil
func (s *Session) Current(ctx context.Context) (*model.User, error) {
	return s.store.Current(ctx)
}

// Login checks credentials and makes the user current
func (s *Session) Login(ctx context.Context, email, password string) (model.User, error) {
	user, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return model.User{}, err
	}
	if err := s.store.Set(ctx, user); err != nil {
		return model.User{}, err
	}
	return user, nil
}

// Register creates an account and makes it current
func (s *Session) Register(ctx context.Context, req types.RegisterRequest) (model.User, error) {
	user, err := s.auth.Register(ctx, req)
	if err != nil {
		return model.User{}, err
	}
	if err := s.store.Set(ctx, user); err != nil {
		return model.User{}, err
	}
	return user, nil
}

// Logout clears the current user
func (s *Session) Logout(ctx context.Context) error {
	return s.store.Clear(ctx)
}

// ToggleFavorite flips recipeID in the current user's favorites and returns the new user
func (s *Session) ToggleFavorite(ctx context.Context, recipeID string) (model.User, error) {
	cur, err := s.store.Current(ctx)
	if err != nil {
		return model.User{}, err
	}
	if cur == nil {
		return model.User{}, fmt.Errorf("must be logged in to favorite recipes: %w", errs.ErrUnauthenticated)
	}

	user, err := s.auth.ToggleFavorite(ctx, cur.ID, recipeID)
	if err != nil {
		return model.User{}, err
	}
	if err := s.store.Set(ctx, user); err != nil {
		return model.User{}, err
	}
	return user, nil
}

// UpdateProfile changes the current user's profile
func (s *Session) UpdateProfile(ctx context.Context, req types.UpdateProfileRequest) (model.User, error) {
	cur, err := s.store.Current(ctx)
	if err != nil {
		return model.User{}, err
	}
	if cur == nil {
		return model.User{}, fmt.Errorf("no user logged in: %w", errs.ErrUnauthenticated)
	}

	user, err := s.auth.UpdateProfile(ctx, cur.ID, req)
	if err != nil {
		return model.User{}, err
	}
	if err := s.store.Set(ctx, user); err != nil {
		return model.User{}, err
	}
	return user, nil
}
