package store

import (
	"context"
	"errors"

	"github.com/pageza/recipebox/backend/internal/gateway"
	"github.com/pageza/recipebox/backend/internal/model"
)

// SessionStore persists the single signed-in user under gateway.KeyCurrentUser.
type SessionStore struct {
	gw gateway.Gateway
}

// NewSessionStore creates a session store on gw
func NewSessionStore(gw gateway.Gateway) *SessionStore {
	return &SessionStore{gw: gw}
}

// Current returns the signed-in user, or nil when nobody is signed in
func (s *SessionStore) Current(ctx context.Context) (*model.User, error) {
	u, err := gateway.Load[model.User](ctx, s.gw, gateway.KeyCurrentUser, nil)
	if errors.Is(err, gateway.ErrMissing) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Set replaces the signed-in user
func (s *SessionStore) Set(ctx context.Context, u model.User) error {
	return gateway.Save(ctx, s.gw, gateway.KeyCurrentUser, u)
}

// Clear signs the current user out
func (s *SessionStore) Clear(ctx context.Context) error {
	return s.gw.Delete(ctx, gateway.KeyCurrentUser)
}
