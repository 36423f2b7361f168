// Package gateway persists whole collections as serialized text under fixed keys.
//
// Backends only move bytes; Load and Save handle JSON encoding and seeding. Every
// write overwrites the stored value for its key unconditionally, so the last write wins.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Keys the application persists its state under.
const (
	KeyRecipes     = "recipes"
	KeyUsers       = "users"
	KeyCurrentUser = "currentUser"
)

// ErrMissing is returned by Get when no value is stored under a key.
var ErrMissing = errors.New("gateway: key not found")

// Gateway is a key-value backend holding serialized collections.
type Gateway interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Load decodes the value stored under key. When nothing is stored and seed is
// non-nil, the seed is written back and returned; with a nil seed ErrMissing is returned.
func Load[T any](ctx context.Context, gw Gateway, key string, seed func() T) (T, error) {
	var v T
	data, err := gw.Get(ctx, key)
	if errors.Is(err, ErrMissing) {
		if seed == nil {
			return v, err
		}
		v = seed()
		if err := Save(ctx, gw, key, v); err != nil {
			return v, fmt.Errorf("seed %s: %w", key, err)
		}
		return v, nil
	}
	if err != nil {
		return v, fmt.Errorf("load %s: %w", key, err)
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("decode %s: %w", key, err)
	}
	return v, nil
}

// Save serializes v and overwrites whatever is stored under key
func Save[T any](ctx context.Context, gw Gateway, key string, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := gw.Put(ctx, key, data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
