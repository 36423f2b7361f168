package gateway_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipebox/backend/internal/gateway"
	"github.com/pageza/recipebox/backend/internal/testhelpers"
)

// exerciseBackend runs the contract every gateway backend has to meet
func exerciseBackend(t *testing.T, gw gateway.Gateway) {
	ctx := context.Background()

	_, err := gw.Get(ctx, gateway.KeyCurrentUser)
	assert.ErrorIs(t, err, gateway.ErrMissing)

	require.NoError(t, gw.Put(ctx, gateway.KeyCurrentUser, []byte(`{"id":"1"}`)))
	require.NoError(t, gw.Put(ctx, gateway.KeyCurrentUser, []byte(`{"id":"2"}`)))

	got, err := gw.Get(ctx, gateway.KeyCurrentUser)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"2"}`, string(got))

	require.NoError(t, gw.Delete(ctx, gateway.KeyCurrentUser))
	_, err = gw.Get(ctx, gateway.KeyCurrentUser)
	assert.ErrorIs(t, err, gateway.ErrMissing)

	// Deleting an absent key is not an error
	assert.NoError(t, gw.Delete(ctx, gateway.KeyCurrentUser))
}

func TestMemoryBackend(t *testing.T) {
	exerciseBackend(t, gateway.NewMemoryGateway())
}

func TestPostgresBackend(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	exerciseBackend(t, gateway.NewGormGateway(db))
}

func TestRedisBackend(t *testing.T) {
	client := testhelpers.SetupTestRedis(t)
	gw := gateway.NewRedisGateway(client, "test:")
	exerciseBackend(t, gw)

	// Keys are namespaced by the prefix
	require.NoError(t, gw.Put(context.Background(), gateway.KeyRecipes, []byte("[]")))
	n, err := client.Exists(context.Background(), "test:recipes").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
