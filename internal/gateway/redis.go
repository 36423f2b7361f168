package gateway

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisGateway stores each collection as a plain redis string under prefix+key.
type RedisGateway struct {
	client *redis.Client
	prefix string
}

// NewRedisGateway creates a gateway on client. prefix namespaces the keys, e.g. "recipebox:".
func NewRedisGateway(client *redis.Client, prefix string) *RedisGateway {
	return &RedisGateway{client: client, prefix: prefix}
}

func (r *RedisGateway) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMissing
	}
	return data, err
}

func (r *RedisGateway) Put(ctx context.Context, key string, value []byte) error {
	return r.client.Set(ctx, r.prefix+key, value, 0).Err()
}

func (r *RedisGateway) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.prefix+key).Err()
}
