package database

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/gateway"
)

// Backend is an opened persistence backend
type Backend struct {
	Gateway gateway.Gateway
	// Redis is set when a redis server is reachable, whether or not it is the store.
	Redis *redis.Client

	closers []func() error
}

// Close releases every connection the backend opened
func (b *Backend) Close() error {
	var first error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// OpenBackend opens the gateway selected by cfg.StoreDriver, runs migrations for SQL
// drivers and applies the configured artificial latency.
func OpenBackend(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Backend, error) {
	b := &Backend{}
	var gw gateway.Gateway

	switch cfg.StoreDriver {
	case config.DriverMemory:
		gw = gateway.NewMemoryGateway()
	case config.DriverSQLite, config.DriverPostgres:
		db, err := Open(cfg, log)
		if err != nil {
			return nil, err
		}
		if sqlDB, err := db.DB(); err == nil {
			b.closers = append(b.closers, sqlDB.Close)
		}
		if err := RunMigrations(db, log); err != nil {
			_ = b.Close()
			return nil, err
		}
		gw = gateway.NewGormGateway(db)
	case config.DriverRedis:
		client, err := NewRedisClient(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		b.Redis = client
		b.closers = append(b.closers, client.Close)
		gw = gateway.NewRedisGateway(client, cfg.RedisKeyPrefix)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}

	b.Gateway = gateway.WithLatency(gw, cfg.GatewayDelay)
	return b, nil
}

// ConnectRedis attaches a redis client for rate limiting when REDIS_URL is set and
// the store itself is not redis. Failure is logged and tolerated.
func (b *Backend) ConnectRedis(ctx context.Context, cfg *config.Config, log *zap.Logger) {
	if b.Redis != nil || cfg.RedisURL == "" {
		return
	}
	client, err := NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Warn("redis unavailable, using in-process rate limiting", zap.Error(err))
		return
	}
	b.Redis = client
	b.closers = append(b.closers, client.Close)
}
