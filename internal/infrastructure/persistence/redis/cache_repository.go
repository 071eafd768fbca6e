// Package redis provides the Redis-backed cache used for copilot answers
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/savory/api/internal/infrastructure/config"
	"github.com/savory/api/internal/ports/outbound"
)

// CacheRepository implements the cache repository interface on a Redis client
type CacheRepository struct {
	client redis.UniversalClient
	logger *zap.Logger
}

// NewCacheRepository connects to Redis and verifies the connection
func NewCacheRepository(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*CacheRepository, error) {
	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:           []string{cfg.GetRedisAddr()},
		Password:        cfg.Redis.Password,
		DB:              cfg.Redis.Database,
		PoolSize:        cfg.Redis.PoolSize,
		DialTimeout:     cfg.Redis.DialTimeout,
		ConnMaxIdleTime: 5 * time.Minute,
		PoolTimeout:     10 * time.Second,
	})

	repo := NewCacheRepositoryFromClient(client, logger)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := repo.Ping(pingCtx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis cache connected", zap.String("addr", cfg.GetRedisAddr()))
	return repo, nil
}

// NewCacheRepositoryFromClient wraps an existing client
func NewCacheRepositoryFromClient(client redis.UniversalClient, logger *zap.Logger) *CacheRepository {
	return &CacheRepository{client: client, logger: logger.Named("redis-cache")}
}

var _ outbound.CacheRepository = (*CacheRepository)(nil)

// Get retrieves a value; a missing key yields outbound.ErrCacheMiss
func (r *CacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, outbound.ErrCacheMiss
	}
	if err != nil {
		r.logger.Debug("Cache get failed", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	return data, nil
}

// Set stores a value with TTL
func (r *CacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		r.logger.Error("Cache set failed", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

// Delete removes a value from cache
func (r *CacheRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.Error("Cache delete failed", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

// Ping checks the connection
func (r *CacheRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the client's connections
func (r *CacheRepository) Close() error {
	return r.client.Close()
}
