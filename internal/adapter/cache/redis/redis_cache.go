package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/muskan-fatima97/ClassyShop/internal/port/cache"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func NewRedisClient(addr, password string, logger *zap.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", zap.String("address", addr), zap.Error(err))
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}
	logger.Info("Successfully connected to Redis", zap.String("address", addr))
	return rdb, nil
}

// redisCacheRepository namespaces every key under a resource prefix so
// Flush can scan-and-delete one resource type without touching others.
type redisCacheRepository struct {
	client *redis.Client
	prefix string
	logger *zap.Logger
}

func NewRedisCacheRepository(client *redis.Client, prefix string, logger *zap.Logger) cache.CacheRepository {
	return &redisCacheRepository{
		client: client,
		prefix: prefix,
		logger: logger,
	}
}

func (r *redisCacheRepository) key(key string) string {
	return r.prefix + ":" + key
}

func (r *redisCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, cache.ErrNotFound
		}
		r.logger.Error("Redis Get operation failed", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("redisCacheRepository.Get for key '%s': %w", key, err)
	}
	return val, nil
}

func (r *redisCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, r.key(key), value, ttl).Err(); err != nil {
		r.logger.Error("Redis Set operation failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("redisCacheRepository.Set for key '%s': %w", key, err)
	}
	return nil
}

func (r *redisCacheRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		r.logger.Error("Redis Del operation failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("redisCacheRepository.Delete for key '%s': %w", key, err)
	}
	return nil
}

func (r *redisCacheRepository) Flush(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, r.prefix+":*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		r.logger.Error("Redis Scan operation failed", zap.String("prefix", r.prefix), zap.Error(err))
		return fmt.Errorf("redisCacheRepository.Flush scan for prefix '%s': %w", r.prefix, err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		r.logger.Error("Redis Del operation failed during flush", zap.String("prefix", r.prefix), zap.Error(err))
		return fmt.Errorf("redisCacheRepository.Flush delete for prefix '%s': %w", r.prefix, err)
	}
	return nil
}
