package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/horarium/timetable-api/pkg/errors"
)

// CacheRepository abstracts the memoization backend for scoring runs.
type CacheRepository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

type redisCacheRepository struct {
	client *redis.Client
}

// NewRedisCacheRepository wraps a Redis client with JSON serialization.
func NewRedisCacheRepository(client *redis.Client) CacheRepository {
	return &redisCacheRepository{client: client}
}

func (r *redisCacheRepository) Get(ctx context.Context, key string, dest interface{}) error {
	payload, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return apperrors.ErrCacheMiss
	}
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "cache get failed")
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "cache payload decode failed")
	}
	return nil
}

func (r *redisCacheRepository) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "cache payload encode failed")
	}
	if err := r.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "cache set failed")
	}
	return nil
}

func (r *redisCacheRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "cache delete failed")
	}
	return nil
}

func (r *redisCacheRepository) Close() error {
	return r.client.Close()
}
