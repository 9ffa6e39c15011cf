package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/horarium/timetable-api/internal/repository"
	apperrors "github.com/horarium/timetable-api/pkg/errors"
)

// CacheService memoizes scoring runs. A nil repository or disabled flag
// degrades to a no-op so the engine works without Redis.
type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) bool
	Set(ctx context.Context, key string, value interface{})
	Enabled() bool
}

type cacheService struct {
	repo    repository.CacheRepository
	ttl     time.Duration
	metrics MetricsService
	logger  *zap.Logger
	enabled bool
}

// NewCacheService wires the memoization layer.
func NewCacheService(repo repository.CacheRepository, ttl time.Duration, metrics MetricsService, logger *zap.Logger) CacheService {
	return &cacheService{
		repo:    repo,
		ttl:     ttl,
		metrics: metrics,
		logger:  logger,
		enabled: repo != nil,
	}
}

func (s *cacheService) Enabled() bool {
	return s.enabled
}

// Get reports whether the key was found and decoded into dest. Backend
// failures are logged and treated as misses.
func (s *cacheService) Get(ctx context.Context, key string, dest interface{}) bool {
	if !s.enabled {
		return false
	}
	err := s.repo.Get(ctx, key, dest)
	if err == nil {
		s.metrics.ObserveCacheHit()
		return true
	}
	if !errors.Is(err, apperrors.ErrCacheMiss) {
		s.logger.Warn("cache lookup failed", zap.String("key", key), zap.Error(err))
	}
	s.metrics.ObserveCacheMiss()
	return false
}

// Set stores the value best-effort; failures only log.
func (s *cacheService) Set(ctx context.Context, key string, value interface{}) {
	if !s.enabled {
		return
	}
	if err := s.repo.Set(ctx, key, value, s.ttl); err != nil {
		s.logger.Warn("cache store failed", zap.String("key", key), zap.Error(err))
	}
}
