package dashboard

import (
	"context"
	"time"

	"venue-booking-api/internal/core/cache"
	"venue-booking-api/internal/domain"
)

const cacheKey = "dashboard"

type Service struct {
	stats domain.StatsRepository
	cache *cache.Cache
	Now   func() time.Time
}

func NewService(stats domain.StatsRepository, c *cache.Cache) *Service {
	return &Service{stats: stats, cache: c, Now: func() time.Time { return time.Now().UTC() }}
}

// Get 聚合统计，配置 redis 时按 TTL 缓存
func (s *Service) Get(ctx context.Context) (*domain.DashboardStats, error) {
	return cache.GetOrLoadJSON(s.cache, ctx, cacheKey, 0, func(ctx context.Context) (*domain.DashboardStats, error) {
		return s.stats.Dashboard(ctx, s.Now())
	})
}
