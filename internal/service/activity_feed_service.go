package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/fitra-dev/jejak-api/internal/dto"
	"github.com/fitra-dev/jejak-api/internal/observability"
	"github.com/fitra-dev/jejak-api/internal/repository"
)

// ActivityFeedService serves the recent-activity stream with a short-lived
// cache in front of the log table.
type ActivityFeedService interface {
	Recent(ctx context.Context, window time.Duration, limit int) (dto.ActivityFeedResponse, error)
}

type activityFeedService struct {
	repo   repository.ActivityLogRepository
	cache  *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewActivityFeedService builds the feed service. A nil cache client
// degrades to uncached reads.
func NewActivityFeedService(repo repository.ActivityLogRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) ActivityFeedService {
	if ttl <= 0 {
		ttl = 45 * time.Second
	}
	return &activityFeedService{
		repo:   repo,
		cache:  cache,
		ttl:    ttl,
		logger: logger.With().Str("component", "activity_feed_service").Logger(),
	}
}

func (s *activityFeedService) Recent(ctx context.Context, window time.Duration, limit int) (dto.ActivityFeedResponse, error) {
	start := time.Now()
	defer func() {
		observability.FeedLatency().Observe(time.Since(start).Seconds())
	}()

	if window <= 0 {
		window = 24 * time.Hour
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	since := time.Now().Add(-window)
	cacheKey := fmt.Sprintf("activity:feed:%s:%d", window, limit)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
			var response dto.ActivityFeedResponse
			if err := json.Unmarshal([]byte(cached), &response); err == nil {
				response.CacheHit = true
				observability.FeedRequests().WithLabelValues("hit").Inc()
				return response, nil
			}
		}
	}

	entries, _, err := s.repo.List(ctx, repository.ActivityLogFilter{
		Since:    since,
		PageSize: limit,
	})
	if err != nil {
		return dto.ActivityFeedResponse{}, err
	}

	response := dto.ActivityFeedResponse{
		Items: dto.NewActivityResponses(entries),
		Since: since,
	}

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.ttl).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to cache activity feed")
			}
		}
	}

	observability.FeedRequests().WithLabelValues("miss").Inc()

	return response, nil
}
