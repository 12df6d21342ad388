package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/glodetung92/ECSite/domain"
)

// Throttled actions.
const (
	ThrottleLogin  = "login"
	ThrottleForgot = "forgot"
)

type ThrottleConfig struct {
	LoginLimit  int
	ForgotLimit int
	Window      time.Duration
}

// ThrottleServiceImpl implements domain.ThrottleService with
// fixed-window counters in Redis. Authentication must not depend on
// cache availability, so a missing or unreachable Redis fails open.
type ThrottleServiceImpl struct {
	redisClient *redis.Client
	config      ThrottleConfig
	logger      *zap.Logger
}

// NewThrottleService creates a new Redis-based throttle service
func NewThrottleService(redisClient *redis.Client, config ThrottleConfig, logger *zap.Logger) domain.ThrottleService {
	return &ThrottleServiceImpl{
		redisClient: redisClient,
		config:      config,
		logger:      logger,
	}
}

// Allow implements domain.ThrottleService
func (s *ThrottleServiceImpl) Allow(ctx context.Context, action, key string) (bool, error) {
	limit := s.limitFor(action)
	if limit <= 0 || s.redisClient == nil {
		return true, nil
	}

	counterKey := fmt.Sprintf("throttle:%s:%s", action, key)
	count, err := s.redisClient.Incr(ctx, counterKey).Result()
	if err != nil {
		s.logger.Warn("throttle counter unavailable, failing open",
			zap.String("action", action), zap.Error(err))
		return true, nil
	}

	// First hit in the window starts the clock.
	if count == 1 {
		if err := s.redisClient.Expire(ctx, counterKey, s.config.Window).Err(); err != nil {
			s.logger.Warn("failed to set throttle window", zap.Error(err))
		}
	}

	return count <= int64(limit), nil
}

func (s *ThrottleServiceImpl) limitFor(action string) int {
	switch action {
	case ThrottleLogin:
		return s.config.LoginLimit
	case ThrottleForgot:
		return s.config.ForgotLimit
	default:
		return 0
	}
}
