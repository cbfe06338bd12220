package alerts

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SubmissionLimiter throttles public survey submissions per client IP.
type SubmissionLimiter struct {
	rdb *redis.Client
}

// SubmissionLimitConfig defines the submission rate limit rules
type SubmissionLimitConfig struct {
	MaxSubmissions int
	Window         time.Duration
}

// DefaultSubmissionLimitConfig allows a handful of submissions per minute,
// enough for shared office IPs without leaving the endpoint open to abuse.
func DefaultSubmissionLimitConfig() SubmissionLimitConfig {
	return SubmissionLimitConfig{
		MaxSubmissions: 10,
		Window:         time.Minute,
	}
}

// NewSubmissionLimiter creates a limiter backed by the shared Redis client
func NewSubmissionLimiter() *SubmissionLimiter {
	return &SubmissionLimiter{rdb: GetRedisClient()}
}

// Allow checks and records one submission attempt for an IP. Without Redis
// the limiter is permissive; survey delivery must not depend on it.
func (sl *SubmissionLimiter) Allow(clientIP string, config SubmissionLimitConfig) (bool, error) {
	if sl == nil || sl.rdb == nil {
		return true, nil
	}

	key := fmt.Sprintf("rate:submission:%s", clientIP)

	count, err := sl.rdb.Incr(ctx, key).Result()
	if err != nil {
		return true, err
	}
	if count == 1 {
		sl.rdb.Expire(ctx, key, config.Window)
	}

	return count <= int64(config.MaxSubmissions), nil
}
