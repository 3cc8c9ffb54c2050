package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/mesto-backend/mesto/internal/httperr"
)

const rateLimitPrefix = "rl:ip:"

// RateLimit caps requests per client IP inside a fixed window, backed by
// Redis. A nil client and cache errors fail open so the API stays available
// without Redis.
func RateLimit(cache *redis.Client, max int, window time.Duration) fiber.Handler {
	if max <= 0 {
		max = 100
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return func(c *fiber.Ctx) error {
		if cache == nil {
			return c.Next()
		}

		key := rateLimitPrefix + c.IP()
		cnt, err := cache.Incr(c.UserContext(), key).Result()
		if err != nil {
			return c.Next() // fail-open on cache errors
		}
		if cnt == 1 {
			cache.Expire(c.UserContext(), key, window)
		}
		if cnt > int64(max) {
			return httperr.TooManyRequests("too many requests, try again later")
		}
		return c.Next()
	}
}
