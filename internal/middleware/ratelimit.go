package middleware

import (
	"fmt"
	"time"

	"sonority/internal/httputil"
	"sonority/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// RateLimit limits requests per client IP within a fixed window, counting in
// Redis. A nil client disables limiting. When Redis is unreachable the request
// is let through.
func RateLimit(client *redis.Client, scope string, maxRequests int, window time.Duration, log *logger.Logger) fiber.Handler {
	if client == nil || maxRequests <= 0 || window <= 0 {
		return func(c *fiber.Ctx) error {
			return c.Next()
		}
	}

	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		key := fmt.Sprintf("ratelimit:%s:%s", scope, c.IP())

		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			log.Warn("rate limiter unavailable", "key", key, "error", err)
			return c.Next()
		}
		// The window opens on the first request and is never extended.
		if count == 1 {
			if err := client.Expire(ctx, key, window).Err(); err != nil {
				log.Warn("rate limiter failed to set window", "key", key, "error", err)
			}
		}

		if count > int64(maxRequests) {
			c.Set(fiber.HeaderRetryAfter, fmt.Sprintf("%d", int(window.Seconds())))
			return httputil.WriteError(c, fiber.StatusTooManyRequests, httputil.ErrCodeTooMany, "Too many requests")
		}
		return c.Next()
	}
}
