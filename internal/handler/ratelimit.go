package handler

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/alexscarano/QrLinkki/internal/model"
)

// RateLimiter ограничивает частоту запросов по IP через Redis (INCR+TTL).
// При недоступном Redis лимитер пропускает запросы: редирект важнее лимита.
type RateLimiter struct {
	rdb    *redis.Client
	limit  int64
	window time.Duration
}

func NewRateLimiter(rdb *redis.Client, limit int64, window time.Duration) *RateLimiter {
	return &RateLimiter{rdb: rdb, limit: limit, window: window}
}

// Middleware возвращает gin-middleware. Нулевой лимитер (Redis не настроен)
// ничего не ограничивает.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	if rl == nil || rl.rdb == nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := fmt.Sprintf("ratelimit:%s:%s", c.ClientIP(), c.FullPath())

		count, err := rl.rdb.Incr(ctx, key).Result()
		if err != nil {
			// fail open
			log.Printf("rate limit check failed: %v", err)
			c.Next()
			return
		}
		if count == 1 {
			rl.rdb.Expire(ctx, key, rl.window)
		}

		if count > rl.limit {
			c.Header("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, model.ErrorMessage{Error: "Rate limit exceeded"})
			return
		}
		c.Next()
	}
}
