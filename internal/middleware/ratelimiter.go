package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// limiterStore — кусочек redis-клиента, который нужен лимитеру.
// Узкий интерфейс, чтобы в тестах подставлять фейк вместо живого Redis.
type limiterStore interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	TTL(ctx context.Context, key string) *redis.DurationCmd
}

// RateLimiter ограничивает число запросов с одного IP.
// Висит на конвертации: каждый POST /convert-youtube — это потенциально
// вызовы YouTube и Gemini, не даем одному клиенту их выжигать.
type RateLimiter struct {
	store limiterStore
}

func NewRateLimiter(store limiterStore) *RateLimiter {
	return &RateLimiter{store: store}
}

func (rl *RateLimiter) Limit(action string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:%s:%s", action, c.ClientIP())

		count, err := rl.store.Incr(c, key).Result()
		if err != nil {
			// Redis лег — лимитер не повод ронять запросы
			c.Next()
			return
		}

		// Первый запрос в окне — заводим TTL
		if count == 1 {
			rl.store.Expire(c, key, window)
		}

		if count > int64(limit) {
			ttl, _ := rl.store.TTL(c, key).Result()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Too many requests, slow down",
				"retry_after": int(ttl.Seconds()),
			})
			return
		}
		c.Next()
	}
}
