package lock

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	lockTTL      = 30 * time.Second
	acquireWait  = 5 * time.Second
	retryBackoff = 200 * time.Millisecond
)

// lockStore — кусочек redis-клиента, который нужен локу
type lockStore interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// VideoLock сериализует конвертации одного и того же видео через SetNX.
// Лок best-effort: если взять его не вышло, конвертация все равно идет —
// от двойной вставки страхует уникальный индекс на video_id.
type VideoLock struct {
	rdb     lockStore
	ttl     time.Duration
	wait    time.Duration
	backoff time.Duration
}

func NewVideoLock(rdb lockStore) *VideoLock {
	return &VideoLock{
		rdb:     rdb,
		ttl:     lockTTL,
		wait:    acquireWait,
		backoff: retryBackoff,
	}
}

// Acquire пытается взять лок на videoID, ждет не дольше wait.
// Возвращает функцию освобождения; она безопасна и когда лок не взят.
func (l *VideoLock) Acquire(ctx context.Context, videoID string) func() {
	key := "convert:lock:" + videoID
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.rdb.SetNX(ctx, key, 1, l.ttl).Result()
		if err != nil {
			// Redis недоступен — работаем без лока
			return func() {}
		}
		if ok {
			return func() {
				l.rdb.Del(context.Background(), key)
			}
		}
		if time.Now().After(deadline) {
			return func() {}
		}

		select {
		case <-ctx.Done():
			return func() {}
		case <-time.After(l.backoff):
		}
	}
}
