package lock

import (
	"context"
	"strings"
	"sync"
	"time"

	"checkout/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`

const (
	DefaultTTL       = 30 * time.Second
	DefaultRetryWait = 50 * time.Millisecond
	keyPrefix        = "checkout:lock:"
)

// RedisLocker is a SETNX lock with a TTL. The value is a random token and
// release deletes the key only while it still holds that token, so a lock
// that expired and was taken by someone else is left alone.
type RedisLocker struct {
	client    *redis.Client
	script    *redis.Script
	ttl       time.Duration
	retryWait time.Duration
	logger    *zap.Logger
}

func NewRedisLocker(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisLocker {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisLocker{
		client:    client,
		script:    redis.NewScript(releaseScript),
		ttl:       ttl,
		retryWait: DefaultRetryWait,
		logger:    logger.Named("redis-locker"),
	}
}

// Lock polls until the key is free or ctx is done.
func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	if strings.TrimSpace(key) == "" {
		return nil, errs.NewValueIsRequiredError("lock key")
	}

	redisKey := keyPrefix + key
	token := uuid.NewString()

	ticker := time.NewTicker(l.retryWait)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
		if err != nil {
			return nil, errs.NewGatewayError("acquire lock "+key, err)
		}
		if ok {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := l.script.Run(releaseCtx, l.client, []string{redisKey}, token).Err(); err != nil {
				l.logger.Warn("lock release failed", zap.String("key", key), zap.Error(err))
			}
		})
	}, nil
}
