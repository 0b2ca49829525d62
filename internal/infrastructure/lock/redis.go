package lock

import (
	"context"
	"errors"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/sangkips/inventra-api/pkg/apperror"
	"github.com/sangkips/inventra-api/pkg/logger"
)

const keyPrefix = "inventra:lock:"

// RedisLocker takes keyed locks in redis so several API instances serialize
// on the same customer, supplier or stock item
type RedisLocker struct {
	client *redislock.Client
	ttl    time.Duration
	log    *logrus.Logger
}

// NewRedisLocker wraps a connected redis client. ttl bounds how long a
// crashed holder can keep a key.
func NewRedisLocker(rdb redis.UniversalClient, ttl time.Duration, log *logrus.Logger) *RedisLocker {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisLocker{client: redislock.New(rdb), ttl: ttl, log: log}
}

// Acquire retries with linear backoff until the key is obtained, ctx ends or
// the ttl worth of attempts runs out
func (l *RedisLocker) Acquire(ctx context.Context, key string) (func(), error) {
	backoff := 50 * time.Millisecond
	opts := &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(backoff), int(l.ttl/backoff)),
	}

	lk, err := l.client.Obtain(ctx, keyPrefix+key, l.ttl, opts)
	if errors.Is(err, redislock.ErrNotObtained) {
		logger.LogError(l.log, "lock", "Acquire", "Could not obtain lock", key, err)
		return nil, apperror.ErrLockNotObtained
	} else if err != nil {
		logger.LogError(l.log, "lock", "Acquire", "Error obtaining lock", key, err)
		return nil, err
	}

	return func() {
		// The request context may already be cancelled, release regardless.
		if err := lk.Release(context.Background()); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			logger.LogError(l.log, "lock", "Release", "Failed to release lock", key, err)
		}
	}, nil
}
