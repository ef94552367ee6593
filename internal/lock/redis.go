package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	"letly-be-svc/pkg/logger"
)

// Redis is a Locker shared by every replica through Redis.
type Redis struct {
	client *redislock.Client
	ttl    time.Duration
	opts   *redislock.Options
	logger *logger.Logger
}

// NewRedis creates a Redis backed locker. ttl bounds how long a crashed holder keeps the key.
func NewRedis(rdb redis.UniversalClient, ttl time.Duration, logger *logger.Logger) *Redis {
	return &Redis{
		client: redislock.New(rdb),
		ttl:    ttl,
		opts: &redislock.Options{
			RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(100*time.Millisecond), 100),
		},
		logger: logger,
	}
}

// Obtain retries until the key is free, the retry budget runs out or ctx is done.
func (r *Redis) Obtain(ctx context.Context, key string) (func(), error) {
	l, err := r.client.Obtain(ctx, key, r.ttl, r.opts)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, fmt.Errorf("%w: %s", ErrNotObtained, key)
	} else if err != nil {
		return nil, fmt.Errorf("failed to obtain lock %s: %w", key, err)
	}

	return func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := l.Release(releaseCtx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			r.logger.WithError(err).WithField("key", key).Warn("failed to release redis lock")
		}
	}, nil
}

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
		PoolSize: 20,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return rdb, nil
}
