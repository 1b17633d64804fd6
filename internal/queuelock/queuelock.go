// Package queuelock serializes read-modify-write cycles on the shared
// requisition queue, either inside one process or across every location
// process through Redis.
package queuelock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrBusy is returned when the lock could not be obtained before the wait ran out.
var ErrBusy = errors.New("order queue is locked by another writer")

// Locker guards the order queue. Release must be called exactly once.
type Locker interface {
	Acquire(ctx context.Context) (release func(), err error)
}

type localLocker struct {
	sem  chan struct{}
	wait time.Duration
}

// NewLocal returns a Locker for a queue written by a single process.
func NewLocal(wait time.Duration) Locker {
	return &localLocker{sem: make(chan struct{}, 1), wait: wait}
}

func (l *localLocker) Acquire(ctx context.Context) (func(), error) {
	if l.wait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.wait)
		defer cancel()
	}
	select {
	case l.sem <- struct{}{}:
		return func() { <-l.sem }, nil
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, ErrBusy
		}
		return nil, ctx.Err()
	}
}

type redisLocker struct {
	client *redislock.Client
	key    string
	ttl    time.Duration
	wait   time.Duration
	logger logrus.FieldLogger
}

// NewRedis returns a Locker shared by every process using the same Redis key.
// ttl bounds how long a crashed holder can block the queue.
func NewRedis(rdb *redis.Client, key string, ttl, wait time.Duration, logger logrus.FieldLogger) Locker {
	return &redisLocker{
		client: redislock.New(rdb),
		key:    key,
		ttl:    ttl,
		wait:   wait,
		logger: logger.WithField("module", "queuelock"),
	}
}

func (l *redisLocker) Acquire(ctx context.Context) (func(), error) {
	obtainCtx := ctx
	if l.wait > 0 {
		var cancel context.CancelFunc
		obtainCtx, cancel = context.WithTimeout(ctx, l.wait)
		defer cancel()
	}

	lock, err := l.client.Obtain(obtainCtx, l.key, l.ttl, &redislock.Options{
		RetryStrategy: redislock.LinearBackoff(50 * time.Millisecond),
	})
	if errors.Is(err, redislock.ErrNotObtained) || errors.Is(err, context.DeadlineExceeded) {
		return nil, ErrBusy
	}
	if err != nil {
		return nil, fmt.Errorf("obtain queue lock: %w", err)
	}

	return func() {
		if err := lock.Release(context.Background()); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			l.logger.WithField("key", l.key).Warn("release queue lock: " + err.Error())
		}
	}, nil
}
