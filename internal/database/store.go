package database

import (
	"context"
	"fmt"
	"time"

	"stockledger/internal/config"
	"stockledger/internal/queuelock"
	"stockledger/internal/repository"
	"stockledger/internal/repository/memory"
	"stockledger/internal/repository/workbook"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// OpenStore builds the record store selected by STORE_DRIVER.
func OpenStore(cfg *config.Config, log logrus.FieldLogger) (repository.Store, error) {
	switch cfg.StoreDriver {
	case config.StoreMemory:
		return memory.NewStore(), nil
	case config.StoreWorkbook:
		return workbook.NewStore(cfg.WorkbookPath, log), nil
	case config.StorePostgres:
		db, err := NewConnection(cfg.DSN(), log)
		if err != nil {
			return repository.Store{}, fmt.Errorf("connect postgres: %w", err)
		}
		return repository.NewGormStore(db), nil
	}
	return repository.Store{}, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

// OpenQueueLock returns a Redis lock when REDIS_ADDRESS is set and an
// in-process one otherwise. closeFn releases the Redis client.
func OpenQueueLock(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (lock queuelock.Locker, closeFn func(), err error) {
	if cfg.RedisAddress == "" {
		log.WithField("module", "queuelock").Info("REDIS_ADDRESS not set; order queue lock is process-local")
		return queuelock.NewLocal(cfg.QueueLockWait), func() {}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: "",
		DB:       0,
		PoolSize: 10,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("connect redis %s: %w", cfg.RedisAddress, err)
	}

	log.WithFields(logrus.Fields{"module": "queuelock", "addr": cfg.RedisAddress}).Info("connected to redis")
	return queuelock.NewRedis(rdb, cfg.QueueLockKey, cfg.QueueLockTTL, cfg.QueueLockWait, log),
		func() { _ = rdb.Close() }, nil
}
