package cache

import (
	"context"
	"time"

	"realreselling/internal/logger"

	"github.com/redis/go-redis/v9"
)

func OpenRedis(addr string, db int) (*redis.Client, error) {
	r := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.Ping(ctx).Err(); err != nil {
		_ = r.Close()
		return nil, err
	}
	return r, nil
}

// OpenOptionalRedis returns a nil client when addr is empty or unreachable;
// the replay guard on intake is skipped in that case.
func OpenOptionalRedis(addr string, db int) *redis.Client {
	log := logger.NewSublogger("redis")
	if addr == "" {
		log.Info("REDIS_ADDR not set, idempotency guard disabled")
		return nil
	}
	r, err := OpenRedis(addr, db)
	if err != nil {
		log.WithError(err).Warn("redis unreachable, idempotency guard disabled")
		return nil
	}
	return r
}
